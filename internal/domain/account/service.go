package account

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// TokenIssuer is satisfied by internal/pkg/jwt.Service.
type TokenIssuer interface {
	GenerateToken(userID, email string) (string, error)
}

type Service struct {
	repo   Repository
	tokens TokenIssuer
}

func NewService(repo Repository, tokens TokenIssuer) *Service {
	return &Service{repo: repo, tokens: tokens}
}

func (s *Service) Register(ctx context.Context, req RegisterRequest) (*Account, string, error) {
	exists, err := s.repo.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, "", fmt.Errorf("checking email: %w", err)
	}
	if exists {
		return nil, "", ErrEmailAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", fmt.Errorf("hashing password: %w", err)
	}

	a := &Account{
		ID:           "user_" + uuid.NewString(),
		Email:        req.Email,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		PasswordHash: string(hash),
		CreatedAt:    time.Now(),
	}

	if err := s.repo.Create(ctx, a); err != nil {
		return nil, "", fmt.Errorf("creating account: %w", err)
	}

	token, err := s.tokens.GenerateToken(a.ID, a.Email)
	if err != nil {
		return nil, "", fmt.Errorf("issuing token: %w", err)
	}

	return a, token, nil
}

func (s *Service) Login(ctx context.Context, req LoginRequest) (*Account, string, error) {
	a, err := s.repo.GetByEmail(ctx, req.Email)
	if err != nil {
		if err == ErrNotFound {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}

	if bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(req.Password)) != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.tokens.GenerateToken(a.ID, a.Email)
	if err != nil {
		return nil, "", fmt.Errorf("issuing token: %w", err)
	}

	return a, token, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (*Account, error) {
	return s.repo.GetByID(ctx, id)
}
