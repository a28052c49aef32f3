package identity

import (
	"context"
	"errors"

	"mangavault/internal/domain/account"
)

// LocalProvider serves profiles from the accounts table. Used when the
// deployment runs without an external identity service (dev, tests).
type LocalProvider struct {
	accounts account.Repository
}

func NewLocalProvider(accounts account.Repository) *LocalProvider {
	return &LocalProvider{accounts: accounts}
}

func (p *LocalProvider) GetUser(ctx context.Context, id string) (*Profile, error) {
	a, err := p.accounts.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, account.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	return &Profile{
		ID:        a.ID,
		FirstName: a.FirstName,
		LastName:  a.LastName,
		Emails:    []string{a.Email},
	}, nil
}
