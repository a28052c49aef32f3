package identity

import (
	"context"
	"errors"
	"strings"
)

var ErrUserNotFound = errors.New("identity: user not found")

// Profile is the identity-provider view of a user.
type Profile struct {
	ID        string
	FirstName string
	LastName  string
	Emails    []string
}

// FullName joins the name parts; empty parts are skipped.
func (p *Profile) FullName() string {
	parts := make([]string, 0, 2)
	if p.FirstName != "" {
		parts = append(parts, p.FirstName)
	}
	if p.LastName != "" {
		parts = append(parts, p.LastName)
	}
	return strings.Join(parts, " ")
}

func (p *Profile) PrimaryEmail() string {
	if len(p.Emails) == 0 {
		return ""
	}
	return p.Emails[0]
}

// Provider resolves an identity-provider subject to a profile. Lookups are
// remote calls; callers decide whether a failure is fatal (detail endpoint)
// or degraded (listing enrichment).
type Provider interface {
	GetUser(ctx context.Context, id string) (*Profile, error)
}
