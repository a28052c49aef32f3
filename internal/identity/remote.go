package identity

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// RemoteProvider talks to a Clerk-compatible user API:
// GET {base}/v1/users/{id} with a bearer secret key.
type RemoteProvider struct {
	baseURL   string
	secretKey string
	client    *http.Client
}

func NewRemoteProvider(baseURL, secretKey string, timeout time.Duration) *RemoteProvider {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &RemoteProvider{
		baseURL:   strings.TrimRight(baseURL, "/"),
		secretKey: secretKey,
		client:    &http.Client{Timeout: timeout},
	}
}

type remoteUser struct {
	ID             string `json:"id"`
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	EmailAddresses []struct {
		EmailAddress string `json:"email_address"`
	} `json:"email_addresses"`
}

func (p *RemoteProvider) GetUser(ctx context.Context, id string) (*Profile, error) {
	endpoint := p.baseURL + "/v1/users/" + url.PathEscape(id)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("identity: building request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+p.secretKey)
	req.Header.Set("Accept", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("identity: lookup %s: %w", id, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, ErrUserNotFound
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("identity: lookup %s: unexpected status %d", id, resp.StatusCode)
	}

	var u remoteUser
	if err := json.NewDecoder(resp.Body).Decode(&u); err != nil {
		return nil, fmt.Errorf("identity: decoding user %s: %w", id, err)
	}

	profile := &Profile{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
	}
	for _, e := range u.EmailAddresses {
		if e.EmailAddress != "" {
			profile.Emails = append(profile.Emails, e.EmailAddress)
		}
	}

	return profile, nil
}
