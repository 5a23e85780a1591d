package google

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/memoflow/memoflow/internal/model"
)

const defaultTokenInfoURL = "https://oauth2.googleapis.com"

// Provider verifies Google ID tokens against the tokeninfo endpoint.
type Provider struct {
	client   *resty.Client
	clientID string
}

// Option customizes a Provider.
type Option func(*Provider)

// WithBaseURL overrides the tokeninfo endpoint, used by tests.
func WithBaseURL(base string) Option {
	return func(p *Provider) { p.client.SetBaseURL(base) }
}

// New creates a Google identity provider. clientID, when non-empty, is
// checked against the token audience.
func New(clientID string, opts ...Option) *Provider {
	p := &Provider{
		client: resty.New().
			SetBaseURL(defaultTokenInfoURL).
			SetTimeout(10 * time.Second),
		clientID: clientID,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

type tokenInfo struct {
	Sub     string `json:"sub"`
	Aud     string `json:"aud"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Expires string `json:"exp"`
}

// Authenticate verifies the ID token and maps its claims to an identity.
func (p *Provider) Authenticate(ctx context.Context, credential string) (*model.Identity, error) {
	if credential == "" {
		return nil, fmt.Errorf("empty credential")
	}
	var info tokenInfo
	resp, err := p.client.R().
		SetContext(ctx).
		SetQueryParam("id_token", credential).
		SetResult(&info).
		Get("/tokeninfo")
	if err != nil {
		return nil, fmt.Errorf("tokeninfo request: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("tokeninfo status %d", resp.StatusCode())
	}
	if info.Sub == "" {
		return nil, fmt.Errorf("tokeninfo response missing subject")
	}
	if p.clientID != "" && info.Aud != p.clientID {
		return nil, fmt.Errorf("token audience mismatch")
	}
	return &model.Identity{ID: info.Sub, DisplayName: info.Name, Email: info.Email}, nil
}
