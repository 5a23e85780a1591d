package static

import (
	"context"
	"errors"

	"github.com/memoflow/memoflow/internal/model"
)

const (
	// LocalDevCredential is the hardcoded credential for local development only
	LocalDevCredential = "memoflow-dev-credential"
)

// Provider resolves the hardcoded local-development credential to a fixed
// identity. It exists so the service and CLI run without a Google client.
type Provider struct {
	ident model.Identity
}

// New creates a static provider for the given identity.
func New(userID, displayName string) *Provider {
	return &Provider{ident: model.Identity{ID: userID, DisplayName: displayName}}
}

// Authenticate accepts only the local development credential.
func (p *Provider) Authenticate(ctx context.Context, credential string) (*model.Identity, error) {
	if credential != LocalDevCredential {
		return nil, errors.New("invalid credential for local development")
	}
	out := p.ident
	return &out, nil
}
