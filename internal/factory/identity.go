package factory

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/memoflow/memoflow/internal/config"
	"github.com/memoflow/memoflow/internal/identity"
	"github.com/memoflow/memoflow/internal/identity/google"
	"github.com/memoflow/memoflow/internal/identity/static"
)

// NewIdentityProvider creates the configured identity provider.
func NewIdentityProvider(cfg *config.Config, log zerolog.Logger) (identity.Provider, error) {
	switch cfg.IdentityProvider {
	case "static":
		log.Warn().Msg("static identity provider enabled; local development only")
		return static.New(cfg.StaticUserID, cfg.StaticDisplayName), nil
	case "google":
		return google.New(cfg.GoogleClientID), nil
	}
	return nil, fmt.Errorf("unknown IDENTITY_PROVIDER: %s", cfg.IdentityProvider)
}
