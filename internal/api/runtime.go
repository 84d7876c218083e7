package api

import (
	"github.com/JaimeStill/film-catalog/internal/infrastructure"
)

// Runtime is the Infrastructure seen by the API module, with a
// module-scoped logger and the poster upload limit.
type Runtime struct {
	*infrastructure.Infrastructure
	MaxUploadSize int64
}

// NewRuntime scopes infra to the API module.
func NewRuntime(infra *infrastructure.Infrastructure, maxUploadSize int64) *Runtime {
	return &Runtime{
		Infrastructure: &infrastructure.Infrastructure{
			Lifecycle: infra.Lifecycle,
			Logger:    infra.Logger.With("module", "api"),
			Database:  infra.Database,
			Storage:   infra.Storage,
			Validator: infra.Validator,
		},
		MaxUploadSize: maxUploadSize,
	}
}
