package posters

import (
	"log/slog"

	"github.com/google/uuid"

	"github.com/JaimeStill/film-catalog/pkg/storage"
)

// NewWithIDs creates a System that draws stored-name ids from ids in order.
func NewWithIDs(store storage.System, logger *slog.Logger, ids ...uuid.UUID) System {
	i := 0
	return &assets{
		store:  store,
		logger: logger,
		newID: func() uuid.UUID {
			id := ids[i%len(ids)]
			i++
			return id
		},
	}
}

var SanitizeFilename = sanitizeFilename
