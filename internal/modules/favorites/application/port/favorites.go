package port

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"tvGuideBff/internal/modules/favorites/domain"
)

// ErrInvalidRequest wraps every caller input problem: blank user mail or an invalid favorite body.
var ErrInvalidRequest = errors.New("invalid request")

type DataService interface {
	Get(ctx context.Context, operation, path string) (json.RawMessage, error)
	Send(ctx context.Context, operation, method, path string, body any) (json.RawMessage, error)
}

// Parser normalizes the favorite rows of one user. It never fails.
type Parser interface {
	ParseFavorites(raw json.RawMessage, userEmail string, logger *slog.Logger) []domain.Favorite
}

type SkipRecorder interface {
	SkippedItem(parser string)
}
