package port

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"tvGuideBff/internal/modules/metadata/domain"
)

// ErrInvalidRequest flags a blank search query or a non-numeric id.
var ErrInvalidRequest = errors.New("invalid request")

// DataService is the slice of the data service client the metadata module needs.
type DataService interface {
	Get(ctx context.Context, operation, path string) (json.RawMessage, error)
}

// Parser maps TMDB-shaped payloads onto the canonical metadata model. List parsers
// never fail; details parsers return nil when the payload is absent or malformed.
type Parser interface {
	ParseMovieResults(raw json.RawMessage, logger *slog.Logger) []domain.Movie
	ParseTVShowResults(raw json.RawMessage, logger *slog.Logger) []domain.TVShow
	ParseMovieDetails(raw json.RawMessage, logger *slog.Logger) *domain.Movie
	ParseTVShowDetails(raw json.RawMessage, logger *slog.Logger) *domain.TVShow
}

// SkipRecorder is notified once per upstream record a parser had to drop.
type SkipRecorder interface {
	SkippedItem(parser string)
}
