package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"tvGuideBff/internal/modules/metadata/application/port"
	"tvGuideBff/internal/modules/metadata/domain"
	"tvGuideBff/internal/platform/upstream"
)

// MetadataUseCase looks up movie and tv show metadata through the data service.
type MetadataUseCase struct {
	data   port.DataService
	parser port.Parser
}

func NewMetadataUseCase(data port.DataService, parser port.Parser) *MetadataUseCase {
	return &MetadataUseCase{data: data, parser: parser}
}

func (uc *MetadataUseCase) SearchMovies(ctx context.Context, logger *slog.Logger, query string) ([]domain.Movie, error) {
	raw, err := uc.search(ctx, "movie_search", upstream.PathMovieSearch, query)
	if err != nil {
		return nil, err
	}
	return uc.parser.ParseMovieResults(raw, logger), nil
}

func (uc *MetadataUseCase) SearchTVShows(ctx context.Context, logger *slog.Logger, query string) ([]domain.TVShow, error) {
	raw, err := uc.search(ctx, "tv_show_search", upstream.PathTVShowSearch, query)
	if err != nil {
		return nil, err
	}
	return uc.parser.ParseTVShowResults(raw, logger), nil
}

// MovieDetails returns nil without error when the data service answered but the payload was unusable.
func (uc *MetadataUseCase) MovieDetails(ctx context.Context, logger *slog.Logger, id string) (*domain.Movie, error) {
	raw, err := uc.byID(ctx, "movie_details", upstream.PathMovieDetails, id)
	if err != nil {
		return nil, err
	}
	return uc.parser.ParseMovieDetails(raw, logger), nil
}

func (uc *MetadataUseCase) TVShowDetails(ctx context.Context, logger *slog.Logger, id string) (*domain.TVShow, error) {
	raw, err := uc.byID(ctx, "tv_show_details", upstream.PathTVShowDetails, id)
	if err != nil {
		return nil, err
	}
	return uc.parser.ParseTVShowDetails(raw, logger), nil
}

func (uc *MetadataUseCase) MovieRecommendations(ctx context.Context, logger *slog.Logger, id string) ([]domain.Movie, error) {
	raw, err := uc.byID(ctx, "movie_recommendations", upstream.PathMovieRecommendations, id)
	if err != nil {
		return nil, err
	}
	return uc.parser.ParseMovieResults(raw, logger), nil
}

func (uc *MetadataUseCase) TVShowRecommendations(ctx context.Context, logger *slog.Logger, id string) ([]domain.TVShow, error) {
	raw, err := uc.byID(ctx, "tv_show_recommendations", upstream.PathTVShowRecommendations, id)
	if err != nil {
		return nil, err
	}
	return uc.parser.ParseTVShowResults(raw, logger), nil
}

func (uc *MetadataUseCase) search(ctx context.Context, operation, template, query string) (json.RawMessage, error) {
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("%w: empty query", port.ErrInvalidRequest)
	}
	path, err := upstream.BuildPath(template, map[string]string{"query": query})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", port.ErrInvalidRequest, err)
	}
	return uc.data.Get(ctx, operation, path)
}

func (uc *MetadataUseCase) byID(ctx context.Context, operation, template, id string) (json.RawMessage, error) {
	trimmed := strings.TrimSpace(id)
	if value, err := strconv.ParseInt(trimmed, 10, 64); err != nil || value <= 0 {
		return nil, fmt.Errorf("%w: id %q is not a positive integer", port.ErrInvalidRequest, id)
	}
	path, err := upstream.BuildPath(template, map[string]string{"id": trimmed})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", port.ErrInvalidRequest, err)
	}
	return uc.data.Get(ctx, operation, path)
}
