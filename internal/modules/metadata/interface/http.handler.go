package transport

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"tvGuideBff/internal/modules/metadata/application/port"
	"tvGuideBff/internal/modules/metadata/application/usecase"
	"tvGuideBff/internal/shared/httputil"
	"tvGuideBff/internal/shared/logging"
)

const (
	msgSearchMovies          = "Error searching movies"
	msgSearchTVShows         = "Error searching tv shows"
	msgMovieDetails          = "Error getting movie details"
	msgTVShowDetails         = "Error getting tv show details"
	msgMovieRecommendations  = "Error getting movie recommendations"
	msgTVShowRecommendations = "Error getting tv show recommendations"
)

const metadataInfo = "TV guide BFF program metadata API: /movie, /tv-show"

// lookup is the shape shared by every metadata use case method once its result is erased.
type lookup func(ctx context.Context, logger *slog.Logger, param string) (any, error)

// RegisterRoutes mounts /api/program-metadata. Static segments are matched before :id by echo.
func RegisterRoutes(e *echo.Echo, uc *usecase.MetadataUseCase) {
	e.GET("/api/program-metadata", func(c echo.Context) error {
		return c.String(http.StatusOK, metadataInfo)
	})

	g := e.Group("/api/program-metadata")
	g.GET("/movie/search/:query", newHandler(msgSearchMovies, "query", wrap(uc.SearchMovies)))
	g.GET("/tv-show/search/:query", newHandler(msgSearchTVShows, "query", wrap(uc.SearchTVShows)))
	g.GET("/movie/recommendations/:id", newHandler(msgMovieRecommendations, "id", wrap(uc.MovieRecommendations)))
	g.GET("/tv-show/recommendations/:id", newHandler(msgTVShowRecommendations, "id", wrap(uc.TVShowRecommendations)))
	g.GET("/movie/:id", newHandler(msgMovieDetails, "id", wrapDetails(uc.MovieDetails)))
	g.GET("/tv-show/:id", newHandler(msgTVShowDetails, "id", wrapDetails(uc.TVShowDetails)))
}

func newHandler(message, param string, fetch lookup) echo.HandlerFunc {
	mapper := httputil.NewErrorMapper().
		WithMapping(port.ErrInvalidRequest, http.StatusBadRequest, httputil.InvalidRequestMessage).
		WithDefault(http.StatusInternalServerError, message)
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		value := httputil.PathParam(c, param)
		logger := logging.FromContext(ctx).With(slog.String(param, value))
		result, err := fetch(ctx, logger, value)
		if err != nil {
			logger.Error(message, slog.Any("error", err))
			return httputil.WriteMappedError(c, mapper, err)
		}
		return httputil.WriteData(c, result)
	}
}

func wrap[T any](fn func(context.Context, *slog.Logger, string) ([]T, error)) lookup {
	return func(ctx context.Context, logger *slog.Logger, param string) (any, error) {
		return fn(ctx, logger, param)
	}
}

// wrapDetails renders an unusable details payload as an empty object.
func wrapDetails[T any](fn func(context.Context, *slog.Logger, string) (*T, error)) lookup {
	return func(ctx context.Context, logger *slog.Logger, param string) (any, error) {
		result, err := fn(ctx, logger, param)
		if err != nil {
			return nil, err
		}
		if result == nil {
			return struct{}{}, nil
		}
		return result, nil
	}
}
