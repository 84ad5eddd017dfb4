package infrastructure

import (
	"encoding/json"
	"errors"
	"log/slog"

	"tvGuideBff/internal/modules/metadata/application/port"
	"tvGuideBff/internal/modules/metadata/domain"
	"tvGuideBff/internal/shared/normalization"
)

const (
	parserMovies  = "tmdb_movies"
	parserTVShows = "tmdb_tv_shows"
	parserSeasons = "tmdb_seasons"
)

var (
	errMissingID = errors.New("record without id")
	errNoData    = errors.New("no data provided")
)

type tmdbGenre struct {
	Name *string `json:"name"`
}

type tmdbMovie struct {
	ID               normalization.FlexInt `json:"id"`
	Title            *string               `json:"title"`
	OriginalTitle    *string               `json:"original_title"`
	Overview         *string               `json:"overview"`
	ReleaseDate      *string               `json:"release_date"`
	PosterPath       *string               `json:"poster_path"`
	OriginalLanguage *string               `json:"original_language"`
	Genres           []*tmdbGenre          `json:"genres"`
	VoteAverage      *float64              `json:"vote_average"`
}

type tmdbTVShow struct {
	ID               normalization.FlexInt `json:"id"`
	Name             *string               `json:"name"`
	OriginalName     *string               `json:"original_name"`
	Overview         *string               `json:"overview"`
	PosterPath       *string               `json:"poster_path"`
	OriginalLanguage *string               `json:"original_language"`
	FirstAirDate     *string               `json:"first_air_date"`
	LastAirDate      *string               `json:"last_air_date"`
	NumberOfEpisodes *int                  `json:"number_of_episodes"`
	NumberOfSeasons  *int                  `json:"number_of_seasons"`
	Genres           []*tmdbGenre          `json:"genres"`
	InProduction     *bool                 `json:"in_production"`
	Languages        []*string             `json:"languages"`
	OriginCountry    []*string             `json:"origin_country"`
	VoteAverage      *float64              `json:"vote_average"`
	Seasons          []json.RawMessage     `json:"seasons"`
}

type tmdbSeason struct {
	ID           normalization.FlexInt `json:"id"`
	Name         *string               `json:"name"`
	Overview     *string               `json:"overview"`
	SeasonNumber *int                  `json:"season_number"`
	EpisodeCount *int                  `json:"episode_count"`
	AirDate      *string               `json:"air_date"`
	PosterPath   *string               `json:"poster_path"`
}

// TMDBParser converts the data service's TMDB passthrough payloads.
type TMDBParser struct {
	imageBaseURL string
	skips        port.SkipRecorder
}

func NewTMDBParser(imageBaseURL string, skips port.SkipRecorder) *TMDBParser {
	if imageBaseURL == "" {
		imageBaseURL = domain.DefaultImageBaseURL
	}
	return &TMDBParser{imageBaseURL: imageBaseURL, skips: skips}
}

// ParseMovieResults maps search or recommendation results; the payload is either the
// TMDB page object ({"results": [...]}) or the bare list.
func (p *TMDBParser) ParseMovieResults(raw json.RawMessage, logger *slog.Logger) []domain.Movie {
	movies := []domain.Movie{}
	items, err := normalization.Items(raw, "results")
	if err != nil {
		logger.Error("Error parsing search movies", slog.Any("error", err))
		return movies
	}
	for _, item := range items {
		movie, err := p.decodeMovie(item)
		if err != nil {
			logger.Error("Error parsing search movie", slog.Any("error", err))
			p.skip(parserMovies)
			continue
		}
		movies = append(movies, movie)
	}
	logger.Info("Parsed movies", slog.Int("count", len(movies)))
	return movies
}

func (p *TMDBParser) ParseTVShowResults(raw json.RawMessage, logger *slog.Logger) []domain.TVShow {
	shows := []domain.TVShow{}
	items, err := normalization.Items(raw, "results")
	if err != nil {
		logger.Error("Error parsing search tv-shows", slog.Any("error", err))
		return shows
	}
	for _, item := range items {
		show, err := p.decodeTVShow(item, logger)
		if err != nil {
			logger.Error("Error parsing search tv-show", slog.Any("error", err))
			p.skip(parserTVShows)
			continue
		}
		// search results carry no season breakdown
		show.Seasons = nil
		shows = append(shows, show)
	}
	logger.Info("Parsed tv shows", slog.Int("count", len(shows)))
	return shows
}

func (p *TMDBParser) ParseMovieDetails(raw json.RawMessage, logger *slog.Logger) *domain.Movie {
	movie, err := p.decodeMovie(raw)
	if err != nil {
		logger.Error("Error parsing movie details", slog.Any("error", err))
		return nil
	}
	return &movie
}

func (p *TMDBParser) ParseTVShowDetails(raw json.RawMessage, logger *slog.Logger) *domain.TVShow {
	show, err := p.decodeTVShow(raw, logger)
	if err != nil {
		logger.Error("Error parsing tv show details", slog.Any("error", err))
		return nil
	}
	return &show
}

func (p *TMDBParser) decodeMovie(raw json.RawMessage) (domain.Movie, error) {
	if normalization.IsAbsent(raw) {
		return domain.Movie{}, errNoData
	}
	var movie tmdbMovie
	if err := json.Unmarshal(raw, &movie); err != nil {
		return domain.Movie{}, err
	}
	if !movie.ID.Valid {
		return domain.Movie{}, errMissingID
	}
	return domain.Movie{
		ID:               movie.ID.Value,
		Title:            normalization.String(movie.Title),
		OriginalTitle:    normalization.String(movie.OriginalTitle),
		Description:      normalization.String(movie.Overview),
		ReleaseDate:      domain.CalendarDate(movie.ReleaseDate),
		PosterPath:       domain.PosterURL(p.imageBaseURL, normalization.String(movie.PosterPath)),
		OriginalLanguage: normalization.String(movie.OriginalLanguage),
		Genres:           genreNames(movie.Genres),
		VoteAverage:      movie.VoteAverage,
	}, nil
}

func (p *TMDBParser) decodeTVShow(raw json.RawMessage, logger *slog.Logger) (domain.TVShow, error) {
	if normalization.IsAbsent(raw) {
		return domain.TVShow{}, errNoData
	}
	var show tmdbTVShow
	if err := json.Unmarshal(raw, &show); err != nil {
		return domain.TVShow{}, err
	}
	if !show.ID.Valid {
		return domain.TVShow{}, errMissingID
	}
	return domain.TVShow{
		ID:               show.ID.Value,
		Title:            normalization.String(show.Name),
		OriginalTitle:    normalization.String(show.OriginalName),
		Description:      normalization.String(show.Overview),
		PosterPath:       domain.PosterURL(p.imageBaseURL, normalization.String(show.PosterPath)),
		OriginalLanguage: normalization.String(show.OriginalLanguage),
		FirstAirDate:     domain.CalendarDate(show.FirstAirDate),
		LastAirDate:      domain.CalendarDate(show.LastAirDate),
		NumberOfEpisodes: show.NumberOfEpisodes,
		NumberOfSeasons:  show.NumberOfSeasons,
		Genres:           genreNames(show.Genres),
		InProduction:     show.InProduction,
		Languages:        normalization.Strings(show.Languages),
		OriginCountry:    normalization.Strings(show.OriginCountry),
		VoteAverage:      show.VoteAverage,
		Seasons:          p.decodeSeasons(show.Seasons, logger),
	}, nil
}

// decodeSeasons keeps upstream order and drops seasons that fail to decode.
func (p *TMDBParser) decodeSeasons(items []json.RawMessage, logger *slog.Logger) []domain.Season {
	if items == nil {
		return nil
	}
	seasons := make([]domain.Season, 0, len(items))
	for _, item := range items {
		if normalization.IsAbsent(item) {
			logger.Error("Error parsing tv show season", slog.String("reason", "season is null"))
			p.skip(parserSeasons)
			continue
		}
		var season tmdbSeason
		if err := json.Unmarshal(item, &season); err != nil {
			logger.Error("Error parsing tv show season", slog.Any("error", err))
			p.skip(parserSeasons)
			continue
		}
		seasons = append(seasons, domain.Season{
			ID:           season.ID.Value,
			Name:         normalization.String(season.Name),
			Overview:     normalization.String(season.Overview),
			SeasonNumber: normalization.Int(season.SeasonNumber),
			EpisodeCount: normalization.Int(season.EpisodeCount),
			AirDate:      domain.CalendarDate(season.AirDate),
			PosterPath:   domain.PosterURL(p.imageBaseURL, normalization.String(season.PosterPath)),
		})
	}
	return seasons
}

func genreNames(genres []*tmdbGenre) []string {
	if len(genres) == 0 {
		return nil
	}
	names := make([]*string, 0, len(genres))
	for _, genre := range genres {
		if genre != nil {
			names = append(names, genre.Name)
		}
	}
	return normalization.Strings(names)
}

func (p *TMDBParser) skip(parser string) {
	if p.skips != nil {
		p.skips.SkippedItem(parser)
	}
}

var _ port.Parser = (*TMDBParser)(nil)
