package domain

import (
	"strings"
	"time"
)

// DefaultImageBaseURL is the TMDB host serving original-size posters.
const DefaultImageBaseURL = "https://image.tmdb.org/t/p/original"

const dateLayout = "2006-01-02"

type Movie struct {
	ID               int64    `json:"id"`
	Title            string   `json:"title"`
	OriginalTitle    string   `json:"original_title"`
	Description      string   `json:"description"`
	ReleaseDate      *string  `json:"release_date,omitempty"`
	PosterPath       string   `json:"poster_path"`
	OriginalLanguage string   `json:"original_language"`
	Genres           []string `json:"genres,omitempty"`
	VoteAverage      *float64 `json:"vote_average,omitempty"`
}

type TVShow struct {
	ID               int64    `json:"id"`
	Title            string   `json:"title"`
	OriginalTitle    string   `json:"original_title"`
	Description      string   `json:"description"`
	PosterPath       string   `json:"poster_path"`
	OriginalLanguage string   `json:"original_language"`
	FirstAirDate     *string  `json:"first_air_date,omitempty"`
	LastAirDate      *string  `json:"last_air_date,omitempty"`
	NumberOfEpisodes *int     `json:"number_of_episodes,omitempty"`
	NumberOfSeasons  *int     `json:"number_of_seasons,omitempty"`
	Genres           []string `json:"genres,omitempty"`
	InProduction     *bool    `json:"in_production,omitempty"`
	Languages        []string `json:"languages,omitempty"`
	OriginCountry    []string `json:"origin_country,omitempty"`
	VoteAverage      *float64 `json:"vote_average,omitempty"`
	Seasons          []Season `json:"seasons,omitempty"`
}

type Season struct {
	ID           int64   `json:"id"`
	Name         string  `json:"name"`
	Overview     string  `json:"overview"`
	SeasonNumber int     `json:"season_number"`
	EpisodeCount int     `json:"episode_count"`
	AirDate      *string `json:"air_date,omitempty"`
	PosterPath   string  `json:"poster_path"`
}

// PosterURL prefixes a relative image path with base. An empty path stays empty so a
// relative path never reaches callers.
func PosterURL(base, path string) string {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return ""
	}
	if strings.HasPrefix(trimmed, "http://") || strings.HasPrefix(trimmed, "https://") {
		return trimmed
	}
	if base == "" {
		base = DefaultImageBaseURL
	}
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(trimmed, "/")
}

// CalendarDate keeps a YYYY-MM-DD value and drops empty or malformed ones.
func CalendarDate(raw *string) *string {
	if raw == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*raw)
	if _, err := time.Parse(dateLayout, trimmed); err != nil {
		return nil
	}
	return &trimmed
}
