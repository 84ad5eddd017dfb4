package upstream

import (
	"errors"
	"net/url"
	"strings"
)

// ErrMissingParameter is returned when a required path parameter is blank.
var ErrMissingParameter = errors.New("missing path parameter")

// Paths exposed by the data service.
const (
	PathLastUpdate          = "/api/db/tv-program/get-last-update"
	PathInsert              = "/api/db/tv-program/insert"
	PathToday               = "/api/db/tv-program/today"
	PathWeek                = "/api/db/tv-program/week"
	PathRaiChannelList      = "/api/db/tv-program/rai-channel-list"
	PathMediasetChannelList = "/api/db/tv-program/mediaset-channel-list"
	PathFavorite            = "/api/db/tv-program/favorite"
	PathFavorites           = "/api/db/tv-program/favorites/{userMail}"

	PathProviderListing = "/api/tv-program/{provider}/{period}/{channelId}"

	PathMovieSearch           = "/api/program-metadata/movie/search/{query}"
	PathTVShowSearch          = "/api/program-metadata/tv-show/search/{query}"
	PathMovieDetails          = "/api/program-metadata/movie/{id}"
	PathTVShowDetails         = "/api/program-metadata/tv-show/{id}"
	PathMovieRecommendations  = "/api/program-metadata/movie/recommendations/{id}"
	PathTVShowRecommendations = "/api/program-metadata/tv-show/recommendations/{id}"
)

// BuildPath substitutes each {name} placeholder with the percent-encoded value. Everything but
// unreserved characters is escaped, so "@", ":", "+" and friends reach the data service encoded.
// Values are trimmed; a blank value yields ErrMissingParameter.
func BuildPath(template string, params map[string]string) (string, error) {
	path := strings.TrimSpace(template)
	for name, value := range params {
		trimmed := strings.TrimSpace(value)
		if trimmed == "" {
			return "", ErrMissingParameter
		}
		path = strings.ReplaceAll(path, "{"+name+"}", escapeSegment(trimmed))
	}
	if strings.Contains(path, "{") {
		return "", ErrMissingParameter
	}
	return path, nil
}

func escapeSegment(value string) string {
	return strings.ReplaceAll(url.QueryEscape(value), "+", "%20")
}
