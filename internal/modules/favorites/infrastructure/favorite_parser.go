package infrastructure

import (
	"encoding/json"
	"errors"
	"log/slog"

	"tvGuideBff/internal/modules/favorites/application/port"
	"tvGuideBff/internal/modules/favorites/domain"
	"tvGuideBff/internal/shared/normalization"
)

const parserFavorites = "favorites"

type FavoriteParser struct {
	skips port.SkipRecorder
}

func NewFavoriteParser(skips port.SkipRecorder) *FavoriteParser {
	return &FavoriteParser{skips: skips}
}

// ParseFavorites keeps rows referencing exactly one target; rows without user_email get userEmail.
func (p *FavoriteParser) ParseFavorites(raw json.RawMessage, userEmail string, logger *slog.Logger) []domain.Favorite {
	favorites := []domain.Favorite{}
	items, err := normalization.Items(raw, "favorites")
	if err != nil {
		logger.Error("Error parsing favorites", slog.Any("error", err))
		return favorites
	}
	for _, item := range items {
		favorite, err := decodeFavorite(item)
		if err != nil {
			logger.Error("Error parsing favorite", slog.Any("error", err))
			if p.skips != nil {
				p.skips.SkippedItem(parserFavorites)
			}
			continue
		}
		if favorite.UserEmail == "" {
			favorite.UserEmail = userEmail
		}
		favorites = append(favorites, favorite)
	}
	logger.Info("Parsed favorites", slog.Int("count", len(favorites)))
	return favorites
}

func decodeFavorite(raw json.RawMessage) (domain.Favorite, error) {
	if normalization.IsAbsent(raw) {
		return domain.Favorite{}, errors.New("favorite is null")
	}
	var favorite domain.Favorite
	if err := json.Unmarshal(raw, &favorite); err != nil {
		return domain.Favorite{}, err
	}
	favorite.Normalize()
	if err := favorite.ValidateTarget(); err != nil {
		return domain.Favorite{}, err
	}
	return favorite, nil
}

var _ port.Parser = (*FavoriteParser)(nil)
