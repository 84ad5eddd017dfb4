package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"tvGuideBff/internal/modules/favorites/application/port"
	"tvGuideBff/internal/modules/favorites/domain"
	"tvGuideBff/internal/platform/upstream"
	"tvGuideBff/internal/shared/events"
)

const entityFavorite = "favorite"

// FavoritesUseCase proxies favorite reads and writes. Writes are attempted once.
type FavoritesUseCase struct {
	data      port.DataService
	parser    port.Parser
	publisher events.Publisher
	now       func() time.Time
}

func NewFavoritesUseCase(data port.DataService, parser port.Parser, publisher events.Publisher) *FavoritesUseCase {
	if publisher == nil {
		publisher = events.Noop{}
	}
	return &FavoritesUseCase{data: data, parser: parser, publisher: publisher, now: time.Now}
}

func (uc *FavoritesUseCase) List(ctx context.Context, logger *slog.Logger, userMail string) ([]domain.Favorite, error) {
	user := strings.TrimSpace(userMail)
	if user == "" {
		return nil, fmt.Errorf("%w: missing user mail", port.ErrInvalidRequest)
	}
	path, err := upstream.BuildPath(upstream.PathFavorites, map[string]string{"userMail": user})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", port.ErrInvalidRequest, err)
	}
	raw, err := uc.data.Get(ctx, "favorites", path)
	if err != nil {
		return nil, err
	}
	return uc.parser.ParseFavorites(raw, user, logger), nil
}

func (uc *FavoritesUseCase) Add(ctx context.Context, logger *slog.Logger, favorite domain.Favorite) (json.RawMessage, error) {
	favorite.Normalize()
	if err := favorite.ValidateAdd(); err != nil {
		logger.Warn("favorite rejected", slog.Any("error", err))
		return nil, fmt.Errorf("%w: %w", port.ErrInvalidRequest, err)
	}
	data, err := uc.data.Send(ctx, "favorite_add", http.MethodPost, upstream.PathFavorite, favorite)
	if err != nil {
		return nil, err
	}
	uc.publish(ctx, events.ActionAdded, favorite)
	return data, nil
}

func (uc *FavoritesUseCase) Remove(ctx context.Context, logger *slog.Logger, favorite domain.Favorite) (json.RawMessage, error) {
	favorite.Normalize()
	if err := favorite.ValidateRemove(); err != nil {
		logger.Warn("favorite rejected", slog.Any("error", err))
		return nil, fmt.Errorf("%w: %w", port.ErrInvalidRequest, err)
	}
	data, err := uc.data.Send(ctx, "favorite_remove", http.MethodDelete, upstream.PathFavorite, favorite)
	if err != nil {
		return nil, err
	}
	uc.publish(ctx, events.ActionRemoved, favorite)
	return data, nil
}

// publish keeps the email in the routing metadata only; the payload carries the target and title.
func (uc *FavoritesUseCase) publish(ctx context.Context, action string, favorite domain.Favorite) {
	payload := favorite
	payload.UserEmail = ""
	uc.publisher.Publish(ctx, events.Event{
		Entity:     entityFavorite,
		Action:     action,
		ResourceID: favorite.TargetID(),
		Metadata: map[string]string{
			"user": favorite.UserEmail,
			"kind": favorite.Kind(),
		},
		Data:       payload,
		OccurredAt: uc.now().UTC(),
	})
}
