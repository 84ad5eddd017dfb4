package usecase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"tvGuideBff/internal/modules/schedule/application/port"
	"tvGuideBff/internal/modules/schedule/domain"
	"tvGuideBff/internal/platform/upstream"
	"tvGuideBff/internal/shared/events"
	"tvGuideBff/internal/shared/normalization"
)

const entityTvProgram = "tv-program"

// ScheduleUseCase performs exactly one data service call per operation and normalizes the result.
type ScheduleUseCase struct {
	data      port.DataService
	sources   port.SourceLookup
	stored    port.StoredRowParser
	publisher events.Publisher
	now       func() time.Time
}

func NewScheduleUseCase(data port.DataService, sources port.SourceLookup, stored port.StoredRowParser, publisher events.Publisher) *ScheduleUseCase {
	if publisher == nil {
		publisher = events.Noop{}
	}
	return &ScheduleUseCase{data: data, sources: sources, stored: stored, publisher: publisher, now: time.Now}
}

// LastUpdate returns the data service's last refresh marker unchanged.
func (uc *ScheduleUseCase) LastUpdate(ctx context.Context) (json.RawMessage, error) {
	return uc.data.Get(ctx, "last_update", upstream.PathLastUpdate)
}

// Insert forwards a list of programs to the data service. The write is never retried here.
func (uc *ScheduleUseCase) Insert(ctx context.Context, logger *slog.Logger, programs json.RawMessage) (json.RawMessage, error) {
	count, err := countListItems(programs)
	if err != nil {
		logger.Warn("insert body rejected", slog.Any("error", err))
		return nil, fmt.Errorf("%w: %w", port.ErrInvalidRequest, err)
	}
	data, err := uc.data.Send(ctx, "insert", http.MethodPost, upstream.PathInsert, programs)
	if err != nil {
		return nil, err
	}
	uc.publisher.Publish(ctx, events.Event{
		Entity:     entityTvProgram,
		Action:     events.ActionInserted,
		Metadata:   map[string]string{"count": strconv.Itoa(count)},
		OccurredAt: uc.now().UTC(),
	})
	return data, nil
}

// StoredPrograms lists the programs the data service holds for today or the current week.
func (uc *ScheduleUseCase) StoredPrograms(ctx context.Context, logger *slog.Logger, period domain.Period) ([]domain.TvProgram, error) {
	path := upstream.PathToday
	if period == domain.PeriodWeek {
		path = upstream.PathWeek
	}
	raw, err := uc.data.Get(ctx, "stored_"+string(period), path)
	if err != nil {
		return nil, err
	}
	return uc.stored.ParsePrograms(raw, logger), nil
}

// Channels lists the channels of one broadcaster group.
func (uc *ScheduleUseCase) Channels(ctx context.Context, logger *slog.Logger, provider string) ([]domain.TvChannel, error) {
	var path string
	switch normalization.NormalizeProvider(provider) {
	case normalization.ProviderRai:
		path = upstream.PathRaiChannelList
	case normalization.ProviderMediaset:
		path = upstream.PathMediasetChannelList
	default:
		return nil, fmt.Errorf("%w: %s", port.ErrUnknownProvider, provider)
	}
	raw, err := uc.data.Get(ctx, "channels_"+normalization.NormalizeProvider(provider), path)
	if err != nil {
		return nil, err
	}
	return uc.stored.ParseChannels(raw, normalization.CompanyName(provider), logger), nil
}

// ChannelListing fetches one provider schedule for a channel. The channel id from the request is
// authoritative and replaces whatever the provider reported per record.
func (uc *ScheduleUseCase) ChannelListing(ctx context.Context, logger *slog.Logger, provider string, period domain.Period, channelID string) ([]domain.TvProgram, error) {
	channel := strings.TrimSpace(channelID)
	if channel == "" {
		logger.Error("Invalid Request, no channel provided")
		return nil, fmt.Errorf("%w: missing channel id", port.ErrInvalidRequest)
	}
	source, ok := uc.sources.Lookup(provider)
	if !ok {
		return nil, fmt.Errorf("%w: %s", port.ErrUnknownProvider, provider)
	}
	path, err := upstream.BuildPath(upstream.PathProviderListing, map[string]string{
		"provider":  source.Provider(),
		"period":    string(period),
		"channelId": channel,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", port.ErrInvalidRequest, err)
	}
	raw, err := uc.data.Get(ctx, source.Provider()+"_"+string(period), path)
	if err != nil {
		return nil, err
	}
	return source.Parse(raw, channel, logger), nil
}

func countListItems(raw json.RawMessage) (int, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return 0, fmt.Errorf("programs must be a list")
	}
	var items []json.RawMessage
	if err := json.Unmarshal(trimmed, &items); err != nil {
		return 0, fmt.Errorf("programs must be a list: %w", err)
	}
	return len(items), nil
}
