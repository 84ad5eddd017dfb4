package port

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"tvGuideBff/internal/modules/schedule/domain"
)

var (
	// ErrInvalidRequest flags caller input that cannot be turned into an upstream call.
	ErrInvalidRequest = errors.New("invalid request")
	// ErrUnknownProvider is returned for providers without a registered listing source.
	ErrUnknownProvider = errors.New("unknown listing provider")
)

// ListingSource turns one provider's raw schedule payload into canonical programs.
// Parse never fails: absent or malformed payloads yield an empty slice and malformed
// items are dropped individually. A non-blank channelHint becomes every record's channel id.
type ListingSource interface {
	Provider() string
	Parse(raw json.RawMessage, channelHint string, logger *slog.Logger) []domain.TvProgram
}

// SkipRecorder is notified once per upstream record a parser had to drop.
type SkipRecorder interface {
	SkippedItem(parser string)
}

// DataService is the slice of the adapter/data service client the schedule module needs.
type DataService interface {
	Get(ctx context.Context, operation, path string) (json.RawMessage, error)
	Send(ctx context.Context, operation, method, path string, body any) (json.RawMessage, error)
}

// SourceLookup resolves the listing source registered for a provider.
type SourceLookup interface {
	Lookup(provider string) (ListingSource, bool)
}

// StoredRowParser normalizes rows served from the data service database.
type StoredRowParser interface {
	ParsePrograms(raw json.RawMessage, logger *slog.Logger) []domain.TvProgram
	ParseChannels(raw json.RawMessage, company string, logger *slog.Logger) []domain.TvChannel
}
