package infrastructure

import (
	"encoding/json"
	"errors"
	"log/slog"

	"tvGuideBff/internal/modules/schedule/application/port"
	"tvGuideBff/internal/modules/schedule/domain"
	"tvGuideBff/internal/shared/normalization"
)

const categoryScheme = "category"

type mediasetEntry struct {
	Listings []json.RawMessage `json:"listings"`
}

type mediasetListing struct {
	EpgTitle    *string          `json:"mediasetlisting$epgTitle"`
	Description *string          `json:"description"`
	Program     *mediasetProgram `json:"program"`
	StartTime   epochTime        `json:"startTime"`
	EndTime     epochTime        `json:"endTime"`
}

type mediasetProgram struct {
	Title       *string              `json:"title"`
	PublishInfo *mediasetPublishInfo `json:"mediasetprogram$publishInfo"`
	Tags        []*mediasetTag       `json:"tags"`
}

type mediasetPublishInfo struct {
	Channel     *string `json:"channel"`
	Description *string `json:"description"`
}

type mediasetTag struct {
	Scheme *string `json:"scheme"`
	Title  *string `json:"title"`
}

// MediasetSource parses Mediaset listing payloads: entries, each holding listings.
type MediasetSource struct {
	skips port.SkipRecorder
}

func NewMediasetSource(skips port.SkipRecorder) *MediasetSource {
	return &MediasetSource{skips: skips}
}

func (s *MediasetSource) Provider() string { return normalization.ProviderMediaset }

func (s *MediasetSource) Parse(raw json.RawMessage, channelHint string, logger *slog.Logger) []domain.TvProgram {
	programs := []domain.TvProgram{}
	if normalization.IsAbsent(raw) {
		logger.Error("Invalid Request, no data provided", slog.String("provider", s.Provider()))
		return programs
	}
	entries, err := normalization.Items(raw, "entries")
	if err != nil {
		logger.Error("Error parsing mediaset's programs", slog.Any("error", err))
		return programs
	}

	for _, rawEntry := range entries {
		var entry mediasetEntry
		if err := json.Unmarshal(rawEntry, &entry); err != nil {
			logger.Error("Error parsing mediaset entry", slog.Any("error", err))
			recordSkip(s.skips, s.Provider())
			continue
		}
		for _, rawListing := range entry.Listings {
			program, err := parseMediasetListing(rawListing)
			if err != nil {
				logger.Error("Error parsing mediaset program", slog.Any("error", err))
				recordSkip(s.skips, s.Provider())
				continue
			}
			programs = append(programs, program)
		}
	}

	domain.OverrideChannel(programs, channelHint)
	logger.Info("Parsed programs", slog.String("provider", s.Provider()), slog.Int("count", len(programs)))
	return programs
}

func parseMediasetListing(raw json.RawMessage) (domain.TvProgram, error) {
	if normalization.IsAbsent(raw) {
		return domain.TvProgram{}, errors.New("listing is null")
	}
	var listing mediasetListing
	if err := json.Unmarshal(raw, &listing); err != nil {
		return domain.TvProgram{}, err
	}
	if listing.StartTime.value == nil || listing.EndTime.value == nil {
		return domain.TvProgram{}, errors.New("listing without start or end time")
	}
	if listing.EndTime.value.Before(*listing.StartTime.value) {
		return domain.TvProgram{}, errors.New("listing ends before it starts")
	}

	program := domain.TvProgram{
		Title:       normalization.String(listing.EpgTitle),
		Description: normalization.NullableString(listing.Description),
		StartTime:   domain.NewTimestamp(listing.StartTime.value),
		EndTime:     domain.NewTimestamp(listing.EndTime.value),
	}
	if details := listing.Program; details != nil {
		if program.Title == "" {
			program.Title = normalization.String(details.Title)
		}
		if info := details.PublishInfo; info != nil {
			program.ChannelID = normalization.String(info.Channel)
			program.Channel = normalization.String(info.Description)
		}
		program.Category = categoryFromTags(details.Tags)
	}
	return program, nil
}

// categoryFromTags normalizes the first tag in the category scheme.
func categoryFromTags(tags []*mediasetTag) string {
	for _, tag := range tags {
		if tag == nil || tag.Scheme == nil || *tag.Scheme != categoryScheme {
			continue
		}
		return domain.NormalizeCategory(tag.Title)
	}
	return ""
}

var _ port.ListingSource = (*MediasetSource)(nil)
