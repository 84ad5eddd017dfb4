package infrastructure

import (
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"tvGuideBff/internal/modules/schedule/application/port"
	"tvGuideBff/internal/modules/schedule/domain"
	"tvGuideBff/internal/shared/normalization"
)

type raiEvent struct {
	Name        *string      `json:"name"`
	Description *string      `json:"description"`
	Channel     *string      `json:"channel"`
	Date        *string      `json:"date"`
	Hour        *string      `json:"hour"`
	Duration    *string      `json:"duration"`
	Typology    *raiTypology `json:"typology"`
}

type raiTypology struct {
	Name *string `json:"name"`
}

// raiDay wraps the events of one day in the week payload.
type raiDay struct {
	Events []json.RawMessage `json:"events"`
}

// RaiSource parses Rai schedules, where start and end are split into date, hour and duration.
type RaiSource struct {
	location *time.Location
	skips    port.SkipRecorder
}

func NewRaiSource(location *time.Location, skips port.SkipRecorder) *RaiSource {
	if location == nil {
		location = time.Local
	}
	return &RaiSource{location: location, skips: skips}
}

func (s *RaiSource) Provider() string { return normalization.ProviderRai }

func (s *RaiSource) Parse(raw json.RawMessage, channelHint string, logger *slog.Logger) []domain.TvProgram {
	programs := []domain.TvProgram{}
	if normalization.IsAbsent(raw) {
		logger.Error("Invalid Request, no data provided", slog.String("provider", s.Provider()))
		return programs
	}
	items, err := normalization.Items(raw, "events")
	if err != nil {
		logger.Error("Error parsing rai's programs", slog.Any("error", err))
		return programs
	}

	for _, item := range s.flattenDays(items) {
		program, err := s.parseEvent(item, logger)
		if err != nil {
			logger.Error("Error parsing rai program", slog.Any("error", err))
			recordSkip(s.skips, s.Provider())
			continue
		}
		programs = append(programs, program)
	}

	domain.OverrideChannel(programs, channelHint)
	logger.Info("Parsed programs", slog.String("provider", s.Provider()), slog.Int("count", len(programs)))
	return programs
}

// flattenDays expands day objects ({"events": [...]}) in place, keeping plain events as they are.
func (s *RaiSource) flattenDays(items []json.RawMessage) []json.RawMessage {
	flat := make([]json.RawMessage, 0, len(items))
	for _, item := range items {
		var day raiDay
		if err := json.Unmarshal(item, &day); err == nil && day.Events != nil {
			flat = append(flat, day.Events...)
			continue
		}
		flat = append(flat, item)
	}
	return flat
}

func (s *RaiSource) parseEvent(raw json.RawMessage, logger *slog.Logger) (domain.TvProgram, error) {
	if normalization.IsAbsent(raw) {
		return domain.TvProgram{}, errors.New("event is null")
	}
	var event raiEvent
	if err := json.Unmarshal(raw, &event); err != nil {
		return domain.TvProgram{}, err
	}

	start := domain.ReconstructStart(normalization.String(event.Date), normalization.String(event.Hour), s.location)
	if start == nil {
		return domain.TvProgram{}, errors.New("event start time cannot be reconstructed")
	}
	end := domain.AddDuration(start, normalization.String(event.Duration))
	if end == nil {
		logger.Warn("rai program without end time", slog.String("title", normalization.String(event.Name)), slog.String("duration", normalization.String(event.Duration)))
	}

	var typology *string
	if event.Typology != nil {
		typology = event.Typology.Name
	}
	channel := normalization.String(event.Channel)
	return domain.TvProgram{
		Title:       normalization.String(event.Name),
		Description: normalization.NullableString(event.Description),
		ChannelID:   channel,
		Channel:     channel,
		Category:    domain.NormalizeCategory(typology),
		StartTime:   domain.NewTimestamp(start),
		EndTime:     domain.NewTimestamp(end),
	}, nil
}

var _ port.ListingSource = (*RaiSource)(nil)
