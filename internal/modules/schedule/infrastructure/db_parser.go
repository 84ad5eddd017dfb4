package infrastructure

import (
	"encoding/json"
	"errors"
	"log/slog"

	"tvGuideBff/internal/modules/schedule/application/port"
	"tvGuideBff/internal/modules/schedule/domain"
	"tvGuideBff/internal/shared/normalization"
)

const (
	parserStoredPrograms = "stored_programs"
	parserChannels       = "channels"
)

type storedChannel struct {
	ID          *string `json:"id"`
	Description *string `json:"description"`
	Company     *string `json:"company"`
}

// StoredParser normalizes rows the data service returns from its own database.
type StoredParser struct {
	skips port.SkipRecorder
}

func NewStoredParser(skips port.SkipRecorder) *StoredParser {
	return &StoredParser{skips: skips}
}

// ParsePrograms decodes stored program rows one by one, dropping rows that do not decode.
func (p *StoredParser) ParsePrograms(raw json.RawMessage, logger *slog.Logger) []domain.TvProgram {
	programs := []domain.TvProgram{}
	items, err := normalization.Items(raw)
	if err != nil {
		logger.Error("Error parsing stored tv programs", slog.Any("error", err))
		return programs
	}
	for _, item := range items {
		if normalization.IsAbsent(item) {
			logger.Error("Error parsing stored tv program", slog.String("reason", "row is null"))
			recordSkip(p.skips, parserStoredPrograms)
			continue
		}
		var program domain.TvProgram
		if err := json.Unmarshal(item, &program); err != nil {
			logger.Error("Error parsing stored tv program", slog.Any("error", err))
			recordSkip(p.skips, parserStoredPrograms)
			continue
		}
		program.Category = domain.NormalizeCategory(&program.Category)
		programs = append(programs, program)
	}
	logger.Info("Parsed stored programs", slog.Int("count", len(programs)))
	return programs
}

// ParseChannels decodes channel rows, filling company when the row leaves it blank.
func (p *StoredParser) ParseChannels(raw json.RawMessage, company string, logger *slog.Logger) []domain.TvChannel {
	channels := []domain.TvChannel{}
	items, err := normalization.Items(raw)
	if err != nil {
		logger.Error("Error parsing channel list", slog.String("company", company), slog.Any("error", err))
		return channels
	}
	for _, item := range items {
		channel, err := parseChannel(item, company)
		if err != nil {
			logger.Error("Error parsing channel", slog.String("company", company), slog.Any("error", err))
			recordSkip(p.skips, parserChannels)
			continue
		}
		channels = append(channels, channel)
	}
	logger.Info("Parsed channels", slog.String("company", company), slog.Int("count", len(channels)))
	return channels
}

func parseChannel(raw json.RawMessage, company string) (domain.TvChannel, error) {
	if normalization.IsAbsent(raw) {
		return domain.TvChannel{}, errors.New("channel is null")
	}
	var row storedChannel
	if err := json.Unmarshal(raw, &row); err != nil {
		return domain.TvChannel{}, err
	}
	id := normalization.String(row.ID)
	if id == "" {
		return domain.TvChannel{}, errors.New("channel without id")
	}
	return domain.TvChannel{
		ID:          id,
		Description: normalization.String(row.Description),
		Company:     normalization.FirstNonEmpty(normalization.String(row.Company), company),
	}, nil
}
