package domain

import "strings"

// Period selects the time window of a schedule request.
type Period string

const (
	PeriodToday Period = "today"
	PeriodWeek  Period = "week"
)

// ParsePeriod accepts "today" and "week" in any casing.
func ParsePeriod(raw string) (Period, bool) {
	switch Period(strings.ToLower(strings.TrimSpace(raw))) {
	case PeriodToday:
		return PeriodToday, true
	case PeriodWeek:
		return PeriodWeek, true
	default:
		return "", false
	}
}
