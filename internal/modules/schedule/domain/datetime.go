package domain

import (
	"strconv"
	"strings"
	"time"
)

// ReconstructStart builds a start time from a "DD/MM/YYYY" date and an "HH:MM" hour in loc.
// Any missing or malformed component yields nil.
func ReconstructStart(date, hour string, loc *time.Location) *time.Time {
	if loc == nil {
		loc = time.Local
	}
	day, month, year, ok := splitNumbers(date, "/", 3)
	if !ok {
		return nil
	}
	hours, minutes, _, ok := splitNumbers(hour, ":", 2)
	if !ok {
		return nil
	}
	if month < 1 || month > 12 || day < 1 || day > daysIn(time.Month(month), year) {
		return nil
	}
	if hours > 23 || minutes > 59 {
		return nil
	}
	start := time.Date(year, time.Month(month), day, hours, minutes, 0, 0, loc)
	return &start
}

// maxDurationHours bounds a single broadcast to one month.
const maxDurationHours = 24 * 31

// AddDuration adds an "HH:MM:SS" duration to start. A nil start or a missing/malformed duration yields nil.
func AddDuration(start *time.Time, duration string) *time.Time {
	if start == nil {
		return nil
	}
	hours, minutes, seconds, ok := splitNumbers(duration, ":", 3)
	if !ok || hours > maxDurationHours || minutes > 59 || seconds > 59 {
		return nil
	}
	end := start.Add(time.Duration(hours)*time.Hour + time.Duration(minutes)*time.Minute + time.Duration(seconds)*time.Second)
	return &end
}

// splitNumbers parses exactly parts unsigned decimal integers separated by sep.
func splitNumbers(raw, sep string, parts int) (int, int, int, bool) {
	fields := strings.Split(strings.TrimSpace(raw), sep)
	if len(fields) != parts {
		return 0, 0, 0, false
	}
	values := [3]int{}
	for i, field := range fields {
		field = strings.TrimSpace(field)
		if !isDigits(field) {
			return 0, 0, 0, false
		}
		value, err := strconv.Atoi(field)
		if err != nil {
			return 0, 0, 0, false
		}
		values[i] = value
	}
	return values[0], values[1], values[2], true
}

func isDigits(field string) bool {
	if field == "" {
		return false
	}
	for _, r := range field {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func daysIn(month time.Month, year int) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
