package utils

import (
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/timeslot/internal/constants"
)

// All wall-clock arithmetic happens in UTC so that no daylight-saving
// transition can shift a naive local time.

// ParseTime parses a time string in the standard format (HH:MM).
// Single-digit hours are rejected so that formatted and parsed values compare equal.
func ParseTime(timeStr string) (time.Time, error) {
	if len(timeStr) != len(constants.TimeFormat) {
		return time.Time{}, fmt.Errorf("invalid time %q: expected HH:MM", timeStr)
	}
	return time.Parse(constants.TimeFormat, timeStr)
}

// ParseDate parses a date string in the standard format (YYYY-MM-DD) at midnight.
func ParseDate(dateStr string) (time.Time, error) {
	return time.Parse(constants.DateFormat, dateStr)
}

// ParseTimeToMinutes parses a time string (HH:MM) and returns the number of minutes from midnight.
func ParseTimeToMinutes(timeStr string) (int, error) {
	t, err := ParseTime(timeStr)
	if err != nil {
		return 0, err
	}
	return t.Hour()*60 + t.Minute(), nil
}

// CombineDateAndTime combines a date string (YYYY-MM-DD) and time string (HH:MM)
// into a single wall-clock instant.
func CombineDateAndTime(dateStr, timeStr string) (time.Time, error) {
	date, err := ParseDate(dateStr)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date format: %w", err)
	}

	timeOfDay, err := ParseTime(timeStr)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time format: %w", err)
	}

	return time.Date(
		date.Year(), date.Month(), date.Day(),
		timeOfDay.Hour(), timeOfDay.Minute(), 0, 0,
		time.UTC,
	), nil
}

// RollOver advances end by one day when it is the midnight marker and does
// not come after start.
func RollOver(start, end time.Time, endStr string) time.Time {
	if endStr == constants.Midnight && !end.After(start) {
		return end.AddDate(0, 0, 1)
	}
	return end
}

// Naive drops the location of t and keeps its wall clock.
func Naive(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
}

// StartOfDay returns midnight of the day containing t.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// MinutesSinceMidnight returns the whole minutes elapsed since the start of t's day.
func MinutesSinceMidnight(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}

// FloorToGranularity rounds t down to the previous boundary of a grid of
// granularityMin-minute steps anchored at midnight. Seconds are dropped.
func FloorToGranularity(t time.Time, granularityMin int) time.Time {
	t = t.Truncate(time.Minute)
	if granularityMin <= 0 {
		return t
	}
	diff := MinutesSinceMidnight(t) % granularityMin
	return t.Add(-time.Duration(diff) * time.Minute)
}

// FormatDate formats t as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(constants.DateFormat)
}

// FormatTime formats t as HH:MM.
func FormatTime(t time.Time) string {
	return t.Format(constants.TimeFormat)
}

// ValidateTimeFormat checks if the string matches the standard time format.
func ValidateTimeFormat(timeStr string) bool {
	_, err := ParseTime(timeStr)
	return err == nil
}

// ValidateDateFormat checks if the string matches the standard date format.
func ValidateDateFormat(dateStr string) bool {
	_, err := ParseDate(dateStr)
	return err == nil
}

// ResolveDate turns "today", "tomorrow" or a YYYY-MM-DD string into a date string.
func ResolveDate(s string, now time.Time) (string, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "today":
		return FormatDate(now), nil
	case "tomorrow":
		return FormatDate(now.AddDate(0, 0, 1)), nil
	}
	if !ValidateDateFormat(s) {
		return "", fmt.Errorf("invalid date %q, use YYYY-MM-DD, 'today' or 'tomorrow'", s)
	}
	return s, nil
}
