package ledger

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

const minutesPerDay = 24 * 60

// ParseError reports a malformed "HH:mm" clock string.
type ParseError struct {
	Value  string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse clock %q: %s", e.Value, e.Reason)
}

// ParseClock parses a 24-hour "HH:mm" string into minutes since midnight.
func ParseClock(s string) (int, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return 0, &ParseError{Value: s, Reason: "want HH:mm"}
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, &ParseError{Value: s, Reason: "hour is not a number"}
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, &ParseError{Value: s, Reason: "minute is not a number"}
	}
	if hour < 0 || hour > 23 {
		return 0, &ParseError{Value: s, Reason: "hour out of range"}
	}
	if minute < 0 || minute > 59 {
		return 0, &ParseError{Value: s, Reason: "minute out of range"}
	}
	return hour*60 + minute, nil
}

// Duration returns the elapsed hours between two clock strings. An end
// at or before the start wraps to the following day, so an overnight
// "22:00"–"08:00" shift is 10 hours and equal times are a full 24.
func Duration(start, end string) (float64, error) {
	s, err := ParseClock(start)
	if err != nil {
		return 0, err
	}
	e, err := ParseClock(end)
	if err != nil {
		return 0, err
	}
	if e <= s {
		e += minutesPerDay
	}
	return float64(e-s) / 60.0, nil
}

// RoundQuarter rounds hours to the nearest quarter hour for billing.
// Halves round away from zero: 1.125 bills as 1.25.
func RoundQuarter(hours float64) float64 {
	return math.Round(hours*4) / 4
}
