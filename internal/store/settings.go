package store

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

func (s *Store) GetSetting(key string) (string, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if err != nil {
		return "", fmt.Errorf("get setting %q: %w", key, err)
	}
	return value, nil
}

func (s *Store) SetSetting(key, value string) error {
	_, err := s.db.Exec(
		`INSERT INTO settings (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value,
	)
	return err
}

func (s *Store) GetAllSettings() ([]Setting, error) {
	rows, err := s.db.Query(`SELECT key, value FROM settings ORDER BY key`)
	if err != nil {
		return nil, fmt.Errorf("list settings: %w", err)
	}
	defer rows.Close()

	var settings []Setting
	for rows.Next() {
		var s Setting
		if err := rows.Scan(&s.Key, &s.Value); err != nil {
			return nil, err
		}
		settings = append(settings, s)
	}
	return settings, rows.Err()
}

var weekdayNames = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// ParseWeekday maps a lowercase weekday name to its time.Weekday.
func ParseWeekday(name string) (time.Weekday, bool) {
	wd, ok := weekdayNames[name]
	return wd, ok
}

// WeekdayName is the lowercase settings-key form of a weekday.
func WeekdayName(wd time.Weekday) string {
	return strings.ToLower(wd.String())
}

// WeekStart returns the configured first day of the billing week,
// defaulting to Sunday when unset or unreadable.
func (s *Store) WeekStart() time.Weekday {
	v, err := s.GetSetting("week_start")
	if err != nil {
		return time.Sunday
	}
	if wd, ok := ParseWeekday(v); ok {
		return wd
	}
	return time.Sunday
}

func (s *Store) SetWeekStart(wd time.Weekday) error {
	return s.SetSetting("week_start", WeekdayName(wd))
}

// AppendTotals reports whether notes should carry aggregate totals.
func (s *Store) AppendTotals() bool {
	v, err := s.GetSetting("append_totals")
	if err != nil {
		return true
	}
	return v == "true"
}

func (s *Store) SetAppendTotals(on bool) error {
	return s.SetSetting("append_totals", strconv.FormatBool(on))
}

// FallbackRate is the global hourly rate used for shifts whose
// caregiver reference is absent.
func (s *Store) FallbackRate() float64 {
	v, err := s.GetSetting("hourly_rate")
	if err != nil {
		return 0
	}
	rate, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0
	}
	return rate
}

func (s *Store) SetFallbackRate(rate float64) error {
	return s.SetSetting("hourly_rate", strconv.FormatFloat(rate, 'f', -1, 64))
}

// DefaultHours returns the default start/end pair for a weekday, used
// by the log-tonight shortcuts. Falls back to 22:00-08:00 when the
// stored value is missing or malformed.
func (s *Store) DefaultHours(wd time.Weekday) (start, end string) {
	v, err := s.GetSetting("default_hours_" + WeekdayName(wd))
	if err != nil {
		return "22:00", "08:00"
	}
	parts := strings.SplitN(v, "-", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "22:00", "08:00"
	}
	return parts[0], parts[1]
}

func (s *Store) SetDefaultHours(wd time.Weekday, start, end string) error {
	return s.SetSetting("default_hours_"+WeekdayName(wd), start+"-"+end)
}
