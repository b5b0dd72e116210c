package ledger

import (
	"sort"
	"time"
)

// StartOfWeek returns the most recent day at or before ref whose weekday
// matches weekStart, at start of day. At most seven steps back.
func StartOfWeek(ref time.Time, weekStart time.Weekday) time.Time {
	d := Day(ref)
	for d.Weekday() != weekStart {
		d = d.AddDate(0, 0, -1)
	}
	return d
}

// WeekToDate filters shifts to the inclusive window from the start of
// ref's week through ref itself. Shifts dated after ref are excluded
// even when they fall inside the calendar week.
func WeekToDate(shifts []Shift, ref time.Time, weekStart time.Weekday) []Shift {
	start := StartOfWeek(ref, weekStart)
	end := Day(ref)
	var out []Shift
	for _, s := range shifts {
		d := Day(s.Date)
		if !d.Before(start) && !d.After(end) {
			out = append(out, s)
		}
	}
	return out
}

// WeekGroup is one past week of shifts, keyed by that week's start day.
type WeekGroup struct {
	WeekStart time.Time
	Shifts    []Shift
}

// Historical returns shifts strictly before the current week, grouped by
// the start of each shift's own week. Groups come most recent week
// first; shifts within a group are ordered by date ascending.
func Historical(shifts []Shift, ref time.Time, weekStart time.Weekday) []WeekGroup {
	cutoff := StartOfWeek(ref, weekStart)
	byWeek := make(map[time.Time][]Shift)
	for _, s := range shifts {
		d := Day(s.Date)
		if !d.Before(cutoff) {
			continue
		}
		ws := StartOfWeek(d, weekStart)
		byWeek[ws] = append(byWeek[ws], s)
	}

	groups := make([]WeekGroup, 0, len(byWeek))
	for ws, group := range byWeek {
		sort.Slice(group, func(i, j int) bool { return group[i].Date.Before(group[j].Date) })
		groups = append(groups, WeekGroup{WeekStart: ws, Shifts: group})
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i].WeekStart.After(groups[j].WeekStart) })
	return groups
}
