package ledger

import (
	"sort"
	"strconv"
	"strings"
	"time"
)

// DateRun is a maximal span of consecutive calendar days within a date
// set, both ends inclusive and anchored at midnight UTC.
type DateRun struct {
	Start time.Time
	End   time.Time
}

// Day strips the time of day, anchoring d at midnight UTC.
func Day(d time.Time) time.Time {
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
}

// CompressDates groups an unordered date collection (duplicates allowed)
// into sorted maximal runs of consecutive days. The runs partition the
// deduplicated input: every date lands in exactly one run and no two
// runs touch.
func CompressDates(dates []time.Time) []DateRun {
	if len(dates) == 0 {
		return nil
	}
	seen := make(map[time.Time]struct{}, len(dates))
	days := make([]time.Time, 0, len(dates))
	for _, d := range dates {
		day := Day(d)
		if _, ok := seen[day]; ok {
			continue
		}
		seen[day] = struct{}{}
		days = append(days, day)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

	var runs []DateRun
	start, prev := days[0], days[0]
	for _, d := range days[1:] {
		if d.Equal(prev.AddDate(0, 0, 1)) {
			prev = d
			continue
		}
		runs = append(runs, DateRun{Start: start, End: prev})
		start, prev = d, d
	}
	return append(runs, DateRun{Start: start, End: prev})
}

// FormatRuns renders runs as a compact comma-joined string, e.g.
// "Oct 5–7, Oct 9, Oct 14–15". A run that crosses a month or year keeps
// the full month on both ends and spaces the dash ("Oct 30 – Nov 2") to
// set it apart from the same-month form.
func FormatRuns(runs []DateRun) string {
	parts := make([]string, 0, len(runs))
	for _, r := range runs {
		switch {
		case r.Start.Equal(r.End):
			parts = append(parts, r.Start.Format("Jan 2"))
		case r.Start.Month() == r.End.Month() && r.Start.Year() == r.End.Year():
			parts = append(parts, r.Start.Format("Jan 2")+"–"+strconv.Itoa(r.End.Day()))
		default:
			parts = append(parts, r.Start.Format("Jan 2")+" – "+r.End.Format("Jan 2"))
		}
	}
	return strings.Join(parts, ", ")
}
