package ledger

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// NoteOptions controls optional note content.
type NoteOptions struct {
	AppendTotals bool
}

const notePrefix = "Night nanny dates: "

// ComposeCompactNote renders sorted shifts as "Sun 5 Oct, Mon 6 Oct" for
// a payment memo.
func ComposeCompactNote(shifts []Shift) string {
	if len(shifts) == 0 {
		return "No shifts this week"
	}
	sorted := sortedByDate(shifts)
	parts := make([]string, len(sorted))
	for i, s := range sorted {
		parts[i] = s.Date.Format("Mon 2 Jan")
	}
	return strings.Join(parts, ", ")
}

// ComposeWeekNote renders the week-to-date note: compressed date runs,
// the shared hours when every shift has them, and totals when enabled.
func ComposeWeekNote(shifts []Shift, rate float64, opts NoteOptions) string {
	if len(shifts) == 0 {
		return "No shifts logged this week"
	}
	var b strings.Builder
	b.WriteString(notePrefix)
	b.WriteString(FormatRuns(CompressDates(shiftDates(shifts))))

	sum := Aggregate(shifts, rate)
	if sum.Uniform {
		fmt.Fprintf(&b, " (%s–%s)", sum.Start, sum.End)
	}
	if opts.AppendTotals {
		b.WriteString(totalsSuffix(sum))
	}
	return b.String()
}

// ComposeFullNote covers the entire shift history and always appends
// totals.
func ComposeFullNote(shifts []Shift, rate float64) string {
	if len(shifts) == 0 {
		return "No shifts logged"
	}
	var b strings.Builder
	b.WriteString(notePrefix)
	b.WriteString(FormatRuns(CompressDates(shiftDates(shifts))))
	b.WriteString(totalsSuffix(Aggregate(shifts, rate)))
	return b.String()
}

func totalsSuffix(sum Summary) string {
	unit := "nights"
	if sum.Nights == 1 {
		unit = "night"
	}
	return fmt.Sprintf(" — %d %s, ~%.2fh, %s", sum.Nights, unit, sum.Hours, FormatCurrency(sum.Due))
}

// FormatCurrency renders a dollar amount with en-US digit grouping and
// always two decimal places, so $1050 comes out as "$1,050.00".
func FormatCurrency(amount float64) string {
	p := message.NewPrinter(language.AmericanEnglish)
	return p.Sprintf("$%.2f", amount)
}

func shiftDates(shifts []Shift) []time.Time {
	out := make([]time.Time, len(shifts))
	for i, s := range shifts {
		out[i] = s.Date
	}
	return out
}

func sortedByDate(shifts []Shift) []Shift {
	out := append([]Shift(nil), shifts...)
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}
