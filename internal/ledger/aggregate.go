package ledger

import "time"

// Shift is one logged night of care. Date is the anchor day the
// caregiver arrived, stripped to start of day; Start and End are
// wall-clock "HH:mm" strings, and End may be numerically earlier than
// Start when the shift crosses midnight. CaregiverID is empty on legacy
// records that predate caregivers.
type Shift struct {
	ID          int64
	CaregiverID string
	Date        time.Time
	Start       string
	End         string
}

// Hours returns the shift's raw duration in hours.
func (s Shift) Hours() (float64, error) {
	return Duration(s.Start, s.End)
}

// BillableHours is the quarter-hour-rounded duration a night bills for.
// A shift with unparseable times bills as zero; interactive validation
// rejects those at entry, so this keeps aggregate totals bounded.
func (s Shift) BillableHours() float64 {
	h, err := Duration(s.Start, s.End)
	if err != nil {
		return 0
	}
	return RoundQuarter(h)
}

// Summary aggregates a shift collection for billing.
type Summary struct {
	Nights  int
	Hours   float64 // sum of per-shift rounded hours
	Due     float64
	Uniform bool   // every shift shares the same start/end pair
	Start   string // the shared times, set only when Uniform
	End     string
}

// Aggregate summarizes shifts at the given hourly rate. Rounding happens
// per shift before summation, so the total always matches the sum of
// what the individual nights bill.
func Aggregate(shifts []Shift, rate float64) Summary {
	sum := Summary{Nights: len(shifts)}
	if len(shifts) == 0 {
		return sum
	}
	sum.Uniform = true
	sum.Start, sum.End = shifts[0].Start, shifts[0].End
	for _, s := range shifts {
		sum.Hours += s.BillableHours()
		if s.Start != sum.Start || s.End != sum.End {
			sum.Uniform = false
		}
	}
	if !sum.Uniform {
		sum.Start, sum.End = "", ""
	}
	sum.Due = sum.Hours * rate
	return sum
}

// IsDuplicate reports whether a shift for the same caregiver, anchor
// date, and exact start/end pair already exists. Advisory only: the
// caller decides whether to reject, and edits to an existing shift's
// times never consult this.
func IsDuplicate(shifts []Shift, caregiverID string, date time.Time, start, end string) bool {
	day := Day(date)
	for _, s := range shifts {
		if s.CaregiverID == caregiverID && Day(s.Date).Equal(day) && s.Start == start && s.End == end {
			return true
		}
	}
	return false
}
