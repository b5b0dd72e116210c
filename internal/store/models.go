package store

import (
	"time"

	"github.com/nightledger/nightledger/internal/ledger"
)

type Caregiver struct {
	ID           string // uuid
	Name         string
	Role         string
	HourlyRate   float64
	DefaultStart string // HH:mm
	DefaultEnd   string // HH:mm
	PaymentInfo  string
	Active       bool
	CreatedAt    time.Time
}

// DisplayName is the caregiver's name with the role appended when it
// adds information.
func (c Caregiver) DisplayName() string {
	if c.Role == "" || c.Role == c.Name {
		return c.Name
	}
	return c.Name + " (" + c.Role + ")"
}

type Shift struct {
	ID          int64
	CaregiverID string // empty for legacy rows logged before caregivers existed
	Date        time.Time
	StartTime   string
	EndTime     string
	CreatedAt   time.Time
}

// Ledger converts a stored shift into the computation core's shape.
func (s Shift) Ledger() ledger.Shift {
	return ledger.Shift{
		ID:          s.ID,
		CaregiverID: s.CaregiverID,
		Date:        s.Date,
		Start:       s.StartTime,
		End:         s.EndTime,
	}
}

// ToLedger converts a shift slice for the computation core.
func ToLedger(shifts []Shift) []ledger.Shift {
	out := make([]ledger.Shift, len(shifts))
	for i, s := range shifts {
		out[i] = s.Ledger()
	}
	return out
}

type Setting struct {
	Key   string
	Value string
}

// ShiftFilter is used to filter shifts in queries.
type ShiftFilter struct {
	CaregiverID *string
	From        *time.Time
	To          *time.Time
	Limit       int
}
