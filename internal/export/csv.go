package export

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/nightledger/nightledger/internal/store"
)

func ToCSV(shifts []store.Shift, caregivers map[string]*store.Caregiver, fallbackRate float64, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	// Header
	if err := w.Write([]string{"ID", "Caregiver", "Date", "Start", "End", "Hours", "Amount"}); err != nil {
		return err
	}

	for _, s := range shifts {
		name, rate := resolveCaregiver(s.CaregiverID, caregivers, fallbackRate)
		hours := s.Ledger().BillableHours()

		row := []string{
			fmt.Sprintf("%d", s.ID),
			name,
			s.Date.Format("2006-01-02"),
			s.StartTime,
			s.EndTime,
			fmt.Sprintf("%.2f", hours),
			fmt.Sprintf("%.2f", hours*rate),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return w.Error()
}

// resolveCaregiver maps a caregiver reference to a display name and
// hourly rate. Legacy shifts without a caregiver bill at the fallback
// rate.
func resolveCaregiver(id string, caregivers map[string]*store.Caregiver, fallbackRate float64) (string, float64) {
	if c, ok := caregivers[id]; ok {
		return c.Name, c.HourlyRate
	}
	return "Unknown", fallbackRate
}
