package export

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/nightledger/nightledger/internal/store"
)

type jsonExport struct {
	ExportedAt string      `json:"exported_at"`
	Count      int         `json:"count"`
	Shifts     []jsonShift `json:"shifts"`
}

type jsonShift struct {
	ID          int64   `json:"id"`
	Caregiver   string  `json:"caregiver"`
	CaregiverID string  `json:"caregiver_id,omitempty"`
	Date        string  `json:"date"`
	Start       string  `json:"start"`
	End         string  `json:"end"`
	Hours       float64 `json:"hours"`
	Amount      float64 `json:"amount"`
}

func ToJSON(shifts []store.Shift, caregivers map[string]*store.Caregiver, fallbackRate float64, path string) error {
	export := jsonExport{
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
		Count:      len(shifts),
	}

	for _, s := range shifts {
		name, rate := resolveCaregiver(s.CaregiverID, caregivers, fallbackRate)
		hours := s.Ledger().BillableHours()

		export.Shifts = append(export.Shifts, jsonShift{
			ID:          s.ID,
			Caregiver:   name,
			CaregiverID: s.CaregiverID,
			Date:        s.Date.Format("2006-01-02"),
			Start:       s.StartTime,
			End:         s.EndTime,
			Hours:       hours,
			Amount:      hours * rate,
		})
	}

	data, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write json file: %w", err)
	}
	return nil
}
