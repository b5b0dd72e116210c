package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/nightledger/nightledger/internal/ledger"
)

const dateLayout = "2006-01-02"

// CreateShift logs a night for a caregiver. The date is stripped to its
// anchor day before storing; a second shift for the same caregiver and
// day violates the unique constraint and fails. Duplicate detection at
// the ledger level is advisory and happens before calling this.
func (s *Store) CreateShift(caregiverID string, day time.Time, startTime, endTime string) (*Shift, error) {
	now := time.Now().UTC().Format(time.RFC3339)
	res, err := s.db.Exec(
		`INSERT INTO shifts (caregiver_id, date, start_time, end_time, created_at) VALUES (?, ?, ?, ?, ?)`,
		nullableID(caregiverID), ledger.Day(day).Format(dateLayout), startTime, endTime, now,
	)
	if err != nil {
		return nil, fmt.Errorf("insert shift: %w", err)
	}
	id, _ := res.LastInsertId()
	return s.GetShift(id)
}

func (s *Store) GetShift(id int64) (*Shift, error) {
	sh := &Shift{}
	var dateStr, createdAt string
	var caregiverID sql.NullString

	err := s.db.QueryRow(
		`SELECT id, caregiver_id, date, start_time, end_time, created_at FROM shifts WHERE id = ?`, id,
	).Scan(&sh.ID, &caregiverID, &dateStr, &sh.StartTime, &sh.EndTime, &createdAt)
	if err != nil {
		return nil, fmt.Errorf("get shift %d: %w", id, err)
	}
	if caregiverID.Valid {
		sh.CaregiverID = caregiverID.String
	}
	sh.Date, _ = time.Parse(dateLayout, dateStr)
	sh.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	return sh, nil
}

func (s *Store) ListShifts(f ShiftFilter) ([]Shift, error) {
	query := `SELECT id, caregiver_id, date, start_time, end_time, created_at FROM shifts WHERE 1=1`
	var args []any

	if f.CaregiverID != nil {
		query += ` AND caregiver_id = ?`
		args = append(args, *f.CaregiverID)
	}
	if f.From != nil {
		query += ` AND date >= ?`
		args = append(args, ledger.Day(*f.From).Format(dateLayout))
	}
	if f.To != nil {
		query += ` AND date <= ?`
		args = append(args, ledger.Day(*f.To).Format(dateLayout))
	}
	query += ` ORDER BY date DESC`
	if f.Limit > 0 {
		query += fmt.Sprintf(` LIMIT %d`, f.Limit)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list shifts: %w", err)
	}
	defer rows.Close()

	var shifts []Shift
	for rows.Next() {
		var sh Shift
		var dateStr, createdAt string
		var caregiverID sql.NullString
		if err := rows.Scan(&sh.ID, &caregiverID, &dateStr, &sh.StartTime, &sh.EndTime, &createdAt); err != nil {
			return nil, err
		}
		if caregiverID.Valid {
			sh.CaregiverID = caregiverID.String
		}
		sh.Date, _ = time.Parse(dateLayout, dateStr)
		sh.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		shifts = append(shifts, sh)
	}
	return shifts, rows.Err()
}

// UpdateShiftTimes edits an existing shift's start and end. The anchor
// date and caregiver are fixed at creation; edits never re-check
// uniqueness.
func (s *Store) UpdateShiftTimes(id int64, startTime, endTime string) error {
	_, err := s.db.Exec(`UPDATE shifts SET start_time = ?, end_time = ? WHERE id = ?`, startTime, endTime, id)
	return err
}

func (s *Store) DeleteShift(id int64) error {
	_, err := s.db.Exec(`DELETE FROM shifts WHERE id = ?`, id)
	return err
}

// HasShift reports whether a shift already exists for the caregiver on
// the given anchor day, regardless of times. Used by the "log tonight"
// shortcuts so the same night is never double-logged.
func (s *Store) HasShift(caregiverID string, day time.Time) (bool, error) {
	var n int
	err := s.db.QueryRow(
		`SELECT COUNT(*) FROM shifts WHERE caregiver_id = ? AND date = ?`,
		caregiverID, ledger.Day(day).Format(dateLayout),
	).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("has shift: %w", err)
	}
	return n > 0, nil
}

func nullableID(id string) any {
	if id == "" {
		return nil
	}
	return id
}
