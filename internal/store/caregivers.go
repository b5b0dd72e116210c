package store

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

func (s *Store) CreateCaregiver(name, role string, hourlyRate float64, defaultStart, defaultEnd, paymentInfo string) (*Caregiver, error) {
	id := uuid.NewString()
	now := time.Now().UTC().Format(time.RFC3339)
	_, err := s.db.Exec(
		`INSERT INTO caregivers (id, name, role, hourly_rate, default_start, default_end, payment_info, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		id, name, role, hourlyRate, defaultStart, defaultEnd, paymentInfo, now,
	)
	if err != nil {
		return nil, fmt.Errorf("insert caregiver: %w", err)
	}
	return s.GetCaregiver(id)
}

func (s *Store) GetCaregiver(id string) (*Caregiver, error) {
	c := &Caregiver{}
	var createdAt string
	var active int
	err := s.db.QueryRow(
		`SELECT id, name, role, hourly_rate, default_start, default_end, payment_info, active, created_at
		 FROM caregivers WHERE id = ?`, id,
	).Scan(&c.ID, &c.Name, &c.Role, &c.HourlyRate, &c.DefaultStart, &c.DefaultEnd, &c.PaymentInfo, &active, &createdAt)
	if err != nil {
		return nil, fmt.Errorf("get caregiver %s: %w", id, err)
	}
	c.Active = active == 1
	c.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	return c, nil
}

func (s *Store) ListCaregivers(includeInactive bool) ([]Caregiver, error) {
	query := `SELECT id, name, role, hourly_rate, default_start, default_end, payment_info, active, created_at FROM caregivers`
	if !includeInactive {
		query += ` WHERE active = 1`
	}
	query += ` ORDER BY name`

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("list caregivers: %w", err)
	}
	defer rows.Close()

	var caregivers []Caregiver
	for rows.Next() {
		var c Caregiver
		var createdAt string
		var active int
		if err := rows.Scan(&c.ID, &c.Name, &c.Role, &c.HourlyRate, &c.DefaultStart, &c.DefaultEnd, &c.PaymentInfo, &active, &createdAt); err != nil {
			return nil, err
		}
		c.Active = active == 1
		c.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		caregivers = append(caregivers, c)
	}
	return caregivers, rows.Err()
}

func (s *Store) UpdateCaregiver(id, name, role string, hourlyRate float64, defaultStart, defaultEnd, paymentInfo string) error {
	_, err := s.db.Exec(
		`UPDATE caregivers SET name = ?, role = ?, hourly_rate = ?, default_start = ?, default_end = ?, payment_info = ? WHERE id = ?`,
		name, role, hourlyRate, defaultStart, defaultEnd, paymentInfo, id,
	)
	return err
}

func (s *Store) DeactivateCaregiver(id string) error {
	_, err := s.db.Exec(`UPDATE caregivers SET active = 0 WHERE id = ?`, id)
	return err
}

// DeleteCaregiver removes a caregiver and, through the foreign key
// cascade, every shift that references them.
func (s *Store) DeleteCaregiver(id string) error {
	_, err := s.db.Exec(`DELETE FROM caregivers WHERE id = ?`, id)
	return err
}

// RateFor resolves the hourly rate for a caregiver reference. An empty
// or unknown reference (legacy shifts) falls back to the global rate
// from settings.
func (s *Store) RateFor(caregiverID string) float64 {
	if caregiverID != "" {
		var rate float64
		err := s.db.QueryRow(`SELECT hourly_rate FROM caregivers WHERE id = ?`, caregiverID).Scan(&rate)
		if err == nil {
			return rate
		}
	}
	return s.FallbackRate()
}
