package store

import (
	"context"
	"time"

	"github.com/spec-kit/kclean/internal/domain"
)

// CreateDeposit records a weighed drop-off.
func (s *Store) CreateDeposit(ctx context.Context, d *domain.Deposit) error {
	if d.CreatedAt.IsZero() {
		d.CreatedAt = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO deposits (id, user_id, staff_id, category, weight_kg, points, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		d.ID, d.UserID, d.StaffID, string(d.Category), d.WeightKg, d.Points, d.CreatedAt,
	)
	return err
}

// ListDeposits returns a resident's deposit history, newest first.
func (s *Store) ListDeposits(ctx context.Context, userID string) ([]domain.Deposit, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, user_id, staff_id, category, weight_kg, points, created_at
		 FROM deposits WHERE user_id = ? ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close() //nolint:errcheck

	var deposits []domain.Deposit
	for rows.Next() {
		var d domain.Deposit
		var category string
		if err := rows.Scan(&d.ID, &d.UserID, &d.StaffID, &category, &d.WeightKg, &d.Points, &d.CreatedAt); err != nil {
			return nil, err
		}
		d.Category = domain.TrashCategory(category)
		deposits = append(deposits, d)
	}
	return deposits, rows.Err()
}
