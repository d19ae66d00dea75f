package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/spec-kit/kclean/internal/domain"
)

// UserRecord is a stored account, password hash included.
type UserRecord struct {
	domain.Subject
	PasswordHash string
}

const userColumns = `id, public_code, name, email, password_hash, role, points, created_at`

func scanUser(row *sql.Row) (*UserRecord, error) {
	var rec UserRecord
	var role string
	err := row.Scan(&rec.ID, &rec.PublicCode, &rec.Name, &rec.Email, &rec.PasswordHash, &role, &rec.Points, &rec.CreatedAt)
	if err != nil {
		return nil, err
	}
	rec.Role = domain.Role(role)
	return &rec, nil
}

// CreateUser inserts an account.
func (s *Store) CreateUser(ctx context.Context, rec *UserRecord) error {
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO users (`+userColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.PublicCode, rec.Name, rec.Email, rec.PasswordHash, string(rec.Role), rec.Points, rec.CreatedAt,
	)
	return err
}

// GetUserByID fetches an account by primary key.
func (s *Store) GetUserByID(ctx context.Context, id string) (*UserRecord, error) {
	return scanUser(s.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = ?`, id))
}

// GetUserByEmail fetches an account by login email.
func (s *Store) GetUserByEmail(ctx context.Context, email string) (*UserRecord, error) {
	return scanUser(s.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = ?`, email))
}

// GetUserByPublicCode fetches an account by its QR profile code.
func (s *Store) GetUserByPublicCode(ctx context.Context, code string) (*UserRecord, error) {
	return scanUser(s.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE public_code = ?`, code))
}

// ListUsers returns every account ordered by creation.
func (s *Store) ListUsers(ctx context.Context) ([]domain.Subject, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, public_code, name, email, role, points, created_at FROM users ORDER BY created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close() //nolint:errcheck

	var subjects []domain.Subject
	for rows.Next() {
		var subject domain.Subject
		var role string
		if err := rows.Scan(&subject.ID, &subject.PublicCode, &subject.Name, &subject.Email, &role, &subject.Points, &subject.CreatedAt); err != nil {
			return nil, err
		}
		subject.Role = domain.Role(role)
		subjects = append(subjects, subject)
	}
	return subjects, rows.Err()
}

// UpdateUser applies partial edits; nil fields are untouched.
func (s *Store) UpdateUser(ctx context.Context, id string, name, email *string) error {
	if name != nil {
		if _, err := s.db.ExecContext(ctx, `UPDATE users SET name = ? WHERE id = ?`, *name, id); err != nil {
			return err
		}
	}
	if email != nil {
		if _, err := s.db.ExecContext(ctx, `UPDATE users SET email = ? WHERE id = ?`, *email, id); err != nil {
			return err
		}
	}
	return nil
}

// DeleteUser removes an account.
func (s *Store) DeleteUser(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
	return err
}

// AdjustPoints moves a balance by delta and returns the new balance. A
// negative result aborts without writing.
func (s *Store) AdjustPoints(ctx context.Context, userID string, delta int) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback() //nolint:errcheck

	var points int
	if err := tx.QueryRowContext(ctx, `SELECT points FROM users WHERE id = ?`, userID).Scan(&points); err != nil {
		return 0, err
	}
	points += delta
	if points < 0 {
		return 0, ErrInsufficientPoints
	}
	if _, err := tx.ExecContext(ctx, `UPDATE users SET points = ? WHERE id = ?`, points, userID); err != nil {
		return 0, err
	}
	return points, tx.Commit()
}
