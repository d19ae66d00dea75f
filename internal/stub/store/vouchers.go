package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/spec-kit/kclean/internal/domain"
)

// Store-level sentinel errors surfaced as business rejections by handlers.
var (
	ErrInsufficientPoints = errors.New("insufficient points")
	ErrVoucherNotActive   = errors.New("voucher not active")
)

// CreateVoucher inserts a merchant's voucher.
func (s *Store) CreateVoucher(ctx context.Context, v *domain.Voucher) error {
	if v.CreatedAt.IsZero() {
		v.CreatedAt = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO vouchers (id, merchant_id, name, description, discount_percent, price_points, expires_at, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		v.ID, v.MerchantID, v.Name, v.Description, v.DiscountPercent, v.PricePoints, v.ExpiresAt, v.CreatedAt,
	)
	return err
}

const voucherSelect = `
	SELECT v.id, v.merchant_id, u.name, v.name, v.description, v.discount_percent, v.price_points, v.expires_at, v.created_at
	FROM vouchers v JOIN users u ON u.id = v.merchant_id`

func scanVoucherRows(rows *sql.Rows) ([]domain.Voucher, error) {
	defer rows.Close() //nolint:errcheck

	var vouchers []domain.Voucher
	for rows.Next() {
		var v domain.Voucher
		if err := rows.Scan(&v.ID, &v.MerchantID, &v.MerchantName, &v.Name, &v.Description,
			&v.DiscountPercent, &v.PricePoints, &v.ExpiresAt, &v.CreatedAt); err != nil {
			return nil, err
		}
		vouchers = append(vouchers, v)
	}
	return vouchers, rows.Err()
}

// ListVouchers returns the whole catalog.
func (s *Store) ListVouchers(ctx context.Context) ([]domain.Voucher, error) {
	rows, err := s.db.QueryContext(ctx, voucherSelect+` ORDER BY v.created_at`)
	if err != nil {
		return nil, err
	}
	return scanVoucherRows(rows)
}

// ListMerchantVouchers returns one merchant's vouchers.
func (s *Store) ListMerchantVouchers(ctx context.Context, merchantID string) ([]domain.Voucher, error) {
	rows, err := s.db.QueryContext(ctx, voucherSelect+` WHERE v.merchant_id = ? ORDER BY v.created_at`, merchantID)
	if err != nil {
		return nil, err
	}
	return scanVoucherRows(rows)
}

// GetVoucher fetches one catalog voucher.
func (s *Store) GetVoucher(ctx context.Context, id string) (*domain.Voucher, error) {
	rows, err := s.db.QueryContext(ctx, voucherSelect+` WHERE v.id = ?`, id)
	if err != nil {
		return nil, err
	}
	vouchers, err := scanVoucherRows(rows)
	if err != nil {
		return nil, err
	}
	if len(vouchers) == 0 {
		return nil, sql.ErrNoRows
	}
	return &vouchers[0], nil
}

// CreateUserVoucher records a purchase claim.
func (s *Store) CreateUserVoucher(ctx context.Context, uv *domain.UserVoucher) error {
	if uv.CreatedAt.IsZero() {
		uv.CreatedAt = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO user_vouchers (id, code, voucher_id, user_id, status, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		uv.ID, uv.Code, uv.VoucherID, uv.UserID, string(uv.Status), uv.CreatedAt,
	)
	return err
}

const userVoucherSelect = `
	SELECT uv.id, uv.code, uv.voucher_id, uv.user_id, uv.status, uv.redeemed_at, uv.created_at,
	       v.id, v.merchant_id, u.name, v.name, v.description, v.discount_percent, v.price_points, v.expires_at, v.created_at
	FROM user_vouchers uv
	JOIN vouchers v ON v.id = uv.voucher_id
	JOIN users u ON u.id = v.merchant_id`

func scanUserVoucherRows(rows *sql.Rows) ([]domain.UserVoucher, error) {
	defer rows.Close() //nolint:errcheck

	var claims []domain.UserVoucher
	for rows.Next() {
		var uv domain.UserVoucher
		var v domain.Voucher
		var status string
		var redeemedAt sql.NullTime
		if err := rows.Scan(&uv.ID, &uv.Code, &uv.VoucherID, &uv.UserID, &status, &redeemedAt, &uv.CreatedAt,
			&v.ID, &v.MerchantID, &v.MerchantName, &v.Name, &v.Description,
			&v.DiscountPercent, &v.PricePoints, &v.ExpiresAt, &v.CreatedAt); err != nil {
			return nil, err
		}
		uv.Status = domain.VoucherStatus(status)
		if redeemedAt.Valid {
			t := redeemedAt.Time
			uv.RedeemedAt = &t
		}
		uv.Voucher = &v
		claims = append(claims, uv)
	}
	return claims, rows.Err()
}

// ListUserVouchers returns a resident's purchased claims.
func (s *Store) ListUserVouchers(ctx context.Context, userID string) ([]domain.UserVoucher, error) {
	rows, err := s.db.QueryContext(ctx, userVoucherSelect+` WHERE uv.user_id = ? ORDER BY uv.created_at`, userID)
	if err != nil {
		return nil, err
	}
	return scanUserVoucherRows(rows)
}

// GetUserVoucherByCode resolves a scanned redemption code.
func (s *Store) GetUserVoucherByCode(ctx context.Context, code string) (*domain.UserVoucher, error) {
	rows, err := s.db.QueryContext(ctx, userVoucherSelect+` WHERE uv.code = ?`, code)
	if err != nil {
		return nil, err
	}
	claims, err := scanUserVoucherRows(rows)
	if err != nil {
		return nil, err
	}
	if len(claims) == 0 {
		return nil, sql.ErrNoRows
	}
	return &claims[0], nil
}

// RedeemUserVoucher consumes an active claim; redeeming anything else fails
// with ErrVoucherNotActive.
func (s *Store) RedeemUserVoucher(ctx context.Context, code string) error {
	result, err := s.db.ExecContext(ctx,
		`UPDATE user_vouchers SET status = 'USED', redeemed_at = ? WHERE code = ? AND status = 'ACTIVE'`,
		time.Now().UTC(), code,
	)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrVoucherNotActive
	}
	return nil
}
