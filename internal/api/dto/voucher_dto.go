package dto

import (
	"time"

	"github.com/spec-kit/kclean/internal/domain"
)

// VoucherResponse wraps a single voucher.
type VoucherResponse struct {
	Data domain.Voucher `json:"data"`
}

// VoucherListResponse wraps the voucher catalog.
type VoucherListResponse struct {
	Data []domain.Voucher `json:"data"`
}

// UserVoucherResponse wraps a resident's purchased voucher claim.
type UserVoucherResponse struct {
	Data domain.UserVoucher `json:"data"`
}

// UserVoucherListResponse wraps a resident's purchased vouchers.
type UserVoucherListResponse struct {
	Data []domain.UserVoucher `json:"data"`
}

// CreateVoucherRequest is the merchant payload for publishing a voucher.
type CreateVoucherRequest struct {
	Name            string    `json:"name"`
	Description     string    `json:"description"`
	DiscountPercent int       `json:"discount_percent"`
	PricePoints     int       `json:"price_points"`
	ExpiresAt       time.Time `json:"expires_at"`
}

// DepositRequest is the field-staff payload for a weighed drop-off. Field
// names follow the backend contract.
type DepositRequest struct {
	TrashType   string  `json:"trash_type"`
	TrashWeight float64 `json:"trash_weight"`
}

// DepositResponse reports the credited transaction.
type DepositResponse struct {
	Message string `json:"message"`
	Points  int    `json:"points"`
}
