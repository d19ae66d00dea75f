package domain

import "time"

// VoucherStatus tracks a redemption claim's lifecycle.
type VoucherStatus string

const (
	VoucherStatusActive  VoucherStatus = "ACTIVE"
	VoucherStatusUsed    VoucherStatus = "USED"
	VoucherStatusExpired VoucherStatus = "EXPIRED"
)

// Voucher is a discount offer published by a merchant. PricePoints is the
// eco-point cost a resident pays to purchase it.
type Voucher struct {
	ID              string    `json:"id"`
	MerchantID      string    `json:"merchant_id"`
	MerchantName    string    `json:"merchant_name"`
	Name            string    `json:"name"`
	Description     string    `json:"description"`
	DiscountPercent int       `json:"discount_percent"`
	PricePoints     int       `json:"price_points"`
	ExpiresAt       time.Time `json:"expires_at"`
	CreatedAt       time.Time `json:"created_at,omitempty"`
}

// UserVoucher is a resident's purchased copy of a voucher. Code is the
// identifier embedded in the redemption QR shown to the merchant.
type UserVoucher struct {
	ID         string        `json:"id"`
	Code       string        `json:"code"`
	VoucherID  string        `json:"voucher_id"`
	UserID     string        `json:"user_id"`
	Status     VoucherStatus `json:"status"`
	Voucher    *Voucher      `json:"voucher,omitempty"`
	RedeemedAt *time.Time    `json:"redeemed_at,omitempty"`
	CreatedAt  time.Time     `json:"created_at,omitempty"`
}

// Redeemable reports whether the claim can still be consumed.
func (uv UserVoucher) Redeemable(now time.Time) bool {
	if uv.Status != VoucherStatusActive {
		return false
	}
	if uv.Voucher != nil && !uv.Voucher.ExpiresAt.IsZero() && uv.Voucher.ExpiresAt.Before(now) {
		return false
	}
	return true
}
