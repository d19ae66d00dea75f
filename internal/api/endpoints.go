package api

import (
	"context"
	"net/url"

	"github.com/spec-kit/kclean/internal/api/dto"
	"github.com/spec-kit/kclean/internal/domain"
)

// Login exchanges credentials for a token and the account record.
func (c *Client) Login(ctx context.Context, email, password string) (*dto.AuthResponse, error) {
	var resp dto.AuthResponse
	req := dto.LoginRequest{Email: email, Password: password}
	if err := c.post(ctx, "/login", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Register creates a resident account and logs it in.
func (c *Client) Register(ctx context.Context, req dto.RegisterRequest) (*dto.AuthResponse, error) {
	var resp dto.AuthResponse
	if err := c.post(ctx, "/register", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Logout invalidates the current token server-side.
func (c *Client) Logout(ctx context.Context) error {
	return c.post(ctx, "/logout", nil, nil)
}

// CurrentUser fetches the authenticated account's profile and balance.
func (c *Client) CurrentUser(ctx context.Context) (*domain.Subject, error) {
	var resp dto.SubjectResponse
	if err := c.get(ctx, "/user-data", &resp); err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

// Profile resolves a scanned resident code to their account record.
func (c *Client) Profile(ctx context.Context, code string) (*domain.Subject, error) {
	var resp dto.SubjectResponse
	if err := c.get(ctx, "/profile/"+url.PathEscape(code), &resp); err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

// UserPoints fetches the resident's current balance.
func (c *Client) UserPoints(ctx context.Context) (int, error) {
	var resp dto.PointsResponse
	if err := c.get(ctx, "/user-points", &resp); err != nil {
		return 0, err
	}
	return resp.Points, nil
}

// Vouchers lists the redeemable catalog.
func (c *Client) Vouchers(ctx context.Context) ([]domain.Voucher, error) {
	var resp dto.VoucherListResponse
	if err := c.get(ctx, "/vouchers", &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// MerchantVouchers lists vouchers published by the calling merchant.
func (c *Client) MerchantVouchers(ctx context.Context) ([]domain.Voucher, error) {
	var resp dto.VoucherListResponse
	if err := c.get(ctx, "/voucher", &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// CreateVoucher publishes a new voucher for the calling merchant.
func (c *Client) CreateVoucher(ctx context.Context, req dto.CreateVoucherRequest) (*domain.Voucher, error) {
	var resp dto.VoucherResponse
	if err := c.post(ctx, "/voucher", req, &resp); err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

// MyVouchers lists the resident's purchased vouchers.
func (c *Client) MyVouchers(ctx context.Context) ([]domain.UserVoucher, error) {
	var resp dto.UserVoucherListResponse
	if err := c.get(ctx, "/user-voucher", &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// PurchaseVoucher spends points on a catalog voucher.
func (c *Client) PurchaseVoucher(ctx context.Context, voucherID string) (*domain.UserVoucher, error) {
	var resp dto.UserVoucherResponse
	if err := c.post(ctx, "/voucher-purchase/"+url.PathEscape(voucherID), nil, &resp); err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

// VoucherCheck resolves a scanned redemption code to its claim, rejecting
// used and expired vouchers.
func (c *Client) VoucherCheck(ctx context.Context, code string) (*domain.UserVoucher, error) {
	var resp dto.UserVoucherResponse
	if err := c.get(ctx, "/voucher-check/"+url.PathEscape(code), &resp); err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

// RedeemVoucher consumes a resident's voucher claim.
func (c *Client) RedeemVoucher(ctx context.Context, code string) (*dto.MessageResponse, error) {
	var resp dto.MessageResponse
	if err := c.post(ctx, "/voucher-redemption/"+url.PathEscape(code), nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// SubmitDeposit records a weighed drop-off against the scanned resident.
func (c *Client) SubmitDeposit(ctx context.Context, code string, req dto.DepositRequest) (*dto.DepositResponse, error) {
	var resp dto.DepositResponse
	if err := c.post(ctx, "/trash-transaction/"+url.PathEscape(code), req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Notifications lists dashboard notifications for the resident.
func (c *Client) Notifications(ctx context.Context) ([]domain.Notification, error) {
	var resp dto.NotificationListResponse
	if err := c.get(ctx, "/notifications", &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// CreateStaff provisions a field-staff account (admin only).
func (c *Client) CreateStaff(ctx context.Context, req dto.CreateUserRequest) (*domain.Subject, error) {
	var resp dto.SubjectResponse
	if err := c.post(ctx, "/createuser/petugas", req, &resp); err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

// CreateMerchant provisions a merchant account (admin only).
func (c *Client) CreateMerchant(ctx context.Context, req dto.CreateUserRequest) (*domain.Subject, error) {
	var resp dto.SubjectResponse
	if err := c.post(ctx, "/createuser/umkm", req, &resp); err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

// ListUsers lists all accounts (admin only).
func (c *Client) ListUsers(ctx context.Context) ([]domain.Subject, error) {
	var resp dto.SubjectListResponse
	if err := c.get(ctx, "/users", &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// UpdateUser edits an account (admin only).
func (c *Client) UpdateUser(ctx context.Context, id string, req dto.UpdateUserRequest) (*domain.Subject, error) {
	var resp dto.SubjectResponse
	if err := c.put(ctx, "/users/"+url.PathEscape(id), req, &resp); err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

// DeleteUser removes an account (admin only).
func (c *Client) DeleteUser(ctx context.Context, id string) error {
	return c.delete(ctx, "/users/"+url.PathEscape(id))
}
