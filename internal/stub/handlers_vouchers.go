package stub

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/spec-kit/kclean/internal/api/dto"
	"github.com/spec-kit/kclean/internal/domain"
	"github.com/spec-kit/kclean/internal/events"
	"github.com/spec-kit/kclean/internal/stub/store"
	apperrors "github.com/spec-kit/kclean/pkg/util"
)

// handleCatalog handles GET /api/vouchers.
func (a *App) handleCatalog(c *fiber.Ctx) error {
	vouchers, err := a.store.ListVouchers(c.Context())
	if err != nil {
		return apperrors.ToDomainError(err)
	}
	return c.JSON(dto.VoucherListResponse{Data: vouchers})
}

// handleMerchantVouchers handles GET /api/voucher.
func (a *App) handleMerchantVouchers(c *fiber.Ctx) error {
	p := principalFrom(c)
	vouchers, err := a.store.ListMerchantVouchers(c.Context(), p.account.ID)
	if err != nil {
		return apperrors.ToDomainError(err)
	}
	return c.JSON(dto.VoucherListResponse{Data: vouchers})
}

// handleCreateVoucher handles POST /api/voucher.
func (a *App) handleCreateVoucher(c *fiber.Ctx) error {
	var req dto.CreateVoucherRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewBadRequest("invalid payload")
	}
	if strings.TrimSpace(req.Name) == "" {
		return apperrors.NewValidationError("nama voucher wajib diisi")
	}
	if req.DiscountPercent <= 0 || req.DiscountPercent > 100 {
		return apperrors.NewValidationError("diskon harus antara 1 dan 100 persen")
	}
	if req.PricePoints <= 0 {
		return apperrors.NewValidationError("harga poin harus lebih dari nol")
	}
	if !req.ExpiresAt.After(time.Now()) {
		return apperrors.NewValidationError("tanggal kedaluwarsa harus di masa depan")
	}

	p := principalFrom(c)
	voucher := &domain.Voucher{
		ID:              uuid.NewString(),
		MerchantID:      p.account.ID,
		MerchantName:    p.account.Name,
		Name:            req.Name,
		Description:     req.Description,
		DiscountPercent: req.DiscountPercent,
		PricePoints:     req.PricePoints,
		ExpiresAt:       req.ExpiresAt.UTC(),
	}
	if err := a.store.CreateVoucher(c.Context(), voucher); err != nil {
		return apperrors.ToDomainError(err)
	}
	return c.Status(http.StatusCreated).JSON(dto.VoucherResponse{Data: *voucher})
}

// handleMyVouchers handles GET /api/user-voucher.
func (a *App) handleMyVouchers(c *fiber.Ctx) error {
	p := principalFrom(c)
	claims, err := a.store.ListUserVouchers(c.Context(), p.account.ID)
	if err != nil {
		return apperrors.ToDomainError(err)
	}
	return c.JSON(dto.UserVoucherListResponse{Data: claims})
}

// handlePurchaseVoucher handles POST /api/voucher-purchase/:id, debiting
// the resident's balance.
func (a *App) handlePurchaseVoucher(c *fiber.Ctx) error {
	voucher, err := a.store.GetVoucher(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return apperrors.NewNotFound("voucher")
		}
		return apperrors.ToDomainError(err)
	}
	if voucher.ExpiresAt.Before(time.Now()) {
		return apperrors.NewBadRequest("Voucher sudah kedaluwarsa")
	}

	p := principalFrom(c)
	if _, err := a.store.AdjustPoints(c.Context(), p.account.ID, -voucher.PricePoints); err != nil {
		if errors.Is(err, store.ErrInsufficientPoints) {
			return apperrors.NewBadRequest("Poin tidak cukup")
		}
		return apperrors.ToDomainError(err)
	}

	claim := &domain.UserVoucher{
		ID:        uuid.NewString(),
		Code:      uuid.NewString(),
		VoucherID: voucher.ID,
		UserID:    p.account.ID,
		Status:    domain.VoucherStatusActive,
		Voucher:   voucher,
	}
	if err := a.store.CreateUserVoucher(c.Context(), claim); err != nil {
		return apperrors.ToDomainError(err)
	}

	a.publish(c.Context(), events.EventVoucherPurchased, p.account.ID, -voucher.PricePoints,
		fmt.Sprintf("Voucher %s ditukar dengan %d poin", voucher.Name, voucher.PricePoints))
	return c.Status(http.StatusCreated).JSON(dto.UserVoucherResponse{Data: *claim})
}

// handleVoucherCheck handles GET /api/voucher-check/:code, rejecting used
// and expired claims with a 400 so the scan flow can show the reason.
func (a *App) handleVoucherCheck(c *fiber.Ctx) error {
	claim, err := a.loadRedeemableClaim(c)
	if err != nil {
		return err
	}
	return c.JSON(dto.UserVoucherResponse{Data: *claim})
}

// handleRedeemVoucher handles POST /api/voucher-redemption/:code.
func (a *App) handleRedeemVoucher(c *fiber.Ctx) error {
	claim, err := a.loadRedeemableClaim(c)
	if err != nil {
		return err
	}

	p := principalFrom(c)
	if claim.Voucher.MerchantID != p.account.ID {
		return apperrors.NewForbidden("voucher milik UMKM lain")
	}

	if err := a.store.RedeemUserVoucher(c.Context(), claim.Code); err != nil {
		if errors.Is(err, store.ErrVoucherNotActive) {
			return apperrors.NewBadRequest("Voucher sudah digunakan")
		}
		return apperrors.ToDomainError(err)
	}

	a.publish(c.Context(), events.EventVoucherRedeemed, claim.UserID, 0,
		fmt.Sprintf("Voucher %s digunakan di %s", claim.Voucher.Name, claim.Voucher.MerchantName))
	return c.JSON(dto.MessageResponse{Message: "Voucher berhasil digunakan"})
}

func (a *App) loadRedeemableClaim(c *fiber.Ctx) (*domain.UserVoucher, error) {
	claim, err := a.store.GetUserVoucherByCode(c.Context(), c.Params("code"))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NewBadRequest("Voucher tidak valid atau tidak ditemukan")
		}
		return nil, apperrors.ToDomainError(err)
	}
	if claim.Status == domain.VoucherStatusUsed {
		return nil, apperrors.NewBadRequest("Voucher sudah digunakan")
	}
	if !claim.Redeemable(time.Now()) {
		return nil, apperrors.NewBadRequest("Voucher sudah kedaluwarsa")
	}
	return claim, nil
}
