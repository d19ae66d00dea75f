package stub

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/spec-kit/kclean/internal/api/dto"
	"github.com/spec-kit/kclean/internal/domain"
	"github.com/spec-kit/kclean/internal/events"
	apperrors "github.com/spec-kit/kclean/pkg/util"
)

// handleDeposit handles POST /api/trash-transaction/:code, crediting a
// resident for a weighed drop-off.
func (a *App) handleDeposit(c *fiber.Ctx) error {
	resident, err := a.store.GetUserByPublicCode(c.Context(), c.Params("code"))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return apperrors.NewNotFound("warga")
		}
		return apperrors.ToDomainError(err)
	}
	if resident.Role != domain.RoleResident {
		return apperrors.NewNotFound("warga")
	}

	var req dto.DepositRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewBadRequest("invalid payload")
	}
	category, err := domain.ParseTrashCategory(req.TrashType)
	if err != nil {
		return apperrors.NewValidationError("kategori sampah tidak dikenal")
	}
	if req.TrashWeight <= 0 {
		return apperrors.NewValidationError("berat sampah harus lebih dari nol")
	}

	p := principalFrom(c)
	points := domain.PointsForWeight(req.TrashWeight)
	deposit := &domain.Deposit{
		ID:       uuid.NewString(),
		UserID:   resident.ID,
		StaffID:  p.account.ID,
		Category: category,
		WeightKg: req.TrashWeight,
		Points:   points,
	}
	if err := a.store.CreateDeposit(c.Context(), deposit); err != nil {
		return apperrors.ToDomainError(err)
	}
	if _, err := a.store.AdjustPoints(c.Context(), resident.ID, points); err != nil {
		return apperrors.ToDomainError(err)
	}

	a.publish(c.Context(), events.EventDepositRecorded, resident.ID, points,
		fmt.Sprintf("%d poin dari %.1f kg sampah %s", points, req.TrashWeight, category))
	return c.Status(http.StatusCreated).JSON(dto.DepositResponse{Message: "Point terkirim", Points: points})
}

// handleNotifications handles GET /api/notifications.
func (a *App) handleNotifications(c *fiber.Ctx) error {
	p := principalFrom(c)
	notifications, err := a.store.ListNotifications(c.Context(), p.account.ID)
	if err != nil {
		return apperrors.ToDomainError(err)
	}
	return c.JSON(dto.NotificationListResponse{Data: notifications})
}
