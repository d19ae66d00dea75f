package stub

import (
	"database/sql"
	"errors"
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/spec-kit/kclean/internal/api/dto"
	"github.com/spec-kit/kclean/internal/domain"
	"github.com/spec-kit/kclean/internal/stub/store"
	apperrors "github.com/spec-kit/kclean/pkg/util"
)

// handleCreateStaff handles POST /api/createuser/petugas.
func (a *App) handleCreateStaff(c *fiber.Ctx) error {
	return a.createAccount(c, domain.RolePetugas)
}

// handleCreateMerchant handles POST /api/createuser/umkm.
func (a *App) handleCreateMerchant(c *fiber.Ctx) error {
	return a.createAccount(c, domain.RoleUMKM)
}

func (a *App) createAccount(c *fiber.Ctx, role domain.Role) error {
	var req dto.CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewBadRequest("invalid payload")
	}
	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Email) == "" || req.Password == "" {
		return apperrors.NewValidationError("nama, email, dan password wajib diisi")
	}
	if _, err := a.store.GetUserByEmail(c.Context(), req.Email); err == nil {
		return apperrors.NewValidationError("email sudah terdaftar")
	} else if !errors.Is(err, sql.ErrNoRows) {
		return apperrors.ToDomainError(err)
	}

	hash, err := HashPassword(req.Password, a.cfg.BcryptCost)
	if err != nil {
		return apperrors.ToDomainError(err)
	}
	account := &store.UserRecord{
		Subject: domain.Subject{
			ID:         uuid.NewString(),
			PublicCode: uuid.NewString(),
			Name:       req.Name,
			Email:      req.Email,
			Role:       role,
		},
		PasswordHash: hash,
	}
	if err := a.store.CreateUser(c.Context(), account); err != nil {
		return apperrors.ToDomainError(err)
	}
	return c.Status(http.StatusCreated).JSON(dto.SubjectResponse{Data: account.Subject})
}

// handleListUsers handles GET /api/users.
func (a *App) handleListUsers(c *fiber.Ctx) error {
	subjects, err := a.store.ListUsers(c.Context())
	if err != nil {
		return apperrors.ToDomainError(err)
	}
	return c.JSON(dto.SubjectListResponse{Data: subjects})
}

// handleUpdateUser handles PUT /api/users/:id.
func (a *App) handleUpdateUser(c *fiber.Ctx) error {
	var req dto.UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewBadRequest("invalid payload")
	}

	id := c.Params("id")
	if _, err := a.store.GetUserByID(c.Context(), id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return apperrors.NewNotFound("pengguna")
		}
		return apperrors.ToDomainError(err)
	}
	if err := a.store.UpdateUser(c.Context(), id, req.Name, req.Email); err != nil {
		return apperrors.ToDomainError(err)
	}

	account, err := a.store.GetUserByID(c.Context(), id)
	if err != nil {
		return apperrors.ToDomainError(err)
	}
	return c.JSON(dto.SubjectResponse{Data: account.Subject})
}

// handleDeleteUser handles DELETE /api/users/:id.
func (a *App) handleDeleteUser(c *fiber.Ctx) error {
	id := c.Params("id")
	if _, err := a.store.GetUserByID(c.Context(), id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return apperrors.NewNotFound("pengguna")
		}
		return apperrors.ToDomainError(err)
	}
	if err := a.store.DeleteUser(c.Context(), id); err != nil {
		return apperrors.ToDomainError(err)
	}
	return c.SendStatus(http.StatusNoContent)
}
