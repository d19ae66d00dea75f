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

// handleLogin handles POST /api/login.
func (a *App) handleLogin(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewBadRequest("invalid payload")
	}
	if req.Email == "" || req.Password == "" {
		return apperrors.NewBadRequest("email dan password wajib diisi")
	}

	account, err := a.store.GetUserByEmail(c.Context(), req.Email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return apperrors.NewUnauthorized("Email atau password salah")
		}
		return apperrors.ToDomainError(err)
	}
	if err := ComparePassword(account.PasswordHash, req.Password); err != nil {
		return apperrors.NewUnauthorized("Email atau password salah")
	}

	token, err := a.tokens.Generate(account.ID, account.Role)
	if err != nil {
		return apperrors.ToDomainError(err)
	}
	return c.JSON(dto.AuthResponse{Token: token, User: account.Subject})
}

// handleRegister handles POST /api/register; self-service registration
// always creates a resident.
func (a *App) handleRegister(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewBadRequest("invalid payload")
	}
	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Email) == "" || req.Password == "" {
		return apperrors.NewValidationError("nama, email, dan password wajib diisi")
	}
	if req.Password != req.PasswordConfirmation {
		return apperrors.NewValidationError("konfirmasi password tidak cocok")
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
			Role:       domain.RoleResident,
		},
		PasswordHash: hash,
	}
	if err := a.store.CreateUser(c.Context(), account); err != nil {
		return apperrors.ToDomainError(err)
	}

	token, err := a.tokens.Generate(account.ID, account.Role)
	if err != nil {
		return apperrors.ToDomainError(err)
	}
	return c.Status(http.StatusCreated).JSON(dto.AuthResponse{Token: token, User: account.Subject})
}

// handleLogout handles POST /api/logout by revoking the caller's token.
func (a *App) handleLogout(c *fiber.Ctx) error {
	p := principalFrom(c)
	if err := a.store.RevokeToken(c.Context(), p.tokenID); err != nil {
		return apperrors.ToDomainError(err)
	}
	return c.JSON(dto.MessageResponse{Message: "logged out"})
}

// handleCurrentUser handles GET /api/user-data (and its /user alias).
func (a *App) handleCurrentUser(c *fiber.Ctx) error {
	p := principalFrom(c)
	return c.JSON(dto.SubjectResponse{Data: p.account.Subject})
}

// handleUserPoints handles GET /api/user-points.
func (a *App) handleUserPoints(c *fiber.Ctx) error {
	p := principalFrom(c)
	account, err := a.store.GetUserByID(c.Context(), p.account.ID)
	if err != nil {
		return apperrors.ToDomainError(err)
	}
	return c.JSON(dto.PointsResponse{Points: account.Points})
}

// handleProfile handles GET /api/profile/:code, resolving a scanned
// resident code.
func (a *App) handleProfile(c *fiber.Ctx) error {
	account, err := a.store.GetUserByPublicCode(c.Context(), c.Params("code"))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return apperrors.NewNotFound("warga")
		}
		return apperrors.ToDomainError(err)
	}
	if account.Role != domain.RoleResident {
		return apperrors.NewNotFound("warga")
	}
	return c.JSON(dto.SubjectResponse{Data: account.Subject})
}
