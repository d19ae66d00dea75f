package stub

import (
	"database/sql"
	"errors"
	"runtime/debug"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/kclean/internal/domain"
	"github.com/spec-kit/kclean/internal/stub/store"
	apperrors "github.com/spec-kit/kclean/pkg/util"
)

const principalKey = "auth_principal"

// errorMiddleware maps failures onto the backend's wire shape: a status
// code and a {"message": ...} body the client can surface verbatim.
func (a *App) errorMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) (err error) {
		defer func() {
			if r := recover(); r != nil {
				a.logger.Error("panic recovered", zap.Any("panic", r), zap.ByteString("stack", debug.Stack()))
				err = apperrors.NewInternalError(nil)
			}
			if err != nil {
				var fiberErr *fiber.Error
				if errors.As(err, &fiberErr) {
					c.Status(fiberErr.Code)
					_ = c.JSON(fiber.Map{"message": fiberErr.Message})
					err = nil
					return
				}
				domainErr := apperrors.ToDomainError(err)
				if domainErr.HTTPStatus >= 500 {
					a.logger.Error("request failed", zap.Error(domainErr))
				}
				c.Status(domainErr.HTTPStatus)
				_ = c.JSON(fiber.Map{"message": domainErr.Message})
				err = nil
			}
		}()
		return c.Next()
	}
}

// requireAuth validates the bearer token, rejects revoked tokens, and loads
// the calling account.
func (a *App) requireAuth(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return apperrors.NewUnauthorized("missing authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return apperrors.NewUnauthorized("invalid authorization header")
	}

	claims, err := a.tokens.Parse(parts[1])
	if err != nil {
		return apperrors.NewUnauthorized("invalid token")
	}

	revoked, err := a.store.IsTokenRevoked(c.Context(), claims.ID)
	if err != nil {
		return apperrors.ToDomainError(err)
	}
	if revoked {
		return apperrors.NewUnauthorized("token revoked")
	}

	account, err := a.store.GetUserByID(c.Context(), claims.Subject)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return apperrors.NewUnauthorized("account not found")
		}
		return apperrors.ToDomainError(err)
	}

	c.Locals(principalKey, &principal{account: account, tokenID: claims.ID})
	return c.Next()
}

// principal is the authenticated caller.
type principal struct {
	account *store.UserRecord
	tokenID string
}

func principalFrom(c *fiber.Ctx) *principal {
	p, _ := c.Locals(principalKey).(*principal)
	return p
}

// requireRole gates a route to the given roles.
func requireRole(allowed ...domain.Role) fiber.Handler {
	allowedSet := make(map[domain.Role]struct{}, len(allowed))
	for _, role := range allowed {
		allowedSet[role] = struct{}{}
	}

	return func(c *fiber.Ctx) error {
		p := principalFrom(c)
		if p == nil {
			return apperrors.NewUnauthorized("authentication required")
		}
		if _, ok := allowedSet[p.account.Role]; !ok {
			return apperrors.NewForbidden("insufficient role")
		}
		return c.Next()
	}
}
