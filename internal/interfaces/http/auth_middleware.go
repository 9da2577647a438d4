package http

import (
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/sahil-erp/internal/application/dto"
	"github.com/jhoicas/sahil-erp/internal/application/queries"
	"github.com/jhoicas/sahil-erp/internal/application/session"
	"github.com/jhoicas/sahil-erp/internal/domain"
)

// Locals keys para el workspace de la sesión en Fiber.
const (
	LocalWorkspace = "workspace"
	LocalSessionID = "session_id"
	LocalPrincipal = "principal"
)

// authenticator lo implementa *auth.AuthUseCase.
type authenticator interface {
	Authenticate(ctx context.Context, token string) (*session.Workspace, error)
}

// AuthMiddleware valida el Bearer Token, comprueba que la sesión siga viva y deja su
// workspace en c.Locals.
func AuthMiddleware(auth authenticator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "Authorization header requerido"})
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "formato: Bearer <token>"})
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "token vacío"})
		}
		ws, err := auth.Authenticate(c.Context(), tokenString)
		if err != nil {
			if errors.Is(err, domain.ErrUnauthorized) {
				return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido, expirado o sesión cerrada"})
			}
			// El actor no pudo enlazarse: problema del backend, no del token.
			return respondError(c, err)
		}
		c.Locals(LocalWorkspace, ws)
		c.Locals(LocalSessionID, ws.ID)
		c.Locals(LocalPrincipal, ws.Identity.Principal)
		return c.Next()
	}
}

// GetWorkspace devuelve el workspace de la sesión (después del middleware de auth).
func GetWorkspace(c *fiber.Ctx) *session.Workspace {
	ws, _ := c.Locals(LocalWorkspace).(*session.Workspace)
	return ws
}

// GetSessionID devuelve el id de sesión (jti) del contexto.
func GetSessionID(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalSessionID).(string)
	return s
}

// GetPrincipal devuelve el principal autenticado.
func GetPrincipal(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalPrincipal).(string)
	return s
}

// queriesOf capa de consultas de la sesión actual.
func queriesOf(c *fiber.Ctx) *queries.Queries {
	return GetWorkspace(c).Queries
}
