package http

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/sahil-erp/internal/application/bootstrap"
	"github.com/jhoicas/sahil-erp/internal/application/dto"
	"github.com/jhoicas/sahil-erp/internal/application/polling"
	"github.com/jhoicas/sahil-erp/internal/application/session"
)

// LocalAccess key de c.Locals con el bootstrap.Access de la sesión.
const LocalAccess = "access"

// shellResolver lo implementa *bootstrap.Shell.
type shellResolver interface {
	Resolve(ctx context.Context, ws *session.Workspace) bootstrap.Result
}

// RequireActive deja pasar sólo sesiones en estado Active. Debe usarse DESPUÉS de
// AuthMiddleware (necesita el workspace).
//
// Comportamiento:
//   - 403 NOT_ACTIVE con el estado resuelto (profileRequired, approvalPending, rejected...).
//   - Si el bootstrap falló, responde la clasificación del error (503 en fallos de red).
func RequireActive(shell shellResolver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ws := GetWorkspace(c)
		if ws == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "sesión requerida"})
		}
		res := shell.Resolve(c.Context(), ws)
		if res.State == bootstrap.StateError && res.Error != nil {
			return respondClassified(c, *res.Error)
		}
		if res.State != bootstrap.StateActive {
			return c.Status(fiber.StatusForbidden).JSON(dto.NotActiveResponse{
				Code:    "NOT_ACTIVE",
				Message: "la sesión no está activa",
				State:   res.State.String(),
			})
		}
		c.Locals(LocalAccess, res.Access)
		return c.Next()
	}
}

// RequireModuleAccess verifica que el rol de la sesión tenga acceso a alguno de los
// módulos. Debe usarse DESPUÉS de RequireActive.
func RequireModuleAccess(modules ...polling.Module) fiber.Handler {
	names := make([]string, 0, len(modules))
	for _, m := range modules {
		names = append(names, string(m))
	}
	return func(c *fiber.Ctx) error {
		access, ok := c.Locals(LocalAccess).(bootstrap.Access)
		if !ok {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "NOT_ACTIVE", Message: "la sesión no está activa"})
		}
		for _, m := range modules {
			if access.CanAccess(m) {
				return c.Next()
			}
		}
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
			Code:    "MODULE_FORBIDDEN",
			Message: "el rol '" + access.Role + "' no tiene acceso al módulo '" + strings.Join(names, "|") + "'",
		})
	}
}

// GetAccess devuelve el acceso resuelto por RequireActive.
func GetAccess(c *fiber.Ctx) bootstrap.Access {
	a, _ := c.Locals(LocalAccess).(bootstrap.Access)
	return a
}
