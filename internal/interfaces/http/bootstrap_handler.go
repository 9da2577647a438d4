package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/sahil-erp/internal/application/bootstrap"
	"github.com/jhoicas/sahil-erp/internal/application/dto"
	"github.com/jhoicas/sahil-erp/internal/application/session"
	"github.com/jhoicas/sahil-erp/internal/domain"
	"github.com/jhoicas/sahil-erp/internal/domain/entity"
)

// bootstrapShell lo implementa *bootstrap.Shell.
type bootstrapShell interface {
	shellResolver
	Retry(ctx context.Context, ws *session.Workspace) bootstrap.Result
}

// BootstrapHandler estado de enrutamiento de la sesión y alta del perfil.
type BootstrapHandler struct {
	shell bootstrapShell
}

// NewBootstrapHandler construye el handler.
func NewBootstrapHandler(shell bootstrapShell) *BootstrapHandler {
	return &BootstrapHandler{shell: shell}
}

// Bootstrap godoc
// @Summary      Estado de la sesión
// @Description  Decide la pantalla: profileRequired, approvalPending, rejected, active o error.
// @Tags         session
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.BootstrapResponse
// @Router       /api/bootstrap [get]
func (h *BootstrapHandler) Bootstrap(c *fiber.Ctx) error {
	return c.JSON(toBootstrapResponse(h.shell.Resolve(c.Context(), GetWorkspace(c))))
}

// Retry godoc
// @Summary      Reintentar el bootstrap
// @Description  Vuelve a consultar el estado de la sesión al backend sin usar la caché (pantalla de error).
// @Tags         session
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.BootstrapResponse
// @Router       /api/bootstrap/retry [post]
func (h *BootstrapHandler) Retry(c *fiber.Ctx) error {
	return c.JSON(toBootstrapResponse(h.shell.Retry(c.Context(), GetWorkspace(c))))
}

// Access godoc
// @Summary      Banderas de acceso del usuario actual
// @Tags         session
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.CallerAccessResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/profile/access [get]
func (h *BootstrapHandler) Access(c *fiber.Ctx) error {
	q := queriesOf(c)
	admin, err := q.IsCallerAdmin(c.Context())
	if err != nil {
		return respondWith(c, err, domain.ClassifyApprovalError)
	}
	approved, err := q.IsCallerApproved(c.Context())
	if err != nil {
		return respondWith(c, err, domain.ClassifyApprovalError)
	}
	return c.JSON(dto.CallerAccessResponse{IsAdmin: admin, IsApproved: approved})
}

// Profile godoc
// @Summary      Perfil del usuario actual
// @Tags         session
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  entity.UserProfile
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/profile [get]
func (h *BootstrapHandler) Profile(c *fiber.Ctx) error {
	p, err := queriesOf(c).CurrentUserProfile(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	if p == nil {
		return notFoundResponse(c, "perfil no creado")
	}
	return c.JSON(p)
}

// SaveProfile godoc
// @Summary      Guardar perfil
// @Description  El primer perfil del sistema queda como admin aprobado. Devuelve el nuevo estado de la sesión.
// @Tags         session
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SaveProfileRequest  true  "Datos del perfil"
// @Success      200   {object}  dto.BootstrapResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      503   {object}  dto.ErrorResponse
// @Router       /api/profile [put]
func (h *BootstrapHandler) SaveProfile(c *fiber.Ctx) error {
	var in dto.SaveProfileRequest
	if err := parseBody(c, &in); err != nil {
		return respondError(c, err)
	}
	ws := GetWorkspace(c)
	email := in.Email
	if email == "" {
		email = ws.Identity.Email
	}
	err := ws.Queries.SaveProfile(c.Context(), entity.UserProfile{Name: in.Name, Email: email, Department: in.Department})
	if err != nil {
		return respondWith(c, err, domain.ClassifyProfileSaveError)
	}
	return c.JSON(toBootstrapResponse(h.shell.Resolve(c.Context(), ws)))
}

// RequestApproval godoc
// @Summary      Solicitar aprobación
// @Tags         session
// @Security     Bearer
// @Success      204
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/profile/approval [post]
func (h *BootstrapHandler) RequestApproval(c *fiber.Ctx) error {
	if err := queriesOf(c).RequestApproval(c.Context()); err != nil {
		return respondWith(c, err, domain.ClassifyApprovalError)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func toBootstrapResponse(res bootstrap.Result) dto.BootstrapResponse {
	modules := make([]string, 0)
	if res.State == bootstrap.StateActive {
		for _, m := range res.Access.Modules() {
			modules = append(modules, string(m))
		}
	}
	out := dto.BootstrapResponse{
		State:   res.State.String(),
		Profile: res.Profile,
		Access: dto.AccessResponse{
			IsAdmin:          res.Access.IsAdmin,
			IsApproved:       res.Access.IsApproved,
			IsSecondaryAdmin: res.Access.IsSecondaryAdmin,
			CanManageUsers:   res.Access.CanManageUsers,
			Role:             res.Access.Role,
			Modules:          modules,
		},
	}
	if res.Error != nil {
		out.Error = &dto.ErrorResponse{Code: res.Error.Code(), Message: res.Error.Message}
	}
	return out
}
