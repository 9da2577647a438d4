package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/sahil-erp/internal/application/dto"
	"github.com/jhoicas/sahil-erp/internal/domain"
)

// UserHandler módulo de usuarios: perfiles, aprobaciones y roles (sólo admin principal).
type UserHandler struct{}

// NewUserHandler construye el handler.
func NewUserHandler() *UserHandler {
	return &UserHandler{}
}

// List godoc
// @Summary      Listar usuarios
// @Tags         users
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"  default(100)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200     {object}  dto.ListResponse[entity.UserProfileEntry]
// @Failure      403     {object}  dto.ErrorResponse
// @Router       /api/users [get]
func (h *UserHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := parseQuery(c, &page); err != nil {
		return respondError(c, err)
	}
	users, err := queriesOf(c).Users(c.Context())
	if err != nil {
		return respondWith(c, err, domain.ClassifyApprovalError)
	}
	return c.JSON(dto.Paginate(users, page))
}

// Approvals godoc
// @Summary      Listar aprobaciones
// @Tags         users
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"  default(100)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200     {object}  dto.ListResponse[entity.UserApprovalInfo]
// @Failure      403     {object}  dto.ErrorResponse
// @Router       /api/users/approvals [get]
func (h *UserHandler) Approvals(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := parseQuery(c, &page); err != nil {
		return respondError(c, err)
	}
	approvals, err := queriesOf(c).Approvals(c.Context())
	if err != nil {
		return respondWith(c, err, domain.ClassifyApprovalError)
	}
	return c.JSON(dto.Paginate(approvals, page))
}

// SetApproval godoc
// @Summary      Aprobar o rechazar un usuario
// @Tags         users
// @Security     Bearer
// @Accept       json
// @Param        principal  path  string                  true  "Principal del usuario"
// @Param        body       body  dto.SetApprovalRequest  true  "Estado"
// @Success      204
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/users/{principal}/approval [put]
func (h *UserHandler) SetApproval(c *fiber.Ctx) error {
	principal, err := pathParam(c, "principal")
	if err != nil {
		return respondError(c, err)
	}
	var in dto.SetApprovalRequest
	if err := parseBody(c, &in); err != nil {
		return respondError(c, err)
	}
	if err := queriesOf(c).SetApproval(c.Context(), principal, in.Status); err != nil {
		return respondWith(c, err, domain.ClassifyApprovalError)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// AssignRole godoc
// @Summary      Asignar rol de aplicación
// @Description  Un usuario no puede cambiar su propio rol.
// @Tags         users
// @Security     Bearer
// @Accept       json
// @Param        principal  path  string                 true  "Principal del usuario"
// @Param        body       body  dto.AssignRoleRequest  true  "Rol"
// @Success      204
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/users/{principal}/role [put]
func (h *UserHandler) AssignRole(c *fiber.Ctx) error {
	principal, err := pathParam(c, "principal")
	if err != nil {
		return respondError(c, err)
	}
	var in dto.AssignRoleRequest
	if err := parseBody(c, &in); err != nil {
		return respondError(c, err)
	}
	if principal == GetPrincipal(c) {
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "SELF_ROLE_CHANGE", Message: "no puede cambiar su propio rol"})
	}
	if err := queriesOf(c).AssignAppRole(c.Context(), principal, in.Role); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
