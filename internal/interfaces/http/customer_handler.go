package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/sahil-erp/internal/application/dto"
	"github.com/jhoicas/sahil-erp/internal/domain/entity"
)

// CustomerHandler maneja las peticiones HTTP de clientes.
type CustomerHandler struct{}

// NewCustomerHandler construye el handler.
func NewCustomerHandler() *CustomerHandler {
	return &CustomerHandler{}
}

// Create godoc
// @Summary      Crear cliente
// @Tags         customers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CustomerRequest  true  "Datos del cliente"
// @Success      201   {object}  entity.Customer
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/customers [post]
func (h *CustomerHandler) Create(c *fiber.Ctx) error {
	var in dto.CustomerRequest
	if err := parseBody(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := queriesOf(c).CreateCustomer(c.Context(), toCustomer("", in))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar clientes
// @Tags         customers
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"  default(100)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200     {object}  dto.ListResponse[entity.Customer]
// @Router       /api/customers [get]
func (h *CustomerHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := parseQuery(c, &page); err != nil {
		return respondError(c, err)
	}
	out, err := queriesOf(c).Customers(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.Paginate(out, page))
}

// GetByID godoc
// @Summary      Obtener cliente por ID
// @Tags         customers
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del cliente"
// @Success      200  {object}  entity.Customer
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/customers/{id} [get]
func (h *CustomerHandler) GetByID(c *fiber.Ctx) error {
	id, err := pathParam(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	out, err := queriesOf(c).Customer(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	if out == nil {
		return notFoundResponse(c, "cliente no encontrado")
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar cliente
// @Tags         customers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string               true  "ID del cliente"
// @Param        body  body  dto.CustomerRequest  true  "Datos del cliente"
// @Success      200   {object}  entity.Customer
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/customers/{id} [put]
func (h *CustomerHandler) Update(c *fiber.Ctx) error {
	id, err := pathParam(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	var in dto.CustomerRequest
	if err := parseBody(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := queriesOf(c).UpdateCustomer(c.Context(), toCustomer(id, in))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar cliente
// @Tags         customers
// @Security     Bearer
// @Param        id   path  string  true  "ID del cliente"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/customers/{id} [delete]
func (h *CustomerHandler) Delete(c *fiber.Ctx) error {
	id, err := pathParam(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	if err := queriesOf(c).DeleteCustomer(c.Context(), id); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func toCustomer(id string, in dto.CustomerRequest) entity.Customer {
	return entity.Customer{
		ID:      id,
		Name:    in.Name,
		Email:   in.Email,
		Phone:   in.Phone,
		Address: in.Address,
		GSTIN:   in.GSTIN,
	}
}
