package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/sahil-erp/internal/application/dto"
	"github.com/jhoicas/sahil-erp/internal/domain/entity"
)

// OrderHandler maneja las peticiones HTTP de pedidos.
type OrderHandler struct{}

// NewOrderHandler construye el handler.
func NewOrderHandler() *OrderHandler {
	return &OrderHandler{}
}

// Create godoc
// @Summary      Crear pedido
// @Description  Una línea sin unit_price toma el precio de lista del producto.
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateOrderRequest  true  "Pedido"
// @Success      201   {object}  entity.Order
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/orders [post]
func (h *OrderHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateOrderRequest
	if err := parseBody(c, &in); err != nil {
		return respondError(c, err)
	}
	q := queriesOf(c)
	items := make([]entity.OrderItem, 0, len(in.Items))
	for _, it := range in.Items {
		if it.UnitPrice.IsNegative() {
			return respondError(c, badRequest("VALIDATION", "unit_price debe ser >= 0"))
		}
		price := it.UnitPrice
		if price.IsZero() {
			p, err := q.Product(c.Context(), it.ProductID)
			if err != nil {
				return respondError(c, err)
			}
			if p == nil {
				return notFoundResponse(c, "producto "+it.ProductID+" no encontrado")
			}
			price = p.Price
		}
		items = append(items, entity.OrderItem{ProductID: it.ProductID, Quantity: it.Quantity, UnitPrice: price})
	}
	out, err := q.CreateOrder(c.Context(), entity.Order{
		CustomerID: in.CustomerID,
		Items:      items,
		Status:     entity.OrderStatusPending,
		Notes:      in.Notes,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar pedidos
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"  default(100)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200     {object}  dto.ListResponse[entity.Order]
// @Router       /api/orders [get]
func (h *OrderHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := parseQuery(c, &page); err != nil {
		return respondError(c, err)
	}
	out, err := queriesOf(c).Orders(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.Paginate(out, page))
}

// GetByID godoc
// @Summary      Obtener pedido por ID
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del pedido"
// @Success      200  {object}  entity.Order
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/orders/{id} [get]
func (h *OrderHandler) GetByID(c *fiber.Ctx) error {
	id, err := pathParam(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	out, err := queriesOf(c).Order(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	if out == nil {
		return notFoundResponse(c, "pedido no encontrado")
	}
	return c.JSON(out)
}

// UpdateStatus godoc
// @Summary      Cambiar estado del pedido
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Param        id    path  string                   true  "ID del pedido"
// @Param        body  body  dto.UpdateStatusRequest  true  "pending | processing | shipped | delivered | cancelled"
// @Success      204
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/status [put]
func (h *OrderHandler) UpdateStatus(c *fiber.Ctx) error {
	id, err := pathParam(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	var in dto.UpdateStatusRequest
	if err := parseBody(c, &in); err != nil {
		return respondError(c, err)
	}
	if !entity.ValidOrderStatus(in.Status) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "estado de pedido desconocido"})
	}
	if err := queriesOf(c).UpdateOrderStatus(c.Context(), id, in.Status); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Delete godoc
// @Summary      Eliminar pedido
// @Tags         orders
// @Security     Bearer
// @Param        id   path  string  true  "ID del pedido"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/orders/{id} [delete]
func (h *OrderHandler) Delete(c *fiber.Ctx) error {
	id, err := pathParam(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	if err := queriesOf(c).DeleteOrder(c.Context(), id); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
