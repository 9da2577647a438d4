package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/sahil-erp/internal/application/dto"
	"github.com/jhoicas/sahil-erp/internal/domain"
	"github.com/jhoicas/sahil-erp/internal/domain/entity"
	"github.com/jhoicas/sahil-erp/internal/domain/inventory"
)

// InventoryHandler movimientos de inventario registrados a mano.
type InventoryHandler struct{}

// NewInventoryHandler construye el handler.
func NewInventoryHandler() *InventoryHandler {
	return &InventoryHandler{}
}

// ListRecords godoc
// @Summary      Listar movimientos de inventario
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"  default(100)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200     {object}  dto.ListResponse[entity.InventoryRecord]
// @Router       /api/inventory/records [get]
func (h *InventoryHandler) ListRecords(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := parseQuery(c, &page); err != nil {
		return respondError(c, err)
	}
	out, err := queriesOf(c).InventoryRecords(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.Paginate(out, page))
}

// CreateRecord godoc
// @Summary      Registrar movimiento de inventario
// @Description  Aplica quantity_change al stock del producto; falla si lo dejaría negativo.
// @Description  Una entrada con unit_cost actualiza el costo promedio ponderado del producto.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateInventoryRecordRequest  true  "Movimiento"
// @Success      201   {object}  entity.InventoryRecord
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.StockErrorResponse
// @Router       /api/inventory/records [post]
func (h *InventoryHandler) CreateRecord(c *fiber.Ctx) error {
	var in dto.CreateInventoryRecordRequest
	if err := parseBody(c, &in); err != nil {
		return respondError(c, err)
	}
	if in.UnitCost.IsNegative() {
		return respondError(c, badRequest("VALIDATION", "unit_cost debe ser >= 0"))
	}
	q := queriesOf(c)

	var before *entity.Product
	revalue := in.QuantityChange > 0 && in.UnitCost.IsPositive()
	if revalue {
		p, err := q.Product(c.Context(), in.ProductID)
		if err != nil {
			return respondError(c, err)
		}
		if p == nil {
			return notFoundResponse(c, "producto "+in.ProductID+" no encontrado")
		}
		before = p
	}

	out, err := q.CreateInventoryRecord(c.Context(), entity.InventoryRecord{
		ProductID:      in.ProductID,
		QuantityChange: in.QuantityChange,
		Reason:         in.Reason,
	})
	if err != nil {
		return respondWith(c, err, domain.ClassifyStockError)
	}

	if revalue {
		p := *before
		p.CostPrice = inventory.WeightedAverageCost(before.StockLevel, before.CostPrice, in.QuantityChange, in.UnitCost)
		p.StockLevel = before.StockLevel + in.QuantityChange
		if _, err := q.UpdateProduct(c.Context(), p); err != nil {
			// El movimiento ya quedó registrado; el costo se corrige editando el producto.
			return respondError(c, err)
		}
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// DeleteRecord godoc
// @Summary      Eliminar movimiento de inventario
// @Description  Sólo borra el registro; no revierte el stock.
// @Tags         inventory
// @Security     Bearer
// @Param        id   path  string  true  "ID del movimiento"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/records/{id} [delete]
func (h *InventoryHandler) DeleteRecord(c *fiber.Ctx) error {
	id, err := pathParam(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	if err := queriesOf(c).DeleteInventoryRecord(c.Context(), id); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
