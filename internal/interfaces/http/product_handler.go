package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/sahil-erp/internal/application/dto"
	"github.com/jhoicas/sahil-erp/internal/domain"
	"github.com/jhoicas/sahil-erp/internal/domain/entity"
)

// ProductHandler maneja las peticiones HTTP del catálogo y del stock.
type ProductHandler struct{}

// NewProductHandler construye el handler.
func NewProductHandler() *ProductHandler {
	return &ProductHandler{}
}

// Create godoc
// @Summary      Crear producto
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ProductRequest  true  "Datos del producto"
// @Success      201   {object}  entity.Product
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/products [post]
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var in dto.ProductRequest
	if err := parseBody(c, &in); err != nil {
		return respondError(c, err)
	}
	if err := checkPrices(in); err != nil {
		return respondError(c, err)
	}
	out, err := queriesOf(c).CreateProduct(c.Context(), toProduct("", in))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener producto por ID
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del producto"
// @Success      200  {object}  entity.Product
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id} [get]
func (h *ProductHandler) GetByID(c *fiber.Ctx) error {
	id, err := pathParam(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	out, err := queriesOf(c).Product(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	if out == nil {
		return notFoundResponse(c, "producto no encontrado")
	}
	return c.JSON(out)
}

// ByBarcode godoc
// @Summary      Buscar producto por código de barras
// @Tags         barcode
// @Security     Bearer
// @Produce      json
// @Param        code  path  string  true  "Código de barras"
// @Success      200   {object}  entity.Product
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/barcode/lookup/{code} [get]
func (h *ProductHandler) ByBarcode(c *fiber.Ctx) error {
	code, err := pathParam(c, "code")
	if err != nil {
		return respondError(c, err)
	}
	out, err := queriesOf(c).ProductByBarcode(c.Context(), code)
	if err != nil {
		return respondError(c, err)
	}
	if out == nil {
		return notFoundResponse(c, "ningún producto con ese código")
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar productos
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"  default(100)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200     {object}  dto.ListResponse[entity.Product]
// @Router       /api/products [get]
func (h *ProductHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := parseQuery(c, &page); err != nil {
		return respondError(c, err)
	}
	out, err := queriesOf(c).Products(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.Paginate(out, page))
}

// LowStock godoc
// @Summary      Productos con stock bajo
// @Description  threshold 0 (por defecto) usa el punto de reorden de cada producto.
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        threshold  query  int  false  "Umbral"  default(0)
// @Success      200        {array}   entity.Product
// @Failure      400        {object}  dto.ErrorResponse
// @Router       /api/products/low-stock [get]
func (h *ProductHandler) LowStock(c *fiber.Ctx) error {
	threshold := c.QueryInt("threshold", 0)
	if threshold < 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "threshold debe ser >= 0"})
	}
	out, err := queriesOf(c).LowStockProducts(c.Context(), int64(threshold))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar producto
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string              true  "ID del producto"
// @Param        body  body  dto.ProductRequest  true  "Datos a actualizar"
// @Success      200   {object}  entity.Product
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/products/{id} [put]
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	id, err := pathParam(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	var in dto.ProductRequest
	if err := parseBody(c, &in); err != nil {
		return respondError(c, err)
	}
	if err := checkPrices(in); err != nil {
		return respondError(c, err)
	}
	out, err := queriesOf(c).UpdateProduct(c.Context(), toProduct(id, in))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar producto
// @Tags         products
// @Security     Bearer
// @Param        id   path  string  true  "ID del producto"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id} [delete]
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	id, err := pathParam(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	if err := queriesOf(c).DeleteProduct(c.Context(), id); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// AdjustStock godoc
// @Summary      Ajustar stock
// @Description  Delta negativo descuenta. El stock nunca queda por debajo de cero.
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                  true  "ID del producto"
// @Param        body  body  dto.AdjustStockRequest  true  "Delta"
// @Success      200   {object}  entity.Product
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.StockErrorResponse
// @Router       /api/products/{id}/stock [post]
func (h *ProductHandler) AdjustStock(c *fiber.Ctx) error {
	id, err := pathParam(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	var in dto.AdjustStockRequest
	if err := parseBody(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := queriesOf(c).AdjustStock(c.Context(), id, in.Delta)
	if err != nil {
		return respondWith(c, err, domain.ClassifyStockError)
	}
	return c.JSON(out)
}

func checkPrices(in dto.ProductRequest) error {
	if in.Price.IsNegative() || in.CostPrice.IsNegative() {
		return badRequest("VALIDATION", "price y cost_price deben ser >= 0")
	}
	return nil
}

func toProduct(id string, in dto.ProductRequest) entity.Product {
	return entity.Product{
		ID:           id,
		Name:         in.Name,
		Category:     in.Category,
		Description:  in.Description,
		Size:         in.Size,
		Color:        in.Color,
		Price:        in.Price,
		CostPrice:    in.CostPrice,
		StockLevel:   in.StockLevel,
		ReorderLevel: in.ReorderLevel,
		Barcode:      in.Barcode,
		Warehouse:    in.Warehouse,
		Rack:         in.Rack,
		Shelf:        in.Shelf,
	}
}
