package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/sahil-erp/internal/application/dto"
	"github.com/jhoicas/sahil-erp/internal/domain"
)

// kindStatus código HTTP por categoría de error.
var kindStatus = map[domain.Kind]int{
	domain.KindNetwork:           fiber.StatusServiceUnavailable,
	domain.KindAuthorization:     fiber.StatusForbidden,
	domain.KindRejected:          fiber.StatusForbidden,
	domain.KindValidation:        fiber.StatusBadRequest,
	domain.KindInsufficientStock: fiber.StatusConflict,
	domain.KindConflict:          fiber.StatusConflict,
	domain.KindNotFound:          fiber.StatusNotFound,
}

func statusOf(k domain.Kind) int {
	if s, ok := kindStatus[k]; ok {
		return s
	}
	return fiber.StatusInternalServerError
}

// requestError error de la petición detectado antes de llamar al backend (body, validación, params).
type requestError struct {
	Code    string
	Message string
}

func (e *requestError) Error() string { return e.Message }

func badRequest(code, msg string) error {
	return &requestError{Code: code, Message: msg}
}

// respondError traduce err con el clasificador genérico.
func respondError(c *fiber.Ctx, err error) error {
	return respondWith(c, err, domain.Classify)
}

// respondWith traduce err con el clasificador del flujo (perfil, aprobaciones, stock).
func respondWith(c *fiber.Ctx, err error, classify func(error) domain.Classification) error {
	var re *requestError
	if errors.As(err, &re) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: re.Code, Message: re.Message})
	}
	return respondClassified(c, classify(err))
}

func respondClassified(c *fiber.Ctx, cl domain.Classification) error {
	if cl.IsInsufficientStock {
		return c.Status(statusOf(cl.Kind)).JSON(dto.StockErrorResponse{
			Code:      cl.Code(),
			Message:   cl.Message,
			Available: cl.Available,
			Requested: cl.Requested,
		})
	}
	return c.Status(statusOf(cl.Kind)).JSON(dto.ErrorResponse{Code: cl.Code(), Message: cl.Message})
}

func notFoundResponse(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: msg})
}
