package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrInsufficientStock  = errors.New("insufficient stock")
	ErrNetwork            = errors.New("error de red con el backend")
	ErrRejected           = errors.New("solicitud de acceso rechazada")
	ErrActorUnavailable   = errors.New("actor no disponible")
)

// Códigos estables que el backend remoto devuelve junto al mensaje.
const (
	CodeUnauthorized      = "UNAUTHORIZED"
	CodeForbidden         = "FORBIDDEN"
	CodeInsufficientStock = "INSUFFICIENT_STOCK"
	CodeRejected          = "REJECTED"
	CodeNotFound          = "NOT_FOUND"
	CodeValidation        = "VALIDATION"
	CodeConflict          = "CONFLICT"
	CodeNetwork           = "NETWORK"
)

// RemoteError error devuelto por el backend: código de máquina más mensaje humano.
// Code puede venir vacío en backends antiguos; en ese caso sólo queda el texto.
type RemoteError struct {
	Code    string
	Message string
}

func (e *RemoteError) Error() string {
	if e.Code == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Is permite errors.Is(err, domain.ErrInsufficientStock) y similares sobre el código.
func (e *RemoteError) Is(target error) bool {
	switch e.Code {
	case CodeUnauthorized:
		return target == ErrUnauthorized
	case CodeForbidden:
		return target == ErrForbidden
	case CodeInsufficientStock:
		return target == ErrInsufficientStock
	case CodeRejected:
		return target == ErrRejected
	case CodeNotFound:
		return target == ErrNotFound
	case CodeValidation:
		return target == ErrInvalidInput
	case CodeConflict:
		return target == ErrConflict
	case CodeNetwork:
		return target == ErrNetwork
	}
	return false
}
