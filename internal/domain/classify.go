package domain

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
)

// Kind categoría de un error tal como la necesita la capa de presentación.
type Kind int

const (
	KindUnknown Kind = iota
	KindNetwork
	KindAuthorization
	KindValidation
	KindInsufficientStock
	KindRejected
	KindNotFound
	KindConflict
)

var kindNames = map[Kind]string{
	KindUnknown:           "UNKNOWN",
	KindNetwork:           "NETWORK",
	KindAuthorization:     "UNAUTHORIZED",
	KindValidation:        "VALIDATION",
	KindInsufficientStock: "INSUFFICIENT_STOCK",
	KindRejected:          "REJECTED",
	KindNotFound:          "NOT_FOUND",
	KindConflict:          "CONFLICT",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "UNKNOWN"
}

// kindByCode traduce los códigos estables del backend. Tiene prioridad sobre el texto.
var kindByCode = map[string]Kind{
	CodeUnauthorized:      KindAuthorization,
	CodeForbidden:         KindAuthorization,
	CodeInsufficientStock: KindInsufficientStock,
	CodeRejected:          KindRejected,
	CodeNotFound:          KindNotFound,
	CodeValidation:        KindValidation,
	CodeConflict:          KindConflict,
	CodeNetwork:           KindNetwork,
}

// Classification resultado de clasificar un error para mostrarlo al usuario.
type Classification struct {
	Kind                Kind
	Message             string
	Raw                 string
	IsInsufficientStock bool
	Available           *int64
	Requested           *int64
}

// Code código estable para respuestas HTTP.
func (c Classification) Code() string { return c.Kind.String() }

var (
	networkHints       = []string{"network", "fetch", "timeout", "connection refused", "no such host"}
	authorizationHints = []string{"unauthorized", "permission", "only primary", "only admins can", "only admin can", "not allowed"}
	rejectedHints      = []string{"rejected"}
	stockHints         = []string{"insufficient stock"}
	notFoundHints      = []string{"not found", "does not exist"}
	validationHints    = []string{"invalid", "required", "must be", "already exists"}

	availableRe = regexp.MustCompile(`(?i)available[^0-9-]*(-?\d+)`)
	requestedRe = regexp.MustCompile(`(?i)requested[^0-9-]*(-?\d+)`)
)

// typedKind intenta resolver la categoría sin mirar el texto: RemoteError con código
// conocido o sentinelas del dominio.
func typedKind(err error) (Kind, bool) {
	var re *RemoteError
	if errors.As(err, &re) && re.Code != "" {
		if k, ok := kindByCode[re.Code]; ok {
			return k, true
		}
	}
	switch {
	case errors.Is(err, ErrNetwork):
		return KindNetwork, true
	case errors.Is(err, ErrUnauthorized), errors.Is(err, ErrForbidden):
		return KindAuthorization, true
	case errors.Is(err, ErrInsufficientStock):
		return KindInsufficientStock, true
	case errors.Is(err, ErrRejected):
		return KindRejected, true
	case errors.Is(err, ErrNotFound):
		return KindNotFound, true
	case errors.Is(err, ErrInvalidInput):
		return KindValidation, true
	case errors.Is(err, ErrConflict), errors.Is(err, ErrEmailAlreadyExists):
		return KindConflict, true
	}
	return KindUnknown, false
}

func message(err error) string {
	var re *RemoteError
	if errors.As(err, &re) {
		return re.Message
	}
	return err.Error()
}

func containsAny(s string, hints []string) bool {
	for _, h := range hints {
		if strings.Contains(s, h) {
			return true
		}
	}
	return false
}

// matchKind aplica las pistas de texto en el orden dado; la primera que coincide gana.
func matchKind(raw string, order []Kind) Kind {
	lower := strings.ToLower(raw)
	for _, k := range order {
		var hints []string
		switch k {
		case KindNetwork:
			hints = networkHints
		case KindAuthorization:
			hints = authorizationHints
		case KindRejected:
			hints = rejectedHints
		case KindInsufficientStock:
			hints = stockHints
		case KindNotFound:
			hints = notFoundHints
		case KindValidation:
			hints = validationHints
		}
		if containsAny(lower, hints) {
			return k
		}
	}
	return KindUnknown
}

func fallback(raw, generic string) string {
	if strings.TrimSpace(raw) != "" {
		return raw
	}
	return generic
}

// Classify clasificación genérica usada por los handlers sin un flujo específico.
func Classify(err error) Classification {
	if err == nil {
		return Classification{}
	}
	raw := message(err)
	kind, ok := typedKind(err)
	if !ok {
		kind = matchKind(raw, []Kind{KindNetwork, KindRejected, KindAuthorization, KindInsufficientStock, KindNotFound, KindValidation})
	}
	c := Classification{Kind: kind, Raw: raw}
	switch kind {
	case KindNetwork:
		c.Message = "No se pudo contactar al backend. Intente de nuevo."
	case KindAuthorization:
		c.Message = "No tiene permisos para realizar esta acción."
	case KindRejected:
		c.Message = "Su solicitud de acceso fue rechazada."
	case KindInsufficientStock:
		return ClassifyStockError(err)
	default:
		c.Message = fallback(raw, "Ocurrió un error inesperado.")
	}
	return c
}

// ClassifyProfileSaveError clasificación usada al guardar el perfil del usuario.
func ClassifyProfileSaveError(err error) Classification {
	if err == nil {
		return Classification{}
	}
	raw := message(err)
	kind, ok := typedKind(err)
	if !ok {
		kind = matchKind(raw, []Kind{KindNetwork, KindAuthorization, KindValidation})
	}
	c := Classification{Kind: kind, Raw: raw}
	switch kind {
	case KindNetwork:
		c.Message = "No se pudo guardar el perfil por un problema de conexión. Intente de nuevo."
	case KindAuthorization:
		c.Message = "No tiene permiso para guardar este perfil."
	case KindValidation, KindConflict:
		c.Message = fallback(raw, "Los datos del perfil no son válidos.")
	default:
		c.Message = fallback(raw, "No se pudo guardar el perfil.")
	}
	return c
}

// ClassifyApprovalError clasificación usada en el flujo de aprobaciones y en el bootstrap.
// "rejected" se evalúa antes que autorización: un usuario rechazado también recibe
// mensajes del tipo "unauthorized" en algunos endpoints.
func ClassifyApprovalError(err error) Classification {
	if err == nil {
		return Classification{}
	}
	raw := message(err)
	kind, ok := typedKind(err)
	if !ok {
		kind = matchKind(raw, []Kind{KindRejected, KindAuthorization, KindNetwork})
	}
	c := Classification{Kind: kind, Raw: raw}
	switch kind {
	case KindRejected:
		c.Message = "Su solicitud de acceso fue rechazada. Contacte al administrador."
	case KindAuthorization:
		c.Message = "Sólo los administradores pueden procesar aprobaciones."
	case KindNetwork:
		c.Message = "Error de red al consultar el estado de aprobación. Reintente."
	default:
		c.Message = fallback(raw, "No se pudo procesar la aprobación.")
	}
	return c
}

// ClassifyStockError clasificación usada en ajustes de stock y en facturas que descuentan stock.
// Si el mensaje trae las cantidades ("available: 3, requested: 5") se extraen.
func ClassifyStockError(err error) Classification {
	if err == nil {
		return Classification{}
	}
	raw := message(err)
	kind, ok := typedKind(err)
	if !ok {
		kind = matchKind(raw, []Kind{KindInsufficientStock, KindNotFound, KindAuthorization, KindNetwork})
	}
	c := Classification{Kind: kind, Raw: raw}
	switch kind {
	case KindInsufficientStock:
		c.IsInsufficientStock = true
		c.Available = extractInt(availableRe, raw)
		c.Requested = extractInt(requestedRe, raw)
		if c.Available != nil && c.Requested != nil {
			c.Message = "Stock insuficiente: disponible " + strconv.FormatInt(*c.Available, 10) +
				", solicitado " + strconv.FormatInt(*c.Requested, 10) + "."
		} else {
			c.Message = "Stock insuficiente para completar la operación."
		}
	case KindNotFound:
		c.Message = "Producto no encontrado."
	case KindAuthorization:
		c.Message = "No tiene permisos para ajustar el stock."
	case KindNetwork:
		c.Message = "Error de red al ajustar el stock. Intente de nuevo."
	default:
		c.Message = "No se pudo ajustar el stock: " + fallback(raw, "error desconocido")
	}
	return c
}

func extractInt(re *regexp.Regexp, s string) *int64 {
	m := re.FindStringSubmatch(s)
	if len(m) < 2 {
		return nil
	}
	n, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil {
		return nil
	}
	return &n
}
