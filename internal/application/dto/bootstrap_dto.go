package dto

import "github.com/jhoicas/sahil-erp/internal/domain/entity"

// AccessResponse banderas de acceso de la identidad.
type AccessResponse struct {
	IsAdmin          bool     `json:"is_admin"`
	IsApproved       bool     `json:"is_approved"`
	IsSecondaryAdmin bool     `json:"is_secondary_admin"`
	CanManageUsers   bool     `json:"can_manage_users"`
	Role             string   `json:"role,omitempty"`
	Modules          []string `json:"modules"`
}

// BootstrapResponse respuesta de GET /api/bootstrap.
type BootstrapResponse struct {
	State   string              `json:"state"`
	Profile *entity.UserProfile `json:"profile,omitempty"`
	Access  AccessResponse      `json:"access"`
	Error   *ErrorResponse      `json:"error,omitempty"`
}

// PollingModuleRequest body para PUT /api/polling/module.
type PollingModuleRequest struct {
	Module string `json:"module" validate:"required,oneof=dashboard inventory orders invoices users reports barcode analytics"`
}

// NotActiveResponse respuesta 403 de las rutas del dashboard cuando la sesión no está activa.
type NotActiveResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	State   string `json:"state"`
}

// PollingEntityResponse sincronización de una lectura con polling.
type PollingEntityResponse struct {
	Entity          string `json:"entity"`
	IntervalSeconds int    `json:"interval_seconds"` // 0 = sin refresco en el módulo actual
	Stale           bool   `json:"stale"`
	Invalidations   int    `json:"invalidations"`
}

// PollingResponse política de polling vigente de la sesión.
type PollingResponse struct {
	IsActive     bool                    `json:"is_active"`
	ActiveModule string                  `json:"active_module"`
	Entities     []PollingEntityResponse `json:"entities"`
}

// CallerAccessResponse respuesta de GET /api/profile/access.
type CallerAccessResponse struct {
	IsAdmin    bool `json:"is_admin"`
	IsApproved bool `json:"is_approved"`
}
