package entity

// BootstrapState respuesta agrupada con la que arranca el dashboard: evita
// tres viajes separados (perfil, admin, aprobación).
type BootstrapState struct {
	Profile        *UserProfile `json:"profile"`
	IsAdmin        bool         `json:"isAdmin"`
	IsApproved     bool         `json:"isApproved"`
	ApprovalStatus string       `json:"approvalStatus,omitempty"`
}
