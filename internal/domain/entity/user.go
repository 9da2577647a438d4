package entity

import "time"

// Roles de aplicación; definen a qué módulos accede cada usuario.
const (
	RoleAdmin            = "admin"
	RoleInventoryManager = "inventory_manager"
	RoleSales            = "sales"
	RoleAccountant       = "accountant"
	RoleUser             = "user"
)

// ValidRole informa si r es un rol conocido.
func ValidRole(r string) bool {
	switch r {
	case RoleAdmin, RoleInventoryManager, RoleSales, RoleAccountant, RoleUser:
		return true
	}
	return false
}

// UserProfile perfil creado una vez por identidad en el alta.
type UserProfile struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Department string `json:"department"`
	AppRole    string `json:"appRole"`
}

// UserProfileEntry perfil junto al principal que lo posee (listado de usuarios).
type UserProfileEntry struct {
	Principal string      `json:"principal"`
	Profile   UserProfile `json:"profile"`
}

// Estados de aprobación.
const (
	ApprovalPending  = "pending"
	ApprovalApproved = "approved"
	ApprovalRejected = "rejected"
)

// ValidApprovalStatus informa si s es un estado de aprobación conocido.
func ValidApprovalStatus(s string) bool {
	return s == ApprovalPending || s == ApprovalApproved || s == ApprovalRejected
}

// UserApprovalInfo estado de aprobación de una identidad.
// pending → approved | rejected; rejected → approved si un admin la reprocesa.
type UserApprovalInfo struct {
	Principal string `json:"principal"`
	Status    string `json:"status"`
}

// Identity credenciales de login gestionadas por el gateway.
type Identity struct {
	Principal    string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}
