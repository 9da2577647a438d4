package dto

// SaveProfileRequest body para PUT /api/profile.
type SaveProfileRequest struct {
	Name       string `json:"name" validate:"required,min=1,max=200"`
	Email      string `json:"email" validate:"omitempty,email"`
	Department string `json:"department" validate:"omitempty,max=100"`
}

// SetApprovalRequest body para PUT /api/users/:principal/approval.
type SetApprovalRequest struct {
	Status string `json:"status" validate:"required,oneof=pending approved rejected"`
}

// AssignRoleRequest body para PUT /api/users/:principal/role.
type AssignRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=admin inventory_manager sales accountant user"`
}
