package dto

// CustomerRequest body para POST/PUT /api/customers.
type CustomerRequest struct {
	Name    string `json:"name" validate:"required,min=1,max=200"`
	Email   string `json:"email" validate:"omitempty,email"`
	Phone   string `json:"phone" validate:"omitempty,max=30"`
	Address string `json:"address" validate:"omitempty,max=500"`
	GSTIN   string `json:"gstin" validate:"omitempty,len=15"`
}
