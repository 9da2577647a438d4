package entity

import "time"

// Customer cliente al que se le venden pedidos y facturas.
type Customer struct {
	ID        string    `json:"customerId"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Address   string    `json:"address"`
	GSTIN     string    `json:"gstin"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
