package entity

import "time"

// Notification aviso para un usuario (o para todos si Recipient está vacío).
type Notification struct {
	ID        string    `json:"notificationId"`
	Recipient string    `json:"recipient,omitempty"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Kind      string    `json:"kind"` // info, warning, low_stock, approval
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"createdAt"`
}
