package entity

import "time"

// DataEntry registro libre capturado desde el módulo de reportes.
type DataEntry struct {
	ID        string    `json:"entryId"`
	Category  string    `json:"category"`
	Payload   string    `json:"payload"`
	CreatedBy string    `json:"createdBy"`
	CreatedAt time.Time `json:"createdAt"`
}
