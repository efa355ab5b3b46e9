package adoptions

import "time"

const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// ValidDecision: los únicos destinos de una decisión (pending no es destino).
func ValidDecision(s string) bool {
	return s == StatusApproved || s == StatusRejected
}

// Request es una solicitud de adopción. approved y rejected son terminales.
// Como mucho una pending por (pet, requester); lo garantiza el store.
type Request struct {
	ID          string
	PetID       string
	RequesterID string
	Message     string
	Status      string

	CreatedAt time.Time
	UpdatedAt time.Time
}
