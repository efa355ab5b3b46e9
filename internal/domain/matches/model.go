package matches

import "time"

// RequestType de una solicitud de match.
// @Enum found, lost
type RequestType string

const (
	TypeFound RequestType = "found"
	TypeLost  RequestType = "lost"
)

func (t RequestType) Valid() bool {
	return t == TypeFound || t == TypeLost
}

const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// Request es independiente de adoptions.Request: no hay cascada
// ni unicidad por pet.
type Request struct {
	ID           string
	PetID        string
	RequesterID  string
	RequestType  RequestType
	Status       string
	AdminComment string

	CreatedAt time.Time
	UpdatedAt time.Time
}
