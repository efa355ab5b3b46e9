package notifications

import "time"

type Type string

const (
	TypePet      Type = "pet"
	TypeReport   Type = "report"
	TypeAdoption Type = "adoption"
	TypeSystem   Type = "system"
)

func (t Type) Valid() bool {
	switch t {
	case TypePet, TypeReport, TypeAdoption, TypeSystem:
		return true
	}
	return false
}

// Notification es inmutable salvo IsRead. RecipientRole se copia al crearla
// y no se recalcula si el rol del usuario cambia después.
type Notification struct {
	ID              string
	RecipientID     string
	RecipientRole   string
	Title           string
	Message         string
	Type            Type
	RelatedEntityID string
	IsRead          bool
	CreatedAt       time.Time
}
