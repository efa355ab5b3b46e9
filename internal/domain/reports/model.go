package reports

import "time"

const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
	StatusFound    = "found"
	StatusAdopted  = "adopted"
)

// ValidStatus: a diferencia de pets.Status, el estado de un reporte es un enum cerrado.
func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected, StatusFound, StatusAdopted:
		return true
	}
	return false
}

// PetType de un reporte admite más tipos que un listado de adopción.
// @Enum dog, cat, bird, rabbit, other
type PetType string

const (
	TypeDog    PetType = "dog"
	TypeCat    PetType = "cat"
	TypeBird   PetType = "bird"
	TypeRabbit PetType = "rabbit"
	TypeOther  PetType = "other"
)

func (t PetType) Valid() bool {
	switch t {
	case TypeDog, TypeCat, TypeBird, TypeRabbit, TypeOther:
		return true
	}
	return false
}

const MaxImages = 10

// Report es un aviso de mascota perdida/encontrada.
type Report struct {
	ID        string
	CreatedBy string

	PetName       string
	PetType       PetType
	Description   string
	LocationFound string
	ContactInfo   string
	Images        []string

	Status string

	CreatedAt time.Time
	UpdatedAt time.Time
}
