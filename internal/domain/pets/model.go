package pets

import "time"

// PetType define los tipos soportados.
// @Enum dog, cat, other
type PetType string

const (
	TypeDog   PetType = "dog"
	TypeCat   PetType = "cat"
	TypeOther PetType = "other"
)

func (t PetType) Valid() bool {
	switch t {
	case TypeDog, TypeCat, TypeOther:
		return true
	}
	return false
}

// Size define el tamaño de la mascota.
// @Enum small, medium, large
type Size string

const (
	SizeSmall  Size = "small"
	SizeMedium Size = "medium"
	SizeLarge  Size = "large"
)

func (s Size) Valid() bool {
	switch s {
	case SizeSmall, SizeMedium, SizeLarge:
		return true
	}
	return false
}

// Status es texto libre. Estos son los valores que usa el sistema,
// pero el admin puede setear cualquier otro.
const (
	StatusAvailable = "available"
	StatusAdopted   = "adopted"
)

// Pet es un listado de adopción. CreatedBy es el dueño;
// IsApproved controla la visibilidad pública.
type Pet struct {
	ID        string
	CreatedBy string

	Name        string
	PetType     PetType
	Breed       string
	Color       string
	Gender      string
	Size        Size
	Age         int
	Description string
	Location    string
	Images      []string

	Status     string
	IsApproved bool

	IsVaccinated bool
	IsNeutered   bool
	SpecialNotes string

	CreatedAt time.Time
	UpdatedAt time.Time
}
