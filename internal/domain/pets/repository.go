package pets

import (
	"context"
	"strings"
)

// ListFilter: campos vacíos/nil no filtran.
// MatchTypes/MatchBreeds/MatchColors se combinan con OR entre sí
// (sugerencias de matching); el resto con AND.
type ListFilter struct {
	OwnerID        string
	ExcludeOwnerID string
	Approved       *bool
	Type           string
	Status         string
	Location       string
	Query          string

	MatchTypes  []string
	MatchBreeds []string
	MatchColors []string
}

func (f ListFilter) hasMatch() bool {
	return len(f.MatchTypes)+len(f.MatchBreeds)+len(f.MatchColors) > 0
}

// Matches evalúa el filtro en memoria. Las comparaciones de texto
// no distinguen mayúsculas.
func (f ListFilter) Matches(p Pet) bool {
	if f.OwnerID != "" && p.CreatedBy != f.OwnerID {
		return false
	}
	if f.ExcludeOwnerID != "" && p.CreatedBy == f.ExcludeOwnerID {
		return false
	}
	if f.Approved != nil && p.IsApproved != *f.Approved {
		return false
	}
	if f.Type != "" && !strings.EqualFold(string(p.PetType), f.Type) {
		return false
	}
	if f.Status != "" && !strings.EqualFold(p.Status, f.Status) {
		return false
	}
	if f.Location != "" && !containsFold(p.Location, f.Location) {
		return false
	}
	if f.Query != "" {
		if !containsFold(p.Name, f.Query) &&
			!containsFold(p.Breed, f.Query) &&
			!containsFold(p.Description, f.Query) &&
			!containsFold(p.Location, f.Query) {
			return false
		}
	}

	if f.hasMatch() {
		return anyFold(f.MatchTypes, string(p.PetType)) ||
			anyFold(f.MatchBreeds, p.Breed) ||
			anyFold(f.MatchColors, p.Color)
	}
	return true
}

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}

func anyFold(list []string, v string) bool {
	for _, s := range list {
		if strings.EqualFold(strings.TrimSpace(s), v) {
			return true
		}
	}
	return false
}

// Repository: GetByID/Update/Delete devuelven store.ErrNotFound.
// List ordena por created_at desc.
type Repository interface {
	Create(ctx context.Context, p Pet) error
	Update(ctx context.Context, p Pet) error
	GetByID(ctx context.Context, id string) (Pet, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, f ListFilter) ([]Pet, error)
}
