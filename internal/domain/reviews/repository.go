package reviews

import "context"

type ListFilter struct {
	PetID  string
	UserID string
}

func (f ListFilter) Matches(r Review) bool {
	if f.PetID != "" && r.PetID != f.PetID {
		return false
	}
	if f.UserID != "" && r.UserID != f.UserID {
		return false
	}
	return true
}

// Repository: Create devuelve store.ErrConflict si (pet, user) ya tiene review.
type Repository interface {
	Create(ctx context.Context, r Review) error
	List(ctx context.Context, f ListFilter) ([]Review, error)
}
