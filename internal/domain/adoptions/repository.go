package adoptions

import (
	"context"
	"time"
)

type ListFilter struct {
	PetID       string
	RequesterID string
	Status      string
}

func (f ListFilter) Matches(r Request) bool {
	if f.PetID != "" && r.PetID != f.PetID {
		return false
	}
	if f.RequesterID != "" && r.RequesterID != f.RequesterID {
		return false
	}
	if f.Status != "" && r.Status != f.Status {
		return false
	}
	return true
}

// Repository:
//   - Create devuelve store.ErrConflict si ya existe una pending para (pet, requester).
//   - RejectPending pasa a rejected todas las pending del pet salvo exceptID,
//     en una sola operación filtrada. Es idempotente.
type Repository interface {
	Create(ctx context.Context, r Request) error
	Update(ctx context.Context, r Request) error
	GetByID(ctx context.Context, id string) (Request, error)
	List(ctx context.Context, f ListFilter) ([]Request, error)
	RejectPending(ctx context.Context, petID, exceptID string, at time.Time) (int64, error)
}
