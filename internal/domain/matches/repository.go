package matches

import "context"

type ListFilter struct {
	RequesterID string
	PetID       string
	Status      string
}

func (f ListFilter) Matches(r Request) bool {
	if f.RequesterID != "" && r.RequesterID != f.RequesterID {
		return false
	}
	if f.PetID != "" && r.PetID != f.PetID {
		return false
	}
	if f.Status != "" && r.Status != f.Status {
		return false
	}
	return true
}

type Repository interface {
	Create(ctx context.Context, r Request) error
	Update(ctx context.Context, r Request) error
	GetByID(ctx context.Context, id string) (Request, error)
	List(ctx context.Context, f ListFilter) ([]Request, error)
}
