package reports

import "context"

type ListFilter struct {
	CreatedBy string
	Status    string
}

func (f ListFilter) Matches(r Report) bool {
	if f.CreatedBy != "" && r.CreatedBy != f.CreatedBy {
		return false
	}
	if f.Status != "" && r.Status != f.Status {
		return false
	}
	return true
}

// Repository: GetByID/Update devuelven store.ErrNotFound.
// List ordena por created_at desc.
type Repository interface {
	Create(ctx context.Context, r Report) error
	Update(ctx context.Context, r Report) error
	GetByID(ctx context.Context, id string) (Report, error)
	List(ctx context.Context, f ListFilter) ([]Report, error)
}
