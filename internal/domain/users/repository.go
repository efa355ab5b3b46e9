package users

import "context"

type ListFilter struct {
	Role   string
	Active *bool
}

// Repository:
// - Create devuelve store.ErrConflict si el email ya existe.
// - GetByID/GetByEmail/Update devuelven store.ErrNotFound.
type Repository interface {
	Create(ctx context.Context, u User) error
	Update(ctx context.Context, u User) error
	GetByID(ctx context.Context, id string) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	List(ctx context.Context, f ListFilter) ([]User, error)
}
