package memory

import (
	"context"
	"sort"
	"sync"

	"petrescue/internal/domain/pets"
	"petrescue/internal/ports/store"
)

type petRepo struct {
	mu   sync.RWMutex
	byID map[string]pets.Pet
}

func NewPetRepo() pets.Repository {
	return &petRepo{
		byID: make(map[string]pets.Pet),
	}
}

func (r *petRepo) Create(_ context.Context, p pets.Pet) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if blank(p.ID) {
		return errIDRequired
	}
	if _, exists := r.byID[p.ID]; exists {
		return store.ErrConflict
	}
	p.Images = cloneStrings(p.Images)
	r.byID[p.ID] = p
	return nil
}

func (r *petRepo) Update(_ context.Context, p pets.Pet) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[p.ID]; !exists {
		return store.ErrNotFound
	}
	p.Images = cloneStrings(p.Images)
	r.byID[p.ID] = p
	return nil
}

func (r *petRepo) GetByID(_ context.Context, id string) (pets.Pet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.byID[id]
	if !ok {
		return pets.Pet{}, store.ErrNotFound
	}
	p.Images = cloneStrings(p.Images)
	return p, nil
}

func (r *petRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[id]; !ok {
		return store.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *petRepo) List(_ context.Context, f pets.ListFilter) ([]pets.Pet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]pets.Pet, 0)
	for _, p := range r.byID {
		if f.Matches(p) {
			p.Images = cloneStrings(p.Images)
			out = append(out, p)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}
