package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"petrescue/internal/domain/adoptions"
	"petrescue/internal/ports/store"
)

type adoptionRepo struct {
	mu   sync.RWMutex
	byID map[string]adoptions.Request
}

func NewAdoptionRepo() adoptions.Repository {
	return &adoptionRepo{byID: make(map[string]adoptions.Request)}
}

// Create chequea la unicidad de la pending bajo el mismo lock que inserta.
func (r *adoptionRepo) Create(_ context.Context, req adoptions.Request) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if blank(req.ID) {
		return errIDRequired
	}
	if _, exists := r.byID[req.ID]; exists {
		return store.ErrConflict
	}
	if req.Status == adoptions.StatusPending {
		for _, other := range r.byID {
			if other.Status == adoptions.StatusPending &&
				other.PetID == req.PetID &&
				other.RequesterID == req.RequesterID {
				return store.ErrConflict
			}
		}
	}
	r.byID[req.ID] = req
	return nil
}

func (r *adoptionRepo) Update(_ context.Context, req adoptions.Request) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[req.ID]; !exists {
		return store.ErrNotFound
	}
	r.byID[req.ID] = req
	return nil
}

func (r *adoptionRepo) GetByID(_ context.Context, id string) (adoptions.Request, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	req, ok := r.byID[id]
	if !ok {
		return adoptions.Request{}, store.ErrNotFound
	}
	return req, nil
}

func (r *adoptionRepo) List(_ context.Context, f adoptions.ListFilter) ([]adoptions.Request, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]adoptions.Request, 0)
	for _, req := range r.byID {
		if f.Matches(req) {
			out = append(out, req)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *adoptionRepo) RejectPending(_ context.Context, petID, exceptID string, at time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var n int64
	for id, req := range r.byID {
		if req.PetID != petID || id == exceptID || req.Status != adoptions.StatusPending {
			continue
		}
		req.Status = adoptions.StatusRejected
		req.UpdatedAt = at
		r.byID[id] = req
		n++
	}
	return n, nil
}
