package memory

import (
	"context"
	"sort"
	"sync"

	"petrescue/internal/domain/matches"
	"petrescue/internal/ports/store"
)

type matchRepo struct {
	mu   sync.RWMutex
	byID map[string]matches.Request
}

func NewMatchRepo() matches.Repository {
	return &matchRepo{byID: make(map[string]matches.Request)}
}

func (r *matchRepo) Create(_ context.Context, req matches.Request) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if blank(req.ID) {
		return errIDRequired
	}
	if _, exists := r.byID[req.ID]; exists {
		return store.ErrConflict
	}
	r.byID[req.ID] = req
	return nil
}

func (r *matchRepo) Update(_ context.Context, req matches.Request) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[req.ID]; !exists {
		return store.ErrNotFound
	}
	r.byID[req.ID] = req
	return nil
}

func (r *matchRepo) GetByID(_ context.Context, id string) (matches.Request, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	req, ok := r.byID[id]
	if !ok {
		return matches.Request{}, store.ErrNotFound
	}
	return req, nil
}

func (r *matchRepo) List(_ context.Context, f matches.ListFilter) ([]matches.Request, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]matches.Request, 0)
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
