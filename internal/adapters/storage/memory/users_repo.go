package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"petrescue/internal/domain/users"
	"petrescue/internal/ports/store"
)

type userRepo struct {
	mu      sync.RWMutex
	byID    map[string]users.User
	byEmail map[string]string
}

func NewUserRepo() users.Repository {
	return &userRepo{
		byID:    make(map[string]users.User),
		byEmail: make(map[string]string),
	}
}

func (r *userRepo) Create(_ context.Context, u users.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if blank(u.ID) {
		return errIDRequired
	}
	email := strings.ToLower(u.Email)
	if _, exists := r.byEmail[email]; exists {
		return store.ErrConflict
	}
	if _, exists := r.byID[u.ID]; exists {
		return store.ErrConflict
	}
	r.byID[u.ID] = u
	r.byEmail[email] = u.ID
	return nil
}

func (r *userRepo) Update(_ context.Context, u users.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	prev, ok := r.byID[u.ID]
	if !ok {
		return store.ErrNotFound
	}

	email := strings.ToLower(u.Email)
	if owner, taken := r.byEmail[email]; taken && owner != u.ID {
		return store.ErrConflict
	}
	delete(r.byEmail, strings.ToLower(prev.Email))
	r.byEmail[email] = u.ID
	r.byID[u.ID] = u
	return nil
}

func (r *userRepo) GetByID(_ context.Context, id string) (users.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byID[id]
	if !ok {
		return users.User{}, store.ErrNotFound
	}
	return u, nil
}

func (r *userRepo) GetByEmail(_ context.Context, email string) (users.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[strings.ToLower(email)]
	if !ok {
		return users.User{}, store.ErrNotFound
	}
	return r.byID[id], nil
}

func (r *userRepo) List(_ context.Context, f users.ListFilter) ([]users.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]users.User, 0)
	for _, u := range r.byID {
		if f.Role != "" && u.Role != f.Role {
			continue
		}
		if f.Active != nil && u.IsActive != *f.Active {
			continue
		}
		out = append(out, u)
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}
