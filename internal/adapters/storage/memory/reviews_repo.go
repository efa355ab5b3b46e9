package memory

import (
	"context"
	"sort"
	"sync"

	"petrescue/internal/domain/reviews"
	"petrescue/internal/ports/store"
)

type reviewRepo struct {
	mu    sync.RWMutex
	items []reviews.Review
}

func NewReviewRepo() reviews.Repository {
	return &reviewRepo{}
}

func (r *reviewRepo) Create(_ context.Context, rv reviews.Review) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if blank(rv.ID) {
		return errIDRequired
	}
	for _, other := range r.items {
		if other.ID == rv.ID || (other.PetID == rv.PetID && other.UserID == rv.UserID) {
			return store.ErrConflict
		}
	}
	r.items = append(r.items, rv)
	return nil
}

func (r *reviewRepo) List(_ context.Context, f reviews.ListFilter) ([]reviews.Review, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]reviews.Review, 0)
	for _, rv := range r.items {
		if f.Matches(rv) {
			out = append(out, rv)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}
