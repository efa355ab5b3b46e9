package memory

import (
	"context"
	"sort"
	"sync"

	"petrescue/internal/domain/reports"
	"petrescue/internal/ports/store"
)

type reportRepo struct {
	mu   sync.RWMutex
	byID map[string]reports.Report
}

func NewReportRepo() reports.Repository {
	return &reportRepo{byID: make(map[string]reports.Report)}
}

func (r *reportRepo) Create(_ context.Context, rep reports.Report) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if blank(rep.ID) {
		return errIDRequired
	}
	if _, exists := r.byID[rep.ID]; exists {
		return store.ErrConflict
	}
	rep.Images = cloneStrings(rep.Images)
	r.byID[rep.ID] = rep
	return nil
}

func (r *reportRepo) Update(_ context.Context, rep reports.Report) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[rep.ID]; !exists {
		return store.ErrNotFound
	}
	rep.Images = cloneStrings(rep.Images)
	r.byID[rep.ID] = rep
	return nil
}

func (r *reportRepo) GetByID(_ context.Context, id string) (reports.Report, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rep, ok := r.byID[id]
	if !ok {
		return reports.Report{}, store.ErrNotFound
	}
	rep.Images = cloneStrings(rep.Images)
	return rep, nil
}

func (r *reportRepo) List(_ context.Context, f reports.ListFilter) ([]reports.Report, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]reports.Report, 0)
	for _, rep := range r.byID {
		if f.Matches(rep) {
			rep.Images = cloneStrings(rep.Images)
			out = append(out, rep)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}
