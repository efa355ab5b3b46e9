package memory

import (
	"context"
	"sort"
	"sync"

	"petrescue/internal/domain/notifications"
	"petrescue/internal/ports/store"
)

type notificationRepo struct {
	mu   sync.RWMutex
	byID map[string]notifications.Notification
}

func NewNotificationRepo() notifications.Repository {
	return &notificationRepo{byID: make(map[string]notifications.Notification)}
}

func (r *notificationRepo) Create(_ context.Context, n notifications.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if blank(n.ID) {
		return errIDRequired
	}
	if _, exists := r.byID[n.ID]; exists {
		return store.ErrConflict
	}
	r.byID[n.ID] = n
	return nil
}

func (r *notificationRepo) GetByID(_ context.Context, id string) (notifications.Notification, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	n, ok := r.byID[id]
	if !ok {
		return notifications.Notification{}, store.ErrNotFound
	}
	return n, nil
}

func (r *notificationRepo) List(_ context.Context, f notifications.ListFilter) ([]notifications.Notification, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]notifications.Notification, 0)
	for _, n := range r.byID {
		if f.Matches(n) {
			out = append(out, n)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *notificationRepo) MarkRead(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	n, ok := r.byID[id]
	if !ok {
		return store.ErrNotFound
	}
	n.IsRead = true
	r.byID[id] = n
	return nil
}

func (r *notificationRepo) MarkAllRead(_ context.Context, recipientID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var count int64
	for id, n := range r.byID {
		if n.RecipientID != recipientID || n.IsRead {
			continue
		}
		n.IsRead = true
		r.byID[id] = n
		count++
	}
	return count, nil
}
