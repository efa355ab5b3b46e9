package memory

import (
	"context"
	"sort"
	"sync"

	"petrescue/internal/domain/chat"
)

type chatRepo struct {
	mu    sync.RWMutex
	items []chat.Message
}

func NewChatRepo() chat.Repository {
	return &chatRepo{}
}

func (r *chatRepo) Create(_ context.Context, m chat.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if blank(m.ID) {
		return errIDRequired
	}
	r.items = append(r.items, m)
	return nil
}

func (r *chatRepo) Conversation(_ context.Context, a, b string) ([]chat.Message, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]chat.Message, 0)
	for _, m := range r.items {
		if (m.SenderID == a && m.ReceiverID == b) || (m.SenderID == b && m.ReceiverID == a) {
			out = append(out, m)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp.Before(out[j].Timestamp)
	})
	return out, nil
}

func (r *chatRepo) Partners(_ context.Context, userID string) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[string]struct{})
	out := make([]string, 0)
	for _, m := range r.items {
		var other string
		switch userID {
		case m.SenderID:
			other = m.ReceiverID
		case m.ReceiverID:
			other = m.SenderID
		default:
			continue
		}
		if _, ok := seen[other]; ok {
			continue
		}
		seen[other] = struct{}{}
		out = append(out, other)
	}
	return out, nil
}
