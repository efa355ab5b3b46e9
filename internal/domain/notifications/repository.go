package notifications

import "context"

type ListFilter struct {
	RecipientID string
	UnreadOnly  bool
}

func (f ListFilter) Matches(n Notification) bool {
	if f.RecipientID != "" && n.RecipientID != f.RecipientID {
		return false
	}
	if f.UnreadOnly && n.IsRead {
		return false
	}
	return true
}

// Repository: List ordena por created_at desc. MarkAllRead es un update masivo
// y devuelve cuántas se marcaron.
type Repository interface {
	Create(ctx context.Context, n Notification) error
	GetByID(ctx context.Context, id string) (Notification, error)
	List(ctx context.Context, f ListFilter) ([]Notification, error)
	MarkRead(ctx context.Context, id string) error
	MarkAllRead(ctx context.Context, recipientID string) (int64, error)
}
