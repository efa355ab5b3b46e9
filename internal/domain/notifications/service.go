package notifications

import (
	"context"
	"errors"
	"strings"

	"petrescue/internal/ports/store"
)

var ErrNotFound = errors.New("notification not found")

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context, recipientID string, unreadOnly bool) ([]Notification, error) {
	if strings.TrimSpace(recipientID) == "" {
		return []Notification{}, nil
	}
	return s.repo.List(ctx, ListFilter{RecipientID: recipientID, UnreadOnly: unreadOnly})
}

func (s *Service) UnreadCount(ctx context.Context, recipientID string) (int, error) {
	items, err := s.List(ctx, recipientID, true)
	if err != nil {
		return 0, err
	}
	return len(items), nil
}

// MarkRead: una notificación ajena se reporta como inexistente.
func (s *Service) MarkRead(ctx context.Context, recipientID, id string) (Notification, error) {
	n, err := s.repo.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return Notification{}, ErrNotFound
		}
		return Notification{}, err
	}
	if n.RecipientID != recipientID {
		return Notification{}, ErrNotFound
	}
	if n.IsRead {
		return n, nil
	}

	if err := s.repo.MarkRead(ctx, n.ID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return Notification{}, ErrNotFound
		}
		return Notification{}, err
	}
	n.IsRead = true
	return n, nil
}

func (s *Service) MarkAllRead(ctx context.Context, recipientID string) (int64, error) {
	return s.repo.MarkAllRead(ctx, recipientID)
}
