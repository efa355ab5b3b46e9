package chat

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"petrescue/internal/domain/access"
	"petrescue/internal/domain/users"
	"petrescue/internal/platform/ids"
	"petrescue/internal/platform/sanitize"
)

var (
	ErrInvalidInput     = errors.New("invalid input")
	ErrReceiverNotFound = errors.New("receiver not found")
	ErrForbidden        = errors.New("forbidden")
)

// UserFinder es lo que chat necesita de users.
type UserFinder interface {
	GetByID(ctx context.Context, id string) (users.User, error)
	ListAdmins(ctx context.Context) ([]access.Actor, error)
}

type Service struct {
	repo  Repository
	users UserFinder
	now   func() time.Time
}

func NewService(repo Repository, userFinder UserFinder) *Service {
	return &Service{
		repo:  repo,
		users: userFinder,
		now:   time.Now,
	}
}

func (s *Service) Send(ctx context.Context, actor access.Actor, receiverID, content string) (Message, error) {
	if !access.CanPerform(actor, access.OpSendMessage, access.Target{}) {
		return Message{}, ErrForbidden
	}

	receiverID = strings.TrimSpace(receiverID)
	content = sanitize.Text(content)
	if receiverID == "" || receiverID == actor.UserID || content == "" || len(content) > MaxContentLen {
		return Message{}, ErrInvalidInput
	}

	if _, err := s.users.GetByID(ctx, receiverID); err != nil {
		if errors.Is(err, users.ErrNotFound) {
			return Message{}, ErrReceiverNotFound
		}
		return Message{}, err
	}

	m := Message{
		ID:         ids.New(),
		SenderID:   actor.UserID,
		ReceiverID: receiverID,
		Content:    content,
		Timestamp:  s.now(),
	}
	if err := s.repo.Create(ctx, m); err != nil {
		return Message{}, err
	}
	return m, nil
}

func (s *Service) History(ctx context.Context, actor access.Actor, otherID string) ([]Message, error) {
	otherID = strings.TrimSpace(otherID)
	if otherID == "" {
		return nil, ErrInvalidInput
	}
	return s.repo.Conversation(ctx, actor.UserID, otherID)
}

// Contacts: usuarios con los que hubo conversación. Los no-admin además
// ven siempre a todos los admins activos.
func (s *Service) Contacts(ctx context.Context, actor access.Actor) ([]users.User, error) {
	partnerIDs, err := s.repo.Partners(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}

	set := make(map[string]struct{}, len(partnerIDs))
	for _, id := range partnerIDs {
		set[id] = struct{}{}
	}

	if !actor.IsAdmin() {
		admins, err := s.users.ListAdmins(ctx)
		if err != nil {
			return nil, err
		}
		for _, a := range admins {
			set[a.UserID] = struct{}{}
		}
	}
	delete(set, actor.UserID)

	out := make([]users.User, 0, len(set))
	for id := range set {
		u, err := s.users.GetByID(ctx, id)
		if err != nil {
			// contacto borrado o inconsistente: se omite
			if errors.Is(err, users.ErrNotFound) {
				continue
			}
			return nil, err
		}
		out = append(out, u)
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].DisplayName() < out[j].DisplayName()
	})
	return out, nil
}
