package chat

import "context"

// Repository:
//   - Conversation devuelve los mensajes entre a y b en ambos sentidos, por timestamp asc.
//   - Partners devuelve los IDs de usuarios con los que userID intercambió mensajes.
type Repository interface {
	Create(ctx context.Context, m Message) error
	Conversation(ctx context.Context, a, b string) ([]Message, error)
	Partners(ctx context.Context, userID string) ([]string, error)
}
