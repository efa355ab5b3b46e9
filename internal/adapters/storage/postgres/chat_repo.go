package postgres

import (
	"context"
	"database/sql"

	"petrescue/internal/domain/chat"
)

type ChatRepo struct {
	db *sql.DB
}

func NewChatRepo(db *sql.DB) *ChatRepo {
	return &ChatRepo{db: db}
}

func (r *ChatRepo) Create(ctx context.Context, m chat.Message) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO chat_messages (id, sender_id, receiver_id, content, is_read, ts)
		VALUES ($1,$2,$3,$4,$5,$6)
	`, m.ID, m.SenderID, m.ReceiverID, m.Content, m.IsRead, m.Timestamp)
	return err
}

func (r *ChatRepo) Conversation(ctx context.Context, a, b string) ([]chat.Message, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, sender_id, receiver_id, content, is_read, ts
		FROM chat_messages
		WHERE (sender_id = $1 AND receiver_id = $2)
		   OR (sender_id = $2 AND receiver_id = $1)
		ORDER BY ts ASC
	`, a, b)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]chat.Message, 0)
	for rows.Next() {
		var m chat.Message
		if err := rows.Scan(&m.ID, &m.SenderID, &m.ReceiverID, &m.Content, &m.IsRead, &m.Timestamp); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r *ChatRepo) Partners(ctx context.Context, userID string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT DISTINCT CASE WHEN sender_id = $1 THEN receiver_id ELSE sender_id END
		FROM chat_messages
		WHERE sender_id = $1 OR receiver_id = $1
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]string, 0)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, rows.Err()
}
