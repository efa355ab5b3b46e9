package postgres

import (
	"context"
	"database/sql"
	"errors"

	"petrescue/internal/domain/notifications"
	"petrescue/internal/ports/store"
)

type NotificationsRepo struct {
	db *sql.DB
}

func NewNotificationsRepo(db *sql.DB) *NotificationsRepo {
	return &NotificationsRepo{db: db}
}

const notificationColumns = `
	id, recipient_id, recipient_role, title, message,
	type, related_entity_id, is_read, created_at`

func (r *NotificationsRepo) Create(ctx context.Context, n notifications.Notification) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO notifications (`+notificationColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
	`,
		n.ID, n.RecipientID, n.RecipientRole, n.Title, n.Message,
		string(n.Type), n.RelatedEntityID, n.IsRead, n.CreatedAt,
	)
	if isUniqueViolation(err) {
		return store.ErrConflict
	}
	return err
}

func (r *NotificationsRepo) GetByID(ctx context.Context, id string) (notifications.Notification, error) {
	n, err := scanNotification(r.db.QueryRowContext(ctx, `SELECT `+notificationColumns+` FROM notifications WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return notifications.Notification{}, store.ErrNotFound
		}
		return notifications.Notification{}, err
	}
	return n, nil
}

func (r *NotificationsRepo) List(ctx context.Context, f notifications.ListFilter) ([]notifications.Notification, error) {
	var w where
	if f.RecipientID != "" {
		w.add("recipient_id = ?", f.RecipientID)
	}
	if f.UnreadOnly {
		w.add("is_read = ?", false)
	}

	rows, err := r.db.QueryContext(ctx, `SELECT `+notificationColumns+` FROM notifications`+w.String()+` ORDER BY created_at DESC`, w.args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]notifications.Notification, 0)
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

func (r *NotificationsRepo) MarkRead(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE notifications SET is_read = TRUE WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (r *NotificationsRepo) MarkAllRead(ctx context.Context, recipientID string) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE notifications SET is_read = TRUE
		WHERE recipient_id = $1 AND is_read = FALSE
	`, recipientID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func scanNotification(s scanner) (notifications.Notification, error) {
	var (
		n   notifications.Notification
		typ string
	)
	err := s.Scan(
		&n.ID, &n.RecipientID, &n.RecipientRole, &n.Title, &n.Message,
		&typ, &n.RelatedEntityID, &n.IsRead, &n.CreatedAt,
	)
	n.Type = notifications.Type(typ)
	return n, err
}
