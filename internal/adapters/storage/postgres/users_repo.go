package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"petrescue/internal/domain/users"
	"petrescue/internal/ports/store"
)

type UsersRepo struct {
	db *sql.DB
}

func NewUsersRepo(db *sql.DB) *UsersRepo {
	return &UsersRepo{db: db}
}

const userColumns = `
	id, email, name, phone, password_hash, role, is_active,
	address, theme_preference, email_notifications_enabled,
	created_at, updated_at`

func (r *UsersRepo) Create(ctx context.Context, u users.User) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO users (`+userColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
	`,
		u.ID, u.Email, u.Name, u.Phone, u.PasswordHash, u.Role, u.IsActive,
		u.Address, string(u.ThemePreference), u.EmailNotificationsEnabled,
		u.CreatedAt, u.UpdatedAt,
	)
	if isUniqueViolation(err) {
		return store.ErrConflict
	}
	return err
}

func (r *UsersRepo) Update(ctx context.Context, u users.User) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE users
		SET
			email = $2,
			name = $3,
			phone = $4,
			password_hash = $5,
			role = $6,
			is_active = $7,
			address = $8,
			theme_preference = $9,
			email_notifications_enabled = $10,
			updated_at = $11
		WHERE id = $1
	`,
		u.ID, u.Email, u.Name, u.Phone, u.PasswordHash, u.Role, u.IsActive,
		u.Address, string(u.ThemePreference), u.EmailNotificationsEnabled,
		u.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return store.ErrConflict
		}
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (r *UsersRepo) GetByID(ctx context.Context, id string) (users.User, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return users.User{}, store.ErrNotFound
	}
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

func (r *UsersRepo) GetByEmail(ctx context.Context, email string) (users.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE lower(email) = lower($1)`, email)
}

func (r *UsersRepo) List(ctx context.Context, f users.ListFilter) ([]users.User, error) {
	var w where
	if f.Role != "" {
		w.add("role = ?", f.Role)
	}
	if f.Active != nil {
		w.add("is_active = ?", *f.Active)
	}

	rows, err := r.db.QueryContext(ctx, `SELECT `+userColumns+` FROM users`+w.String()+` ORDER BY created_at ASC`, w.args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]users.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (r *UsersRepo) getOne(ctx context.Context, query string, arg any) (users.User, error) {
	u, err := scanUser(r.db.QueryRowContext(ctx, query, arg))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return users.User{}, store.ErrNotFound
		}
		return users.User{}, err
	}
	return u, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanUser(s scanner) (users.User, error) {
	var (
		u     users.User
		theme string
	)
	err := s.Scan(
		&u.ID, &u.Email, &u.Name, &u.Phone, &u.PasswordHash, &u.Role, &u.IsActive,
		&u.Address, &theme, &u.EmailNotificationsEnabled,
		&u.CreatedAt, &u.UpdatedAt,
	)
	u.ThemePreference = users.Theme(theme)
	return u, err
}
