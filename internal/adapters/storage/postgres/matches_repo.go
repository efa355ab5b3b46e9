package postgres

import (
	"context"
	"database/sql"
	"errors"

	"petrescue/internal/domain/matches"
	"petrescue/internal/ports/store"
)

type MatchesRepo struct {
	db *sql.DB
}

func NewMatchesRepo(db *sql.DB) *MatchesRepo {
	return &MatchesRepo{db: db}
}

const matchColumns = `id, pet_id, requester_id, request_type, status, admin_comment, created_at, updated_at`

func (r *MatchesRepo) Create(ctx context.Context, m matches.Request) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO match_requests (`+matchColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
	`, m.ID, m.PetID, m.RequesterID, string(m.RequestType), m.Status, m.AdminComment, m.CreatedAt, m.UpdatedAt)
	if isUniqueViolation(err) {
		return store.ErrConflict
	}
	return err
}

func (r *MatchesRepo) Update(ctx context.Context, m matches.Request) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE match_requests
		SET status = $2, admin_comment = $3, updated_at = $4
		WHERE id = $1
	`, m.ID, m.Status, m.AdminComment, m.UpdatedAt)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (r *MatchesRepo) GetByID(ctx context.Context, id string) (matches.Request, error) {
	m, err := scanMatch(r.db.QueryRowContext(ctx, `SELECT `+matchColumns+` FROM match_requests WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return matches.Request{}, store.ErrNotFound
		}
		return matches.Request{}, err
	}
	return m, nil
}

func (r *MatchesRepo) List(ctx context.Context, f matches.ListFilter) ([]matches.Request, error) {
	var w where
	if f.RequesterID != "" {
		w.add("requester_id = ?", f.RequesterID)
	}
	if f.PetID != "" {
		w.add("pet_id = ?", f.PetID)
	}
	if f.Status != "" {
		w.add("status = ?", f.Status)
	}

	rows, err := r.db.QueryContext(ctx, `SELECT `+matchColumns+` FROM match_requests`+w.String()+` ORDER BY created_at DESC`, w.args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]matches.Request, 0)
	for rows.Next() {
		m, err := scanMatch(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func scanMatch(s scanner) (matches.Request, error) {
	var (
		m   matches.Request
		typ string
	)
	err := s.Scan(&m.ID, &m.PetID, &m.RequesterID, &typ, &m.Status, &m.AdminComment, &m.CreatedAt, &m.UpdatedAt)
	m.RequestType = matches.RequestType(typ)
	return m, err
}
