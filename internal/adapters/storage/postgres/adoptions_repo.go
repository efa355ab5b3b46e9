package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"petrescue/internal/domain/adoptions"
	"petrescue/internal/ports/store"
)

type AdoptionsRepo struct {
	db *sql.DB
}

func NewAdoptionsRepo(db *sql.DB) *AdoptionsRepo {
	return &AdoptionsRepo{db: db}
}

const adoptionColumns = `id, pet_id, requester_id, message, status, created_at, updated_at`

// Create: el índice parcial adoption_requests_pending_uq rechaza una
// segunda pending para el mismo (pet, requester).
func (r *AdoptionsRepo) Create(ctx context.Context, a adoptions.Request) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO adoption_requests (`+adoptionColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
	`, a.ID, a.PetID, a.RequesterID, a.Message, a.Status, a.CreatedAt, a.UpdatedAt)
	if isUniqueViolation(err) {
		return store.ErrConflict
	}
	return err
}

func (r *AdoptionsRepo) Update(ctx context.Context, a adoptions.Request) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE adoption_requests
		SET message = $2, status = $3, updated_at = $4
		WHERE id = $1
	`, a.ID, a.Message, a.Status, a.UpdatedAt)
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

func (r *AdoptionsRepo) GetByID(ctx context.Context, id string) (adoptions.Request, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return adoptions.Request{}, store.ErrNotFound
	}
	a, err := scanAdoption(r.db.QueryRowContext(ctx, `SELECT `+adoptionColumns+` FROM adoption_requests WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return adoptions.Request{}, store.ErrNotFound
		}
		return adoptions.Request{}, err
	}
	return a, nil
}

func (r *AdoptionsRepo) List(ctx context.Context, f adoptions.ListFilter) ([]adoptions.Request, error) {
	var w where
	if f.PetID != "" {
		w.add("pet_id = ?", f.PetID)
	}
	if f.RequesterID != "" {
		w.add("requester_id = ?", f.RequesterID)
	}
	if f.Status != "" {
		w.add("status = ?", f.Status)
	}

	rows, err := r.db.QueryContext(ctx, `SELECT `+adoptionColumns+` FROM adoption_requests`+w.String()+` ORDER BY created_at DESC`, w.args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]adoptions.Request, 0)
	for rows.Next() {
		a, err := scanAdoption(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// RejectPending es un único UPDATE filtrado.
func (r *AdoptionsRepo) RejectPending(ctx context.Context, petID, exceptID string, at time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE adoption_requests
		SET status = $1, updated_at = $2
		WHERE pet_id = $3 AND id <> $4 AND status = $5
	`, adoptions.StatusRejected, at, petID, exceptID, adoptions.StatusPending)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func scanAdoption(s scanner) (adoptions.Request, error) {
	var a adoptions.Request
	err := s.Scan(&a.ID, &a.PetID, &a.RequesterID, &a.Message, &a.Status, &a.CreatedAt, &a.UpdatedAt)
	return a, err
}
