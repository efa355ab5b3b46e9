package postgres

import (
	"context"
	"database/sql"

	"petrescue/internal/domain/reviews"
	"petrescue/internal/ports/store"
)

type ReviewsRepo struct {
	db *sql.DB
}

func NewReviewsRepo(db *sql.DB) *ReviewsRepo {
	return &ReviewsRepo{db: db}
}

func (r *ReviewsRepo) Create(ctx context.Context, rv reviews.Review) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO reviews (id, pet_id, user_id, rating, comment, created_at)
		VALUES ($1,$2,$3,$4,$5,$6)
	`, rv.ID, rv.PetID, rv.UserID, rv.Rating, rv.Comment, rv.CreatedAt)
	if isUniqueViolation(err) {
		return store.ErrConflict
	}
	return err
}

func (r *ReviewsRepo) List(ctx context.Context, f reviews.ListFilter) ([]reviews.Review, error) {
	var w where
	if f.PetID != "" {
		w.add("pet_id = ?", f.PetID)
	}
	if f.UserID != "" {
		w.add("user_id = ?", f.UserID)
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, pet_id, user_id, rating, comment, created_at
		FROM reviews`+w.String()+`
		ORDER BY created_at DESC
	`, w.args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]reviews.Review, 0)
	for rows.Next() {
		var rv reviews.Review
		if err := rows.Scan(&rv.ID, &rv.PetID, &rv.UserID, &rv.Rating, &rv.Comment, &rv.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, rv)
	}
	return out, rows.Err()
}
