package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"petrescue/internal/domain/reports"
	"petrescue/internal/ports/store"
)

type ReportsRepo struct {
	db *sql.DB
}

func NewReportsRepo(db *sql.DB) *ReportsRepo {
	return &ReportsRepo{db: db}
}

const reportColumns = `
	id, created_by, pet_name, pet_type, description,
	location_found, contact_info, images, status,
	created_at, updated_at`

func (r *ReportsRepo) Create(ctx context.Context, rep reports.Report) error {
	images, err := encodeImages(rep.Images)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO pet_reports (`+reportColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
	`,
		rep.ID, rep.CreatedBy, rep.PetName, string(rep.PetType), rep.Description,
		rep.LocationFound, rep.ContactInfo, images, rep.Status,
		rep.CreatedAt, rep.UpdatedAt,
	)
	if isUniqueViolation(err) {
		return store.ErrConflict
	}
	return err
}

func (r *ReportsRepo) Update(ctx context.Context, rep reports.Report) error {
	images, err := encodeImages(rep.Images)
	if err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx, `
		UPDATE pet_reports
		SET
			pet_name = $2,
			pet_type = $3,
			description = $4,
			location_found = $5,
			contact_info = $6,
			images = $7,
			status = $8,
			updated_at = $9
		WHERE id = $1
	`,
		rep.ID, rep.PetName, string(rep.PetType), rep.Description,
		rep.LocationFound, rep.ContactInfo, images, rep.Status,
		rep.UpdatedAt,
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (r *ReportsRepo) GetByID(ctx context.Context, id string) (reports.Report, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return reports.Report{}, store.ErrNotFound
	}
	rep, err := scanReport(r.db.QueryRowContext(ctx, `SELECT `+reportColumns+` FROM pet_reports WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return reports.Report{}, store.ErrNotFound
		}
		return reports.Report{}, err
	}
	return rep, nil
}

func (r *ReportsRepo) List(ctx context.Context, f reports.ListFilter) ([]reports.Report, error) {
	var w where
	if f.CreatedBy != "" {
		w.add("created_by = ?", f.CreatedBy)
	}
	if f.Status != "" {
		w.add("status = ?", f.Status)
	}

	rows, err := r.db.QueryContext(ctx, `SELECT `+reportColumns+` FROM pet_reports`+w.String()+` ORDER BY created_at DESC`, w.args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]reports.Report, 0)
	for rows.Next() {
		rep, err := scanReport(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rep)
	}
	return out, rows.Err()
}

func scanReport(s scanner) (reports.Report, error) {
	var (
		rep     reports.Report
		petType string
		images  []byte
	)
	if err := s.Scan(
		&rep.ID, &rep.CreatedBy, &rep.PetName, &petType, &rep.Description,
		&rep.LocationFound, &rep.ContactInfo, &images, &rep.Status,
		&rep.CreatedAt, &rep.UpdatedAt,
	); err != nil {
		return reports.Report{}, err
	}
	rep.PetType = reports.PetType(petType)

	var err error
	rep.Images, err = decodeImages(images)
	return rep, err
}
