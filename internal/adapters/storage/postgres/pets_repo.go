package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"petrescue/internal/domain/pets"
	"petrescue/internal/ports/store"
)

type PetsRepo struct {
	db *sql.DB
}

func NewPetsRepo(db *sql.DB) *PetsRepo {
	return &PetsRepo{db: db}
}

const petColumns = `
	id, created_by,
	name, pet_type, breed, color, gender, size, age,
	description, location, images,
	status, is_approved, is_vaccinated, is_neutered, special_notes,
	created_at, updated_at`

func (r *PetsRepo) Create(ctx context.Context, p pets.Pet) error {
	images, err := encodeImages(p.Images)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO pets (`+petColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19)
	`,
		p.ID, p.CreatedBy,
		p.Name, string(p.PetType), p.Breed, p.Color, p.Gender, string(p.Size), p.Age,
		p.Description, p.Location, images,
		p.Status, p.IsApproved, p.IsVaccinated, p.IsNeutered, p.SpecialNotes,
		p.CreatedAt, p.UpdatedAt,
	)
	if isUniqueViolation(err) {
		return store.ErrConflict
	}
	return err
}

func (r *PetsRepo) Update(ctx context.Context, p pets.Pet) error {
	images, err := encodeImages(p.Images)
	if err != nil {
		return err
	}

	res, err := r.db.ExecContext(ctx, `
		UPDATE pets
		SET
			name = $2,
			pet_type = $3,
			breed = $4,
			color = $5,
			gender = $6,
			size = $7,
			age = $8,
			description = $9,
			location = $10,
			images = $11,
			status = $12,
			is_approved = $13,
			is_vaccinated = $14,
			is_neutered = $15,
			special_notes = $16,
			updated_at = $17
		WHERE id = $1
	`,
		p.ID,
		p.Name, string(p.PetType), p.Breed, p.Color, p.Gender, string(p.Size), p.Age,
		p.Description, p.Location, images,
		p.Status, p.IsApproved, p.IsVaccinated, p.IsNeutered, p.SpecialNotes,
		p.UpdatedAt,
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

func (r *PetsRepo) GetByID(ctx context.Context, id string) (pets.Pet, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return pets.Pet{}, store.ErrNotFound
	}

	p, err := scanPet(r.db.QueryRowContext(ctx, `SELECT `+petColumns+` FROM pets WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return pets.Pet{}, store.ErrNotFound
		}
		return pets.Pet{}, err
	}
	return p, nil
}

func (r *PetsRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM pets WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (r *PetsRepo) List(ctx context.Context, f pets.ListFilter) ([]pets.Pet, error) {
	var w where
	if f.OwnerID != "" {
		w.add("created_by = ?", f.OwnerID)
	}
	if f.ExcludeOwnerID != "" {
		w.add("created_by <> ?", f.ExcludeOwnerID)
	}
	if f.Approved != nil {
		w.add("is_approved = ?", *f.Approved)
	}
	if f.Type != "" {
		w.add("lower(pet_type) = lower(?)", f.Type)
	}
	if f.Status != "" {
		w.add("lower(status) = lower(?)", f.Status)
	}
	if f.Location != "" {
		w.add("location ILIKE ?", "%"+f.Location+"%")
	}
	if f.Query != "" {
		// Todos los ? del mismo add comparten placeholder.
		w.add("(name ILIKE ? OR breed ILIKE ? OR description ILIKE ? OR location ILIKE ?)", "%"+f.Query+"%")
	}
	if len(f.MatchTypes)+len(f.MatchBreeds)+len(f.MatchColors) > 0 {
		w.args = append(w.args, lowerAll(f.MatchTypes), lowerAll(f.MatchBreeds), lowerAll(f.MatchColors))
		n := len(w.args)
		w.conds = append(w.conds, "(lower(pet_type) = ANY("+placeholder(n-2)+
			") OR lower(breed) = ANY("+placeholder(n-1)+
			") OR lower(color) = ANY("+placeholder(n)+"))")
	}

	rows, err := r.db.QueryContext(ctx, `SELECT `+petColumns+` FROM pets`+w.String()+` ORDER BY created_at DESC`, w.args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]pets.Pet, 0)
	for rows.Next() {
		p, err := scanPet(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func scanPet(s scanner) (pets.Pet, error) {
	var (
		p       pets.Pet
		petType string
		size    string
		images  []byte
	)
	if err := s.Scan(
		&p.ID, &p.CreatedBy,
		&p.Name, &petType, &p.Breed, &p.Color, &p.Gender, &size, &p.Age,
		&p.Description, &p.Location, &images,
		&p.Status, &p.IsApproved, &p.IsVaccinated, &p.IsNeutered, &p.SpecialNotes,
		&p.CreatedAt, &p.UpdatedAt,
	); err != nil {
		return pets.Pet{}, err
	}
	p.PetType = pets.PetType(petType)
	p.Size = pets.Size(size)

	var err error
	p.Images, err = decodeImages(images)
	return p, err
}

func lowerAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.ToLower(strings.TrimSpace(s)); s != "" {
			out = append(out, s)
		}
	}
	return out
}
