package pets

import (
	"context"
	"errors"
	"strings"
	"time"

	"petrescue/internal/domain/access"
	"petrescue/internal/platform/ids"
	"petrescue/internal/platform/sanitize"
	"petrescue/internal/ports/store"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("pet not found")
	ErrForbidden    = errors.New("forbidden")
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

type CreateInput struct {
	Name         string
	PetType      string
	Breed        string
	Color        string
	Gender       string
	Size         string
	Age          int
	Description  string
	Location     string
	Images       []string
	IsVaccinated bool
	IsNeutered   bool
	SpecialNotes string
}

// Build arma una mascota nueva validada. La usan Create (listado directo,
// aprobado) y el flujo de registro del engine (pendiente de moderación).
func Build(ownerID string, in CreateInput, approved bool, now time.Time) (Pet, error) {
	if strings.TrimSpace(ownerID) == "" {
		return Pet{}, ErrInvalidInput
	}

	name := sanitize.Text(in.Name)
	if name == "" {
		return Pet{}, ErrInvalidInput
	}

	pt := PetType(strings.ToLower(strings.TrimSpace(in.PetType)))
	if pt == "" {
		pt = TypeDog
	}
	if !pt.Valid() {
		return Pet{}, ErrInvalidInput
	}

	size := Size(strings.ToLower(strings.TrimSpace(in.Size)))
	if size != "" && !size.Valid() {
		return Pet{}, ErrInvalidInput
	}
	if in.Age < 0 {
		return Pet{}, ErrInvalidInput
	}

	location := sanitize.Text(in.Location)
	if location == "" {
		location = "Unknown"
	}

	return Pet{
		ID:           ids.New(),
		CreatedBy:    ownerID,
		Name:         name,
		PetType:      pt,
		Breed:        sanitize.Text(in.Breed),
		Color:        sanitize.Text(in.Color),
		Gender:       sanitize.Text(in.Gender),
		Size:         size,
		Age:          in.Age,
		Description:  sanitize.Text(in.Description),
		Location:     location,
		Images:       sanitize.Strings(in.Images),
		Status:       StatusAvailable,
		IsApproved:   approved,
		IsVaccinated: in.IsVaccinated,
		IsNeutered:   in.IsNeutered,
		SpecialNotes: sanitize.Text(in.SpecialNotes),
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

// Create publica un listado directo (aprobado por defecto).
func (s *Service) Create(ctx context.Context, ownerID string, in CreateInput) (Pet, error) {
	p, err := Build(ownerID, in, true, s.now())
	if err != nil {
		return Pet{}, err
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return Pet{}, err
	}
	return p, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Pet, error) {
	p, err := s.repo.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return Pet{}, ErrNotFound
		}
		return Pet{}, err
	}
	return p, nil
}

func (s *Service) List(ctx context.Context, f ListFilter) ([]Pet, error) {
	return s.repo.List(ctx, f)
}

func (s *Service) ListByOwner(ctx context.Context, ownerID string) ([]Pet, error) {
	if strings.TrimSpace(ownerID) == "" {
		return []Pet{}, nil
	}
	return s.repo.List(ctx, ListFilter{OwnerID: ownerID})
}

// UpdateInput usa punteros para PATCH real: nil = no tocar.
// status e is_approved no se editan aquí (moderación/adopción).
type UpdateInput struct {
	Name         *string
	PetType      *string
	Breed        *string
	Color        *string
	Gender       *string
	Size         *string
	Age          *int
	Description  *string
	Location     *string
	Images       []string
	IsVaccinated *bool
	IsNeutered   *bool
	SpecialNotes *string
}

// Update: solo el dueño puede editar; admin no tiene override.
func (s *Service) Update(ctx context.Context, actor access.Actor, petID string, in UpdateInput) (Pet, error) {
	p, err := s.GetByID(ctx, petID)
	if err != nil {
		return Pet{}, err
	}
	if !access.CanPerform(actor, access.OpEditPet, access.Target{OwnerID: p.CreatedBy}) {
		return Pet{}, ErrForbidden
	}

	if in.Name != nil {
		name := sanitize.Text(*in.Name)
		if name == "" {
			return Pet{}, ErrInvalidInput
		}
		p.Name = name
	}
	if in.PetType != nil {
		pt := PetType(strings.ToLower(strings.TrimSpace(*in.PetType)))
		if !pt.Valid() {
			return Pet{}, ErrInvalidInput
		}
		p.PetType = pt
	}
	if in.Size != nil {
		size := Size(strings.ToLower(strings.TrimSpace(*in.Size)))
		if size != "" && !size.Valid() {
			return Pet{}, ErrInvalidInput
		}
		p.Size = size
	}
	if in.Age != nil {
		if *in.Age < 0 {
			return Pet{}, ErrInvalidInput
		}
		p.Age = *in.Age
	}
	if in.Breed != nil {
		p.Breed = sanitize.Text(*in.Breed)
	}
	if in.Color != nil {
		p.Color = sanitize.Text(*in.Color)
	}
	if in.Gender != nil {
		p.Gender = sanitize.Text(*in.Gender)
	}
	if in.Description != nil {
		p.Description = sanitize.Text(*in.Description)
	}
	if in.Location != nil {
		p.Location = sanitize.Text(*in.Location)
	}
	if in.Images != nil {
		p.Images = sanitize.Strings(in.Images)
	}
	if in.IsVaccinated != nil {
		p.IsVaccinated = *in.IsVaccinated
	}
	if in.IsNeutered != nil {
		p.IsNeutered = *in.IsNeutered
	}
	if in.SpecialNotes != nil {
		p.SpecialNotes = sanitize.Text(*in.SpecialNotes)
	}

	p.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, p); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return Pet{}, ErrNotFound
		}
		return Pet{}, err
	}
	return p, nil
}

func (s *Service) Delete(ctx context.Context, actor access.Actor, petID string) error {
	p, err := s.GetByID(ctx, petID)
	if err != nil {
		return err
	}
	if !access.CanPerform(actor, access.OpDeletePet, access.Target{OwnerID: p.CreatedBy}) {
		return ErrForbidden
	}
	if err := s.repo.Delete(ctx, p.ID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

// VisibleTo: los no aprobados solo los ven el dueño y los admins.
func VisibleTo(p Pet, actor access.Actor, authenticated bool) bool {
	if p.IsApproved {
		return true
	}
	if !authenticated {
		return false
	}
	return actor.IsAdmin() || p.CreatedBy == actor.UserID
}
