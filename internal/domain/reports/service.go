package reports

import (
	"context"
	"errors"
	"strings"
	"time"

	"petrescue/internal/platform/ids"
	"petrescue/internal/platform/sanitize"
	"petrescue/internal/ports/store"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("report not found")
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateInput struct {
	PetName       string
	PetType       string
	Description   string
	LocationFound string
	ContactInfo   string
	Images        []string
}

// Build arma un reporte nuevo en estado pending.
func Build(reporterID string, in CreateInput, now time.Time) (Report, error) {
	if strings.TrimSpace(reporterID) == "" {
		return Report{}, ErrInvalidInput
	}

	name := sanitize.Text(in.PetName)
	if name == "" {
		return Report{}, ErrInvalidInput
	}

	pt := PetType(strings.ToLower(strings.TrimSpace(in.PetType)))
	if pt == "" {
		pt = TypeOther
	}
	if !pt.Valid() {
		return Report{}, ErrInvalidInput
	}

	images := sanitize.Strings(in.Images)
	if len(images) > MaxImages {
		return Report{}, ErrInvalidInput
	}

	return Report{
		ID:            ids.New(),
		CreatedBy:     reporterID,
		PetName:       name,
		PetType:       pt,
		Description:   sanitize.Text(in.Description),
		LocationFound: sanitize.Text(in.LocationFound),
		ContactInfo:   sanitize.Text(in.ContactInfo),
		Images:        images,
		Status:        StatusPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}

// EditInput: nil = no tocar.
type EditInput struct {
	PetName       *string
	PetType       *string
	Description   *string
	LocationFound *string
	ContactInfo   *string
	Images        []string
	Status        *string
}

// ApplyEdit valida y aplica los cambios sobre una copia; no persiste.
// Status lo valida y aplica el engine de lifecycle.
func ApplyEdit(r Report, in EditInput) (Report, error) {
	if in.PetName != nil {
		name := sanitize.Text(*in.PetName)
		if name == "" {
			return Report{}, ErrInvalidInput
		}
		r.PetName = name
	}
	if in.PetType != nil {
		pt := PetType(strings.ToLower(strings.TrimSpace(*in.PetType)))
		if !pt.Valid() {
			return Report{}, ErrInvalidInput
		}
		r.PetType = pt
	}
	if in.Description != nil {
		r.Description = sanitize.Text(*in.Description)
	}
	if in.LocationFound != nil {
		r.LocationFound = sanitize.Text(*in.LocationFound)
	}
	if in.ContactInfo != nil {
		r.ContactInfo = sanitize.Text(*in.ContactInfo)
	}
	if in.Images != nil {
		images := sanitize.Strings(in.Images)
		if len(images) > MaxImages {
			return Report{}, ErrInvalidInput
		}
		r.Images = images
	}
	return r, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Report, error) {
	r, err := s.repo.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return Report{}, ErrNotFound
		}
		return Report{}, err
	}
	return r, nil
}

func (s *Service) List(ctx context.Context, f ListFilter) ([]Report, error) {
	return s.repo.List(ctx, f)
}
