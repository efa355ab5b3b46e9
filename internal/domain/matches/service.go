package matches

import (
	"context"
	"errors"
	"strings"
	"time"

	"petrescue/internal/domain/access"
	"petrescue/internal/domain/pets"
	"petrescue/internal/platform/ids"
	"petrescue/internal/platform/sanitize"
	"petrescue/internal/ports/store"
)

var (
	ErrInvalidInput  = errors.New("invalid input")
	ErrInvalidStatus = errors.New("invalid status")
	ErrNotFound      = errors.New("match request not found")
	ErrPetNotFound   = errors.New("pet not found")
	ErrForbidden     = errors.New("forbidden")
)

// PetFinder es lo que matches necesita de pets.
type PetFinder interface {
	GetByID(ctx context.Context, id string) (pets.Pet, error)
	List(ctx context.Context, f pets.ListFilter) ([]pets.Pet, error)
}

type Service struct {
	repo Repository
	pets PetFinder
	now  func() time.Time
}

func NewService(repo Repository, petFinder PetFinder) *Service {
	return &Service{
		repo: repo,
		pets: petFinder,
		now:  time.Now,
	}
}

type CreateInput struct {
	PetID       string
	RequestType string
}

func (s *Service) Create(ctx context.Context, actor access.Actor, in CreateInput) (Request, error) {
	if !access.CanPerform(actor, access.OpCreateMatch, access.Target{}) {
		return Request{}, ErrForbidden
	}

	rt := RequestType(strings.ToLower(strings.TrimSpace(in.RequestType)))
	if !rt.Valid() {
		return Request{}, ErrInvalidInput
	}

	p, err := s.pets.GetByID(ctx, in.PetID)
	if err != nil {
		if errors.Is(err, pets.ErrNotFound) {
			return Request{}, ErrPetNotFound
		}
		return Request{}, err
	}

	now := s.now()
	req := Request{
		ID:          ids.New(),
		PetID:       p.ID,
		RequesterID: actor.UserID,
		RequestType: rt,
		Status:      StatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.Create(ctx, req); err != nil {
		return Request{}, err
	}
	return req, nil
}

func (s *Service) ListMine(ctx context.Context, actor access.Actor) ([]Request, error) {
	return s.repo.List(ctx, ListFilter{RequesterID: actor.UserID})
}

func (s *Service) List(ctx context.Context, f ListFilter) ([]Request, error) {
	return s.repo.List(ctx, f)
}

type DecideInput struct {
	Status       string
	AdminComment *string
}

// Decide: solo admin. Cualquier estado del enum es válido (incluso volver a pending).
func (s *Service) Decide(ctx context.Context, actor access.Actor, id string, in DecideInput) (Request, error) {
	if !access.CanPerform(actor, access.OpDecideMatch, access.Target{}) {
		return Request{}, ErrForbidden
	}

	req, err := s.repo.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return Request{}, ErrNotFound
		}
		return Request{}, err
	}

	status := strings.ToLower(strings.TrimSpace(in.Status))
	if !ValidStatus(status) {
		return Request{}, ErrInvalidStatus
	}

	req.Status = status
	if in.AdminComment != nil {
		req.AdminComment = sanitize.Text(*in.AdminComment)
	}
	req.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, req); err != nil {
		return Request{}, err
	}
	return req, nil
}

type SuggestInput struct {
	Types    []string
	Breeds   []string
	Colors   []string
	Location string
}

// Suggest devuelve mascotas aprobadas que coincidan con cualquiera de las
// preferencias (tipo, raza o color), excluyendo las propias.
// Sin preferencias no sugiere nada.
func (s *Service) Suggest(ctx context.Context, actor access.Actor, in SuggestInput) ([]pets.Pet, error) {
	f := pets.ListFilter{
		ExcludeOwnerID: actor.UserID,
		Location:       strings.TrimSpace(in.Location),
		MatchTypes:     sanitize.Strings(in.Types),
		MatchBreeds:    sanitize.Strings(in.Breeds),
		MatchColors:    sanitize.Strings(in.Colors),
	}
	if len(f.MatchTypes)+len(f.MatchBreeds)+len(f.MatchColors) == 0 {
		return []pets.Pet{}, nil
	}

	approved := true
	f.Approved = &approved
	return s.pets.List(ctx, f)
}
