package adoptions

import (
	"context"
	"errors"
	"strings"

	"petrescue/internal/ports/store"
)

var ErrNotFound = errors.New("adoption request not found")

// Service cubre lecturas; las transiciones viven en el engine de lifecycle.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) GetByID(ctx context.Context, id string) (Request, error) {
	r, err := s.repo.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return Request{}, ErrNotFound
		}
		return Request{}, err
	}
	return r, nil
}

func (s *Service) List(ctx context.Context, f ListFilter) ([]Request, error) {
	return s.repo.List(ctx, f)
}
