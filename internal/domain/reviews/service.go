package reviews

import "context"

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context, f ListFilter) ([]Review, error) {
	return s.repo.List(ctx, f)
}

// Average devuelve el promedio de rating y la cantidad de reviews de un pet.
func (s *Service) Average(ctx context.Context, petID string) (float64, int, error) {
	items, err := s.repo.List(ctx, ListFilter{PetID: petID})
	if err != nil {
		return 0, 0, err
	}
	if len(items) == 0 {
		return 0, 0, nil
	}

	total := 0
	for _, r := range items {
		total += r.Rating
	}
	return float64(total) / float64(len(items)), len(items), nil
}
