package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"petrescue/internal/domain/access"
	"petrescue/internal/domain/notifications"
	"petrescue/internal/domain/reviews"
	"petrescue/internal/platform/ids"
	"petrescue/internal/platform/sanitize"
	"petrescue/internal/ports/store"
)

// CreateReview valida en este orden: rating, pet existente, duplicado.
// El duplicado (pet, user) lo detecta el store al crear.
func (e *Engine) CreateReview(ctx context.Context, actor access.Actor, petID string, rating int, comment string) (_ reviews.Review, err error) {
	defer e.observe("create_review", &err)

	if !access.CanPerform(actor, access.OpCreateReview, access.Target{}) {
		return reviews.Review{}, ErrForbidden
	}

	if !reviews.ValidRating(rating) {
		return reviews.Review{}, ErrInvalidRating
	}

	p, err := e.pets.GetByID(ctx, strings.TrimSpace(petID))
	if err != nil {
		return reviews.Review{}, notFound(err)
	}

	rv := reviews.Review{
		ID:        ids.New(),
		PetID:     p.ID,
		UserID:    actor.UserID,
		Rating:    rating,
		Comment:   sanitize.Text(comment),
		CreatedAt: e.now(),
	}
	if err := e.reviews.Create(ctx, rv); err != nil {
		if errors.Is(err, store.ErrConflict) {
			return reviews.Review{}, ErrDuplicateReview
		}
		return reviews.Review{}, err
	}

	e.notify(ctx, p.CreatedBy, notifications.Message{
		Title:     "New review",
		Body:      fmt.Sprintf("Your pet '%s' received a new review (rating %d/5).", p.Name, rating),
		Type:      notifications.TypePet,
		RelatedID: p.ID,
	})

	return rv, nil
}
