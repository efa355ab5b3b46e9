package lifecycle

import "errors"

var (
	ErrNotFound         = errors.New("not found")
	ErrForbidden        = errors.New("forbidden")
	ErrInvalidStatus    = errors.New("invalid status")
	ErrInvalidInput     = errors.New("invalid input")
	ErrInvalidRating    = errors.New("rating must be between 1 and 5")
	ErrDuplicateRequest = errors.New("a pending adoption request already exists for this pet")
	ErrDuplicateReview  = errors.New("you have already reviewed this pet")
	ErrSelfAdoption     = errors.New("you cannot adopt your own pet")
	ErrAlreadyDecided   = errors.New("adoption request already decided")
)

// outcome es la etiqueta de métricas para el resultado de una transición.
func outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrForbidden):
		return "forbidden"
	case errors.Is(err, ErrInvalidStatus):
		return "invalid_status"
	case errors.Is(err, ErrInvalidInput):
		return "invalid_input"
	case errors.Is(err, ErrInvalidRating):
		return "invalid_rating"
	case errors.Is(err, ErrDuplicateRequest):
		return "duplicate_request"
	case errors.Is(err, ErrDuplicateReview):
		return "duplicate_review"
	case errors.Is(err, ErrSelfAdoption):
		return "self_adoption"
	case errors.Is(err, ErrAlreadyDecided):
		return "already_decided"
	default:
		return "error"
	}
}
