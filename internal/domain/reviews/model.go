package reviews

import "time"

const (
	MinRating = 1
	MaxRating = 5
)

func ValidRating(n int) bool {
	return n >= MinRating && n <= MaxRating
}

// Review: una por (pet, user); lo garantiza el store.
type Review struct {
	ID      string
	PetID   string
	UserID  string
	Rating  int
	Comment string

	CreatedAt time.Time
}
