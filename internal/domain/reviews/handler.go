package reviews

import (
	"net/http"
	"time"

	"petrescue/internal/platform/httpx"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Get("/pets/{petID}/reviews", listByPetHandler(svc))
}

func RegisterAdminRoutes(r chi.Router, svc *Service) {
	r.Get("/reviews", adminListHandler(svc))
}

type Response struct {
	ID        string    `json:"id"`
	PetID     string    `json:"pet_id"`
	UserID    string    `json:"user_id"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}

type petReviewsResponse struct {
	Average float64    `json:"average_rating"`
	Count   int        `json:"count"`
	Items   []Response `json:"items"`
}

// listByPetHandler godoc
// @Summary Reviews de una mascota
// @Description Público. Incluye promedio de rating.
// @Tags reviews
// @Produce json
// @Param petID path string true "ID de la mascota"
// @Success 200 {object} petReviewsResponse
// @Router /pets/{petID}/reviews [get]
func listByPetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		petID := chi.URLParam(r, "petID")

		items, err := svc.List(r.Context(), ListFilter{PetID: petID})
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		avg, n, err := svc.Average(r.Context(), petID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		httpx.WriteJSON(w, http.StatusOK, petReviewsResponse{
			Average: avg,
			Count:   n,
			Items:   ToResponses(items),
		})
	}
}

func adminListHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context(), ListFilter{})
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, ToResponses(items))
	}
}

func ToResponse(r Review) Response {
	return Response{
		ID:        r.ID,
		PetID:     r.PetID,
		UserID:    r.UserID,
		Rating:    r.Rating,
		Comment:   r.Comment,
		CreatedAt: r.CreatedAt,
	}
}

func ToResponses(items []Review) []Response {
	out := make([]Response, 0, len(items))
	for _, r := range items {
		out = append(out, ToResponse(r))
	}
	return out
}
