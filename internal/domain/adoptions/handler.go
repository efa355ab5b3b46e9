package adoptions

import (
	"net/http"
	"strings"
	"time"

	"petrescue/internal/middleware"
	"petrescue/internal/platform/httpx"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Get("/adoptions/mine", listMineHandler(svc))
}

func RegisterAdminRoutes(r chi.Router, svc *Service) {
	r.Get("/adoptions", adminListHandler(svc))
}

type Response struct {
	ID          string    `json:"id"`
	PetID       string    `json:"pet_id"`
	RequesterID string    `json:"requester_id"`
	Message     string    `json:"message"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// listMineHandler godoc
// @Summary Mis solicitudes de adopción
// @Tags adoptions
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Success 200 {array} Response
// @Failure 401 {string} string "unauthorized"
// @Router /adoptions/mine [get]
func listMineHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := middleware.GetActor(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		items, err := svc.List(r.Context(), ListFilter{RequesterID: actor.UserID})
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, ToResponses(items))
	}
}

func adminListHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		items, err := svc.List(r.Context(), ListFilter{
			PetID:  strings.TrimSpace(q.Get("pet_id")),
			Status: strings.TrimSpace(q.Get("status")),
		})
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, ToResponses(items))
	}
}

func ToResponse(r Request) Response {
	return Response{
		ID:          r.ID,
		PetID:       r.PetID,
		RequesterID: r.RequesterID,
		Message:     r.Message,
		Status:      r.Status,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

func ToResponses(items []Request) []Response {
	out := make([]Response, 0, len(items))
	for _, r := range items {
		out = append(out, ToResponse(r))
	}
	return out
}
