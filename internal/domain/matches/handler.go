package matches

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"petrescue/internal/domain/pets"
	"petrescue/internal/middleware"
	"petrescue/internal/platform/httpx"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Post("/matches", createHandler(svc))
	r.Get("/matches/mine", listMineHandler(svc))
	r.Get("/matches/suggestions", suggestHandler(svc))
}

func RegisterAdminRoutes(r chi.Router, svc *Service) {
	r.Get("/matches", adminListHandler(svc))
	r.Put("/matches/{requestID}/status", decideHandler(svc))
}

type createRequest struct {
	PetID       string `json:"pet_id" validate:"required"`
	RequestType string `json:"request_type" validate:"required,oneof=found lost"`
}

type decideRequest struct {
	Status       string  `json:"status" validate:"required"`
	AdminComment *string `json:"admin_comment"`
}

type response struct {
	ID           string      `json:"id"`
	PetID        string      `json:"pet_id"`
	RequesterID  string      `json:"requester_id"`
	RequestType  RequestType `json:"request_type"`
	Status       string      `json:"status"`
	AdminComment string      `json:"admin_comment"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}

func createHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := middleware.GetActor(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req createRequest
		if err := httpx.DecodeJSON(r, &req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		m, err := svc.Create(r.Context(), actor, CreateInput{PetID: req.PetID, RequestType: req.RequestType})
		if err != nil {
			writeMatchError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusCreated, toResponse(m))
	}
}

func listMineHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := middleware.GetActor(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		items, err := svc.ListMine(r.Context(), actor)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, toResponses(items))
	}
}

// suggestHandler godoc
// @Summary Sugerencias de mascotas
// @Description Mascotas aprobadas de otros usuarios que coinciden con alguno de los tipos, razas o colores (CSV).
// @Tags matches
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param types query string false "CSV de tipos (ej: dog,cat)"
// @Param breeds query string false "CSV de razas"
// @Param colors query string false "CSV de colores"
// @Param location query string false "Texto contenido en la ubicación"
// @Success 200 {array} pets.Response
// @Failure 401 {string} string "unauthorized"
// @Router /matches/suggestions [get]
func suggestHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := middleware.GetActor(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		q := r.URL.Query()
		items, err := svc.Suggest(r.Context(), actor, SuggestInput{
			Types:    splitCSV(q.Get("types")),
			Breeds:   splitCSV(q.Get("breeds")),
			Colors:   splitCSV(q.Get("colors")),
			Location: q.Get("location"),
		})
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, pets.ToResponses(items))
	}
}

func adminListHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context(), ListFilter{Status: strings.TrimSpace(r.URL.Query().Get("status"))})
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, toResponses(items))
	}
}

func decideHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := middleware.GetActor(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req decideRequest
		if err := httpx.DecodeJSON(r, &req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		m, err := svc.Decide(r.Context(), actor, chi.URLParam(r, "requestID"), DecideInput{
			Status:       req.Status,
			AdminComment: req.AdminComment,
		})
		if err != nil {
			writeMatchError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, toResponse(m))
	}
}

func writeMatchError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput), errors.Is(err, ErrInvalidStatus):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrForbidden):
		http.Error(w, "forbidden", http.StatusForbidden)
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrPetNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func splitCSV(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if v := strings.TrimSpace(p); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func toResponse(m Request) response {
	return response{
		ID:           m.ID,
		PetID:        m.PetID,
		RequesterID:  m.RequesterID,
		RequestType:  m.RequestType,
		Status:       m.Status,
		AdminComment: m.AdminComment,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func toResponses(items []Request) []response {
	out := make([]response, 0, len(items))
	for _, m := range items {
		out = append(out, toResponse(m))
	}
	return out
}
