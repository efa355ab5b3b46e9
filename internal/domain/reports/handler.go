package reports

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"petrescue/internal/middleware"
	"petrescue/internal/platform/httpx"

	"github.com/go-chi/chi/v5"
)

// RegisterRoutes monta solo lecturas; alta y edición pasan por el engine de lifecycle.
func RegisterRoutes(r chi.Router, svc *Service) {
	r.Get("/reports", listReportsHandler(svc))
	r.Get("/reports/{reportID}", getReportHandler(svc))
	r.Get("/users/{userID}/reports", listUserReportsHandler(svc))
}

func RegisterAdminRoutes(r chi.Router, svc *Service) {
	r.Get("/reports", listReportsHandler(svc))
}

type CreateRequest struct {
	PetName       string   `json:"pet_name" validate:"required,max=100"`
	PetType       string   `json:"pet_type" validate:"omitempty,oneof=dog cat bird rabbit other"`
	Description   string   `json:"description"`
	LocationFound string   `json:"location_found" validate:"max=255"`
	ContactInfo   string   `json:"contact_info" validate:"max=255"`
	Images        []string `json:"images" validate:"max=10"`
}

func (c CreateRequest) Input() CreateInput {
	return CreateInput{
		PetName:       c.PetName,
		PetType:       c.PetType,
		Description:   c.Description,
		LocationFound: c.LocationFound,
		ContactInfo:   c.ContactInfo,
		Images:        c.Images,
	}
}

type EditRequest struct {
	PetName       *string  `json:"pet_name" validate:"omitempty,max=100"`
	PetType       *string  `json:"pet_type"`
	Description   *string  `json:"description"`
	LocationFound *string  `json:"location_found"`
	ContactInfo   *string  `json:"contact_info"`
	Images        []string `json:"images" validate:"max=10"`
	Status        *string  `json:"status"`
}

func (e EditRequest) Input() EditInput {
	return EditInput{
		PetName:       e.PetName,
		PetType:       e.PetType,
		Description:   e.Description,
		LocationFound: e.LocationFound,
		ContactInfo:   e.ContactInfo,
		Images:        e.Images,
		Status:        e.Status,
	}
}

type Response struct {
	ID            string    `json:"id"`
	CreatedBy     string    `json:"created_by"`
	PetName       string    `json:"pet_name"`
	PetType       PetType   `json:"pet_type"`
	Description   string    `json:"description"`
	LocationFound string    `json:"location_found"`
	ContactInfo   string    `json:"contact_info"`
	Images        []string  `json:"images"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// listReportsHandler godoc
// @Summary Listar reportes de mascotas
// @Tags reports
// @Produce json
// @Param status query string false "pending, approved, rejected, found, adopted"
// @Success 200 {array} Response
// @Router /reports [get]
func listReportsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context(), ListFilter{Status: strings.TrimSpace(r.URL.Query().Get("status"))})
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, ToResponses(items))
	}
}

func getReportHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rep, err := svc.GetByID(r.Context(), chi.URLParam(r, "reportID"))
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				http.Error(w, "report not found", http.StatusNotFound)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, ToResponse(rep))
	}
}

func listUserReportsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := middleware.GetActor(r.Context()); !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		items, err := svc.List(r.Context(), ListFilter{CreatedBy: chi.URLParam(r, "userID")})
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, ToResponses(items))
	}
}

func ToResponse(r Report) Response {
	images := r.Images
	if images == nil {
		images = []string{}
	}
	return Response{
		ID:            r.ID,
		CreatedBy:     r.CreatedBy,
		PetName:       r.PetName,
		PetType:       r.PetType,
		Description:   r.Description,
		LocationFound: r.LocationFound,
		ContactInfo:   r.ContactInfo,
		Images:        images,
		Status:        r.Status,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
}

func ToResponses(items []Report) []Response {
	out := make([]Response, 0, len(items))
	for _, r := range items {
		out = append(out, ToResponse(r))
	}
	return out
}
