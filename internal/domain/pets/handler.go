package pets

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"petrescue/internal/middleware"
	"petrescue/internal/platform/httpx"

	"github.com/go-chi/chi/v5"
)

// writeLimit (opcional) se aplica a POST /pets.
func RegisterRoutes(r chi.Router, svc *Service, writeLimit func(http.Handler) http.Handler) {
	r.Group(func(wr chi.Router) {
		if writeLimit != nil {
			wr.Use(writeLimit)
		}
		wr.Post("/pets", createPetHandler(svc))
	})

	r.Get("/pets", listPetsHandler(svc))
	r.Get("/pets/{petID}", getPetHandler(svc))
	r.Patch("/pets/{petID}", updatePetHandler(svc))
	r.Delete("/pets/{petID}", deletePetHandler(svc))

	r.Get("/users/{userID}/pets", listUserPetsHandler(svc))
}

// RegisterAdminRoutes se monta bajo /admin.
func RegisterAdminRoutes(r chi.Router, svc *Service) {
	r.Get("/pets", adminListPetsHandler(svc))
}

// CreateRequest lo comparten POST /pets y POST /pets/register.
type CreateRequest struct {
	Name         string   `json:"name" validate:"required,max=100"`
	PetType      string   `json:"pet_type" validate:"omitempty,oneof=dog cat other"`
	Breed        string   `json:"breed" validate:"max=100"`
	Color        string   `json:"color" validate:"max=50"`
	Gender       string   `json:"gender" validate:"max=10"`
	Size         string   `json:"size" validate:"omitempty,oneof=small medium large"`
	Age          int      `json:"age" validate:"min=0"`
	Description  string   `json:"description"`
	Location     string   `json:"location" validate:"max=255"`
	Images       []string `json:"images" validate:"max=10"`
	IsVaccinated bool     `json:"is_vaccinated"`
	IsNeutered   bool     `json:"is_neutered"`
	SpecialNotes string   `json:"special_notes"`
}

func (c CreateRequest) Input() CreateInput {
	return CreateInput{
		Name:         c.Name,
		PetType:      c.PetType,
		Breed:        c.Breed,
		Color:        c.Color,
		Gender:       c.Gender,
		Size:         c.Size,
		Age:          c.Age,
		Description:  c.Description,
		Location:     c.Location,
		Images:       c.Images,
		IsVaccinated: c.IsVaccinated,
		IsNeutered:   c.IsNeutered,
		SpecialNotes: c.SpecialNotes,
	}
}

type updatePetRequest struct {
	// Punteros para PATCH real: nil = no tocar.
	Name         *string  `json:"name" validate:"omitempty,max=100"`
	PetType      *string  `json:"pet_type"`
	Breed        *string  `json:"breed"`
	Color        *string  `json:"color"`
	Gender       *string  `json:"gender"`
	Size         *string  `json:"size"`
	Age          *int     `json:"age"`
	Description  *string  `json:"description"`
	Location     *string  `json:"location"`
	Images       []string `json:"images" validate:"max=10"`
	IsVaccinated *bool    `json:"is_vaccinated"`
	IsNeutered   *bool    `json:"is_neutered"`
	SpecialNotes *string  `json:"special_notes"`
}

type Response struct {
	ID           string    `json:"id"`
	CreatedBy    string    `json:"created_by"`
	Name         string    `json:"name"`
	PetType      PetType   `json:"pet_type"`
	Breed        string    `json:"breed"`
	Color        string    `json:"color"`
	Gender       string    `json:"gender"`
	Size         Size      `json:"size"`
	Age          int       `json:"age"`
	Description  string    `json:"description"`
	Location     string    `json:"location"`
	Images       []string  `json:"images"`
	Status       string    `json:"status"`
	IsApproved   bool      `json:"is_approved"`
	IsVaccinated bool      `json:"is_vaccinated"`
	IsNeutered   bool      `json:"is_neutered"`
	SpecialNotes string    `json:"special_notes"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// listPetsHandler godoc
// @Summary Listar mascotas publicadas
// @Description Listado público: solo mascotas aprobadas, más recientes primero.
// @Tags pets
// @Produce json
// @Param type query string false "dog, cat, other"
// @Param status query string false "available, adopted, ..."
// @Param location query string false "Texto contenido en la ubicación"
// @Param q query string false "Búsqueda libre en nombre/raza/descripción/ubicación"
// @Success 200 {array} Response
// @Router /pets [get]
func listPetsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		approved := true
		f := filterFromQuery(r)
		f.Approved = &approved

		items, err := svc.List(r.Context(), f)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, ToResponses(items))
	}
}

// createPetHandler godoc
// @Summary Crear listado de mascota
// @Description Publica directamente (is_approved=true). Para el flujo con moderación usar POST /pets/register.
// @Tags pets
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param payload body CreateRequest true "Datos de la mascota"
// @Success 201 {object} Response
// @Failure 400 {string} string "invalid json / validation failed"
// @Failure 401 {string} string "unauthorized"
// @Router /pets [post]
func createPetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := middleware.GetActor(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req CreateRequest
		if err := httpx.DecodeJSON(r, &req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		p, err := svc.Create(r.Context(), actor.UserID, req.Input())
		if err != nil {
			writePetError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusCreated, ToResponse(p))
	}
}

func getPetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := svc.GetByID(r.Context(), chi.URLParam(r, "petID"))
		if err != nil {
			writePetError(w, err)
			return
		}

		actor, ok := middleware.GetActor(r.Context())
		if !VisibleTo(p, actor, ok) {
			http.Error(w, "pet not found", http.StatusNotFound)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, ToResponse(p))
	}
}

// updatePetHandler: solo el dueño (admin no tiene override).
func updatePetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := middleware.GetActor(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req updatePetRequest
		if err := httpx.DecodeJSON(r, &req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		p, err := svc.Update(r.Context(), actor, chi.URLParam(r, "petID"), UpdateInput{
			Name:         req.Name,
			PetType:      req.PetType,
			Breed:        req.Breed,
			Color:        req.Color,
			Gender:       req.Gender,
			Size:         req.Size,
			Age:          req.Age,
			Description:  req.Description,
			Location:     req.Location,
			Images:       req.Images,
			IsVaccinated: req.IsVaccinated,
			IsNeutered:   req.IsNeutered,
			SpecialNotes: req.SpecialNotes,
		})
		if err != nil {
			writePetError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, ToResponse(p))
	}
}

func deletePetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := middleware.GetActor(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		if err := svc.Delete(r.Context(), actor, chi.URLParam(r, "petID")); err != nil {
			writePetError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// listUserPetsHandler: el propio usuario y los admins ven también los no aprobados.
func listUserPetsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := middleware.GetActor(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		userID := chi.URLParam(r, "userID")
		items, err := svc.ListByOwner(r.Context(), userID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]Response, 0, len(items))
		for _, p := range items {
			if VisibleTo(p, actor, true) {
				out = append(out, ToResponse(p))
			}
		}
		httpx.WriteJSON(w, http.StatusOK, out)
	}
}

func adminListPetsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f := filterFromQuery(r)
		if v := r.URL.Query().Get("approved"); v != "" {
			b, err := strconv.ParseBool(v)
			if err != nil {
				http.Error(w, "approved must be a boolean", http.StatusBadRequest)
				return
			}
			f.Approved = &b
		}

		items, err := svc.List(r.Context(), f)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, ToResponses(items))
	}
}

func filterFromQuery(r *http.Request) ListFilter {
	q := r.URL.Query()
	return ListFilter{
		Type:     strings.TrimSpace(q.Get("type")),
		Status:   strings.TrimSpace(q.Get("status")),
		Location: strings.TrimSpace(q.Get("location")),
		Query:    strings.TrimSpace(q.Get("q")),
	}
}

func writePetError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrForbidden):
		http.Error(w, "forbidden", http.StatusForbidden)
	case errors.Is(err, ErrNotFound):
		http.Error(w, "pet not found", http.StatusNotFound)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func ToResponse(p Pet) Response {
	images := p.Images
	if images == nil {
		images = []string{}
	}
	return Response{
		ID:           p.ID,
		CreatedBy:    p.CreatedBy,
		Name:         p.Name,
		PetType:      p.PetType,
		Breed:        p.Breed,
		Color:        p.Color,
		Gender:       p.Gender,
		Size:         p.Size,
		Age:          p.Age,
		Description:  p.Description,
		Location:     p.Location,
		Images:       images,
		Status:       p.Status,
		IsApproved:   p.IsApproved,
		IsVaccinated: p.IsVaccinated,
		IsNeutered:   p.IsNeutered,
		SpecialNotes: p.SpecialNotes,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

func ToResponses(items []Pet) []Response {
	out := make([]Response, 0, len(items))
	for _, p := range items {
		out = append(out, ToResponse(p))
	}
	return out
}
