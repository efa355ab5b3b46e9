package lifecycle

import (
	"errors"
	"net/http"

	"petrescue/internal/domain/adoptions"
	"petrescue/internal/domain/pets"
	"petrescue/internal/domain/reports"
	"petrescue/internal/domain/reviews"
	"petrescue/internal/domain/users"
	"petrescue/internal/middleware"
	"petrescue/internal/platform/httpx"

	"github.com/go-chi/chi/v5"
)

// RegisterRoutes monta las transiciones de usuarios autenticados.
// writeLimit (opcional) se aplica a las rutas que crean entidades.
func RegisterRoutes(r chi.Router, eng *Engine, writeLimit func(http.Handler) http.Handler) {
	r.Group(func(wr chi.Router) {
		if writeLimit != nil {
			wr.Use(writeLimit)
		}
		wr.Post("/pets/register", submitPetHandler(eng))
		wr.Post("/reports", submitReportHandler(eng))
		wr.Post("/adoptions", createAdoptionHandler(eng))
		wr.Post("/reviews", createReviewHandler(eng))
	})

	r.Patch("/reports/{reportID}", editReportHandler(eng))
	r.Put("/adoptions/{requestID}/status", decideAdoptionHandler(eng))
	r.Get("/pets/{petID}/adoptions", listPetAdoptionsHandler(eng))
}

// RegisterAdminRoutes se monta bajo /admin.
func RegisterAdminRoutes(r chi.Router, eng *Engine) {
	r.Put("/pets/{petID}/status", approvePetHandler(eng))
	r.Put("/users/{userID}/status", setUserActiveHandler(eng))
	r.Put("/reports/{reportID}/status", updateReportStatusHandler(eng))
	r.Post("/pets/{petID}/reconcile", reconcileHandler(eng))
}

type approvePetRequest struct {
	IsApproved *bool   `json:"is_approved"`
	Status     *string `json:"status"`
}

type setUserActiveRequest struct {
	IsActive *bool `json:"is_active" validate:"required"`
}

type statusRequest struct {
	Status string `json:"status" validate:"required"`
}

type createAdoptionRequest struct {
	PetID   string `json:"pet_id" validate:"required"`
	Message string `json:"message" validate:"max=2000"`
}

type createReviewRequest struct {
	PetID   string `json:"pet_id" validate:"required"`
	Rating  int    `json:"rating"`
	Comment string `json:"comment" validate:"max=2000"`
}

// approvePetHandler godoc
// @Summary Aprobar o desaprobar mascota
// @Description Solo admin. `status` se aplica sin validar. Notifica al dueño si cambia is_approved.
// @Tags admin
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param petID path string true "ID de la mascota"
// @Param payload body approvePetRequest true "is_approved y/o status"
// @Success 200 {object} pets.Response
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "not found"
// @Router /admin/pets/{petID}/status [put]
func approvePetHandler(eng *Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := middleware.GetActor(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req approvePetRequest
		if err := httpx.DecodeJSON(r, &req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		p, err := eng.ApprovePet(r.Context(), actor, chi.URLParam(r, "petID"), PetApproval{
			IsApproved: req.IsApproved,
			Status:     req.Status,
		})
		if err != nil {
			writeError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, pets.ToResponse(p))
	}
}

func setUserActiveHandler(eng *Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := middleware.GetActor(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req setUserActiveRequest
		if err := httpx.DecodeJSON(r, &req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		u, err := eng.SetUserActive(r.Context(), actor, chi.URLParam(r, "userID"), *req.IsActive)
		if err != nil {
			writeError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, users.ToResponse(u))
	}
}

// updateReportStatusHandler godoc
// @Summary Cambiar estado de un reporte
// @Description Solo admin. Estados válidos: pending, approved, rejected, found, adopted.
// @Tags admin
// @Accept json
// @Produce json
// @Param reportID path string true "ID del reporte"
// @Param payload body statusRequest true "Nuevo estado"
// @Success 200 {object} reports.Response
// @Failure 400 {string} string "invalid status"
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "not found"
// @Router /admin/reports/{reportID}/status [put]
func updateReportStatusHandler(eng *Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := middleware.GetActor(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req statusRequest
		if err := httpx.DecodeJSON(r, &req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		rep, err := eng.UpdateReportStatus(r.Context(), actor, chi.URLParam(r, "reportID"), req.Status)
		if err != nil {
			writeError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, reports.ToResponse(rep))
	}
}

func reconcileHandler(eng *Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := middleware.GetActor(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		res, err := eng.ReconcileAdoptions(r.Context(), actor, chi.URLParam(r, "petID"))
		if err != nil {
			writeError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, res)
	}
}

// submitPetHandler godoc
// @Summary Registrar mascota para moderación
// @Description Crea la mascota con is_approved=false y status available. Notifica al dueño y a los admins.
// @Tags pets
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param payload body pets.CreateRequest true "Datos de la mascota"
// @Success 201 {object} pets.Response
// @Failure 400 {string} string "invalid input"
// @Failure 401 {string} string "unauthorized"
// @Router /pets/register [post]
func submitPetHandler(eng *Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := middleware.GetActor(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req pets.CreateRequest
		if err := httpx.DecodeJSON(r, &req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		p, err := eng.SubmitPet(r.Context(), actor, req.Input())
		if err != nil {
			writeError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusCreated, pets.ToResponse(p))
	}
}

func submitReportHandler(eng *Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := middleware.GetActor(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req reports.CreateRequest
		if err := httpx.DecodeJSON(r, &req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		rep, err := eng.SubmitReport(r.Context(), actor, req.Input())
		if err != nil {
			writeError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusCreated, reports.ToResponse(rep))
	}
}

func editReportHandler(eng *Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := middleware.GetActor(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req reports.EditRequest
		if err := httpx.DecodeJSON(r, &req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		rep, err := eng.EditReport(r.Context(), actor, chi.URLParam(r, "reportID"), req.Input())
		if err != nil {
			writeError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, reports.ToResponse(rep))
	}
}

// createAdoptionHandler godoc
// @Summary Solicitar adopción
// @Description Falla si la mascota es propia (400) o si ya hay una solicitud pendiente del mismo usuario (409).
// @Tags adoptions
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param payload body createAdoptionRequest true "Mascota y mensaje"
// @Success 201 {object} adoptions.Response
// @Failure 400 {string} string "you cannot adopt your own pet"
// @Failure 404 {string} string "not found"
// @Failure 409 {string} string "a pending adoption request already exists for this pet"
// @Router /adoptions [post]
func createAdoptionHandler(eng *Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := middleware.GetActor(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req createAdoptionRequest
		if err := httpx.DecodeJSON(r, &req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		a, err := eng.CreateAdoptionRequest(r.Context(), actor, req.PetID, req.Message)
		if err != nil {
			writeError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusCreated, adoptions.ToResponse(a))
	}
}

// decideAdoptionHandler godoc
// @Summary Aprobar o rechazar solicitud de adopción
// @Description Dueño de la mascota o admin. Al aprobar, la mascota pasa a adopted y el resto de las pendientes se rechazan.
// @Tags adoptions
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param requestID path string true "ID de la solicitud"
// @Param payload body statusRequest true "approved | rejected"
// @Success 200 {object} adoptions.Response
// @Failure 400 {string} string "invalid status"
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "not found"
// @Failure 409 {string} string "adoption request already decided"
// @Router /adoptions/{requestID}/status [put]
func decideAdoptionHandler(eng *Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := middleware.GetActor(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req statusRequest
		if err := httpx.DecodeJSON(r, &req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		a, err := eng.DecideAdoptionRequest(r.Context(), actor, chi.URLParam(r, "requestID"), req.Status)
		if err != nil {
			writeError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, adoptions.ToResponse(a))
	}
}

func listPetAdoptionsHandler(eng *Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := middleware.GetActor(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		items, err := eng.ListPetAdoptions(r.Context(), actor, chi.URLParam(r, "petID"))
		if err != nil {
			writeError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, adoptions.ToResponses(items))
	}
}

func createReviewHandler(eng *Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := middleware.GetActor(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req createReviewRequest
		if err := httpx.DecodeJSON(r, &req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		rv, err := eng.CreateReview(r.Context(), actor, req.PetID, req.Rating, req.Comment)
		if err != nil {
			writeError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusCreated, reviews.ToResponse(rv))
	}
}

func httpStatus(err error) int {
	switch {
	case errors.Is(err, ErrInvalidStatus),
		errors.Is(err, ErrInvalidRating),
		errors.Is(err, ErrInvalidInput),
		errors.Is(err, ErrSelfAdoption):
		return http.StatusBadRequest
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrDuplicateRequest),
		errors.Is(err, ErrDuplicateReview),
		errors.Is(err, ErrAlreadyDecided):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, err error) {
	status := httpStatus(err)
	if status == http.StatusInternalServerError {
		http.Error(w, "internal error", status)
		return
	}
	http.Error(w, err.Error(), status)
}
