package admin

import (
	"net/http"

	"petrescue/internal/platform/httpx"

	"github.com/go-chi/chi/v5"
)

// RegisterAdminRoutes se monta bajo /admin.
func RegisterAdminRoutes(r chi.Router, svc *Service) {
	r.Get("/dashboard", dashboardHandler(svc))
}

// dashboardHandler godoc
// @Summary Estadísticas del panel de administración
// @Tags admin
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Success 200 {object} Stats
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Router /admin/dashboard [get]
func dashboardHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		st, err := svc.Dashboard(r.Context())
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, st)
	}
}
