package notifications

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"petrescue/internal/middleware"
	"petrescue/internal/platform/httpx"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Get("/notifications", listHandler(svc))
	r.Get("/notifications/unread-count", unreadCountHandler(svc))
	r.Put("/notifications/read-all", markAllReadHandler(svc))
	r.Put("/notifications/{notificationID}/read", markReadHandler(svc))
}

type response struct {
	ID              string    `json:"id"`
	RecipientID     string    `json:"recipient_id"`
	RecipientRole   string    `json:"recipient_role"`
	Title           string    `json:"title"`
	Message         string    `json:"message"`
	Type            Type      `json:"type"`
	RelatedEntityID string    `json:"related_entity_id"`
	IsRead          bool      `json:"is_read"`
	CreatedAt       time.Time `json:"created_at"`
}

// listHandler godoc
// @Summary Mis notificaciones
// @Description Más recientes primero.
// @Tags notifications
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param unread query bool false "Solo no leídas"
// @Success 200 {array} response
// @Failure 401 {string} string "unauthorized"
// @Router /notifications [get]
func listHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := middleware.GetActor(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		unread := false
		if v := r.URL.Query().Get("unread"); v != "" {
			b, err := strconv.ParseBool(v)
			if err != nil {
				http.Error(w, "unread must be a boolean", http.StatusBadRequest)
				return
			}
			unread = b
		}

		items, err := svc.List(r.Context(), actor.UserID, unread)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]response, 0, len(items))
		for _, n := range items {
			out = append(out, toResponse(n))
		}
		httpx.WriteJSON(w, http.StatusOK, out)
	}
}

func unreadCountHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := middleware.GetActor(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		n, err := svc.UnreadCount(r.Context(), actor.UserID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, map[string]int{"unread": n})
	}
}

func markReadHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := middleware.GetActor(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		n, err := svc.MarkRead(r.Context(), actor.UserID, chi.URLParam(r, "notificationID"))
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				http.Error(w, "notification not found", http.StatusNotFound)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, toResponse(n))
	}
}

func markAllReadHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := middleware.GetActor(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		n, err := svc.MarkAllRead(r.Context(), actor.UserID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, map[string]int64{"marked": n})
	}
}

func toResponse(n Notification) response {
	return response{
		ID:              n.ID,
		RecipientID:     n.RecipientID,
		RecipientRole:   n.RecipientRole,
		Title:           n.Title,
		Message:         n.Message,
		Type:            n.Type,
		RelatedEntityID: n.RelatedEntityID,
		IsRead:          n.IsRead,
		CreatedAt:       n.CreatedAt,
	}
}
