package users

import (
	"errors"
	"net/http"
	"time"

	"petrescue/internal/middleware"
	"petrescue/internal/platform/httpx"
	"petrescue/internal/ports/auth"

	"github.com/go-chi/chi/v5"
)

// RegisterRoutes monta auth y perfil. tokens puede ser nil (modo dev): login
// responde sin tokens y la identidad se pasa por X-Debug-User-ID.
func RegisterRoutes(r chi.Router, svc *Service, tokens auth.TokenIssuer) {
	r.Post("/auth/signup", signupHandler(svc, tokens))
	r.Post("/auth/login", loginHandler(svc, tokens))
	r.Post("/auth/refresh", refreshHandler(svc, tokens))

	r.Get("/users/me", getMeHandler(svc))
	r.Put("/users/me", updateMeHandler(svc))
	r.Put("/users/preferences", updatePreferencesHandler(svc))
}

// RegisterAdminRoutes se monta bajo /admin (el router ya exige rol admin).
func RegisterAdminRoutes(r chi.Router, svc *Service) {
	r.Get("/users", adminListUsersHandler(svc))
}

type signupRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Name     string `json:"name" validate:"max=255"`
	Phone    string `json:"phone" validate:"max=15"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type updateMeRequest struct {
	Name    *string `json:"name" validate:"omitempty,max=255"`
	Phone   *string `json:"phone" validate:"omitempty,max=15"`
	Address *string `json:"address" validate:"omitempty,max=255"`
}

type preferencesRequest struct {
	ThemePreference           *string `json:"theme_preference"`
	EmailNotificationsEnabled *bool   `json:"email_notifications_enabled"`
}

// Response es la vista pública de un usuario (sin hash de password).
type Response struct {
	ID                        string    `json:"id"`
	Email                     string    `json:"email"`
	Name                      string    `json:"name"`
	Phone                     string    `json:"phone"`
	Role                      string    `json:"role"`
	IsActive                  bool      `json:"is_active"`
	Address                   string    `json:"address"`
	ThemePreference           Theme     `json:"theme_preference"`
	EmailNotificationsEnabled bool      `json:"email_notifications_enabled"`
	CreatedAt                 time.Time `json:"created_at"`
	UpdatedAt                 time.Time `json:"updated_at"`
}

type authResponse struct {
	User   Response        `json:"user"`
	Tokens *auth.TokenPair `json:"tokens,omitempty"`
}

// signupHandler godoc
// @Summary Registrar usuario
// @Description Crea una cuenta con rol `user`. El email es único.
// @Tags auth
// @Accept json
// @Produce json
// @Param payload body signupRequest true "Datos de registro"
// @Success 201 {object} authResponse
// @Failure 400 {string} string "invalid json / validation failed"
// @Failure 409 {string} string "email already registered"
// @Router /auth/signup [post]
func signupHandler(svc *Service, tokens auth.TokenIssuer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req signupRequest
		if err := httpx.DecodeJSON(r, &req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		u, err := svc.Register(r.Context(), RegisterInput{
			Email:    req.Email,
			Password: req.Password,
			Name:     req.Name,
			Phone:    req.Phone,
		})
		if err != nil {
			writeUserError(w, err)
			return
		}

		out, err := withTokens(r, tokens, u)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		httpx.WriteJSON(w, http.StatusCreated, out)
	}
}

// loginHandler godoc
// @Summary Login
// @Description Devuelve access y refresh token. Usuarios desactivados reciben 401.
// @Tags auth
// @Accept json
// @Produce json
// @Param payload body loginRequest true "Credenciales"
// @Success 200 {object} authResponse
// @Failure 401 {string} string "invalid credentials"
// @Router /auth/login [post]
func loginHandler(svc *Service, tokens auth.TokenIssuer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := httpx.DecodeJSON(r, &req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		u, err := svc.Authenticate(r.Context(), req.Email, req.Password)
		if err != nil {
			writeUserError(w, err)
			return
		}

		out, err := withTokens(r, tokens, u)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, out)
	}
}

func refreshHandler(svc *Service, tokens auth.TokenIssuer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if tokens == nil {
			http.Error(w, "token refresh disabled", http.StatusNotFound)
			return
		}

		var req refreshRequest
		if err := httpx.DecodeJSON(r, &req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		claims, err := tokens.ParseRefresh(r.Context(), req.RefreshToken)
		if err != nil {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		// El usuario pudo ser desactivado desde que se emitió el token.
		u, err := svc.GetByID(r.Context(), claims.UserID)
		if err != nil || !u.IsActive {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		out, err := withTokens(r, tokens, u)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, out)
	}
}

// getMeHandler godoc
// @Summary Mi perfil
// @Tags users
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Success 200 {object} Response
// @Failure 401 {string} string "unauthorized"
// @Router /users/me [get]
func getMeHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := middleware.GetActor(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		u, err := svc.GetByID(r.Context(), actor.UserID)
		if err != nil {
			writeUserError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, ToResponse(u))
	}
}

func updateMeHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := middleware.GetActor(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req updateMeRequest
		if err := httpx.DecodeJSON(r, &req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		u, err := svc.UpdateProfile(r.Context(), actor.UserID, ProfileInput{
			Name:    req.Name,
			Phone:   req.Phone,
			Address: req.Address,
		})
		if err != nil {
			writeUserError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, ToResponse(u))
	}
}

func updatePreferencesHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := middleware.GetActor(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req preferencesRequest
		if err := httpx.DecodeJSON(r, &req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		u, err := svc.UpdatePreferences(r.Context(), actor.UserID, PreferencesInput{
			Theme:              req.ThemePreference,
			EmailNotifications: req.EmailNotificationsEnabled,
		})
		if err != nil {
			writeUserError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, ToResponse(u))
	}
}

func adminListUsersHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context(), ListFilter{Role: r.URL.Query().Get("role")})
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]Response, 0, len(items))
		for _, u := range items {
			out = append(out, ToResponse(u))
		}
		httpx.WriteJSON(w, http.StatusOK, out)
	}
}

func withTokens(r *http.Request, tokens auth.TokenIssuer, u User) (authResponse, error) {
	out := authResponse{User: ToResponse(u)}
	if tokens == nil {
		return out, nil
	}

	pair, err := tokens.Issue(r.Context(), auth.Claims{UserID: u.ID, Email: u.Email, Role: u.Role})
	if err != nil {
		return authResponse{}, err
	}
	out.Tokens = &pair
	return out, nil
}

func writeUserError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrInvalidCredentials), errors.Is(err, ErrInactive):
		http.Error(w, err.Error(), http.StatusUnauthorized)
	case errors.Is(err, ErrNotFound):
		http.Error(w, "user not found", http.StatusNotFound)
	case errors.Is(err, ErrEmailTaken):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func ToResponse(u User) Response {
	return Response{
		ID:                        u.ID,
		Email:                     u.Email,
		Name:                      u.Name,
		Phone:                     u.Phone,
		Role:                      u.Role,
		IsActive:                  u.IsActive,
		Address:                   u.Address,
		ThemePreference:           u.ThemePreference,
		EmailNotificationsEnabled: u.EmailNotificationsEnabled,
		CreatedAt:                 u.CreatedAt,
		UpdatedAt:                 u.UpdatedAt,
	}
}
