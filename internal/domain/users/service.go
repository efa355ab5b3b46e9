package users

import (
	"context"
	"errors"
	"net/mail"
	"strings"
	"time"

	"petrescue/internal/domain/access"
	"petrescue/internal/platform/ids"
	"petrescue/internal/platform/sanitize"
	"petrescue/internal/ports/store"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrNotFound           = errors.New("user not found")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInactive           = errors.New("user is inactive")
)

const minPasswordLen = 8

type Service struct {
	repo     Repository
	now      func() time.Time
	hashCost int
}

func NewService(repo Repository) *Service {
	return &Service{
		repo:     repo,
		now:      time.Now,
		hashCost: bcrypt.DefaultCost,
	}
}

type RegisterInput struct {
	Email    string
	Password string
	Name     string
	Phone    string
}

func (s *Service) Register(ctx context.Context, in RegisterInput) (User, error) {
	return s.create(ctx, in, access.RoleUser)
}

func (s *Service) create(ctx context.Context, in RegisterInput, role string) (User, error) {
	email := normalizeEmail(in.Email)
	if email == "" || len(in.Password) < minPasswordLen {
		return User{}, ErrInvalidInput
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return User{}, ErrInvalidInput
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.hashCost)
	if err != nil {
		return User{}, err
	}

	now := s.now()
	u := User{
		ID:                        ids.New(),
		Email:                     email,
		Name:                      sanitize.Text(in.Name),
		Phone:                     strings.TrimSpace(in.Phone),
		PasswordHash:              string(hash),
		Role:                      role,
		IsActive:                  true,
		ThemePreference:           ThemeSystem,
		EmailNotificationsEnabled: true,
		CreatedAt:                 now,
		UpdatedAt:                 now,
	}

	if err := s.repo.Create(ctx, u); err != nil {
		if errors.Is(err, store.ErrConflict) {
			return User{}, ErrEmailTaken
		}
		return User{}, err
	}
	return u, nil
}

// Authenticate valida email/password. Un usuario desactivado no puede loguear.
func (s *Service) Authenticate(ctx context.Context, email, password string) (User, error) {
	u, err := s.repo.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return User{}, ErrInvalidCredentials
		}
		return User{}, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return User{}, ErrInvalidCredentials
	}
	if !u.IsActive {
		return User{}, ErrInactive
	}
	return u, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (User, error) {
	u, err := s.repo.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return User{}, ErrNotFound
		}
		return User{}, err
	}
	return u, nil
}

func (s *Service) List(ctx context.Context, f ListFilter) ([]User, error) {
	return s.repo.List(ctx, f)
}

type ProfileInput struct {
	// nil = no tocar
	Name    *string
	Phone   *string
	Address *string
}

func (s *Service) UpdateProfile(ctx context.Context, id string, in ProfileInput) (User, error) {
	u, err := s.GetByID(ctx, id)
	if err != nil {
		return User{}, err
	}

	if in.Name != nil {
		u.Name = sanitize.Text(*in.Name)
	}
	if in.Phone != nil {
		u.Phone = strings.TrimSpace(*in.Phone)
	}
	if in.Address != nil {
		u.Address = sanitize.Text(*in.Address)
	}
	u.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, u); err != nil {
		return User{}, err
	}
	return u, nil
}

type PreferencesInput struct {
	Theme              *string
	EmailNotifications *bool
}

func (s *Service) UpdatePreferences(ctx context.Context, id string, in PreferencesInput) (User, error) {
	u, err := s.GetByID(ctx, id)
	if err != nil {
		return User{}, err
	}

	if in.Theme != nil {
		t := Theme(strings.ToLower(strings.TrimSpace(*in.Theme)))
		if !t.Valid() {
			return User{}, ErrInvalidInput
		}
		u.ThemePreference = t
	}
	if in.EmailNotifications != nil {
		u.EmailNotificationsEnabled = *in.EmailNotifications
	}
	u.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, u); err != nil {
		return User{}, err
	}
	return u, nil
}

// EnsureAdmin crea el admin inicial o promueve/reactiva uno existente con ese email.
// Devuelve created=true solo si lo dio de alta.
func (s *Service) EnsureAdmin(ctx context.Context, email, password, name string) (User, bool, error) {
	existing, err := s.repo.GetByEmail(ctx, normalizeEmail(email))
	switch {
	case err == nil:
		if existing.Role == access.RoleAdmin && existing.IsActive {
			return existing, false, nil
		}
		existing.Role = access.RoleAdmin
		existing.IsActive = true
		existing.UpdatedAt = s.now()
		if err := s.repo.Update(ctx, existing); err != nil {
			return User{}, false, err
		}
		return existing, false, nil
	case errors.Is(err, store.ErrNotFound):
		u, err := s.create(ctx, RegisterInput{Email: email, Password: password, Name: name}, access.RoleAdmin)
		if err != nil {
			return User{}, false, err
		}
		return u, true, nil
	default:
		return User{}, false, err
	}
}

// ListAdmins resuelve el set de admins activos (capabilities.AdminDirectory).
func (s *Service) ListAdmins(ctx context.Context) ([]access.Actor, error) {
	active := true
	admins, err := s.repo.List(ctx, ListFilter{Role: access.RoleAdmin, Active: &active})
	if err != nil {
		return nil, err
	}

	out := make([]access.Actor, 0, len(admins))
	for _, u := range admins {
		out = append(out, ActorOf(u))
	}
	return out, nil
}

// ResolveActor carga el usuario para construir el actor del request.
func (s *Service) ResolveActor(ctx context.Context, userID string) (access.Actor, error) {
	u, err := s.GetByID(ctx, userID)
	if err != nil {
		return access.Actor{}, err
	}
	return ActorOf(u), nil
}

func ActorOf(u User) access.Actor {
	return access.Actor{UserID: u.ID, Role: u.Role, Active: u.IsActive}
}

func normalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
