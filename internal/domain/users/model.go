package users

import "time"

type Theme string

const (
	ThemeLight  Theme = "light"
	ThemeDark   Theme = "dark"
	ThemeSystem Theme = "system"
)

func (t Theme) Valid() bool {
	switch t {
	case ThemeLight, ThemeDark, ThemeSystem:
		return true
	}
	return false
}

// User es la cuenta de la plataforma. El email es único (normalizado a minúsculas).
type User struct {
	ID    string
	Email string
	Name  string
	Phone string

	PasswordHash string

	Role     string // user | admin
	IsActive bool

	Address                   string
	ThemePreference           Theme
	EmailNotificationsEnabled bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// DisplayName es lo que se muestra en notificaciones: nombre o, si falta, email.
func (u User) DisplayName() string {
	if u.Name != "" {
		return u.Name
	}
	return u.Email
}
