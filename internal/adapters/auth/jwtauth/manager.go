package jwtauth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"petrescue/internal/ports/auth"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	kindAccess  = "access"
	kindRefresh = "refresh"
)

var signingMethod = jwt.SigningMethodHS256

type Config struct {
	Secret     string
	Issuer     string
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

type tokenClaims struct {
	Email string `json:"email,omitempty"`
	Role  string `json:"role,omitempty"`
	Kind  string `json:"kind"`
	jwt.RegisteredClaims
}

// Manager emite y verifica tokens HS256. Implementa auth.AuthVerifier
// (solo access tokens) y auth.TokenIssuer.
type Manager struct {
	cfg Config
	now func() time.Time
}

func NewManager(cfg Config) (*Manager, error) {
	if strings.TrimSpace(cfg.Secret) == "" {
		return nil, errors.New("jwt secret is required")
	}
	if cfg.AccessTTL <= 0 || cfg.RefreshTTL <= 0 {
		return nil, errors.New("jwt ttl must be positive")
	}
	return &Manager{cfg: cfg, now: time.Now}, nil
}

func (m *Manager) Issue(_ context.Context, c auth.Claims) (auth.TokenPair, error) {
	now := m.now()

	access, accessExp, err := m.sign(c, kindAccess, now, m.cfg.AccessTTL)
	if err != nil {
		return auth.TokenPair{}, err
	}
	refresh, _, err := m.sign(c, kindRefresh, now, m.cfg.RefreshTTL)
	if err != nil {
		return auth.TokenPair{}, err
	}

	return auth.TokenPair{AccessToken: access, RefreshToken: refresh, ExpiresAt: accessExp}, nil
}

// Verify rechaza refresh tokens: no sirven para autenticar requests.
func (m *Manager) Verify(_ context.Context, token string) (auth.Claims, error) {
	return m.parse(token, kindAccess)
}

func (m *Manager) ParseRefresh(_ context.Context, token string) (auth.Claims, error) {
	return m.parse(token, kindRefresh)
}

func (m *Manager) sign(c auth.Claims, kind string, now time.Time, ttl time.Duration) (string, time.Time, error) {
	exp := now.Add(ttl)
	claims := tokenClaims{
		Email: c.Email,
		Role:  c.Role,
		Kind:  kind,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   c.UserID,
			Issuer:    m.cfg.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
			ID:        uuid.NewString(),
		},
	}

	signed, err := jwt.NewWithClaims(signingMethod, claims).SignedString([]byte(m.cfg.Secret))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("signing jwt: %w", err)
	}
	return signed, exp, nil
}

func (m *Manager) parse(token, kind string) (auth.Claims, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return auth.Claims{}, auth.ErrInvalidToken
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{signingMethod.Alg()}),
		jwt.WithTimeFunc(m.now),
		jwt.WithExpirationRequired(),
	}
	if m.cfg.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(m.cfg.Issuer))
	}

	var claims tokenClaims
	_, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(m.cfg.Secret), nil
	}, opts...)
	if err != nil {
		return auth.Claims{}, fmt.Errorf("%w: %v", auth.ErrInvalidToken, err)
	}
	if claims.Kind != kind || claims.Subject == "" {
		return auth.Claims{}, auth.ErrInvalidToken
	}

	return auth.Claims{UserID: claims.Subject, Email: claims.Email, Role: claims.Role}, nil
}
