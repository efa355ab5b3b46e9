package auth

import (
	"context"
	"errors"
)

var ErrInvalidToken = errors.New("invalid token")

// AuthVerifier verifica un token y devuelve claims o error.
type AuthVerifier interface {
	Verify(ctx context.Context, token string) (Claims, error)
}

// TokenIssuer emite tokens propios (login). ParseRefresh valida un refresh token
// y devuelve sus claims; el caller decide si re-emite (p.ej. usuario activo).
type TokenIssuer interface {
	Issue(ctx context.Context, claims Claims) (TokenPair, error)
	ParseRefresh(ctx context.Context, refreshToken string) (Claims, error)
}
