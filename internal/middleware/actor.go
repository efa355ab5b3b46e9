package middleware

import (
	"context"
	"net/http"

	"petrescue/internal/domain/access"
	"petrescue/internal/platform/logger"
)

// ActorResolver carga rol y estado actuales del usuario de los claims.
type ActorResolver interface {
	ResolveActor(ctx context.Context, userID string) (access.Actor, error)
}

// ActorContext corre después de AuthContext. El rol sale del store y no del
// token: un usuario desactivado o degradado pierde acceso en el próximo request.
// Usuarios inexistentes o inactivos quedan sin actor (anónimos).
func ActorContext(resolver ActorResolver, log logger.Logger) func(http.Handler) http.Handler {
	log = logger.OrNop(log)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := GetClaims(r.Context())
			if !ok || claims.UserID == "" {
				next.ServeHTTP(w, r)
				return
			}

			actor, err := resolver.ResolveActor(r.Context(), claims.UserID)
			if err != nil {
				log.Debug("actor not resolved", map[string]any{"user_id": claims.UserID, "err": err})
				next.ServeHTTP(w, r)
				return
			}
			if !actor.Active {
				next.ServeHTTP(w, r)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithActor(r.Context(), actor)))
		})
	}
}

func GetActor(ctx context.Context) (access.Actor, bool) {
	a, ok := ctx.Value(actorKey).(access.Actor)
	return a, ok
}

func WithActor(ctx context.Context, a access.Actor) context.Context {
	return context.WithValue(ctx, actorKey, a)
}

// RequireAdmin protege el grupo /admin: 401 sin actor, 403 si no es admin.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actor, ok := GetActor(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		if !actor.IsAdmin() {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}
