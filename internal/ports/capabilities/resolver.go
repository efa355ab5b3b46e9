package capabilities

import (
	"context"

	"petrescue/internal/domain/access"
)

// AdminDirectory resuelve el conjunto dinámico de actores con capacidad admin.
// Lo usa el engine para los broadcasts de alta de mascotas y reportes.
type AdminDirectory interface {
	ListAdmins(ctx context.Context) ([]access.Actor, error)
}
