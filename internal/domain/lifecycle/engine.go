package lifecycle

import (
	"context"
	"errors"
	"time"

	"petrescue/internal/domain/adoptions"
	"petrescue/internal/domain/notifications"
	"petrescue/internal/domain/pets"
	"petrescue/internal/domain/reports"
	"petrescue/internal/domain/reviews"
	"petrescue/internal/domain/users"
	"petrescue/internal/platform/logger"
	"petrescue/internal/platform/metrics"
	"petrescue/internal/ports/capabilities"
	"petrescue/internal/ports/store"
)

// Notifier es el dispatcher best-effort: no devuelve error.
type Notifier interface {
	Notify(ctx context.Context, to notifications.Recipient, msg notifications.Message) notifications.Result
	Broadcast(ctx context.Context, to []notifications.Recipient, msg notifications.Message) []notifications.Result
}

type Deps struct {
	Pets      pets.Repository
	Users     users.Repository
	Reports   reports.Repository
	Adoptions adoptions.Repository
	Reviews   reviews.Repository

	Notifier Notifier
	Admins   capabilities.AdminDirectory

	Logger  logger.Logger
	Metrics metrics.TransitionRecorder
}

// Engine orquesta las transiciones: valida, muta, notifica y devuelve
// la entidad actualizada. No hay transacción multi-documento: cada
// escritura es atómica por separado.
type Engine struct {
	pets      pets.Repository
	users     users.Repository
	reports   reports.Repository
	adoptions adoptions.Repository
	reviews   reviews.Repository

	notifier Notifier
	admins   capabilities.AdminDirectory

	log     logger.Logger
	metrics metrics.TransitionRecorder
	now     func() time.Time
}

func NewEngine(d Deps) *Engine {
	return &Engine{
		pets:      d.Pets,
		users:     d.Users,
		reports:   d.Reports,
		adoptions: d.Adoptions,
		reviews:   d.Reviews,
		notifier:  d.Notifier,
		admins:    d.Admins,
		log:       logger.OrNop(d.Logger),
		metrics:   d.Metrics,
		now:       time.Now,
	}
}

// observe registra métrica y log de cada transición. Se usa con defer.
func (e *Engine) observe(op string, err *error) {
	result := outcome(*err)
	if e.metrics != nil {
		e.metrics.RecordTransition(op, result)
	}

	fields := map[string]any{"op": op, "outcome": result}
	if result == "error" {
		fields["err"] = *err
		e.log.Error("transition failed", fields)
		return
	}
	e.log.Debug("transition", fields)
}

// recipient arma el destinatario copiando el rol actual del usuario.
// Si el usuario no se puede leer se notifica igual con rol por defecto.
func (e *Engine) recipient(ctx context.Context, userID string) notifications.Recipient {
	u, err := e.users.GetByID(ctx, userID)
	if err != nil {
		return notifications.Recipient{UserID: userID}
	}
	return notifications.Recipient{UserID: u.ID, Role: u.Role}
}

func (e *Engine) notify(ctx context.Context, userID string, msg notifications.Message) {
	e.send(ctx, e.recipient(ctx, userID), msg)
}

func (e *Engine) send(ctx context.Context, to notifications.Recipient, msg notifications.Message) {
	if e.notifier == nil {
		return
	}
	e.notifier.Notify(ctx, to, msg)
}

// broadcastAdmins notifica una vez a cada miembro del set de admins.
// Un fallo al resolver el set solo se loguea.
func (e *Engine) broadcastAdmins(ctx context.Context, msg notifications.Message) {
	if e.notifier == nil || e.admins == nil {
		return
	}

	admins, err := e.admins.ListAdmins(ctx)
	if err != nil {
		e.log.Warn("admin directory unavailable", map[string]any{"err": err, "title": msg.Title})
		return
	}

	to := make([]notifications.Recipient, 0, len(admins))
	for _, a := range admins {
		to = append(to, notifications.Recipient{UserID: a.UserID, Role: a.Role})
	}
	e.notifier.Broadcast(ctx, to, msg)
}

// notFound traduce store.ErrNotFound al error del engine.
func notFound(err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return ErrNotFound
	}
	return err
}
