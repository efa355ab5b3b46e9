package notifications

import (
	"context"
	"fmt"
	"strings"
	"time"

	"petrescue/internal/domain/access"
	"petrescue/internal/platform/ids"
	"petrescue/internal/platform/logger"
	"petrescue/internal/platform/metrics"
)

type Recipient struct {
	UserID string
	Role   string
}

type Message struct {
	Title     string
	Body      string
	Type      Type
	RelatedID string
}

type Outcome string

const (
	OutcomeSkipped   Outcome = "skipped"
	OutcomeDelivered Outcome = "delivered"
	OutcomeFailed    Outcome = "failed"
)

// Result es el único retorno de Notify: no hay canal de error.
// El caller puede inspeccionarlo pero nunca debe fallar por él.
type Result struct {
	Outcome        Outcome
	NotificationID string
}

// Dispatcher persiste notificaciones best-effort.
type Dispatcher struct {
	repo    Repository
	now     func() time.Time
	log     logger.Logger
	metrics metrics.NotificationRecorder
}

func NewDispatcher(repo Repository, log logger.Logger, rec metrics.NotificationRecorder) *Dispatcher {
	return &Dispatcher{
		repo:    repo,
		now:     time.Now,
		log:     logger.OrNop(log),
		metrics: rec,
	}
}

// Notify crea una notificación para el destinatario.
// Sin destinatario, título o mensaje es un no-op (skipped).
// Los fallos del store (incluido un panic) se registran y se devuelven como failed.
func (d *Dispatcher) Notify(ctx context.Context, to Recipient, msg Message) (res Result) {
	kind := msg.Type
	if !kind.Valid() {
		kind = TypeSystem
	}

	defer func() {
		if rec := recover(); rec != nil {
			d.log.Error("notification panic", map[string]any{
				"recipient_id": to.UserID,
				"type":         string(kind),
				"panic":        fmt.Sprint(rec),
			})
			res = Result{Outcome: OutcomeFailed}
		}
		d.record(kind, res.Outcome)
	}()

	userID := strings.TrimSpace(to.UserID)
	title := strings.TrimSpace(msg.Title)
	body := strings.TrimSpace(msg.Body)
	if userID == "" || title == "" || body == "" {
		return Result{Outcome: OutcomeSkipped}
	}

	role := strings.TrimSpace(to.Role)
	if role == "" {
		role = access.RoleUser
	}

	n := Notification{
		ID:              ids.New(),
		RecipientID:     userID,
		RecipientRole:   role,
		Title:           title,
		Message:         body,
		Type:            kind,
		RelatedEntityID: strings.TrimSpace(msg.RelatedID),
		CreatedAt:       d.now(),
	}

	if err := d.repo.Create(ctx, n); err != nil {
		d.log.Warn("notification not persisted", map[string]any{
			"recipient_id": userID,
			"type":         string(kind),
			"err":          err,
		})
		return Result{Outcome: OutcomeFailed}
	}

	return Result{Outcome: OutcomeDelivered, NotificationID: n.ID}
}

// Broadcast llama a Notify una vez por destinatario.
func (d *Dispatcher) Broadcast(ctx context.Context, to []Recipient, msg Message) []Result {
	out := make([]Result, 0, len(to))
	for _, r := range to {
		out = append(out, d.Notify(ctx, r, msg))
	}
	return out
}

func (d *Dispatcher) record(kind Type, outcome Outcome) {
	if d.metrics == nil {
		return
	}
	d.metrics.RecordNotification(string(kind), string(outcome))
}
