package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"petrescue/internal/domain/access"
	"petrescue/internal/domain/adoptions"
	"petrescue/internal/domain/notifications"
	"petrescue/internal/domain/pets"
	"petrescue/internal/platform/ids"
	"petrescue/internal/platform/sanitize"
	"petrescue/internal/ports/store"
)

// CreateAdoptionRequest: la unicidad de la pending por (pet, requester)
// la hace cumplir el store al crear.
func (e *Engine) CreateAdoptionRequest(ctx context.Context, actor access.Actor, petID, message string) (_ adoptions.Request, err error) {
	defer e.observe("create_adoption_request", &err)

	if !access.CanPerform(actor, access.OpCreateAdoption, access.Target{}) {
		return adoptions.Request{}, ErrForbidden
	}

	p, err := e.pets.GetByID(ctx, strings.TrimSpace(petID))
	if err != nil {
		return adoptions.Request{}, notFound(err)
	}

	if p.CreatedBy == actor.UserID {
		return adoptions.Request{}, ErrSelfAdoption
	}

	now := e.now()
	req := adoptions.Request{
		ID:          ids.New(),
		PetID:       p.ID,
		RequesterID: actor.UserID,
		Message:     sanitize.Text(message),
		Status:      adoptions.StatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := e.adoptions.Create(ctx, req); err != nil {
		if errors.Is(err, store.ErrConflict) {
			return adoptions.Request{}, ErrDuplicateRequest
		}
		return adoptions.Request{}, err
	}

	requester := actor.UserID
	if u, err := e.users.GetByID(ctx, actor.UserID); err == nil {
		requester = u.DisplayName()
	}
	e.notify(ctx, p.CreatedBy, notifications.Message{
		Title:     "New adoption request",
		Body:      fmt.Sprintf("New adoption request for %s from %s.", p.Name, requester),
		Type:      notifications.TypeAdoption,
		RelatedID: req.ID,
	})

	return req, nil
}

// DecideAdoptionRequest: dueño del pet o admin. Al aprobar, el pet pasa a
// adopted y el resto de las pending del mismo pet se rechazan con un único
// update filtrado (sin notificaciones para esas).
//
// Son escrituras atómicas separadas: si la cascada falla después de aprobar,
// ReconcileAdoptions la vuelve a correr.
func (e *Engine) DecideAdoptionRequest(ctx context.Context, actor access.Actor, requestID, status string) (_ adoptions.Request, err error) {
	defer e.observe("decide_adoption_request", &err)

	req, err := e.adoptions.GetByID(ctx, strings.TrimSpace(requestID))
	if err != nil {
		return adoptions.Request{}, notFound(err)
	}

	p, err := e.pets.GetByID(ctx, req.PetID)
	if err != nil {
		return adoptions.Request{}, notFound(err)
	}

	if !access.CanPerform(actor, access.OpDecideAdoption, access.Target{OwnerID: p.CreatedBy}) {
		return adoptions.Request{}, ErrForbidden
	}

	status = strings.TrimSpace(status)
	if !adoptions.ValidDecision(status) {
		return adoptions.Request{}, ErrInvalidStatus
	}
	if req.Status != adoptions.StatusPending {
		return adoptions.Request{}, ErrAlreadyDecided
	}
	if status == adoptions.StatusApproved {
		if err := e.ensureNotAdopted(ctx, p); err != nil {
			return adoptions.Request{}, err
		}
	}

	now := e.now()
	req.Status = status
	req.UpdatedAt = now
	if err := e.adoptions.Update(ctx, req); err != nil {
		return adoptions.Request{}, notFound(err)
	}

	// La decisión ya está persistida: el solicitante se entera aunque falle la cascada.
	msg := notifications.Message{
		Title:     "Adoption rejected",
		Body:      fmt.Sprintf("Your adoption request for %s has been rejected.", p.Name),
		Type:      notifications.TypeAdoption,
		RelatedID: req.ID,
	}
	if status == adoptions.StatusApproved {
		msg.Title = "Adoption approved"
		msg.Body = fmt.Sprintf("Your adoption request for %s has been approved!", p.Name)
	}
	e.notify(ctx, req.RequesterID, msg)

	if status == adoptions.StatusApproved {
		if _, err := e.completeAdoption(ctx, p, req.ID); err != nil {
			return adoptions.Request{}, err
		}
	}

	return req, nil
}

// ensureNotAdopted impide una segunda aprobación para el mismo pet.
func (e *Engine) ensureNotAdopted(ctx context.Context, p pets.Pet) error {
	if p.Status == pets.StatusAdopted {
		return ErrAlreadyDecided
	}
	approved, err := e.adoptions.List(ctx, adoptions.ListFilter{PetID: p.ID, Status: adoptions.StatusApproved})
	if err != nil {
		return fmt.Errorf("listing approved requests: %w", err)
	}
	if len(approved) > 0 {
		return ErrAlreadyDecided
	}
	return nil
}

// completeAdoption marca el pet como adopted y rechaza las demás pending.
// Es idempotente.
func (e *Engine) completeAdoption(ctx context.Context, p pets.Pet, approvedID string) (int64, error) {
	if p.Status != pets.StatusAdopted {
		p.Status = pets.StatusAdopted
		p.UpdatedAt = e.now()
		if err := e.pets.Update(ctx, p); err != nil {
			return 0, fmt.Errorf("marking pet adopted: %w", err)
		}
	}

	n, err := e.adoptions.RejectPending(ctx, p.ID, approvedID, e.now())
	if err != nil {
		return 0, fmt.Errorf("rejecting pending requests: %w", err)
	}
	return n, nil
}

type ReconcileResult struct {
	PetID             string `json:"pet_id"`
	ApprovedRequestID string `json:"approved_request_id,omitempty"`
	Rejected          int64  `json:"rejected"`
}

// ReconcileAdoptions vuelve a correr la cascada de un pet con una solicitud
// aprobada. Sin solicitud aprobada no hace nada. Solo admin.
func (e *Engine) ReconcileAdoptions(ctx context.Context, actor access.Actor, petID string) (_ ReconcileResult, err error) {
	defer e.observe("reconcile_adoptions", &err)

	if !access.CanPerform(actor, access.OpReconcileAdoptions, access.Target{}) {
		return ReconcileResult{}, ErrForbidden
	}

	p, err := e.pets.GetByID(ctx, strings.TrimSpace(petID))
	if err != nil {
		return ReconcileResult{}, notFound(err)
	}

	approved, err := e.adoptions.List(ctx, adoptions.ListFilter{PetID: p.ID, Status: adoptions.StatusApproved})
	if err != nil {
		return ReconcileResult{}, err
	}
	if len(approved) == 0 {
		return ReconcileResult{PetID: p.ID}, nil
	}

	// Con más de una aprobada (estado heredado) se conserva la más antigua.
	winner := approved[0]
	for _, a := range approved[1:] {
		if a.UpdatedAt.Before(winner.UpdatedAt) {
			winner = a
		}
	}

	n, err := e.completeAdoption(ctx, p, winner.ID)
	if err != nil {
		return ReconcileResult{}, err
	}

	if n > 0 {
		e.log.Info("adoption cascade reconciled", map[string]any{"pet_id": p.ID, "rejected": n})
	}
	return ReconcileResult{PetID: p.ID, ApprovedRequestID: winner.ID, Rejected: n}, nil
}

// ListPetAdoptions: solicitudes de un pet, visibles para su dueño y admins.
func (e *Engine) ListPetAdoptions(ctx context.Context, actor access.Actor, petID string) ([]adoptions.Request, error) {
	p, err := e.pets.GetByID(ctx, strings.TrimSpace(petID))
	if err != nil {
		return nil, notFound(err)
	}
	if !access.CanPerform(actor, access.OpViewPetAdoptions, access.Target{OwnerID: p.CreatedBy}) {
		return nil, ErrForbidden
	}
	return e.adoptions.List(ctx, adoptions.ListFilter{PetID: p.ID})
}
