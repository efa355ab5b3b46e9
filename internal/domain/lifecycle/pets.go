package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"petrescue/internal/domain/access"
	"petrescue/internal/domain/notifications"
	"petrescue/internal/domain/pets"
)

// PetApproval: nil = no tocar. Status se aplica sin validar contra un enum.
type PetApproval struct {
	IsApproved *bool
	Status     *string
}

// ApprovePet cambia is_approved y/o status. Solo admin.
// Notifica al dueño únicamente si is_approved cambió de valor.
func (e *Engine) ApprovePet(ctx context.Context, actor access.Actor, petID string, in PetApproval) (_ pets.Pet, err error) {
	defer e.observe("approve_pet", &err)

	if !access.CanPerform(actor, access.OpApprovePet, access.Target{}) {
		return pets.Pet{}, ErrForbidden
	}

	p, err := e.pets.GetByID(ctx, strings.TrimSpace(petID))
	if err != nil {
		return pets.Pet{}, notFound(err)
	}

	before := p.IsApproved
	if in.Status != nil {
		if s := strings.TrimSpace(*in.Status); s != "" {
			p.Status = s
		}
	}
	if in.IsApproved != nil {
		p.IsApproved = *in.IsApproved
	}
	p.UpdatedAt = e.now()

	if err := e.pets.Update(ctx, p); err != nil {
		return pets.Pet{}, notFound(err)
	}

	switch {
	case !before && p.IsApproved:
		e.notify(ctx, p.CreatedBy, notifications.Message{
			Title:     "Pet approved",
			Body:      fmt.Sprintf("Your pet '%s' has been approved and is now visible to adopters.", p.Name),
			Type:      notifications.TypePet,
			RelatedID: p.ID,
		})
	case before && !p.IsApproved:
		e.notify(ctx, p.CreatedBy, notifications.Message{
			Title:     "Pet unapproved",
			Body:      fmt.Sprintf("Your pet '%s' has been unapproved by an admin.", p.Name),
			Type:      notifications.TypePet,
			RelatedID: p.ID,
		})
	}

	return p, nil
}

// SubmitPet es el flujo de registro con moderación: la mascota queda
// available y sin aprobar. Notifica al dueño y a todos los admins.
func (e *Engine) SubmitPet(ctx context.Context, actor access.Actor, in pets.CreateInput) (_ pets.Pet, err error) {
	defer e.observe("submit_pet", &err)

	if !access.CanPerform(actor, access.OpCreatePet, access.Target{}) {
		return pets.Pet{}, ErrForbidden
	}

	p, err := pets.Build(actor.UserID, in, false, e.now())
	if err != nil {
		if errors.Is(err, pets.ErrInvalidInput) {
			return pets.Pet{}, ErrInvalidInput
		}
		return pets.Pet{}, err
	}

	if err := e.pets.Create(ctx, p); err != nil {
		return pets.Pet{}, err
	}

	e.notify(ctx, p.CreatedBy, notifications.Message{
		Title:     "Pet submitted for approval",
		Body:      fmt.Sprintf("Your pet '%s' has been submitted for approval.", p.Name),
		Type:      notifications.TypePet,
		RelatedID: p.ID,
	})
	e.broadcastAdmins(ctx, notifications.Message{
		Title:     "New pet submitted",
		Body:      fmt.Sprintf("New pet '%s' submitted for approval.", p.Name),
		Type:      notifications.TypePet,
		RelatedID: p.ID,
	})

	return p, nil
}
