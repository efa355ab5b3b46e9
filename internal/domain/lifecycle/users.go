package lifecycle

import (
	"context"
	"strings"

	"petrescue/internal/domain/access"
	"petrescue/internal/domain/notifications"
	"petrescue/internal/domain/users"
)

// SetUserActive habilita o deshabilita una cuenta. Solo admin.
func (e *Engine) SetUserActive(ctx context.Context, actor access.Actor, userID string, active bool) (_ users.User, err error) {
	defer e.observe("set_user_active", &err)

	if !access.CanPerform(actor, access.OpSetUserActive, access.Target{}) {
		return users.User{}, ErrForbidden
	}

	u, err := e.users.GetByID(ctx, strings.TrimSpace(userID))
	if err != nil {
		return users.User{}, notFound(err)
	}

	u.IsActive = active
	u.UpdatedAt = e.now()
	if err := e.users.Update(ctx, u); err != nil {
		return users.User{}, notFound(err)
	}

	state := "disabled"
	if active {
		state = "enabled"
	}
	e.send(ctx, notifications.Recipient{UserID: u.ID, Role: u.Role}, notifications.Message{
		Title:     "Account status changed",
		Body:      "Your account has been " + state + " by an admin.",
		Type:      notifications.TypeSystem,
		RelatedID: u.ID,
	})

	return u, nil
}
