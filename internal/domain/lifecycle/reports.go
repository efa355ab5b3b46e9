package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"petrescue/internal/domain/access"
	"petrescue/internal/domain/notifications"
	"petrescue/internal/domain/reports"
)

// SubmitReport crea un reporte pending y avisa a todos los admins.
func (e *Engine) SubmitReport(ctx context.Context, actor access.Actor, in reports.CreateInput) (_ reports.Report, err error) {
	defer e.observe("submit_report", &err)

	if !access.CanPerform(actor, access.OpCreateReport, access.Target{}) {
		return reports.Report{}, ErrForbidden
	}

	r, err := reports.Build(actor.UserID, in, e.now())
	if err != nil {
		if errors.Is(err, reports.ErrInvalidInput) {
			return reports.Report{}, ErrInvalidInput
		}
		return reports.Report{}, err
	}

	if err := e.reports.Create(ctx, r); err != nil {
		return reports.Report{}, err
	}

	e.broadcastAdmins(ctx, notifications.Message{
		Title:     "New pet report submitted",
		Body:      fmt.Sprintf("Report for '%s' requires review.", r.PetName),
		Type:      notifications.TypeReport,
		RelatedID: r.ID,
	})

	return r, nil
}

// UpdateReportStatus es el camino de moderación: solo admin, status validado.
// Un status inválido no modifica el reporte.
func (e *Engine) UpdateReportStatus(ctx context.Context, actor access.Actor, reportID, status string) (_ reports.Report, err error) {
	defer e.observe("update_report_status", &err)

	if !access.CanPerform(actor, access.OpUpdateReportStatus, access.Target{}) {
		return reports.Report{}, ErrForbidden
	}

	r, err := e.reports.GetByID(ctx, strings.TrimSpace(reportID))
	if err != nil {
		return reports.Report{}, notFound(err)
	}

	if !reports.ValidStatus(status) {
		return reports.Report{}, ErrInvalidStatus
	}

	r.Status = status
	r.UpdatedAt = e.now()
	if err := e.reports.Update(ctx, r); err != nil {
		return reports.Report{}, notFound(err)
	}

	e.notifyReportStatus(ctx, r)
	return r, nil
}

// EditReport: el autor o un admin. Si un admin cambia el status,
// se notifica al autor igual que en UpdateReportStatus.
func (e *Engine) EditReport(ctx context.Context, actor access.Actor, reportID string, in reports.EditInput) (_ reports.Report, err error) {
	defer e.observe("edit_report", &err)

	r, err := e.reports.GetByID(ctx, strings.TrimSpace(reportID))
	if err != nil {
		return reports.Report{}, notFound(err)
	}

	if !access.CanPerform(actor, access.OpEditReport, access.Target{OwnerID: r.CreatedBy}) {
		return reports.Report{}, ErrForbidden
	}

	statusChanged := false
	if in.Status != nil {
		s := strings.TrimSpace(*in.Status)
		if !reports.ValidStatus(s) {
			return reports.Report{}, ErrInvalidStatus
		}
		statusChanged = true
		in.Status = &s
	}

	updated, err := reports.ApplyEdit(r, in)
	if err != nil {
		if errors.Is(err, reports.ErrInvalidInput) {
			return reports.Report{}, ErrInvalidInput
		}
		return reports.Report{}, err
	}
	if statusChanged {
		updated.Status = *in.Status
	}
	updated.UpdatedAt = e.now()

	if err := e.reports.Update(ctx, updated); err != nil {
		return reports.Report{}, notFound(err)
	}

	if statusChanged && actor.IsAdmin() {
		e.notifyReportStatus(ctx, updated)
	}
	return updated, nil
}

func (e *Engine) notifyReportStatus(ctx context.Context, r reports.Report) {
	e.notify(ctx, r.CreatedBy, notifications.Message{
		Title:     "Report status updated",
		Body:      fmt.Sprintf("Your report '%s' is now %s.", r.PetName, r.Status),
		Type:      notifications.TypeReport,
		RelatedID: r.ID,
	})
}
