package access

import "strings"

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Actor es quien invoca una transición. Se resuelve a partir de los claims
// y del usuario persistido (rol y estado activo).
type Actor struct {
	UserID string
	Role   string
	Active bool
}

func (a Actor) IsAdmin() bool {
	return a.Active && a.Role == RoleAdmin
}

func (a Actor) authenticated() bool {
	return a.Active && strings.TrimSpace(a.UserID) != ""
}

type Operation string

const (
	// Solo admin
	OpApprovePet         Operation = "pet:approve"
	OpSetUserActive      Operation = "user:set_active"
	OpUpdateReportStatus Operation = "report:update_status"
	OpDecideMatch        Operation = "match:decide"
	OpViewAdminData      Operation = "admin:view"
	OpReconcileAdoptions Operation = "adoption:reconcile"

	// Owner o admin
	OpDecideAdoption   Operation = "adoption:decide"
	OpEditReport       Operation = "report:edit"
	OpViewPetAdoptions Operation = "adoption:list_by_pet"

	// Solo owner (sin override de admin)
	OpEditPet   Operation = "pet:edit"
	OpDeletePet Operation = "pet:delete"

	// Cualquier autenticado
	OpCreateAdoption Operation = "adoption:create"
	OpCreateReview   Operation = "review:create"
	OpCreateReport   Operation = "report:create"
	OpCreatePet      Operation = "pet:create"
	OpCreateMatch    Operation = "match:create"
	OpSendMessage    Operation = "chat:send"
)

// Target describe la entidad sobre la que se opera. OwnerID es el dueño
// relevante para la operación (pet.created_by o report.created_by).
type Target struct {
	OwnerID string
}

// CanPerform es una función pura: no consulta stores.
func CanPerform(actor Actor, op Operation, target Target) bool {
	if !actor.authenticated() {
		return false
	}

	isOwner := target.OwnerID != "" && target.OwnerID == actor.UserID

	switch op {
	case OpApprovePet, OpSetUserActive, OpUpdateReportStatus, OpDecideMatch, OpViewAdminData, OpReconcileAdoptions:
		return actor.IsAdmin()
	case OpDecideAdoption, OpEditReport, OpViewPetAdoptions:
		return isOwner || actor.IsAdmin()
	case OpEditPet, OpDeletePet:
		return isOwner
	case OpCreateAdoption, OpCreateReview, OpCreateReport, OpCreatePet, OpCreateMatch, OpSendMessage:
		return true
	default:
		return false
	}
}
