package lifecycle

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"
	"time"

	"petrescue/internal/adapters/storage"
	"petrescue/internal/adapters/storage/memory"
	"petrescue/internal/domain/access"
	"petrescue/internal/domain/adoptions"
	"petrescue/internal/domain/notifications"
	"petrescue/internal/domain/pets"
	"petrescue/internal/domain/reports"
	"petrescue/internal/domain/reviews"
	"petrescue/internal/domain/users"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2026, 5, 4, 10, 0, 0, 0, time.UTC)

type recorder struct {
	mu    sync.Mutex
	calls map[string]int
}

func (r *recorder) RecordTransition(op, outcome string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls[op+":"+outcome]++
}

type fixture struct {
	eng     *Engine
	s       *storage.Set
	metrics *recorder

	admin access.Actor
}

func newFixture(t *testing.T) *fixture {
	return newFixtureWithNotifications(t, nil)
}

// notes reemplaza el repo de notificaciones (p.ej. uno que falla).
func newFixtureWithNotifications(t *testing.T, notes notifications.Repository) *fixture {
	t.Helper()

	s := memory.NewStores()
	if notes != nil {
		s.Notifications = notes
	}
	rec := &recorder{calls: map[string]int{}}

	eng := NewEngine(Deps{
		Pets:      s.Pets,
		Users:     s.Users,
		Reports:   s.Reports,
		Adoptions: s.Adoptions,
		Reviews:   s.Reviews,
		Notifier:  notifications.NewDispatcher(s.Notifications, nil, nil),
		Admins:    users.NewService(s.Users),
		Metrics:   rec,
	})
	tick := t0
	eng.now = func() time.Time {
		tick = tick.Add(time.Second)
		return tick
	}

	f := &fixture{eng: eng, s: s, metrics: rec}
	f.admin = f.seedUser(t, "admin", access.RoleAdmin)
	return f
}

func (f *fixture) seedUser(t *testing.T, id, role string) access.Actor {
	t.Helper()
	require.NoError(t, f.s.Users.Create(context.Background(), users.User{
		ID:        id,
		Email:     id + "@example.com",
		Name:      id,
		Role:      role,
		IsActive:  true,
		CreatedAt: t0,
		UpdatedAt: t0,
	}))
	return access.Actor{UserID: id, Role: role, Active: true}
}

func (f *fixture) seedPet(t *testing.T, id, owner string, approved bool) pets.Pet {
	t.Helper()
	p := pets.Pet{
		ID:         id,
		CreatedBy:  owner,
		Name:       "pet-" + id,
		PetType:    pets.TypeDog,
		Status:     pets.StatusAvailable,
		IsApproved: approved,
		CreatedAt:  t0,
		UpdatedAt:  t0,
	}
	require.NoError(t, f.s.Pets.Create(context.Background(), p))
	return p
}

func (f *fixture) inbox(t *testing.T, userID string) []notifications.Notification {
	t.Helper()
	out, err := f.s.Notifications.List(context.Background(), notifications.ListFilter{RecipientID: userID})
	require.NoError(t, err)
	return out
}

func (f *fixture) adoption(t *testing.T, id string) adoptions.Request {
	t.Helper()
	a, err := f.s.Adoptions.GetByID(context.Background(), id)
	require.NoError(t, err)
	return a
}

func (f *fixture) pet(t *testing.T, id string) pets.Pet {
	t.Helper()
	p, err := f.s.Pets.GetByID(context.Background(), id)
	require.NoError(t, err)
	return p
}

func boolPtr(b bool) *bool    { return &b }
func strPtr(s string) *string { return &s }

func titles(ns []notifications.Notification) []string {
	out := make([]string, 0, len(ns))
	for _, n := range ns {
		out = append(out, n.Title)
	}
	return out
}

func TestApprovePet_NotifiesOwnerOncePerFlip(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.seedUser(t, "u1", access.RoleUser)
	f.seedPet(t, "p1", "u1", false)

	p, err := f.eng.ApprovePet(ctx, f.admin, "p1", PetApproval{IsApproved: boolPtr(true)})
	require.NoError(t, err)
	assert.True(t, p.IsApproved)

	inbox := f.inbox(t, "u1")
	require.Len(t, inbox, 1)
	assert.Equal(t, "Pet approved", inbox[0].Title)
	assert.Equal(t, notifications.TypePet, inbox[0].Type)
	assert.Equal(t, "p1", inbox[0].RelatedEntityID)
	assert.Equal(t, access.RoleUser, inbox[0].RecipientRole)

	// Sin cambio de valor no hay notificación nueva.
	_, err = f.eng.ApprovePet(ctx, f.admin, "p1", PetApproval{IsApproved: boolPtr(true)})
	require.NoError(t, err)
	assert.Len(t, f.inbox(t, "u1"), 1)

	_, err = f.eng.ApprovePet(ctx, f.admin, "p1", PetApproval{IsApproved: boolPtr(false)})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"Pet approved", "Pet unapproved"}, titles(f.inbox(t, "u1")))
}

func TestApprovePet_StatusIsNotValidated(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.seedUser(t, "u1", access.RoleUser)
	f.seedPet(t, "p1", "u1", true)

	p, err := f.eng.ApprovePet(ctx, f.admin, "p1", PetApproval{Status: strPtr("on-hold")})
	require.NoError(t, err)
	assert.Equal(t, "on-hold", p.Status)
	assert.Empty(t, f.inbox(t, "u1"))
}

func TestApprovePet_Errors(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	owner := f.seedUser(t, "u1", access.RoleUser)
	f.seedPet(t, "p1", "u1", false)

	_, err := f.eng.ApprovePet(ctx, owner, "p1", PetApproval{IsApproved: boolPtr(true)})
	assert.ErrorIs(t, err, ErrForbidden)
	assert.False(t, f.pet(t, "p1").IsApproved)

	inactiveAdmin := f.admin
	inactiveAdmin.Active = false
	_, err = f.eng.ApprovePet(ctx, inactiveAdmin, "p1", PetApproval{IsApproved: boolPtr(true)})
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = f.eng.ApprovePet(ctx, f.admin, "missing", PetApproval{IsApproved: boolPtr(true)})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSubmitPet_NotifiesOwnerAndEveryActiveAdmin(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	owner := f.seedUser(t, "u1", access.RoleUser)
	f.seedUser(t, "admin2", access.RoleAdmin)
	f.seedUser(t, "admin3", access.RoleAdmin)

	off, err := f.s.Users.GetByID(ctx, "admin3")
	require.NoError(t, err)
	off.IsActive = false
	require.NoError(t, f.s.Users.Update(ctx, off))

	p, err := f.eng.SubmitPet(ctx, owner, pets.CreateInput{Name: "Luna", PetType: "cat"})
	require.NoError(t, err)
	assert.False(t, p.IsApproved)
	assert.Equal(t, pets.StatusAvailable, p.Status)

	assert.Equal(t, []string{"Pet submitted for approval"}, titles(f.inbox(t, "u1")))
	for _, id := range []string{"admin", "admin2"} {
		inbox := f.inbox(t, id)
		require.Len(t, inbox, 1, id)
		assert.Equal(t, "New pet submitted", inbox[0].Title)
		assert.Equal(t, access.RoleAdmin, inbox[0].RecipientRole)
	}
	assert.Empty(t, f.inbox(t, "admin3"))

	_, err = f.eng.SubmitPet(ctx, owner, pets.CreateInput{Name: "  "})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestSetUserActive(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	u := f.seedUser(t, "u1", access.RoleUser)

	_, err := f.eng.SetUserActive(ctx, u, "u1", false)
	assert.ErrorIs(t, err, ErrForbidden)

	got, err := f.eng.SetUserActive(ctx, f.admin, "u1", false)
	require.NoError(t, err)
	assert.False(t, got.IsActive)

	inbox := f.inbox(t, "u1")
	require.Len(t, inbox, 1)
	assert.Equal(t, notifications.TypeSystem, inbox[0].Type)
	assert.Equal(t, "Your account has been disabled by an admin.", inbox[0].Message)

	_, err = f.eng.SetUserActive(ctx, f.admin, "ghost", true)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateReportStatus(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	reporter := f.seedUser(t, "u1", access.RoleUser)

	rep, err := f.eng.SubmitReport(ctx, reporter, reports.CreateInput{
		PetName:       "Toby",
		PetType:       "dog",
		Description:   "brown dog near the park",
		LocationFound: "Central Park",
		ContactInfo:   "555-1234",
	})
	require.NoError(t, err)
	assert.Equal(t, reports.StatusPending, rep.Status)
	assert.Equal(t, []string{"New pet report submitted"}, titles(f.inbox(t, "admin")))

	_, err = f.eng.UpdateReportStatus(ctx, f.admin, rep.ID, "bogus")
	assert.ErrorIs(t, err, ErrInvalidStatus)
	stored, err := f.s.Reports.GetByID(ctx, rep.ID)
	require.NoError(t, err)
	assert.Equal(t, reports.StatusPending, stored.Status)
	assert.Empty(t, f.inbox(t, "u1"))

	_, err = f.eng.UpdateReportStatus(ctx, reporter, rep.ID, reports.StatusFound)
	assert.ErrorIs(t, err, ErrForbidden)

	updated, err := f.eng.UpdateReportStatus(ctx, f.admin, rep.ID, reports.StatusFound)
	require.NoError(t, err)
	assert.Equal(t, reports.StatusFound, updated.Status)

	inbox := f.inbox(t, "u1")
	require.Len(t, inbox, 1)
	assert.Equal(t, "Your report 'Toby' is now found.", inbox[0].Message)
	assert.Equal(t, notifications.TypeReport, inbox[0].Type)
}

func TestEditReport(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	reporter := f.seedUser(t, "u1", access.RoleUser)
	stranger := f.seedUser(t, "u2", access.RoleUser)

	rep, err := f.eng.SubmitReport(ctx, reporter, reports.CreateInput{
		PetName: "Toby", PetType: "dog", Description: "d", LocationFound: "l", ContactInfo: "c",
	})
	require.NoError(t, err)

	_, err = f.eng.EditReport(ctx, stranger, rep.ID, reports.EditInput{Description: strPtr("x")})
	assert.ErrorIs(t, err, ErrForbidden)

	got, err := f.eng.EditReport(ctx, reporter, rep.ID, reports.EditInput{Description: strPtr("black dog")})
	require.NoError(t, err)
	assert.Equal(t, "black dog", got.Description)
	assert.Empty(t, f.inbox(t, "u1"))

	_, err = f.eng.EditReport(ctx, f.admin, rep.ID, reports.EditInput{Status: strPtr("lost")})
	assert.ErrorIs(t, err, ErrInvalidStatus)

	got, err = f.eng.EditReport(ctx, f.admin, rep.ID, reports.EditInput{Status: strPtr(reports.StatusApproved)})
	require.NoError(t, err)
	assert.Equal(t, reports.StatusApproved, got.Status)
	assert.Equal(t, []string{"Report status updated"}, titles(f.inbox(t, "u1")))
}

func TestCreateAdoptionRequest(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	owner := f.seedUser(t, "u1", access.RoleUser)
	requester := f.seedUser(t, "u2", access.RoleUser)
	f.seedPet(t, "p1", "u1", true)

	t.Run("self adoption creates nothing", func(t *testing.T) {
		_, err := f.eng.CreateAdoptionRequest(ctx, owner, "p1", "mine")
		assert.ErrorIs(t, err, ErrSelfAdoption)

		all, err := f.s.Adoptions.List(ctx, adoptions.ListFilter{PetID: "p1"})
		require.NoError(t, err)
		assert.Empty(t, all)
	})

	t.Run("missing pet", func(t *testing.T) {
		_, err := f.eng.CreateAdoptionRequest(ctx, requester, "nope", "")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("created and owner notified", func(t *testing.T) {
		req, err := f.eng.CreateAdoptionRequest(ctx, requester, "p1", "<b>I have a garden</b>")
		require.NoError(t, err)
		assert.Equal(t, adoptions.StatusPending, req.Status)
		assert.Equal(t, "I have a garden", req.Message)

		inbox := f.inbox(t, "u1")
		require.Len(t, inbox, 1)
		assert.Equal(t, "New adoption request for pet-p1 from u2.", inbox[0].Message)
		assert.Equal(t, req.ID, inbox[0].RelatedEntityID)
	})

	t.Run("second pending is duplicate", func(t *testing.T) {
		_, err := f.eng.CreateAdoptionRequest(ctx, requester, "p1", "again")
		assert.ErrorIs(t, err, ErrDuplicateRequest)

		all, err := f.s.Adoptions.List(ctx, adoptions.ListFilter{PetID: "p1"})
		require.NoError(t, err)
		assert.Len(t, all, 1)
	})
}

func TestDecideAdoptionRequest_ApprovalCascade(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	owner := f.seedUser(t, "u1", access.RoleUser)
	u2 := f.seedUser(t, "u2", access.RoleUser)
	u3 := f.seedUser(t, "u3", access.RoleUser)
	f.seedPet(t, "p1", "u1", true)
	f.seedPet(t, "p2", "u1", true)

	win, err := f.eng.CreateAdoptionRequest(ctx, u2, "p1", "")
	require.NoError(t, err)
	lose, err := f.eng.CreateAdoptionRequest(ctx, u3, "p1", "")
	require.NoError(t, err)
	other, err := f.eng.CreateAdoptionRequest(ctx, u3, "p2", "")
	require.NoError(t, err)

	got, err := f.eng.DecideAdoptionRequest(ctx, owner, win.ID, adoptions.StatusApproved)
	require.NoError(t, err)
	assert.Equal(t, adoptions.StatusApproved, got.Status)

	assert.Equal(t, pets.StatusAdopted, f.pet(t, "p1").Status)
	assert.Equal(t, adoptions.StatusApproved, f.adoption(t, win.ID).Status)
	assert.Equal(t, adoptions.StatusRejected, f.adoption(t, lose.ID).Status)
	assert.Equal(t, adoptions.StatusPending, f.adoption(t, other.ID).Status)
	assert.Equal(t, pets.StatusAvailable, f.pet(t, "p2").Status)

	assert.Equal(t, []string{"Adoption approved"}, titles(f.inbox(t, "u2")))
	// La cascada no notifica.
	assert.Empty(t, f.inbox(t, "u3"))

	_, err = f.eng.DecideAdoptionRequest(ctx, owner, win.ID, adoptions.StatusRejected)
	assert.ErrorIs(t, err, ErrAlreadyDecided)
	_, err = f.eng.DecideAdoptionRequest(ctx, owner, lose.ID, adoptions.StatusApproved)
	assert.ErrorIs(t, err, ErrAlreadyDecided)
}

func TestDecideAdoptionRequest_AdoptedPetCannotBeApprovedTwice(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	owner := f.seedUser(t, "u1", access.RoleUser)
	u2 := f.seedUser(t, "u2", access.RoleUser)
	u3 := f.seedUser(t, "u3", access.RoleUser)
	f.seedPet(t, "p1", "u1", true)

	win, err := f.eng.CreateAdoptionRequest(ctx, u2, "p1", "")
	require.NoError(t, err)
	_, err = f.eng.DecideAdoptionRequest(ctx, owner, win.ID, adoptions.StatusApproved)
	require.NoError(t, err)

	// Solicitud posterior sobre un pet ya adoptado.
	late, err := f.eng.CreateAdoptionRequest(ctx, u3, "p1", "")
	require.NoError(t, err)

	_, err = f.eng.DecideAdoptionRequest(ctx, owner, late.ID, adoptions.StatusApproved)
	assert.ErrorIs(t, err, ErrAlreadyDecided)
	assert.Equal(t, adoptions.StatusPending, f.adoption(t, late.ID).Status)

	approved, err := f.s.Adoptions.List(ctx, adoptions.ListFilter{PetID: "p1", Status: adoptions.StatusApproved})
	require.NoError(t, err)
	require.Len(t, approved, 1)
	assert.Equal(t, win.ID, approved[0].ID)

	// Rechazarla sigue permitido.
	rejected, err := f.eng.DecideAdoptionRequest(ctx, owner, late.ID, adoptions.StatusRejected)
	require.NoError(t, err)
	assert.Equal(t, adoptions.StatusRejected, rejected.Status)
}

func TestDecideAdoptionRequest_ExistingApprovalBlocksAnother(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	owner := f.seedUser(t, "u1", access.RoleUser)
	f.seedUser(t, "u2", access.RoleUser)
	f.seedUser(t, "u3", access.RoleUser)
	f.seedPet(t, "p1", "u1", true)

	// Aprobación persistida sin que el pet llegara a adopted.
	require.NoError(t, f.s.Adoptions.Create(ctx, adoptions.Request{ID: "a1", PetID: "p1", RequesterID: "u2", Status: adoptions.StatusApproved, UpdatedAt: t0}))
	require.NoError(t, f.s.Adoptions.Create(ctx, adoptions.Request{ID: "a2", PetID: "p1", RequesterID: "u3", Status: adoptions.StatusPending, UpdatedAt: t0}))

	_, err := f.eng.DecideAdoptionRequest(ctx, owner, "a2", adoptions.StatusApproved)
	assert.ErrorIs(t, err, ErrAlreadyDecided)
	assert.Equal(t, adoptions.StatusPending, f.adoption(t, "a2").Status)
	assert.Equal(t, pets.StatusAvailable, f.pet(t, "p1").Status)
}

func TestDecideAdoptionRequest_Errors(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.seedUser(t, "u1", access.RoleUser)
	u2 := f.seedUser(t, "u2", access.RoleUser)
	f.seedPet(t, "p1", "u1", true)

	req, err := f.eng.CreateAdoptionRequest(ctx, u2, "p1", "")
	require.NoError(t, err)

	_, err = f.eng.DecideAdoptionRequest(ctx, u2, req.ID, adoptions.StatusApproved)
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = f.eng.DecideAdoptionRequest(ctx, f.admin, req.ID, adoptions.StatusPending)
	assert.ErrorIs(t, err, ErrInvalidStatus)

	_, err = f.eng.DecideAdoptionRequest(ctx, f.admin, "missing", adoptions.StatusApproved)
	assert.ErrorIs(t, err, ErrNotFound)

	assert.Equal(t, adoptions.StatusPending, f.adoption(t, req.ID).Status)

	rejected, err := f.eng.DecideAdoptionRequest(ctx, f.admin, req.ID, adoptions.StatusRejected)
	require.NoError(t, err)
	assert.Equal(t, adoptions.StatusRejected, rejected.Status)
	assert.Equal(t, pets.StatusAvailable, f.pet(t, "p1").Status)
	assert.Equal(t, []string{"Adoption rejected"}, titles(f.inbox(t, "u2")))
}

func TestReconcileAdoptions_CompletesInterruptedCascade(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	owner := f.seedUser(t, "u1", access.RoleUser)
	f.seedUser(t, "u2", access.RoleUser)
	f.seedUser(t, "u3", access.RoleUser)
	f.seedPet(t, "p1", "u1", true)

	// Estado tras una cascada interrumpida: aprobada persistida, resto pending.
	require.NoError(t, f.s.Adoptions.Create(ctx, adoptions.Request{ID: "a1", PetID: "p1", RequesterID: "u2", Status: adoptions.StatusApproved, UpdatedAt: t0}))
	require.NoError(t, f.s.Adoptions.Create(ctx, adoptions.Request{ID: "a2", PetID: "p1", RequesterID: "u3", Status: adoptions.StatusPending, UpdatedAt: t0}))

	_, err := f.eng.ReconcileAdoptions(ctx, owner, "p1")
	assert.ErrorIs(t, err, ErrForbidden)

	res, err := f.eng.ReconcileAdoptions(ctx, f.admin, "p1")
	require.NoError(t, err)
	assert.Equal(t, ReconcileResult{PetID: "p1", ApprovedRequestID: "a1", Rejected: 1}, res)
	assert.Equal(t, pets.StatusAdopted, f.pet(t, "p1").Status)
	assert.Equal(t, adoptions.StatusRejected, f.adoption(t, "a2").Status)

	res, err = f.eng.ReconcileAdoptions(ctx, f.admin, "p1")
	require.NoError(t, err)
	assert.EqualValues(t, 0, res.Rejected)
}

func TestReconcileAdoptions_NoApprovedRequest(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.seedUser(t, "u1", access.RoleUser)
	f.seedPet(t, "p1", "u1", true)

	res, err := f.eng.ReconcileAdoptions(ctx, f.admin, "p1")
	require.NoError(t, err)
	assert.Equal(t, ReconcileResult{PetID: "p1"}, res)
	assert.Equal(t, pets.StatusAvailable, f.pet(t, "p1").Status)
}

func TestListPetAdoptions(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	owner := f.seedUser(t, "u1", access.RoleUser)
	u2 := f.seedUser(t, "u2", access.RoleUser)
	f.seedPet(t, "p1", "u1", true)

	_, err := f.eng.CreateAdoptionRequest(ctx, u2, "p1", "")
	require.NoError(t, err)

	items, err := f.eng.ListPetAdoptions(ctx, owner, "p1")
	require.NoError(t, err)
	assert.Len(t, items, 1)

	_, err = f.eng.ListPetAdoptions(ctx, u2, "p1")
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestCreateReview(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.seedUser(t, "u1", access.RoleUser)
	u2 := f.seedUser(t, "u2", access.RoleUser)
	f.seedPet(t, "p1", "u1", true)

	// El rating se valida antes que la existencia del pet.
	for _, rating := range []int{0, 6, -1} {
		_, err := f.eng.CreateReview(ctx, u2, "missing", rating, "")
		assert.ErrorIs(t, err, ErrInvalidRating, "rating %d", rating)
	}

	_, err := f.eng.CreateReview(ctx, u2, "missing", 4, "")
	assert.ErrorIs(t, err, ErrNotFound)

	rv, err := f.eng.CreateReview(ctx, u2, "p1", 5, "lovely")
	require.NoError(t, err)
	assert.Equal(t, 5, rv.Rating)

	_, err = f.eng.CreateReview(ctx, u2, "p1", 3, "changed my mind")
	assert.ErrorIs(t, err, ErrDuplicateReview)

	all, err := f.s.Reviews.List(ctx, reviews.ListFilter{PetID: "p1"})
	require.NoError(t, err)
	assert.Len(t, all, 1)

	inbox := f.inbox(t, "u1")
	require.Len(t, inbox, 1)
	assert.Equal(t, "Your pet 'pet-p1' received a new review (rating 5/5).", inbox[0].Message)

	assert.Equal(t, 1, f.metrics.calls["create_review:duplicate_review"])
	assert.Equal(t, 3, f.metrics.calls["create_review:invalid_rating"])
	assert.Equal(t, 1, f.metrics.calls["create_review:ok"])
}

func TestAnonymousActorIsForbidden(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.seedUser(t, "u1", access.RoleUser)
	f.seedPet(t, "p1", "u1", true)

	anon := access.Actor{}
	_, err := f.eng.CreateAdoptionRequest(ctx, anon, "p1", "")
	assert.ErrorIs(t, err, ErrForbidden)
	_, err = f.eng.CreateReview(ctx, anon, "p1", 5, "")
	assert.ErrorIs(t, err, ErrForbidden)
	_, err = f.eng.SubmitReport(ctx, anon, reports.CreateInput{PetName: "x"})
	assert.ErrorIs(t, err, ErrForbidden)
}

type brokenNotifications struct {
	notifications.Repository
	panics bool
}

func (b brokenNotifications) Create(context.Context, notifications.Notification) error {
	if b.panics {
		panic("store exploded")
	}
	return errors.New("store down")
}

func TestNotificationFailuresNeverFailTransitions(t *testing.T) {
	for _, panics := range []bool{false, true} {
		f := newFixtureWithNotifications(t, brokenNotifications{Repository: memory.NewNotificationRepo(), panics: panics})
		ctx := context.Background()
		owner := f.seedUser(t, "u1", access.RoleUser)
		u2 := f.seedUser(t, "u2", access.RoleUser)
		f.seedPet(t, "p1", "u1", false)

		_, err := f.eng.ApprovePet(ctx, f.admin, "p1", PetApproval{IsApproved: boolPtr(true)})
		require.NoError(t, err)

		req, err := f.eng.CreateAdoptionRequest(ctx, u2, "p1", "")
		require.NoError(t, err)

		_, err = f.eng.DecideAdoptionRequest(ctx, owner, req.ID, adoptions.StatusApproved)
		require.NoError(t, err)
		assert.Equal(t, pets.StatusAdopted, f.pet(t, "p1").Status)

		_, err = f.eng.SubmitPet(ctx, owner, pets.CreateInput{Name: "Other"})
		require.NoError(t, err)
	}
}

// Escenario completo: aprobación, duplicado y cascada.
func TestScenario_ApproveRequestAndCascade(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	u1 := f.seedUser(t, "u1", access.RoleUser)
	u2 := f.seedUser(t, "u2", access.RoleUser)
	u3 := f.seedUser(t, "u3", access.RoleUser)
	f.seedPet(t, "P", "u1", false)

	p, err := f.eng.ApprovePet(ctx, f.admin, "P", PetApproval{IsApproved: boolPtr(true)})
	require.NoError(t, err)
	assert.True(t, p.IsApproved)
	assert.Contains(t, titles(f.inbox(t, "u1")), "Pet approved")

	first, err := f.eng.CreateAdoptionRequest(ctx, u2, "P", "first")
	require.NoError(t, err)
	_, err = f.eng.CreateAdoptionRequest(ctx, u2, "P", "second")
	assert.ErrorIs(t, err, ErrDuplicateRequest)

	third, err := f.eng.CreateAdoptionRequest(ctx, u3, "P", "me too")
	require.NoError(t, err)

	_, err = f.eng.DecideAdoptionRequest(ctx, u1, first.ID, adoptions.StatusApproved)
	require.NoError(t, err)

	assert.Equal(t, pets.StatusAdopted, f.pet(t, "P").Status)
	assert.Equal(t, adoptions.StatusApproved, f.adoption(t, first.ID).Status)
	assert.Equal(t, adoptions.StatusRejected, f.adoption(t, third.ID).Status)
}

func TestHTTPStatus(t *testing.T) {
	cases := map[error]int{
		ErrInvalidStatus:    http.StatusBadRequest,
		ErrInvalidRating:    http.StatusBadRequest,
		ErrInvalidInput:     http.StatusBadRequest,
		ErrSelfAdoption:     http.StatusBadRequest,
		ErrForbidden:        http.StatusForbidden,
		ErrNotFound:         http.StatusNotFound,
		ErrDuplicateRequest: http.StatusConflict,
		ErrDuplicateReview:  http.StatusConflict,
		ErrAlreadyDecided:   http.StatusConflict,
		errors.New("boom"):  http.StatusInternalServerError,
	}
	for err, want := range cases {
		assert.Equal(t, want, httpStatus(err), err.Error())
	}
}
