package admin

import (
	"context"
	"testing"
	"time"

	"petrescue/internal/adapters/storage/memory"
	"petrescue/internal/domain/adoptions"
	"petrescue/internal/domain/pets"
	"petrescue/internal/domain/reports"
	"petrescue/internal/domain/users"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboard(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStores()
	now := time.Now()

	require.NoError(t, s.Users.Create(ctx, users.User{ID: "u1", Email: "a@x.io", IsActive: true, CreatedAt: now}))
	require.NoError(t, s.Users.Create(ctx, users.User{ID: "u2", Email: "b@x.io", IsActive: false, CreatedAt: now}))

	require.NoError(t, s.Pets.Create(ctx, pets.Pet{ID: "p1", IsApproved: true, CreatedAt: now}))
	require.NoError(t, s.Pets.Create(ctx, pets.Pet{ID: "p2", CreatedAt: now}))
	require.NoError(t, s.Pets.Create(ctx, pets.Pet{ID: "p3", CreatedAt: now}))

	require.NoError(t, s.Adoptions.Create(ctx, adoptions.Request{ID: "a1", PetID: "p1", RequesterID: "u1", Status: adoptions.StatusPending}))
	require.NoError(t, s.Adoptions.Create(ctx, adoptions.Request{ID: "a2", PetID: "p1", RequesterID: "u2", Status: adoptions.StatusApproved}))

	require.NoError(t, s.Reports.Create(ctx, reports.Report{ID: "r1", Status: reports.StatusPending}))
	require.NoError(t, s.Reports.Create(ctx, reports.Report{ID: "r2", Status: reports.StatusFound}))

	svc := NewService(Deps{
		Users:         s.Users,
		Pets:          s.Pets,
		Adoptions:     s.Adoptions,
		Reports:       s.Reports,
		Reviews:       s.Reviews,
		Notifications: s.Notifications,
	})

	st, err := svc.Dashboard(ctx)
	require.NoError(t, err)

	assert.Equal(t, UserStats{Total: 2, Active: 1, Inactive: 1}, st.Users)
	assert.Equal(t, PetStats{Total: 3, Approved: 1, Pending: 2}, st.Pets)
	assert.Equal(t, AdoptionStats{Total: 2, Pending: 1, Approved: 1}, st.Adoptions)
	assert.Equal(t, ReportStats{Total: 2, Pending: 1}, st.Reports)
	assert.Zero(t, st.Reviews)
	assert.Zero(t, st.Notifications)
}
