package matches_test

import (
	"context"
	"testing"

	"petrescue/internal/adapters/storage/memory"
	"petrescue/internal/domain/access"
	"petrescue/internal/domain/matches"
	"petrescue/internal/domain/pets"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	user  = access.Actor{UserID: "u1", Role: access.RoleUser, Active: true}
	admin = access.Actor{UserID: "a1", Role: access.RoleAdmin, Active: true}
)

func newService(t *testing.T) (*matches.Service, *pets.Service) {
	t.Helper()
	petSvc := pets.NewService(memory.NewPetRepo())
	return matches.NewService(memory.NewMatchRepo(), petSvc), petSvc
}

func TestService_Create(t *testing.T) {
	ctx := context.Background()
	svc, petSvc := newService(t)

	p, err := petSvc.Create(ctx, "owner", pets.CreateInput{Name: "Rex"})
	require.NoError(t, err)

	req, err := svc.Create(ctx, user, matches.CreateInput{PetID: p.ID, RequestType: "Found"})
	require.NoError(t, err)
	assert.Equal(t, matches.TypeFound, req.RequestType)
	assert.Equal(t, matches.StatusPending, req.Status)
	assert.Equal(t, "u1", req.RequesterID)

	_, err = svc.Create(ctx, user, matches.CreateInput{PetID: p.ID, RequestType: "stolen"})
	assert.ErrorIs(t, err, matches.ErrInvalidInput)

	_, err = svc.Create(ctx, user, matches.CreateInput{PetID: "missing", RequestType: "lost"})
	assert.ErrorIs(t, err, matches.ErrPetNotFound)

	_, err = svc.Create(ctx, access.Actor{}, matches.CreateInput{PetID: p.ID, RequestType: "lost"})
	assert.ErrorIs(t, err, matches.ErrForbidden)

	mine, err := svc.ListMine(ctx, user)
	require.NoError(t, err)
	assert.Len(t, mine, 1)
}

func TestService_Decide(t *testing.T) {
	ctx := context.Background()
	svc, petSvc := newService(t)

	p, err := petSvc.Create(ctx, "owner", pets.CreateInput{Name: "Rex"})
	require.NoError(t, err)
	req, err := svc.Create(ctx, user, matches.CreateInput{PetID: p.ID, RequestType: "lost"})
	require.NoError(t, err)

	_, err = svc.Decide(ctx, user, req.ID, matches.DecideInput{Status: matches.StatusApproved})
	assert.ErrorIs(t, err, matches.ErrForbidden)

	_, err = svc.Decide(ctx, admin, req.ID, matches.DecideInput{Status: "maybe"})
	assert.ErrorIs(t, err, matches.ErrInvalidStatus)

	comment := "<b>owner confirmed</b>"
	got, err := svc.Decide(ctx, admin, req.ID, matches.DecideInput{Status: "APPROVED", AdminComment: &comment})
	require.NoError(t, err)
	assert.Equal(t, matches.StatusApproved, got.Status)
	assert.Equal(t, "owner confirmed", got.AdminComment)

	// Volver a pending está permitido.
	got, err = svc.Decide(ctx, admin, req.ID, matches.DecideInput{Status: matches.StatusPending})
	require.NoError(t, err)
	assert.Equal(t, matches.StatusPending, got.Status)

	_, err = svc.Decide(ctx, admin, "missing", matches.DecideInput{Status: matches.StatusRejected})
	assert.ErrorIs(t, err, matches.ErrNotFound)
}

func TestService_Suggest(t *testing.T) {
	ctx := context.Background()
	svc, petSvc := newService(t)

	_, err := petSvc.Create(ctx, "owner", pets.CreateInput{Name: "Luna", PetType: "cat", Color: "White"})
	require.NoError(t, err)
	_, err = petSvc.Create(ctx, "owner", pets.CreateInput{Name: "Rex", PetType: "dog", Breed: "Beagle"})
	require.NoError(t, err)
	_, err = petSvc.Create(ctx, user.UserID, pets.CreateInput{Name: "Mine", PetType: "cat"})
	require.NoError(t, err)

	none, err := svc.Suggest(ctx, user, matches.SuggestInput{})
	require.NoError(t, err)
	assert.Empty(t, none)

	got, err := svc.Suggest(ctx, user, matches.SuggestInput{Types: []string{"cat"}, Breeds: []string{"beagle"}})
	require.NoError(t, err)
	names := make([]string, 0, len(got))
	for _, p := range got {
		names = append(names, p.Name)
	}
	assert.ElementsMatch(t, []string{"Luna", "Rex"}, names)
}
