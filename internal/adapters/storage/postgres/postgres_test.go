package postgres

import (
	"context"
	"os"
	"testing"
	"time"

	"petrescue/internal/domain/adoptions"
	"petrescue/internal/domain/pets"
	"petrescue/internal/domain/reviews"
	"petrescue/internal/domain/users"
	"petrescue/internal/platform/ids"
	"petrescue/internal/ports/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWhere(t *testing.T) {
	var w where
	assert.Equal(t, "", w.String())

	w.add("a = ?", 1)
	w.add("(b ILIKE ? OR c ILIKE ?)", "%x%")
	assert.Equal(t, " WHERE a = $1 AND (b ILIKE $2 OR c ILIKE $2)", w.String())
	assert.Len(t, w.args, 2)
}

func TestImagesRoundTrip(t *testing.T) {
	raw, err := encodeImages(nil)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(raw))

	out, err := decodeImages([]byte(`["a.jpg","b.jpg"]`))
	require.NoError(t, err)
	assert.Equal(t, []string{"a.jpg", "b.jpg"}, out)

	_, err = decodeImages([]byte(`{`))
	assert.Error(t, err)
}

// Necesita una base real: PETRESCUE_TEST_DB_DSN=postgres://...
func openTestDB(t *testing.T) *testStores {
	t.Helper()
	dsn := os.Getenv("PETRESCUE_TEST_DB_DSN")
	if dsn == "" {
		t.Skip("PETRESCUE_TEST_DB_DSN not set")
	}

	db, err := Open(context.Background(), dsn, PoolOptions{})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, Migrate(db))

	return &testStores{
		Users:     NewUsersRepo(db),
		Pets:      NewPetsRepo(db),
		Adoptions: NewAdoptionsRepo(db),
		Reviews:   NewReviewsRepo(db),
	}
}

type testStores struct {
	Users     *UsersRepo
	Pets      *PetsRepo
	Adoptions *AdoptionsRepo
	Reviews   *ReviewsRepo
}

func TestIntegration_UniquenessAndCascade(t *testing.T) {
	s := openTestDB(t)
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Millisecond)

	owner := users.User{ID: ids.New(), Email: ids.New() + "@example.com", PasswordHash: "x", Role: "user", IsActive: true, ThemePreference: users.ThemeSystem, CreatedAt: now, UpdatedAt: now}
	a := owner
	a.ID, a.Email = ids.New(), ids.New()+"@example.com"
	b := owner
	b.ID, b.Email = ids.New(), ids.New()+"@example.com"
	for _, u := range []users.User{owner, a, b} {
		require.NoError(t, s.Users.Create(ctx, u))
	}

	dup := a
	dup.ID = ids.New()
	assert.ErrorIs(t, s.Users.Create(ctx, dup), store.ErrConflict)

	p := pets.Pet{ID: ids.New(), CreatedBy: owner.ID, Name: "Rex", PetType: pets.TypeDog, Status: pets.StatusAvailable, Images: []string{"x.jpg"}, CreatedAt: now, UpdatedAt: now}
	require.NoError(t, s.Pets.Create(ctx, p))

	got, err := s.Pets.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"x.jpg"}, got.Images)

	ra := adoptions.Request{ID: ids.New(), PetID: p.ID, RequesterID: a.ID, Status: adoptions.StatusPending, CreatedAt: now, UpdatedAt: now}
	rb := adoptions.Request{ID: ids.New(), PetID: p.ID, RequesterID: b.ID, Status: adoptions.StatusPending, CreatedAt: now, UpdatedAt: now}
	require.NoError(t, s.Adoptions.Create(ctx, ra))
	require.NoError(t, s.Adoptions.Create(ctx, rb))

	again := ra
	again.ID = ids.New()
	assert.ErrorIs(t, s.Adoptions.Create(ctx, again), store.ErrConflict)

	n, err := s.Adoptions.RejectPending(ctx, p.ID, ra.ID, now)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	require.NoError(t, s.Reviews.Create(ctx, reviews.Review{ID: ids.New(), PetID: p.ID, UserID: a.ID, Rating: 4, CreatedAt: now}))
	err = s.Reviews.Create(ctx, reviews.Review{ID: ids.New(), PetID: p.ID, UserID: a.ID, Rating: 2, CreatedAt: now})
	assert.ErrorIs(t, err, store.ErrConflict)
}
