package mongodb

import (
	"context"
	"os"
	"testing"
	"time"

	"petrescue/internal/domain/adoptions"
	"petrescue/internal/domain/pets"
	"petrescue/internal/domain/reviews"
	"petrescue/internal/platform/ids"
	"petrescue/internal/ports/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestPetFilter(t *testing.T) {
	approved := true
	f := petFilter(pets.ListFilter{
		OwnerID:        "",
		ExcludeOwnerID: "me",
		Approved:       &approved,
		Type:           "Dog",
		MatchBreeds:    []string{"labrador", " "},
	})

	assert.Equal(t, bson.M{"$ne": "me"}, f["created_by"])
	assert.Equal(t, true, f["is_approved"])
	assert.Equal(t, primitive.Regex{Pattern: "^Dog$", Options: "i"}, f["pet_type"])

	and, ok := f["$and"].(bson.A)
	require.True(t, ok)
	require.Len(t, and, 1)
	or := and[0].(bson.M)["$or"].(bson.A)
	assert.Len(t, or, 1)
}

func TestContainsFoldEscapes(t *testing.T) {
	assert.Equal(t, `a\.b\*`, containsFold("a.b*").Pattern)
}

// Necesita un mongod real: PETRESCUE_TEST_MONGO_URI=mongodb://...
func TestIntegration_Uniqueness(t *testing.T) {
	uri := os.Getenv("PETRESCUE_TEST_MONGO_URI")
	if uri == "" {
		t.Skip("PETRESCUE_TEST_MONGO_URI not set")
	}

	ctx := context.Background()
	client, err := Connect(ctx, uri, 5*time.Second)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Disconnect(context.Background()) })

	db := client.Database("petrescue_test_" + ids.New())
	t.Cleanup(func() { _ = db.Drop(context.Background()) })
	require.NoError(t, EnsureIndexes(ctx, db))

	s := NewStores(db)
	now := time.Now().UTC().Truncate(time.Millisecond)

	p := pets.Pet{ID: ids.New(), CreatedBy: "owner", Name: "Rex", Status: pets.StatusAvailable, CreatedAt: now, UpdatedAt: now}
	require.NoError(t, s.Pets.Create(ctx, p))

	a := adoptions.Request{ID: ids.New(), PetID: p.ID, RequesterID: "u1", Status: adoptions.StatusPending, CreatedAt: now, UpdatedAt: now}
	require.NoError(t, s.Adoptions.Create(ctx, a))
	dup := a
	dup.ID = ids.New()
	assert.ErrorIs(t, s.Adoptions.Create(ctx, dup), store.ErrConflict)

	other := adoptions.Request{ID: ids.New(), PetID: p.ID, RequesterID: "u2", Status: adoptions.StatusPending, CreatedAt: now, UpdatedAt: now}
	require.NoError(t, s.Adoptions.Create(ctx, other))

	n, err := s.Adoptions.RejectPending(ctx, p.ID, a.ID, now)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	require.NoError(t, s.Reviews.Create(ctx, reviews.Review{ID: ids.New(), PetID: p.ID, UserID: "u1", Rating: 5, CreatedAt: now}))
	err = s.Reviews.Create(ctx, reviews.Review{ID: ids.New(), PetID: p.ID, UserID: "u1", Rating: 1, CreatedAt: now})
	assert.ErrorIs(t, err, store.ErrConflict)

	_, err = s.Pets.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, store.ErrNotFound)
}
