package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"petrescue/internal/adapters/storage"
	"petrescue/internal/ports/store"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	colUsers         = "users"
	colPets          = "pets"
	colReports       = "pet_reports"
	colAdoptions     = "adoption_requests"
	colReviews       = "reviews"
	colNotifications = "notifications"
	colMatches       = "match_requests"
	colChat          = "chat_messages"
)

// Connect abre el cliente y hace ping dentro de timeout.
func Connect(ctx context.Context, uri string, timeout time.Duration) (*mongo.Client, error) {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping: %w", err)
	}
	return client, nil
}

// EnsureIndexes crea los índices que sostienen las reglas de unicidad.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	specs := map[string][]mongo.IndexModel{
		colUsers: {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "role", Value: 1}, {Key: "is_active", Value: 1}}},
		},
		colPets: {
			{Keys: bson.D{{Key: "created_by", Value: 1}}},
			{Keys: bson.D{{Key: "is_approved", Value: 1}, {Key: "created_at", Value: -1}}},
		},
		colReports: {
			{Keys: bson.D{{Key: "created_by", Value: 1}}},
		},
		colAdoptions: {
			{
				Keys: bson.D{{Key: "pet_id", Value: 1}, {Key: "requester_id", Value: 1}},
				Options: options.Index().
					SetUnique(true).
					SetPartialFilterExpression(bson.M{"status": "pending"}).
					SetName("pending_per_requester"),
			},
		},
		colReviews: {
			{Keys: bson.D{{Key: "pet_id", Value: 1}, {Key: "user_id", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		colNotifications: {
			{Keys: bson.D{{Key: "recipient_id", Value: 1}, {Key: "created_at", Value: -1}}},
		},
		colChat: {
			{Keys: bson.D{{Key: "sender_id", Value: 1}, {Key: "receiver_id", Value: 1}, {Key: "timestamp", Value: 1}}},
		},
	}

	for col, models := range specs {
		if _, err := db.Collection(col).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("indexes %s: %w", col, err)
		}
	}
	return nil
}

func NewStores(db *mongo.Database) *storage.Set {
	return &storage.Set{
		Users:         &usersRepo{col: db.Collection(colUsers)},
		Pets:          &petsRepo{col: db.Collection(colPets)},
		Reports:       &reportsRepo{col: db.Collection(colReports)},
		Adoptions:     &adoptionsRepo{col: db.Collection(colAdoptions)},
		Reviews:       &reviewsRepo{col: db.Collection(colReviews)},
		Notifications: &notificationsRepo{col: db.Collection(colNotifications)},
		Matches:       &matchesRepo{col: db.Collection(colMatches)},
		Chat:          &chatRepo{col: db.Collection(colChat)},
	}
}

func insertErr(err error) error {
	if mongo.IsDuplicateKeyError(err) {
		return store.ErrConflict
	}
	return err
}

func findErr(err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return store.ErrNotFound
	}
	return err
}

// replaceByID reemplaza el documento completo; ErrNotFound si no existe.
func replaceByID(ctx context.Context, col *mongo.Collection, id string, doc any) error {
	res, err := col.ReplaceOne(ctx, bson.M{"_id": id}, doc)
	if err != nil {
		return insertErr(err)
	}
	if res.MatchedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}

func decodeAll[D any, T any](ctx context.Context, cur *mongo.Cursor, conv func(D) T) ([]T, error) {
	defer cur.Close(ctx)

	out := make([]T, 0)
	for cur.Next(ctx) {
		var d D
		if err := cur.Decode(&d); err != nil {
			return nil, err
		}
		out = append(out, conv(d))
	}
	return out, cur.Err()
}

func newestFirst() *options.FindOptions {
	return options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
}
