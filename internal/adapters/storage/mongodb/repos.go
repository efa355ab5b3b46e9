package mongodb

import (
	"context"
	"regexp"
	"strings"
	"time"

	"petrescue/internal/domain/adoptions"
	"petrescue/internal/domain/chat"
	"petrescue/internal/domain/matches"
	"petrescue/internal/domain/notifications"
	"petrescue/internal/domain/pets"
	"petrescue/internal/domain/reports"
	"petrescue/internal/domain/reviews"
	"petrescue/internal/domain/users"
	"petrescue/internal/ports/store"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ---------- users

type usersRepo struct{ col *mongo.Collection }

func (r *usersRepo) Create(ctx context.Context, u users.User) error {
	u.Email = strings.ToLower(u.Email)
	_, err := r.col.InsertOne(ctx, toUserDoc(u))
	return insertErr(err)
}

func (r *usersRepo) Update(ctx context.Context, u users.User) error {
	u.Email = strings.ToLower(u.Email)
	return replaceByID(ctx, r.col, u.ID, toUserDoc(u))
}

func (r *usersRepo) GetByID(ctx context.Context, id string) (users.User, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *usersRepo) GetByEmail(ctx context.Context, email string) (users.User, error) {
	return r.findOne(ctx, bson.M{"email": strings.ToLower(email)})
}

func (r *usersRepo) findOne(ctx context.Context, filter bson.M) (users.User, error) {
	var d userDoc
	if err := r.col.FindOne(ctx, filter).Decode(&d); err != nil {
		return users.User{}, findErr(err)
	}
	return d.toDomain(), nil
}

func (r *usersRepo) List(ctx context.Context, f users.ListFilter) ([]users.User, error) {
	filter := bson.M{}
	if f.Role != "" {
		filter["role"] = f.Role
	}
	if f.Active != nil {
		filter["is_active"] = *f.Active
	}
	cur, err := r.col.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}))
	if err != nil {
		return nil, err
	}
	return decodeAll(ctx, cur, userDoc.toDomain)
}

// ---------- pets

type petsRepo struct{ col *mongo.Collection }

func (r *petsRepo) Create(ctx context.Context, p pets.Pet) error {
	_, err := r.col.InsertOne(ctx, toPetDoc(p))
	return insertErr(err)
}

func (r *petsRepo) Update(ctx context.Context, p pets.Pet) error {
	return replaceByID(ctx, r.col, p.ID, toPetDoc(p))
}

func (r *petsRepo) GetByID(ctx context.Context, id string) (pets.Pet, error) {
	var d petDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&d); err != nil {
		return pets.Pet{}, findErr(err)
	}
	return d.toDomain(), nil
}

func (r *petsRepo) Delete(ctx context.Context, id string) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (r *petsRepo) List(ctx context.Context, f pets.ListFilter) ([]pets.Pet, error) {
	cur, err := r.col.Find(ctx, petFilter(f), newestFirst())
	if err != nil {
		return nil, err
	}
	return decodeAll(ctx, cur, petDoc.toDomain)
}

func petFilter(f pets.ListFilter) bson.M {
	filter := bson.M{}
	owner := bson.M{}
	if f.OwnerID != "" {
		owner["$eq"] = f.OwnerID
	}
	if f.ExcludeOwnerID != "" {
		owner["$ne"] = f.ExcludeOwnerID
	}
	if len(owner) > 0 {
		filter["created_by"] = owner
	}
	if f.Approved != nil {
		filter["is_approved"] = *f.Approved
	}
	if f.Type != "" {
		filter["pet_type"] = exactFold(f.Type)
	}
	if f.Status != "" {
		filter["status"] = exactFold(f.Status)
	}
	if f.Location != "" {
		filter["location"] = containsFold(f.Location)
	}

	var and bson.A
	if f.Query != "" {
		q := containsFold(f.Query)
		and = append(and, bson.M{"$or": bson.A{
			bson.M{"name": q},
			bson.M{"breed": q},
			bson.M{"description": q},
			bson.M{"location": q},
		}})
	}
	if len(f.MatchTypes)+len(f.MatchBreeds)+len(f.MatchColors) > 0 {
		var or bson.A
		for field, values := range map[string][]string{
			"pet_type": f.MatchTypes,
			"breed":    f.MatchBreeds,
			"color":    f.MatchColors,
		} {
			for _, v := range values {
				if v = strings.TrimSpace(v); v != "" {
					or = append(or, bson.M{field: exactFold(v)})
				}
			}
		}
		if len(or) > 0 {
			and = append(and, bson.M{"$or": or})
		}
	}
	if len(and) > 0 {
		filter["$and"] = and
	}
	return filter
}

func exactFold(s string) primitive.Regex {
	return primitive.Regex{Pattern: "^" + regexp.QuoteMeta(s) + "$", Options: "i"}
}

func containsFold(s string) primitive.Regex {
	return primitive.Regex{Pattern: regexp.QuoteMeta(s), Options: "i"}
}

// ---------- reports

type reportsRepo struct{ col *mongo.Collection }

func (r *reportsRepo) Create(ctx context.Context, rep reports.Report) error {
	_, err := r.col.InsertOne(ctx, toReportDoc(rep))
	return insertErr(err)
}

func (r *reportsRepo) Update(ctx context.Context, rep reports.Report) error {
	return replaceByID(ctx, r.col, rep.ID, toReportDoc(rep))
}

func (r *reportsRepo) GetByID(ctx context.Context, id string) (reports.Report, error) {
	var d reportDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&d); err != nil {
		return reports.Report{}, findErr(err)
	}
	return d.toDomain(), nil
}

func (r *reportsRepo) List(ctx context.Context, f reports.ListFilter) ([]reports.Report, error) {
	filter := bson.M{}
	if f.CreatedBy != "" {
		filter["created_by"] = f.CreatedBy
	}
	if f.Status != "" {
		filter["status"] = f.Status
	}
	cur, err := r.col.Find(ctx, filter, newestFirst())
	if err != nil {
		return nil, err
	}
	return decodeAll(ctx, cur, reportDoc.toDomain)
}

// ---------- adoptions

type adoptionsRepo struct{ col *mongo.Collection }

// Create: el índice parcial pending_per_requester rechaza el duplicado.
func (r *adoptionsRepo) Create(ctx context.Context, a adoptions.Request) error {
	_, err := r.col.InsertOne(ctx, toAdoptionDoc(a))
	return insertErr(err)
}

func (r *adoptionsRepo) Update(ctx context.Context, a adoptions.Request) error {
	return replaceByID(ctx, r.col, a.ID, toAdoptionDoc(a))
}

func (r *adoptionsRepo) GetByID(ctx context.Context, id string) (adoptions.Request, error) {
	var d adoptionDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&d); err != nil {
		return adoptions.Request{}, findErr(err)
	}
	return d.toDomain(), nil
}

func (r *adoptionsRepo) List(ctx context.Context, f adoptions.ListFilter) ([]adoptions.Request, error) {
	filter := bson.M{}
	if f.PetID != "" {
		filter["pet_id"] = f.PetID
	}
	if f.RequesterID != "" {
		filter["requester_id"] = f.RequesterID
	}
	if f.Status != "" {
		filter["status"] = f.Status
	}
	cur, err := r.col.Find(ctx, filter, newestFirst())
	if err != nil {
		return nil, err
	}
	return decodeAll(ctx, cur, adoptionDoc.toDomain)
}

func (r *adoptionsRepo) RejectPending(ctx context.Context, petID, exceptID string, at time.Time) (int64, error) {
	res, err := r.col.UpdateMany(ctx,
		bson.M{"pet_id": petID, "_id": bson.M{"$ne": exceptID}, "status": adoptions.StatusPending},
		bson.M{"$set": bson.M{"status": adoptions.StatusRejected, "updated_at": at}},
	)
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}

// ---------- reviews

type reviewsRepo struct{ col *mongo.Collection }

func (r *reviewsRepo) Create(ctx context.Context, rv reviews.Review) error {
	_, err := r.col.InsertOne(ctx, reviewDoc(rv))
	return insertErr(err)
}

func (r *reviewsRepo) List(ctx context.Context, f reviews.ListFilter) ([]reviews.Review, error) {
	filter := bson.M{}
	if f.PetID != "" {
		filter["pet_id"] = f.PetID
	}
	if f.UserID != "" {
		filter["user_id"] = f.UserID
	}
	cur, err := r.col.Find(ctx, filter, newestFirst())
	if err != nil {
		return nil, err
	}
	return decodeAll(ctx, cur, reviewDoc.toDomain)
}

// ---------- notifications

type notificationsRepo struct{ col *mongo.Collection }

func (r *notificationsRepo) Create(ctx context.Context, n notifications.Notification) error {
	_, err := r.col.InsertOne(ctx, toNotificationDoc(n))
	return insertErr(err)
}

func (r *notificationsRepo) GetByID(ctx context.Context, id string) (notifications.Notification, error) {
	var d notificationDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&d); err != nil {
		return notifications.Notification{}, findErr(err)
	}
	return d.toDomain(), nil
}

func (r *notificationsRepo) List(ctx context.Context, f notifications.ListFilter) ([]notifications.Notification, error) {
	filter := bson.M{}
	if f.RecipientID != "" {
		filter["recipient_id"] = f.RecipientID
	}
	if f.UnreadOnly {
		filter["is_read"] = false
	}
	cur, err := r.col.Find(ctx, filter, newestFirst())
	if err != nil {
		return nil, err
	}
	return decodeAll(ctx, cur, notificationDoc.toDomain)
}

func (r *notificationsRepo) MarkRead(ctx context.Context, id string) error {
	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"is_read": true}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (r *notificationsRepo) MarkAllRead(ctx context.Context, recipientID string) (int64, error) {
	res, err := r.col.UpdateMany(ctx,
		bson.M{"recipient_id": recipientID, "is_read": false},
		bson.M{"$set": bson.M{"is_read": true}},
	)
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}

// ---------- matches

type matchesRepo struct{ col *mongo.Collection }

func (r *matchesRepo) Create(ctx context.Context, m matches.Request) error {
	_, err := r.col.InsertOne(ctx, toMatchDoc(m))
	return insertErr(err)
}

func (r *matchesRepo) Update(ctx context.Context, m matches.Request) error {
	return replaceByID(ctx, r.col, m.ID, toMatchDoc(m))
}

func (r *matchesRepo) GetByID(ctx context.Context, id string) (matches.Request, error) {
	var d matchDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&d); err != nil {
		return matches.Request{}, findErr(err)
	}
	return d.toDomain(), nil
}

func (r *matchesRepo) List(ctx context.Context, f matches.ListFilter) ([]matches.Request, error) {
	filter := bson.M{}
	if f.RequesterID != "" {
		filter["requester_id"] = f.RequesterID
	}
	if f.PetID != "" {
		filter["pet_id"] = f.PetID
	}
	if f.Status != "" {
		filter["status"] = f.Status
	}
	cur, err := r.col.Find(ctx, filter, newestFirst())
	if err != nil {
		return nil, err
	}
	return decodeAll(ctx, cur, matchDoc.toDomain)
}

// ---------- chat

type chatRepo struct{ col *mongo.Collection }

func (r *chatRepo) Create(ctx context.Context, m chat.Message) error {
	_, err := r.col.InsertOne(ctx, chatDoc(m))
	return insertErr(err)
}

func (r *chatRepo) Conversation(ctx context.Context, a, b string) ([]chat.Message, error) {
	filter := bson.M{"$or": bson.A{
		bson.M{"sender_id": a, "receiver_id": b},
		bson.M{"sender_id": b, "receiver_id": a},
	}}
	cur, err := r.col.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "timestamp", Value: 1}}))
	if err != nil {
		return nil, err
	}
	return decodeAll(ctx, cur, chatDoc.toDomain)
}

func (r *chatRepo) Partners(ctx context.Context, userID string) ([]string, error) {
	sent, err := r.col.Distinct(ctx, "receiver_id", bson.M{"sender_id": userID})
	if err != nil {
		return nil, err
	}
	received, err := r.col.Distinct(ctx, "sender_id", bson.M{"receiver_id": userID})
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	out := make([]string, 0, len(sent)+len(received))
	for _, v := range append(sent, received...) {
		id, ok := v.(string)
		if !ok {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out, nil
}
