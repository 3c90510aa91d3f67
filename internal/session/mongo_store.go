package session

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/fjod/go_cart/storefront/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type cartEntry struct {
	ProductID int64 `bson:"product_id"`
	Quantity  int   `bson:"quantity"`
}

// sessionDocument keeps the cart as an array so insertion order survives.
type sessionDocument struct {
	ID        string         `bson:"_id"`
	Cart      []cartEntry    `bson:"cart"`
	Ratings   map[string]int `bson:"ratings"`
	CreatedAt time.Time      `bson:"created_at"`
	UpdatedAt time.Time      `bson:"updated_at"`
}

func (d sessionDocument) toState() domain.SessionState {
	items := make([]domain.CartItem, 0, len(d.Cart))
	for _, e := range d.Cart {
		items = append(items, domain.CartItem{ProductID: e.ProductID, Quantity: e.Quantity})
	}
	state := domain.SessionState{
		Cart:    domain.NewCartFromItems(items),
		Ratings: make(domain.Ratings, len(d.Ratings)),
	}
	for key, rating := range d.Ratings {
		id, err := strconv.ParseInt(key, 10, 64)
		if err != nil || !domain.ValidRating(rating) {
			continue
		}
		state.Ratings[id] = rating
	}
	return state
}

func cartEntries(c domain.Cart) []cartEntry {
	entries := make([]cartEntry, 0, c.Len())
	for _, it := range c.Items() {
		entries = append(entries, cartEntry{ProductID: it.ProductID, Quantity: it.Quantity})
	}
	return entries
}

func ratingsDocument(r domain.Ratings) map[string]int {
	out := make(map[string]int, len(r))
	for id, rating := range r {
		out[strconv.FormatInt(id, 10)] = rating
	}
	return out
}

// MongoStore keeps one document per session; a TTL index on updated_at
// expires idle sessions.
type MongoStore struct {
	collection *mongo.Collection
	ttl        time.Duration
}

func NewMongoStore(db *mongo.Database, ttl time.Duration) *MongoStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &MongoStore{
		collection: db.Collection("sessions"),
		ttl:        ttl,
	}
}

func (m *MongoStore) CreateIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "updated_at", Value: 1}},
			Options: options.Index().SetExpireAfterSeconds(int32(m.ttl.Seconds())),
		},
	}

	_, err := m.collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}

	return nil
}

func (m *MongoStore) Load(ctx context.Context, sessionID string) (domain.SessionState, error) {
	if sessionID == "" {
		return domain.SessionState{}, ErrInvalidSessionID
	}
	now := time.Now()

	filter := bson.M{"_id": sessionID}
	update := bson.M{
		"$setOnInsert": bson.M{
			"cart":       bson.A{},
			"ratings":    bson.M{},
			"created_at": now,
		},
		"$set": bson.M{"updated_at": now},
	}
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var doc sessionDocument
	err := m.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&doc)
	if mongo.IsDuplicateKeyError(err) {
		// two upserts raced on _id; the document exists now
		err = m.collection.FindOne(ctx, filter).Decode(&doc)
	}
	if err != nil {
		return domain.SessionState{}, fmt.Errorf("failed to load session: %w", err)
	}

	return doc.toState(), nil
}

func (m *MongoStore) Save(ctx context.Context, sessionID string, state domain.SessionState) error {
	if sessionID == "" {
		return ErrInvalidSessionID
	}
	now := time.Now()

	filter := bson.M{"_id": sessionID}
	update := bson.M{
		"$set": bson.M{
			"cart":       cartEntries(state.Cart),
			"ratings":    ratingsDocument(state.Ratings),
			"updated_at": now,
		},
		"$setOnInsert": bson.M{"created_at": now},
	}
	opts := options.Update().SetUpsert(true)

	_, err := m.collection.UpdateOne(ctx, filter, update, opts)
	if mongo.IsDuplicateKeyError(err) {
		// a concurrent Load created the document first; update it in place
		_, err = m.collection.UpdateOne(ctx, filter, update)
	}
	if err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

func (m *MongoStore) Delete(ctx context.Context, sessionID string) error {
	_, err := m.collection.DeleteOne(ctx, bson.M{"_id": sessionID})
	if err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}
