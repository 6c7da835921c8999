package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CartDocument is one stored cart. Payload is the serialized cart record.
type CartDocument struct {
	Key       string    `bson:"_id"`
	Payload   string    `bson:"payload"`
	UpdatedAt time.Time `bson:"updated_at"`
	ExpiresAt time.Time `bson:"expires_at"`
}

// CartsRepository stores cart records in MongoDB. Expired documents are
// reaped by the TTL index on expires_at and filtered out on read until then.
type CartsRepository struct {
	collection *mongo.Collection
	now        func() time.Time
}

// NewCartsRepository creates a new carts repository.
func NewCartsRepository(db *MongoDB) *CartsRepository {
	return &CartsRepository{
		collection: db.Carts,
		now:        time.Now,
	}
}

// Get returns the payload stored under key.
func (r *CartsRepository) Get(ctx context.Context, key string) ([]byte, error) {
	filter := bson.M{
		"_id":        key,
		"expires_at": bson.M{"$gt": r.now()},
	}

	var doc CartDocument
	err := r.collection.FindOne(ctx, filter).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrCartNotFound
		}
		return nil, err
	}
	return []byte(doc.Payload), nil
}

// Put upserts the payload under key.
func (r *CartsRepository) Put(ctx context.Context, key string, payload []byte, expiresAt time.Time) error {
	update := bson.M{
		"$set": bson.M{
			"payload":    string(payload),
			"updated_at": r.now(),
			"expires_at": expiresAt,
		},
	}
	_, err := r.collection.UpdateByID(ctx, key, update, options.Update().SetUpsert(true))
	return err
}

// Delete removes the record under key. Missing keys are not an error.
func (r *CartsRepository) Delete(ctx context.Context, key string) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": key})
	return err
}
