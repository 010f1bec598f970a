package repository

import (
	"context"
	"fmt"
	"time"

	mongotx "resourcebook/pkg/db/mongo"
	"resourcebook/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const LockCollectionName = "booking_locks"

// BookingLockRepository stores advisory locks keyed by resource and date.
type BookingLockRepository interface {
	Create(ctx context.Context, lock *model.BookingLock) (*model.BookingLock, error)
	Delete(ctx context.Context, lockID string) error
	EnsureIndexes(ctx context.Context) error
}

type mongoBookingLockRepository struct {
	collection *mongo.Collection
}

func NewBookingLockRepository(db *mongo.Database) BookingLockRepository {
	return &mongoBookingLockRepository{
		collection: db.Collection(LockCollectionName),
	}
}

// LockID is the _id of the lock document guarding one resource on one date.
func LockID(resource, date string) string {
	return fmt.Sprintf("booking_lock_%s_%s", resource, date)
}

// Create returns a duplicate key error if the lock is already held.
func (r *mongoBookingLockRepository) Create(ctx context.Context, lock *model.BookingLock) (*model.BookingLock, error) {
	lock.CreatedAt = time.Now().UTC()

	if _, err := r.collection.InsertOne(ctx, lock); err != nil {
		return nil, err
	}

	return lock, nil
}

func (r *mongoBookingLockRepository) Delete(ctx context.Context, lockID string) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": lockID})
	return err
}

// EnsureIndexes installs the TTL index that reaps locks left behind by a
// crashed holder.
func (r *mongoBookingLockRepository) EnsureIndexes(ctx context.Context) error {
	return mongotx.EnsureIndexes(ctx, r.collection, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "expires_at", Value: 1}},
			Options: options.Index().SetName("idx_expires_at_ttl").SetExpireAfterSeconds(0),
		},
	})
}
