package repository

import (
	"context"
	"fmt"
	"regexp"
	"time"

	bookingserrors "resourcebook/internal/bookings/errors"
	"resourcebook/pkg/config"
	mongotx "resourcebook/pkg/db/mongo"
	"resourcebook/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type mongoBookingRepository struct {
	cfg        *config.Config
	db         *mongo.Database
	collection *mongo.Collection
	txManager  mongotx.TransactionManager
}

type BookingRepository interface {
	Create(ctx context.Context, booking *model.Booking) error
	FindByResourceAndDate(ctx context.Context, resource, date string) ([]*model.Booking, error)
	Find(ctx context.Context, filter model.BookingFilter) ([]*model.Booking, error)
	Delete(ctx context.Context, id string) (int64, error)
	ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error
	EnsureCollection(ctx context.Context) error
	EnsureIndexes(ctx context.Context) error
}

func NewMongoBookingRepository(cfg *config.Config, db *mongo.Database) BookingRepository {
	var txManager mongotx.TransactionManager
	if cfg.MongoUseTransactions {
		txManager = mongotx.NewTransactionManager(db.Client())
	} else {
		txManager = mongotx.NewDirectTransactionManager()
	}

	return &mongoBookingRepository{
		cfg:        cfg,
		db:         db,
		collection: db.Collection(cfg.MongoCollectionName),
		txManager:  txManager,
	}
}

// withTimeout wraps the context with a timeout if not already in a transaction.
// A SessionContext cannot be wrapped without losing the session, so it is
// returned unchanged with a no-op cancel.
func (r *mongoBookingRepository) withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, ok := ctx.(mongo.SessionContext); ok {
		return ctx, func() {}
	}

	deadline, hasDeadline := ctx.Deadline()
	if hasDeadline && time.Until(deadline) < timeout {
		return context.WithDeadline(ctx, deadline)
	}

	return context.WithTimeout(ctx, timeout)
}

func (r *mongoBookingRepository) Create(ctx context.Context, booking *model.Booking) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	booking.ID = ""
	booking.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)
	result, err := r.collection.InsertOne(ctx, booking)
	if err != nil {
		return fmt.Errorf("failed to create booking: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		booking.ID = oid.Hex()
	}
	return nil
}

// FindByResourceAndDate returns the bookings an overlap check has to look at.
// Matching is exact on both fields.
func (r *mongoBookingRepository) FindByResourceAndDate(ctx context.Context, resource, date string) ([]*model.Booking, error) {
	return r.find(ctx, bson.M{"resource": resource, "date": date})
}

func (r *mongoBookingRepository) Find(ctx context.Context, filter model.BookingFilter) ([]*model.Booking, error) {
	return r.find(ctx, buildListFilter(filter))
}

func (r *mongoBookingRepository) find(ctx context.Context, filter bson.M) ([]*model.Booking, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	cursor, err := r.collection.Find(ctx, filter, options.Find())
	if err != nil {
		return nil, fmt.Errorf("failed to find bookings: %w", err)
	}
	defer cursor.Close(ctx)

	bookings := []*model.Booking{}
	if err = cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("failed to decode bookings: %w", err)
	}

	return bookings, nil
}

// buildListFilter matches resource as a case-insensitive suffix, so "room a"
// finds "Meeting Room A". The value is escaped and never interpreted as a
// pattern.
func buildListFilter(f model.BookingFilter) bson.M {
	filter := bson.M{}
	if f.Resource != "" {
		filter["resource"] = primitive.Regex{
			Pattern: regexp.QuoteMeta(f.Resource) + "$",
			Options: "i",
		}
	}
	if f.Date != "" {
		filter["date"] = f.Date
	}
	return filter
}

func (r *mongoBookingRepository) Delete(ctx context.Context, id string) (int64, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return 0, fmt.Errorf("%w: %s", bookingserrors.ErrInvalidID, id)
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return 0, fmt.Errorf("failed to delete booking: %w", err)
	}

	return result.DeletedCount, nil
}

func (r *mongoBookingRepository) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	return r.txManager.ExecuteTransaction(ctx, fn)
}

// EnsureCollection installs the booking document validator.
func (r *mongoBookingRepository) EnsureCollection(ctx context.Context) error {
	return mongotx.EnsureCollection(ctx, r.db, r.collection.Name(), bookingValidator)
}

func (r *mongoBookingRepository) EnsureIndexes(ctx context.Context) error {
	return mongotx.EnsureIndexes(ctx, r.collection, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "resource", Value: 1}, {Key: "date", Value: 1}},
			Options: options.Index().SetName("idx_resource_date"),
		},
		{
			Keys:    bson.D{{Key: "date", Value: 1}},
			Options: options.Index().SetName("idx_date"),
		},
	})
}
