package repository

import (
	"context"
	"testing"
	"time"

	bookingserrors "resourcebook/internal/bookings/errors"
	"resourcebook/pkg/config"
	"resourcebook/pkg/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/mongodb"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func setupMongo(t *testing.T) *mongo.Database {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping MongoDB container test in short mode")
	}
	testcontainers.SkipIfProviderIsNotHealthy(t)

	ctx := context.Background()
	container, err := mongodb.Run(ctx, "mongo:7")
	testcontainers.CleanupContainer(t, container)
	require.NoError(t, err)

	uri, err := container.ConnectionString(ctx)
	require.NoError(t, err)

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = client.Disconnect(context.Background())
	})

	return client.Database("resource_db_test")
}

func testConfig() *config.Config {
	return &config.Config{
		MongoCollectionName: "resource",
		ReadTimeout:         5 * time.Second,
		WriteTimeout:        5 * time.Second,
	}
}

func newBooking(resource, date, from, to string) *model.Booking {
	return &model.Booking{
		Date:       date,
		Resource:   resource,
		TimeFrom:   from,
		TimeTo:     to,
		BufferFrom: from,
		BufferTo:   to,
	}
}

func TestBuildListFilter(t *testing.T) {
	t.Run("empty filter matches everything", func(t *testing.T) {
		assert.Empty(t, buildListFilter(model.BookingFilter{}))
	})

	t.Run("resource is an escaped case-insensitive suffix", func(t *testing.T) {
		f := buildListFilter(model.BookingFilter{Resource: "Room (A).1"})
		re, ok := f["resource"].(primitive.Regex)
		require.True(t, ok)
		assert.Equal(t, `Room \(A\)\.1$`, re.Pattern)
		assert.Equal(t, "i", re.Options)
		assert.NotContains(t, f, "date")
	})

	t.Run("date is exact", func(t *testing.T) {
		f := buildListFilter(model.BookingFilter{Date: "2024-05-01"})
		assert.Equal(t, "2024-05-01", f["date"])
	})
}

func TestLockID(t *testing.T) {
	assert.Equal(t, "booking_lock_Room A_2024-05-01", LockID("Room A", "2024-05-01"))
}

func TestMongoBookingRepository(t *testing.T) {
	db := setupMongo(t)
	ctx := context.Background()
	repo := NewMongoBookingRepository(testConfig(), db)
	require.NoError(t, repo.EnsureCollection(ctx))
	require.NoError(t, repo.EnsureCollection(ctx), "validator install is repeatable")
	require.NoError(t, repo.EnsureIndexes(ctx))

	roomA := newBooking("Meeting Room A", "2024-05-01", "11:00", "12:00")
	require.NoError(t, repo.Create(ctx, roomA))
	require.NotEmpty(t, roomA.ID)
	assert.False(t, roomA.CreatedAt.IsZero())

	require.NoError(t, repo.Create(ctx, newBooking("Meeting Room A", "2024-05-02", "09:00", "10:00")))
	require.NoError(t, repo.Create(ctx, newBooking("Room B", "2024-05-01", "09:00", "10:00")))

	t.Run("find by resource and date is exact", func(t *testing.T) {
		got, err := repo.FindByResourceAndDate(ctx, "Meeting Room A", "2024-05-01")
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, roomA.ID, got[0].ID)
		assert.Equal(t, "11:00", got[0].TimeFrom)

		got, err = repo.FindByResourceAndDate(ctx, "meeting room a", "2024-05-01")
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("list by resource suffix ignores case", func(t *testing.T) {
		got, err := repo.Find(ctx, model.BookingFilter{Resource: "room a"})
		require.NoError(t, err)
		assert.Len(t, got, 2)
	})

	t.Run("list by resource and date", func(t *testing.T) {
		got, err := repo.Find(ctx, model.BookingFilter{Resource: "room a", Date: "2024-05-02"})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "09:00", got[0].TimeFrom)
	})

	t.Run("list without match is empty not nil", func(t *testing.T) {
		got, err := repo.Find(ctx, model.BookingFilter{Resource: "Room Z"})
		require.NoError(t, err)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})

	t.Run("delete reports the removed count", func(t *testing.T) {
		n, err := repo.Delete(ctx, roomA.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(1), n)

		n, err = repo.Delete(ctx, roomA.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(0), n)
	})

	t.Run("validator rejects malformed documents", func(t *testing.T) {
		err := repo.Create(ctx, newBooking("Room C", "2024-05-01", "25:00", "26:00"))
		require.Error(t, err)

		err = repo.Create(ctx, newBooking("Room C", "01/05/2024", "09:00", "10:00"))
		require.Error(t, err)
	})

	t.Run("delete rejects malformed id", func(t *testing.T) {
		_, err := repo.Delete(ctx, "not-an-id")
		assert.ErrorIs(t, err, bookingserrors.ErrInvalidID)
	})
}

func TestMongoBookingLockRepository(t *testing.T) {
	db := setupMongo(t)
	ctx := context.Background()
	locks := NewBookingLockRepository(db)
	require.NoError(t, locks.EnsureIndexes(ctx))

	id := LockID("Room A", "2024-05-01")
	newLock := func() *model.BookingLock {
		return &model.BookingLock{
			ID:        id,
			Resource:  "Room A",
			Date:      "2024-05-01",
			ExpiresAt: time.Now().Add(time.Minute),
		}
	}

	_, err := locks.Create(ctx, newLock())
	require.NoError(t, err)

	_, err = locks.Create(ctx, newLock())
	require.Error(t, err)
	assert.True(t, mongo.IsDuplicateKeyError(err))

	require.NoError(t, locks.Delete(ctx, id))

	_, err = locks.Create(ctx, newLock())
	assert.NoError(t, err)
}
