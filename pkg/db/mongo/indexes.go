package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
)

// EnsureIndexes creates the given indexes on coll. Creating an index that
// already exists with the same definition is a no-op, so this runs on every
// startup.
func EnsureIndexes(ctx context.Context, coll *mongo.Collection, models []mongo.IndexModel) error {
	if len(models) == 0 {
		return nil
	}
	if _, err := coll.Indexes().CreateMany(ctx, models); err != nil {
		return fmt.Errorf("failed to ensure indexes for %s: %w", coll.Name(), err)
	}
	return nil
}
