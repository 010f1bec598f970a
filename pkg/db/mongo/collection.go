package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ValidationLevelModerate applies the validator to inserts and to updates of
// documents that already satisfy it, so records written before the validator
// existed stay readable and deletable.
const ValidationLevelModerate = "moderate"

// EnsureCollection creates the named collection with the given JSON schema
// validator, or installs the validator with collMod when the collection
// already exists.
func EnsureCollection(ctx context.Context, db *mongo.Database, name string, validator bson.M) error {
	existing, err := db.ListCollectionNames(ctx, bson.D{{Key: "name", Value: name}})
	if err != nil {
		return fmt.Errorf("failed to list collections: %w", err)
	}

	if len(existing) == 0 {
		opts := options.CreateCollection().
			SetValidator(validator).
			SetValidationLevel(ValidationLevelModerate)
		if err := db.CreateCollection(ctx, name, opts); err != nil {
			return fmt.Errorf("failed creating %s: %w", name, err)
		}
		return nil
	}

	command := bson.D{
		{Key: "collMod", Value: name},
		{Key: "validator", Value: validator},
		{Key: "validationLevel", Value: ValidationLevelModerate},
	}
	if err := db.RunCommand(ctx, command).Err(); err != nil {
		return fmt.Errorf("failed updating validator for %s: %w", name, err)
	}
	return nil
}
