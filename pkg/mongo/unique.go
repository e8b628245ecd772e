package mongo

import (
	"context"
	"fmt"
	"maps"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// IsDuplicateKeyError reports whether err is a duplicate key violation
// (codes 11000, 11001, 12582 and the E11000 variant of 16460).
func IsDuplicateKeyError(err error) bool {
	return mongo.IsDuplicateKeyError(err)
}

// EnsureUniqueIndex creates a unique ascending index on field.
func EnsureUniqueIndex(ctx context.Context, coll *mongo.Collection, field string) error {
	if field == "" {
		return ErrInvalidField
	}

	_, err := coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: field, Value: 1}},
		Options: options.Index().SetUnique(true).SetName(field + "_unique"),
	})
	if err != nil {
		return fmt.Errorf("mongo: create unique index on %s: %w", field, err)
	}
	return nil
}

// Exists returns an existence oracle matching documents where field equals
// the candidate.
func Exists(coll *mongo.Collection, field string) func(context.Context, string) (bool, error) {
	return func(ctx context.Context, value string) (bool, error) {
		if field == "" {
			return false, ErrInvalidField
		}

		n, err := coll.CountDocuments(ctx, bson.D{{Key: field, Value: value}}, options.Count().SetLimit(1))
		if err != nil {
			return false, fmt.Errorf("mongo: exists %s.%s: %w", coll.Name(), field, err)
		}
		return n > 0, nil
	}
}

// Claim returns an insert function storing a document with field set to the
// candidate plus the extra fields. It relies on a unique index on field; see
// EnsureUniqueIndex. The driver error is returned unwrapped.
func Claim(coll *mongo.Collection, field string, extra bson.M) func(context.Context, string) (string, error) {
	return func(ctx context.Context, value string) (string, error) {
		if field == "" {
			return "", ErrInvalidField
		}

		doc := maps.Clone(extra)
		if doc == nil {
			doc = bson.M{}
		}
		doc[field] = value

		if _, err := coll.InsertOne(ctx, doc); err != nil {
			return "", err
		}
		return value, nil
	}
}
