// Package repo contains all store access logic for the Voyageur API.
// Each resource has its own file with an interface and a Mongo implementation.
// No business logic lives here, only queries and type mapping.
package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sethvargo/go-retry"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Collection names. The counters collection holds one document per sequence
// ({_id: <collection>, seq: <last assigned id>}).
const (
	propertiesColl = "properties"
	tripsColl      = "trips"
	countersColl   = "counters"
)

// Connect opens a Mongo client, verifies connectivity, and returns the named
// database. The startup ping is retried with fibonacci backoff because the
// database container often comes up a few seconds after the API in local
// compose setups.
func Connect(ctx context.Context, uri, dbName string) (*mongo.Client, *mongo.Database, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, nil, fmt.Errorf("repo.Connect: %w", err)
	}

	b := retry.WithMaxRetries(5, retry.NewFibonacci(500*time.Millisecond))
	err = retry.Do(ctx, b, func(ctx context.Context) error {
		return retry.RetryableError(client.Ping(ctx, readpref.Primary()))
	})
	if err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, fmt.Errorf("repo.Connect: ping: %w", err)
	}

	return client, client.Database(dbName), nil
}

// EnsureIndexes creates the unique id indexes and seeds the id counters.
// It runs once at startup, before the server accepts traffic. The unique
// indexes are what make the duplicate-id check race-free: even if two creates
// pass the pre-insert check concurrently, the second insert fails and is
// mapped to a conflict.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	for _, coll := range []string{propertiesColl, tripsColl} {
		_, err := db.Collection(coll).Indexes().CreateOne(ctx, mongo.IndexModel{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true),
		})
		if err != nil {
			return fmt.Errorf("repo.EnsureIndexes: %s: %w", coll, err)
		}
	}
	return seedCounter(ctx, db, propertiesColl)
}

// seedCounter initializes the id counter from the current maximum id in the
// collection, so a database created before counters existed keeps assigning
// max+1. $setOnInsert makes this a no-op if the counter already exists.
func seedCounter(ctx context.Context, db *mongo.Database, coll string) error {
	var doc struct {
		ID int `bson:"id"`
	}
	err := db.Collection(coll).
		FindOne(ctx, bson.D{}, options.FindOne().SetSort(bson.D{{Key: "id", Value: -1}})).
		Decode(&doc)
	if err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
		return fmt.Errorf("repo.seedCounter: %s: %w", coll, err)
	}

	_, err = db.Collection(countersColl).UpdateOne(ctx,
		bson.M{"_id": coll},
		bson.M{"$setOnInsert": bson.M{"seq": doc.ID}},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("repo.seedCounter: %s: %w", coll, err)
	}
	return nil
}

// nextSeq atomically increments and returns the id counter for a collection.
// FindOneAndUpdate with $inc is a single-document atomic operation, so two
// concurrent creates can never be handed the same id.
func nextSeq(ctx context.Context, db *mongo.Database, coll string) (int, error) {
	var out struct {
		Seq int `bson:"seq"`
	}
	err := db.Collection(countersColl).FindOneAndUpdate(ctx,
		bson.M{"_id": coll},
		bson.M{"$inc": bson.M{"seq": 1}},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&out)
	if err != nil {
		return 0, err
	}
	return out.Seq, nil
}
