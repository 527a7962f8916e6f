package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/voyageur/backend/internal/domain"
)

// TripRepo defines the persistence operations for Trips.
// All lookups are keyed by the client-supplied integer id, never by Mongo's _id.
type TripRepo interface {
	// Ping verifies the store is reachable. The trip ingestion pipeline checks
	// this before the duplicate-id check so an unreachable store surfaces as an
	// upstream failure rather than a spurious "id is free".
	Ping(ctx context.Context) error

	// ExistsByID reports whether a trip with the given id already exists.
	ExistsByID(ctx context.Context, id int) (bool, error)

	// Create inserts a fully-assembled trip document and returns it with the
	// generated _id populated. Returns domain.ErrConflict on a duplicate id.
	Create(ctx context.Context, t domain.Trip) (domain.Trip, error)

	// GetByID retrieves a single trip by its integer id.
	// Returns domain.ErrNotFound if no trip with that id exists.
	GetByID(ctx context.Context, id int) (domain.Trip, error)

	// List returns trips ordered by id ascending, honoring the paging params.
	List(ctx context.Context, page domain.PaginationParams) ([]domain.Trip, error)

	// Update merges the provided fields into an existing document and
	// refreshes updatedAt. Returns domain.ErrNotFound if no document matched.
	Update(ctx context.Context, id int, upd domain.TripUpdate) error

	// Delete removes a trip by id. Returns domain.ErrNotFound if no document
	// matched. Associated storage assets are not cleaned up.
	Delete(ctx context.Context, id int) error
}

// mongoTripRepo is the Mongo implementation of TripRepo.
type mongoTripRepo struct {
	db *mongo.Database
}

// NewTripRepo constructs a TripRepo backed by the provided database.
func NewTripRepo(db *mongo.Database) TripRepo {
	return &mongoTripRepo{db: db}
}

func (r *mongoTripRepo) coll() *mongo.Collection {
	return r.db.Collection(tripsColl)
}

func (r *mongoTripRepo) Ping(ctx context.Context) error {
	if err := r.db.Client().Ping(ctx, readpref.Primary()); err != nil {
		return fmt.Errorf("repo.TripRepo.Ping: %w", err)
	}
	return nil
}

func (r *mongoTripRepo) ExistsByID(ctx context.Context, id int) (bool, error) {
	n, err := r.coll().CountDocuments(ctx, bson.M{"id": id}, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("repo.TripRepo.ExistsByID: %w", err)
	}
	return n > 0, nil
}

func (r *mongoTripRepo) Create(ctx context.Context, t domain.Trip) (domain.Trip, error) {
	res, err := r.coll().InsertOne(ctx, t)
	if err != nil {
		// The unique index on id backs the pre-insert duplicate check; a
		// concurrent create that slipped past the check lands here.
		if mongo.IsDuplicateKeyError(err) {
			return domain.Trip{}, fmt.Errorf("repo.TripRepo.Create: %w", domain.ErrConflict)
		}
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Create: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		t.MongoID = oid
	}
	return t, nil
}

func (r *mongoTripRepo) GetByID(ctx context.Context, id int) (domain.Trip, error) {
	var t domain.Trip
	err := r.coll().FindOne(ctx, bson.M{"id": id}).Decode(&t)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return domain.Trip{}, fmt.Errorf("repo.TripRepo.GetByID: %w", domain.ErrNotFound)
		}
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.GetByID: %w", err)
	}
	return t, nil
}

func (r *mongoTripRepo) List(ctx context.Context, page domain.PaginationParams) ([]domain.Trip, error) {
	opts := options.Find().SetSort(bson.D{{Key: "id", Value: 1}})
	if page.Limit > 0 {
		opts.SetSkip(int64(page.Offset())).SetLimit(int64(page.Limit))
	}

	cur, err := r.coll().Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("repo.TripRepo.List: %w", err)
	}
	defer cur.Close(ctx)

	var trips []domain.Trip
	if err := cur.All(ctx, &trips); err != nil {
		return nil, fmt.Errorf("repo.TripRepo.List: decode: %w", err)
	}
	return trips, nil
}

func (r *mongoTripRepo) Update(ctx context.Context, id int, upd domain.TripUpdate) error {
	set := tripSet(upd)
	set["updatedAt"] = time.Now().UTC()

	res, err := r.coll().UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("repo.TripRepo.Update: %w", err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("repo.TripRepo.Update: %w", domain.ErrNotFound)
	}
	return nil
}

func (r *mongoTripRepo) Delete(ctx context.Context, id int) error {
	res, err := r.coll().DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("repo.TripRepo.Delete: %w", err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("repo.TripRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

// tripSet builds the $set document from the non-nil fields of a partial
// update. The integer id, _id, and the timestamps are never client-writable.
func tripSet(u domain.TripUpdate) bson.M {
	set := bson.M{}
	if u.TripName != nil {
		set["tripName"] = *u.TripName
	}
	if u.Destination != nil {
		set["destination"] = *u.Destination
	}
	if u.StartDate != nil {
		set["startDate"] = *u.StartDate
	}
	if u.EndDate != nil {
		set["endDate"] = *u.EndDate
	}
	if u.Activities != nil {
		set["activities"] = *u.Activities
	}
	if u.Expenses != nil {
		set["expenses"] = *u.Expenses
	}
	if u.TotalExpenses != nil {
		set["totalExpenses"] = *u.TotalExpenses
	}
	if u.JournalEntries != nil {
		set["journalEntries"] = *u.JournalEntries
	}
	if u.Images != nil {
		set["images"] = *u.Images
	}
	return set
}
