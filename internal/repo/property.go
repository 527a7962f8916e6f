package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/voyageur/backend/internal/domain"
)

// PropertyRepo defines the persistence operations for Properties.
// The service layer depends on this interface, not the concrete Mongo
// implementation, which allows the service to be unit-tested with a mock.
type PropertyRepo interface {
	// NextID atomically reserves and returns the next integer id.
	NextID(ctx context.Context) (int, error)

	// Create inserts a fully-assembled property document.
	// Returns domain.ErrConflict if the id is already taken.
	Create(ctx context.Context, p domain.Property) (domain.Property, error)

	// GetByID retrieves a single property by its integer id.
	// Returns domain.ErrNotFound if no property with that id exists.
	GetByID(ctx context.Context, id int) (domain.Property, error)

	// List returns properties ordered by id ascending, honoring the paging params.
	List(ctx context.Context, page domain.PaginationParams) ([]domain.Property, error)

	// ListFeatured returns all featured properties ordered by id ascending.
	ListFeatured(ctx context.Context) ([]domain.Property, error)

	// Update merges the provided fields into an existing document and
	// refreshes updatedAt. Returns domain.ErrNotFound if no document matched.
	Update(ctx context.Context, id int, upd domain.PropertyUpdate) error

	// Delete removes a property by id. Returns domain.ErrNotFound if no
	// document matched. Associated storage assets are not cleaned up.
	Delete(ctx context.Context, id int) error
}

// mongoPropertyRepo is the Mongo implementation of PropertyRepo.
type mongoPropertyRepo struct {
	db *mongo.Database
}

// NewPropertyRepo constructs a PropertyRepo backed by the provided database.
func NewPropertyRepo(db *mongo.Database) PropertyRepo {
	return &mongoPropertyRepo{db: db}
}

func (r *mongoPropertyRepo) coll() *mongo.Collection {
	return r.db.Collection(propertiesColl)
}

func (r *mongoPropertyRepo) NextID(ctx context.Context) (int, error) {
	id, err := nextSeq(ctx, r.db, propertiesColl)
	if err != nil {
		return 0, fmt.Errorf("repo.PropertyRepo.NextID: %w", err)
	}
	return id, nil
}

func (r *mongoPropertyRepo) Create(ctx context.Context, p domain.Property) (domain.Property, error) {
	if _, err := r.coll().InsertOne(ctx, p); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.Property{}, fmt.Errorf("repo.PropertyRepo.Create: %w", domain.ErrConflict)
		}
		return domain.Property{}, fmt.Errorf("repo.PropertyRepo.Create: %w", err)
	}
	return p, nil
}

func (r *mongoPropertyRepo) GetByID(ctx context.Context, id int) (domain.Property, error) {
	var p domain.Property
	err := r.coll().FindOne(ctx, bson.M{"id": id}).Decode(&p)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return domain.Property{}, fmt.Errorf("repo.PropertyRepo.GetByID: %w", domain.ErrNotFound)
		}
		return domain.Property{}, fmt.Errorf("repo.PropertyRepo.GetByID: %w", err)
	}
	return p, nil
}

func (r *mongoPropertyRepo) List(ctx context.Context, page domain.PaginationParams) ([]domain.Property, error) {
	opts := options.Find().SetSort(bson.D{{Key: "id", Value: 1}})
	if page.Limit > 0 {
		opts.SetSkip(int64(page.Offset())).SetLimit(int64(page.Limit))
	}
	return r.findAll(ctx, bson.M{}, opts, "List")
}

func (r *mongoPropertyRepo) ListFeatured(ctx context.Context) ([]domain.Property, error) {
	opts := options.Find().SetSort(bson.D{{Key: "id", Value: 1}})
	return r.findAll(ctx, bson.M{"is_featured": true}, opts, "ListFeatured")
}

func (r *mongoPropertyRepo) findAll(ctx context.Context, filter bson.M, opts *options.FindOptions, op string) ([]domain.Property, error) {
	cur, err := r.coll().Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("repo.PropertyRepo.%s: %w", op, err)
	}
	defer cur.Close(ctx)

	var props []domain.Property
	if err := cur.All(ctx, &props); err != nil {
		return nil, fmt.Errorf("repo.PropertyRepo.%s: decode: %w", op, err)
	}
	return props, nil
}

func (r *mongoPropertyRepo) Update(ctx context.Context, id int, upd domain.PropertyUpdate) error {
	set := propertySet(upd)
	set["updatedAt"] = time.Now().UTC()

	res, err := r.coll().UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("repo.PropertyRepo.Update: %w", err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("repo.PropertyRepo.Update: %w", domain.ErrNotFound)
	}
	return nil
}

func (r *mongoPropertyRepo) Delete(ctx context.Context, id int) error {
	res, err := r.coll().DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("repo.PropertyRepo.Delete: %w", err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("repo.PropertyRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

// propertySet builds the $set document from the non-nil fields of a partial
// update. The integer id and the timestamps are never client-writable.
func propertySet(u domain.PropertyUpdate) bson.M {
	set := bson.M{}
	if u.Owner != nil {
		set["owner"] = *u.Owner
	}
	if u.Name != nil {
		set["name"] = *u.Name
	}
	if u.Type != nil {
		set["type"] = *u.Type
	}
	if u.Description != nil {
		set["description"] = *u.Description
	}
	if u.Location != nil {
		set["location"] = *u.Location
	}
	if u.Beds != nil {
		set["beds"] = u.Beds.Int()
	}
	if u.Baths != nil {
		set["baths"] = u.Baths.Int()
	}
	if u.SquareFeet != nil {
		set["square_feet"] = u.SquareFeet.Int()
	}
	if u.Amenities != nil {
		set["amenities"] = *u.Amenities
	}
	if u.Rates != nil {
		set["rates"] = *u.Rates
	}
	if u.SellerInfo != nil {
		set["seller_info"] = *u.SellerInfo
	}
	if u.Images != nil {
		set["images"] = *u.Images
	}
	if u.IsFeatured != nil {
		set["is_featured"] = *u.IsFeatured
	}
	return set
}
