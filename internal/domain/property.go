// Package domain contains the core data types for the Voyageur API.
// This package is imported by every other internal package (repo, service,
// handler) and holds no business logic beyond field-level coercion.
package domain

import (
	"bytes"
	"fmt"
	"strconv"
	"time"
)

// MaxImages is the upper bound on image files per resource creation request.
const MaxImages = 4

// Location is the structured address of a property.
type Location struct {
	Street  string `bson:"street,omitempty" json:"street,omitempty"`
	City    string `bson:"city,omitempty" json:"city,omitempty"`
	State   string `bson:"state,omitempty" json:"state,omitempty"`
	Zipcode string `bson:"zipcode,omitempty" json:"zipcode,omitempty"`
}

// Property is a listing document. The integer ID is assigned by the store at
// creation time and is the key every API route uses; Mongo's own _id is not
// exposed for properties.
//
// Amenities, Rates, and SellerInfo are passed through untouched. The frontend
// owns their shape; the pipeline never inspects them.
type Property struct {
	ID          int            `bson:"id" json:"id"`
	Owner       string         `bson:"owner" json:"owner"`
	Name        string         `bson:"name" json:"name"`
	Type        string         `bson:"type" json:"type"`
	Description string         `bson:"description" json:"description"`
	Location    Location       `bson:"location" json:"location"`
	Beds        FlexInt        `bson:"beds" json:"beds"`
	Baths       FlexInt        `bson:"baths" json:"baths"`
	SquareFeet  FlexInt        `bson:"square_feet" json:"square_feet"`
	Amenities   []string       `bson:"amenities" json:"amenities"`
	Rates       map[string]any `bson:"rates" json:"rates"`
	SellerInfo  map[string]any `bson:"seller_info" json:"seller_info"`
	Images      []string       `bson:"images" json:"images"`
	IsFeatured  bool           `bson:"is_featured" json:"is_featured"`
	CreatedAt   time.Time      `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time      `bson:"updatedAt" json:"updatedAt"`
}

// PropertyUpdate is the explicit partial-update type for PUT /api/properties/{id}.
// Only non-nil fields are merged into the stored document. There is no image
// re-upload path on update; Images replaces the URL list as-is when provided.
type PropertyUpdate struct {
	Owner       *string         `json:"owner,omitempty"`
	Name        *string         `json:"name,omitempty"`
	Type        *string         `json:"type,omitempty"`
	Description *string         `json:"description,omitempty"`
	Location    *Location       `json:"location,omitempty"`
	Beds        *FlexInt        `json:"beds,omitempty"`
	Baths       *FlexInt        `json:"baths,omitempty"`
	SquareFeet  *FlexInt        `json:"square_feet,omitempty"`
	Amenities   *[]string       `json:"amenities,omitempty"`
	Rates       *map[string]any `json:"rates,omitempty"`
	SellerInfo  *map[string]any `json:"seller_info,omitempty"`
	Images      *[]string       `json:"images,omitempty"`
	IsFeatured  *bool           `json:"is_featured,omitempty"`
}

// FlexInt is an int that unmarshals from either a JSON number or a numeric
// string. The frontend's form wizards send both ("3" and 3), so the pipeline
// coerces at decode time instead of validating after the fact.
type FlexInt int

// UnmarshalJSON accepts 3, 3.0, "3", and "3.0". Null and the empty string
// decode to zero.
func (f *FlexInt) UnmarshalJSON(b []byte) error {
	s := string(bytes.Trim(b, `"`))
	if s == "" || s == "null" {
		*f = 0
		return nil
	}
	if n, err := strconv.Atoi(s); err == nil {
		*f = FlexInt(n)
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("%w: %q is not an integer", ErrValidation, s)
	}
	*f = FlexInt(int(v))
	return nil
}

// Int returns the plain int value.
func (f FlexInt) Int() int { return int(f) }
