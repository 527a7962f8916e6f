package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// JournalEntry is a single dated journal note on a trip.
type JournalEntry struct {
	Date  string `bson:"date" json:"date"`
	Entry string `bson:"entry" json:"entry"`
}

// Trip is a travel-journal document. Unlike Property, the integer ID is
// supplied by the client at creation time and must be positive and unique;
// the store's own _id stays internal and never appears in API responses.
type Trip struct {
	MongoID primitive.ObjectID `bson:"_id,omitempty" json:"-"`

	ID             int                `bson:"id" json:"id"`
	TripName       string             `bson:"tripName" json:"tripName"`
	Destination    string             `bson:"destination" json:"destination"`
	StartDate      string             `bson:"startDate" json:"startDate"`
	EndDate        string             `bson:"endDate" json:"endDate"`
	Activities     []string           `bson:"activities" json:"activities"`
	Expenses       map[string]float64 `bson:"expenses" json:"expenses"`
	TotalExpenses  float64            `bson:"totalExpenses" json:"totalExpenses"`
	JournalEntries []JournalEntry     `bson:"journalEntries" json:"journalEntries"`
	Images         []string           `bson:"images" json:"images"`
	CreatedAt      time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// TripUpdate is the explicit partial-update type for PUT /api/trips/{id}.
// Only non-nil fields are merged. TotalExpenses is not recomputed on update;
// it is only derived from Expenses at creation time.
type TripUpdate struct {
	TripName       *string             `json:"tripName,omitempty"`
	Destination    *string             `json:"destination,omitempty"`
	StartDate      *string             `json:"startDate,omitempty"`
	EndDate        *string             `json:"endDate,omitempty"`
	Activities     *[]string           `json:"activities,omitempty"`
	Expenses       *map[string]float64 `json:"expenses,omitempty"`
	TotalExpenses  *float64            `json:"totalExpenses,omitempty"`
	JournalEntries *[]JournalEntry     `json:"journalEntries,omitempty"`
	Images         *[]string           `json:"images,omitempty"`
}
