// Package handler implements the HTTP handlers for the Voyageur API.
// All handlers are methods on Server. Methods are split into resource-specific
// files (property.go, trip.go, payment.go) but share the same Server struct so
// they can access its dependencies.
package handler

import (
	"context"

	"github.com/go-chi/chi/v5"

	"github.com/voyageur/backend/internal/domain"
	"github.com/voyageur/backend/internal/media"
)

// PropertyServicer defines the business operations the property handlers
// depend on. Defining the interface here (in the consumer package) follows the
// Go convention: "accept interfaces, return concrete types". It lets handler
// tests inject a mock without touching the database or service layer.
type PropertyServicer interface {
	Create(ctx context.Context, p domain.Property, files []media.File) (domain.Property, error)
	GetByID(ctx context.Context, id int) (domain.Property, error)
	List(ctx context.Context, page domain.PaginationParams) ([]domain.Property, error)
	ListFeatured(ctx context.Context) ([]domain.Property, error)
	Update(ctx context.Context, id int, upd domain.PropertyUpdate) error
	Delete(ctx context.Context, id int) error
}

// TripServicer defines the business operations the trip handlers depend on.
type TripServicer interface {
	Create(ctx context.Context, t domain.Trip, files []media.File) (domain.Trip, error)
	GetByID(ctx context.Context, id int) (domain.Trip, error)
	List(ctx context.Context, page domain.PaginationParams) ([]domain.Trip, error)
	Update(ctx context.Context, id int, upd domain.TripUpdate) error
	Delete(ctx context.Context, id int) error
}

// TripExporter provides the flat rows for the trips CSV export.
type TripExporter interface {
	Rows(ctx context.Context) ([]domain.TripExportRow, error)
}

// PaymentServicer creates payment intents. Nil when payments are not configured.
type PaymentServicer interface {
	CreateIntent(ctx context.Context, amount int64, currency string) (string, error)
}

// Pinger verifies the store is reachable; used by the health check.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Server holds the handler dependencies for all API endpoints.
type Server struct {
	properties PropertyServicer
	trips      TripServicer
	export     TripExporter
	payments   PaymentServicer
	store      Pinger
}

// NewServer constructs the Server with all its dependencies.
// payments may be nil; the payment endpoint then reports 503.
func NewServer(properties PropertyServicer, trips TripServicer, export TripExporter, payments PaymentServicer, store Pinger) *Server {
	return &Server{
		properties: properties,
		trips:      trips,
		export:     export,
		payments:   payments,
		store:      store,
	}
}

// Routes returns the full API router.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/healthz", s.Health)

	r.Route("/api", func(r chi.Router) {
		r.Route("/properties", func(r chi.Router) {
			r.Get("/", s.ListProperties)
			r.Post("/", s.CreateProperty)
			r.Get("/featured", s.ListFeaturedProperties)
			r.Get("/{id}", s.GetProperty)
			r.Put("/{id}", s.UpdateProperty)
			r.Delete("/{id}", s.DeleteProperty)
		})

		r.Route("/trips", func(r chi.Router) {
			r.Get("/", s.ListTrips)
			r.Post("/", s.CreateTrip)
			r.Get("/export", s.ExportTrips)
			r.Get("/{id}", s.GetTrip)
			r.Put("/{id}", s.UpdateTrip)
			r.Delete("/{id}", s.DeleteTrip)
		})

		r.Post("/payments/intent", s.CreatePaymentIntent)
	})

	return r
}
