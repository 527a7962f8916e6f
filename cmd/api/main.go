// Package main is the entry point for the Voyageur API server.
// Its sole responsibility is wiring dependencies together and starting the
// server. No business logic belongs here.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/voyageur/backend/internal/config"
	"github.com/voyageur/backend/internal/handler"
	"github.com/voyageur/backend/internal/media"
	"github.com/voyageur/backend/internal/middleware"
	"github.com/voyageur/backend/internal/repo"
	"github.com/voyageur/backend/internal/service"
)

func main() {
	// --- Config -----------------------------------------------------------
	cfg, err := config.Load()
	if err != nil {
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}

	// --- Logger -----------------------------------------------------------
	// JSON handler writes machine-readable output suitable for log aggregators.
	var logLevel slog.Level
	if err := logLevel.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		logLevel = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	// --- Database ---------------------------------------------------------
	// Connect retries the initial ping internally, then EnsureIndexes creates
	// the unique id indexes and seeds the id counters before traffic arrives.
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	client, db, err := repo.Connect(ctx, cfg.MongoURI, cfg.MongoDB)
	cancel()
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			slog.Error("database disconnect error", "error", err)
		}
	}()

	if err := repo.EnsureIndexes(context.Background(), db); err != nil {
		slog.Error("failed to prepare database", "error", err)
		os.Exit(1)
	}
	slog.Info("database connection established", "db", cfg.MongoDB)

	// --- Object storage ---------------------------------------------------
	uploader, err := media.NewCloudinaryUploader(cfg.CloudinaryURL)
	if err != nil {
		slog.Error("failed to configure object storage", "error", err)
		os.Exit(1)
	}

	// --- Services and handlers --------------------------------------------
	propertyRepo := repo.NewPropertyRepo(db)
	tripRepo := repo.NewTripRepo(db)

	var payments handler.PaymentServicer
	if cfg.StripeSecretKey != "" {
		payments = service.NewPaymentService(cfg.StripeSecretKey)
	} else {
		slog.Warn("STRIPE_SECRET_KEY not set; payment endpoint disabled")
	}

	srv := handler.NewServer(
		service.NewPropertyService(propertyRepo, uploader),
		service.NewTripService(tripRepo, uploader),
		service.NewExportService(tripRepo),
		payments,
		tripRepo,
	)

	// --- Router -----------------------------------------------------------
	// Middleware order matters: request IDs and client IPs must be resolved
	// before logging, and CORS must run before the body size limit.
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewSlogLogger(logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.NewCORSHandler(cfg.CORSOrigins))
	r.Use(middleware.NewMaxBodySizeHandler(cfg.MaxUploadBytes))
	r.Mount("/", srv.Routes())

	// --- HTTP Server ------------------------------------------------------
	// Write timeout leaves headroom for the parallel image uploads inside
	// creation requests; the pipeline itself enforces no timeout of its own.
	httpSrv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown: wait for an OS signal, then give in-flight requests
	// up to 15 seconds to complete before forcefully closing.
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "addr", httpSrv.Addr)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-stop
	slog.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown error", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}
