package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"campuscoffee/internal/osm"
	"campuscoffee/internal/platform/config"
	"campuscoffee/internal/platform/httpserver"
	"campuscoffee/internal/platform/logger"
	"campuscoffee/internal/platform/middleware"
	"campuscoffee/internal/pos"
	"campuscoffee/internal/pos/metrics"
	"campuscoffee/internal/pos/service"
	"campuscoffee/internal/pos/store"
)

// main wires high-level dependencies and keeps the server lifecycle small.
// Business logic lives in the internal service packages.
func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	log := logger.New(cfg.LogLevel, cfg.LogFormat)

	posStore, closeStore, err := newStore(cfg, log)
	if err != nil {
		log.Error("failed to initialize store", "error", err)
		os.Exit(1)
	}
	defer closeStore()

	osmClient := osm.NewClient(cfg.OSMBaseURL, cfg.OSMTimeout, log)
	posMetrics := metrics.New()
	posService := pos.NewService(posStore, osmClient, log, posMetrics)
	posHandler := pos.NewHandler(posService, log)

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger(log))
	router.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	router.Handle("/metrics", promhttp.Handler())
	posHandler.Register(router)

	srv := httpserver.New(cfg.Addr, router)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting campuscoffee server", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
	log.Info("shutdown complete")
}

// newStore selects the persistence backend: PostgreSQL when POSTGRES_URL is
// set, otherwise the in-memory store for local development.
func newStore(cfg *config.Config, log *slog.Logger) (service.Store, func(), error) {
	if cfg.PostgresURL == "" {
		log.Info("using in-memory POS store")
		return store.NewInMemory(), func() {}, nil
	}

	db, err := sql.Open("postgres", cfg.PostgresURL)
	if err != nil {
		return nil, nil, err
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, nil, err
	}

	pg := store.NewPostgres(db)
	if err := pg.EnsureSchema(context.Background()); err != nil {
		db.Close()
		return nil, nil, err
	}
	log.Info("using PostgreSQL POS store")
	return pg, func() { db.Close() }, nil
}
