package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/carelens/carelens/internal/adapters/fixtures"
	"github.com/carelens/carelens/internal/adapters/questions"
	"github.com/carelens/carelens/internal/adapters/storage/sqlite"
	"github.com/carelens/carelens/internal/assist/engine"
	"github.com/carelens/carelens/internal/config"
	"github.com/carelens/carelens/internal/core/ports"
	"github.com/carelens/carelens/internal/server"
	"github.com/carelens/carelens/internal/telemetry"
)

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	shutdownTracer, err := telemetry.InitTracer("carelens", logger)
	if err != nil {
		log.Fatalf("Failed to initialize tracer: %v", err)
	}
	defer func() {
		if err := shutdownTracer(context.Background()); err != nil {
			logger.Error("failed to shutdown tracer", slog.String("error", err.Error()))
		}
	}()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	source, cleanup, err := buildSource(cfg, logger)
	if err != nil {
		log.Fatalf("Failed to build data source: %v", err)
	}
	defer cleanup()

	clock := time.Now
	if ref, ok := cfg.ReferenceTime(); ok {
		logger.Info("reasoning clock pinned", slog.Time("reference_now", ref))
		clock = func() time.Time { return ref }
	}

	handler := server.NewHandler(logger, engine.New(logger), source, questions.New(source), clock)
	srv := server.New(cfg.Server.Port, logger, handler)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			log.Fatalf("Server failed: %v", err)
		}
	case <-sigChan:
		logger.Info("Shutdown signal received, stopping server...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("Server shutdown complete")
}

// buildSource selects the configured patient-history backend. The sqlite
// backend seeds itself from the live fixture set when the database is empty
// so a fresh deployment still has something to reason over.
func buildSource(cfg *config.Config, logger *slog.Logger) (ports.DataSource, func(), error) {
	switch cfg.Source.Backend {
	case config.BackendSQLite:
		store, err := sqlite.Open(cfg.Storage.DSN)
		if err != nil {
			return nil, nil, err
		}
		if err := seedIfEmpty(store, logger); err != nil {
			store.Close()
			return nil, nil, err
		}
		logger.Info("using sqlite data source", slog.String("dsn", cfg.Storage.DSN))
		return store, func() { store.Close() }, nil

	default:
		mode := ports.SourceMode(cfg.Source.Mode)
		src, err := fixtures.New(mode)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("using fixture data source", slog.String("mode", string(mode)))
		return src, func() {}, nil
	}
}

func seedIfEmpty(store *sqlite.Store, logger *slog.Logger) error {
	ctx := context.Background()

	src, err := fixtures.New(ports.ModeLive)
	if err != nil {
		return err
	}
	patient, err := src.PatientContext(ctx, "")
	if err != nil {
		return err
	}

	if _, err := store.PatientContext(ctx, patient.PatientID); err == nil {
		return nil
	}

	timeline, err := src.Timeline(ctx, "")
	if err != nil {
		return err
	}
	if err := store.SeedPatient(ctx, patient, timeline); err != nil {
		return err
	}

	logger.Info("seeded sqlite database from fixtures", slog.String("patient_id", patient.PatientID))
	return nil
}
