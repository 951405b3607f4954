package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"cloud.google.com/go/pubsub"
	gcs "cloud.google.com/go/storage"
	firebase "firebase.google.com/go/v4"
	"go.uber.org/zap"

	"finitefield.org/roster-admin/internal/admin/config"
	"finitefield.org/roster-admin/internal/admin/events"
	"finitefield.org/roster-admin/internal/admin/export"
	"finitefield.org/roster-admin/internal/admin/httpserver"
	"finitefield.org/roster-admin/internal/admin/metrics"
	"finitefield.org/roster-admin/internal/admin/observability"
	"finitefield.org/roster-admin/internal/admin/orgchart"
	"finitefield.org/roster-admin/internal/admin/reports"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("admin: %v", err)
	}
}

func run() error {
	rootCtx := context.Background()

	cfg, err := config.Load(rootCtx)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, err := observability.NewLogger(cfg.Log.Level)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	dataset, err := loadDataset(rootCtx, cfg.Dataset, logger)
	if err != nil {
		return err
	}

	var publisher events.Publisher = events.NewLogPublisher(observability.Named(logger, "events"))
	if cfg.Events.Topic != "" {
		pub, closeFn, err := buildPubSubPublisher(rootCtx, cfg.Events)
		if err != nil {
			return err
		}
		defer closeFn()
		publisher = pub
		logger.Info("mapping events published to pubsub", zap.String("topic", cfg.Events.Topic))
	}

	service, err := reports.NewStaticService(dataset,
		reports.WithLogger(observability.Named(logger, "reports")),
		reports.WithPublisher(publisher),
	)
	if err != nil {
		return fmt.Errorf("init reports service: %w", err)
	}

	var lookup orgchart.SupervisorLookup = service
	if cfg.SupervisorsAPI.BaseURL != "" {
		remote, err := orgchart.NewHTTPLookup(cfg.SupervisorsAPI.BaseURL, &http.Client{Timeout: cfg.SupervisorsAPI.Timeout})
		if err != nil {
			return fmt.Errorf("init supervisor lookup: %w", err)
		}
		lookup = remote
		logger.Info("org chart resolves supervisors remotely", zap.String("base_url", cfg.SupervisorsAPI.BaseURL))
	}

	var archiver export.Archiver
	if cfg.Exports.Bucket != "" {
		client, err := gcs.NewClient(rootCtx)
		if err != nil {
			return fmt.Errorf("init storage client: %w", err)
		}
		defer client.Close()
		gcsArchiver, err := export.NewGCSArchiver(client, cfg.Exports.Bucket)
		if err != nil {
			return fmt.Errorf("init export archiver: %w", err)
		}
		archiver = gcsArchiver
		logger.Info("exports archived to cloud storage", zap.String("bucket", cfg.Exports.Bucket))
	}

	srv, err := httpserver.New(httpserver.Config{
		Address:      cfg.Server.Address,
		BasePath:     cfg.Server.BasePath,
		Environment:  cfg.Server.Environment,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		Reports:      service,
		OrgChart:     orgchart.NewBuilder(lookup, orgchart.WithLogger(observability.Named(logger, "orgchart"))),
		Archiver:     archiver,
		Metrics:      metrics.New(),
		Logger:       logger,
	})
	if err != nil {
		return fmt.Errorf("init http server: %w", err)
	}

	ctx, stop := signal.NotifyContext(rootCtx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	logger.Info("admin server listening",
		zap.String("addr", cfg.Server.Address),
		zap.String("base_path", cfg.Server.BasePath),
		zap.String("environment", cfg.Server.Environment),
	)

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("http server failed: %w", err)
		}
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(rootCtx, cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	logger.Info("admin server stopped")
	return nil
}

// loadDataset seeds from Firestore, then a seed file, then the embedded dataset.
func loadDataset(ctx context.Context, cfg config.DatasetConfig, logger *zap.Logger) (reports.Dataset, error) {
	switch {
	case cfg.FirestoreProjectID != "":
		if cfg.FirestoreEmulatorHost != "" {
			if err := os.Setenv("FIRESTORE_EMULATOR_HOST", cfg.FirestoreEmulatorHost); err != nil {
				return reports.Dataset{}, fmt.Errorf("set firestore emulator host: %w", err)
			}
		}
		app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: cfg.FirestoreProjectID})
		if err != nil {
			return reports.Dataset{}, fmt.Errorf("init firebase app: %w", err)
		}
		client, err := app.Firestore(ctx)
		if err != nil {
			return reports.Dataset{}, fmt.Errorf("init firestore client: %w", err)
		}
		defer client.Close()

		ds, err := reports.NewFirestoreSource(client, reports.FirestoreConfig{Logger: logger}).Load(ctx)
		if err != nil {
			return reports.Dataset{}, fmt.Errorf("load dataset from firestore: %w", err)
		}
		logger.Info("dataset loaded from firestore", zap.String("project", cfg.FirestoreProjectID))
		return ds, nil
	case cfg.SeedFile != "":
		ds, err := reports.LoadDatasetFile(cfg.SeedFile)
		if err != nil {
			return reports.Dataset{}, fmt.Errorf("load dataset file: %w", err)
		}
		logger.Info("dataset loaded from file", zap.String("path", cfg.SeedFile))
		return ds, nil
	default:
		ds, err := reports.SeedDataset()
		if err != nil {
			return reports.Dataset{}, fmt.Errorf("load embedded dataset: %w", err)
		}
		return ds, nil
	}
}

func buildPubSubPublisher(ctx context.Context, cfg config.EventsConfig) (events.Publisher, func(), error) {
	client, err := pubsub.NewClient(ctx, cfg.ProjectID)
	if err != nil {
		return nil, nil, fmt.Errorf("init pubsub client: %w", err)
	}
	pub, err := events.NewPubSubPublisher(client.Topic(cfg.Topic))
	if err != nil {
		_ = client.Close()
		return nil, nil, fmt.Errorf("init pubsub publisher: %w", err)
	}
	return pub, func() {
		pub.Stop()
		_ = client.Close()
	}, nil
}
