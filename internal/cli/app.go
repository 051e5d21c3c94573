package cli

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/emiliopalmerini/labstats/internal/adapters/otel"
	"github.com/emiliopalmerini/labstats/internal/adapters/turso"
	"github.com/emiliopalmerini/labstats/internal/infrastructure/config"
	"github.com/emiliopalmerini/labstats/internal/infrastructure/database"
	"github.com/emiliopalmerini/labstats/internal/logging"
	"github.com/emiliopalmerini/labstats/internal/ports"
	"github.com/emiliopalmerini/labstats/internal/statistics"
)

// AppContext holds all shared dependencies for CLI commands.
type AppContext struct {
	Config   *config.Config
	Logger   *zap.Logger
	DB       *database.Client
	Repos    *turso.Repositories
	Users    ports.UserRepository
	Service  *statistics.Service
	Exporter ports.MetricsExporter
}

// openApp is swapped in tests to run commands against in-memory repositories.
var openApp = NewAppContext

// NewAppContext creates an AppContext with all dependencies initialized.
// Extra exporters receive engine metrics alongside OTEL.
func NewAppContext(ctx context.Context, extra ...ports.MetricsExporter) (*AppContext, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := logging.New(cfg.LogDevelopment)
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}

	db, err := database.Open(ctx, database.Config{
		URL:       cfg.Database.URL,
		AuthToken: cfg.Database.AuthToken,
		Driver:    cfg.Database.Driver,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	exporter := newMetricsExporter(ctx, logger)
	repos := turso.NewRepositories(db.DB)

	opts := []statistics.Option{
		statistics.WithLogger(logger),
		statistics.WithConcurrency(cfg.Concurrency),
		statistics.WithMetricsExporter(exporter),
	}
	for _, e := range extra {
		opts = append(opts, statistics.WithMetricsExporter(e))
	}

	return &AppContext{
		Config:   cfg,
		Logger:   logger,
		DB:       db,
		Repos:    repos,
		Users:    repos.Users,
		Service:  statistics.NewService(serviceRepositories(repos), opts...),
		Exporter: exporter,
	}, nil
}

func serviceRepositories(r *turso.Repositories) statistics.Repositories {
	return statistics.Repositories{
		Experiments:     r.Experiments,
		Detections:      r.Detections,
		Concentrations:  r.Concentrations,
		General:         r.General,
		Users:           r.Users,
		ExperimentTypes: r.ExperimentTypes,
	}
}

// newMetricsExporter falls back to a disabled exporter when OTEL is off or misconfigured.
func newMetricsExporter(ctx context.Context, logger *zap.Logger) ports.MetricsExporter {
	disabled, _ := otel.NewExporter(ctx, otel.Config{})
	cfg, err := otel.LoadConfig()
	if err != nil {
		logger.Warn("invalid OTEL configuration, metrics export disabled", zap.Error(err))
		return disabled
	}
	exporter, err := otel.NewExporter(ctx, cfg)
	if err != nil {
		logger.Warn("OTEL exporter unavailable, metrics export disabled", zap.Error(err))
		return disabled
	}
	if !exporter.Enabled() {
		logger.Debug("OTEL metrics export disabled")
	}
	return exporter
}

// Close releases all resources held by the AppContext.
func (a *AppContext) Close(ctx context.Context) error {
	var errs []error
	if a.Exporter != nil {
		errs = append(errs, a.Exporter.Close(ctx))
	}
	if a.Logger != nil {
		_ = a.Logger.Sync()
	}
	if a.DB != nil {
		errs = append(errs, a.DB.Close())
	}
	return errors.Join(errs...)
}

// withApp opens the app, runs fn and closes the app.
func withApp(ctx context.Context, fn func(*AppContext) error) (err error) {
	app, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := app.Close(context.WithoutCancel(ctx)); err == nil {
			err = closeErr
		}
	}()
	return fn(app)
}
