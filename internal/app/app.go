// Package app wires configuration, storage, services, and the HTTP surface.
package app

import (
	"context"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/shift-scheduler/internal/api/http"
	"github.com/spec-kit/shift-scheduler/internal/api/http/handlers"
	"github.com/spec-kit/shift-scheduler/internal/config"
	"github.com/spec-kit/shift-scheduler/internal/events"
	"github.com/spec-kit/shift-scheduler/internal/filestore"
	"github.com/spec-kit/shift-scheduler/internal/observability"
	"github.com/spec-kit/shift-scheduler/internal/persistence"
	"github.com/spec-kit/shift-scheduler/internal/repository"
	"github.com/spec-kit/shift-scheduler/internal/service"
	"github.com/spec-kit/shift-scheduler/internal/signing"
	"github.com/spec-kit/shift-scheduler/internal/worker"
)

// App holds the wired services of one process.
type App struct {
	Config  *config.Config
	Logger  *zap.Logger
	Metrics *observability.Metrics

	Roster      *service.RosterService
	Schedules   *service.ScheduleService
	Assignments *service.AssignmentService
	Patterns    *service.PatternService
	Exports     *service.ExportService

	migrate func(context.Context) error
	deps    []handlers.Dependency
	closers []func()
}

// New opens the configured stores and builds the services. Migrations are
// applied when the store config asks for them.
func New(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	a := &App{Config: cfg, Logger: logger, Metrics: observability.NewMetrics()}

	var (
		engineerRepo repository.EngineerRepository
		scheduleRepo repository.ScheduleRepository
	)
	switch cfg.Store.Driver {
	case config.DriverPostgres:
		pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, pg.Close)
		a.deps = append(a.deps, handlers.Dependency{Name: "postgres", Pinger: pg})
		pool := pg.PoolHandle()
		a.migrate = func(ctx context.Context) error { return persistence.RunMigrations(ctx, pool, logger) }
		engineerRepo = repository.NewEngineerRepository(pool)
		scheduleRepo = repository.NewScheduleRepository(pool)
	default:
		db, err := persistence.NewSQLite(ctx, cfg.SQLite, logger)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, db.Close)
		a.deps = append(a.deps, handlers.Dependency{Name: "sqlite", Pinger: db})
		a.migrate = func(ctx context.Context) error { return persistence.RunSQLiteMigrations(ctx, db.DB, logger) }
		engineerRepo = repository.NewSQLiteEngineerRepository(db.DB)
		scheduleRepo = repository.NewSQLiteScheduleRepository(db.DB)
	}

	if cfg.Store.RunMigrations {
		if err := a.migrate(ctx); err != nil {
			a.Close()
			return nil, fmt.Errorf("run migrations: %w", err)
		}
	}

	var files filestore.Store
	if cfg.Export.Store == config.ExportStoreRedis {
		redis, err := persistence.NewRedis(ctx, cfg.Redis, logger)
		if err != nil {
			a.Close()
			return nil, err
		}
		a.closers = append(a.closers, redis.Close)
		a.deps = append(a.deps, handlers.Dependency{Name: "redis", Pinger: redis})
		files = filestore.NewRedisStore(redis.Client, cfg.Export.TTL())
	} else {
		disk, err := filestore.NewDiskStore(cfg.Export.Dir)
		if err != nil {
			a.Close()
			return nil, err
		}
		files = disk
	}

	dispatcher := events.NewInMemoryDispatcher()
	worker.StartNotificationWorker(service.NewNotificationService(dispatcher, logger, cfg.Notification), logger)

	a.Roster = service.NewRosterService(cfg.Scheduler, service.RosterDependencies{
		EngineerRepo: engineerRepo,
		Dispatcher:   dispatcher,
		Logger:       logger,
	})
	a.Schedules = service.NewScheduleService(cfg.Scheduler, service.ScheduleDependencies{
		ScheduleRepo: scheduleRepo,
		EngineerRepo: engineerRepo,
		Dispatcher:   dispatcher,
		Logger:       logger,
	})
	a.Assignments = service.NewAssignmentService(cfg.Scheduler, service.AssignmentDependencies{
		EngineerRepo: engineerRepo,
		ScheduleRepo: scheduleRepo,
		Saver:        a.Schedules,
		Dispatcher:   dispatcher,
		Metrics:      a.Metrics,
		Logger:       logger,
	})
	a.Patterns = service.NewPatternService(cfg.Scheduler, service.PatternDependencies{
		EngineerRepo: engineerRepo,
		ScheduleRepo: scheduleRepo,
		Dispatcher:   dispatcher,
		Metrics:      a.Metrics,
		Logger:       logger,
	})
	a.Exports = service.NewExportService(cfg.Scheduler, service.ExportDependencies{
		ScheduleRepo: scheduleRepo,
		Files:        files,
		Tokens:       signing.NewTokenManager(cfg.Export.SigningSecret, cfg.Export.LinkTTLMinutes),
		Dispatcher:   dispatcher,
		Logger:       logger,
	})
	return a, nil
}

// Migrate applies the schema of the configured store.
func (a *App) Migrate(ctx context.Context) error {
	return a.migrate(ctx)
}

// HTTP builds the fiber application.
func (a *App) HTTP() *fiber.App {
	return httptransport.NewApp(a.Config.App.Name, a.Config.App.BodyLimitBytes, a.Logger, a.Metrics, a.Config.App.RequestTimeout(), httptransport.RouteConfig{
		Health:      handlers.NewHealthHandler(a.Config.App.Name, a.Config.App.Version, a.deps...),
		Config:      handlers.NewConfigHandler(a.Config.Scheduler.Workplaces, a.Metrics),
		Engineers:   handlers.NewEngineersHandler(a.Roster),
		Schedule:    handlers.NewScheduleHandler(a.Schedules, a.Assignments),
		Assignments: handlers.NewAssignmentsHandler(a.Assignments),
		Patterns:    handlers.NewPatternsHandler(a.Patterns),
		Exports:     handlers.NewExportsHandler(a.Exports),
		StaticDir:   a.Config.App.StaticDir,
	})
}

// Close stops running assignment jobs, then releases stores in reverse
// order of opening.
func (a *App) Close() {
	if a.Assignments != nil {
		a.Assignments.CancelAll()
	}
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
}
