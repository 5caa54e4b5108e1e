// Package di provides dependency injection container for managing service lifecycle and dependencies.
package di

import (
	"context"
	"database/sql"
	"errors"
	"sync"

	"ecoatlas/internal/config"
	"ecoatlas/internal/database"
	"ecoatlas/internal/observability"
	"ecoatlas/internal/services"
	contextutils "ecoatlas/internal/utils"
)

// Service names registered by the container.
const (
	ProblemServiceName  = "problem"
	SolutionServiceName = "solution"
	IdeaServiceName     = "idea"
	StatsServiceName    = "stats"
)

// ServiceContainerInterface defines the interface for service containers
type ServiceContainerInterface interface {
	GetService(name string) (interface{}, error)
	GetProblemService() (*services.ProblemService, error)
	GetSolutionService() (*services.SolutionService, error)
	GetIdeaService() (*services.IdeaService, error)
	GetStatsService() (*services.StatsService, error)
	GetDatabase() *sql.DB
	GetConfig() *config.Config
	GetLogger() *observability.Logger
	Initialize(ctx context.Context) error
	Shutdown(ctx context.Context) error
}

// ServiceContainer manages all service dependencies and lifecycle
type ServiceContainer struct {
	cfg           *config.Config
	logger        *observability.Logger
	instruments   *observability.Instruments
	dbManager     *database.Manager
	db            *sql.DB
	services      map[string]interface{}
	mu            sync.RWMutex
	shutdownFuncs []func(context.Context) error
}

// NewServiceContainer creates a new dependency injection container.
// instruments may be nil, in which case counters are no-ops.
func NewServiceContainer(cfg *config.Config, logger *observability.Logger, instruments *observability.Instruments) *ServiceContainer {
	return &ServiceContainer{
		cfg:         cfg,
		logger:      logger,
		instruments: instruments,
		services:    make(map[string]interface{}),
	}
}

// Initialize opens the database, applies migrations and builds the services.
// Only an unreachable database is fatal.
func (sc *ServiceContainer) Initialize(ctx context.Context) error {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	sc.dbManager = database.NewManager(sc.logger)
	db, err := sc.dbManager.Open(ctx, sc.cfg.Database)
	if err != nil {
		return contextutils.WrapErrorf(err, "failed to initialize database")
	}
	sc.attachDatabase(db)

	// A reachable database with a failed bootstrap still serves; requests
	// against missing tables surface as store errors.
	if status, err := sc.dbManager.RunMigrations(ctx, sc.cfg.Database); err != nil {
		sc.logger.Error(ctx, "Database bootstrap failed", err)
	} else {
		sc.logger.Info(ctx, "Database bootstrap complete", map[string]interface{}{"schema_version": status.Version, "dirty": status.Dirty})
	}

	sc.initializeServices(ctx)
	return nil
}

// InitializeWithDB builds the services over an already opened pool. The
// container takes ownership of db and closes it on Shutdown.
func (sc *ServiceContainer) InitializeWithDB(ctx context.Context, db *sql.DB) error {
	if db == nil {
		return contextutils.ErrorWithContextf("database is nil")
	}

	sc.mu.Lock()
	defer sc.mu.Unlock()

	sc.attachDatabase(db)
	sc.initializeServices(ctx)
	return nil
}

func (sc *ServiceContainer) attachDatabase(db *sql.DB) {
	sc.db = db
	sc.shutdownFuncs = append(sc.shutdownFuncs, func(_ context.Context) error {
		return db.Close()
	})
}

// GetService retrieves a service by name with type assertion
func (sc *ServiceContainer) GetService(name string) (interface{}, error) {
	sc.mu.RLock()
	defer sc.mu.RUnlock()

	service, exists := sc.services[name]
	if !exists {
		return nil, contextutils.ErrorWithContextf("service %s not found", name)
	}
	return service, nil
}

// GetServiceAs performs type-safe service retrieval
func GetServiceAs[T any](sc *ServiceContainer, name string) (T, error) {
	var zero T
	service, err := sc.GetService(name)
	if err != nil {
		return zero, err
	}

	typed, ok := service.(T)
	if !ok {
		return zero, contextutils.ErrorWithContextf("service %s is not of expected type %T", name, zero)
	}
	return typed, nil
}

// GetProblemService returns the problem service
func (sc *ServiceContainer) GetProblemService() (*services.ProblemService, error) {
	return GetServiceAs[*services.ProblemService](sc, ProblemServiceName)
}

// GetSolutionService returns the solution service
func (sc *ServiceContainer) GetSolutionService() (*services.SolutionService, error) {
	return GetServiceAs[*services.SolutionService](sc, SolutionServiceName)
}

// GetIdeaService returns the idea service
func (sc *ServiceContainer) GetIdeaService() (*services.IdeaService, error) {
	return GetServiceAs[*services.IdeaService](sc, IdeaServiceName)
}

// GetStatsService returns the stats service
func (sc *ServiceContainer) GetStatsService() (*services.StatsService, error) {
	return GetServiceAs[*services.StatsService](sc, StatsServiceName)
}

// GetDatabase returns the database instance
func (sc *ServiceContainer) GetDatabase() *sql.DB {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.db
}

// GetConfig returns the configuration
func (sc *ServiceContainer) GetConfig() *config.Config {
	return sc.cfg
}

// GetLogger returns the logger
func (sc *ServiceContainer) GetLogger() *observability.Logger {
	return sc.logger
}

// Shutdown releases resources in reverse order of acquisition.
func (sc *ServiceContainer) Shutdown(ctx context.Context) error {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	var errs []error
	for i := len(sc.shutdownFuncs) - 1; i >= 0; i-- {
		if err := sc.shutdownFuncs[i](ctx); err != nil {
			sc.logger.Error(ctx, "Shutdown step failed", err)
			errs = append(errs, err)
		}
	}
	sc.shutdownFuncs = nil
	sc.services = make(map[string]interface{})

	if len(errs) > 0 {
		return contextutils.WrapError(errors.Join(errs...), "shutdown errors")
	}
	return nil
}

// initializeServices sets up all service dependencies
func (sc *ServiceContainer) initializeServices(ctx context.Context) {
	sc.services[ProblemServiceName] = services.NewProblemService(sc.db, sc.logger, sc.instruments)
	sc.services[SolutionServiceName] = services.NewSolutionService(sc.db, sc.logger, sc.instruments)
	sc.services[IdeaServiceName] = services.NewIdeaService(sc.db, sc.logger, sc.instruments)
	sc.services[StatsServiceName] = services.NewStatsService(sc.db, sc.logger)

	sc.logger.Info(ctx, "Services initialized", map[string]interface{}{"count": len(sc.services)})
}
