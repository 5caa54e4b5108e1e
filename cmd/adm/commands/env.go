// Package commands provides CLI commands for the admin tool
package commands

import (
	"context"
	"database/sql"
	"sync"

	"ecoatlas/internal/config"
	"ecoatlas/internal/database"
	"ecoatlas/internal/observability"
	"ecoatlas/internal/services"
)

// Env carries the shared resources of the admin commands. The database pool is
// opened on first use so commands that do not need it run without one.
type Env struct {
	Config *config.Config
	Logger *observability.Logger

	once  sync.Once
	db    *sql.DB
	dbErr error
}

// NewEnv creates the command environment.
func NewEnv(cfg *config.Config, logger *observability.Logger) *Env {
	return &Env{Config: cfg, Logger: logger}
}

// DB opens the database pool without applying migrations.
func (e *Env) DB(ctx context.Context) (*sql.DB, error) {
	e.once.Do(func() {
		if e.db != nil {
			return
		}
		e.db, e.dbErr = database.NewManager(e.Logger).Open(ctx, e.Config.Database)
	})
	return e.db, e.dbErr
}

// Close releases the database pool if one was opened.
func (e *Env) Close() error {
	if e.db == nil {
		return nil
	}
	return e.db.Close()
}

func (e *Env) ideaService(ctx context.Context) (*services.IdeaService, error) {
	db, err := e.DB(ctx)
	if err != nil {
		return nil, err
	}
	return services.NewIdeaService(db, e.Logger, nil), nil
}
