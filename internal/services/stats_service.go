package services

import (
	"context"
	"database/sql"

	"ecoatlas/internal/models"
	"ecoatlas/internal/observability"
	"ecoatlas/internal/query"
	"ecoatlas/internal/serviceinterfaces"

	"golang.org/x/sync/errgroup"
)

// Ensure StatsService implements the interface
var _ serviceinterfaces.StatsService = (*StatsService)(nil)

// StatsService computes catalogue totals.
type StatsService struct {
	db     *sql.DB
	logger *observability.Logger
}

// NewStatsService creates a new StatsService instance.
func NewStatsService(db *sql.DB, logger *observability.Logger) *StatsService {
	if db == nil {
		panic("NewStatsService: db is nil")
	}
	if logger == nil {
		panic("NewStatsService: logger is nil")
	}
	return &StatsService{db: db, logger: logger}
}

// GetStats runs the per-table counts concurrently.
func (s *StatsService) GetStats(ctx context.Context) (result0 *models.Stats, err error) {
	ctx, span := observability.TraceStatsFunction(ctx, "get_stats")
	defer observability.FinishSpan(span, &err)

	var stats models.Stats
	g, gctx := errgroup.WithContext(ctx)

	count := func(schema query.Schema, dest *int) func() error {
		return func() error {
			q, args := query.New(schema).Count()
			if err := s.db.QueryRowContext(gctx, q, args...).Scan(dest); err != nil {
				return storeError(err, "failed to count "+schema.Table)
			}
			return nil
		}
	}
	g.Go(count(query.Problems, &stats.Problems))
	g.Go(count(query.Solutions, &stats.Solutions))
	g.Go(count(query.Ideas, &stats.Ideas))
	g.Go(func() error {
		if err := s.db.QueryRowContext(gctx, "SELECT COALESCE(SUM(votes), 0) FROM ideas").Scan(&stats.Votes); err != nil {
			return storeError(err, "failed to sum votes")
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &stats, nil
}
