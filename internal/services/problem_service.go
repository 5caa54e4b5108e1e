package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"ecoatlas/internal/models"
	"ecoatlas/internal/observability"
	"ecoatlas/internal/query"
	"ecoatlas/internal/serviceinterfaces"
	contextutils "ecoatlas/internal/utils"
)

// ProblemServiceInterface is an alias for the serviceinterfaces contract
type ProblemServiceInterface = serviceinterfaces.ProblemService

// Ensure ProblemService implements the interface
var _ serviceinterfaces.ProblemService = (*ProblemService)(nil)

// ProblemService reads and creates problems.
type ProblemService struct {
	db          *sql.DB
	logger      *observability.Logger
	instruments *observability.Instruments
}

// NewProblemService creates a new ProblemService instance.
func NewProblemService(db *sql.DB, logger *observability.Logger, instruments *observability.Instruments) *ProblemService {
	if db == nil {
		panic("NewProblemService: db is nil")
	}
	if logger == nil {
		panic("NewProblemService: logger is nil")
	}
	return &ProblemService{db: db, logger: logger, instruments: instruments}
}

func scanProblem(row rowScanner) (*models.Problem, error) {
	var p models.Problem
	if err := row.Scan(&p.ID, &p.Title, &p.Description, &p.Category, &p.Severity, &p.ImageURL, &p.CreatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}

// ListProblems returns problems matching the filter, most severe first.
func (s *ProblemService) ListProblems(ctx context.Context, filter models.ProblemFilter) (result0 []models.Problem, err error) {
	ctx, span := observability.TraceProblemFunction(ctx, "list_problems",
		observability.AttributeFilter("category", filter.Category),
		observability.AttributeFilter("severity", filter.Severity),
	)
	defer observability.FinishSpan(span, &err)

	q, args := query.New(query.Problems).
		Where("category", filter.Category).
		Where("severity", filter.Severity).
		Select()

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, storeError(err, "failed to query problems")
	}
	defer func() {
		_ = rows.Close()
	}()

	list := []models.Problem{}
	for rows.Next() {
		p, err := scanProblem(rows)
		if err != nil {
			return nil, storeError(err, "failed to scan problem")
		}
		list = append(list, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, storeError(err, "failed to query problems")
	}

	span.SetAttributes(observability.AttributeCount(len(list)))
	return list, nil
}

// GetProblem fetches a single problem.
func (s *ProblemService) GetProblem(ctx context.Context, id int) (result0 *models.Problem, err error) {
	ctx, span := observability.TraceProblemFunction(ctx, "get_problem", observability.AttributeProblemID(id))
	defer observability.FinishSpan(span, &err)

	q := fmt.Sprintf("SELECT %s FROM problems WHERE id = $1", strings.Join(query.Problems.Columns, ", "))
	p, err := scanProblem(s.db.QueryRowContext(ctx, q, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, contextutils.NewNotFoundError("Problem", id)
	}
	if err != nil {
		return nil, storeError(err, "failed to get problem")
	}
	return p, nil
}

// problemExists is shared by the solution paths that depend on a parent problem.
func problemExists(ctx context.Context, db *sql.DB, id int) (bool, error) {
	var exists bool
	err := db.QueryRowContext(ctx, "SELECT EXISTS(SELECT 1 FROM problems WHERE id = $1)", id).Scan(&exists)
	if err != nil {
		return false, storeError(err, "failed to check problem")
	}
	return exists, nil
}

// CreateProblem inserts a new problem.
func (s *ProblemService) CreateProblem(ctx context.Context, req models.CreateProblemRequest) (result0 *models.Problem, err error) {
	ctx, span := observability.TraceProblemFunction(ctx, "create_problem")
	defer observability.FinishSpan(span, &err)

	var imageURL sql.NullString
	if req.ImageURL != nil && *req.ImageURL != "" {
		imageURL = sql.NullString{String: *req.ImageURL, Valid: true}
	}

	q := fmt.Sprintf(`INSERT INTO problems (title, description, category, severity, image_url)
              VALUES ($1, $2, $3, $4, $5) RETURNING %s`, strings.Join(query.Problems.Columns, ", "))
	p, err := scanProblem(s.db.QueryRowContext(ctx, q, req.Title, req.Description, req.Category, req.Severity, imageURL))
	if err != nil {
		return nil, storeError(err, "failed to insert problem")
	}

	span.SetAttributes(observability.AttributeProblemID(p.ID))
	s.instruments.RecordCreated(ctx, query.Problems.Table)
	s.logger.Info(ctx, "Problem created", map[string]interface{}{"problem_id": p.ID, "category": p.Category})
	return p, nil
}
