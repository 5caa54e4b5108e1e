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

// SolutionServiceInterface is an alias for the serviceinterfaces contract
type SolutionServiceInterface = serviceinterfaces.SolutionService

// Ensure SolutionService implements the interface
var _ serviceinterfaces.SolutionService = (*SolutionService)(nil)

// SolutionService reads and creates solutions.
type SolutionService struct {
	db          *sql.DB
	logger      *observability.Logger
	instruments *observability.Instruments
}

// NewSolutionService creates a new SolutionService instance.
func NewSolutionService(db *sql.DB, logger *observability.Logger, instruments *observability.Instruments) *SolutionService {
	if db == nil {
		panic("NewSolutionService: db is nil")
	}
	if logger == nil {
		panic("NewSolutionService: logger is nil")
	}
	return &SolutionService{db: db, logger: logger, instruments: instruments}
}

func scanSolution(row rowScanner) (*models.Solution, error) {
	var s models.Solution
	if err := row.Scan(&s.ID, &s.ProblemID, &s.Title, &s.Description, &s.Level, &s.Difficulty, &s.Impact, &s.CreatedAt); err != nil {
		return nil, err
	}
	return &s, nil
}

// problemNotFound is the reference error for a solution pointing at a missing problem.
func problemNotFound(problemID int) error {
	return contextutils.NewReferenceError("Problem", problemID)
}

// ListSolutions returns solutions matching the filter, highest impact and easiest first.
func (s *SolutionService) ListSolutions(ctx context.Context, filter models.SolutionFilter) (result0 []models.Solution, err error) {
	ctx, span := observability.TraceSolutionFunction(ctx, "list_solutions",
		observability.AttributeFilter("level", filter.Level),
		observability.AttributeFilter("difficulty", filter.Difficulty),
		observability.AttributeFilter("impact", filter.Impact),
	)
	defer observability.FinishSpan(span, &err)

	q, args := query.New(query.Solutions).
		Where("problem_id", filter.ProblemID).
		Where("level", filter.Level).
		Where("difficulty", filter.Difficulty).
		Where("impact", filter.Impact).
		Select()

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, storeError(err, "failed to query solutions")
	}
	defer func() {
		_ = rows.Close()
	}()

	list := []models.Solution{}
	for rows.Next() {
		sol, err := scanSolution(rows)
		if err != nil {
			return nil, storeError(err, "failed to scan solution")
		}
		list = append(list, *sol)
	}
	if err := rows.Err(); err != nil {
		return nil, storeError(err, "failed to query solutions")
	}

	span.SetAttributes(observability.AttributeCount(len(list)))
	return list, nil
}

// ListSolutionsForProblem returns the solutions of one problem.
func (s *SolutionService) ListSolutionsForProblem(ctx context.Context, problemID int) (result0 []models.Solution, err error) {
	ctx, span := observability.TraceSolutionFunction(ctx, "list_solutions_for_problem", observability.AttributeProblemID(problemID))
	defer observability.FinishSpan(span, &err)

	exists, err := problemExists(ctx, s.db, problemID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, contextutils.NewNotFoundError("Problem", problemID)
	}

	return s.ListSolutions(ctx, models.SolutionFilter{ProblemID: problemID})
}

// GetSolution fetches a single solution.
func (s *SolutionService) GetSolution(ctx context.Context, id int) (result0 *models.Solution, err error) {
	ctx, span := observability.TraceSolutionFunction(ctx, "get_solution", observability.AttributeSolutionID(id))
	defer observability.FinishSpan(span, &err)

	q := fmt.Sprintf("SELECT %s FROM solutions WHERE id = $1", strings.Join(query.Solutions.Columns, ", "))
	sol, err := scanSolution(s.db.QueryRowContext(ctx, q, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, contextutils.NewNotFoundError("Solution", id)
	}
	if err != nil {
		return nil, storeError(err, "failed to get solution")
	}
	return sol, nil
}

// CreateSolution inserts a solution after confirming its problem exists. A
// problem deleted between the check and the insert surfaces through the
// foreign key as the same reference error.
func (s *SolutionService) CreateSolution(ctx context.Context, req models.CreateSolutionRequest) (result0 *models.Solution, err error) {
	ctx, span := observability.TraceSolutionFunction(ctx, "create_solution", observability.AttributeProblemID(req.ProblemID))
	defer observability.FinishSpan(span, &err)

	exists, err := problemExists(ctx, s.db, req.ProblemID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, problemNotFound(req.ProblemID)
	}

	q := fmt.Sprintf(`INSERT INTO solutions (problem_id, title, description, level, difficulty, impact)
              VALUES ($1, $2, $3, $4, $5, $6) RETURNING %s`, strings.Join(query.Solutions.Columns, ", "))
	sol, err := scanSolution(s.db.QueryRowContext(ctx, q,
		req.ProblemID, req.Title, req.Description, req.Level, req.Difficulty, req.Impact))
	if err != nil {
		err = storeError(err, "failed to insert solution")
		if contextutils.GetErrorCode(err) == contextutils.ErrorCodeForeignKeyViolation {
			return nil, problemNotFound(req.ProblemID)
		}
		return nil, err
	}

	span.SetAttributes(observability.AttributeSolutionID(sol.ID))
	s.instruments.RecordCreated(ctx, query.Solutions.Table)
	s.logger.Info(ctx, "Solution created", map[string]interface{}{"solution_id": sol.ID, "problem_id": sol.ProblemID})
	return sol, nil
}
