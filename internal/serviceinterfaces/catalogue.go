// Package serviceinterfaces declares the service contracts consumed by the
// HTTP handlers and the admin CLI.
package serviceinterfaces

import (
	"context"

	"ecoatlas/internal/models"
)

// ProblemService defines operations for ecological problems.
type ProblemService interface {
	ListProblems(ctx context.Context, filter models.ProblemFilter) ([]models.Problem, error)
	GetProblem(ctx context.Context, id int) (*models.Problem, error)
	CreateProblem(ctx context.Context, req models.CreateProblemRequest) (*models.Problem, error)
}

// SolutionService defines operations for solutions.
type SolutionService interface {
	ListSolutions(ctx context.Context, filter models.SolutionFilter) ([]models.Solution, error)
	// ListSolutionsForProblem fails with RECORD_NOT_FOUND when the problem does not exist.
	ListSolutionsForProblem(ctx context.Context, problemID int) ([]models.Solution, error)
	GetSolution(ctx context.Context, id int) (*models.Solution, error)
	// CreateSolution fails with FOREIGN_KEY_VIOLATION when the problem does not exist.
	CreateSolution(ctx context.Context, req models.CreateSolutionRequest) (*models.Solution, error)
}

// IdeaService defines operations for community ideas.
type IdeaService interface {
	ListIdeas(ctx context.Context, filter models.IdeaFilter) ([]models.Idea, error)
	GetIdea(ctx context.Context, id int) (*models.Idea, error)
	CreateIdea(ctx context.Context, req models.CreateIdeaRequest) (*models.Idea, error)
	// UpdateIdea checks existence before the patch, so a missing id wins over an empty patch.
	UpdateIdea(ctx context.Context, id int, req models.UpdateIdeaRequest) (*models.Idea, error)
	DeleteIdea(ctx context.Context, id int) (*models.Idea, error)
	VoteIdea(ctx context.Context, id int) (*models.Idea, error)
}

// StatsService reports catalogue totals.
type StatsService interface {
	GetStats(ctx context.Context) (*models.Stats, error)
}
