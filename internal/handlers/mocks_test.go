package handlers

import (
	"context"

	"ecoatlas/internal/models"

	"github.com/stretchr/testify/mock"
)

type mockProblemService struct{ mock.Mock }

func (m *mockProblemService) ListProblems(ctx context.Context, filter models.ProblemFilter) ([]models.Problem, error) {
	args := m.Called(ctx, filter)
	list, _ := args.Get(0).([]models.Problem)
	return list, args.Error(1)
}

func (m *mockProblemService) GetProblem(ctx context.Context, id int) (*models.Problem, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(*models.Problem)
	return p, args.Error(1)
}

func (m *mockProblemService) CreateProblem(ctx context.Context, req models.CreateProblemRequest) (*models.Problem, error) {
	args := m.Called(ctx, req)
	p, _ := args.Get(0).(*models.Problem)
	return p, args.Error(1)
}

type mockSolutionService struct{ mock.Mock }

func (m *mockSolutionService) ListSolutions(ctx context.Context, filter models.SolutionFilter) ([]models.Solution, error) {
	args := m.Called(ctx, filter)
	list, _ := args.Get(0).([]models.Solution)
	return list, args.Error(1)
}

func (m *mockSolutionService) ListSolutionsForProblem(ctx context.Context, problemID int) ([]models.Solution, error) {
	args := m.Called(ctx, problemID)
	list, _ := args.Get(0).([]models.Solution)
	return list, args.Error(1)
}

func (m *mockSolutionService) GetSolution(ctx context.Context, id int) (*models.Solution, error) {
	args := m.Called(ctx, id)
	s, _ := args.Get(0).(*models.Solution)
	return s, args.Error(1)
}

func (m *mockSolutionService) CreateSolution(ctx context.Context, req models.CreateSolutionRequest) (*models.Solution, error) {
	args := m.Called(ctx, req)
	s, _ := args.Get(0).(*models.Solution)
	return s, args.Error(1)
}

type mockIdeaService struct{ mock.Mock }

func (m *mockIdeaService) ListIdeas(ctx context.Context, filter models.IdeaFilter) ([]models.Idea, error) {
	args := m.Called(ctx, filter)
	list, _ := args.Get(0).([]models.Idea)
	return list, args.Error(1)
}

func (m *mockIdeaService) GetIdea(ctx context.Context, id int) (*models.Idea, error) {
	args := m.Called(ctx, id)
	i, _ := args.Get(0).(*models.Idea)
	return i, args.Error(1)
}

func (m *mockIdeaService) CreateIdea(ctx context.Context, req models.CreateIdeaRequest) (*models.Idea, error) {
	args := m.Called(ctx, req)
	i, _ := args.Get(0).(*models.Idea)
	return i, args.Error(1)
}

func (m *mockIdeaService) UpdateIdea(ctx context.Context, id int, req models.UpdateIdeaRequest) (*models.Idea, error) {
	args := m.Called(ctx, id, req)
	i, _ := args.Get(0).(*models.Idea)
	return i, args.Error(1)
}

func (m *mockIdeaService) DeleteIdea(ctx context.Context, id int) (*models.Idea, error) {
	args := m.Called(ctx, id)
	i, _ := args.Get(0).(*models.Idea)
	return i, args.Error(1)
}

func (m *mockIdeaService) VoteIdea(ctx context.Context, id int) (*models.Idea, error) {
	args := m.Called(ctx, id)
	i, _ := args.Get(0).(*models.Idea)
	return i, args.Error(1)
}

type mockStatsService struct{ mock.Mock }

func (m *mockStatsService) GetStats(ctx context.Context) (*models.Stats, error) {
	args := m.Called(ctx)
	s, _ := args.Get(0).(*models.Stats)
	return s, args.Error(1)
}
