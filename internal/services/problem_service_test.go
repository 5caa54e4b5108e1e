package services

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"

	"ecoatlas/internal/models"
	contextutils "ecoatlas/internal/utils"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProblemService_ListProblemsWithFilters(t *testing.T) {
	db, mock := newMockDB(t)
	service := NewProblemService(db, testLogger(), nil)

	rows := sqlmock.NewRows(problemCols).
		AddRow(3, "Logging", "Clear cutting", "Forest", 3, nil, fixedTime).
		AddRow(8, "Pests", "Bark beetle", "Forest", 3, "https://img.example/b.png", fixedTime)
	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT id, title, description, category, severity, image_url, created_at FROM problems WHERE category = $1 AND severity = $2 ORDER BY severity DESC, created_at DESC")).
		WithArgs("Forest", "3").
		WillReturnRows(rows)

	list, err := service.ListProblems(context.Background(), models.ProblemFilter{Category: "Forest", Severity: "3"})
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, 3, list[0].ID)
	assert.Equal(t, models.CategoryForest, list[0].Category)
	assert.False(t, list[0].ImageURL.Valid)
	assert.Equal(t, "https://img.example/b.png", list[1].ImageURL.String)
}

func TestProblemService_ListProblemsEmpty(t *testing.T) {
	db, mock := newMockDB(t)
	service := NewProblemService(db, testLogger(), nil)

	mock.ExpectQuery("SELECT .* FROM problems ORDER BY").
		WillReturnRows(sqlmock.NewRows(problemCols))

	list, err := service.ListProblems(context.Background(), models.ProblemFilter{})
	require.NoError(t, err)
	assert.NotNil(t, list, "empty result must be an empty slice, not nil")
	assert.Empty(t, list)
}

func TestProblemService_ListProblemsQueryError(t *testing.T) {
	db, mock := newMockDB(t)
	service := NewProblemService(db, testLogger(), nil)

	mock.ExpectQuery("SELECT .* FROM problems").WillReturnError(errors.New("connection refused"))

	_, err := service.ListProblems(context.Background(), models.ProblemFilter{})
	assertErrorCode(t, err, contextutils.ErrorCodeDatabaseQuery)
	assert.Contains(t, err.Error(), "failed to query problems")
}

func TestProblemService_GetProblem(t *testing.T) {
	db, mock := newMockDB(t)
	service := NewProblemService(db, testLogger(), nil)

	mock.ExpectQuery(regexp.QuoteMeta("FROM problems WHERE id = $1")).
		WithArgs(4).
		WillReturnRows(sqlmock.NewRows(problemCols).AddRow(4, "Smog", "City smog", "Air", 5, nil, fixedTime))

	p, err := service.GetProblem(context.Background(), 4)
	require.NoError(t, err)
	assert.Equal(t, "Smog", p.Title)
	assert.Equal(t, 5, p.Severity)
}

func TestProblemService_GetProblemNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	service := NewProblemService(db, testLogger(), nil)

	mock.ExpectQuery(regexp.QuoteMeta("FROM problems WHERE id = $1")).
		WithArgs(99).
		WillReturnError(sql.ErrNoRows)

	_, err := service.GetProblem(context.Background(), 99)
	assertErrorCode(t, err, contextutils.ErrorCodeRecordNotFound)

	var appErr *contextutils.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "Problem not found", appErr.Message)
}

func TestProblemService_CreateProblem(t *testing.T) {
	db, mock := newMockDB(t)
	service := NewProblemService(db, testLogger(), nil)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO problems (title, description, category, severity, image_url)")).
		WithArgs("Oil spill", "Tanker leak", models.CategoryWater, 5, nil).
		WillReturnRows(sqlmock.NewRows(problemCols).AddRow(11, "Oil spill", "Tanker leak", "Water", 5, nil, fixedTime))

	p, err := service.CreateProblem(context.Background(), models.CreateProblemRequest{
		Title: "Oil spill", Description: "Tanker leak", Category: models.CategoryWater, Severity: 5,
	})
	require.NoError(t, err)
	assert.Equal(t, 11, p.ID)
	assert.Equal(t, fixedTime, p.CreatedAt)
}

func TestProblemService_CreateProblemWithImage(t *testing.T) {
	db, mock := newMockDB(t)
	service := NewProblemService(db, testLogger(), nil)

	img := "https://img.example/spill.jpg"
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO problems")).
		WithArgs("Oil spill", "Tanker leak", models.CategoryWater, 5, img).
		WillReturnRows(sqlmock.NewRows(problemCols).AddRow(12, "Oil spill", "Tanker leak", "Water", 5, img, fixedTime))

	p, err := service.CreateProblem(context.Background(), models.CreateProblemRequest{
		Title: "Oil spill", Description: "Tanker leak", Category: models.CategoryWater, Severity: 5, ImageURL: &img,
	})
	require.NoError(t, err)
	assert.True(t, p.ImageURL.Valid)
}

func TestNewProblemService_PanicsOnNilDeps(t *testing.T) {
	assert.Panics(t, func() { NewProblemService(nil, testLogger(), nil) })
}
