package services

import (
	"database/sql"
	"testing"
	"time"

	"ecoatlas/internal/observability"
	contextutils "ecoatlas/internal/utils"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	problemCols  = []string{"id", "title", "description", "category", "severity", "image_url", "created_at"}
	solutionCols = []string{"id", "problem_id", "title", "description", "level", "difficulty", "impact", "created_at"}
	ideaCols     = []string{"id", "author_name", "title", "description", "category", "status", "votes", "created_at", "updated_at"}

	fixedTime = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
)

func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		_ = db.Close()
	})
	return db, mock
}

func testLogger() *observability.Logger {
	return observability.NewNopLogger()
}

func assertErrorCode(t *testing.T, err error, code contextutils.ErrorCode) {
	t.Helper()
	require.Error(t, err)
	assert.Equal(t, code, contextutils.GetErrorCode(err), err.Error())
}
