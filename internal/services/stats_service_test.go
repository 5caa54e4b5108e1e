package services

import (
	"context"
	"errors"
	"regexp"
	"testing"

	contextutils "ecoatlas/internal/utils"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatsService_GetStats(t *testing.T) {
	db, mock := newMockDB(t)
	mock.MatchExpectationsInOrder(false)
	service := NewStatsService(db, testLogger())

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM problems")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(6))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM solutions")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(14))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM ideas")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COALESCE(SUM(votes), 0) FROM ideas")).
		WillReturnRows(sqlmock.NewRows([]string{"sum"}).AddRow(21))

	stats, err := service.GetStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 6, stats.Problems)
	assert.Equal(t, 14, stats.Solutions)
	assert.Equal(t, 3, stats.Ideas)
	assert.Equal(t, 21, stats.Votes)
}

func TestStatsService_GetStatsFailure(t *testing.T) {
	// The first failure cancels the remaining counts, so not every
	// expectation is guaranteed to be consumed.
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	mock.MatchExpectationsInOrder(false)
	service := NewStatsService(db, testLogger())

	for _, stmt := range []string{
		"SELECT COUNT(*) FROM problems",
		"SELECT COUNT(*) FROM solutions",
		"SELECT COUNT(*) FROM ideas",
		"SELECT COALESCE(SUM(votes), 0) FROM ideas",
	} {
		mock.ExpectQuery(regexp.QuoteMeta(stmt)).
			WillReturnError(errors.New("relation does not exist"))
	}

	_, err = service.GetStats(context.Background())
	assertErrorCode(t, err, contextutils.ErrorCodeDatabaseQuery)
}
