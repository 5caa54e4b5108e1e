package commands

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"ecoatlas/internal/config"
	"ecoatlas/internal/models"
	"ecoatlas/internal/observability"
	contextutils "ecoatlas/internal/utils"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEnv(t *testing.T) (*Env, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	env := NewEnv(config.Default(), observability.NewNopLogger())
	env.db = db
	return env, mock
}

func execute(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

var ideaColumns = []string{"id", "author_name", "title", "description", "category", "status", "votes", "created_at", "updated_at"}

func TestIdeasStatus(t *testing.T) {
	env, mock := newTestEnv(t)
	now := time.Now()

	mock.ExpectQuery(`SELECT EXISTS`).WithArgs(7).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectQuery(`UPDATE ideas SET status = \$1`).WithArgs("approved", 7).
		WillReturnRows(sqlmock.NewRows(ideaColumns).
			AddRow(7, "Ann", "Bike lanes", "More lanes", "Air", "approved", 3, now, now))

	out, err := execute(t, IdeaCommands(env), "status", "7", "approved")
	require.NoError(t, err)
	assert.Contains(t, out, `Idea 7 "Bike lanes" is now approved`)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIdeasStatus_InvalidArguments(t *testing.T) {
	env, mock := newTestEnv(t)

	_, err := execute(t, IdeaCommands(env), "status", "abc", "approved")
	require.Error(t, err)
	assert.Equal(t, contextutils.ErrorCodeInvalidInput, contextutils.GetErrorCode(err))

	_, err = execute(t, IdeaCommands(env), "status", "7", "done")
	require.Error(t, err)
	assert.True(t, contextutils.IsClientError(err))

	_, err = execute(t, IdeaCommands(env), "status", "7")
	assert.Error(t, err)

	assert.NoError(t, mock.ExpectationsWereMet(), "no query for rejected input")
}

func TestIdeasStatus_NotFound(t *testing.T) {
	env, mock := newTestEnv(t)
	mock.ExpectQuery(`SELECT EXISTS`).WithArgs(99).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

	_, err := execute(t, IdeaCommands(env), "status", "99", "rejected")
	require.Error(t, err)
	assert.Equal(t, contextutils.ErrorCodeRecordNotFound, contextutils.GetErrorCode(err))
}

func TestIdeasList(t *testing.T) {
	env, mock := newTestEnv(t)
	now := time.Now()
	mock.ExpectQuery(`SELECT .+ FROM ideas WHERE status = \$1`).WithArgs("pending").
		WillReturnRows(sqlmock.NewRows(ideaColumns).
			AddRow(1, "Ann", "Bike lanes", "d", "Air", "pending", 5, now, now).
			AddRow(2, "Bo", "Rain gardens", "d", "Water", "pending", 2, now, now))

	out, err := execute(t, IdeaCommands(env), "list", "--status", "pending")
	require.NoError(t, err)
	assert.Contains(t, out, "Bike lanes")
	assert.Contains(t, out, "Rain gardens")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIdeasList_RejectsUnknownStatus(t *testing.T) {
	env, _ := newTestEnv(t)
	_, err := execute(t, IdeaCommands(env), "list", "--status", "done")
	assert.Error(t, err)
}

func TestDBStats(t *testing.T) {
	env, mock := newTestEnv(t)
	mock.MatchExpectationsInOrder(false)
	mock.ExpectQuery(`FROM problems`).WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(6))
	mock.ExpectQuery(`FROM solutions`).WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(11))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM ideas`).WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(4))
	mock.ExpectQuery(`SUM\(votes\)`).WillReturnRows(sqlmock.NewRows([]string{"sum"}).AddRow(17))
	mock.ExpectQuery(`current_database`).WillReturnRows(sqlmock.NewRows([]string{"current_database"}).AddRow("eco_atlas"))
	mock.ExpectQuery(`inet_server_addr`).WillReturnRows(sqlmock.NewRows([]string{"addr"}).AddRow(nil))

	out, err := execute(t, DatabaseCommands(env), "stats")
	require.NoError(t, err)
	assert.Contains(t, out, "Connected to eco_atlas")
	assert.Regexp(t, `Problems\s+6`, out)
	assert.Regexp(t, `Votes\s+17`, out)
}

func TestDBRollback_RequiresConfirmation(t *testing.T) {
	env, _ := newTestEnv(t)
	_, err := execute(t, DatabaseCommands(env), "rollback")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--yes")
}

type fakeProblems struct{ next int }

func (f *fakeProblems) CreateProblem(_ context.Context, req models.CreateProblemRequest) (*models.Problem, error) {
	f.next++
	return &models.Problem{ID: f.next, Title: req.Title}, nil
}

type fakeSolutions struct {
	byProblem map[int]int
	failOn    string
}

func (f *fakeSolutions) CreateSolution(_ context.Context, req models.CreateSolutionRequest) (*models.Solution, error) {
	if req.Title == f.failOn {
		return nil, contextutils.ErrForeignKeyViolation
	}
	f.byProblem[req.ProblemID]++
	return &models.Solution{ProblemID: req.ProblemID, Title: req.Title}, nil
}

func TestSeedCatalogue(t *testing.T) {
	problems := &fakeProblems{}
	solutions := &fakeSolutions{byProblem: map[int]int{}}

	nProblems, nSolutions, err := seedCatalogue(context.Background(), problems, solutions, sampleCatalogue)
	require.NoError(t, err)
	assert.Equal(t, len(sampleCatalogue), nProblems)

	total := 0
	for i, entry := range sampleCatalogue {
		assert.Equal(t, len(entry.Solutions), solutions.byProblem[i+1], "solutions attach to their own problem")
		total += len(entry.Solutions)
	}
	assert.Equal(t, total, nSolutions)
}

func TestSeedCatalogue_StopsOnError(t *testing.T) {
	problems := &fakeProblems{}
	solutions := &fakeSolutions{byProblem: map[int]int{}, failOn: sampleCatalogue[0].Solutions[1].Title}

	nProblems, nSolutions, err := seedCatalogue(context.Background(), problems, solutions, sampleCatalogue)
	require.Error(t, err)
	assert.Equal(t, 1, nProblems)
	assert.Equal(t, 1, nSolutions)
}

func TestSampleCatalogueIsValid(t *testing.T) {
	for _, entry := range sampleCatalogue {
		require.NoError(t, contextutils.ValidateStruct(entry.Problem), entry.Problem.Title)
		for _, sol := range entry.Solutions {
			sol.ProblemID = 1
			assert.NoError(t, contextutils.ValidateStruct(sol), sol.Title)
		}
	}
}

func TestSeed_SkipsPopulatedCatalogue(t *testing.T) {
	env, mock := newTestEnv(t)
	mock.MatchExpectationsInOrder(false)
	mock.ExpectQuery(`FROM problems`).WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))
	mock.ExpectQuery(`FROM solutions`).WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM ideas`).WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(`SUM\(votes\)`).WillReturnRows(sqlmock.NewRows([]string{"sum"}).AddRow(0))

	out, err := execute(t, SeedCommand(env))
	require.NoError(t, err)
	assert.Contains(t, out, "already has 3 problems")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProbe(t *testing.T) {
	t.Run("ready", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/ready", r.URL.Path)
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"success":true,"data":{"status":"ready"}}`))
		}))
		defer srv.Close()

		status, err := probe(context.Background(), srv.Client(), srv.URL+"/")
		require.NoError(t, err)
		assert.Equal(t, "ready", status)
	})

	t.Run("unavailable", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte(`{"success":false,"error":"Database unavailable","code":"SERVICE_UNAVAILABLE"}`))
		}))
		defer srv.Close()

		_, err := probe(context.Background(), srv.Client(), srv.URL)
		require.Error(t, err)
		assert.Equal(t, contextutils.ErrorCodeServiceUnavailable, contextutils.GetErrorCode(err))
		assert.Contains(t, err.Error(), "HTTP 503")
	})

	t.Run("unreachable", func(t *testing.T) {
		srv := httptest.NewServer(http.NotFoundHandler())
		url := srv.URL
		srv.Close()

		_, err := probe(context.Background(), http.DefaultClient, url)
		require.Error(t, err)
	})
}

func TestHealthCommand_UsesBaseURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"success":true,"data":{"status":"ready"}}`))
	}))
	defer srv.Close()

	env := NewEnv(config.Default(), observability.NewNopLogger())
	env.Config.Server.BaseURL = srv.URL

	out, err := execute(t, HealthCommand(env))
	require.NoError(t, err)
	assert.Contains(t, out, srv.URL+": ready")
}

func TestMaskDatabaseURL(t *testing.T) {
	assert.Equal(t, "postgres://***:***@db:5432/eco_atlas?sslmode=disable",
		maskDatabaseURL("postgres://eco:secret@db:5432/eco_atlas?sslmode=disable"))
	assert.Equal(t, "postgres://localhost/eco_atlas", maskDatabaseURL("postgres://localhost/eco_atlas"))
	assert.Equal(t, "host=db dbname=eco", maskDatabaseURL("host=db dbname=eco"))
	assert.Equal(t, "host=db password=*** dbname=eco", maskDatabaseURL("host=db password=hunter2 dbname=eco"))
	assert.NotContains(t, maskDatabaseURL("postgres://eco:secret@db/eco_atlas"), "%2A")
}
