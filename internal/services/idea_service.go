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

// IdeaServiceInterface is an alias for the serviceinterfaces contract
type IdeaServiceInterface = serviceinterfaces.IdeaService

// Ensure IdeaService implements the interface
var _ serviceinterfaces.IdeaService = (*IdeaService)(nil)

// IdeaService manages community ideas and their vote counters.
type IdeaService struct {
	db          *sql.DB
	logger      *observability.Logger
	instruments *observability.Instruments
}

// NewIdeaService creates a new IdeaService instance.
func NewIdeaService(db *sql.DB, logger *observability.Logger, instruments *observability.Instruments) *IdeaService {
	if db == nil {
		panic("NewIdeaService: db is nil")
	}
	if logger == nil {
		panic("NewIdeaService: logger is nil")
	}
	return &IdeaService{db: db, logger: logger, instruments: instruments}
}

var ideaColumns = strings.Join(query.Ideas.Columns, ", ")

func scanIdea(row rowScanner) (*models.Idea, error) {
	var i models.Idea
	if err := row.Scan(&i.ID, &i.AuthorName, &i.Title, &i.Description, &i.Category, &i.Status, &i.Votes, &i.CreatedAt, &i.UpdatedAt); err != nil {
		return nil, err
	}
	return &i, nil
}

// ListIdeas returns ideas matching the filter in the requested order.
func (s *IdeaService) ListIdeas(ctx context.Context, filter models.IdeaFilter) (result0 []models.Idea, err error) {
	ctx, span := observability.TraceIdeaFunction(ctx, "list_ideas",
		observability.AttributeFilter("category", filter.Category),
		observability.AttributeFilter("status", filter.Status),
		observability.AttributeFilter("sort", filter.Sort),
		observability.AttributeFilter("order", filter.Order),
	)
	defer observability.FinishSpan(span, &err)

	q, args := query.New(query.Ideas).
		Where("category", filter.Category).
		Where("status", filter.Status).
		OrderBy(query.IdeaOrder(filter.Sort, filter.Order)).
		Select()

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, storeError(err, "failed to query ideas")
	}
	defer func() {
		_ = rows.Close()
	}()

	list := []models.Idea{}
	for rows.Next() {
		idea, err := scanIdea(rows)
		if err != nil {
			return nil, storeError(err, "failed to scan idea")
		}
		list = append(list, *idea)
	}
	if err := rows.Err(); err != nil {
		return nil, storeError(err, "failed to query ideas")
	}

	span.SetAttributes(observability.AttributeCount(len(list)))
	return list, nil
}

// GetIdea fetches a single idea.
func (s *IdeaService) GetIdea(ctx context.Context, id int) (result0 *models.Idea, err error) {
	ctx, span := observability.TraceIdeaFunction(ctx, "get_idea", observability.AttributeIdeaID(id))
	defer observability.FinishSpan(span, &err)

	return s.queryIdea(ctx, id, "failed to get idea",
		fmt.Sprintf("SELECT %s FROM ideas WHERE id = $1", ideaColumns), id)
}

// queryIdea runs a single-row statement returning idea columns, mapping no rows to not-found.
func (s *IdeaService) queryIdea(ctx context.Context, id int, failure, q string, args ...interface{}) (*models.Idea, error) {
	idea, err := scanIdea(s.db.QueryRowContext(ctx, q, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, contextutils.NewNotFoundError("Idea", id)
	}
	if err != nil {
		return nil, storeError(err, failure)
	}
	return idea, nil
}

// CreateIdea inserts a new idea with status pending and zero votes.
func (s *IdeaService) CreateIdea(ctx context.Context, req models.CreateIdeaRequest) (result0 *models.Idea, err error) {
	ctx, span := observability.TraceIdeaFunction(ctx, "create_idea")
	defer observability.FinishSpan(span, &err)

	q := fmt.Sprintf(`INSERT INTO ideas (author_name, title, description, category)
              VALUES ($1, $2, $3, $4) RETURNING %s`, ideaColumns)
	idea, err := scanIdea(s.db.QueryRowContext(ctx, q, req.AuthorName, req.Title, req.Description, req.Category))
	if err != nil {
		return nil, storeError(err, "failed to insert idea")
	}

	span.SetAttributes(observability.AttributeIdeaID(idea.ID))
	s.instruments.RecordCreated(ctx, query.Ideas.Table)
	s.logger.Info(ctx, "Idea created", map[string]interface{}{"idea_id": idea.ID, "category": idea.Category})
	return idea, nil
}

func ideaExists(ctx context.Context, db *sql.DB, id int) (bool, error) {
	var exists bool
	err := db.QueryRowContext(ctx, "SELECT EXISTS(SELECT 1 FROM ideas WHERE id = $1)", id).Scan(&exists)
	if err != nil {
		return false, storeError(err, "failed to check idea")
	}
	return exists, nil
}

// UpdateIdea writes only the fields present in req and refreshes updated_at.
// A missing idea is reported before an empty patch.
func (s *IdeaService) UpdateIdea(ctx context.Context, id int, req models.UpdateIdeaRequest) (result0 *models.Idea, err error) {
	ctx, span := observability.TraceIdeaFunction(ctx, "update_idea", observability.AttributeIdeaID(id))
	defer observability.FinishSpan(span, &err)

	exists, err := ideaExists(ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, contextutils.NewNotFoundError("Idea", id)
	}

	update := query.NewUpdate(query.Ideas)
	if req.AuthorName != nil {
		update.Set("author_name", *req.AuthorName)
	}
	if req.Title != nil {
		update.Set("title", *req.Title)
	}
	if req.Description != nil {
		update.Set("description", *req.Description)
	}
	if req.Category != nil {
		update.Set("category", *req.Category)
	}
	if req.Status != nil {
		update.Set("status", *req.Status)
	}

	q, args, err := update.Build(id)
	if err != nil {
		return nil, err
	}

	idea, err := s.queryIdea(ctx, id, "failed to update idea", q, args...)
	if err != nil {
		return nil, err
	}

	s.logger.Info(ctx, "Idea updated", map[string]interface{}{"idea_id": id})
	return idea, nil
}

// DeleteIdea removes an idea and returns the deleted row.
func (s *IdeaService) DeleteIdea(ctx context.Context, id int) (result0 *models.Idea, err error) {
	ctx, span := observability.TraceIdeaFunction(ctx, "delete_idea", observability.AttributeIdeaID(id))
	defer observability.FinishSpan(span, &err)

	idea, err := s.queryIdea(ctx, id, "failed to delete idea",
		fmt.Sprintf("DELETE FROM ideas WHERE id = $1 RETURNING %s", ideaColumns), id)
	if err != nil {
		return nil, err
	}

	s.logger.Info(ctx, "Idea deleted", map[string]interface{}{"idea_id": id})
	return idea, nil
}

// VoteIdea adds exactly one vote in a single atomic statement and returns the
// post-increment row.
func (s *IdeaService) VoteIdea(ctx context.Context, id int) (result0 *models.Idea, err error) {
	ctx, span := observability.TraceIdeaFunction(ctx, "vote_idea", observability.AttributeIdeaID(id))
	defer observability.FinishSpan(span, &err)

	idea, err := s.queryIdea(ctx, id, "failed to vote for idea",
		fmt.Sprintf("UPDATE ideas SET votes = votes + 1 WHERE id = $1 RETURNING %s", ideaColumns), id)
	if err != nil {
		return nil, err
	}

	s.instruments.RecordVote(ctx)
	s.logger.Debug(ctx, "Idea voted", map[string]interface{}{"idea_id": id, "votes": idea.Votes})
	return idea, nil
}

// SetIdeaStatus moves an idea to a new moderation status.
func (s *IdeaService) SetIdeaStatus(ctx context.Context, id int, status models.IdeaStatus) (*models.Idea, error) {
	if !status.Valid() {
		return nil, contextutils.NewValidationError(fmt.Sprintf("status must be one of: %s", joinStatuses()))
	}
	return s.UpdateIdea(ctx, id, models.UpdateIdeaRequest{Status: &status})
}

func joinStatuses() string {
	parts := make([]string, len(models.IdeaStatuses))
	for i, st := range models.IdeaStatuses {
		parts[i] = string(st)
	}
	return strings.Join(parts, ", ")
}
