package models

import "time"

// Idea is a community-submitted improvement proposal.
type Idea struct {
	ID          int        `json:"id"`
	AuthorName  string     `json:"author_name"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Category    Category   `json:"category"`
	Status      IdeaStatus `json:"status"`
	Votes       int        `json:"votes"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// CreateIdeaRequest is the body of POST /api/ideas. New ideas always start pending.
type CreateIdeaRequest struct {
	AuthorName  string   `json:"author_name" validate:"required,max=100"`
	Title       string   `json:"title" validate:"required,max=255"`
	Description string   `json:"description" validate:"required"`
	Category    Category `json:"category" validate:"required,oneof=Water Forest Air Waste Radiation Soil"`
}

// UpdateIdeaRequest is the body of PUT /api/ideas/:id. Nil fields (absent or
// null in the JSON body) are left untouched.
type UpdateIdeaRequest struct {
	AuthorName  *string     `json:"author_name" validate:"omitempty,min=1,max=100"`
	Title       *string     `json:"title" validate:"omitempty,min=1,max=255"`
	Description *string     `json:"description" validate:"omitempty,min=1"`
	Category    *Category   `json:"category" validate:"omitempty,oneof=Water Forest Air Waste Radiation Soil"`
	Status      *IdeaStatus `json:"status" validate:"omitempty,oneof=pending approved in_progress implemented rejected"`
}

// IsEmpty reports whether the patch carries no fields.
func (r UpdateIdeaRequest) IsEmpty() bool {
	return r.AuthorName == nil && r.Title == nil && r.Description == nil &&
		r.Category == nil && r.Status == nil
}

// IdeaFilter holds the recognised query parameters of GET /api/ideas.
type IdeaFilter struct {
	Category string `form:"category" validate:"omitempty,oneof=Water Forest Air Waste Radiation Soil"`
	Status   string `form:"status" validate:"omitempty,oneof=pending approved in_progress implemented rejected"`
	// Sort is "votes" or anything else for creation time.
	Sort string `form:"sort"`
	// Order is "asc" or anything else for descending.
	Order string `form:"order"`
}
