package models

import "time"

// Solution is a remedy proposed for one Problem.
type Solution struct {
	ID          int       `json:"id"`
	ProblemID   int       `json:"problem_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Level       Level     `json:"level"`
	Difficulty  Rank      `json:"difficulty"`
	Impact      Rank      `json:"impact"`
	CreatedAt   time.Time `json:"created_at"`
}

// CreateSolutionRequest is the body of POST /api/solutions.
type CreateSolutionRequest struct {
	ProblemID   int    `json:"problem_id" validate:"required,gte=1"`
	Title       string `json:"title" validate:"required,max=255"`
	Description string `json:"description" validate:"required"`
	Level       Level  `json:"level" validate:"required,oneof=individual community government"`
	Difficulty  Rank   `json:"difficulty" validate:"required,oneof=low medium high"`
	Impact      Rank   `json:"impact" validate:"required,oneof=low medium high"`
}

// SolutionFilter holds the recognised query parameters of GET /api/solutions.
// ProblemID is set from the path on the nested problem route.
type SolutionFilter struct {
	Level      string `form:"level" validate:"omitempty,oneof=individual community government"`
	Difficulty string `form:"difficulty" validate:"omitempty,oneof=low medium high"`
	Impact     string `form:"impact" validate:"omitempty,oneof=low medium high"`
	ProblemID  int    `form:"-"`
}
