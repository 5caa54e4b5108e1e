// Package models defines the records and request payloads of the eco atlas API.
package models

import (
	"database/sql"
	"encoding/json"
	"time"
)

// Problem is a catalogued ecological problem.
type Problem struct {
	ID          int            `json:"id"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Category    Category       `json:"category"`
	Severity    int            `json:"severity"`
	ImageURL    sql.NullString `json:"image_url"`
	CreatedAt   time.Time      `json:"created_at"`
}

// MarshalJSON renders image_url as null or a string.
func (p Problem) MarshalJSON() ([]byte, error) {
	type alias Problem
	return json.Marshal(&struct {
		alias
		ImageURL *string `json:"image_url"`
	}{
		alias:    alias(p),
		ImageURL: nullStringToPointer(p.ImageURL),
	})
}

// CreateProblemRequest is the body of POST /api/problems.
type CreateProblemRequest struct {
	Title       string   `json:"title" validate:"required,max=255"`
	Description string   `json:"description" validate:"required"`
	Category    Category `json:"category" validate:"required,oneof=Water Forest Air Waste Radiation Soil"`
	Severity    int      `json:"severity" validate:"required,gte=1,lte=5"`
	ImageURL    *string  `json:"image_url" validate:"omitempty,max=2048"`
}

// ProblemFilter holds the recognised query parameters of GET /api/problems.
type ProblemFilter struct {
	Category string `form:"category" validate:"omitempty,oneof=Water Forest Air Waste Radiation Soil"`
	Severity string `form:"severity" validate:"omitempty,oneof=1 2 3 4 5"`
}

func nullStringToPointer(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	return &ns.String
}
