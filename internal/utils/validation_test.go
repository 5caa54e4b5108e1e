package contextutils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleRequest struct {
	AuthorName string `json:"author_name" validate:"required,max=100"`
	Title      string `json:"title" validate:"required,max=255"`
	Category   string `json:"category" validate:"required,oneof=Water Forest"`
	ProblemID  int    `json:"problem_id" validate:"omitempty,gte=1"`
}

func TestValidateStruct_Valid(t *testing.T) {
	req := sampleRequest{AuthorName: "A", Title: "T", Category: "Water"}
	assert.NoError(t, ValidateStruct(req))
}

func TestValidateStruct_MissingFieldsCollected(t *testing.T) {
	err := ValidateStruct(sampleRequest{Category: "Water"})
	require.Error(t, err)

	var appErr *AppError
	require.True(t, AsError(err, &appErr))
	assert.Equal(t, ErrorCodeMissingRequired, appErr.Code)
	assert.Equal(t, "author_name, title", appErr.Details)
}

func TestValidateStruct_Length(t *testing.T) {
	err := ValidateStruct(sampleRequest{
		AuthorName: strings.Repeat("a", 101),
		Title:      "T",
		Category:   "Water",
	})
	require.Error(t, err)

	var appErr *AppError
	require.True(t, AsError(err, &appErr))
	assert.Equal(t, ErrorCodeValidationFailed, appErr.Code)
	assert.Equal(t, "author_name must not exceed 100 characters", appErr.Message)
}

func TestValidateStruct_Enum(t *testing.T) {
	err := ValidateStruct(sampleRequest{AuthorName: "A", Title: "T", Category: "Lava"})
	require.Error(t, err)

	var appErr *AppError
	require.True(t, AsError(err, &appErr))
	assert.Equal(t, "category must be one of: Water, Forest", appErr.Message)
}

func TestValidateStruct_QueryFilterUsesFormNames(t *testing.T) {
	filter := struct {
		Category string `form:"category" validate:"omitempty,oneof=Water Forest"`
		SortBy   string `form:"sort" json:"-" validate:"omitempty,oneof=votes created_at"`
	}{Category: "Lava"}

	err := ValidateStruct(filter)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "category must be one of: Water, Forest")

	filter.Category, filter.SortBy = "Water", "rank"
	err = ValidateStruct(filter)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sort must be one of: votes, created_at")
}

func TestValidateStruct_Range(t *testing.T) {
	err := ValidateStruct(sampleRequest{AuthorName: "A", Title: "T", Category: "Forest", ProblemID: -3})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "problem_id is out of range")
}
