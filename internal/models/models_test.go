package models

import (
	"database/sql"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProblem_MarshalJSON(t *testing.T) {
	created := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	t.Run("null image", func(t *testing.T) {
		p := Problem{ID: 1, Title: "Smog", Description: "d", Category: CategoryAir, Severity: 4, CreatedAt: created}
		raw, err := json.Marshal(p)
		require.NoError(t, err)

		var out map[string]interface{}
		require.NoError(t, json.Unmarshal(raw, &out))
		assert.Contains(t, out, "image_url")
		assert.Nil(t, out["image_url"])
		assert.Equal(t, "Air", out["category"])
		assert.Equal(t, float64(4), out["severity"])
		assert.Equal(t, "2024-05-01T10:00:00Z", out["created_at"])
	})

	t.Run("image present", func(t *testing.T) {
		p := Problem{ID: 2, ImageURL: sql.NullString{String: "https://img.example/a.png", Valid: true}}
		raw, err := json.Marshal(p)
		require.NoError(t, err)
		assert.Contains(t, string(raw), `"image_url":"https://img.example/a.png"`)
	})
}

func TestUpdateIdeaRequest_IsEmpty(t *testing.T) {
	var empty UpdateIdeaRequest
	assert.True(t, empty.IsEmpty())

	// JSON null is treated like an absent field.
	require.NoError(t, json.Unmarshal([]byte(`{"title":null,"status":null}`), &empty))
	assert.True(t, empty.IsEmpty())

	var patch UpdateIdeaRequest
	require.NoError(t, json.Unmarshal([]byte(`{"status":"approved"}`), &patch))
	assert.False(t, patch.IsEmpty())
	assert.Equal(t, IdeaStatusApproved, *patch.Status)
}

func TestEnumValidity(t *testing.T) {
	assert.True(t, CategoryRadiation.Valid())
	assert.False(t, Category("water").Valid(), "categories are case sensitive")
	assert.True(t, LevelCommunity.Valid())
	assert.False(t, Level("global").Valid())
	assert.True(t, RankHigh.Valid())
	assert.False(t, Rank("extreme").Valid())
	assert.True(t, IdeaStatusInProgress.Valid())
	assert.False(t, IdeaStatus("done").Valid())
}
