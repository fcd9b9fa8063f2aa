package util

import (
	"Inkstone/internal/api/dto"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateDTOCollectsAllViolations(t *testing.T) {
	req := &dto.CreatePostDTO{
		Title:    "Hi",
		Content:  "short",
		Category: "not-an-object-id",
		Status:   "unknown",
	}

	err := ValidateDTO(req)
	require.Error(t, err)

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	require.Len(t, vErr.Violations, 4)

	byField := make(map[string]string, len(vErr.Violations))
	for _, v := range vErr.Violations {
		byField[v.Field] = v.Message
	}

	assert.Equal(t, "must be at least 5 characters long", byField["title"])
	assert.Equal(t, "must be at least 10 characters long", byField["content"])
	assert.Equal(t, "must be a valid object id", byField["category"])
	assert.Equal(t, "must be one of: draft published archived", byField["status"])
}

func TestValidateDTORequiredFields(t *testing.T) {
	err := ValidateDTO(&dto.CreatePostDTO{})
	require.Error(t, err)

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)

	fields := make([]string, 0, len(vErr.Violations))
	for _, v := range vErr.Violations {
		fields = append(fields, v.Field)
		assert.Equal(t, "is required", v.Message)
	}
	assert.ElementsMatch(t, []string{"title", "content", "category"}, fields)
}

func TestValidateDTOValidPayload(t *testing.T) {
	req := &dto.CreatePostDTO{
		Title:    "A Perfectly Valid Title",
		Content:  "Content that is clearly longer than ten characters.",
		Category: "507f1f77bcf86cd799439011",
		Status:   "published",
	}

	assert.NoError(t, ValidateDTO(req))
}

func TestValidateDTOQueryBounds(t *testing.T) {
	err := ValidateDTO(&dto.PostQueryDTO{Page: 0, Limit: 500})
	require.Error(t, err)

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	require.Len(t, vErr.Violations, 1)
	assert.Equal(t, "limit", vErr.Violations[0].Field)
	assert.Equal(t, "must be at most 100", vErr.Violations[0].Message)
}
