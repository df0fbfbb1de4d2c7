package schemas

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateAnalysis(t *testing.T) {
	tests := []struct {
		name      string
		json      string
		wantError bool
	}{
		{name: "valid", json: `{"commonSkills": ["SQL"], "skillsToDevelop": ["Rust"]}`},
		{name: "empty arrays", json: `{"commonSkills": [], "skillsToDevelop": []}`},
		{name: "extra field allowed", json: `{"commonSkills": [], "skillsToDevelop": [], "notes": "x"}`},
		{name: "missing skillsToDevelop", json: `{"commonSkills": ["SQL"]}`, wantError: true},
		{name: "missing both", json: `{}`, wantError: true},
		{name: "wrong item type", json: `{"commonSkills": [1], "skillsToDevelop": []}`, wantError: true},
		{name: "not an object", json: `["SQL"]`, wantError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateAnalysis(tt.json)
			if !tt.wantError {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			var validationErr *ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.NotEmpty(t, validationErr.Errors)
		})
	}
}

func TestValidateAnalysis_MissingFieldNamed(t *testing.T) {
	err := ValidateAnalysis(`{"commonSkills": []}`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "skillsToDevelop")
}

func TestValidateAnalysis_MalformedDocument(t *testing.T) {
	err := ValidateAnalysis(`{ invalid json }`)
	require.Error(t, err)
	var validationErr *ValidationError
	assert.False(t, errors.As(err, &validationErr), "malformed input is a load failure, not a field error")
}

func TestValidateEmbedded_UnknownSchema(t *testing.T) {
	err := ValidateEmbedded("missing.schema.json", `{}`)
	require.Error(t, err)
	var loadErr *SchemaLoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Equal(t, "missing.schema.json", loadErr.Path)
}

func TestValidationError_Error(t *testing.T) {
	err := &ValidationError{
		Errors: []FieldError{
			{Field: "commonSkills", Message: "is required"},
			{Field: "skillsToDevelop.0", Message: "must be a string"},
		},
	}

	errorMsg := err.Error()
	assert.Contains(t, errorMsg, "validation failed")
	assert.Contains(t, errorMsg, "commonSkills")
	assert.Contains(t, errorMsg, "skillsToDevelop.0")
}
