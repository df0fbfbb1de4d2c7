package schemas

import (
	"encoding/json"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xeipuuv/gojsonschema"
)

func TestAllSchemaFiles_ValidJSON(t *testing.T) {
	names, err := fs.Glob(Files, "*.schema.json")
	require.NoError(t, err)
	require.NotEmpty(t, names)

	for _, name := range names {
		t.Run(name, func(t *testing.T) {
			data, err := Files.ReadFile(name)
			require.NoError(t, err)

			var doc map[string]any
			require.NoError(t, json.Unmarshal(data, &doc))
			assert.Equal(t, "object", doc["type"])

			_, err = gojsonschema.NewSchema(gojsonschema.NewBytesLoader(data))
			assert.NoError(t, err, "schema should compile")
		})
	}
}

func TestSkillGapAnalysis_RequiredFields(t *testing.T) {
	data, err := Files.ReadFile(SkillGapAnalysis)
	require.NoError(t, err)

	var doc struct {
		Required []string `json:"required"`
	}
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.ElementsMatch(t, []string{"commonSkills", "skillsToDevelop"}, doc.Required)
}
