package llm

import (
	"testing"

	"github.com/google/generative-ai-go/genai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractTextFromResponse(t *testing.T) {
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Parts: []genai.Part{
				genai.Text(`{"commonSkills": ["SQL"], `),
				genai.Text(`"skillsToDevelop": ["Rust"]}`),
			}},
		}},
	}

	text, err := extractTextFromResponse(resp)
	require.NoError(t, err)
	assert.Equal(t, `{"commonSkills": ["SQL"], "skillsToDevelop": ["Rust"]}`, text)
}

func TestExtractTextFromResponse_Errors(t *testing.T) {
	tests := []struct {
		name    string
		resp    *genai.GenerateContentResponse
		wantErr string
	}{
		{name: "nil response", resp: nil, wantErr: "empty response"},
		{name: "no candidates", resp: &genai.GenerateContentResponse{}, wantErr: "no candidates"},
		{
			name:    "no content",
			resp:    &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{}}},
			wantErr: "no content",
		},
		{
			name: "blocked prompt",
			resp: &genai.GenerateContentResponse{
				PromptFeedback: &genai.PromptFeedback{BlockReason: genai.BlockReasonSafety},
			},
			wantErr: "prompt blocked",
		},
		{
			name: "non-text parts",
			resp: &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{
				Content: &genai.Content{Parts: []genai.Part{genai.Blob{MIMEType: "image/png"}}},
			}}},
			wantErr: "no text parts",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := extractTextFromResponse(tt.resp)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestSchemaToGenai(t *testing.T) {
	schema := &Schema{
		Type: TypeObject,
		Properties: map[string]*Schema{
			"commonSkills": StringArray("shared skills", "one skill"),
		},
		Required: []string{"commonSkills"},
	}

	out := schema.toGenai()
	require.NotNil(t, out)
	assert.Equal(t, genai.TypeObject, out.Type)
	assert.Equal(t, []string{"commonSkills"}, out.Required)

	prop := out.Properties["commonSkills"]
	require.NotNil(t, prop)
	assert.Equal(t, genai.TypeArray, prop.Type)
	assert.Equal(t, "shared skills", prop.Description)
	require.NotNil(t, prop.Items)
	assert.Equal(t, genai.TypeString, prop.Items.Type)

	var nilSchema *Schema
	assert.Nil(t, nilSchema.toGenai())
}
