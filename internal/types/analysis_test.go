package types

import (
	"encoding/json"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalysisInput_Validate(t *testing.T) {
	tests := []struct {
		name    string
		input   AnalysisInput
		wantErr bool
	}{
		{name: "both present", input: AnalysisInput{JobDescription: "Backend engineer", UserSkills: "Go, SQL"}},
		{name: "missing job", input: AnalysisInput{UserSkills: "Go"}, wantErr: true},
		{name: "missing skills", input: AnalysisInput{JobDescription: "Backend engineer"}, wantErr: true},
		{name: "both missing", input: AnalysisInput{}, wantErr: true},
		{name: "whitespace only", input: AnalysisInput{JobDescription: "  \n", UserSkills: "Go"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.input.Validate()
			if tt.wantErr {
				require.Error(t, err)
				var verrs validator.ValidationErrors
				assert.ErrorAs(t, err, &verrs)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestAnalysisInput_Normalize(t *testing.T) {
	in := AnalysisInput{JobDescription: "  Data engineer \n", UserSkills: "\tSQL "}
	out := in.Normalize()

	assert.Equal(t, "Data engineer", out.JobDescription)
	assert.Equal(t, "SQL", out.UserSkills)
	assert.Equal(t, "  Data engineer \n", in.JobDescription, "original should be unchanged")
}

func TestAnalysisResult_Clone(t *testing.T) {
	orig := &AnalysisResult{CommonSkills: []string{"SQL"}, SkillsToDevelop: []string{"Rust"}}
	cp := orig.Clone()
	cp.CommonSkills[0] = "changed"

	assert.Equal(t, "SQL", orig.CommonSkills[0])
	assert.Equal(t, []string{"Rust"}, cp.SkillsToDevelop)

	var nilResult *AnalysisResult
	assert.Nil(t, nilResult.Clone())
}

func TestAnalysisResult_CloneKeepsEmptyLists(t *testing.T) {
	cp := (&AnalysisResult{CommonSkills: []string{}, SkillsToDevelop: []string{}}).Clone()

	data, err := json.Marshal(cp)
	require.NoError(t, err)
	assert.JSONEq(t, `{"commonSkills":[],"skillsToDevelop":[]}`, string(data))
}
