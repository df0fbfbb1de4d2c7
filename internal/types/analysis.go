// Package types provides type definitions for structured data used throughout the skill gap analyzer.
package types

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

// AnalysisInput is the pair of free-form texts supplied by the user.
type AnalysisInput struct {
	JobDescription string `json:"jobDescription" validate:"required"`
	UserSkills     string `json:"userSkills" validate:"required"`
}

// Normalize returns a copy of the input with surrounding whitespace removed.
func (in AnalysisInput) Normalize() AnalysisInput {
	return AnalysisInput{
		JobDescription: strings.TrimSpace(in.JobDescription),
		UserSkills:     strings.TrimSpace(in.UserSkills),
	}
}

// Validate validates the AnalysisInput using the validator.
// Whitespace-only fields count as missing.
func (in AnalysisInput) Validate() error {
	validate := validator.New()
	normalized := in.Normalize()
	return validate.Struct(&normalized)
}

// AnalysisResult is the gap analysis returned by the model.
// Contents are not normalized: skills may repeat or arrive in any order.
type AnalysisResult struct {
	CommonSkills    []string `json:"commonSkills"`
	SkillsToDevelop []string `json:"skillsToDevelop"`
}

// Clone returns a deep copy so callers cannot mutate shared state.
func (r *AnalysisResult) Clone() *AnalysisResult {
	if r == nil {
		return nil
	}
	return &AnalysisResult{
		CommonSkills:    cloneStrings(r.CommonSkills),
		SkillsToDevelop: cloneStrings(r.SkillsToDevelop),
	}
}

// cloneStrings copies s, keeping an empty list distinct from nil so the
// JSON form stays [] rather than null.
func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	out := make([]string, len(s))
	copy(out, s)
	return out
}
