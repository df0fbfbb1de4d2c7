// Package analysis performs the skill gap analysis against a generative model.
package analysis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/jonathan/skillgap/internal/llm"
	"github.com/jonathan/skillgap/internal/prompts"
	"github.com/jonathan/skillgap/internal/schemas"
	"github.com/jonathan/skillgap/internal/types"
)

// Analyzer is the contract the presentation layer depends on.
type Analyzer interface {
	Analyze(ctx context.Context, jobDescription, userSkills string) (*types.AnalysisResult, error)
}

// Client turns one analysis request into exactly one model call.
type Client struct {
	llm  llm.Client
	tier llm.ModelTier
}

// Option configures a Client.
type Option func(*Client)

// WithTier selects the model tier used for the analysis.
func WithTier(tier llm.ModelTier) Option {
	return func(c *Client) {
		c.tier = tier
	}
}

// NewClient wraps an LLM client. The caller owns the LLM client's lifetime.
func NewClient(client llm.Client, opts ...Option) *Client {
	c := &Client{
		llm:  client,
		tier: llm.TierStandard,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Analyze compares a job description with the user's skills.
// Every failure is returned as *AnalysisError.
func (c *Client) Analyze(ctx context.Context, jobDescription, userSkills string) (*types.AnalysisResult, error) {
	if c.llm == nil {
		return nil, c.fail(&AnalysisError{Kind: KindTransport, Cause: errors.New("LLM client is not configured")})
	}

	prompt := BuildPrompt(jobDescription, userSkills)

	responseText, err := c.llm.GenerateJSON(ctx, prompt, c.tier, ResponseSchema())
	if err != nil {
		return nil, c.fail(&AnalysisError{Kind: KindTransport, Cause: err})
	}

	result, err := ParseResponse(responseText)
	if err != nil {
		return nil, c.fail(err)
	}

	log.Printf("[analysis] completed: %d common, %d to develop", len(result.CommonSkills), len(result.SkillsToDevelop))
	return result, nil
}

func (c *Client) fail(err error) error {
	var analysisErr *AnalysisError
	if !errors.As(err, &analysisErr) {
		return err
	}
	model := "unconfigured"
	if c.llm != nil {
		model = c.llm.GetModel(c.tier)
	}
	log.Printf("[analysis] failed (model %s): %s", model, analysisErr.Detail())
	return err
}

// BuildPrompt embeds both texts verbatim between delimiter lines.
func BuildPrompt(jobDescription, userSkills string) string {
	template := prompts.MustGet(prompts.SkillGap)
	return prompts.Format(template, map[string]string{
		"JobDescription": jobDescription,
		"UserSkills":     userSkills,
	})
}

var (
	responseSchema     *llm.Schema
	responseSchemaOnce sync.Once
)

// ResponseSchema declares the object the model is asked to return.
// The model treats it as advisory; ParseResponse enforces it locally.
func ResponseSchema() *llm.Schema {
	responseSchemaOnce.Do(func() {
		responseSchema = &llm.Schema{
			Type: llm.TypeObject,
			Properties: map[string]*llm.Schema{
				"commonSkills": llm.StringArray(
					prompts.MustGet(prompts.CommonSkillsField),
					prompts.MustGet(prompts.CommonSkillsItem),
				),
				"skillsToDevelop": llm.StringArray(
					prompts.MustGet(prompts.SkillsToDevelopField),
					prompts.MustGet(prompts.SkillsToDevelopItem),
				),
			},
			Required: []string{"commonSkills", "skillsToDevelop"},
		}
	})
	return responseSchema
}

// ParseResponse decodes and validates the model's text.
func ParseResponse(text string) (*types.AnalysisResult, error) {
	cleaned := llm.CleanJSONBlock(text)

	var result types.AnalysisResult
	if err := json.Unmarshal([]byte(cleaned), &result); err != nil {
		return nil, &AnalysisError{Kind: KindParse, Cause: fmt.Errorf("invalid JSON response: %w", err)}
	}

	if err := schemas.ValidateAnalysis(cleaned); err != nil {
		return nil, &AnalysisError{Kind: KindSchema, Cause: err}
	}

	return &result, nil
}
