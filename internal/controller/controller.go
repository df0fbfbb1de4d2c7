// Package controller holds the presentation state of the skill gap form and
// drives a single analysis at a time.
package controller

import (
	"context"
	"errors"
	"log"
	"sync"
	"sync/atomic"

	"github.com/go-playground/validator/v10"
	"github.com/jonathan/skillgap/internal/analysis"
	"github.com/jonathan/skillgap/internal/types"
)

// State is a point-in-time copy of what the view renders.
type State struct {
	JobDescription string
	UserSkills     string
	Loading        bool
	Error          string
	Result         *types.AnalysisResult
}

// HasResult reports whether the result buttons should be shown.
func (s State) HasResult() bool {
	return s.Result != nil && !s.Loading
}

// Controller owns the loading flag, error message and result for one user.
type Controller struct {
	analyzer analysis.Analyzer

	inFlight atomic.Bool

	mu    sync.RWMutex
	state State
}

// New creates a Controller backed by the given analyzer.
func New(analyzer analysis.Analyzer) *Controller {
	return &Controller{analyzer: analyzer}
}

// RequestAnalysis validates the inputs, then runs one analysis and waits for it.
// It returns *ValidationError for missing input, ErrAnalysisInFlight when a
// request is pending, or the analyzer's error.
func (c *Controller) RequestAnalysis(ctx context.Context, jobDescription, userSkills string) error {
	in, err := c.begin(jobDescription, userSkills)
	if err != nil {
		return err
	}
	return c.run(ctx, in)
}

// Submit performs the same checks as RequestAnalysis synchronously and then
// runs the analysis in the background. The returned channel is closed once
// the analysis has settled.
func (c *Controller) Submit(ctx context.Context, jobDescription, userSkills string) (<-chan struct{}, error) {
	in, err := c.begin(jobDescription, userSkills)
	if err != nil {
		return nil, err
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = c.run(ctx, in)
	}()
	return done, nil
}

// Snapshot returns a copy of the current state.
func (c *Controller) Snapshot() State {
	c.mu.RLock()
	defer c.mu.RUnlock()

	s := c.state
	s.Result = c.state.Result.Clone()
	return s
}

// begin validates input and claims the in-flight slot. On success the
// controller is in the loading state with error and result cleared.
func (c *Controller) begin(jobDescription, userSkills string) (types.AnalysisInput, error) {
	in := types.AnalysisInput{JobDescription: jobDescription, UserSkills: userSkills}

	if err := in.Validate(); err != nil {
		c.mu.Lock()
		defer c.mu.Unlock()
		// A pending analysis keeps its state; the rejection is still reported.
		// The slot is checked under mu so a request that claims it meanwhile
		// writes its loading state after this one.
		if c.inFlight.Load() {
			return in, ErrAnalysisInFlight
		}
		c.state.JobDescription = jobDescription
		c.state.UserSkills = userSkills
		c.state.Error = MessageMissingInput
		return in, missingFields(err)
	}

	if !c.inFlight.CompareAndSwap(false, true) {
		return in, ErrAnalysisInFlight
	}

	c.mu.Lock()
	c.state = State{
		JobDescription: jobDescription,
		UserSkills:     userSkills,
		Loading:        true,
	}
	c.mu.Unlock()

	return in, nil
}

// run calls the analyzer and settles the state. The caller must hold the
// in-flight slot.
func (c *Controller) run(ctx context.Context, in types.AnalysisInput) error {
	defer c.inFlight.Store(false)

	result, err := c.analyzer.Analyze(ctx, in.JobDescription, in.UserSkills)

	c.mu.Lock()
	defer c.mu.Unlock()

	c.state.Loading = false
	if err != nil {
		log.Printf("[controller] analysis failed: %v", detail(err))
		c.state.Error = MessageAnalysisFailed
		c.state.Result = nil
		return err
	}

	c.state.Error = ""
	c.state.Result = result.Clone()
	return nil
}

func detail(err error) string {
	var analysisErr *analysis.AnalysisError
	if errors.As(err, &analysisErr) {
		return analysisErr.Detail()
	}
	return err.Error()
}

func missingFields(err error) *ValidationError {
	vErr := &ValidationError{}
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		for _, fe := range fieldErrs {
			vErr.Fields = append(vErr.Fields, fe.Field())
		}
	}
	return vErr
}
