package controller

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jonathan/skillgap/internal/analysis"
	"github.com/jonathan/skillgap/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubAnalyzer counts calls and optionally blocks until released.
type stubAnalyzer struct {
	result *types.AnalysisResult
	err    error

	calls   atomic.Int32
	started chan struct{}
	release chan struct{}
}

func (s *stubAnalyzer) Analyze(ctx context.Context, _, _ string) (*types.AnalysisResult, error) {
	s.calls.Add(1)
	if s.started != nil {
		s.started <- struct{}{}
	}
	if s.release != nil {
		select {
		case <-s.release:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return s.result, s.err
}

func TestRequestAnalysis_CallsAnalyzerOnce(t *testing.T) {
	stub := &stubAnalyzer{result: &types.AnalysisResult{CommonSkills: []string{"SQL"}, SkillsToDevelop: []string{"Rust"}}}
	c := New(stub)

	err := c.RequestAnalysis(context.Background(), "Data engineer with SQL and Rust", "SQL")
	require.NoError(t, err)

	assert.Equal(t, int32(1), stub.calls.Load())

	state := c.Snapshot()
	assert.False(t, state.Loading)
	assert.Empty(t, state.Error)
	require.NotNil(t, state.Result)
	assert.Equal(t, []string{"SQL"}, state.Result.CommonSkills)
	assert.Equal(t, []string{"Rust"}, state.Result.SkillsToDevelop)
	assert.True(t, state.HasResult())
}

func TestRequestAnalysis_MissingInput(t *testing.T) {
	tests := []struct {
		name           string
		job, skills    string
		expectedFields []string
	}{
		{name: "empty job", skills: "SQL", expectedFields: []string{"JobDescription"}},
		{name: "empty skills", job: "Engineer", expectedFields: []string{"UserSkills"}},
		{name: "both empty", expectedFields: []string{"JobDescription", "UserSkills"}},
		{name: "whitespace", job: "   ", skills: "\n", expectedFields: []string{"JobDescription", "UserSkills"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stub := &stubAnalyzer{}
			c := New(stub)

			err := c.RequestAnalysis(context.Background(), tt.job, tt.skills)

			var vErr *ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.ElementsMatch(t, tt.expectedFields, vErr.Fields)
			assert.Equal(t, int32(0), stub.calls.Load())

			state := c.Snapshot()
			assert.Equal(t, MessageMissingInput, state.Error)
			assert.False(t, state.Loading)
			assert.Nil(t, state.Result)
		})
	}
}

func TestRequestAnalysis_Failure(t *testing.T) {
	failures := map[string]error{
		"transport": &analysis.AnalysisError{Kind: analysis.KindTransport, Cause: errors.New("dial tcp: timeout")},
		"parse":     &analysis.AnalysisError{Kind: analysis.KindParse, Cause: errors.New("unexpected end of JSON input")},
	}

	for name, failure := range failures {
		t.Run(name, func(t *testing.T) {
			stub := &stubAnalyzer{err: failure}
			c := New(stub)

			err := c.RequestAnalysis(context.Background(), "Engineer", "Go")
			require.Error(t, err)

			state := c.Snapshot()
			assert.False(t, state.Loading)
			assert.Equal(t, MessageAnalysisFailed, state.Error)
			assert.Nil(t, state.Result)
			assert.False(t, state.HasResult())
		})
	}
}

func TestRequestAnalysis_ClearsPreviousResult(t *testing.T) {
	stub := &stubAnalyzer{result: &types.AnalysisResult{CommonSkills: []string{"Go"}}}
	c := New(stub)
	require.NoError(t, c.RequestAnalysis(context.Background(), "Engineer", "Go"))

	stub.result = nil
	stub.err = &analysis.AnalysisError{Kind: analysis.KindParse}
	require.Error(t, c.RequestAnalysis(context.Background(), "Engineer", "Go"))

	assert.Nil(t, c.Snapshot().Result)
}

func TestRequestAnalysis_RejectsWhilePending(t *testing.T) {
	stub := &stubAnalyzer{
		result:  &types.AnalysisResult{CommonSkills: []string{"SQL"}, SkillsToDevelop: []string{}},
		started: make(chan struct{}, 1),
		release: make(chan struct{}),
	}
	c := New(stub)

	var wg sync.WaitGroup
	wg.Add(1)
	var firstErr error
	go func() {
		defer wg.Done()
		firstErr = c.RequestAnalysis(context.Background(), "Engineer", "SQL")
	}()

	<-stub.started
	assert.True(t, c.Snapshot().Loading)

	err := c.RequestAnalysis(context.Background(), "Another job", "Go")
	assert.ErrorIs(t, err, ErrAnalysisInFlight)

	_, err = c.Submit(context.Background(), "Another job", "Go")
	assert.ErrorIs(t, err, ErrAnalysisInFlight)

	// Missing input while pending must not clobber the loading state either
	err = c.RequestAnalysis(context.Background(), "", "")
	assert.ErrorIs(t, err, ErrAnalysisInFlight)
	assert.True(t, c.Snapshot().Loading)

	close(stub.release)
	wg.Wait()

	require.NoError(t, firstErr)
	assert.Equal(t, int32(1), stub.calls.Load())
	assert.Equal(t, "Engineer", c.Snapshot().JobDescription)

	// Slot is free again
	require.NoError(t, c.RequestAnalysis(context.Background(), "Engineer", "SQL"))
	assert.Equal(t, int32(2), stub.calls.Load())
}

func TestRequestAnalysis_ConcurrentCallersOnlyOneRuns(t *testing.T) {
	stub := &stubAnalyzer{
		result:  &types.AnalysisResult{},
		release: make(chan struct{}),
	}
	c := New(stub)

	const callers = 8
	var wg sync.WaitGroup
	var rejected atomic.Int32
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := c.RequestAnalysis(context.Background(), "Engineer", "Go"); errors.Is(err, ErrAnalysisInFlight) {
				rejected.Add(1)
			}
		}()
	}

	// Wait until the winner is inside the analyzer, then let it finish
	require.Eventually(t, func() bool { return stub.calls.Load() == 1 }, time.Second, time.Millisecond)
	require.Eventually(t, func() bool { return rejected.Load() == callers-1 }, time.Second, time.Millisecond)
	close(stub.release)
	wg.Wait()

	assert.Equal(t, int32(1), stub.calls.Load())
}

func TestRequestAnalysis_MissingInputRacingSubmit(t *testing.T) {
	for i := 0; i < 200; i++ {
		stub := &stubAnalyzer{result: &types.AnalysisResult{}, release: make(chan struct{})}
		c := New(stub)

		var wg sync.WaitGroup
		var done <-chan struct{}
		var submitErr error
		wg.Add(2)
		go func() {
			defer wg.Done()
			done, submitErr = c.Submit(context.Background(), "Engineer", "Go")
		}()
		go func() {
			defer wg.Done()
			_ = c.RequestAnalysis(context.Background(), "", "")
		}()
		wg.Wait()

		require.NoError(t, submitErr)
		state := c.Snapshot()
		require.True(t, state.Loading)
		require.Empty(t, state.Error, "iteration %d", i)
		require.Equal(t, "Engineer", state.JobDescription, "iteration %d", i)

		close(stub.release)
		<-done
	}
}

func TestSubmit_RunsInBackground(t *testing.T) {
	stub := &stubAnalyzer{
		result:  &types.AnalysisResult{CommonSkills: []string{"SQL"}, SkillsToDevelop: []string{"Rust"}},
		release: make(chan struct{}),
	}
	c := New(stub)

	done, err := c.Submit(context.Background(), "Engineer", "SQL")
	require.NoError(t, err)

	assert.True(t, c.Snapshot().Loading)
	assert.False(t, c.Snapshot().HasResult())

	close(stub.release)
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("analysis did not settle")
	}

	state := c.Snapshot()
	assert.False(t, state.Loading)
	assert.True(t, state.HasResult())
}

func TestSubmit_ValidationIsSynchronous(t *testing.T) {
	stub := &stubAnalyzer{}
	c := New(stub)

	done, err := c.Submit(context.Background(), "", "Go")
	assert.Nil(t, done)

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, int32(0), stub.calls.Load())
}

func TestSnapshot_ReturnsCopy(t *testing.T) {
	stub := &stubAnalyzer{result: &types.AnalysisResult{CommonSkills: []string{"SQL"}}}
	c := New(stub)
	require.NoError(t, c.RequestAnalysis(context.Background(), "Engineer", "SQL"))

	snap := c.Snapshot()
	snap.Result.CommonSkills[0] = "mutated"

	assert.Equal(t, "SQL", c.Snapshot().Result.CommonSkills[0])
}
