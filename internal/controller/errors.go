package controller

import (
	"errors"
	"fmt"
)

// ErrAnalysisInFlight is returned when an analysis is requested while another
// one for the same controller has not settled yet.
var ErrAnalysisInFlight = errors.New("an analysis is already in progress")

// ValidationError indicates required input was missing. No analysis was attempted.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error: missing %v", e.Fields)
}

// User-visible messages.
const (
	MessageMissingInput   = "Please fill in both the job description and your skills."
	MessageAnalysisFailed = "An error occurred while analyzing your skills. Please try again."
)
