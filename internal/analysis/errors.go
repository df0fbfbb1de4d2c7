package analysis

import "fmt"

// ErrorKind classifies why an analysis failed. It is kept for logs and
// callers that branch on it; users only ever see the generic message.
type ErrorKind string

const (
	// KindTransport covers client construction, network and upstream API failures.
	KindTransport ErrorKind = "transport"
	// KindParse means the response text was not valid JSON for the result shape.
	KindParse ErrorKind = "parse"
	// KindSchema means the JSON parsed but did not match the declared schema.
	KindSchema ErrorKind = "schema"
)

// genericMessage is the only failure text exposed outside the package.
const genericMessage = "failed to analyze skills"

// AnalysisError is returned for every downstream failure of Analyze.
// Error() deliberately omits the cause; use Unwrap or Detail for diagnostics.
type AnalysisError struct {
	Kind  ErrorKind
	Cause error
}

func (e *AnalysisError) Error() string {
	return genericMessage
}

func (e *AnalysisError) Unwrap() error {
	return e.Cause
}

// Detail returns the kind and underlying cause for local logging.
func (e *AnalysisError) Detail() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Kind, e.Cause)
	}
	return string(e.Kind)
}
