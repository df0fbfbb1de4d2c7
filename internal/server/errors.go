package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/jonathan/skillgap/internal/analysis"
	"github.com/jonathan/skillgap/internal/controller"
)

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var validationErr *controller.ValidationError
	var analysisErr *analysis.AnalysisError

	switch {
	case errors.As(err, &validationErr):
		return http.StatusBadRequest
	case errors.Is(err, controller.ErrAnalysisInFlight):
		return http.StatusConflict
	case errors.As(err, &analysisErr):
		return http.StatusBadGateway
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// publicMessage returns the message shown to clients for an error.
// Analysis failures never expose their cause.
func publicMessage(err error) string {
	var validationErr *controller.ValidationError

	switch {
	case errors.As(err, &validationErr):
		return controller.MessageMissingInput
	case errors.Is(err, controller.ErrAnalysisInFlight):
		return err.Error()
	default:
		return controller.MessageAnalysisFailed
	}
}
