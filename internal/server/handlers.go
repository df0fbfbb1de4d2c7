package server

import (
	"bytes"
	"context"
	"encoding/json"
	"log"
	"net/http"

	"github.com/jonathan/skillgap/internal/controller"
	"github.com/jonathan/skillgap/internal/server/middleware"
	"github.com/jonathan/skillgap/internal/types"
	"github.com/jonathan/skillgap/internal/view"
)

// AnalyzeRequest is the body of POST /api/analyze.
type AnalyzeRequest struct {
	JobDescription string `json:"jobDescription"`
	UserSkills     string `json:"userSkills"`
}

// StateResponse is the body of GET /api/state.
type StateResponse struct {
	JobDescription string                `json:"jobDescription"`
	UserSkills     string                `json:"userSkills"`
	Loading        bool                  `json:"loading"`
	Error          string                `json:"error,omitempty"`
	Result         *types.AnalysisResult `json:"result,omitempty"`
}

// handleIndex renders the page for the caller's session
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	ctrl, ok := s.controllerFor(w, r)
	if !ok {
		return
	}
	open := view.ParseDialogKind(r.URL.Query().Get("dialog"))
	s.renderPage(w, http.StatusOK, ctrl.Snapshot(), open)
}

// handleAnalyzeForm starts an analysis from the HTML form and redirects back to the page
func (s *Server) handleAnalyzeForm(w http.ResponseWriter, r *http.Request) {
	ctrl, ok := s.controllerFor(w, r)
	if !ok {
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form body", http.StatusBadRequest)
		return
	}

	// The analysis outlives this request; the page polls until it settles.
	ctx, cancel := s.analysisContext(context.WithoutCancel(r.Context()))
	done, err := ctrl.Submit(ctx, r.PostForm.Get("jobDescription"), r.PostForm.Get("userSkills"))
	if err != nil {
		cancel()
		s.renderPage(w, HTTPStatus(err), ctrl.Snapshot(), "")
		return
	}
	go func() {
		<-done
		cancel()
	}()

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// handleAnalyzeAPI runs an analysis synchronously and returns the result as JSON
func (s *Server) handleAnalyzeAPI(w http.ResponseWriter, r *http.Request) {
	ctrl, ok := s.controllerFor(w, r)
	if !ok {
		return
	}

	var req AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	ctx, cancel := s.analysisContext(r.Context())
	defer cancel()

	if err := ctrl.RequestAnalysis(ctx, req.JobDescription, req.UserSkills); err != nil {
		s.errorResponse(w, HTTPStatus(err), publicMessage(err))
		return
	}

	s.jsonResponse(w, http.StatusOK, ctrl.Snapshot().Result)
}

// handleState returns the caller's controller state
func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	ctrl, ok := s.controllerFor(w, r)
	if !ok {
		return
	}

	state := ctrl.Snapshot()
	s.jsonResponse(w, http.StatusOK, StateResponse{
		JobDescription: state.JobDescription,
		UserSkills:     state.UserSkills,
		Loading:        state.Loading,
		Error:          state.Error,
		Result:         state.Result,
	})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// controllerFor returns the session's controller, writing a 500 if the
// session middleware did not run.
func (s *Server) controllerFor(w http.ResponseWriter, r *http.Request) (*controller.Controller, bool) {
	sessionID, err := middleware.GetSessionID(r)
	if err != nil {
		log.Printf("[server] %v", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return nil, false
	}
	return s.sessions.Get(sessionID), true
}

// analysisContext applies the configured analysis timeout, if any.
func (s *Server) analysisContext(parent context.Context) (context.Context, context.CancelFunc) {
	if s.analysisTimeout > 0 {
		return context.WithTimeout(parent, s.analysisTimeout)
	}
	return context.WithCancel(parent)
}

// renderPage renders the page into a buffer first so a template failure can
// still produce a clean 500.
func (s *Server) renderPage(w http.ResponseWriter, status int, state controller.State, open view.DialogKind) {
	var buf bytes.Buffer
	if err := view.Render(&buf, view.NewPage(state, open)); err != nil {
		log.Printf("[server] %v", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		log.Printf("[server] failed to write page: %v", err)
	}
}
