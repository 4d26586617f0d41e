// Package server exposes one suggestion engine over HTTP so that separate
// shell hook invocations share a single pending suggestion.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/scbrown/cnf/internal/engine"
	"github.com/scbrown/cnf/internal/model"
)

// Server routes HTTP requests to a feedback source and a prediction source.
// With both nil the feature is absent: every query answers "no suggestion".
type Server struct {
	feedback  engine.FeedbackSource
	predictor engine.PredictionSource
	log       *zap.Logger
	mux       *http.ServeMux
	srv       *http.Server
}

// New creates a Server. Pass nil sources when the engine could not be opened.
func New(fb engine.FeedbackSource, pr engine.PredictionSource, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Server{feedback: fb, predictor: pr, log: log, mux: http.NewServeMux()}
	s.routes()
	s.srv = &http.Server{
		Handler:      s.Handler(),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	return s
}

// FromEngine creates a Server over e, or a disabled Server if e is nil.
func FromEngine(e *engine.Engine, log *zap.Logger) *Server {
	if e == nil {
		return New(nil, nil, log)
	}
	return New(e.Feedback(), e.Predictor(), log)
}

func (s *Server) routes() {
	s.mux.HandleFunc("GET /api/v1/health", s.handleHealth)
	s.mux.HandleFunc("GET /api/v1/capabilities", s.handleCapabilities)
	s.mux.HandleFunc("POST /api/v1/feedback", s.handleFeedback)
	s.mux.HandleFunc("GET /api/v1/suggestion", s.handleSuggestion)
	s.mux.HandleFunc("POST /api/v1/accepted", s.handleAccepted)
	s.mux.HandleFunc("POST /api/v1/displayed", s.handleDisplayed)
	s.mux.HandleFunc("POST /api/v1/suggestion-accepted", s.handleSuggestionAccepted)
	s.mux.HandleFunc("POST /api/v1/executed", s.handleExecuted)
}

// ListenAndServe starts the HTTP server on the given address.
func (s *Server) ListenAndServe(addr string) error {
	s.srv.Addr = addr
	return s.srv.ListenAndServe()
}

// Serve accepts connections on the given listener.
func (s *Server) Serve(ln net.Listener) error {
	return s.srv.Serve(ln)
}

// Handler returns the HTTP handler, with request logging, for use with
// httptest.Server or custom listeners.
func (s *Server) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		s.mux.ServeHTTP(w, r)
		s.log.Debug("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Duration("elapsed", time.Since(start)),
		)
	})
}

// Shutdown gracefully shuts down the server. A Server shut down before Serve
// is called refuses to serve.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}

func (s *Server) enabled() bool {
	return s.feedback != nil && s.predictor != nil
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, Health{Status: "ok", Enabled: s.enabled()})
}

func (s *Server) handleCapabilities(w http.ResponseWriter, r *http.Request) {
	var caps Capabilities
	if s.enabled() {
		fb, pr := s.feedback.Capability(), s.predictor.Capability()
		caps.Feedback, caps.Predictor = &fb, &pr
	}
	writeJSON(w, http.StatusOK, caps)
}

func (s *Server) handleFeedback(w http.ResponseWriter, r *http.Request) {
	var f model.CommandFailure
	if err := json.NewDecoder(r.Body).Decode(&f); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid request body: %v", err)
		return
	}
	if !s.enabled() {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	sg, ok := s.feedback.OnFailure(r.Context(), f)
	if !ok {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	writeJSON(w, http.StatusOK, sg)
}

func (s *Server) handleSuggestion(w http.ResponseWriter, r *http.Request) {
	if !s.enabled() {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	sg, ok := s.predictor.Suggest(r.Context())
	if !ok {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	writeJSON(w, http.StatusOK, sg)
}

func (s *Server) handleAccepted(w http.ResponseWriter, r *http.Request) {
	var req AcceptedRequest
	if !decodeOptional(w, r, &req) {
		return
	}
	if s.enabled() {
		s.predictor.OnCommandLineAccepted(req.History)
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDisplayed(w http.ResponseWriter, r *http.Request) {
	var req DisplayedRequest
	if !decodeOptional(w, r, &req) {
		return
	}
	if s.enabled() {
		s.predictor.OnSuggestionDisplayed(req.Session, req.CountOrIndex)
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSuggestionAccepted(w http.ResponseWriter, r *http.Request) {
	var req SuggestionAcceptedRequest
	if !decodeOptional(w, r, &req) {
		return
	}
	if s.enabled() {
		s.predictor.OnSuggestionAccepted(req.Session, req.Suggestion)
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleExecuted(w http.ResponseWriter, r *http.Request) {
	var req ExecutedRequest
	if !decodeOptional(w, r, &req) {
		return
	}
	if s.enabled() {
		s.predictor.OnCommandLineExecuted(req.CommandLine, req.Success)
	}
	w.WriteHeader(http.StatusNoContent)
}

// decodeOptional decodes a JSON body into dst, treating an empty body as the
// zero value. It writes a 400 and returns false on malformed input.
func decodeOptional(w http.ResponseWriter, r *http.Request, dst any) bool {
	err := json.NewDecoder(r.Body).Decode(dst)
	if err == nil || errors.Is(err, io.EOF) {
		return true
	}
	writeErr(w, http.StatusBadRequest, "invalid request body: %v", err)
	return false
}

// writeJSON encodes v as JSON and writes it to w with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.Encode(v)
}

// writeErr writes a JSON error response.
func writeErr(w http.ResponseWriter, status int, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	writeJSON(w, status, map[string]string{"error": msg})
}
