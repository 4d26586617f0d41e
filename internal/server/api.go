package server

import "github.com/scbrown/cnf/internal/model"

// AcceptedRequest is the body of POST /api/v1/accepted.
type AcceptedRequest struct {
	History []string `json:"history,omitempty"`
}

// DisplayedRequest is the body of POST /api/v1/displayed.
type DisplayedRequest struct {
	Session      uint32 `json:"session"`
	CountOrIndex int    `json:"count_or_index"`
}

// SuggestionAcceptedRequest is the body of POST /api/v1/suggestion-accepted.
type SuggestionAcceptedRequest struct {
	Session    uint32 `json:"session"`
	Suggestion string `json:"suggestion"`
}

// ExecutedRequest is the body of POST /api/v1/executed.
type ExecutedRequest struct {
	CommandLine string `json:"command_line"`
	Success     bool   `json:"success"`
}

// Health is the body of GET /api/v1/health. Enabled is false when the
// package index could not be opened.
type Health struct {
	Status  string `json:"status"`
	Enabled bool   `json:"enabled"`
}

// Capabilities is the body of GET /api/v1/capabilities.
type Capabilities struct {
	Feedback  *model.Capability `json:"feedback,omitempty"`
	Predictor *model.Capability `json:"predictor,omitempty"`
}
