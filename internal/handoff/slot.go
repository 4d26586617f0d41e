// Package handoff carries the most recent install suggestion from the
// failure-feedback path to the input-prediction path.
package handoff

import (
	"sync"

	"github.com/scbrown/cnf/internal/model"
)

// Slot holds at most one pending suggestion. One Slot is shared by the
// feedback resolver and the prediction gate of a session; every read and write
// of the pending suggestion goes through it. The zero value is an empty slot.
type Slot struct {
	mu         sync.Mutex
	suggestion model.Suggestion
	full       bool
}

// New returns an empty Slot.
func New() *Slot {
	return &Slot{}
}

// Set replaces the pending suggestion.
func (s *Slot) Set(sg model.Suggestion) {
	s.mu.Lock()
	s.suggestion = sg
	s.full = true
	s.mu.Unlock()
}

// Get returns the pending suggestion without consuming it.
func (s *Slot) Get() (model.Suggestion, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.suggestion, s.full
}

// Clear empties the slot.
func (s *Slot) Clear() {
	s.mu.Lock()
	s.suggestion = model.Suggestion{}
	s.full = false
	s.mu.Unlock()
}
