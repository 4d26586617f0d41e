// Package predict offers the pending install suggestion as the next command
// line while the user types, and drops it once any command line is accepted.
package predict

import (
	"context"

	"github.com/scbrown/cnf/internal/handoff"
	"github.com/scbrown/cnf/internal/model"
)

// FeedbackKind names the notifications a host may send to a predictor.
type FeedbackKind int

const (
	FeedbackSuggestionDisplayed FeedbackKind = iota
	FeedbackSuggestionAccepted
	FeedbackCommandLineAccepted
	FeedbackCommandLineExecuted
)

// MaxSuggestions is the most suggestions Suggest ever returns.
const MaxSuggestions = 1

// Gate reads the shared slot on behalf of the host's prediction requests.
type Gate struct {
	slot *handoff.Slot
}

// New returns a Gate over slot.
func New(slot *handoff.Slot) *Gate {
	return &Gate{slot: slot}
}

// Capability returns the identity this gate registers under.
func (g *Gate) Capability() model.Capability {
	return model.PredictorCapability
}

// Suggest returns the pending suggestion, if any, without consuming it.
func (g *Gate) Suggest(ctx context.Context) (model.Suggestion, bool) {
	return g.slot.Get()
}

// SuggestPackage returns the pending suggestion as a list of at most
// MaxSuggestions items, the shape prediction hosts consume.
func (g *Gate) SuggestPackage(ctx context.Context) []model.Suggestion {
	sg, ok := g.Suggest(ctx)
	if !ok {
		return nil
	}
	return []model.Suggestion{sg}
}

// CanAcceptFeedback reports which notifications the gate wants delivered.
// Only accepted command lines change its state.
func (g *Gate) CanAcceptFeedback(kind FeedbackKind) bool {
	return kind == FeedbackCommandLineAccepted
}

// OnCommandLineAccepted drops the pending suggestion, whatever line was
// accepted.
func (g *Gate) OnCommandLineAccepted(history []string) {
	g.slot.Clear()
}

// OnSuggestionDisplayed is a no-op.
func (g *Gate) OnSuggestionDisplayed(session uint32, countOrIndex int) {}

// OnSuggestionAccepted is a no-op.
func (g *Gate) OnSuggestionAccepted(session uint32, accepted string) {}

// OnCommandLineExecuted is a no-op.
func (g *Gate) OnCommandLineExecuted(commandLine string, success bool) {}
