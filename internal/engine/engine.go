// Package engine wires the package index, the suggestion slot, the feedback
// resolver and the prediction gate into one session.
package engine

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/scbrown/cnf/internal/feedback"
	"github.com/scbrown/cnf/internal/handoff"
	"github.com/scbrown/cnf/internal/index"
	"github.com/scbrown/cnf/internal/model"
	"github.com/scbrown/cnf/internal/predict"
)

// ErrIndexUnavailable is index.ErrIndexUnavailable, re-exported for callers
// that only deal with the engine.
var ErrIndexUnavailable = index.ErrIndexUnavailable

// FeedbackSource explains a failed command line.
type FeedbackSource interface {
	Capability() model.Capability
	OnFailure(ctx context.Context, f model.CommandFailure) (model.Suggestion, bool)
}

// PredictionSource offers the next command line and hears what the user did
// with it.
type PredictionSource interface {
	Capability() model.Capability
	Suggest(ctx context.Context) (model.Suggestion, bool)
	OnCommandLineAccepted(history []string)
	OnSuggestionDisplayed(session uint32, countOrIndex int)
	OnSuggestionAccepted(session uint32, accepted string)
	OnCommandLineExecuted(commandLine string, success bool)
}

// Options configures Open. Provider takes precedence over IndexPath.
type Options struct {
	IndexPath     string
	Provider      index.Provider
	InstallPrefix string
	Logger        *zap.Logger
}

// Engine owns the session's single suggestion slot.
type Engine struct {
	index    *index.SQLiteIndex
	feedback *feedback.Resolver
	gate     *predict.Gate
	log      *zap.Logger
}

// Open opens the index and builds the resolver and gate around one shared
// slot. An error wrapping ErrIndexUnavailable means the feature is absent for
// this session; the host shell should carry on without it.
func Open(ctx context.Context, opts Options) (*Engine, error) {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	p := opts.Provider
	if p == nil {
		p = index.StaticPath(opts.IndexPath)
	}

	idx, err := index.OpenFrom(ctx, p)
	if err != nil {
		log.Info("install suggestions disabled", zap.Error(err))
		return nil, fmt.Errorf("open engine: %w", err)
	}
	log.Debug("package index opened", zap.String("path", idx.Path()))

	slot := handoff.New()
	return &Engine{
		index:    idx,
		feedback: feedback.New(idx, slot, opts.InstallPrefix, log.Named("feedback")),
		gate:     predict.New(slot),
		log:      log,
	}, nil
}

// Feedback returns the failure-explanation capability.
func (e *Engine) Feedback() FeedbackSource {
	return e.feedback
}

// Predictor returns the input-prediction capability.
func (e *Engine) Predictor() PredictionSource {
	return e.gate
}

// Index returns the underlying package index.
func (e *Engine) Index() *index.SQLiteIndex {
	return e.index
}

// Close releases the index.
func (e *Engine) Close() error {
	return e.index.Close()
}
