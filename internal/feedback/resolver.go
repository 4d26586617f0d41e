// Package feedback explains command-not-found failures with an install
// suggestion looked up in the package index.
package feedback

import (
	"context"

	"go.uber.org/zap"

	"github.com/scbrown/cnf/internal/cmdparse"
	"github.com/scbrown/cnf/internal/handoff"
	"github.com/scbrown/cnf/internal/index"
	"github.com/scbrown/cnf/internal/model"
)

// Resolver turns a failed command into an install suggestion and leaves a
// copy in the shared slot for the prediction path. It keeps no per-call
// state and is safe for concurrent use.
type Resolver struct {
	index  index.Resolver
	slot   *handoff.Slot
	prefix string
	log    *zap.Logger
}

// New returns a Resolver that looks commands up in idx and publishes hits to
// slot. An empty prefix means model.DefaultInstallPrefix; a nil log discards
// output.
func New(idx index.Resolver, slot *handoff.Slot, prefix string, log *zap.Logger) *Resolver {
	if prefix == "" {
		prefix = model.DefaultInstallPrefix
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Resolver{index: idx, slot: slot, prefix: prefix, log: log}
}

// Capability returns the identity this resolver registers under.
func (r *Resolver) Capability() model.Capability {
	return model.FeedbackCapability
}

// OnFailure returns an install suggestion for f, or false when f is not a
// command-not-found failure or the index has nothing for it.
//
// A miss leaves any suggestion already in the slot in place.
func (r *Resolver) OnFailure(ctx context.Context, f model.CommandFailure) (model.Suggestion, bool) {
	if f.Kind != model.ErrorCommandNotFound {
		return model.Suggestion{}, false
	}

	name := f.FailedToken
	if name == "" {
		name = cmdparse.CommandName(f.CommandLine)
	}
	if name == "" || ctx.Err() != nil {
		return model.Suggestion{}, false
	}

	pkgID, ok, err := r.index.Resolve(ctx, name)
	if err != nil {
		r.log.Warn("index lookup failed", zap.String("command", name), zap.Error(err))
		return model.Suggestion{}, false
	}
	if !ok {
		r.log.Debug("no package provides command", zap.String("command", name))
		return model.Suggestion{}, false
	}

	sg := model.NewSuggestion(r.prefix, pkgID)
	r.slot.Set(sg)
	r.log.Debug("suggested install",
		zap.String("command", name),
		zap.String("package", pkgID),
	)
	return sg, true
}
