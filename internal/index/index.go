// Package index resolves command names to installable package identifiers
// using the package manager's SQLite index. The index is owned and refreshed
// by the package manager; this package only ever reads it.
package index

import (
	"context"
	"errors"
	"fmt"
)

// ErrIndexUnavailable is returned by Open when the index cannot be used. The
// install-suggestion feature should be treated as absent for the session.
var ErrIndexUnavailable = errors.New("package index unavailable")

// Resolver maps a command name to at most one package id.
type Resolver interface {
	// Resolve returns the package id providing commandName. ok is false when
	// nothing in the index provides it; that is not an error.
	Resolve(ctx context.Context, commandName string) (pkgID string, ok bool, err error)
}

// Provider locates the index file. Finding (and refreshing) the index belongs
// to the package manager integration, not to the resolver.
type Provider interface {
	Locate() (string, error)
}

// StaticPath is a Provider for an index at a fixed, configured path.
type StaticPath string

// Locate returns the configured path, or ErrIndexUnavailable if none is set.
func (p StaticPath) Locate() (string, error) {
	if p == "" {
		return "", fmt.Errorf("%w: no index path configured", ErrIndexUnavailable)
	}
	return string(p), nil
}

// OpenFrom locates the index through p and opens it.
func OpenFrom(ctx context.Context, p Provider) (*SQLiteIndex, error) {
	path, err := p.Locate()
	if err != nil {
		if errors.Is(err, ErrIndexUnavailable) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: locate: %v", ErrIndexUnavailable, err)
	}
	return Open(ctx, path)
}
