// Package model defines core types for cnf: command failures reported by the
// shell, install suggestions derived from the package index, and the identity
// under which each capability registers with its host.
package model

import (
	"strings"

	"github.com/google/uuid"
)

// ErrorKind classifies why a command line failed.
type ErrorKind int

const (
	ErrorOther           ErrorKind = iota // Any failure we do not act on.
	ErrorCommandNotFound                  // The first word did not name a command.
)

// String returns the wire name of the kind.
func (k ErrorKind) String() string {
	if k == ErrorCommandNotFound {
		return "command_not_found"
	}
	return "other"
}

// MarshalText encodes the kind by name so JSON payloads stay readable.
func (k ErrorKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText accepts any identifier ClassifyError understands; unknown
// names decode as ErrorOther.
func (k *ErrorKind) UnmarshalText(text []byte) error {
	*k = ClassifyError(string(text), 0)
	return nil
}

// commandNotFoundIDs lists host error identifiers that mean "no such command".
var commandNotFoundIDs = map[string]bool{
	"commandnotfoundexception": true, // PowerShell FullyQualifiedErrorId
	"command_not_found":        true,
	"commandnotfound":          true,
}

// ExitCommandNotFound is the exit status POSIX shells use for an unknown command.
const ExitCommandNotFound = 127

// ClassifyError maps a host error identifier and exit status to an ErrorKind.
// Identifiers are compared case-insensitively. A zero exitCode means "not
// reported".
func ClassifyError(id string, exitCode int) ErrorKind {
	if commandNotFoundIDs[strings.ToLower(strings.TrimSpace(id))] {
		return ErrorCommandNotFound
	}
	if exitCode == ExitCommandNotFound {
		return ErrorCommandNotFound
	}
	return ErrorOther
}

// CommandFailure describes a command line that failed to execute.
//
// In JSON, kind is a string name ("command_not_found", "other", or a host
// error id such as "CommandNotFoundException"). Unrecognised names decode as
// ErrorOther; a numeric kind is rejected.
type CommandFailure struct {
	CommandLine string    `json:"command_line"`
	FailedToken string    `json:"token"`
	Kind        ErrorKind `json:"kind"`
}

// Suggestion is a ready-to-run install command for a missing program.
type Suggestion struct {
	InstallCommand string `json:"install_command"`
}

// DefaultInstallPrefix is prepended to the package id to form a Suggestion.
const DefaultInstallPrefix = "winget install"

// NewSuggestion builds the install command "<prefix> <packageID>".
func NewSuggestion(prefix, packageID string) Suggestion {
	return Suggestion{InstallCommand: prefix + " " + packageID}
}

// String returns the install command.
func (s Suggestion) String() string {
	return s.InstallCommand
}

// Capability is the stable identity a provider registers under with its host.
type Capability struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
}

// Registration identities. The ids never change so a host can unregister a
// capability registered by an earlier build.
var (
	FeedbackCapability = Capability{
		ID:          uuid.MustParse("e5351aa4-dfde-4d4d-bf0f-1a2f5a37d8d6"),
		Name:        "cnf-cmd-not-found",
		Description: "Finds missing commands that can be installed from the package index.",
	}
	PredictorCapability = Capability{
		ID:          uuid.MustParse("b0fcf338-b1d8-43f6-bcb9-aadf697b9706"),
		Name:        "cnf-cmd-not-found-predictor",
		Description: "Predicts the install command for missing commands.",
	}
)
