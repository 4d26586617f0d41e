// Package hook parses the JSON payload shell hooks send when a command line
// fails, and renders the hook scripts that send it.
package hook

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/scbrown/cnf/internal/model"
)

// Payload is the JSON a shell hook writes to "cnf feedback". Only one of
// CommandLine or Token is required. Kind, when present, overrides the
// classification derived from ErrorID and ExitCode. Kind is a string name
// ("command_not_found", "other" or a host error id), never a number.
// Unknown fields are ignored so hooks can send extra context.
type Payload struct {
	CommandLine string `json:"command_line"`
	Token       string `json:"token"`
	ErrorID     string `json:"error_id"`
	ExitCode    int    `json:"exit_code"`
	Kind        string `json:"kind"`
}

// ErrEmptyPayload is returned when the payload names no command.
var ErrEmptyPayload = errors.New("missing required field: command_line or token")

// Parse reads one payload from input and converts it to a CommandFailure.
func Parse(input io.Reader) (model.CommandFailure, error) {
	raw, err := io.ReadAll(input)
	if err != nil {
		return model.CommandFailure{}, fmt.Errorf("reading input: %w", err)
	}
	var p Payload
	if err := json.Unmarshal(raw, &p); err != nil {
		return model.CommandFailure{}, fmt.Errorf("parsing JSON: %w", err)
	}
	return p.Failure()
}

// Failure converts p to a CommandFailure.
func (p Payload) Failure() (model.CommandFailure, error) {
	if p.CommandLine == "" && p.Token == "" {
		return model.CommandFailure{}, ErrEmptyPayload
	}
	kind := model.ClassifyError(p.ErrorID, p.ExitCode)
	if p.Kind != "" {
		kind = model.ClassifyError(p.Kind, 0)
	}
	return model.CommandFailure{
		CommandLine: p.CommandLine,
		FailedToken: p.Token,
		Kind:        kind,
	}, nil
}
