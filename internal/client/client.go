// Package client talks to a running "cnf serve" daemon. Shell hooks use it so
// that every hook invocation reaches the same pending suggestion.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/scbrown/cnf/internal/model"
	"github.com/scbrown/cnf/internal/server"
)

// Client forwards feedback and prediction calls over HTTP.
type Client struct {
	baseURL string
	client  *http.Client
}

// New creates a Client for the daemon at baseURL (e.g. "http://localhost:7274").
// A bare host:port is accepted and treated as http.
func New(baseURL string) *Client {
	if !strings.Contains(baseURL, "://") {
		baseURL = "http://" + baseURL
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client: &http.Client{
			// Hooks run in the shell's foreground; never stall the prompt long.
			Timeout: 2 * time.Second,
		},
	}
}

// Health reports whether the daemon is up and whether suggestions are enabled.
func (c *Client) Health(ctx context.Context) (server.Health, error) {
	var h server.Health
	_, err := c.do(ctx, http.MethodGet, "/api/v1/health", nil, &h)
	return h, err
}

// Capabilities returns the identities the daemon serves.
func (c *Client) Capabilities(ctx context.Context) (server.Capabilities, error) {
	var caps server.Capabilities
	_, err := c.do(ctx, http.MethodGet, "/api/v1/capabilities", nil, &caps)
	return caps, err
}

// OnFailure reports a failed command line and returns the daemon's install
// suggestion, if any.
func (c *Client) OnFailure(ctx context.Context, f model.CommandFailure) (model.Suggestion, bool, error) {
	var sg model.Suggestion
	ok, err := c.do(ctx, http.MethodPost, "/api/v1/feedback", f, &sg)
	return sg, ok, err
}

// Suggest returns the daemon's pending suggestion, if any.
func (c *Client) Suggest(ctx context.Context) (model.Suggestion, bool, error) {
	var sg model.Suggestion
	ok, err := c.do(ctx, http.MethodGet, "/api/v1/suggestion", nil, &sg)
	return sg, ok, err
}

// OnCommandLineAccepted tells the daemon a command line was accepted.
func (c *Client) OnCommandLineAccepted(ctx context.Context, history []string) error {
	_, err := c.do(ctx, http.MethodPost, "/api/v1/accepted", server.AcceptedRequest{History: history}, nil)
	return err
}

// OnSuggestionDisplayed forwards the display notification.
func (c *Client) OnSuggestionDisplayed(ctx context.Context, session uint32, countOrIndex int) error {
	_, err := c.do(ctx, http.MethodPost, "/api/v1/displayed", server.DisplayedRequest{Session: session, CountOrIndex: countOrIndex}, nil)
	return err
}

// OnSuggestionAccepted forwards the suggestion-accepted notification.
func (c *Client) OnSuggestionAccepted(ctx context.Context, session uint32, accepted string) error {
	_, err := c.do(ctx, http.MethodPost, "/api/v1/suggestion-accepted", server.SuggestionAcceptedRequest{Session: session, Suggestion: accepted}, nil)
	return err
}

// OnCommandLineExecuted forwards the executed notification.
func (c *Client) OnCommandLineExecuted(ctx context.Context, commandLine string, success bool) error {
	_, err := c.do(ctx, http.MethodPost, "/api/v1/executed", server.ExecutedRequest{CommandLine: commandLine, Success: success}, nil)
	return err
}

// do performs a request with an optional JSON body. It returns false with a
// nil error for 204 No Content, and decodes 200/201 bodies into dst.
func (c *Client) do(ctx context.Context, method, path string, body, dst any) (bool, error) {
	var rd io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return false, fmt.Errorf("marshaling request: %w", err)
		}
		rd = bytes.NewReader(data)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rd)
	if err != nil {
		return false, fmt.Errorf("creating request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	resp, err := c.client.Do(req)
	if err != nil {
		return false, fmt.Errorf("daemon request: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusNoContent:
		return false, nil
	case http.StatusOK, http.StatusCreated:
	default:
		return false, remoteError(resp)
	}
	if dst != nil {
		if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
			return false, fmt.Errorf("decoding response: %w", err)
		}
	}
	return true, nil
}

// remoteError reads an error response from the daemon and returns it as an error.
func remoteError(resp *http.Response) error {
	body, _ := io.ReadAll(resp.Body)
	var errResp struct {
		Error string `json:"error"`
	}
	if json.Unmarshal(body, &errResp) == nil && errResp.Error != "" {
		return fmt.Errorf("daemon (%d): %s", resp.StatusCode, errResp.Error)
	}
	return fmt.Errorf("daemon (%d): %s", resp.StatusCode, http.StatusText(resp.StatusCode))
}
