package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/scbrown/cnf/internal/engine"
	"github.com/scbrown/cnf/internal/index/indextest"
	"github.com/scbrown/cnf/internal/model"
	"github.com/scbrown/cnf/internal/server"
)

func testClient(t *testing.T) *Client {
	t.Helper()
	e, err := engine.Open(context.Background(), engine.Options{
		IndexPath:     indextest.Build(t, indextest.Entry{Command: "kubectl", PackageID: "Kubernetes.kubectl"}),
		InstallPrefix: "install",
	})
	if err != nil {
		t.Fatalf("open engine: %v", err)
	}
	t.Cleanup(func() { e.Close() })
	ts := httptest.NewServer(server.FromEngine(e, nil).Handler())
	t.Cleanup(ts.Close)
	return New(ts.URL)
}

func TestRoundTrip(t *testing.T) {
	c := testClient(t)
	ctx := context.Background()

	h, err := c.Health(ctx)
	if err != nil {
		t.Fatalf("Health: %v", err)
	}
	if !h.Enabled {
		t.Error("daemon reports suggestions disabled")
	}

	sg, ok, err := c.OnFailure(ctx, model.CommandFailure{FailedToken: "kubectl", Kind: model.ErrorCommandNotFound})
	if err != nil {
		t.Fatalf("OnFailure: %v", err)
	}
	if !ok || sg.InstallCommand != "install Kubernetes.kubectl" {
		t.Fatalf("OnFailure = %q, %v", sg, ok)
	}

	got, ok, err := c.Suggest(ctx)
	if err != nil || !ok || got != sg {
		t.Fatalf("Suggest = %q, %v, %v; want %q", got, ok, err, sg)
	}

	if err := c.OnSuggestionDisplayed(ctx, 7, 1); err != nil {
		t.Errorf("OnSuggestionDisplayed: %v", err)
	}
	if err := c.OnSuggestionAccepted(ctx, 7, sg.InstallCommand); err != nil {
		t.Errorf("OnSuggestionAccepted: %v", err)
	}
	if err := c.OnCommandLineExecuted(ctx, "ls", true); err != nil {
		t.Errorf("OnCommandLineExecuted: %v", err)
	}
	if _, ok, _ := c.Suggest(ctx); !ok {
		t.Error("no-op hooks cleared the suggestion")
	}

	if err := c.OnCommandLineAccepted(ctx, []string{"ls"}); err != nil {
		t.Fatalf("OnCommandLineAccepted: %v", err)
	}
	if got, ok, err := c.Suggest(ctx); err != nil || ok {
		t.Errorf("Suggest after accept = %q, %v, %v; want none", got, ok, err)
	}
}

func TestOnFailureMiss(t *testing.T) {
	c := testClient(t)
	_, ok, err := c.OnFailure(context.Background(), model.CommandFailure{FailedToken: "frobnicate", Kind: model.ErrorCommandNotFound})
	if err != nil || ok {
		t.Errorf("OnFailure = %v, %v; want no suggestion, nil", ok, err)
	}
}

func TestCapabilities(t *testing.T) {
	caps, err := testClient(t).Capabilities(context.Background())
	if err != nil {
		t.Fatalf("Capabilities: %v", err)
	}
	if caps.Feedback == nil || caps.Feedback.ID != model.FeedbackCapability.ID {
		t.Errorf("feedback = %+v", caps.Feedback)
	}
}

func TestRemoteError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":"invalid request body"}`))
	}))
	defer ts.Close()

	_, _, err := New(ts.URL).Suggest(context.Background())
	if err == nil || !strings.Contains(err.Error(), "invalid request body") || !strings.Contains(err.Error(), "400") {
		t.Errorf("err = %v, want daemon 400 error", err)
	}
}

func TestNewNormalizesURL(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"localhost:7274", "http://localhost:7274"},
		{"http://127.0.0.1:9000/", "http://127.0.0.1:9000"},
		{"https://cnf.example", "https://cnf.example"},
	}
	for _, tt := range tests {
		if got := New(tt.in).baseURL; got != tt.want {
			t.Errorf("New(%q).baseURL = %q, want %q", tt.in, got, tt.want)
		}
	}
}
