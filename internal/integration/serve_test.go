//go:build integration

package integration

import (
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// freePort asks the OS for an unused port and returns it as a string.
func freePort(t *testing.T) string {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("find free port: %v", err)
	}
	port := ln.Addr().(*net.TCPAddr).Port
	ln.Close()
	return fmt.Sprintf("%d", port)
}

// startServe launches `cnf serve` as a subprocess on a free port, points the
// environment's config at it, and waits for the health endpoint to respond.
// It returns the daemon's base URL and the running command.
func startServe(t *testing.T, e *cnfEnv, extraArgs ...string) (string, *exec.Cmd) {
	t.Helper()
	addr := "127.0.0.1:" + freePort(t)
	baseURL := "http://" + addr
	e.writeConfig(fmt.Sprintf("remote_url = %q\n", baseURL))

	cmd := e.command(append([]string{"serve", "--addr", addr}, extraArgs...)...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Start(); err != nil {
		t.Fatalf("start cnf serve: %v", err)
	}
	t.Cleanup(func() {
		cmd.Process.Kill()
		cmd.Wait()
	})

	deadline := time.Now().Add(10 * time.Second)
	for time.Now().Before(deadline) {
		resp, err := http.Get(baseURL + "/api/v1/health")
		if err == nil {
			resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return baseURL, cmd
			}
		}
		time.Sleep(50 * time.Millisecond)
	}
	cmd.Process.Kill()
	t.Fatalf("cnf serve did not become healthy within 10s on %s", addr)
	return "", nil
}

func health(t *testing.T, baseURL string) map[string]any {
	t.Helper()
	resp, err := http.Get(baseURL + "/api/v1/health")
	if err != nil {
		t.Fatalf("GET health: %v", err)
	}
	defer resp.Body.Close()
	var body map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode health: %v", err)
	}
	return body
}

func TestServeHealthCheck(t *testing.T) {
	t.Parallel()
	e := newEnv(t)
	baseURL, _ := startServe(t, e)

	body := health(t, baseURL)
	if body["status"] != "ok" {
		t.Errorf("health status = %v, want ok", body["status"])
	}
	if body["enabled"] != true {
		t.Errorf("enabled = %v, want true", body["enabled"])
	}
}

// TestServeGoldenPath drives the shell hook sequence against a running
// daemon: a missing command, the suggestion offered repeatedly, then cleared
// by the next accepted line.
func TestServeGoldenPath(t *testing.T) {
	t.Parallel()
	e := newEnv(t)
	startServe(t, e)

	stdout, _ := e.mustRun(nil, "predict")
	if stdout != "" {
		t.Fatalf("predict before any failure = %q", stdout)
	}

	payload := []byte(`{"command_line":"terraform plan","token":"terraform","exit_code":127}`)
	stdout, _ = e.mustRun(payload, "feedback")
	if !strings.Contains(stdout, "winget install Hashicorp.Terraform") {
		t.Errorf("feedback output = %q", stdout)
	}

	for i := 0; i < 2; i++ {
		stdout, _ = e.mustRun(nil, "predict")
		if stdout != "winget install Hashicorp.Terraform\n" {
			t.Errorf("predict #%d = %q", i, stdout)
		}
	}

	// A miss leaves the pending suggestion in place.
	e.mustRun(nil, "feedback", "--token", "nosuchtool")
	stdout, _ = e.mustRun(nil, "predict")
	if stdout != "winget install Hashicorp.Terraform\n" {
		t.Errorf("predict after miss = %q", stdout)
	}

	// A newer hit replaces it.
	e.mustRun(nil, "feedback", "--token", "jq")
	stdout, _ = e.mustRun(nil, "predict")
	if stdout != "winget install jqlang.jq\n" {
		t.Errorf("predict after second hit = %q", stdout)
	}

	e.mustRun(nil, "accept", "ls")
	stdout, _ = e.mustRun(nil, "predict")
	if stdout != "" {
		t.Errorf("predict after accept = %q", stdout)
	}
}

// TestServeWithoutIndex starts the daemon with no index; it stays up and
// never suggests anything.
func TestServeWithoutIndex(t *testing.T) {
	t.Parallel()
	e := newEnv(t)
	missing := filepath.Join(e.home, "absent.db")
	baseURL, _ := startServe(t, e, "--index", missing)

	if body := health(t, baseURL); body["enabled"] != false {
		t.Errorf("enabled = %v, want false", body["enabled"])
	}

	e.mustRun(nil, "feedback", "--token", "kubectl", "--index", missing)
	stdout, _ := e.mustRun(nil, "predict")
	if stdout != "" {
		t.Errorf("predict = %q, want nothing", stdout)
	}
}

// TestServeInterrupt verifies the daemon shuts down cleanly on SIGINT.
func TestServeInterrupt(t *testing.T) {
	t.Parallel()
	e := newEnv(t)
	_, cmd := startServe(t, e)

	if err := cmd.Process.Signal(os.Interrupt); err != nil {
		t.Fatalf("signal: %v", err)
	}
	done := make(chan error, 1)
	go func() { done <- cmd.Wait() }()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("serve exited with %v, want clean exit", err)
		}
	case <-time.After(10 * time.Second):
		t.Fatal("serve did not exit after SIGINT")
	}
}
