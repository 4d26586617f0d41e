//go:build integration

package integration

import (
	"encoding/json"
	"strings"
	"testing"
)

// TestSmokeHelp verifies the cnf binary runs and prints help.
func TestSmokeHelp(t *testing.T) {
	e := newEnv(t)
	stdout, _ := e.mustRun(nil, "--help")
	if !strings.Contains(stdout, "command not found") {
		t.Errorf("expected help to mention 'command not found', got:\n%s", stdout)
	}
}

func TestSmokeVersion(t *testing.T) {
	e := newEnv(t)
	stdout, _ := e.mustRun(nil, "version")
	if !strings.HasPrefix(stdout, "cnf ") {
		t.Errorf("version output = %q", stdout)
	}
}

// TestSmokeResolve looks fixture commands up directly in the index.
func TestSmokeResolve(t *testing.T) {
	e := newEnv(t)

	stdout, _ := e.mustRun(nil, "resolve", "kubectl", "nosuchtool", "--json")
	var results []map[string]string
	if err := json.Unmarshal([]byte(stdout), &results); err != nil {
		t.Fatalf("parse resolve JSON: %v\n%s", err, stdout)
	}
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
	if results[0]["suggestion"] != "winget install Kubernetes.kubectl" {
		t.Errorf("kubectl suggestion = %q", results[0]["suggestion"])
	}
	if _, ok := results[1]["package"]; ok {
		t.Errorf("nosuchtool should have no package: %v", results[1])
	}
}

// TestSmokeFeedbackWithoutDaemon prints a suggestion from the local index
// when nothing is listening on the daemon address.
func TestSmokeFeedbackWithoutDaemon(t *testing.T) {
	e := newEnv(t)
	e.writeConfig("remote_url = \"http://127.0.0.1:1\"\n")

	stdout, _ := e.mustRun(nil, "feedback", "--token", "jq", "--line", "jq . x.json")
	if !strings.Contains(stdout, "winget install jqlang.jq") {
		t.Errorf("feedback output = %q", stdout)
	}
}

func TestSmokeInit(t *testing.T) {
	e := newEnv(t)
	stdout, _ := e.mustRun(nil, "init", "zsh")
	if !strings.Contains(stdout, "command_not_found_handler") {
		t.Errorf("zsh script missing handler:\n%s", stdout)
	}
	if !strings.Contains(stdout, "'"+cnfBin+"' feedback") {
		t.Errorf("zsh script should invoke %s:\n%s", cnfBin, stdout)
	}
}

// TestSmokeIndexMissing exits non-zero when the index cannot be opened.
func TestSmokeIndexMissing(t *testing.T) {
	e := newEnv(t)
	_, stderr, err := e.run(nil, "index", "--index", e.home+"/absent.db")
	if err == nil {
		t.Fatal("expected failure for a missing index")
	}
	if !strings.Contains(stderr, "index unavailable") {
		t.Errorf("stderr = %q", stderr)
	}
}
