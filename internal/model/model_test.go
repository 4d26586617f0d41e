package model

import (
	"encoding/json"
	"testing"
)

func TestClassifyError(t *testing.T) {
	tests := []struct {
		id       string
		exitCode int
		want     ErrorKind
	}{
		{"CommandNotFoundException", 0, ErrorCommandNotFound},
		{"commandnotfoundexception", 1, ErrorCommandNotFound},
		{"command_not_found", 0, ErrorCommandNotFound},
		{" CommandNotFound ", 0, ErrorCommandNotFound},
		{"", 127, ErrorCommandNotFound},
		{"ParameterBindingException", 0, ErrorOther},
		{"", 1, ErrorOther},
		{"", 0, ErrorOther},
	}
	for _, tt := range tests {
		if got := ClassifyError(tt.id, tt.exitCode); got != tt.want {
			t.Errorf("ClassifyError(%q, %d) = %v, want %v", tt.id, tt.exitCode, got, tt.want)
		}
	}
}

func TestNewSuggestion(t *testing.T) {
	s := NewSuggestion("install", "Kubernetes.kubectl")
	if s.InstallCommand != "install Kubernetes.kubectl" {
		t.Errorf("InstallCommand = %q", s.InstallCommand)
	}
	if s.String() != s.InstallCommand {
		t.Errorf("String() = %q, want %q", s.String(), s.InstallCommand)
	}
}

func TestSuggestionJSON(t *testing.T) {
	data, err := json.Marshal(NewSuggestion(DefaultInstallPrefix, "Git.Git"))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"install_command":"winget install Git.Git"}`
	if string(data) != want {
		t.Errorf("got %s, want %s", data, want)
	}
}

func TestCapabilitiesDistinct(t *testing.T) {
	if FeedbackCapability.ID == PredictorCapability.ID {
		t.Error("feedback and predictor share an id")
	}
	if FeedbackCapability.Name == "" || PredictorCapability.Name == "" {
		t.Error("capability names must be set")
	}
}

func TestCommandFailureJSONKind(t *testing.T) {
	var f CommandFailure
	if err := json.Unmarshal([]byte(`{"command_line":"kubectl get pods","token":"kubectl","kind":"command_not_found"}`), &f); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if f.Kind != ErrorCommandNotFound {
		t.Errorf("Kind = %v, want command_not_found", f.Kind)
	}
	if f.FailedToken != "kubectl" {
		t.Errorf("FailedToken = %q", f.FailedToken)
	}

	data, err := json.Marshal(CommandFailure{FailedToken: "ls", Kind: ErrorOther})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"command_line":"","token":"ls","kind":"other"}`
	if string(data) != want {
		t.Errorf("got %s, want %s", data, want)
	}
}

func TestCommandFailureKindNames(t *testing.T) {
	tests := []struct {
		body string
		want ErrorKind
	}{
		{`{"kind":"CommandNotFoundException"}`, ErrorCommandNotFound},
		{`{"kind":"COMMAND_NOT_FOUND"}`, ErrorCommandNotFound},
		{`{"kind":"permission_denied"}`, ErrorOther},
		{`{"kind":""}`, ErrorOther},
		{`{}`, ErrorOther},
	}
	for _, tt := range tests {
		var f CommandFailure
		if err := json.Unmarshal([]byte(tt.body), &f); err != nil {
			t.Fatalf("unmarshal %s: %v", tt.body, err)
		}
		if f.Kind != tt.want {
			t.Errorf("%s: Kind = %v, want %v", tt.body, f.Kind, tt.want)
		}
	}

	var f CommandFailure
	if err := json.Unmarshal([]byte(`{"kind":1}`), &f); err == nil {
		t.Error("numeric kind should be rejected")
	}
}
