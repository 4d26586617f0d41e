package cli

import (
	"bytes"
	"testing"
)

func TestShortCommit(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"48cae1d7a3b2c1d0e9f8a7b6c5d4e3f2a1b0c9d8", "48cae1d"},
		{"48cae1d", "48cae1d"},
		{"abc", "abc"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := shortCommit(tt.input); got != tt.want {
			t.Errorf("shortCommit(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestVersionString(t *testing.T) {
	tests := []struct {
		name    string
		version string
		commit  string
		want    string
	}{
		{"release build", "v0.2.0", "48cae1d7a3b2c1d0e9f8a7b6c5d4e3f2a1b0c9d8", "cnf v0.2.0 (48cae1d)"},
		{"dev build with commit", "", "abcdef1234567890", "cnf dev (abcdef1)"},
		{"short commit passthrough", "v1.0.0", "abc1234", "cnf v1.0.0 (abc1234)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := versionString(tt.version, tt.commit); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestVersionCommand(t *testing.T) {
	origVersion, origCommit := Version, Commit
	defer func() { Version, Commit = origVersion, origCommit }()
	Version, Commit = "v9.9.9", "0123456789abcdef"

	var buf bytes.Buffer
	versionCmd.SetOut(&buf)
	defer versionCmd.SetOut(nil)
	versionCmd.Run(versionCmd, nil)

	if got := buf.String(); got != "cnf v9.9.9 (0123456)\n" {
		t.Errorf("got %q", got)
	}
}
