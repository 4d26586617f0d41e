package cli

import (
	"fmt"
	"runtime/debug"

	"github.com/spf13/cobra"
)

// Version and Commit are set at build time via -ldflags.
//
//	go build -ldflags "-X github.com/scbrown/cnf/internal/cli.Version=v0.1.0
//	  -X github.com/scbrown/cnf/internal/cli.Commit=48cae1d"
var (
	Version = ""
	Commit  = ""
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version and commit hash",
	Long: `Print the cnf version string, e.g. "cnf v0.1.0 (48cae1d)".
Builds without a release tag report "dev".`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), versionString(Version, Commit))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

// versionString formats the version line, filling the commit from build info
// when it was not set at link time.
func versionString(v, c string) string {
	if v == "" {
		v = "dev"
	}
	if c == "" {
		c = commitFromBuildInfo()
	}
	if c == "" {
		return "cnf " + v
	}
	return fmt.Sprintf("cnf %s (%s)", v, shortCommit(c))
}

// commitFromBuildInfo extracts vcs.revision from Go's embedded build info.
func commitFromBuildInfo() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return ""
	}
	for _, s := range info.Settings {
		if s.Key == "vcs.revision" {
			return s.Value
		}
	}
	return ""
}

// shortCommit returns the first 7 characters of a commit hash.
func shortCommit(c string) string {
	if len(c) > 7 {
		return c[:7]
	}
	return c
}
