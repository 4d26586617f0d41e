package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/scbrown/cnf/internal/index"
	"github.com/scbrown/cnf/internal/model"
)

// resolveCmd looks command names up in the index without touching the daemon.
var resolveCmd = &cobra.Command{
	Use:   "resolve <command>...",
	Short: "Look up which package provides a command",
	Long: `Resolve opens the package index directly and prints the package that
provides each command name, with the install command cnf would suggest.
It does not talk to the daemon or change the pending suggestion.

When several packages provide a command, the first one in the index's natural
row order is shown; this is the same package the shell hook would suggest.`,
	Example: `  cnf resolve kubectl
  cnf resolve kubectl jq terraform --json`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		idx, err := index.Open(cmd.Context(), cfg.Index())
		if err != nil {
			return err
		}
		defer idx.Close()

		results := make([]resolveResult, 0, len(args))
		for _, name := range args {
			pkgID, ok, err := idx.Resolve(cmd.Context(), name)
			if err != nil {
				return err
			}
			r := resolveResult{Command: name}
			if ok {
				r.Package = pkgID
				r.Suggestion = model.NewSuggestion(cfg.Prefix(), pkgID).InstallCommand
			}
			results = append(results, r)
		}

		if jsonOutput {
			return writeResolveJSON(cmd.OutOrStdout(), results)
		}
		return writeResolveTable(cmd.OutOrStdout(), results)
	},
}

func init() {
	rootCmd.AddCommand(resolveCmd)
}

// resolveResult is one row of resolve output.
type resolveResult struct {
	Command    string `json:"command"`
	Package    string `json:"package,omitempty"`
	Suggestion string `json:"suggestion,omitempty"`
}

func writeResolveJSON(w io.Writer, results []resolveResult) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(results)
}

func writeResolveTable(w io.Writer, results []resolveResult) error {
	tbl := NewTable(w, "COMMAND", "PACKAGE", "INSTALL").WithBlank("-")
	for _, r := range results {
		tbl.Row(r.Command, r.Package, r.Suggestion)
	}
	if err := tbl.Flush(); err != nil {
		return fmt.Errorf("writing table: %w", err)
	}
	return nil
}
