package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/scbrown/cnf/internal/index"
)

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Check that the package index can be opened",
	Long: `Index opens the configured package index read-only and reports its path
and how many command names it knows. It exits non-zero when the index is
missing or unreadable, which is also when the daemon runs with suggestions
disabled.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		idx, err := index.Open(cmd.Context(), cfg.Index())
		if err != nil {
			return err
		}
		defer idx.Close()

		n, err := idx.CountCommands(cmd.Context())
		if err != nil {
			return err
		}

		w := cmd.OutOrStdout()
		if jsonOutput {
			enc := json.NewEncoder(w)
			enc.SetIndent("", "  ")
			return enc.Encode(struct {
				Path     string `json:"path"`
				Commands int    `json:"commands"`
			}{idx.Path(), n})
		}
		fmt.Fprintf(w, "index:    %s\ncommands: %d\n", idx.Path(), n)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(indexCmd)
}
