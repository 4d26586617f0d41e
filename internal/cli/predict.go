package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/scbrown/cnf/internal/client"
)

// predictCmd prints the pending suggestion for the shell's line editor.
var predictCmd = &cobra.Command{
	Use:   "predict",
	Short: "Print the pending install suggestion",
	Long: `Predict prints the install command suggested for the most recent
missing command, or nothing if there is none. It does not consume the
suggestion; only an accepted command line ("cnf accept") clears it.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		sg, ok, err := client.New(cfg.Remote()).Suggest(cmd.Context())
		if err != nil {
			logger.Debug("no prediction from daemon", zap.Error(err))
			return nil
		}
		w := cmd.OutOrStdout()
		if jsonOutput {
			var out []string
			if ok {
				out = append(out, sg.InstallCommand)
			}
			enc := json.NewEncoder(w)
			return enc.Encode(struct {
				Suggestions []string `json:"suggestions"`
			}{out})
		}
		if ok {
			fmt.Fprintln(w, sg.InstallCommand)
		}
		return nil
	},
}

// acceptCmd is run by the shell before each accepted command line.
var acceptCmd = &cobra.Command{
	Use:   "accept [command-line...]",
	Short: "Clear the pending suggestion after a command line is accepted",
	Long: `Accept tells the daemon that a command line was accepted, which
discards the pending suggestion whether or not the line was the suggestion
itself. The shell integration runs it before every command.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := client.New(cfg.Remote()).OnCommandLineAccepted(cmd.Context(), args); err != nil {
			logger.Debug("accept not delivered", zap.Error(err))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(predictCmd)
	rootCmd.AddCommand(acceptCmd)
}
