package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/scbrown/cnf/internal/client"
	"github.com/scbrown/cnf/internal/cmdparse"
	"github.com/scbrown/cnf/internal/engine"
	"github.com/scbrown/cnf/internal/hook"
	"github.com/scbrown/cnf/internal/model"
)

var (
	feedbackToken string
	feedbackLine  string
	feedbackKind  string
)

// feedbackCmd is what the shell's command-not-found handler runs.
var feedbackCmd = &cobra.Command{
	Use:   "feedback",
	Short: "Report a failed command and print an install suggestion",
	Long: `Feedback reports a failed command line to the daemon and prints the
install suggestion, if the index has one. The daemon keeps the suggestion so
"cnf predict" can offer it as the next command line.

The failure is read from flags, or as a JSON payload on stdin when neither
--token nor --line is given:

  {"command_line": "kubectl get pods", "token": "kubectl", "exit_code": 127}

If the daemon is not running the index is consulted directly; the suggestion is
printed but not remembered. Feedback never fails the calling shell hook: errors
are logged and the command exits zero.`,
	Example: `  cnf feedback --token kubectl --line "kubectl get pods"
  echo '{"token":"jq","error_id":"CommandNotFoundException"}' | cnf feedback`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := failureFromInput(cmd.InOrStdin())
		if err != nil {
			logger.Debug("ignoring malformed failure report", zap.Error(err))
			return nil
		}
		sg, ok := reportFailure(cmd.Context(), f)
		if !ok {
			return nil
		}
		return writeFeedback(cmd.OutOrStdout(), f, sg)
	},
}

func init() {
	feedbackCmd.Flags().StringVar(&feedbackToken, "token", "", "the command word that was not found")
	feedbackCmd.Flags().StringVar(&feedbackLine, "line", "", "the full command line")
	feedbackCmd.Flags().StringVar(&feedbackKind, "kind", model.ErrorCommandNotFound.String(), "failure kind or host error id")
	rootCmd.AddCommand(feedbackCmd)
}

// failureFromInput builds the failure from flags, or from a JSON payload on
// in when no command was given on the command line.
func failureFromInput(in io.Reader) (model.CommandFailure, error) {
	if feedbackToken == "" && feedbackLine == "" {
		return hook.Parse(in)
	}
	return hook.Payload{
		CommandLine: feedbackLine,
		Token:       feedbackToken,
		Kind:        feedbackKind,
	}.Failure()
}

// reportFailure asks the daemon for a suggestion, falling back to a one-shot
// local lookup when the daemon cannot be reached.
func reportFailure(ctx context.Context, f model.CommandFailure) (model.Suggestion, bool) {
	sg, ok, err := client.New(cfg.Remote()).OnFailure(ctx, f)
	if err == nil {
		return sg, ok
	}
	logger.Debug("daemon unreachable, resolving locally", zap.Error(err))

	e, err := engine.Open(ctx, engine.Options{
		IndexPath:     cfg.Index(),
		InstallPrefix: cfg.Prefix(),
		Logger:        logger,
	})
	if err != nil {
		return model.Suggestion{}, false
	}
	defer e.Close()
	return e.Feedback().OnFailure(ctx, f)
}

func writeFeedback(w io.Writer, f model.CommandFailure, sg model.Suggestion) error {
	name := f.FailedToken
	if name == "" {
		name = cmdparse.CommandName(f.CommandLine)
	}
	if jsonOutput {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(struct {
			Command    string `json:"command"`
			Suggestion string `json:"suggestion"`
		}{name, sg.InstallCommand})
	}
	_, err := fmt.Fprintf(w, "cnf: %q is not installed. It is provided by a package:\n  %s\n", name, sg.InstallCommand)
	return err
}
