package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/scbrown/cnf/internal/hook"
)

var initCmd = &cobra.Command{
	Use:   "init <shell>",
	Short: "Print the shell integration script",
	Long: `Init prints a script that wires cnf into the shell. Evaluate it from the
shell's startup file. The script:

  - reports command-not-found failures with "cnf feedback",
  - runs "cnf accept" before every command line,
  - binds Ctrl-X Ctrl-S to insert the pending install suggestion.

Supported shells: ` + strings.Join(hook.Shells(), ", ") + `.`,
	Example: `  echo 'eval "$(cnf init zsh)"' >> ~/.zshrc
  echo 'eval "$(cnf init bash)"' >> ~/.bashrc`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: hook.Shells(),
	RunE: func(cmd *cobra.Command, args []string) error {
		script, err := hook.Script(args[0], selfPath())
		if err != nil {
			return err
		}
		_, err = fmt.Fprint(cmd.OutOrStdout(), script)
		return err
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}

// selfPath returns the absolute path of the running binary, or "cnf" when it
// cannot be determined.
func selfPath() string {
	exe, err := os.Executable()
	if err != nil {
		return "cnf"
	}
	return exe
}
