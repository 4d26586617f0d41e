package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/scbrown/cnf/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config [key] [value]",
	Short: "Show or modify configuration",
	Long: `View or change cnf configuration stored in ~/.cnf/config.toml.

With no arguments, shows all configuration settings.
With one argument, shows the value of that key.
With two arguments, sets the key to the given value; "" resets it.

Settings:
  index_path      Path to the package index (default ~/.cnf/index.db)
  install_prefix  Prefix of suggested commands (default "winget install")
  listen_addr     Address "cnf serve" listens on (default localhost:7274)
  remote_url      URL hooks use to reach the daemon (default from listen_addr)
  log_level       debug, info, warn or error (default warn)
  default_format  Default output format: "table" or "json"`,
	Example: `  cnf config
  cnf config index_path
  cnf config index_path /var/lib/cnf/index.db
  cnf config install_prefix "brew install"`,
	Args: cobra.MaximumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		// Show the file's contents, not the flag-adjusted cfg.
		stored, err := config.LoadFrom(configPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		w := cmd.OutOrStdout()
		switch len(args) {
		case 0:
			return showConfig(w, stored)
		case 1:
			return getConfig(w, stored, args[0])
		default:
			return setConfig(w, stored, args[0], args[1])
		}
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func showConfig(w io.Writer, c *config.Config) error {
	if jsonOutput {
		values := make(map[string]string)
		for _, key := range config.ValidKeys() {
			val, _ := c.Get(key)
			values[key] = val
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(values)
	}

	tbl := NewTable(w, "KEY", "VALUE").WithBlank("(not set)")
	for _, key := range config.ValidKeys() {
		val, _ := c.Get(key)
		tbl.Row(key, val)
	}
	return tbl.Flush()
}

func getConfig(w io.Writer, c *config.Config, key string) error {
	val, err := c.Get(key)
	if err != nil {
		return err
	}
	if val == "" {
		return nil
	}
	fmt.Fprintln(w, val)
	return nil
}

func setConfig(w io.Writer, c *config.Config, key, value string) error {
	if err := c.Set(key, value); err != nil {
		return err
	}
	if err := c.SaveTo(configPath); err != nil {
		return err
	}
	fmt.Fprintf(w, "%s = %s\n", key, value)
	return nil
}
