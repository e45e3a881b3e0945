package cmd

import (
	"fmt"
	"strconv"

	"github.com/MakeNowJust/heredoc"
	"github.com/charmbracelet/roster/internal/config"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Long:  `Create a project configuration or change settings stored by Roster`,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a project configuration",
	Long: heredoc.Doc(`
		Write roster.json to the working directory with the effective list and
		dataset settings, so they can be tuned per project.
	`),
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := setupConfig(cmd)
		if err != nil {
			return err
		}
		path, err := config.InitProject(cfg)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change a stored setting",
	Long: heredoc.Doc(`
		Change a setting in the configuration file Roster manages. Keys use dot
		notation, values are read as booleans or numbers when they look like one.
	`),
	Example: heredoc.Doc(`
		# Always start in compact mode
		roster config set options.tui.compact_mode true

		# Load 50 rows per page
		roster config set options.list.page_size 50
	`),
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := setupConfig(cmd)
		if err != nil {
			return err
		}
		if err := cfg.SetConfigField(args[0], parseConfigValue(args[1])); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Set %s to %s\n", args[0], args[1])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configSetCmd)
}

// parseConfigValue reads a command line value as an int, then a bool, then
// a plain string.
func parseConfigValue(s string) any {
	if i, err := strconv.Atoi(s); err == nil {
		return i
	}
	if b, err := strconv.ParseBool(s); err == nil {
		return b
	}
	return s
}
