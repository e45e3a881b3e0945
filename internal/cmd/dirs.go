package cmd

import (
	"fmt"
	"io"
	"path/filepath"
	"slices"
	"strings"

	"github.com/MakeNowJust/heredoc"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/charmbracelet/roster/internal/config"
	"github.com/spf13/cobra"
)

// directory is a location roster reads from or writes to.
type directory struct {
	name  string
	about string
	path  string
}

var dirsCmd = &cobra.Command{
	Use:   "dirs [name]",
	Short: "Print directories used by Roster",
	Long: heredoc.Doc(`
		Print where Roster reads configuration and writes its own files. Give a
		name to print a single path, which is handy in scripts.
	`),
	Example: heredoc.Doc(`
		# Print all directories
		roster dirs

		# Follow the log of the current project
		tail -f "$(roster dirs logs)/roster.log"
	`),
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{"config", "data", "project", "logs"},
	RunE: func(cmd *cobra.Command, args []string) error {
		cwd, err := ResolveCwd(cmd)
		if err != nil {
			return err
		}
		debug, _ := cmd.Flags().GetBool("debug")
		cfg, err := config.Load(cwd, debug)
		if err != nil {
			return err
		}

		dirs := directories(cfg)
		if len(args) == 0 {
			return printDirectories(cmd.OutOrStdout(), dirs)
		}
		i := slices.IndexFunc(dirs, func(d directory) bool { return d.name == args[0] })
		if i < 0 {
			return fmt.Errorf("unknown directory %q, expected one of: %s", args[0], strings.Join(cmd.ValidArgs, ", "))
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), dirs[i].path)
		return err
	},
}

func init() {
	rootCmd.AddCommand(dirsCmd)
}

func directories(cfg *config.Config) []directory {
	return []directory{
		{name: "config", about: "Global configuration", path: filepath.Dir(config.GlobalConfig())},
		{name: "data", about: "Settings changed by roster", path: filepath.Dir(config.GlobalConfigData())},
		{name: "project", about: "Project data", path: cfg.Options.DataDirectory},
		{name: "logs", about: "Logs", path: filepath.Join(cfg.Options.DataDirectory, "logs")},
	}
}

func printDirectories(w io.Writer, dirs []directory) error {
	label := lipgloss.NewStyle().Bold(true)
	width := 0
	for _, d := range dirs {
		width = max(width, lipgloss.Width(d.about))
	}
	for _, d := range dirs {
		line := label.Width(width+2).Render(d.about+":") + d.path
		if _, err := lipgloss.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
