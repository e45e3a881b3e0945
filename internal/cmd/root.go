package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/MakeNowJust/heredoc"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/roster/internal/config"
	"github.com/charmbracelet/roster/internal/customer"
	"github.com/charmbracelet/roster/internal/log"
	"github.com/charmbracelet/roster/internal/tui"
	"github.com/charmbracelet/roster/internal/version"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.PersistentFlags().StringP("cwd", "c", "", "Current working directory")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "Debug")
	rootCmd.PersistentFlags().String("data", "", "Customer file to load (.json, .yaml or .db)")
	rootCmd.PersistentFlags().Int("count", 0, "Number of customers to generate when no data file is given")
	rootCmd.PersistentFlags().Uint64("seed", 0, "Seed for generated customers")
}

var rootCmd = &cobra.Command{
	Use:   "roster",
	Short: "Browse large customer lists in the terminal",
	Long: heredoc.Doc(`
		Roster shows a searchable, sortable customer list. Rows are rendered
		on demand and loaded page by page as you scroll, so lists with many
		thousands of customers stay responsive.
	`),
	Example: heredoc.Doc(`
		# Browse a generated list of 1000 customers
		roster

		# Browse customers from a file
		roster --data customers.json

		# Generate a bigger list with debug logging
		roster --count 100000 --debug
	`),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := setupConfig(cmd)
		if err != nil {
			return err
		}
		defer log.RecoverPanic("main", nil)

		d, err := loadDataset(cmd, cfg)
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		program := tea.NewProgram(
			tui.New(cfg, d),
			tea.WithAltScreen(),
			tea.WithContext(ctx),
			tea.WithMouseCellMotion(),
		)
		if _, err := program.Run(); err != nil {
			slog.Error("TUI run error", "error", err)
			return fmt.Errorf("TUI error: %v", err)
		}
		return nil
	},
}

func Execute() {
	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(version.Version),
	); err != nil {
		os.Exit(1)
	}
}

// setupConfig resolves the working directory, loads the configuration and
// starts logging to the data directory.
func setupConfig(cmd *cobra.Command) (*config.Config, error) {
	debug, _ := cmd.Flags().GetBool("debug")
	cwd, err := ResolveCwd(cmd)
	if err != nil {
		return nil, err
	}

	cfg, err := config.Load(cwd, debug)
	if err != nil {
		return nil, err
	}
	if err := applyDatasetFlags(cmd, cfg); err != nil {
		return nil, err
	}

	if err := os.MkdirAll(cfg.Options.DataDirectory, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %q %w", cfg.Options.DataDirectory, err)
	}
	log.Setup(filepath.Join(cfg.Options.DataDirectory, "logs", "roster.log"), cfg.Options.Debug)
	return cfg, nil
}

func applyDatasetFlags(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()
	if flags.Changed("data") {
		path, _ := flags.GetString("data")
		abs, err := filepath.Abs(path)
		if err != nil {
			return fmt.Errorf("failed to resolve data file: %w", err)
		}
		cfg.Dataset.Path = abs
	}
	if flags.Changed("count") {
		count, _ := flags.GetInt("count")
		if count < 0 {
			return fmt.Errorf("count must not be negative, got %d", count)
		}
		cfg.Dataset.Count = count
	}
	if flags.Changed("seed") {
		cfg.Dataset.Seed, _ = flags.GetUint64("seed")
	}
	return nil
}

func loadDataset(cmd *cobra.Command, cfg *config.Config) (*customer.Dataset, error) {
	start := time.Now()
	var (
		d   *customer.Dataset
		err error
	)
	if cfg.Dataset.Path != "" {
		d, err = customer.Load(cmd.Context(), cfg.Dataset.Path)
	} else {
		d, err = customer.NewDataset(customer.Generate(cfg.Dataset.Count, cfg.Dataset.Seed, time.Now()))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load customers: %w", err)
	}
	slog.Info("Loaded customers",
		"count", d.Len(),
		"path", cfg.Dataset.Path,
		"took", time.Since(start),
	)
	return d, nil
}

func ResolveCwd(cmd *cobra.Command) (string, error) {
	cwd, _ := cmd.Flags().GetString("cwd")
	if cwd != "" {
		abs, err := filepath.Abs(cwd)
		if err != nil {
			return "", fmt.Errorf("failed to resolve working directory: %v", err)
		}
		return abs, nil
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get current working directory: %v", err)
	}
	return cwd, nil
}
