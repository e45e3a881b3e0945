package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

const (
	InitFlagFilename = "init"
)

type ProjectInitFlag struct {
	Initialized bool `json:"initialized"`
}

func ProjectNeedsInitialization(cfg *Config) (bool, error) {
	if cfg == nil {
		return false, fmt.Errorf("config not loaded")
	}

	flagFilePath := filepath.Join(cfg.Options.DataDirectory, InitFlagFilename)

	_, err := os.Stat(flagFilePath)
	if err == nil {
		return false, nil
	}

	if !os.IsNotExist(err) {
		return false, fmt.Errorf("failed to check init flag file: %w", err)
	}

	exists, err := projectConfigExists(cfg.WorkingDir())
	if err != nil {
		return false, fmt.Errorf("failed to check for project config files: %w", err)
	}
	if exists {
		return false, nil
	}

	return true, nil
}

func projectConfigExists(dir string) (bool, error) {
	for _, name := range []string{appName + ".json", "." + appName + ".json"} {
		_, err := os.Stat(filepath.Join(dir, name))
		if err == nil {
			return true, nil
		}
		if !os.IsNotExist(err) {
			return false, err
		}
	}
	return false, nil
}

// InitProject writes a project config with the effective list options and
// dataset settings, then marks the project initialized. It returns the path
// of the written file.
func InitProject(cfg *Config) (string, error) {
	if cfg == nil {
		return "", fmt.Errorf("config not loaded")
	}
	path := filepath.Join(cfg.WorkingDir(), appName+".json")
	project := Config{
		Dataset: cfg.Dataset,
		Options: &Options{
			TUI:  cfg.Options.TUI,
			List: cfg.Options.List,
		},
	}
	data, err := json.MarshalIndent(project, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal project config: %w", err)
	}

	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if errors.Is(err, os.ErrExist) {
		return "", fmt.Errorf("project config %s already exists", path)
	}
	if err != nil {
		return "", fmt.Errorf("failed to create project config: %w", err)
	}
	defer file.Close()
	if _, err := file.Write(append(data, '\n')); err != nil {
		return "", fmt.Errorf("failed to write project config: %w", err)
	}

	return path, MarkProjectInitialized(cfg)
}

func MarkProjectInitialized(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config not loaded")
	}
	if err := os.MkdirAll(cfg.Options.DataDirectory, 0o755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}
	flagFilePath := filepath.Join(cfg.Options.DataDirectory, InitFlagFilename)

	data, err := json.Marshal(ProjectInitFlag{Initialized: true})
	if err != nil {
		return fmt.Errorf("failed to marshal init flag: %w", err)
	}
	if err := os.WriteFile(flagFilePath, data, 0o644); err != nil {
		return fmt.Errorf("failed to create init flag file: %w", err)
	}
	return nil
}
