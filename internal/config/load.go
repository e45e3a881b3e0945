package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"slices"

	"github.com/qjebbs/go-jsons"
)

// Load merges the global, app managed and project configuration files, in
// that order, and applies defaults.
func Load(workingDir string, debug bool) (*Config, error) {
	configPaths := []string{
		GlobalConfig(),
		GlobalConfigData(),
	}
	configPaths = append(configPaths, lookupConfigs(workingDir)...)

	cfg, err := loadFromConfigPaths(configPaths)
	if err != nil {
		return nil, fmt.Errorf("failed to load config from paths %v: %w", configPaths, err)
	}
	cfg.setDefaults(workingDir)
	if debug {
		cfg.Options.Debug = true
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func loadFromConfigPaths(configPaths []string) (*Config, error) {
	var readers []io.Reader
	for _, path := range configPaths {
		fd, err := os.Open(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, fmt.Errorf("failed to open config file %s: %w", path, err)
		}
		defer fd.Close()
		readers = append(readers, fd)
	}
	return loadFromReaders(readers)
}

func loadFromReaders(readers []io.Reader) (*Config, error) {
	if len(readers) == 0 {
		return &Config{}, nil
	}
	merged, err := Merge(readers)
	if err != nil {
		return nil, fmt.Errorf("failed to merge configuration data: %w", err)
	}
	var cfg Config
	if err := json.NewDecoder(merged).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}
	return &cfg, nil
}

// Merge deep merges JSON documents; later documents win.
func Merge(data []io.Reader) (io.Reader, error) {
	inputs := make([]any, 0, len(data))
	for _, r := range data {
		b, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		if len(bytes.TrimSpace(b)) == 0 {
			continue
		}
		inputs = append(inputs, b)
	}
	if len(inputs) == 0 {
		return bytes.NewReader([]byte("{}")), nil
	}
	got, err := jsons.Merge(inputs...)
	if err != nil {
		return nil, err
	}
	return bytes.NewReader(got), nil
}

// lookupConfigs returns the project config files from the filesystem root
// down to dir, so that the closest one is merged last.
func lookupConfigs(dir string) []string {
	var found []string
	for {
		for _, name := range []string{"." + appName + ".json", appName + ".json"} {
			path := filepath.Join(dir, name)
			if _, err := os.Stat(path); err == nil {
				found = append(found, path)
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	slices.Reverse(found)
	return found
}

// GlobalConfig returns the path to the user edited configuration file.
func GlobalConfig() string {
	if dir := os.Getenv("ROSTER_GLOBAL_CONFIG"); dir != "" {
		return filepath.Join(dir, appName+".json")
	}
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, appName, appName+".json")
	}
	return filepath.Join(homeDir(), ".config", appName, appName+".json")
}

// GlobalConfigData returns the path to the configuration file the app
// itself writes to.
func GlobalConfigData() string {
	if dir := os.Getenv("ROSTER_GLOBAL_DATA"); dir != "" {
		return filepath.Join(dir, appName+".json")
	}
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, appName, appName+".json")
	}
	if runtime.GOOS == "windows" {
		local := os.Getenv("LOCALAPPDATA")
		if local == "" {
			local = filepath.Join(homeDir(), "AppData", "Local")
		}
		return filepath.Join(local, appName, appName+".json")
	}
	return filepath.Join(homeDir(), ".local", "share", appName, appName+".json")
}

func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}
