package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/tidwall/sjson"
)

const (
	appName              = "roster"
	defaultDataDirectory = ".roster"

	defaultPageSize           = 30
	defaultLoadThreshold      = 20
	defaultOverscan           = 10
	defaultEstimatedRowHeight = 2
	defaultDebounceMS         = 250
	defaultFrameMS            = 16
	defaultDatasetCount       = 1000
	defaultDatasetSeed        = 1
)

type TUIOptions struct {
	CompactMode bool `json:"compact_mode,omitempty"`
}

// ListOptions tune windowed rendering. Distances are in terminal rows.
type ListOptions struct {
	PageSize           int `json:"page_size,omitempty"`
	LoadThreshold      int `json:"load_threshold,omitempty"`
	Overscan           int `json:"overscan,omitempty"`
	EstimatedRowHeight int `json:"estimated_row_height,omitempty"`
	DebounceMS         int `json:"debounce_ms,omitempty"`
	FrameMS            int `json:"frame_ms,omitempty"`
}

func (l *ListOptions) DebounceDelay() time.Duration {
	return time.Duration(l.DebounceMS) * time.Millisecond
}

func (l *ListOptions) FrameInterval() time.Duration {
	return time.Duration(l.FrameMS) * time.Millisecond
}

// DatasetOptions select where customers come from. Without a path a
// deterministic dataset of Count records is generated from Seed.
type DatasetOptions struct {
	Path  string `json:"path,omitempty"` // Relative to the cwd
	Count int    `json:"count,omitempty"`
	Seed  uint64 `json:"seed,omitempty"`
}

type Options struct {
	TUI           *TUIOptions  `json:"tui,omitempty"`
	List          *ListOptions `json:"list,omitempty"`
	Debug         bool         `json:"debug,omitempty"`
	DataDirectory string       `json:"data_directory,omitempty"` // Relative to the cwd
}

// Config holds the configuration for roster.
type Config struct {
	Dataset *DatasetOptions `json:"dataset,omitempty"`

	Options *Options `json:"options,omitempty"`

	// Internal
	workingDir    string `json:"-"`
	dataConfigDir string `json:"-"`
}

func (c *Config) WorkingDir() string {
	return c.workingDir
}

func (c *Config) setDefaults(workingDir string) {
	c.workingDir = workingDir
	if c.dataConfigDir == "" {
		c.dataConfigDir = GlobalConfigData()
	}
	if c.Options == nil {
		c.Options = &Options{}
	}
	if c.Options.TUI == nil {
		c.Options.TUI = &TUIOptions{}
	}
	if c.Options.List == nil {
		c.Options.List = &ListOptions{}
	}
	if c.Options.DataDirectory == "" {
		c.Options.DataDirectory = filepath.Join(workingDir, defaultDataDirectory)
	}

	l := c.Options.List
	if l.PageSize == 0 {
		l.PageSize = defaultPageSize
	}
	if l.LoadThreshold == 0 {
		l.LoadThreshold = defaultLoadThreshold
	}
	if l.Overscan == 0 {
		l.Overscan = defaultOverscan
	}
	if l.EstimatedRowHeight == 0 {
		l.EstimatedRowHeight = defaultEstimatedRowHeight
	}
	if l.DebounceMS == 0 {
		l.DebounceMS = defaultDebounceMS
	}
	if l.FrameMS == 0 {
		l.FrameMS = defaultFrameMS
	}

	if c.Dataset == nil {
		c.Dataset = &DatasetOptions{}
	}
	if c.Dataset.Count == 0 {
		c.Dataset.Count = defaultDatasetCount
	}
	if c.Dataset.Seed == 0 {
		c.Dataset.Seed = defaultDatasetSeed
	}
	if c.Dataset.Path != "" && !filepath.IsAbs(c.Dataset.Path) {
		c.Dataset.Path = filepath.Join(workingDir, c.Dataset.Path)
	}
}

// Validate reports every invalid option at once.
func (c *Config) Validate() error {
	var errs []error
	l := c.Options.List
	if l.PageSize < 1 {
		errs = append(errs, fmt.Errorf("options.list.page_size must be positive, got %d", l.PageSize))
	}
	if l.LoadThreshold < 0 {
		errs = append(errs, fmt.Errorf("options.list.load_threshold must not be negative, got %d", l.LoadThreshold))
	}
	if l.Overscan < 0 {
		errs = append(errs, fmt.Errorf("options.list.overscan must not be negative, got %d", l.Overscan))
	}
	if l.EstimatedRowHeight < 1 {
		errs = append(errs, fmt.Errorf("options.list.estimated_row_height must be positive, got %d", l.EstimatedRowHeight))
	}
	if l.DebounceMS < 0 {
		errs = append(errs, fmt.Errorf("options.list.debounce_ms must not be negative, got %d", l.DebounceMS))
	}
	if l.FrameMS < 0 {
		errs = append(errs, fmt.Errorf("options.list.frame_ms must not be negative, got %d", l.FrameMS))
	}
	if c.Dataset.Count < 0 {
		errs = append(errs, fmt.Errorf("dataset.count must not be negative, got %d", c.Dataset.Count))
	}
	return errors.Join(errs...)
}

func (c *Config) SetCompactMode(enabled bool) error {
	if c.Options == nil {
		c.Options = &Options{}
	}
	if c.Options.TUI == nil {
		c.Options.TUI = &TUIOptions{}
	}
	c.Options.TUI.CompactMode = enabled
	return c.SetConfigField("options.tui.compact_mode", enabled)
}

func (c *Config) SetConfigField(key string, value any) error {
	// read the data
	data, err := os.ReadFile(c.dataConfigDir)
	if err != nil {
		if os.IsNotExist(err) {
			data = []byte("{}")
		} else {
			return fmt.Errorf("failed to read config file: %w", err)
		}
	}

	newValue, err := sjson.Set(string(data), key, value)
	if err != nil {
		return fmt.Errorf("failed to set config field %s: %w", key, err)
	}
	if err := os.MkdirAll(filepath.Dir(c.dataConfigDir), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(c.dataConfigDir, []byte(newValue), 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
