// Package config provides configuration types, defaults, and
// persistence for vgrid.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/zjrosen/vgrid/internal/log"
)

// Config holds all configuration options for vgrid.
type Config struct {
	AutoReload bool          `mapstructure:"auto_reload"` // re-apply config when the file changes on disk
	UI         UIConfig      `mapstructure:"ui"`
	Grid       GridConfig    `mapstructure:"grid"`
	Theme      ThemeConfig   `mapstructure:"theme"`
	Data       DataConfig    `mapstructure:"data"`
	Tracing    TracingConfig `mapstructure:"tracing"`
}

// UIConfig holds user interface configuration options.
type UIConfig struct {
	ShowStatusBar bool   `mapstructure:"show_status_bar"`
	ShowScrollbar bool   `mapstructure:"show_scrollbar"`
	MarkdownStyle string `mapstructure:"markdown_style"` // "dark" (default) or "light"
}

// GridConfig tunes the windowed renderer.
type GridConfig struct {
	RowHeight     int   `mapstructure:"row_height"`
	OverscanRows  int   `mapstructure:"overscan_rows"`
	OverscanCols  int   `mapstructure:"overscan_cols"`
	PoolSize      int   `mapstructure:"pool_size"`
	CacheCapacity int   `mapstructure:"cache_capacity"`
	CacheMaxBytes int64 `mapstructure:"cache_max_bytes"`
}

// DataConfig controls the synthetic dataset the demo loads.
type DataConfig struct {
	Rows int   `mapstructure:"rows"`
	Seed int64 `mapstructure:"seed"`
}

// ThemeConfig holds theme customization options.
type ThemeConfig struct {
	// Preset loads a built-in theme as the base (optional).
	// Valid values: "default", "dark", "light", "high-contrast"
	Preset string `mapstructure:"preset"`

	// Mode forces light or dark mode. If empty, uses terminal detection.
	Mode string `mapstructure:"mode"`

	// Colors allows overriding individual color tokens.
	// Supports both nested YAML structure and dot notation:
	//   colors:
	//     text:
	//       primary: "#FF0000"
	// Or:
	//   colors:
	//     "text.primary": "#FF0000"
	Colors map[string]any `mapstructure:"colors"`
}

// FlattenedColors returns the Colors map flattened to dot-notation keys.
func (t ThemeConfig) FlattenedColors() map[string]string {
	result := make(map[string]string)
	flattenColors("", t.Colors, result)
	return result
}

func flattenColors(prefix string, m map[string]any, result map[string]string) {
	for k, v := range m {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}

		switch val := v.(type) {
		case string:
			result[key] = val
		case map[string]any:
			flattenColors(key, val, result)
		case map[any]any:
			// YAML sometimes produces map[any]any instead of map[string]any
			converted := make(map[string]any)
			for mk, mv := range val {
				if strKey, ok := mk.(string); ok {
					converted[strKey] = mv
				}
			}
			flattenColors(key, converted, result)
		}
	}
}

// TracingConfig holds trace export configuration.
type TracingConfig struct {
	// Enabled controls whether render-pass tracing is active.
	Enabled bool `mapstructure:"enabled"`

	// Exporter selects the trace export backend.
	// Options: "none", "file", "stdout"
	Exporter string `mapstructure:"exporter"`

	// FilePath is the output file for the "file" exporter.
	FilePath string `mapstructure:"file_path"`

	// SampleRate controls trace sampling (0.0 to 1.0).
	SampleRate float64 `mapstructure:"sample_rate"`
}

// DefaultTracesFilePath returns the default path for trace file export.
func DefaultTracesFilePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "vgrid", "traces", "traces.jsonl")
}

// ValidateGrid checks grid configuration for errors. Zero values are
// valid (they fall back to defaults); negatives are not.
func ValidateGrid(grid GridConfig) error {
	if grid.RowHeight < 0 {
		return fmt.Errorf("grid.row_height must be non-negative, got %d", grid.RowHeight)
	}
	if grid.OverscanRows < 0 || grid.OverscanCols < 0 {
		return fmt.Errorf("grid overscan must be non-negative")
	}
	if grid.PoolSize < 0 {
		return fmt.Errorf("grid.pool_size must be non-negative, got %d", grid.PoolSize)
	}
	if grid.CacheCapacity < 0 || grid.CacheMaxBytes < 0 {
		return fmt.Errorf("grid cache limits must be non-negative")
	}
	return nil
}

// ValidateTheme checks theme configuration for errors.
func ValidateTheme(theme ThemeConfig) error {
	switch theme.Mode {
	case "", "light", "dark":
	default:
		return fmt.Errorf("theme.mode must be \"light\", \"dark\", or empty, got %q", theme.Mode)
	}
	return nil
}

// ValidateTracing checks tracing configuration for errors.
func ValidateTracing(tracing TracingConfig) error {
	if tracing.SampleRate < 0.0 || tracing.SampleRate > 1.0 {
		return fmt.Errorf("tracing.sample_rate must be between 0.0 and 1.0, got %v", tracing.SampleRate)
	}

	if tracing.Exporter != "" {
		switch tracing.Exporter {
		case "none", "file", "stdout":
		default:
			return fmt.Errorf("tracing.exporter must be \"none\", \"file\", or \"stdout\", got %q", tracing.Exporter)
		}
	}

	if tracing.Enabled && tracing.Exporter == "file" && tracing.FilePath == "" {
		return fmt.Errorf("tracing.file_path is required when exporter is \"file\"")
	}

	return nil
}

// Validate checks the whole configuration.
func (c Config) Validate() error {
	if err := ValidateGrid(c.Grid); err != nil {
		return err
	}
	if err := ValidateTheme(c.Theme); err != nil {
		return err
	}
	if err := ValidateTracing(c.Tracing); err != nil {
		return err
	}
	if c.Data.Rows < 0 {
		return fmt.Errorf("data.rows must be non-negative, got %d", c.Data.Rows)
	}
	return nil
}

// Defaults returns a Config with sensible default values.
func Defaults() Config {
	return Config{
		AutoReload: true,
		UI: UIConfig{
			ShowStatusBar: true,
			ShowScrollbar: true,
			MarkdownStyle: "dark",
		},
		Grid: GridConfig{
			RowHeight:     1,
			OverscanRows:  3,
			OverscanCols:  2,
			PoolSize:      512,
			CacheCapacity: 2000,
			CacheMaxBytes: 4 * 1024 * 1024,
		},
		Theme: ThemeConfig{
			Preset: "",
		},
		Data: DataConfig{
			Rows: 100_000,
			Seed: 42,
		},
		Tracing: TracingConfig{
			Enabled:    false,
			Exporter:   "file",
			FilePath:   "", // Derived from config dir at runtime
			SampleRate: 1.0,
		},
	}
}

// DefaultConfigTemplate returns the default config as a YAML string with comments.
func DefaultConfigTemplate() string {
	return `# vgrid Configuration

# Re-apply settings when this file changes on disk
auto_reload: true

# UI settings
ui:
  show_status_bar: true   # Show cache/pool stats at the bottom
  show_scrollbar: true    # Show the vertical scrollbar
  # markdown_style: dark  # Help overlay style: "dark" (default) or "light"

# Windowed renderer tuning
grid:
  row_height: 1        # Terminal rows per data row
  overscan_rows: 3     # Extra rows rendered beyond the viewport
  overscan_cols: 2     # Extra columns rendered beyond the viewport
  pool_size: 512       # Recyclable element budget
  cache_capacity: 2000 # Render cache entry limit
  # cache_max_bytes: 4194304

# Theme configuration
theme:
  # preset: dark
  #
  # Available presets:
  #   default        - Terminal-native colors
  #   dark           - Dark palette
  #   light          - Light palette
  #   high-contrast  - High contrast for accessibility
  #
  # Override specific colors (works with or without preset):
  # colors:
  #   text.primary: "#FFFFFF"
  #   row.selected: "#44475A"

# Synthetic dataset for the demo viewer
data:
  rows: 100000  # Generated row count
  seed: 42      # Generator seed; same seed, same data

# Render-pass tracing
# tracing:
#   enabled: false       # Enable/disable tracing (default: false)
#   exporter: file       # Export backend: none, file, stdout (default: file)
#   file_path: ~/.config/vgrid/traces/traces.jsonl
#   sample_rate: 1.0     # Trace sampling rate 0.0-1.0
`
}

// WriteDefaultConfig creates a config file at the given path with default settings and comments.
// Creates the parent directory if it doesn't exist.
func WriteDefaultConfig(configPath string) error {
	log.Debug(log.CatConfig, "Writing default config", "path", configPath)

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to create config directory", err, "dir", dir)
		return fmt.Errorf("creating config directory: %w", err)
	}

	if err := os.WriteFile(configPath, []byte(DefaultConfigTemplate()), 0o600); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to write config file", err, "path", configPath)
		return fmt.Errorf("writing config file: %w", err)
	}

	log.Info(log.CatConfig, "Created default config", "path", configPath)
	return nil
}
