package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestDefaults(t *testing.T) {
	cfg := Defaults()

	require.True(t, cfg.AutoReload)
	require.Equal(t, 100_000, cfg.Data.Rows)
	require.Equal(t, 3, cfg.Grid.OverscanRows)
	require.NoError(t, cfg.Validate())
}

func TestValidateGrid(t *testing.T) {
	require.NoError(t, ValidateGrid(GridConfig{}))
	require.Error(t, ValidateGrid(GridConfig{RowHeight: -1}))
	require.Error(t, ValidateGrid(GridConfig{OverscanRows: -1}))
	require.Error(t, ValidateGrid(GridConfig{PoolSize: -5}))
	require.Error(t, ValidateGrid(GridConfig{CacheMaxBytes: -1}))
}

func TestValidateTheme(t *testing.T) {
	require.NoError(t, ValidateTheme(ThemeConfig{}))
	require.NoError(t, ValidateTheme(ThemeConfig{Mode: "dark"}))
	require.Error(t, ValidateTheme(ThemeConfig{Mode: "sepia"}))
}

func TestValidateTracing(t *testing.T) {
	require.NoError(t, ValidateTracing(TracingConfig{SampleRate: 0.5, Exporter: "stdout"}))
	require.Error(t, ValidateTracing(TracingConfig{SampleRate: 1.5}))
	require.Error(t, ValidateTracing(TracingConfig{Exporter: "otlp"}))
	require.Error(t, ValidateTracing(TracingConfig{Enabled: true, Exporter: "file"}))
	require.NoError(t, ValidateTracing(TracingConfig{Enabled: true, Exporter: "file", FilePath: "/tmp/t.jsonl"}))
}

func TestFlattenedColors(t *testing.T) {
	theme := ThemeConfig{
		Colors: map[string]any{
			"text": map[string]any{
				"primary": "#FFFFFF",
			},
			"row.selected": "#44475A",
		},
	}

	flat := theme.FlattenedColors()
	require.Equal(t, "#FFFFFF", flat["text.primary"])
	require.Equal(t, "#44475A", flat["row.selected"])
}

func TestWriteDefaultConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "config.yaml")

	require.NoError(t, WriteDefaultConfig(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), "auto_reload: true")

	var parsed map[string]any
	require.NoError(t, yaml.Unmarshal(data, &parsed), "template must be valid YAML")
}

func TestSaveGrid_PreservesOtherSections(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	original := "# top comment\nauto_reload: true\n\ndata:\n  rows: 500\n"
	require.NoError(t, os.WriteFile(path, []byte(original), 0o600))

	require.NoError(t, SaveGrid(path, GridConfig{RowHeight: 2, OverscanRows: 4, PoolSize: 128, CacheCapacity: 100, CacheMaxBytes: 1024}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	content := string(data)
	require.Contains(t, content, "# top comment")
	require.Contains(t, content, "rows: 500")
	require.Contains(t, content, "row_height: 2")
	require.Contains(t, content, "overscan_rows: 4")
}

func TestSaveGrid_ReplacesExistingSection(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	original := "grid:\n  row_height: 1\n"
	require.NoError(t, os.WriteFile(path, []byte(original), 0o600))

	require.NoError(t, SaveGrid(path, GridConfig{RowHeight: 3}))
	require.NoError(t, SaveGrid(path, GridConfig{RowHeight: 5}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), "row_height: 5")
	require.NotContains(t, string(data), "row_height: 3")
}

func TestSaveTheme_NewFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	theme := ThemeConfig{
		Preset: "dark",
		Colors: map[string]any{"text.primary": "#FFFFFF"},
	}
	require.NoError(t, SaveTheme(path, theme))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), "preset: dark")
	require.Contains(t, string(data), `"text.primary": "#FFFFFF"`)
}
