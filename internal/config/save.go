package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// SaveGrid updates the grid section in the config file. Comments and
// formatting in other sections are preserved by editing the yaml.Node
// tree instead of re-marshaling the whole config.
func SaveGrid(configPath string, grid GridConfig) error {
	return saveSection(configPath, "grid", buildGridNode(grid))
}

// SaveTheme updates the theme section in the config file.
func SaveTheme(configPath string, theme ThemeConfig) error {
	return saveSection(configPath, "theme", buildThemeNode(theme))
}

// saveSection replaces (or appends) one top-level key in the config
// file and writes the result atomically.
func saveSection(configPath, key string, sectionNode *yaml.Node) error {
	data, err := os.ReadFile(configPath) //nolint:gosec // G304: user-chosen config path
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("reading config: %w", err)
	}

	var doc yaml.Node
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return fmt.Errorf("parsing config: %w", err)
		}
	}

	if doc.Kind == 0 {
		// Empty or new file
		doc = yaml.Node{
			Kind: yaml.DocumentNode,
			Content: []*yaml.Node{
				{
					Kind: yaml.MappingNode,
					Content: []*yaml.Node{
						{Kind: yaml.ScalarNode, Value: key},
						sectionNode,
					},
				},
			},
		}
	} else if doc.Kind == yaml.DocumentNode && len(doc.Content) > 0 {
		root := doc.Content[0]
		if root.Kind == yaml.MappingNode {
			found := false
			for i := 0; i < len(root.Content)-1; i += 2 {
				if root.Content[i].Value == key {
					root.Content[i+1] = sectionNode
					found = true
					break
				}
			}
			if !found {
				root.Content = append(root.Content,
					&yaml.Node{Kind: yaml.ScalarNode, Value: key},
					sectionNode,
				)
			}
		}
	}

	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(&doc); err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	_ = encoder.Close()

	// Write atomically (write to temp, then rename)
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	temp, err := os.CreateTemp(dir, ".vgrid.yaml.tmp.*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tempPath := temp.Name()

	if _, err := temp.Write(buf.Bytes()); err != nil {
		_ = temp.Close()
		_ = os.Remove(tempPath)
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := temp.Close(); err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("closing temp file: %w", err)
	}

	if err := os.Rename(tempPath, configPath); err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}

	return nil
}

func buildGridNode(grid GridConfig) *yaml.Node {
	node := &yaml.Node{Kind: yaml.MappingNode}
	addScalar := func(key string, value string) {
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Value: key},
			&yaml.Node{Kind: yaml.ScalarNode, Value: value},
		)
	}
	addScalar("row_height", strconv.Itoa(grid.RowHeight))
	addScalar("overscan_rows", strconv.Itoa(grid.OverscanRows))
	addScalar("overscan_cols", strconv.Itoa(grid.OverscanCols))
	addScalar("pool_size", strconv.Itoa(grid.PoolSize))
	addScalar("cache_capacity", strconv.Itoa(grid.CacheCapacity))
	addScalar("cache_max_bytes", strconv.FormatInt(grid.CacheMaxBytes, 10))
	return node
}

func buildThemeNode(theme ThemeConfig) *yaml.Node {
	node := &yaml.Node{Kind: yaml.MappingNode}
	if theme.Preset != "" {
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Value: "preset"},
			&yaml.Node{Kind: yaml.ScalarNode, Value: theme.Preset},
		)
	}
	if theme.Mode != "" {
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Value: "mode"},
			&yaml.Node{Kind: yaml.ScalarNode, Value: theme.Mode},
		)
	}
	if len(theme.Colors) > 0 {
		colors := &yaml.Node{Kind: yaml.MappingNode}
		for key, value := range theme.FlattenedColors() {
			colors.Content = append(colors.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Value: key, Style: yaml.DoubleQuotedStyle},
				&yaml.Node{Kind: yaml.ScalarNode, Value: value, Style: yaml.DoubleQuotedStyle},
			)
		}
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Value: "colors"},
			colors,
		)
	}
	return node
}
