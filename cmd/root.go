package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zjrosen/vgrid/internal/config"
	"github.com/zjrosen/vgrid/internal/grid"
	"github.com/zjrosen/vgrid/internal/log"
	"github.com/zjrosen/vgrid/internal/tracing"
	"github.com/zjrosen/vgrid/internal/ui/gridview"
	"github.com/zjrosen/vgrid/internal/watcher"
)

func init() {
	// Force lipgloss/termenv to query terminal background color BEFORE
	// any Bubble Tea program starts. This prevents the terminal's OSC 11
	// response from racing with Bubble Tea's input loop and appearing as
	// garbage text in input fields.
	//
	// See: https://github.com/charmbracelet/bubbletea/issues/1036
	_ = lipgloss.HasDarkBackground()
}

var (
	version  = "dev"
	cfgFile  string
	debugLog bool
	traceOn  bool
	cfg      config.Config
)

var rootCmd = &cobra.Command{
	Use:     "vgrid",
	Short:   "A virtualized table viewer for the terminal",
	Long:    `A terminal table viewer that windows rendering over very large datasets: only the visible cells (plus overscan) are ever materialized, whatever the row count.`,
	Version: version,
	RunE:    runApp,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: ~/.config/vgrid/config.yaml)")
	rootCmd.Flags().BoolVar(&debugLog, "debug", false,
		"write debug logs to ~/.config/vgrid/debug.log")
	rootCmd.Flags().BoolVar(&traceOn, "trace", false,
		"enable render-pass tracing (overrides config)")
	rootCmd.Flags().Int("rows", 0, "row count for the synthetic dataset")
	rootCmd.Flags().String("theme", "", "theme preset (default, dark, light, high-contrast)")

	_ = viper.BindPFlag("data.rows", rootCmd.Flags().Lookup("rows"))
	_ = viper.BindPFlag("theme.preset", rootCmd.Flags().Lookup("theme"))
}

func configDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".config", "vgrid")
}

func initConfig() {
	defaults := config.Defaults()
	viper.SetDefault("auto_reload", defaults.AutoReload)
	viper.SetDefault("ui.show_status_bar", defaults.UI.ShowStatusBar)
	viper.SetDefault("ui.show_scrollbar", defaults.UI.ShowScrollbar)
	viper.SetDefault("ui.markdown_style", defaults.UI.MarkdownStyle)
	viper.SetDefault("grid.row_height", defaults.Grid.RowHeight)
	viper.SetDefault("grid.overscan_rows", defaults.Grid.OverscanRows)
	viper.SetDefault("grid.overscan_cols", defaults.Grid.OverscanCols)
	viper.SetDefault("grid.pool_size", defaults.Grid.PoolSize)
	viper.SetDefault("grid.cache_capacity", defaults.Grid.CacheCapacity)
	viper.SetDefault("grid.cache_max_bytes", defaults.Grid.CacheMaxBytes)
	viper.SetDefault("theme.preset", defaults.Theme.Preset)
	viper.SetDefault("data.rows", defaults.Data.Rows)
	viper.SetDefault("data.seed", defaults.Data.Seed)
	viper.SetDefault("tracing.enabled", defaults.Tracing.Enabled)
	viper.SetDefault("tracing.exporter", defaults.Tracing.Exporter)
	viper.SetDefault("tracing.sample_rate", defaults.Tracing.SampleRate)

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(configDir())
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	if err := viper.ReadInConfig(); err != nil {
		// No config anywhere; seed the default one so theme edits have
		// a file to land in.
		if _, ok := err.(viper.ConfigFileNotFoundError); ok && cfgFile == "" {
			defaultPath := filepath.Join(configDir(), "config.yaml")
			if writeErr := config.WriteDefaultConfig(defaultPath); writeErr == nil {
				viper.SetConfigFile(defaultPath)
				_ = viper.ReadInConfig()
			}
		}
	}

	_ = viper.Unmarshal(&cfg)
}

func runApp(cmd *cobra.Command, args []string) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if debugLog {
		cleanup, err := log.Init(filepath.Join(configDir(), "debug.log"))
		if err != nil {
			return fmt.Errorf("initializing debug log: %w", err)
		}
		defer cleanup()
		log.SetMinLevel(log.LevelDebug)
	}

	if traceOn {
		cfg.Tracing.Enabled = true
	}
	tracePath := cfg.Tracing.FilePath
	if tracePath == "" {
		tracePath = config.DefaultTracesFilePath()
	}
	provider, err := tracing.NewProvider(tracing.Config{
		Enabled:    cfg.Tracing.Enabled,
		Exporter:   cfg.Tracing.Exporter,
		FilePath:   tracePath,
		SampleRate: cfg.Tracing.SampleRate,
	})
	if err != nil {
		return fmt.Errorf("initializing tracing: %w", err)
	}
	ctx := context.Background()
	defer func() { _ = provider.Shutdown(ctx) }()

	zone.NewGlobal()

	var observerStop context.CancelFunc
	model, err := gridview.New(&cfg, gridview.WithGridReady(func(g *grid.Grid) {
		if provider.Enabled() {
			observerStop = tracing.RenderObserver(ctx, provider, g)
		}
	}))
	if err != nil {
		return fmt.Errorf("building grid view: %w", err)
	}

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	var w *watcher.Watcher
	if cfg.AutoReload && viper.ConfigFileUsed() != "" {
		w, err = watcher.New(watcher.DefaultConfig(viper.ConfigFileUsed()))
		if err != nil {
			log.ErrorErr(log.CatWatcher, "config watcher unavailable", err)
		} else {
			changes, startErr := w.Start()
			if startErr != nil {
				log.ErrorErr(log.CatWatcher, "config watcher failed to start", startErr)
			} else {
				go relayConfigChanges(p, changes)
			}
		}
	}

	finalModel, err := p.Run()

	if w != nil {
		_ = w.Stop()
	}
	if observerStop != nil {
		observerStop()
	}
	if m, ok := finalModel.(gridview.Model); ok {
		m.Close()
	}

	if err != nil {
		return fmt.Errorf("running program: %w", err)
	}
	return nil
}

// relayConfigChanges re-reads the config file on watcher hits and
// feeds the result into the running program.
func relayConfigChanges(p *tea.Program, changes <-chan struct{}) {
	for range changes {
		if err := viper.ReadInConfig(); err != nil {
			log.ErrorErr(log.CatConfig, "config reload read failed", err)
			continue
		}
		var next config.Config
		if err := viper.Unmarshal(&next); err != nil {
			log.ErrorErr(log.CatConfig, "config reload parse failed", err)
			continue
		}
		if err := next.Validate(); err != nil {
			log.ErrorErr(log.CatConfig, "config reload rejected", err)
			continue
		}
		p.Send(gridview.ConfigReloadedMsg{Config: &next})
	}
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version string (called from main with ldflags)
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}
