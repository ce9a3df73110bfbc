package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/ringgauge/pkg/buildinfo"
	"github.com/matzehuels/ringgauge/pkg/cache"
	"github.com/matzehuels/ringgauge/pkg/config"
	"github.com/matzehuels/ringgauge/pkg/dataview"
	"github.com/matzehuels/ringgauge/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "ringgauge"

	// stdinArg reads update options from standard input.
	stdinArg = "-"
)

// Log levels for New and --verbose.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	Config config.Config

	configPath string
	verbose    bool
}

// New creates a new CLI instance with a default logger and the built-in
// configuration. The config file is loaded before each command runs.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: config.Default(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Ringgauge renders a single value as a colored ring",
		Long:         `Ringgauge resolves gauge settings from host data views and renders a ring whose stroke color moves between min, mid and max target colors.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := c.loadConfig(); err != nil {
				return err
			}
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/ringgauge/config.toml)")
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(c.renderCommand())
	root.AddCommand(c.enumerateCommand())
	root.AddCommand(c.previewCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// loadConfig reads the config file and applies its log level.
// --verbose wins over log_level.
func (c *CLI) loadConfig() error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	c.Config = cfg
	if level, err := log.ParseLevel(cfg.LogLevel); err == nil {
		c.SetLogLevel(level)
	}
	if c.verbose {
		c.SetLogLevel(LogDebug)
	}
	return nil
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(noCache bool) (*pipeline.Runner, error) {
	cache, err := c.newCache(noCache)
	if err != nil {
		return nil, err
	}
	r := pipeline.NewRunner(cache, nil, c.Logger)
	r.TTL = c.Config.Cache.TTL.Duration
	return r, nil
}

func (c *CLI) newCache(noCache bool) (cache.Cache, error) {
	if noCache || c.Config.Cache.Disabled {
		return cache.NewNullCache(), nil
	}
	dir, err := c.artifactCacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/ringgauge/).
func cacheDir() (string, error) {
	return config.CacheDir()
}

// artifactCacheDir honors cache.dir from the config file.
func (c *CLI) artifactCacheDir() (string, error) {
	if c.Config.Cache.Dir != "" {
		return c.Config.Cache.Dir, nil
	}
	return cacheDir()
}

// =============================================================================
// Options Helpers
// =============================================================================

// pipelineOptions builds run options from the loaded config.
func (c *CLI) pipelineOptions(update *dataview.UpdateOptions, formats []string) pipeline.Options {
	defaults := c.Config.Defaults
	return pipeline.Options{
		Update:   update,
		Defaults: &defaults,
		Width:    c.Config.Render.Width,
		Height:   c.Config.Render.Height,
		Formats:  formats,
		PNGScale: c.Config.Render.PNGScale,
		Logger:   c.Logger,
	}
}

// readUpdate decodes update options from a file, or from stdin when path
// is empty or "-".
func readUpdate(cmd *cobra.Command, path string) (*dataview.UpdateOptions, error) {
	if path == "" || path == stdinArg {
		return dataview.Decode(cmd.InOrStdin())
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return dataview.Decode(f)
}

// parseFormats parses a comma-separated format string into a slice.
// An empty string yields def.
func parseFormats(s string, def []string) []string {
	if s == "" {
		if len(def) == 0 {
			return []string{pipeline.FormatSVG}
		}
		return def
	}
	var out []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(strings.ToLower(f)); f != "" {
			out = append(out, f)
		}
	}
	return out
}

// contextLogger returns the command logger, falling back to the CLI's.
func (c *CLI) contextLogger(ctx context.Context) *log.Logger {
	if ctx == nil {
		return c.Logger
	}
	return loggerFromContext(ctx)
}
