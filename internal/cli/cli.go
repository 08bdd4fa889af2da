// Package cli implements the masterymap command-line interface.
//
// # Commands
//
//   - render: draw a knowledge map PNG from a built-in or TOML profile
//   - dot: print the Graphviz source of the diagram or legend
//   - profiles: list, show and export profiles
//   - validate: check a profile's topic table and edge list
//   - cache: manage the rendered-image cache
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context.
package cli

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/masterymap/pkg/buildinfo"
	"github.com/matzehuels/masterymap/pkg/cache"
	"github.com/matzehuels/masterymap/pkg/profile"
	"github.com/matzehuels/masterymap/pkg/render/raster"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "masterymap"

// Log levels exported for use in main.go.
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

	// renderer replaces the engine chosen by flags. Tests use it to avoid
	// running Graphviz.
	renderer raster.Renderer
}

// New creates a new CLI instance logging to w.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Masterymap draws a student's knowledge map",
		Long: `Masterymap renders a prerequisite graph of math topics, clustered by
division and coloured by the student's mastery of each topic, with a legend
footer explaining arrows and colours.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.renderCommand())
	root.AddCommand(c.dotCommand())
	root.AddCommand(c.profilesCommand())
	root.AddCommand(c.validateCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Profile Selection
// =============================================================================

// profileFlags selects the profile and topic table shared by several
// commands.
type profileFlags struct {
	name    string
	file    string
	mapping string
}

func (f *profileFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.name, "profile", "p", profile.Default, "built-in profile name")
	cmd.Flags().StringVarP(&f.file, "profile-file", "f", "", "TOML profile file (overrides --profile)")
	cmd.Flags().StringVarP(&f.mapping, "mapping", "m", "", "CSV with topic_code,Topic,Division columns replacing the profile's topic table")
	_ = cmd.RegisterFlagCompletionFunc("profile", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return profile.Names(), cobra.ShellCompDirectiveNoFileComp
	})
	_ = cmd.MarkFlagFilename("profile-file", "toml")
	_ = cmd.MarkFlagFilename("mapping", "csv")
}

// load returns the selected profile.
func (f *profileFlags) load() (*profile.Profile, error) {
	if f.file != "" {
		return profile.Load(f.file)
	}
	return profile.Builtin(f.name)
}

// =============================================================================
// Renderer Factory
// =============================================================================

// newRenderer creates the renderer for an engine, wrapped in the file cache
// unless noCache is set or no cache directory is available.
func (c *CLI) newRenderer(engine string, noCache bool) (raster.Renderer, error) {
	if c.renderer != nil {
		return c.renderer, nil
	}
	r, err := raster.New(engine)
	if err != nil {
		return nil, err
	}
	if engine == "" {
		engine = raster.EngineWASM
	}
	if noCache {
		return r, nil
	}
	fc, err := openCache()
	if err != nil {
		c.Logger.Debug("render cache disabled", "error", err)
		return r, nil
	}
	keyer := cache.NewScopedKeyer(nil, buildinfo.Version+":")
	return raster.NewCached(r, fc, keyer, engine, c.Logger), nil
}

func openCache() (*cache.FileCache, error) {
	dir, err := cacheDir()
	if err != nil {
		return nil, err
	}
	return cache.NewFileCache(dir)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/masterymap/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}
