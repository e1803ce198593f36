// Package cli implements the gridaxis command-line interface.
//
// # Commands
//
//   - solve: lay out a problem file at one or more sizes
//   - bounds: print the min, max and preferred size of a problem
//   - graph: draw the constraint graph as DOT or SVG
//   - preview: resize a problem interactively in the terminal
//   - serve: run the HTTP API
//   - cache: inspect or clear the local solution cache
//
// All commands accept --verbose (-v) for debug logging.
package cli

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/gridaxis/pkg/buildinfo"
	"github.com/matzehuels/gridaxis/pkg/cache"
	"github.com/matzehuels/gridaxis/pkg/pipeline"
)

// appName names the cache directory.
const appName = "gridaxis"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a CLI logging to w at level.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "gridaxis lays out rows and columns under size constraints",
		Long:         `gridaxis distributes space along one axis among adjacent elements, honoring per-element and per-range minimum, maximum and preferred sizes.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}
	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.solveCommand())
	root.AddCommand(c.boundsCommand())
	root.AddCommand(c.graphCommand())
	root.AddCommand(c.previewCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())
	return root
}

// newRunner creates a pipeline runner backed by the local file cache.
func (c *CLI) newRunner(noCache bool) (*pipeline.Runner, error) {
	ch, err := newCache(noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(ch, nil, c.Logger), nil
}

func newCache(noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// cacheDir returns $XDG_CACHE_HOME/gridaxis, falling back to ~/.cache/gridaxis.
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
