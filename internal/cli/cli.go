// Package cli implements the airfoil2d command-line interface.
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/cassyr/airfoil2d/pkg/buildinfo"
	"github.com/cassyr/airfoil2d/pkg/cache"
	"github.com/cassyr/airfoil2d/pkg/database"
	"github.com/cassyr/airfoil2d/pkg/geometry"
	"github.com/cassyr/airfoil2d/pkg/naca"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "airfoil2d"

	// defaultCacheTTL is how long fetched database pages stay valid.
	defaultCacheTTL = 30 * 24 * time.Hour
)

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
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:          appName,
		Short:        "Airfoil2d generates 2D CFD meshes around airfoils",
		Long:         `Airfoil2d fetches or generates airfoil profiles and builds 2D meshes around them: unstructured triangulations with boundary-layer extrusion, or five-block structured C-grids.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				c.SetLogLevel(log.DebugLevel)
			}
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	// Register all subcommands
	root.AddCommand(c.meshCommand())
	root.AddCommand(c.listCommand())
	root.AddCommand(c.topologyCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Database Client Factory
// =============================================================================

// newDatabaseClient creates a UIUC database client backed by the file cache,
// or by no cache at all when noCache is set.
func newDatabaseClient(noCache bool) *database.Client {
	return database.NewClient(newCache(noCache), defaultCacheTTL)
}

func newCache(noCache bool) cache.Cache {
	if noCache {
		return cache.NewNullCache()
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache()
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		return cache.NewNullCache()
	}
	return fc
}

// resolveProfile returns the raw profile points for a name: generated for
// 4-digit codes, fetched from the database otherwise.
func resolveProfile(ctx context.Context, client *database.Client, name string, points int, refresh bool) ([]geometry.Point, error) {
	if naca.IsCode(name) {
		if points <= 0 {
			points = naca.DefaultPoints
		}
		return naca.Generate(name, points)
	}
	return client.FetchPoints(ctx, name, refresh)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/airfoil2d/).
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
