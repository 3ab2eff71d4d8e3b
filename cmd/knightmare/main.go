// knightmare is a turn-based color puzzle played in the terminal.
//
// Usage:
//
//	knightmare play            - Pick a level and play it
//	knightmare list            - List the levels and your progress
//	knightmare progress        - Show best step counts and recent runs
//	knightmare serve           - Start SSH server for remote play
//	knightmare mcp             - Serve the game to an MCP client over stdio
//	knightmare check           - Validate level files
//	knightmare demo            - Print the demo board or a random board
//	knightmare config          - Print the effective configuration
//
// Global flags:
//
//	--config <path>   - Configuration file
//	--levels <dir>    - Directory of level files (default: built-in pack)
//	--db <path>       - Save database (default: ~/.knightmare/progress.db)
//	--profile <name>  - Save profile (default: local)
//	--debug           - Verbose logging
package main

import (
	"fmt"
	"io"
	"math/rand"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/knightmare/internal/config"
	"github.com/vovakirdan/knightmare/internal/level"
	"github.com/vovakirdan/knightmare/internal/levels"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

var (
	// Global flags
	flagConfig  string
	flagLevels  string
	flagDBPath  string
	flagProfile string
	flagDebug   bool
	flagFake    bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "knightmare",
	Short: "knightmare - a turn-based color puzzle for the terminal",
	Long: `knightmare is a grid puzzle about colors. Every turn you move one
cell and then every enemy moves. Crush all enemies to clear a level.

You pass through anything of your own color and can push boxes of other
colors. Potions change your color. Brown things block everyone.

Available commands:
  play      - Pick a level and play it
  list      - Show the levels and your progress
  progress  - Best step counts and recent runs
  serve     - Start SSH server for remote play
  mcp       - Serve the game to an MCP client over stdio
  check     - Validate level files
  demo      - Print a demo or random level as JSON
  config    - Print the effective configuration

Examples:
  knightmare play
  knightmare play --levels ./my-levels
  knightmare serve --ssh :2222
  knightmare check --levels ./my-levels`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to configuration YAML")
	rootCmd.PersistentFlags().StringVar(&flagLevels, "levels", "", "Directory of *.json level files (default: built-in pack)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to save database (default from config)")
	rootCmd.PersistentFlags().StringVar(&flagProfile, "profile", "", "Save profile name (default from config)")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&flagFake, "fake-levels", false, "Replace the level pack with random boards")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(progressCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(demoCmd)
	rootCmd.AddCommand(configCmd)
}

// loadConfig loads the configuration and applies the global flags over it.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}
	if flagLevels != "" {
		cfg.LevelsDir = flagLevels
	}
	if flagDBPath != "" {
		cfg.DBPath = flagDBPath
	}
	if flagProfile != "" {
		cfg.Profile = flagProfile
	}
	if flagDebug {
		cfg.Debug.Enabled = true
	}
	if flagFake {
		cfg.Debug.FakeLevels = true
	}
	return cfg, nil
}

// newLogger returns a stderr logger with the given prefix.
func newLogger(cfg config.Config, prefix string) *log.Logger {
	return newLoggerTo(os.Stderr, cfg, prefix)
}

func newLoggerTo(w io.Writer, cfg config.Config, prefix string) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
	if cfg.Debug.Enabled {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}

// loadPack returns the level pack selected by cfg.
func loadPack(cfg config.Config, logger *log.Logger) (*levels.Pack, error) {
	if cfg.Debug.FakeLevels {
		seed := cfg.Debug.Seed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		logger.Info("using random levels", "count", cfg.Debug.FakeLevelCount, "seed", seed)
		return levels.Fake(level.NewFactory(), rand.New(rand.NewSource(seed)), cfg.Debug.FakeLevelCount), nil
	}

	fsys := levels.Embedded()
	if cfg.LevelsDir != "" {
		fsys = os.DirFS(config.ExpandHome(cfg.LevelsDir))
	}
	codec := level.NewCodec(level.NewFactory(), logger)
	return levels.NewLoader(fsys, codec, logger).Load()
}
