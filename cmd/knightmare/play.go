package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/knightmare/internal/config"
	"github.com/vovakirdan/knightmare/internal/core"
	"github.com/vovakirdan/knightmare/internal/game"
	"github.com/vovakirdan/knightmare/internal/platform/tui"
	"github.com/vovakirdan/knightmare/internal/sound"
	"github.com/vovakirdan/knightmare/internal/storage"
)

var (
	flagMute    bool
	flagNoAnim  bool
	flagClassic bool
	flagLogFile string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Pick a level and play it",
	Long: `Open the level list and play.

Controls:
  Arrows/WASD  - Move
  Space        - Wait a turn
  Z            - Undo
  R            - Reset level
  Enter        - Next level (after a win)
  C            - Toggle color-blind palette
  Esc          - Back to the level list
  Q/Ctrl+C     - Quit

Examples:
  knightmare play
  knightmare play --profile alice
  knightmare play --levels ./my-levels --mute`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagMute, "mute", false, "Disable the terminal bell")
	playCmd.Flags().BoolVar(&flagNoAnim, "no-animation", false, "Apply moves instantly")
	playCmd.Flags().BoolVar(&flagClassic, "classic-colors", false, "Start with the original palette instead of the color-blind one")
	playCmd.Flags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file (default: ~/.knightmare/knightmare.log with --debug)")
}

func runPlay(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// The terminal belongs to the UI, so logs go to a file or nowhere.
	logOut, closeLog, err := playLogWriter(cfg)
	if err != nil {
		return err
	}
	defer closeLog()
	logger := newLoggerTo(logOut, cfg, "knightmare")

	pack, err := loadPack(cfg, logger)
	if err != nil {
		return fmt.Errorf("cannot load levels: %w", err)
	}

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	rc := core.RuntimeConfig{
		ScreenW:    width,
		ScreenH:    height,
		StepTime:   cfg.StepDuration(),
		Colorblind: cfg.Colorblind && !flagClassic,
		Profile:    cfg.Profile,
	}
	if flagNoAnim {
		rc.StepTime = 0
	}

	var progress game.ProgressStore
	store, err := storage.Open(cfg.DBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open save database: %v\n", err)
		// Continue without storage - progress lasts for this run only
	} else {
		defer store.Close()
		progress = store
	}

	campaign := game.NewCampaign(pack, progress, rc.Profile)
	player := sound.New(cfg.Sound.Muted || flagMute, os.Stdout)

	if err := tui.Run(campaign, player, logger, rc); err != nil {
		return fmt.Errorf("error running game: %w", err)
	}
	return nil
}

// playLogWriter opens the log destination for interactive play.
func playLogWriter(cfg config.Config) (io.Writer, func(), error) {
	path := flagLogFile
	if path == "" && cfg.Debug.Enabled {
		path = filepath.Join(filepath.Dir(config.ExpandHome(cfg.DBPath)), "knightmare.log")
	}
	if path == "" {
		return io.Discard, func() {}, nil
	}

	path = config.ExpandHome(path)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("cannot create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot open log file: %w", err)
	}
	//nolint:errcheck // Best-effort close on exit
	return f, func() { f.Close() }, nil
}
