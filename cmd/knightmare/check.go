package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/knightmare/internal/config"
	"github.com/vovakirdan/knightmare/internal/level"
	"github.com/vovakirdan/knightmare/internal/levels"
)

var errCheckFailed = errors.New("level check failed")

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate level files",
	Long: `Decode every level file and report problems: files that do not load,
unknown tokens, missing players or enemies, stacked cells and levels that
change when saved and loaded again.

Checks the built-in pack unless --levels is given. Exits non-zero when a
level has an error.

Examples:
  knightmare check
  knightmare check --levels ./my-levels`,
	Args: cobra.NoArgs,
	RunE: runCheck,
}

func runCheck(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	// Token warnings from the codec are part of the report.
	logger := newLogger(cfg, "check")

	fsys := levels.Embedded()
	source := "built-in pack"
	if cfg.LevelsDir != "" {
		source = cfg.LevelsDir
		fsys = os.DirFS(config.ExpandHome(cfg.LevelsDir))
	}

	loader := levels.NewLoader(fsys, level.NewCodec(level.NewFactory(), logger), logger)
	files, err := loader.Files()
	if err != nil {
		return err
	}
	fmt.Printf("Checking %d files in %s\n", len(files), source)

	failed := 0
	var loaded []levels.Level
	for _, name := range files {
		b, loadErr := loader.LoadFile(name)
		if loadErr != nil {
			fmt.Printf("  %s: error: %v\n", name, loadErr)
			failed++
			continue
		}
		loaded = append(loaded, levels.Level{File: name, Board: b})
	}

	pack := levels.NewPack(loaded)
	if pack.Len() < len(loaded) {
		fmt.Printf("  warning: %d levels share a name with an earlier level and are skipped\n", len(loaded)-pack.Len())
	}
	for _, p := range levels.CheckPack(pack) {
		fmt.Printf("  %s\n", p)
		if p.Fatal {
			failed++
		}
	}

	if failed > 0 {
		fmt.Printf("%d errors\n", failed)
		return errCheckFailed
	}
	fmt.Printf("%d levels OK\n", pack.Len())
	return nil
}
