package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/knightmare/internal/game"
	"github.com/vovakirdan/knightmare/internal/storage"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the levels and your progress",
	Long:  `Shows every level of the pack in play order with its enemy count and your best step count.`,
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func runList(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger := newLogger(cfg, "knightmare")

	pack, err := loadPack(cfg, logger)
	if err != nil {
		return fmt.Errorf("cannot load levels: %w", err)
	}

	var progress game.ProgressStore
	if store, openErr := storage.Open(cfg.DBPath); openErr != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open save database: %v\n", openErr)
	} else {
		defer store.Close()
		progress = store
	}

	levels, err := game.NewCampaign(pack, progress, cfg.Profile).Progress()
	if err != nil {
		return err
	}

	// Calculate column widths
	maxNameLen := 5 // "Level" header
	for _, l := range levels {
		if len(l.Name) > maxNameLen {
			maxNameLen = len(l.Name)
		}
	}

	fmt.Printf("Levels (profile %s):\n\n", cfg.Profile)
	fmt.Printf("  %3s  %-*s  %7s  %s\n", "#", maxNameLen, "Level", "Enemies", "Best")
	fmt.Printf("  %3s  %-*s  %7s  %s\n", "-", maxNameLen, "-----", "-------", "----")
	for _, l := range levels {
		best := "-"
		if l.Completed {
			best = fmt.Sprintf("%d", l.BestSteps)
		}
		fmt.Printf("  %3d  %-*s  %7d  %s\n", l.Index+1, maxNameLen, l.Name, l.Enemies, best)
	}

	fmt.Println()
	fmt.Println("Run 'knightmare play' to play.")
	return nil
}
