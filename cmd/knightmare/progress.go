package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/knightmare/internal/storage"
)

var (
	flagRecent int
	flagReset  bool
)

var progressCmd = &cobra.Command{
	Use:   "progress",
	Short: "Show best step counts and recent runs",
	Long: `Display the save data of a profile: per level clears and best step
count, the step total and the most recent completed runs.

Examples:
  knightmare progress
  knightmare progress --profile alice --recent 5
  knightmare progress --reset`,
	Args: cobra.NoArgs,
	RunE: runProgress,
}

func init() {
	progressCmd.Flags().IntVar(&flagRecent, "recent", 10, "Number of recent runs to show")
	progressCmd.Flags().BoolVar(&flagReset, "reset", false, "Delete all progress of the profile")
}

func runProgress(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	store, err := storage.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("error opening save database: %w", err)
	}
	defer store.Close()

	if flagReset {
		if err := store.Reset(cfg.Profile); err != nil {
			return err
		}
		fmt.Printf("Progress of %s deleted.\n", cfg.Profile)
		return nil
	}

	stats, err := store.Stats(cfg.Profile)
	if err != nil {
		return err
	}
	if len(stats) == 0 {
		fmt.Printf("No levels completed by %s yet.\n", cfg.Profile)
		return nil
	}

	names := make([]string, 0, len(stats))
	for name := range stats {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Printf("Progress - %s\n", cfg.Profile)
	fmt.Println()
	fmt.Printf("  %-20s  %6s  %5s  %s\n", "Level", "Clears", "Best", "Last played")
	fmt.Printf("  %-20s  %6s  %5s  %s\n", "-----", "------", "----", "-----------")
	for _, name := range names {
		st := stats[name]
		fmt.Printf("  %-20s  %6d  %5d  %s\n", st.LevelName, st.Clears, st.BestSteps, st.LastPlayed.Format("Jan 02 15:04"))
	}

	total, err := store.TotalSteps(cfg.Profile)
	if err != nil {
		return err
	}
	fmt.Printf("\n  Total of best step counts: %d\n", total)

	runs, err := store.RecentRuns(cfg.Profile, flagRecent)
	if err != nil {
		return err
	}
	fmt.Println()
	fmt.Println("Recent runs:")
	for _, r := range runs {
		fmt.Printf("  %s  %-20s  %d steps\n", r.CreatedAt.Format("Jan 02 15:04"), r.LevelName, r.Steps)
	}
	return nil
}
