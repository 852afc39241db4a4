package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/realmquest/internal/adventure"
	"github.com/vovakirdan/realmquest/internal/platform/tui"
	"github.com/vovakirdan/realmquest/internal/storage"
)

var (
	flagScoresClass  string
	flagScoresLimit  int
	flagScoresRecent bool
	flagScoresBrowse bool
	flagScoresClear  bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show the hall of fame",
	Long: `Display the best runs, optionally for one class, followed by per class totals.

Examples:
  realmquest scores
  realmquest scores --class mage
  realmquest scores --recent --limit 20
  realmquest scores --browse`,
	Args: cobra.NoArgs,
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().StringVar(&flagScoresClass, "class", "", "Only runs of this class")
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of runs to show")
	scoresCmd.Flags().BoolVar(&flagScoresRecent, "recent", false, "Show the most recent runs instead of the best")
	scoresCmd.Flags().BoolVar(&flagScoresBrowse, "browse", false, "Browse the scoreboard interactively")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete every recorded run")
}

func runScores(_ *cobra.Command, _ []string) error {
	if flagScoresClass != "" {
		if _, err := adventure.ParseClassID(flagScoresClass); err != nil {
			return err
		}
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	if flagScoresClear {
		if err := store.ClearRuns(adventure.GameID); err != nil {
			return err
		}
		fmt.Println("All runs deleted.")
		return nil
	}

	if flagScoresBrowse {
		cfg := terminalConfig()
		quietLogs()
		_, err := tui.RunScoreboard(store, cfg.ScreenW, cfg.ScreenH)
		return err
	}

	var runs []storage.RunRecord
	title := "Hall of Fame"
	switch {
	case flagScoresRecent:
		title = "Recent Runs"
		runs, err = store.RecentRuns(adventure.GameID, flagScoresLimit)
	default:
		runs, err = store.TopRuns(adventure.GameID, flagScoresClass, flagScoresLimit)
	}
	if err != nil {
		return err
	}
	if flagScoresClass != "" && !flagScoresRecent {
		title += " - " + flagScoresClass
	}

	fmt.Println(title)
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Play 'realmquest play' to enter the hall!")
		return nil
	}

	// Print header
	fmt.Printf("  %-4s  %-16s  %-8s  %6s  %5s  %-9s  %8s  %s\n",
		"Rank", "Hero", "Class", "Score", "Loot", "Outcome", "Time", "Date")
	fmt.Printf("  %-4s  %-16s  %-8s  %6s  %5s  %-9s  %8s  %s\n",
		"----", "----", "-----", "-----", "----", "-------", "----", "----")

	for i, r := range runs {
		fmt.Printf("  %-4d  %-16s  %-8s  %6d  %5s  %-9s  %8s  %s\n",
			i+1,
			r.PlayerName,
			r.ClassID,
			r.Score,
			fmt.Sprintf("%d/%d", r.Treasures, r.TotalTreasures),
			r.Outcome,
			r.Duration.Round(time.Second),
			r.CreatedAt.Format("2006-01-02 15:04"),
		)
	}

	stats, err := store.Stats(adventure.GameID)
	if err != nil {
		return err
	}
	fmt.Println()
	for _, st := range stats {
		fmt.Printf("  %-8s  runs %-4d  wins %-4d  deaths %-4d  best %d\n",
			st.ClassID, st.Runs, st.Wins, st.Deaths, st.Best)
	}
	return nil
}
