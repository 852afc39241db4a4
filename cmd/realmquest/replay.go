package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/realmquest/internal/adventure"
	"github.com/vovakirdan/realmquest/internal/config"
	"github.com/vovakirdan/realmquest/internal/core"
	"github.com/vovakirdan/realmquest/internal/platform/tui"
	"github.com/vovakirdan/realmquest/internal/replay"
)

var flagReplayShow bool

var replayCmd = &cobra.Command{
	Use:   "replay <file>",
	Short: "Replay a recorded session",
	Long: `Feeds a recording made with 'play --record' through the simulation
and prints the final state along with every run that ended.

The quest configuration must match the one used while recording.

Examples:
  realmquest replay run.jsonl.zst
  realmquest replay run.jsonl.zst --show`,
	Args: cobra.ExactArgs(1),
	RunE: runReplay,
}

func init() {
	replayCmd.Flags().BoolVar(&flagReplayShow, "show", false, "Print the final map")
}

// newReplayGame builds the adventure the recording was made with.
func newReplayGame(cfg config.QuestConfig, h replay.Header) (*adventure.Game, error) {
	if h.GameID != adventure.GameID {
		return nil, fmt.Errorf("%w: recorded game %q", replay.ErrBadRecording, h.GameID)
	}
	if err := h.CheckQuest(cfg.Fingerprint()); err != nil {
		return nil, err
	}

	n := 0
	ids := func() string {
		n++
		return fmt.Sprintf("replay-%d", n)
	}
	game := adventure.NewWithConfig(cfg, adventure.WithLogger(logger), adventure.WithRunIDs(ids))

	if h.Class != "" {
		cp, err := adventure.LookupClass(cfg, h.Class)
		if err != nil {
			return nil, err
		}
		game.SetProfile(adventure.Profile{Name: h.Player, Race: h.Race, Class: cp})
	}
	return game, nil
}

func runReplay(_ *cobra.Command, args []string) error {
	rec, err := replay.Open(args[0])
	if err != nil {
		return err
	}

	game, err := newReplayGame(quest, rec.Header)
	if err != nil {
		return err
	}
	res := replay.Play(rec, game)

	h := rec.Header
	played := time.Duration(res.Ticks) * h.RuntimeConfig().TickDuration()
	fmt.Printf("Recording from %s: %d ticks at %d fps (%s)\n",
		h.RecordedAt.Local().Format("2006-01-02 15:04"), res.Ticks, h.TickRate, played.Round(time.Millisecond))
	if h.Class != "" {
		fmt.Printf("Hero: %s the %s %s\n", h.Player, h.Race, h.Class)
	}
	fmt.Println()

	snap := game.Snapshot()
	fmt.Printf("Final state: %s\n", snap.Status)
	if snap.Playing() {
		fmt.Printf("  position (%d,%d)  health %d/%d  mana %d/%d  score %d\n",
			snap.Position.X, snap.Position.Y, snap.Health, snap.MaxHealth, snap.Mana, snap.ManaCap, snap.Score)
		fmt.Printf("  treasures %d/%d  %s\n", len(snap.Collected), snap.TotalTreasures, strings.Join(snap.Collected, " "))
	}

	if len(res.Ended) > 0 {
		fmt.Println()
		fmt.Println("Runs ended:")
		for _, r := range res.Ended {
			printSummary(r)
		}
	}

	if flagReplayShow {
		w := game.Session().World()
		width, height := w.RenderSize()
		screen := core.NewScreen(width, height)
		adventure.RenderWorld(screen, w, 0, 0, &snap)
		fmt.Println()
		fmt.Println(tui.RenderScreen(screen))
	}
	return nil
}

func printSummary(r core.RunSummary) {
	fmt.Printf("  %-10s %-8s %-9s score %-5d loot %d/%d  %s\n",
		r.RunID, r.ClassID, r.Outcome, r.Score, r.Treasures, r.TotalTreasures, r.Duration.Round(time.Millisecond))
}
