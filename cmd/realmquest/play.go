package main

import (
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/realmquest/internal/adventure"
	"github.com/vovakirdan/realmquest/internal/config"
	"github.com/vovakirdan/realmquest/internal/core"
	"github.com/vovakirdan/realmquest/internal/platform/tui"
	"github.com/vovakirdan/realmquest/internal/storage"
)

var (
	flagName   string
	flagRace   string
	flagClass  string
	flagRecord string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play Realm Quest",
	Long: `Start Realm Quest in your terminal.

Without flags the main menu opens: create a hero, quick play or browse
the hall of fame. With --class the game starts right away.

Controls:
  Arrows/WASD  - Move
  Space/E      - Class ability
  1/2/3        - Pick warrior/mage/rogue (quick play)
  P            - Pause
  R            - Reset the run
  Esc/B        - Back to menu (while paused or between runs)
  Ctrl+S       - Save a screenshot to ~/.realmquest/screenshots
  Q/Ctrl+C     - Quit

Examples:
  realmquest play
  realmquest play --class mage
  realmquest play --name Lydia --race nord --class warrior
  realmquest play --class rogue --record run.jsonl.zst`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagName, "name", "", "Hero name (requires --class)")
	playCmd.Flags().StringVar(&flagRace, "race", "", "Hero race: "+strings.Join(adventure.Races, ", "))
	playCmd.Flags().StringVar(&flagClass, "class", "", "Hero class: warrior, mage, rogue")
	playCmd.Flags().StringVar(&flagRecord, "record", "", "Record the session to this file")
}

// buildProfile turns the hero flags into a profile. It returns nil when no
// class is given, leaving the choice to the player.
func buildProfile(cfg config.QuestConfig, name, race, class string) (*adventure.Profile, error) {
	if class == "" {
		if name != "" || race != "" {
			return nil, fmt.Errorf("--name and --race need --class")
		}
		return nil, nil
	}

	cp, err := adventure.LookupClass(cfg, class)
	if err != nil {
		return nil, err
	}
	if race == "" {
		race = adventure.Races[0]
	}
	if !slices.Contains(adventure.Races, race) {
		return nil, fmt.Errorf("unknown race %q (choose %s)", race, strings.Join(adventure.Races, ", "))
	}
	if name == "" {
		name = cp.Name
	}
	return &adventure.Profile{Name: name, Race: race, Class: cp}, nil
}

// terminalConfig returns the runtime config for the current terminal.
func terminalConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

func runPlay(_ *cobra.Command, _ []string) error {
	profile, err := buildProfile(quest, flagName, flagRace, flagClass)
	if err != nil {
		return err
	}

	// Open run storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open runs database, runs will not be saved", "error", err)
		// Continue without storage - game still works
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	username := os.Getenv("USER")
	quietLogs()

	return tui.Run(tui.Options{
		Store:      store,
		Config:     terminalConfig(),
		Logger:     logger,
		Username:   username,
		Profile:    profile,
		RecordPath: flagRecord,
	})
}
