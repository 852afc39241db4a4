package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/realmquest/internal/adventure"
	"github.com/vovakirdan/realmquest/internal/core"
	"github.com/vovakirdan/realmquest/internal/platform/tui"
)

var flagPlain bool

var worldCmd = &cobra.Command{
	Use:   "world",
	Short: "Show the quest map",
	Long: `Renders the authored map of the loaded quest configuration.

Legend:
  @  start    ♣  tree    ▲  rock
  ^  trap     ◆  treasure`,
	Args: cobra.NoArgs,
	Run:  runWorld,
}

func init() {
	worldCmd.Flags().BoolVar(&flagPlain, "plain", false, "Print without colors")
}

func runWorld(_ *cobra.Command, _ []string) {
	w := adventure.NewWorld(quest.World)
	width, height := w.RenderSize()
	screen := core.NewScreen(width, height)
	adventure.RenderWorld(screen, w, 0, 0, nil)

	if flagPlain {
		fmt.Println(screen.String())
	} else {
		fmt.Println(tui.RenderScreen(screen))
	}
	fmt.Printf("%dx%d  |  %d treasures  |  %d traps  |  %d obstacles  |  %d animals\n",
		w.Size, w.Size, len(w.Treasures), len(w.Traps), len(w.Obstacles), len(w.Animals))
}
