package adventure

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/vovakirdan/realmquest/internal/core"
)

const (
	cellWidth = 2 // Terminal columns per grid cell
	hudHeight = 3
	hudWidth  = 50
)

// Map glyphs.
const (
	glyphTree     = '♣'
	glyphRock     = '▲'
	glyphTrap     = '^'
	glyphTreasure = '◆'
	glyphFloor    = '·'
)

// layoutSize returns the smallest screen that fits a world of the given size.
func layoutSize(size int) (w, h int) {
	gridW := size*cellWidth + 1 + 2
	gridH := size + 2
	return core.Max(gridW, hudWidth), hudHeight + gridH + 1
}

// Render draws the game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.tooSmall {
		g.renderTooSmall(dst)
		return
	}

	snap := g.sess.Snapshot()
	if snap.Status == StatusNotStarted {
		g.renderClassSelect(dst)
		return
	}

	size := g.sess.World().Size
	gridW := size*cellWidth + 1 + 2
	gridX := (g.screenW - gridW) / 2
	gridY := hudHeight

	g.renderHUD(dst, snap)
	RenderWorld(dst, g.sess.World(), gridX, gridY, &snap)
	g.renderOverlays(dst, snap, gridX, gridY, gridW, size+2)
	dst.DrawTextCentered(gridY+size+2, g.Controls(), core.ColorGray)
}

func (g *Game) renderTooSmall(dst *core.Screen) {
	minW, minH := layoutSize(g.sess.World().Size)
	y := g.screenH / 2
	dst.DrawTextCentered(y, "Window too small", core.ColorDefault)
	dst.DrawTextCentered(y+1, fmt.Sprintf("Need at least %dx%d", minW, minH), core.ColorGray)
}

// renderHUD draws the character line, the stats line and the message line.
func (g *Game) renderHUD(dst *core.Screen, snap Snapshot) {
	cp, _ := g.sess.Class(snap.Class)

	who := fmt.Sprintf("%c %s the %s", cp.Icon, snap.Player, cp.Name)
	if snap.Race != "" {
		who = fmt.Sprintf("%c %s, %s %s", cp.Icon, snap.Player, capitalize(snap.Race), cp.Name)
	}
	dst.DrawTextCentered(0, who, cp.Color)

	stats := fmt.Sprintf("HP %d/%d", snap.Health, snap.MaxHealth)
	if snap.Class == ClassMage {
		stats += fmt.Sprintf("  MP %d/%d", snap.Mana, snap.ManaCap)
	}
	stats += fmt.Sprintf("  Score %d  %c %d/%d", snap.Score, glyphTreasure, len(snap.Collected), snap.TotalTreasures)
	if snap.Cooldown > 0 {
		stats += fmt.Sprintf("  CD %ds", snap.Cooldown)
	} else {
		stats += "  Ability ready"
	}
	dst.DrawTextCentered(1, stats, core.ColorWhite)

	switch {
	case snap.TrapWarning:
		dst.DrawTextCentered(2, "! You stepped on a trap !", core.ColorBrightRed)
	case g.message != "":
		dst.DrawTextCentered(2, g.message, g.messageColor)
	case snap.Won:
		dst.DrawTextCentered(2, fmt.Sprintf("Victory! Final score %d", snap.Score), core.ColorBrightGreen)
	}
}

// RenderSize returns the screen area RenderWorld draws, border included.
func (w *World) RenderSize() (width, height int) {
	return w.Size*cellWidth + 1 + 2, w.Size + 2
}

// RenderWorld draws the bordered map at (x, y). With a snapshot, the player,
// animals and collected treasures are drawn from it; without, the authored
// layout is shown as is.
func RenderWorld(dst *core.Screen, w *World, x, y int, snap *Snapshot) {
	width, height := w.RenderSize()
	dst.DrawBox(core.NewRect(x, y, width, height), core.ColorGray)

	at := func(p core.Point) (int, int) {
		return x + 2 + p.X*cellWidth, y + 1 + p.Y
	}

	for cy := range w.Size {
		for cx := range w.Size {
			px, py := at(core.Pt(cx, cy))
			dst.SetColor(px, py, glyphFloor, core.ColorGray)
		}
	}
	for _, o := range w.Obstacles {
		px, py := at(o.Pos)
		if o.Kind == ObstacleRock {
			dst.SetColor(px, py, glyphRock, core.ColorWhite)
		} else {
			dst.SetColor(px, py, glyphTree, core.ColorGreen)
		}
	}
	for _, t := range w.Traps {
		px, py := at(t)
		dst.SetColor(px, py, glyphTrap, core.ColorRed)
	}

	collected := make(map[string]bool)
	animals := w.Animals
	if snap != nil {
		for _, k := range snap.Collected {
			collected[k] = true
		}
		animals = snap.Animals
	}
	for _, t := range w.Treasures {
		if collected[t.Key] {
			continue
		}
		px, py := at(t.Pos)
		dst.SetColor(px, py, glyphTreasure, core.ColorBrightYellow)
	}
	for _, a := range animals {
		px, py := at(a.Pos)
		dst.SetColor(px, py, animalGlyph(a.Kind), core.ColorYellow)
	}

	if snap == nil {
		px, py := at(w.Start)
		dst.SetColor(px, py, '@', core.ColorBrightWhite)
		return
	}
	if snap.Status == StatusNotStarted {
		return
	}
	px, py := at(snap.Position)
	glyph, color := '@', core.ColorBrightWhite
	if snap.Status == StatusDead {
		glyph, color = 'x', core.ColorRed
	} else if snap.TrapWarning {
		color = core.ColorBrightRed
	}
	if snap.Icon != 0 && snap.Status != StatusDead {
		glyph = snap.Icon
	}
	dst.SetColor(px, py, glyph, color)
}

func animalGlyph(kind string) rune {
	for _, r := range kind {
		return unicode.ToLower(r)
	}
	return '?'
}

func (g *Game) renderOverlays(dst *core.Screen, snap Snapshot, x, y, w, h int) {
	centerX := x + w/2
	centerY := y + h/2

	switch {
	case g.paused:
		drawOverlay(dst, centerX, centerY, core.ColorCyan, "PAUSED", "Press P to resume")
	case snap.Status == StatusDead:
		drawOverlay(dst, centerX, centerY, core.ColorRed, "YOU DIED", fmt.Sprintf("Score: %d", snap.Score))
	case snap.Won && g.quest.Rules.FreezeOnWin:
		drawOverlay(dst, centerX, centerY, core.ColorBrightGreen,
			"VICTORY!", fmt.Sprintf("Score: %d", snap.Score), "Press R to play again")
	}
}

// drawOverlay draws a centered, boxed block of text.
func drawOverlay(dst *core.Screen, centerX, centerY int, c core.Color, lines ...string) {
	maxLen := 0
	for _, line := range lines {
		maxLen = core.Max(maxLen, len([]rune(line)))
	}

	boxW := maxLen + 4
	boxH := len(lines) + 2
	box := core.NewRect(centerX-boxW/2, centerY-boxH/2, boxW, boxH)

	dst.DrawRect(box, ' ')
	dst.DrawBox(box, c)
	for i, line := range lines {
		dst.DrawTextColor(centerX-len([]rune(line))/2, box.Y+1+i, line, c)
	}
}

// renderClassSelect shows the class cards and their ability summaries.
func (g *Game) renderClassSelect(dst *core.Screen) {
	title := "Choose your hero"
	if g.profile != nil {
		title = fmt.Sprintf("%s, choose your path", g.profile.Name)
	}
	dst.DrawTextCentered(1, strings.ToUpper(g.Title()), core.ColorBrightYellow)
	dst.DrawTextCentered(3, title, core.ColorWhite)

	y := 5
	for i, cp := range g.sess.Classes() {
		line := fmt.Sprintf("[%d] %c %-8s HP %3d  MP %3d", i+1, cp.Icon, cp.Name, cp.BaseHealth, cp.BaseMana)
		dst.DrawTextCentered(y, line, cp.Color)
		dst.DrawTextCentered(y+1, g.abilityHint(cp.ID), core.ColorGray)
		y += 3
	}

	hint := "Press 1-3 to start"
	if g.profile != nil {
		hint = "Press 1-3 or R to start"
	}
	dst.DrawTextCentered(y+1, hint, core.ColorCyan)
}

func (g *Game) abilityHint(id ClassID) string {
	ab := g.quest.Abilities
	switch id {
	case ClassWarrior:
		return fmt.Sprintf("Battle cry: +%d HP, +%d score, %ds cooldown", ab.Warrior.Heal, ab.Warrior.ScoreBonus, ab.Warrior.Cooldown)
	case ClassMage:
		return fmt.Sprintf("Teleport to treasure within %d: %d MP, %ds cooldown", ab.Mage.Radius, ab.Mage.ManaCost, ab.Mage.Cooldown)
	case ClassRogue:
		return fmt.Sprintf("Dash %d cells %s, %ds cooldown", ab.Rogue.Distance, ab.Rogue.Heading(), ab.Rogue.Cooldown)
	}
	return ""
}
