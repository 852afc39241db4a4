package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/realmquest/internal/adventure"
	"github.com/vovakirdan/realmquest/internal/core"
)

func updateSession(m SessionModel, msgs ...tea.Msg) (SessionModel, tea.Cmd) {
	var cmd tea.Cmd
	for _, msg := range msgs {
		var next tea.Model
		next, cmd = m.Update(msg)
		m = next.(SessionModel)
	}
	return m, cmd
}

func (m SessionModel) tick() TickMsg {
	return m.gameModel.tick()
}

func TestSessionQuickPlay(t *testing.T) {
	m := NewSessionModel(nil, testRuntime(), "tester", nil)

	m, _ = updateSession(m, keyDown, keyEnter)
	if m.screen != screenGame || m.gameModel == nil {
		t.Fatalf("screen = %v, want game", m.screen)
	}

	m, _ = updateSession(m, m.tick(), runeKey('2'), m.tick())
	g, ok := m.gameModel.game.(*adventure.Game)
	if !ok {
		t.Fatalf("game is %T", m.gameModel.game)
	}
	snap := g.Snapshot()
	if snap.Status != adventure.StatusPlaying || snap.Class != adventure.ClassMage {
		t.Fatalf("snapshot = %+v, want mage run", snap)
	}

	m, _ = updateSession(m, keyEsc)
	if m.screen != screenGame {
		t.Fatal("esc during a run left the game")
	}
	m, _ = updateSession(m, runeKey('p'), m.tick(), keyEsc)
	if m.screen != screenMenu || m.gameModel != nil {
		t.Errorf("screen = %v, want menu after leaving a paused game", m.screen)
	}
}

func TestSessionNewHero(t *testing.T) {
	m := NewSessionModel(nil, testRuntime(), "dragonborn", nil)

	m, _ = updateSession(m, keyEnter)
	if m.screen != screenCreator {
		t.Fatalf("screen = %v, want creator", m.screen)
	}
	if got := m.creator.name.Value(); got != "dragonborn" {
		t.Errorf("suggested name = %q, want the username", got)
	}

	// Name, race (argonian), class (mage).
	m, _ = updateSession(m, keyEnter, keyDown, keyDown, keyEnter, keyDown, keyEnter)
	if m.screen != screenGame {
		t.Fatalf("screen = %v, want game", m.screen)
	}
	g := m.gameModel.game.(*adventure.Game)
	p, ok := g.Profile()
	if !ok || p.Name != "dragonborn" || p.Race != "argonian" || p.Class.ID != adventure.ClassMage {
		t.Errorf("profile = %+v", p)
	}
	if g.Snapshot().Status != adventure.StatusPlaying {
		t.Error("preset profile should start the run at once")
	}
}

func TestSessionCreatorCancel(t *testing.T) {
	m := NewSessionModel(nil, testRuntime(), "tester", nil)
	m, _ = updateSession(m, keyEnter, keyEsc)
	if m.screen != screenMenu {
		t.Errorf("screen = %v, want menu", m.screen)
	}
}

func TestSessionScores(t *testing.T) {
	store := openTestStore(t)
	if _, err := store.SaveRun(adventure.GameID, core.RunSummary{
		PlayerName: "Lydia", ClassID: "warrior", Score: 120, Outcome: core.OutcomeWon,
	}); err != nil {
		t.Fatal(err)
	}

	m := NewSessionModel(store, testRuntime(), "tester", nil)
	if m.menu.best != 120 {
		t.Errorf("menu best = %d, want 120", m.menu.best)
	}

	m, _ = updateSession(m, tea.KeyMsg{Type: tea.KeyTab})
	if m.screen != screenScores {
		t.Fatalf("screen = %v, want scores", m.screen)
	}
	if len(m.scores.runs) != 1 {
		t.Errorf("scoreboard runs = %d, want 1", len(m.scores.runs))
	}

	m, cmd := updateSession(m, keyEsc)
	if m.screen != screenMenu {
		t.Errorf("screen = %v, want menu", m.screen)
	}
	if cmd != nil {
		t.Error("leaving the scoreboard must not quit the session")
	}
}

func TestSessionQuit(t *testing.T) {
	m := NewSessionModel(nil, testRuntime(), "tester", nil)
	m, cmd := updateSession(m, runeKey('q'))
	if !m.quitting || cmd == nil {
		t.Error("q in the menu should quit")
	}
	if m.View() != "" {
		t.Error("View() after quit should be empty")
	}
}
