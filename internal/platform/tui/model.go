package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/realmquest/internal/adventure"
	"github.com/vovakirdan/realmquest/internal/core"
	"github.com/vovakirdan/realmquest/internal/registry"
	"github.com/vovakirdan/realmquest/internal/replay"
	"github.com/vovakirdan/realmquest/internal/storage"
)

// resizer is implemented by games that can follow the terminal size
// without restarting.
type resizer interface {
	Resize(w, h int)
}

// ender is implemented by games that can abandon a run on demand.
type ender interface {
	End() *core.RunSummary
}

// GameModel runs one game and persists every finished run.
type GameModel struct {
	id         int64
	game       registry.Game
	screen     *core.Screen
	store      *storage.Store
	recorder   *replay.Recorder
	logger     *log.Logger
	username   string
	config     core.RuntimeConfig
	inputFrame core.InputFrame
	gameState  core.GameState
	keyMapper  *KeyMapper
	lastRun    *core.RunSummary
	quitting   bool
	backToMenu bool
}

// NewGameModel creates a game model. store, recorder and logger may be nil.
func NewGameModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, logger *log.Logger) GameModel {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}

	return GameModel{
		id:         nextModelID(),
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:      store,
		logger:     logger,
		config:     cfg,
		inputFrame: core.NewInputFrame(),
		keyMapper:  NewKeyMapper(),
	}
}

// WithRecorder returns a copy of the model that records every tick.
func (m GameModel) WithRecorder(r *replay.Recorder) GameModel {
	m.recorder = r
	return m
}

// WithUsername tags log lines with the connected user.
func (m GameModel) WithUsername(name string) GameModel {
	m.username = name
	return m
}

// Init resets the game and starts the tick loop.
func (m GameModel) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tickCmd(m.config.TickRate, m.id)
}

// Update handles messages.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		return m.handleResize(msg)
	case TickMsg:
		// Ticks scheduled by an earlier game model are dropped.
		if msg.Model != m.id {
			return m, nil
		}
		return m.handleTick()
	}
	return m, nil
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	if m.keyMapper.MapKeyToFrame(msg, &m.inputFrame) {
		m.finish()
		m.quitting = true
		return m, tea.Quit
	}

	// Back to the menu only outside an active run or while paused.
	action, _ := m.keyMapper.MapKey(msg)
	if action == core.ActionBack && (!m.gameState.Playing || m.gameState.Paused) {
		m.finish()
		m.backToMenu = true
	}
	return m, nil
}

// handleResize follows the terminal size. Games that cannot resize in
// place are reset, as long as no run is in progress.
func (m GameModel) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)

	if r, ok := m.game.(resizer); ok {
		r.Resize(msg.Width, msg.Height)
	} else if !m.gameState.Playing {
		m.game.Reset(m.config)
	}
	return m, nil
}

// handleTick processes simulation ticks.
func (m GameModel) handleTick() (tea.Model, tea.Cmd) {
	if m.quitting || m.backToMenu {
		return m, nil
	}

	if m.recorder != nil {
		if err := m.recorder.Record(m.inputFrame); err != nil {
			m.logger.Warn("recording stopped", "error", err)
			m.recorder = nil
		}
	}

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State
	if result.Ended != nil {
		m.saveRun(*result.Ended)
	}

	m.inputFrame.Clear()
	return m, tickCmd(m.config.TickRate, m.id)
}

// finish abandons a run in progress so it is still recorded.
func (m *GameModel) finish() {
	e, ok := m.game.(ender)
	if !ok {
		return
	}
	if ended := e.End(); ended != nil {
		m.saveRun(*ended)
	}
}

// saveRun persists a finished run.
func (m *GameModel) saveRun(run core.RunSummary) {
	m.lastRun = &run
	m.logger.Info("run ended",
		"user", m.username,
		"player", run.PlayerName,
		"class", run.ClassID,
		"outcome", run.Outcome,
		"score", run.Score,
	)

	// Abandoned runs without progress are not worth a scoreboard row.
	if run.Outcome == core.OutcomeAbandoned && run.Score == 0 {
		return
	}
	if m.store == nil {
		return
	}
	if _, err := m.store.SaveRun(m.game.ID(), run); err != nil {
		m.logger.Error("cannot save run", "run", run.RunID, "error", err)
	}
}

// saveScreenshot saves the current screen to a file.
func (m *GameModel) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, ".realmquest", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))

	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

// View renders the game.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}
	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// LastRun returns the most recent finished run, if any.
func (m GameModel) LastRun() *core.RunSummary {
	return m.lastRun
}

// Options configures a local play session.
type Options struct {
	Store    *storage.Store
	Config   core.RuntimeConfig
	Logger   *log.Logger
	Username string

	// Profile skips the menus and starts straight into the game.
	Profile *adventure.Profile

	// RecordPath records the session for the replay command. Recording
	// skips the menus as well.
	RecordPath string
}

// newAdventure creates the adventure game with an optional preset character.
func newAdventure(profile *adventure.Profile) (registry.Game, error) {
	game, err := registry.Create(adventure.GameID)
	if err != nil {
		return nil, err
	}
	if profile != nil {
		if ag, ok := game.(*adventure.Game); ok {
			ag.SetProfile(*profile)
		}
	}
	return game, nil
}

// Run starts the local Bubble Tea program: the session menus, or the
// game directly when a profile or recording is requested.
func Run(opts Options) error {
	if opts.Profile == nil && opts.RecordPath == "" {
		model := NewSessionModel(opts.Store, opts.Config, opts.Username, opts.Logger)
		_, err := tea.NewProgram(model, tea.WithAltScreen()).Run()
		return err
	}

	game, err := newAdventure(opts.Profile)
	if err != nil {
		return err
	}
	cfg := opts.Config
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	model := NewGameModel(game, opts.Store, cfg, opts.Logger).WithUsername(opts.Username)

	if opts.RecordPath != "" {
		h := replay.Header{
			GameID:   game.ID(),
			TickRate: cfg.TickRate,
			ScreenW:  cfg.ScreenW,
			ScreenH:  cfg.ScreenH,
			Seed:     cfg.Seed,
		}
		if ag, ok := game.(*adventure.Game); ok {
			h.Quest = ag.Quest().Fingerprint()
		}
		if p := opts.Profile; p != nil {
			h.Player = p.Name
			h.Race = p.Race
			h.Class = string(p.Class.ID)
		}
		rec, err := replay.Create(opts.RecordPath, h)
		if err != nil {
			return err
		}
		defer func() {
			if cerr := rec.Close(); cerr != nil && opts.Logger != nil {
				opts.Logger.Error("cannot finish recording", "path", opts.RecordPath, "error", cerr)
			}
		}()
		model = model.WithRecorder(rec)
	}

	_, err = tea.NewProgram(model, tea.WithAltScreen()).Run()
	return err
}
