package tui

import (
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/realmquest/internal/adventure"
	"github.com/vovakirdan/realmquest/internal/core"
	"github.com/vovakirdan/realmquest/internal/storage"
)

type sessionScreen int

const (
	screenMenu sessionScreen = iota
	screenCreator
	screenGame
	screenScores
)

// SessionModel manages the full session flow:
// menu -> creator -> game -> menu, and menu -> scoreboard -> menu.
// It is the top-level model for local and SSH sessions alike.
type SessionModel struct {
	store    *storage.Store
	config   core.RuntimeConfig
	username string
	logger   *log.Logger

	screen    sessionScreen
	menu      MenuModel
	creator   CreatorModel
	gameModel *GameModel
	scores    ScoreboardModel
	quitting  bool
}

// NewSessionModel creates a new session model. store and logger may be nil.
func NewSessionModel(store *storage.Store, cfg core.RuntimeConfig, username string, logger *log.Logger) SessionModel {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return SessionModel{
		store:    store,
		config:   cfg,
		username: username,
		logger:   logger,
		menu:     NewMenuModel(store, cfg),
	}
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Handle window resize globally
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	switch m.screen {
	case screenCreator:
		return m.updateCreator(msg)
	case screenGame:
		return m.updateGame(msg)
	case screenScores:
		return m.updateScores(msg)
	}
	return m.updateMenu(msg)
}

// updateMenu handles updates when in menu mode.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}

	switch m.menu.Selected() {
	case ChoiceQuit:
		m.quitting = true
		return m, tea.Quit

	case ChoiceNewHero:
		m.creator = NewCreatorModel(adventure.DefaultClasses(), m.username, m.config.ScreenW, m.config.ScreenH)
		m.screen = screenCreator
		return m, m.creator.Init()

	case ChoiceQuickPlay:
		return m.startGame(nil)

	case ChoiceScores:
		m.scores = NewScoreboardModel(m.store, m.config.ScreenW, m.config.ScreenH)
		m.screen = screenScores
		return m, m.scores.Init()
	}

	return m, cmd
}

// updateCreator handles updates while the character is being created.
func (m SessionModel) updateCreator(msg tea.Msg) (tea.Model, tea.Cmd) {
	newCreator, cmd := m.creator.Update(msg)
	if creator, ok := newCreator.(CreatorModel); ok {
		m.creator = creator
	}

	switch {
	case m.creator.IsQuitting():
		m.quitting = true
		return m, tea.Quit
	case m.creator.Cancelled():
		return m.toMenu()
	case m.creator.Profile() != nil:
		return m.startGame(m.creator.Profile())
	}
	return m, cmd
}

// startGame creates the adventure, preset with the profile when given.
func (m SessionModel) startGame(profile *adventure.Profile) (tea.Model, tea.Cmd) {
	game, err := newAdventure(profile)
	if err != nil {
		m.logger.Error("cannot create game", "error", err)
		return m.toMenu()
	}

	gameModel := NewGameModel(game, m.store, m.config, m.logger).WithUsername(m.username)
	m.gameModel = &gameModel
	m.screen = screenGame
	m.logger.Debug("game started", "user", m.username)

	return m, m.gameModel.Init()
}

// updateGame handles updates when in game mode.
func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.gameModel.Update(msg)
	if gameModel, ok := newModel.(GameModel); ok {
		m.gameModel = &gameModel
	}

	if m.gameModel.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.gameModel.BackToMenu() {
		m.gameModel = nil
		return m.toMenu()
	}

	return m, cmd
}

// updateScores handles updates on the scoreboard. The scoreboard quits
// its own program when closed; inside a session that means the menu.
func (m SessionModel) updateScores(msg tea.Msg) (tea.Model, tea.Cmd) {
	newScores, cmd := m.scores.Update(msg)
	if scores, ok := newScores.(ScoreboardModel); ok {
		m.scores = scores
	}

	if m.scores.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.scores.IsGoingBack() {
		return m.toMenu()
	}
	return m, cmd
}

// toMenu returns to a fresh main menu.
func (m SessionModel) toMenu() (tea.Model, tea.Cmd) {
	m.screen = screenMenu
	m.menu = NewMenuModel(m.store, m.config)
	return m, m.menu.Init()
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.screen {
	case screenCreator:
		return m.creator.View()
	case screenGame:
		if m.gameModel != nil {
			return m.gameModel.View()
		}
	case screenScores:
		return m.scores.View()
	}
	return m.menu.View()
}
