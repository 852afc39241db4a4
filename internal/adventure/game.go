package adventure

import (
	"fmt"
	"sync"
	"time"

	"github.com/vovakirdan/realmquest/internal/config"
	"github.com/vovakirdan/realmquest/internal/core"
	"github.com/vovakirdan/realmquest/internal/registry"
)

// GameID is the registry id of the adventure.
const GameID = "adventure"

// Process-wide defaults applied to games created through the registry.
// The CLI sets them once before any game starts.
var (
	defaultsMu     sync.RWMutex
	defaultQuest   = config.DefaultQuestConfig()
	defaultOptions []Option
)

// SetQuestConfig sets the quest configuration for new games.
func SetQuestConfig(cfg config.QuestConfig) {
	defaultsMu.Lock()
	defer defaultsMu.Unlock()
	defaultQuest = cfg
}

// SetSessionOptions sets the session options (logger, tracer) for new games.
func SetSessionOptions(opts ...Option) {
	defaultsMu.Lock()
	defer defaultsMu.Unlock()
	defaultOptions = append([]Option(nil), opts...)
}

// DefaultClasses returns the class table of the process-wide configuration.
func DefaultClasses() []ClassProfile {
	defaultsMu.RLock()
	defer defaultsMu.RUnlock()
	return ClassProfiles(defaultQuest)
}

func init() {
	registry.Register(GameID, func() registry.Game {
		return New()
	})
}

// messageSeconds is how long an event message stays in the HUD.
const messageSeconds = 2

// Game adapts a Session to the fixed-tick registry.Game interface.
type Game struct {
	quest   config.QuestConfig
	opts    []Option
	sess    *Session
	profile *Profile // Preset character; nil means pick a class in-game

	tickDur time.Duration
	tick    uint64
	paused  bool

	screenW  int
	screenH  int
	tooSmall bool

	message      string
	messageColor core.Color
	messageTicks int

	pending *core.RunSummary // Run ended by Reset, reported by the next Step
}

// New creates a game using the process-wide quest configuration.
func New() *Game {
	defaultsMu.RLock()
	defer defaultsMu.RUnlock()
	return NewWithConfig(defaultQuest, defaultOptions...)
}

// NewWithConfig creates a game with an explicit configuration.
func NewWithConfig(cfg config.QuestConfig, opts ...Option) *Game {
	return &Game{
		quest: cfg,
		opts:  append([]Option(nil), opts...),
	}
}

// SetProfile presets the character. Reset then starts a run immediately.
func (g *Game) SetProfile(p Profile) {
	g.profile = &p
}

// Profile returns the preset character, if any.
func (g *Game) Profile() (Profile, bool) {
	if g.profile == nil {
		return Profile{}, false
	}
	return *g.profile, true
}

// Quest returns the configuration the game was created with.
func (g *Game) Quest() config.QuestConfig {
	return g.quest
}

// Classes returns the playable classes in selection order.
func (g *Game) Classes() []ClassProfile {
	return ClassProfiles(g.quest)
}

// Resize updates the screen size without touching the run.
func (g *Game) Resize(w, h int) {
	g.screenW = w
	g.screenH = h
	if g.sess != nil {
		g.checkScreenSize()
	}
}

// End abandons the current run, if any, and returns its summary.
// Pending summaries not yet reported by Step are returned too.
func (g *Game) End() *core.RunSummary {
	if g.sess == nil {
		return nil
	}
	g.sess.Reset()
	ended := g.collectEvents()
	if ended == nil {
		ended = g.pending
	}
	g.pending = nil
	g.paused = false
	return ended
}

// Session exposes the underlying session.
func (g *Game) Session() *Session {
	return g.sess
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return GameID
}

// Title returns the display name.
func (g *Game) Title() string {
	return "Realm Quest"
}

// Reset ends any current run and, with a preset profile, starts a new one.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	if g.sess == nil {
		g.sess = NewSession(g.quest, g.opts...)
	} else {
		g.sess.Reset()
		if ended := g.collectEvents(); ended != nil {
			g.pending = ended
		}
	}

	g.tickDur = cfg.TickDuration()
	g.tick = 0
	g.paused = false
	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH
	g.checkScreenSize()
	g.clearMessage()

	if g.profile != nil {
		g.startRun(*g.profile)
	}
}

func (g *Game) checkScreenSize() {
	minW, minH := layoutSize(g.sess.World().Size)
	g.tooSmall = g.screenW < minW || g.screenH < minH
}

// Step applies the frame's actions in order, then advances the clock one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++

	for _, a := range in.Actions {
		g.apply(a)
	}

	if !g.paused && !g.tooSmall {
		g.sess.Advance(g.tickDur)
	}
	ended := g.collectEvents()
	if ended == nil {
		ended = g.pending
	}
	g.pending = nil

	if g.messageTicks > 0 {
		g.messageTicks--
		if g.messageTicks == 0 {
			g.message = ""
		}
	}

	return core.StepResult{State: g.State(), Ended: ended}
}

func (g *Game) apply(a core.Action) {
	if a == core.ActionPause {
		if g.sess.Snapshot().Playing() {
			g.paused = !g.paused
		}
		return
	}
	if a == core.ActionRestart {
		g.restart()
		return
	}
	if g.paused || g.tooSmall {
		return
	}

	switch a {
	case core.ActionUp:
		g.report(g.sess.Move(North))
	case core.ActionDown:
		g.report(g.sess.Move(South))
	case core.ActionLeft:
		g.report(g.sess.Move(West))
	case core.ActionRight:
		g.report(g.sess.Move(East))
	case core.ActionSpecial:
		g.report(g.sess.ActivateSpecial())
	case core.ActionClass1, core.ActionClass2, core.ActionClass3:
		g.pickClass(int(a - core.ActionClass1))
	}
}

// pickClass starts a run with the n-th class when no run is active.
// A preset profile keeps its name and race.
func (g *Game) pickClass(n int) {
	if g.sess.Status() != StatusNotStarted || n < 0 || n >= len(ClassOrder) {
		return
	}
	cp, ok := g.sess.Class(ClassOrder[n])
	if !ok {
		return
	}
	p := Profile{Name: cp.Name, Class: cp}
	if g.profile != nil {
		p.Name = g.profile.Name
		p.Race = g.profile.Race
	}
	g.startRun(p)
}

// restart resets the run. With a preset profile a new run starts at once,
// otherwise the class selection screen is shown.
func (g *Game) restart() {
	g.paused = false
	g.sess.Reset()
	if g.profile != nil {
		g.startRun(*g.profile)
	}
}

func (g *Game) startRun(p Profile) {
	if err := g.sess.Start(p); err != nil {
		g.setMessage(err.Error(), core.ColorRed)
	}
}

// report surfaces the reason of a rejected input worth telling the player.
func (g *Game) report(res Result) {
	switch res.Reason {
	case RejectCooldown, RejectNoMana, RejectNoTarget:
		g.setMessage(capitalize(res.Reason.String()), core.ColorGray)
	}
}

// collectEvents turns drained events into HUD messages and returns the
// summary of a run that ended, if any.
func (g *Game) collectEvents() *core.RunSummary {
	var ended *core.RunSummary
	for _, e := range g.sess.Events() {
		switch ev := e.(type) {
		case RunStartedEvent:
			g.setMessage("Find all treasures!", core.ColorCyan)
		case TreasureCollectedEvent:
			g.setMessage(fmt.Sprintf("Treasure found! +%d", g.quest.Rules.TreasureReward), core.ColorBrightYellow)
		case TrapTriggeredEvent:
			g.setMessage(fmt.Sprintf("Trap! -%d HP", ev.Damage), core.ColorBrightRed)
		case AbilityUsedEvent:
			g.setMessage(abilityMessage(ev), core.ColorBrightMagenta)
		case WonEvent:
			g.setMessage("All treasures collected!", core.ColorBrightGreen)
		case DiedEvent:
			g.setMessage("You died", core.ColorRed)
		case RunEndedEvent:
			summary := ev.Summary
			ended = &summary
		}
	}
	return ended
}

func abilityMessage(ev AbilityUsedEvent) string {
	switch ev.Class {
	case ClassWarrior:
		return "Battle cry!"
	case ClassMage:
		if ev.Hit {
			return "Teleport!"
		}
		return "Teleport fizzles"
	case ClassRogue:
		if ev.Hit {
			return "Dash!"
		}
		return "Dash blocked"
	}
	return ""
}

func (g *Game) setMessage(msg string, c core.Color) {
	g.message = msg
	g.messageColor = c
	rate := 1
	if g.tickDur > 0 {
		rate = int(time.Second / g.tickDur)
	}
	g.messageTicks = messageSeconds * rate
}

func (g *Game) clearMessage() {
	g.message = ""
	g.messageTicks = 0
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	snap := g.sess.Snapshot()
	return core.GameState{
		Score:    snap.Score,
		GameOver: snap.Status == StatusDead,
		Paused:   g.paused || g.tooSmall,
		Playing:  snap.Playing(),
	}
}

// Snapshot returns the session snapshot.
func (g *Game) Snapshot() Snapshot {
	return g.sess.Snapshot()
}

// Controls returns the control hints for the game.
func (g *Game) Controls() string {
	return "Arrows/WASD: Move | Space: Ability | 1-3: Class | P: Pause | R: Reset | Q: Quit"
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	if r[0] >= 'a' && r[0] <= 'z' {
		r[0] -= 'a' - 'A'
	}
	return string(r)
}
