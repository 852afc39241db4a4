package adventure

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/vovakirdan/realmquest/internal/config"
	"github.com/vovakirdan/realmquest/internal/core"
)

// Session owns the world, at most one run and the timers acting on it.
// It is not safe for concurrent use: inputs, Advance and Snapshot must all
// come from the same goroutine (the Bubble Tea update loop in practice).
type Session struct {
	world   *World
	cfg     config.QuestConfig
	classes map[ClassID]ClassProfile
	sched   *Scheduler

	status Status
	run    *RunState
	gen    uint64 // Run identity; timers armed for an older run are ignored
	events []Event

	ctx    context.Context
	span   trace.Span
	tracer trace.Tracer
	logger *log.Logger
	newID  func() string
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the logger for run lifecycle messages.
func WithLogger(l *log.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithTracer records each run as a span on the given tracer.
func WithTracer(t trace.Tracer) Option {
	return func(s *Session) {
		if t != nil {
			s.tracer = t
		}
	}
}

// WithContext sets the parent context for run spans.
func WithContext(ctx context.Context) Option {
	return func(s *Session) {
		if ctx != nil {
			s.ctx = ctx
		}
	}
}

// WithRunIDs replaces the random run id generator, for reproducible replays.
func WithRunIDs(next func() string) Option {
	return func(s *Session) {
		if next != nil {
			s.newID = next
		}
	}
}

// NewSession creates a session in the NotStarted state.
func NewSession(cfg config.QuestConfig, opts ...Option) *Session {
	s := &Session{
		world:   NewWorld(cfg.World),
		cfg:     cfg,
		classes: make(map[ClassID]ClassProfile),
		sched:   NewScheduler(),
		ctx:     context.Background(),
		tracer:  noop.NewTracerProvider().Tracer("realmquest/adventure"),
		logger:  log.New(io.Discard),
		newID:   uuid.NewString,
	}
	for _, cp := range ClassProfiles(cfg) {
		s.classes[cp.ID] = cp
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// World returns the static world.
func (s *Session) World() *World {
	return s.world
}

// Status returns the lifecycle state.
func (s *Session) Status() Status {
	return s.status
}

// Classes returns the configured classes in ClassOrder.
func (s *Session) Classes() []ClassProfile {
	out := make([]ClassProfile, 0, len(s.classes))
	for _, id := range ClassOrder {
		if cp, ok := s.classes[id]; ok {
			out = append(out, cp)
		}
	}
	return out
}

// Class returns the configured profile of a class.
func (s *Session) Class(id ClassID) (ClassProfile, bool) {
	cp, ok := s.classes[id]
	return cp, ok
}

// Now returns the session's virtual clock.
func (s *Session) Now() time.Duration {
	return s.sched.Now()
}

// Start begins a new run for the given profile. A run already in progress is
// abandoned first, and every timer it armed is cancelled.
func (s *Session) Start(p Profile) error {
	class, ok := s.classes[p.Class.ID]
	if !ok {
		return fmt.Errorf("%w %q", ErrUnknownClass, p.Class.ID)
	}
	// Only the id is taken from the caller; stats come from the quest.
	p.Class = class
	if p.Name == "" {
		p.Name = p.Class.Name
	}

	if s.run != nil {
		s.endRun(s.outcome())
	}
	s.sched.CancelAll()
	s.gen++

	s.run = newRunState(s.newID(), p, s.world, s.sched.Now())
	s.status = StatusPlaying

	_, s.span = s.tracer.Start(s.ctx, "adventure.run",
		trace.WithAttributes(
			attribute.String("run.id", s.run.ID),
			attribute.String("run.class", string(p.Class.ID)),
			attribute.String("run.player", p.Name),
		),
	)

	s.every(TimerPatrol, s.cfg.Timers.Patrol, s.patrolTick)
	if p.Class.ID == ClassMage {
		s.every(TimerManaRegen, s.cfg.Timers.ManaRegen, s.regenTick)
	}

	s.emit(RunStartedEvent{RunID: s.run.ID, Class: p.Class.ID})
	s.logger.Info("run started", "run", s.run.ID, "class", p.Class.ID, "player", p.Name)
	return nil
}

// Reset tears down the current run and cancels every pending timer.
func (s *Session) Reset() {
	if s.run != nil {
		s.endRun(s.outcome())
	}
	s.sched.CancelAll()
}

// Advance moves the virtual clock forward, firing due timers.
func (s *Session) Advance(dt time.Duration) {
	s.sched.Advance(dt)
}

// Events drains the pending events.
func (s *Session) Events() []Event {
	out := s.events
	s.events = nil
	return out
}

// acceptsInput reports whether movement and abilities are processed.
// Winning is advisory unless rules.freeze_on_win is set.
func (s *Session) acceptsInput() bool {
	switch s.status {
	case StatusPlaying:
		return true
	case StatusWon:
		return !s.cfg.Rules.FreezeOnWin
	default:
		return false
	}
}

// Move steps the player one cell. Obstacles and the map edge reject the move
// with no side effects. A committed move resolves treasure, then traps.
func (s *Session) Move(dir core.Point) Result {
	if !s.acceptsInput() {
		return rejected(RejectNotPlaying)
	}
	if !isUnitDirection(dir) {
		return rejected(RejectInvalidDirection)
	}

	run := s.run
	next := s.world.Clamp(run.Position.Add(dir))
	if next == run.Position {
		return rejected(RejectEdge)
	}
	if s.world.IsObstacle(next) {
		s.logger.Debug("move blocked", "x", next.X, "y", next.Y)
		return rejected(RejectBlocked)
	}

	run.Position = next
	run.Facing = dir

	s.pickup(next)
	if s.world.IsTrap(next) {
		s.triggerTrap(next)
	}
	return applied()
}

// ActivateSpecial resolves the class ability of the current run.
func (s *Session) ActivateSpecial() Result {
	if !s.acceptsInput() {
		return rejected(RejectNotPlaying)
	}
	run := s.run
	ability, ok := abilities[run.Profile.Class.ID]
	if !ok {
		return rejected(RejectNoProfile)
	}
	if run.Cooldown > 0 {
		return rejected(RejectCooldown)
	}

	res := ability(s, run)
	if !res.Applied {
		s.logger.Debug("ability rejected", "class", run.Profile.Class.ID, "reason", res.Reason)
	}
	return res
}

// pickup collects an uncollected treasure at p. Returns true on a pickup.
func (s *Session) pickup(p core.Point) bool {
	run := s.run
	t, ok := s.world.FindTreasureAt(p)
	if !ok || run.HasCollected(t.Key) {
		return false
	}

	run.Collected[t.Key] = struct{}{}
	run.Score += s.cfg.Rules.TreasureReward
	s.emit(TreasureCollectedEvent{Key: t.Key, Pos: p, Score: run.Score})
	s.span.AddEvent("treasure", trace.WithAttributes(attribute.String("treasure.key", t.Key)))

	if !run.Won && len(run.Collected) == len(s.world.Treasures) {
		run.Won = true
		s.status = StatusWon
		s.emit(WonEvent{Score: run.Score})
		s.logger.Info("all treasures collected", "run", run.ID, "score", run.Score)
	}
	return true
}

func (s *Session) triggerTrap(p core.Point) {
	run := s.run
	dmg := s.cfg.Rules.TrapDamage
	run.Health = core.Max(0, run.Health-dmg)
	run.TrapWarn = true
	s.emit(TrapTriggeredEvent{Pos: p, Damage: dmg, Health: run.Health})
	s.span.AddEvent("trap", trace.WithAttributes(attribute.Int("run.health", run.Health)))

	// Re-arming replaces a pending expiry rather than stacking a second one.
	s.after(TimerTrapWarning, s.cfg.Timers.TrapWarning, func() {
		run.TrapWarn = false
		s.emit(TrapWarningClearedEvent{})
	})

	if run.Health == 0 {
		s.die()
	}
}

func (s *Session) die() {
	run := s.run
	s.status = StatusDead
	s.sched.CancelAll()
	run.TrapWarn = false

	s.emit(DiedEvent{Pos: run.Position, Score: run.Score})
	s.logger.Info("player died", "run", run.ID, "score", run.Score)

	s.after(TimerDeathReset, s.cfg.Timers.DeathReset, func() {
		s.endRun(core.OutcomeDead)
	})
}

// setCooldown starts the ability countdown and its one-second ticker.
func (s *Session) setCooldown(seconds int) {
	s.run.Cooldown = seconds
	if seconds <= 0 {
		s.sched.Cancel(TimerCooldown)
		return
	}
	run := s.run
	s.every(TimerCooldown, s.cfg.Timers.CooldownTick, func() {
		if run.Cooldown > 0 {
			run.Cooldown--
		}
		if run.Cooldown == 0 {
			s.sched.Cancel(TimerCooldown)
		}
	})
}

func (s *Session) regenTick() {
	run := s.run
	if run.Mana < run.ManaCap {
		run.Mana = core.Min(run.ManaCap, run.Mana+s.cfg.Rules.ManaRegenAmount)
	}
}

func (s *Session) patrolTick() {
	run := s.run
	for i, a := range run.Animals {
		run.Animals[i] = s.world.stepAnimal(a)
	}
}

// outcome classifies the current run for its summary.
func (s *Session) outcome() core.RunOutcome {
	switch {
	case s.status == StatusDead:
		return core.OutcomeDead
	case s.run != nil && s.run.Won:
		return core.OutcomeWon
	default:
		return core.OutcomeAbandoned
	}
}

// endRun tears the run down to NotStarted and reports its summary.
func (s *Session) endRun(outcome core.RunOutcome) {
	run := s.run
	if run == nil {
		return
	}

	summary := core.RunSummary{
		RunID:          run.ID,
		PlayerName:     run.Profile.Name,
		Race:           run.Profile.Race,
		ClassID:        string(run.Profile.Class.ID),
		Score:          run.Score,
		Treasures:      len(run.Collected),
		TotalTreasures: len(s.world.Treasures),
		Outcome:        outcome,
		Duration:       s.sched.Now() - run.StartedAt,
	}

	s.sched.CancelAll()
	s.gen++
	s.run = nil
	s.status = StatusNotStarted

	if s.span != nil {
		s.span.SetAttributes(
			attribute.String("run.outcome", string(outcome)),
			attribute.Int("run.score", summary.Score),
			attribute.Int("run.treasures", summary.Treasures),
		)
		s.span.End()
		s.span = nil
	}

	s.emit(RunEndedEvent{Summary: summary})
	s.logger.Info("run ended", "run", summary.RunID, "outcome", outcome, "score", summary.Score)
}

// after and every arm timers bound to the current run. A callback that fires
// after its run was replaced is dropped.
func (s *Session) after(kind TimerKind, d time.Duration, fn func()) {
	gen := s.gen
	s.sched.After(kind, d, func() {
		if gen == s.gen {
			fn()
		}
	})
}

func (s *Session) every(kind TimerKind, d time.Duration, fn func()) {
	gen := s.gen
	s.sched.Every(kind, d, func() {
		if gen == s.gen {
			fn()
		}
	})
}

func (s *Session) emit(e Event) {
	s.events = append(s.events, e)
}
