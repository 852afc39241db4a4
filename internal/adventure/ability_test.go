package adventure

import (
	"testing"
	"time"

	"github.com/vovakirdan/realmquest/internal/config"
	"github.com/vovakirdan/realmquest/internal/core"
)

func TestWarriorAbility(t *testing.T) {
	cfg := testQuest()
	cfg.Rules.TrapDamage = 50
	s := newTestSession(t, cfg)
	startAs(t, s, ClassWarrior)

	moves(t, s, South)
	if got := s.Snapshot().Health; got != 100 {
		t.Fatalf("Health = %d, want 100", got)
	}

	if res := s.ActivateSpecial(); !res.Applied {
		t.Fatalf("ActivateSpecial rejected: %v", res.Reason)
	}
	snap := s.Snapshot()
	if snap.Health != 130 || snap.Score != 50 || snap.Cooldown != 5 {
		t.Errorf("after ability: health=%d score=%d cooldown=%d, want 130/50/5", snap.Health, snap.Score, snap.Cooldown)
	}

	if res := s.ActivateSpecial(); res.Applied || res.Reason != RejectCooldown {
		t.Errorf("second activation = %+v, want cooldown", res)
	}
	if got := s.Snapshot(); got.Health != 130 || got.Score != 50 {
		t.Error("rejected activation changed state")
	}
}

func TestWarriorHealCapped(t *testing.T) {
	s := newTestSession(t, testQuest())
	startAs(t, s, ClassWarrior)

	s.ActivateSpecial()
	if got := s.Snapshot().Health; got != 150 {
		t.Errorf("Health = %d, want capped at 150", got)
	}
}

func TestCooldownCountdown(t *testing.T) {
	s := newTestSession(t, testQuest())
	startAs(t, s, ClassWarrior)
	s.ActivateSpecial()

	for want := 4; want >= 0; want-- {
		s.Advance(time.Second)
		if got := s.Snapshot().Cooldown; got != want {
			t.Fatalf("Cooldown = %d, want %d", got, want)
		}
	}
	if s.sched.Active(TimerCooldown) {
		t.Error("cooldown ticker should disarm at zero")
	}

	s.Advance(5 * time.Second)
	if got := s.Snapshot().Cooldown; got != 0 {
		t.Errorf("Cooldown = %d, must not go negative", got)
	}
	if res := s.ActivateSpecial(); !res.Applied {
		t.Errorf("ability should be ready: %v", res.Reason)
	}
}

func TestMageTeleport(t *testing.T) {
	cfg := testQuest()
	cfg.World.Treasures = []config.Cell{{X: 4, Y: 4}, {X: 6, Y: 6}}
	for i := range cfg.Classes {
		if cfg.Classes[i].ID == "mage" {
			cfg.Classes[i].Mana = 30
		}
	}
	s := newTestSession(t, cfg)
	startAs(t, s, ClassMage)

	if res := s.ActivateSpecial(); !res.Applied {
		t.Fatalf("ActivateSpecial rejected: %v", res.Reason)
	}
	snap := s.Snapshot()
	if snap.Position != core.Pt(4, 4) {
		t.Errorf("Position = %v, want (4,4)", snap.Position)
	}
	if snap.Mana != 0 || snap.Cooldown != 3 {
		t.Errorf("mana=%d cooldown=%d, want 0/3", snap.Mana, snap.Cooldown)
	}
	if snap.Score != 100 || len(snap.Collected) != 1 {
		t.Errorf("teleport should pick up the treasure: score=%d collected=%v", snap.Score, snap.Collected)
	}

	ev, n := findEvent[AbilityUsedEvent](s.Events())
	if n != 1 || !ev.Hit || ev.Class != ClassMage {
		t.Errorf("AbilityUsedEvent = %+v (count %d)", ev, n)
	}

	s.Advance(time.Second)
	if got := s.Snapshot().Mana; got != 5 {
		t.Errorf("Mana = %d after 1s, want 5", got)
	}
}

func TestMageNotEnoughMana(t *testing.T) {
	cfg := testQuest()
	for i := range cfg.Classes {
		cfg.Classes[i].Mana = 29
	}
	s := newTestSession(t, cfg)
	startAs(t, s, ClassMage)

	before := s.Snapshot()
	if res := s.ActivateSpecial(); res.Applied || res.Reason != RejectNoMana {
		t.Errorf("ActivateSpecial = %+v, want no mana", res)
	}
	after := s.Snapshot()
	if after.Mana != before.Mana || after.Cooldown != 0 || after.Position != before.Position {
		t.Error("rejected ability changed state")
	}
}

func TestMageMiss(t *testing.T) {
	t.Run("spends by default", func(t *testing.T) {
		s := newTestSession(t, testQuest())
		startAs(t, s, ClassMage)

		if res := s.ActivateSpecial(); !res.Applied {
			t.Fatalf("ActivateSpecial rejected: %v", res.Reason)
		}
		snap := s.Snapshot()
		if snap.Position != core.Pt(1, 1) {
			t.Errorf("Position = %v, a miss must not move", snap.Position)
		}
		if snap.Mana != 120 || snap.Cooldown != 3 {
			t.Errorf("mana=%d cooldown=%d, want 120/3", snap.Mana, snap.Cooldown)
		}
		if ev, _ := findEvent[AbilityUsedEvent](s.Events()); ev.Hit {
			t.Error("miss reported as hit")
		}
	})

	t.Run("rejected when configured", func(t *testing.T) {
		cfg := testQuest()
		cfg.Rules.MageSpendOnMiss = false
		s := newTestSession(t, cfg)
		startAs(t, s, ClassMage)

		if res := s.ActivateSpecial(); res.Applied || res.Reason != RejectNoTarget {
			t.Errorf("ActivateSpecial = %+v, want no target", res)
		}
		snap := s.Snapshot()
		if snap.Mana != 150 || snap.Cooldown != 0 {
			t.Errorf("mana=%d cooldown=%d, want untouched", snap.Mana, snap.Cooldown)
		}
	})
}

func TestMageTargetSelection(t *testing.T) {
	tests := []struct {
		name      string
		treasures []config.Cell
		want      core.Point
	}{
		{
			name:      "nearest wins",
			treasures: []config.Cell{{X: 4, Y: 1}, {X: 2, Y: 2}},
			want:      core.Pt(2, 2),
		},
		{
			name:      "tie keeps authored order",
			treasures: []config.Cell{{X: 1, Y: 3}, {X: 3, Y: 3}, {X: 4, Y: 4}},
			want:      core.Pt(1, 3),
		},
		{
			name:      "diagonal counts as chebyshev",
			treasures: []config.Cell{{X: 4, Y: 4}, {X: 6, Y: 1}},
			want:      core.Pt(4, 4),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testQuest()
			cfg.World.Traps = nil
			cfg.World.Treasures = tt.treasures
			s := newTestSession(t, cfg)
			startAs(t, s, ClassMage)

			s.ActivateSpecial()
			if got := s.Snapshot().Position; got != tt.want {
				t.Errorf("Position = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMageSkipsCollected(t *testing.T) {
	cfg := testQuest()
	cfg.World.Traps = nil
	cfg.World.Treasures = []config.Cell{{X: 1, Y: 2}, {X: 1, Y: 4}, {X: 6, Y: 6}}
	s := newTestSession(t, cfg)
	startAs(t, s, ClassMage)

	moves(t, s, South, North)
	s.ActivateSpecial()
	if got := s.Snapshot().Position; got != core.Pt(1, 4) {
		t.Errorf("Position = %v, want (1,4)", got)
	}
}

func TestRogueDashBlocked(t *testing.T) {
	cfg := testQuest()
	cfg.World.Obstacles = []config.ObstacleConfig{{X: 3, Y: 3, Kind: "rock"}}
	s := newTestSession(t, cfg)
	startAs(t, s, ClassRogue)

	// Two cells on each axis from (1,1) lands on the rock at (3,3).
	if res := s.ActivateSpecial(); !res.Applied {
		t.Fatalf("ActivateSpecial rejected: %v", res.Reason)
	}
	snap := s.Snapshot()
	if snap.Position != core.Pt(1, 1) {
		t.Errorf("Position = %v, want unchanged", snap.Position)
	}
	if snap.Cooldown != 4 {
		t.Errorf("Cooldown = %d, want 4 even when blocked", snap.Cooldown)
	}
	if ev, _ := findEvent[AbilityUsedEvent](s.Events()); ev.Hit {
		t.Error("blocked dash reported as hit")
	}
}

func TestRogueDashDiagonal(t *testing.T) {
	s := newTestSession(t, testQuest())
	startAs(t, s, ClassRogue)

	// The rock at (3,1) sits east of the start and does not matter here.
	s.ActivateSpecial()
	if got := s.Snapshot().Position; got != core.Pt(3, 3) {
		t.Fatalf("Position = %v, want (3,3)", got)
	}

	s.Advance(4 * time.Second)
	moves(t, s, North)
	s.ActivateSpecial()
	if got := s.Snapshot().Position; got != core.Pt(5, 4) {
		t.Errorf("Position = %v, want (5,4) regardless of facing", got)
	}

	s.Advance(4 * time.Second)
	s.ActivateSpecial()
	if got := s.Snapshot().Position; got != core.Pt(6, 6) {
		t.Errorf("Position = %v, want clamped (6,6)", got)
	}
}

func TestRogueDashFacing(t *testing.T) {
	cfg := testQuest()
	cfg.Abilities.Rogue.Mode = config.DashFacing
	s := newTestSession(t, cfg)
	startAs(t, s, ClassRogue)

	// Facing east from (1,1): the rock at (3,1) is the landing cell.
	s.ActivateSpecial()
	if got := s.Snapshot().Position; got != core.Pt(1, 1) {
		t.Fatalf("Position = %v, want blocked at (1,1)", got)
	}

	s.Advance(4 * time.Second)
	moves(t, s, North)
	s.ActivateSpecial()
	if got := s.Snapshot().Position; got != core.Pt(1, 0) {
		t.Errorf("dash off the map: Position = %v, want clamped (1,0)", got)
	}

	s.Advance(4 * time.Second)
	moves(t, s, East)
	s.ActivateSpecial()
	if got := s.Snapshot().Position; got != core.Pt(4, 0) {
		t.Errorf("Position = %v, want (4,0)", got)
	}
}

func TestRogueDashSkipsTrapAndCollects(t *testing.T) {
	cfg := testQuest()
	cfg.World.Obstacles = nil
	cfg.World.Traps = []config.Cell{{X: 2, Y: 2}}
	cfg.World.Treasures = []config.Cell{{X: 3, Y: 3}, {X: 6, Y: 6}}
	s := newTestSession(t, cfg)
	startAs(t, s, ClassRogue)

	s.ActivateSpecial()
	snap := s.Snapshot()
	if snap.Position != core.Pt(3, 3) {
		t.Fatalf("Position = %v, want (3,3)", snap.Position)
	}
	if snap.Health != 100 || snap.TrapWarning {
		t.Errorf("dash over a trap dealt damage: health=%d", snap.Health)
	}
	if snap.Score != 100 || len(snap.Collected) != 1 {
		t.Errorf("dash should collect the landing treasure: score=%d", snap.Score)
	}
}

func TestEveryClassHasAbility(t *testing.T) {
	for _, id := range ClassOrder {
		if _, ok := abilities[id]; !ok {
			t.Errorf("no ability for %s", id)
		}
	}
}
