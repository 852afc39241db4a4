package adventure

import (
	"testing"

	"github.com/vovakirdan/realmquest/internal/config"
	"github.com/vovakirdan/realmquest/internal/core"
)

func TestNewWorldDefaults(t *testing.T) {
	w := NewWorld(config.DefaultQuestConfig().World)

	if w.Size != 15 {
		t.Errorf("Size = %d, want 15", w.Size)
	}
	if w.Start != core.Pt(1, 1) {
		t.Errorf("Start = %v, want (1,1)", w.Start)
	}
	if len(w.Obstacles) != 13 {
		t.Errorf("len(Obstacles) = %d, want 13", len(w.Obstacles))
	}
	if len(w.Traps) != 4 {
		t.Errorf("len(Traps) = %d, want 4", len(w.Traps))
	}
	if len(w.Treasures) != 3 {
		t.Errorf("len(Treasures) = %d, want 3", len(w.Treasures))
	}

	if o, ok := w.ObstacleAt(core.Pt(3, 3)); !ok || o.Kind != ObstacleRock {
		t.Errorf("ObstacleAt(3,3) = %v, %v; want rock", o, ok)
	}
	if o, ok := w.ObstacleAt(core.Pt(8, 5)); !ok || o.Kind != ObstacleTree {
		t.Errorf("ObstacleAt(8,5) = %v, %v; want tree", o, ok)
	}
	if !w.IsTrap(core.Pt(6, 1)) {
		t.Error("expected trap at (6,1)")
	}
	if w.IsTrap(core.Pt(1, 1)) {
		t.Error("unexpected trap at start")
	}

	tr, ok := w.FindTreasureAt(core.Pt(13, 2))
	if !ok || tr.Key != "13-2" {
		t.Errorf("FindTreasureAt(13,2) = %v, %v; want key 13-2", tr, ok)
	}
	if _, ok := w.FindTreasureAt(core.Pt(0, 0)); ok {
		t.Error("unexpected treasure at (0,0)")
	}
}

func TestTreasureKey(t *testing.T) {
	if got := TreasureKey(core.Pt(12, 3)); got != "12-3" {
		t.Errorf("TreasureKey = %q, want 12-3", got)
	}
}

func TestClamp(t *testing.T) {
	w := &World{Size: 15}

	tests := []struct {
		in, want core.Point
	}{
		{core.Pt(0, 0), core.Pt(0, 0)},
		{core.Pt(-1, 5), core.Pt(0, 5)},
		{core.Pt(15, 5), core.Pt(14, 5)},
		{core.Pt(3, -4), core.Pt(3, 0)},
		{core.Pt(20, 20), core.Pt(14, 14)},
	}
	for _, tt := range tests {
		if got := w.Clamp(tt.in); got != tt.want {
			t.Errorf("Clamp(%v) = %v, want %v", tt.in, got, tt.want)
		}
		if !w.InBounds(w.Clamp(tt.in)) {
			t.Errorf("Clamp(%v) is out of bounds", tt.in)
		}
	}
}

func TestStepAnimal(t *testing.T) {
	w := &World{
		Size:      5,
		Obstacles: []Obstacle{{Pos: core.Pt(2, 2), Kind: ObstacleRock}},
	}

	tests := []struct {
		name string
		in   Animal
		want Animal
	}{
		{
			name: "moves along x",
			in:   Animal{Pos: core.Pt(1, 0), Axis: AxisX, Dir: 1},
			want: Animal{Pos: core.Pt(2, 0), Axis: AxisX, Dir: 1},
		},
		{
			name: "moves along y",
			in:   Animal{Pos: core.Pt(0, 3), Axis: AxisY, Dir: -1},
			want: Animal{Pos: core.Pt(0, 2), Axis: AxisY, Dir: -1},
		},
		{
			name: "reverses at edge",
			in:   Animal{Pos: core.Pt(4, 0), Axis: AxisX, Dir: 1},
			want: Animal{Pos: core.Pt(4, 0), Axis: AxisX, Dir: -1},
		},
		{
			name: "reverses at obstacle",
			in:   Animal{Pos: core.Pt(2, 1), Axis: AxisY, Dir: 1},
			want: Animal{Pos: core.Pt(2, 1), Axis: AxisY, Dir: -1},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := w.stepAnimal(tt.in); got != tt.want {
				t.Errorf("stepAnimal = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestClassProfiles(t *testing.T) {
	cfg := config.DefaultQuestConfig()
	profiles := ClassProfiles(cfg)
	if len(profiles) != 3 {
		t.Fatalf("len(ClassProfiles) = %d, want 3", len(profiles))
	}

	want := []struct {
		id     ClassID
		health int
		mana   int
		icon   rune
	}{
		{ClassWarrior, 150, 50, 'W'},
		{ClassMage, 80, 150, 'M'},
		{ClassRogue, 100, 50, 'R'},
	}
	for i, w := range want {
		p := profiles[i]
		if p.ID != w.id || p.BaseHealth != w.health || p.BaseMana != w.mana || p.Icon != w.icon {
			t.Errorf("profile %d = %+v, want %+v", i, p, w)
		}
	}

	if _, err := LookupClass(cfg, "bard"); err == nil {
		t.Error("expected error for unknown class")
	}
	if p, err := LookupClass(cfg, "mage"); err != nil || p.Color != core.ColorPurple {
		t.Errorf("LookupClass(mage) = %+v, %v", p, err)
	}
}
