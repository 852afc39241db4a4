package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

func TestEmbeddedDefaultsMatchBuiltins(t *testing.T) {
	cfg, err := Parse(DefaultYAML())
	if err != nil {
		t.Fatalf("Parse(default yaml) failed: %v", err)
	}
	if !reflect.DeepEqual(cfg, DefaultQuestConfig()) {
		t.Errorf("embedded quest.yaml and DefaultQuestConfig() disagree:\n%+v\n%+v", cfg, DefaultQuestConfig())
	}
}

func TestDefaultConfigIsValid(t *testing.T) {
	if err := Validate(DefaultQuestConfig()); err != nil {
		t.Fatalf("Validate(default) = %v", err)
	}
}

func TestParseOverlaysDefaults(t *testing.T) {
	cfg, err := Parse([]byte(`
rules:
  trap_damage: 35
  freeze_on_win: true
timers:
  patrol: 750ms
`))
	if err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}

	if cfg.Rules.TrapDamage != 35 {
		t.Errorf("TrapDamage = %d, expected 35", cfg.Rules.TrapDamage)
	}
	if !cfg.Rules.FreezeOnWin {
		t.Error("FreezeOnWin should be true")
	}
	if cfg.Timers.Patrol != 750*time.Millisecond {
		t.Errorf("Patrol = %v, expected 750ms", cfg.Timers.Patrol)
	}
	// Untouched keys keep built-in values
	if cfg.Rules.TreasureReward != 100 {
		t.Errorf("TreasureReward = %d, expected default 100", cfg.Rules.TreasureReward)
	}
	if !cfg.Rules.MageSpendOnMiss {
		t.Error("MageSpendOnMiss should keep default true")
	}
	if len(cfg.World.Treasures) != 3 {
		t.Errorf("expected default 3 treasures, got %d", len(cfg.World.Treasures))
	}
}

func TestParseEmptyDocumentKeepsDefaults(t *testing.T) {
	cfg, err := Parse([]byte("# nothing here\n"))
	if err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}
	if !reflect.DeepEqual(cfg, DefaultQuestConfig()) {
		t.Error("empty document should yield the defaults")
	}
}

func TestParseRejectsInvalidDocuments(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{name: "unknown top-level key", yaml: "difficulty: hard\n"},
		{name: "bad obstacle kind", yaml: "world:\n  obstacles:\n    - { x: 1, y: 2, kind: lava }\n"},
		{name: "numeric duration", yaml: "timers:\n  patrol: 2\n"},
		{name: "unknown class", yaml: "classes:\n  - { id: bard, health: 10 }\n"},
		{name: "animal bad dir", yaml: "world:\n  animals:\n    - { kind: cat, x: 0, y: 0, axis: x, dir: 2 }\n"},
		{name: "treasure on obstacle", yaml: "world:\n  treasures:\n    - { x: 3, y: 3 }\n"},
		{name: "duplicate treasure", yaml: "world:\n  treasures:\n    - { x: 1, y: 2 }\n    - { x: 1, y: 2 }\n"},
		{name: "start out of bounds", yaml: "world:\n  start: { x: 20, y: 1 }\n"},
		{name: "missing mage", yaml: "classes:\n  - { id: warrior, health: 150 }\n  - { id: rogue, health: 100 }\n"},
		{name: "bad dash mode", yaml: "abilities:\n  rogue: { mode: sideways }\n"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.yaml))
			if err == nil {
				t.Fatal("Parse() should fail")
			}
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("error should wrap ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestLoadCustomPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	if err := os.WriteFile(path, []byte("rules:\n  treasure_reward: 250\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Rules.TreasureReward != 250 {
		t.Errorf("TreasureReward = %d, expected 250", cfg.Rules.TreasureReward)
	}
}

func TestLoadCustomPathErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Load() of a missing custom file should fail")
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("world: [unterminated"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("Load() of malformed yaml should fail")
	}
}

func TestClassLookup(t *testing.T) {
	cfg := DefaultQuestConfig()

	mage, ok := cfg.Class("mage")
	if !ok {
		t.Fatal("mage should exist")
	}
	if mage.Health != 80 || mage.Mana != 150 || mage.ManaCap != 150 {
		t.Errorf("mage stats = %+v", mage)
	}
	if _, ok := cfg.Class("bard"); ok {
		t.Error("bard should not exist")
	}
}

func TestFingerprint(t *testing.T) {
	a := DefaultQuestConfig().Fingerprint()
	if a == "" {
		t.Fatal("empty fingerprint")
	}
	if b := DefaultQuestConfig().Fingerprint(); a != b {
		t.Errorf("fingerprint not stable: %s vs %s", a, b)
	}

	cfg := DefaultQuestConfig()
	cfg.World.Treasures = append(cfg.World.Treasures, Cell{X: 0, Y: 14})
	if cfg.Fingerprint() == a {
		t.Error("moving the world should change the fingerprint")
	}

	cfg = DefaultQuestConfig()
	cfg.Abilities.Rogue.Mode = DashFacing
	if cfg.Fingerprint() == a {
		t.Error("changing a rule should change the fingerprint")
	}
}
