package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/quest.yaml
var defaultQuestYAML []byte

// DefaultQuestConfig returns the built-in configuration. It matches
// defaults/quest.yaml and is the base every loaded file is layered onto.
func DefaultQuestConfig() QuestConfig {
	return QuestConfig{
		World: WorldConfig{
			Size:  15,
			Start: Cell{X: 1, Y: 1},
			Obstacles: []ObstacleConfig{
				{X: 3, Y: 3, Kind: "rock"}, {X: 4, Y: 3, Kind: "rock"}, {X: 5, Y: 3, Kind: "rock"},
				{X: 8, Y: 5, Kind: "tree"}, {X: 9, Y: 5, Kind: "tree"}, {X: 10, Y: 5, Kind: "tree"},
				{X: 2, Y: 8, Kind: "tree"}, {X: 3, Y: 8, Kind: "tree"},
				{X: 11, Y: 9, Kind: "rock"}, {X: 12, Y: 9, Kind: "rock"}, {X: 13, Y: 9, Kind: "rock"},
				{X: 6, Y: 11, Kind: "tree"}, {X: 7, Y: 11, Kind: "tree"},
			},
			Traps: []Cell{
				{X: 6, Y: 1}, {X: 4, Y: 6}, {X: 10, Y: 7}, {X: 9, Y: 12},
			},
			Treasures: []Cell{
				{X: 13, Y: 2}, {X: 1, Y: 12}, {X: 12, Y: 13},
			},
			Animals: []AnimalConfig{
				{Kind: "deer", X: 5, Y: 7, Axis: "x", Dir: 1},
				{Kind: "wolf", X: 12, Y: 4, Axis: "y", Dir: 1},
				{Kind: "boar", X: 2, Y: 13, Axis: "x", Dir: 1},
			},
		},
		Classes: []ClassConfig{
			{ID: "warrior", Name: "Warrior", Health: 150, Mana: 50, ManaCap: 50, Icon: "W", Color: "orange"},
			{ID: "mage", Name: "Mage", Health: 80, Mana: 150, ManaCap: 150, Icon: "M", Color: "purple"},
			{ID: "rogue", Name: "Rogue", Health: 100, Mana: 50, ManaCap: 50, Icon: "R", Color: "green"},
		},
		Abilities: AbilityConfig{
			Warrior: WarriorAbility{Heal: 30, ScoreBonus: 50, Cooldown: 5},
			Mage:    MageAbility{ManaCost: 30, Radius: 3, Cooldown: 3},
			Rogue:   RogueAbility{Distance: 2, Cooldown: 4, Mode: DashDiagonal},
		},
		Timers: TimerConfig{
			CooldownTick: time.Second,
			ManaRegen:    time.Second,
			Patrol:       1500 * time.Millisecond,
			TrapWarning:  2 * time.Second,
			DeathReset:   500 * time.Millisecond,
		},
		Rules: RulesConfig{
			TreasureReward:  100,
			TrapDamage:      20,
			ManaRegenAmount: 5,
			FreezeOnWin:     false,
			MageSpendOnMiss: true,
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultQuestYAML
}
