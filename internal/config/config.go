// Package config provides YAML-based quest configuration loading for realmquest:
// the authored world, the class table, ability balance and timer intervals.
package config

import "time"

// QuestConfig contains everything the adventure simulation needs to run.
type QuestConfig struct {
	World     WorldConfig   `yaml:"world"`
	Classes   []ClassConfig `yaml:"classes"`
	Abilities AbilityConfig `yaml:"abilities"`
	Timers    TimerConfig   `yaml:"timers"`
	Rules     RulesConfig   `yaml:"rules"`
}

// Cell is a grid coordinate in configuration files.
type Cell struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
}

// WorldConfig defines the static, authored map.
type WorldConfig struct {
	Size      int              `yaml:"size"` // Grid is Size x Size
	Start     Cell             `yaml:"start"`
	Obstacles []ObstacleConfig `yaml:"obstacles"`
	Traps     []Cell           `yaml:"traps"`
	Treasures []Cell           `yaml:"treasures"`
	Animals   []AnimalConfig   `yaml:"animals"`
}

// ObstacleConfig is an impassable cell.
type ObstacleConfig struct {
	X    int    `yaml:"x"`
	Y    int    `yaml:"y"`
	Kind string `yaml:"kind"` // "tree" or "rock"
}

// AnimalConfig is a patrolling decoration.
type AnimalConfig struct {
	Kind string `yaml:"kind"`
	X    int    `yaml:"x"`
	Y    int    `yaml:"y"`
	Axis string `yaml:"axis"` // "x" or "y"
	Dir  int    `yaml:"dir"`  // +1 or -1
}

// ClassConfig defines a playable class.
type ClassConfig struct {
	ID      string `yaml:"id"`
	Name    string `yaml:"name"`
	Health  int    `yaml:"health"`
	Mana    int    `yaml:"mana"`
	ManaCap int    `yaml:"mana_cap"`
	Icon    string `yaml:"icon"`  // Single glyph drawn for the player
	Color   string `yaml:"color"` // Color name, see core.ParseColor
}

// AbilityConfig holds the per-class special ability constants.
type AbilityConfig struct {
	Warrior WarriorAbility `yaml:"warrior"`
	Mage    MageAbility    `yaml:"mage"`
	Rogue   RogueAbility   `yaml:"rogue"`
}

// WarriorAbility is the warrior's battle cry: heal and bonus score.
type WarriorAbility struct {
	Heal       int `yaml:"heal"`
	ScoreBonus int `yaml:"score_bonus"`
	Cooldown   int `yaml:"cooldown"` // Seconds
}

// MageAbility is the mage's treasure teleport.
type MageAbility struct {
	ManaCost int `yaml:"mana_cost"`
	Radius   int `yaml:"radius"` // Chebyshev distance
	Cooldown int `yaml:"cooldown"`
}

// Rogue dash modes.
const (
	DashDiagonal = "diagonal" // Distance cells on each axis
	DashFacing   = "facing"   // Distance cells along the last move
)

// RogueAbility is the rogue's forward dash.
type RogueAbility struct {
	Distance int    `yaml:"distance"`
	Cooldown int    `yaml:"cooldown"`
	Mode     string `yaml:"mode"`
}

// Heading describes where the dash goes, for help texts.
func (r RogueAbility) Heading() string {
	if r.Mode == DashFacing {
		return "ahead"
	}
	return "diagonally"
}

// TimerConfig defines the intervals of the timed effects.
type TimerConfig struct {
	CooldownTick time.Duration `yaml:"cooldown_tick"`
	ManaRegen    time.Duration `yaml:"mana_regen"`
	Patrol       time.Duration `yaml:"patrol"`
	TrapWarning  time.Duration `yaml:"trap_warning"`
	DeathReset   time.Duration `yaml:"death_reset"`
}

// RulesConfig holds scoring and damage constants plus behavior switches.
type RulesConfig struct {
	TreasureReward  int  `yaml:"treasure_reward"`
	TrapDamage      int  `yaml:"trap_damage"`
	ManaRegenAmount int  `yaml:"mana_regen_amount"`
	FreezeOnWin     bool `yaml:"freeze_on_win"`      // Ignore input once every treasure is collected
	MageSpendOnMiss bool `yaml:"mage_spend_on_miss"` // Spend mana and cooldown when no treasure is in range
}

// Class returns the class with the given id.
func (c QuestConfig) Class(id string) (ClassConfig, bool) {
	for _, cl := range c.Classes {
		if cl.ID == id {
			return cl, true
		}
	}
	return ClassConfig{}, false
}
