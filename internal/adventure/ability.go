package adventure

import (
	"github.com/vovakirdan/realmquest/internal/config"
	"github.com/vovakirdan/realmquest/internal/core"
)

// abilityFunc resolves one class's special ability against the active run.
// The cooldown gate has already passed when it is called.
type abilityFunc func(s *Session, run *RunState) Result

var abilities = map[ClassID]abilityFunc{
	ClassWarrior: warriorRally,
	ClassMage:    mageBlink,
	ClassRogue:   rogueDash,
}

// warriorRally heals, adds a score bonus and costs nothing.
func warriorRally(s *Session, run *RunState) Result {
	rules := s.cfg.Abilities.Warrior
	run.Health = core.Min(run.MaxHealth, run.Health+rules.Heal)
	run.Score += rules.ScoreBonus
	s.setCooldown(rules.Cooldown)
	s.emit(AbilityUsedEvent{Class: ClassWarrior, Hit: true, Cooldown: rules.Cooldown})
	return applied()
}

// mageBlink teleports onto the nearest uncollected treasure within range.
func mageBlink(s *Session, run *RunState) Result {
	rules := s.cfg.Abilities.Mage
	if run.Mana < rules.ManaCost {
		return rejected(RejectNoMana)
	}

	target, ok := s.nearestTreasure(run, rules.Radius)
	if !ok && !s.cfg.Rules.MageSpendOnMiss {
		return rejected(RejectNoTarget)
	}

	if ok {
		run.Position = target.Pos
		s.pickup(target.Pos)
	}
	run.Mana -= rules.ManaCost
	s.setCooldown(rules.Cooldown)
	s.emit(AbilityUsedEvent{Class: ClassMage, Hit: ok, Cooldown: rules.Cooldown})
	return applied()
}

// nearestTreasure finds the closest uncollected treasure by Chebyshev
// distance. Ties keep the first treasure in world order.
func (s *Session) nearestTreasure(run *RunState, radius int) (Treasure, bool) {
	var (
		best  Treasure
		found bool
		dist  int
	)
	for _, t := range s.world.Treasures {
		if run.HasCollected(t.Key) {
			continue
		}
		d := run.Position.Chebyshev(t.Pos)
		if d > radius {
			continue
		}
		if !found || d < dist {
			best, dist, found = t, d, true
		}
	}
	return best, found
}

// rogueDash jumps Distance cells on both axes, or along the facing direction
// in facing mode, clamped to the grid. Only the landing cell is checked;
// traps along or under the path are skipped.
func rogueDash(s *Session, run *RunState) Result {
	rules := s.cfg.Abilities.Rogue
	step := core.Pt(1, 1)
	if rules.Mode == config.DashFacing {
		step = run.Facing
	}
	dest := s.world.Clamp(run.Position.Add(step.Scale(rules.Distance)))

	hit := dest != run.Position && !s.world.IsObstacle(dest)
	if hit {
		run.Position = dest
		s.pickup(dest)
	}
	s.setCooldown(rules.Cooldown)
	s.emit(AbilityUsedEvent{Class: ClassRogue, Hit: hit, Cooldown: rules.Cooldown})
	return applied()
}
