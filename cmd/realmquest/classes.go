package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/realmquest/internal/adventure"
)

var classesCmd = &cobra.Command{
	Use:   "classes",
	Short: "List the playable classes",
	Long:  `Shows the class table of the loaded quest configuration with each class ability.`,
	Args:  cobra.NoArgs,
	Run:   runClasses,
}

func runClasses(_ *cobra.Command, _ []string) {
	classes := adventure.ClassProfiles(quest)
	ab := quest.Abilities

	fmt.Println("Classes:")
	fmt.Println()
	fmt.Printf("  %-4s  %-8s  %-8s  %4s  %4s  %4s  %s\n", "Icon", "ID", "Name", "HP", "MP", "Cap", "Ability")
	fmt.Printf("  %-4s  %-8s  %-8s  %4s  %4s  %4s  %s\n", "----", "--", "----", "--", "--", "---", "-------")

	for _, c := range classes {
		var ability string
		switch c.ID {
		case adventure.ClassWarrior:
			ability = fmt.Sprintf("Battle cry: +%d HP, +%d score (cooldown %ds)",
				ab.Warrior.Heal, ab.Warrior.ScoreBonus, ab.Warrior.Cooldown)
		case adventure.ClassMage:
			ability = fmt.Sprintf("Teleport to a treasure within %d cells, %d mana (cooldown %ds)",
				ab.Mage.Radius, ab.Mage.ManaCost, ab.Mage.Cooldown)
		case adventure.ClassRogue:
			ability = fmt.Sprintf("Dash %d cells %s (cooldown %ds)",
				ab.Rogue.Distance, ab.Rogue.Heading(), ab.Rogue.Cooldown)
		}
		fmt.Printf("  %-4c  %-8s  %-8s  %4d  %4d  %4d  %s\n",
			c.Icon, c.ID, c.Name, c.BaseHealth, c.BaseMana, c.ManaCap, ability)
	}

	fmt.Println()
	fmt.Println("Run 'realmquest play --class <id>' to start as a class.")
}
