package adventure

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/vovakirdan/realmquest/internal/config"
	"github.com/vovakirdan/realmquest/internal/core"
)

// ClassID identifies a playable class.
type ClassID string

const (
	ClassWarrior ClassID = "warrior"
	ClassMage    ClassID = "mage"
	ClassRogue   ClassID = "rogue"
)

// ClassOrder is the display and hotkey order of the classes.
var ClassOrder = []ClassID{ClassWarrior, ClassMage, ClassRogue}

// ErrUnknownClass is returned for class ids outside ClassOrder.
var ErrUnknownClass = errors.New("adventure: unknown class")

// ParseClassID validates a class id.
func ParseClassID(s string) (ClassID, error) {
	for _, id := range ClassOrder {
		if string(id) == s {
			return id, nil
		}
	}
	return "", fmt.Errorf("%w %q", ErrUnknownClass, s)
}

// ClassProfile is the immutable description of a class.
// Icon and Color are presentation-only.
type ClassProfile struct {
	ID         ClassID
	Name       string
	BaseHealth int
	BaseMana   int
	ManaCap    int
	Icon       rune
	Color      core.Color
}

// Races offered by the character creator. They are cosmetic.
var Races = []string{"nord", "elf", "argonian"}

// Profile is the finished character handed to Session.Start.
type Profile struct {
	Name  string
	Race  string
	Class ClassProfile
}

// ClassProfiles builds the class table from configuration, in ClassOrder.
func ClassProfiles(cfg config.QuestConfig) []ClassProfile {
	profiles := make([]ClassProfile, 0, len(ClassOrder))
	for _, id := range ClassOrder {
		cc, ok := cfg.Class(string(id))
		if !ok {
			continue
		}
		profiles = append(profiles, classFromConfig(id, cc))
	}
	return profiles
}

// LookupClass returns the configured profile for id.
func LookupClass(cfg config.QuestConfig, id string) (ClassProfile, error) {
	cid, err := ParseClassID(id)
	if err != nil {
		return ClassProfile{}, err
	}
	cc, ok := cfg.Class(id)
	if !ok {
		return ClassProfile{}, fmt.Errorf("%w %q: not configured", ErrUnknownClass, id)
	}
	return classFromConfig(cid, cc), nil
}

func classFromConfig(id ClassID, cc config.ClassConfig) ClassProfile {
	icon, _ := utf8.DecodeRuneInString(cc.Icon)
	if icon == utf8.RuneError {
		icon = '@'
	}
	color, _ := core.ParseColor(cc.Color)
	name := cc.Name
	if name == "" {
		name = string(id)
	}
	return ClassProfile{
		ID:         id,
		Name:       name,
		BaseHealth: cc.Health,
		BaseMana:   cc.Mana,
		ManaCap:    cc.ManaCap,
		Icon:       icon,
		Color:      color,
	}
}
