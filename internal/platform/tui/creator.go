package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/realmquest/internal/adventure"
)

const (
	nameCharLimit = 16
	defaultName   = "Adventurer"
)

type creatorStep int

const (
	stepName creatorStep = iota
	stepRace
	stepClass
)

// CreatorModel is the character creation wizard: name, race, class.
type CreatorModel struct {
	step      creatorStep
	name      textinput.Model
	races     []string
	classes   []adventure.ClassProfile
	cursor    int
	race      string
	keyMapper *KeyMapper
	help      help.Model
	width     int
	height    int

	done      *adventure.Profile
	cancelled bool
	quitting  bool
}

// NewCreatorModel creates the wizard. suggested prefills the name field.
func NewCreatorModel(classes []adventure.ClassProfile, suggested string, width, height int) CreatorModel {
	ti := textinput.New()
	ti.Placeholder = defaultName
	ti.CharLimit = nameCharLimit
	ti.Width = nameCharLimit + 1
	ti.Prompt = "> "
	if r := []rune(suggested); len(r) > nameCharLimit {
		suggested = string(r[:nameCharLimit])
	}
	ti.SetValue(suggested)
	ti.Focus()

	return CreatorModel{
		name:      ti,
		races:     adventure.Races,
		classes:   classes,
		keyMapper: NewKeyMapper(),
		help:      help.New(),
		width:     width,
		height:    height,
	}
}

// Init starts the cursor blink.
func (m CreatorModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages for the wizard.
func (m CreatorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC:
			m.quitting = true
			return m, nil
		case tea.KeyEsc:
			m.back()
			return m, nil
		}
		if m.step == stepName {
			return m.updateName(msg)
		}
		return m.updateChoice(msg), nil
	}

	if m.step == stepName {
		var cmd tea.Cmd
		m.name, cmd = m.name.Update(msg)
		return m, cmd
	}
	return m, nil
}

// updateName feeds the text field; every printable key is part of the name.
func (m CreatorModel) updateName(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyEnter {
		m.step = stepRace
		m.cursor = 0
		m.name.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.name, cmd = m.name.Update(msg)
	return m, cmd
}

// updateChoice moves the cursor over races or classes.
func (m CreatorModel) updateChoice(msg tea.KeyMsg) CreatorModel {
	count := len(m.races)
	if m.step == stepClass {
		count = len(m.classes)
	}

	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}
	case MenuActionDown:
		if m.cursor < count-1 {
			m.cursor++
		}
	case MenuActionBack:
		m.back()
	case MenuActionQuit:
		m.quitting = true
	case MenuActionSelect:
		if count == 0 {
			return m
		}
		if m.step == stepRace {
			m.race = m.races[m.cursor]
			m.step = stepClass
			m.cursor = 0
			return m
		}
		m.done = &adventure.Profile{
			Name:  m.playerName(),
			Race:  m.race,
			Class: m.classes[m.cursor],
		}
	}
	return m
}

// back returns to the previous step, or cancels from the first one.
func (m *CreatorModel) back() {
	switch m.step {
	case stepName:
		m.cancelled = true
	case stepRace:
		m.step = stepName
		m.name.Focus()
	case stepClass:
		m.step = stepRace
	}
	m.cursor = 0
}

func (m CreatorModel) playerName() string {
	name := strings.TrimSpace(m.name.Value())
	if name == "" {
		return defaultName
	}
	return name
}

// View renders the current step.
func (m CreatorModel) View() string {
	var b strings.Builder

	theme := CurrentTheme()
	titleStyle := theme.Title
	dimStyle := theme.Description
	activeStyle := theme.ItemActive

	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render("Create your hero"), m.width))
	b.WriteString("\n\n")

	switch m.step {
	case stepName:
		b.WriteString(centerText("What is your name?", m.width))
		b.WriteString("\n\n")
		b.WriteString(centerText(m.name.View(), m.width))
		b.WriteString("\n\n")
		b.WriteString(centerText(dimStyle.Render("Enter: Next  |  Esc: Back"), m.width))

	case stepRace:
		b.WriteString(centerText(fmt.Sprintf("%s, choose your race", m.playerName()), m.width))
		b.WriteString("\n\n")
		for i, race := range m.races {
			line := "  " + capitalizeWord(race)
			if i == m.cursor {
				line = activeStyle.Render("> " + capitalizeWord(race))
			}
			b.WriteString(centerText(line, m.width))
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(centerText(dimStyle.Render("Up/Down: Choose  |  Enter: Next  |  Esc: Back"), m.width))

	case stepClass:
		b.WriteString(centerText(fmt.Sprintf("%s the %s, choose your class", m.playerName(), capitalizeWord(m.race)), m.width))
		b.WriteString("\n\n")
		for i, c := range m.classes {
			line := fmt.Sprintf("%c %-8s HP %-3d MP %-3d", c.Icon, c.Name, c.BaseHealth, c.BaseMana)
			if i == m.cursor {
				line = activeStyle.Render("> " + line)
			} else {
				line = "  " + line
			}
			b.WriteString(centerText(line, m.width))
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(centerText(dimStyle.Render("Up/Down: Choose  |  Enter: Begin  |  Esc: Back"), m.width))
		b.WriteString("\n\n")
		b.WriteString(centerText(dimStyle.Render(m.help.View(m.keyMapper.Keys())), m.width))
	}
	b.WriteString("\n")

	return b.String()
}

// Profile returns the finished character, or nil while the wizard runs.
func (m CreatorModel) Profile() *adventure.Profile {
	return m.done
}

// Cancelled returns true if the user backed out of the wizard.
func (m CreatorModel) Cancelled() bool {
	return m.cancelled
}

// IsQuitting returns true if the user requested to quit entirely.
func (m CreatorModel) IsQuitting() bool {
	return m.quitting
}

func capitalizeWord(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
