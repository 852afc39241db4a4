// Package tui provides the Bubble Tea integration for realmquest: the menu,
// character creator, game view, scoreboard and the SSH server.
package tui

import (
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger a game simulation tick. Model identifies the
// game model whose loop scheduled it.
type TickMsg struct {
	Time  time.Time
	Model int64
}

var lastModelID atomic.Int64

// nextModelID returns a process-unique game model id.
func nextModelID() int64 {
	return lastModelID.Add(1)
}

// tickCmd returns a Bubble Tea command that sends tick messages at the specified rate.
func tickCmd(tickRate int, model int64) tea.Cmd {
	if tickRate <= 0 {
		tickRate = 60
	}
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{Time: t, Model: model}
	})
}
