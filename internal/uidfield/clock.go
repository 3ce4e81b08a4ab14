package uidfield

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Clock schedules a message to be delivered to Update after d.
type Clock interface {
	After(d time.Duration, msg func() tea.Msg) tea.Cmd
}

// TeaClock schedules through tea.Tick.
type TeaClock struct{}

func (TeaClock) After(d time.Duration, msg func() tea.Msg) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg { return msg() })
}
