package uidfield

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

type debounceStream int

const (
	streamValue debounceStream = iota
	streamSource
)

type debouncedMsg struct {
	field  string
	stream debounceStream
	seq    int
	value  string
}

// Debouncer coalesces a rapidly changing string. Every Push restarts the wait;
// only a tick carrying the latest seq is accepted, and only when its value
// differs from the last one emitted. Empty values always pass so that
// clearing a field is never swallowed.
type Debouncer struct {
	field  string
	stream debounceStream
	delay  time.Duration
	clock  Clock

	seq     int
	last    string
	emitted bool
}

func newDebouncer(field string, stream debounceStream, delay time.Duration, clock Clock) Debouncer {
	return Debouncer{field: field, stream: stream, delay: delay, clock: clock}
}

func (d *Debouncer) Push(value string) tea.Cmd {
	d.seq++
	msg := debouncedMsg{field: d.field, stream: d.stream, seq: d.seq, value: value}
	return d.clock.After(d.delay, func() tea.Msg { return msg })
}

// Seed records value as already emitted without scheduling anything.
func (d *Debouncer) Seed(value string) {
	d.last = value
	d.emitted = true
}

// Forget clears the last emitted value so the next tick is accepted even if
// it repeats it.
func (d *Debouncer) Forget() {
	d.last = ""
	d.emitted = false
}

// Cancel drops any pending tick.
func (d *Debouncer) Cancel() { d.seq++ }

func (d *Debouncer) accept(msg debouncedMsg) (string, bool) {
	if msg.field != d.field || msg.stream != d.stream || msg.seq != d.seq {
		return "", false
	}
	if d.emitted && msg.value == d.last && msg.value != "" {
		return "", false
	}
	d.last = msg.value
	d.emitted = true
	return msg.value, true
}
