package tui

import (
	"sort"
	"time"

	"uidfield/internal/logx"
	"uidfield/internal/uidfield"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

type Options struct {
	ContentTypeUID string
	Field          string
	// TargetField is the source field shown above the UID field. Empty hides it.
	TargetField string
	Required    bool
	Editable    bool
	Description string
	// Initial is the record as stored; empty means a new record.
	Initial uidfield.Record

	Service uidfield.Service
	Logger  logx.Logger
	Theme   string
	Glyphs  string

	RequestTimeout time.Duration
	// Clock overrides the controller's timer source (tests).
	Clock uidfield.Clock
}

// Result is what the form hands back when it exits.
type Result struct {
	Saved  bool
	Record uidfield.Record
	// Dirty lists fields whose value differs from the baseline, sorted.
	Dirty []string
}

type focusArea int

const (
	focusSource focusArea = iota
	focusUID
)

type flashDoneMsg struct{ seq int }

const flashDuration = 2500 * time.Millisecond

type formModel struct {
	opts Options
	ctrl *uidfield.Controller
	log  logx.Logger

	// record is the host's working copy; baseline is what "unchanged" means,
	// which moves when the controller adopts a generated value as initial.
	record   uidfield.Record
	baseline uidfield.Record

	source textinput.Model
	uid    textinput.Model
	spin   spinner.Model
	help   help.Model
	keys   keyMap
	focus  focusArea

	width  int
	height int
	hits   hitMap

	flash    string
	flashSeq int

	saved    bool
	quitting bool
}

func newFormModel(opts Options) *formModel {
	if opts.Logger == nil {
		opts.Logger = logx.Nop()
	}
	m := &formModel{
		opts:     opts,
		log:      opts.Logger.With(zap.String("component", "tui")),
		record:   opts.Initial.Clone(),
		baseline: opts.Initial.Clone(),
		keys:     defaultKeyMap(),
		help:     help.New(),
		width:    80,
	}
	m.keys.Regenerate.SetEnabled(opts.Editable)

	m.ctrl = uidfield.New(uidfield.Options{
		Name:           opts.Field,
		ContentTypeUID: opts.ContentTypeUID,
		TargetField:    opts.TargetField,
		Required:       opts.Required,
		Editable:       opts.Editable,
		Service:        opts.Service,
		OnChange:       m.onFieldChange,
		Logger:         opts.Logger,
		Clock:          opts.Clock,
		RequestTimeout: opts.RequestTimeout,
	})

	m.source = textinput.New()
	m.source.Prompt = ""
	m.source.Placeholder = opts.TargetField
	m.source.SetValue(m.record.String(opts.TargetField))

	m.uid = textinput.New()
	m.uid.Prompt = ""
	m.uid.Placeholder = opts.Field
	m.uid.SetValue(m.record.String(opts.Field))

	m.spin = spinner.New(spinner.WithSpinner(spinner.MiniDot))

	if opts.TargetField == "" {
		m.focusUID()
	} else {
		m.focus = focusSource
		m.source.Focus()
	}
	return m
}

// onFieldChange is the controller's change callback: the host records the value.
func (m *formModel) onFieldChange(ev uidfield.Event, adoptAsInitial bool) {
	m.record[ev.Name] = ev.Value
	if adoptAsInitial {
		m.baseline[ev.Name] = ev.Value
	}
	if m.uid.Value() != ev.Value {
		m.uid.SetValue(ev.Value)
	}
	m.log.Debug("field changed", zap.String("name", ev.Name), zap.String("value", ev.Value), zap.Bool("adopt_as_initial", adoptAsInitial))
}

func (m *formModel) Init() tea.Cmd {
	snap := uidfield.Snapshot{Initial: m.opts.Initial.Clone(), Modified: m.record.Clone()}
	return tea.Batch(m.ctrl.Mount(snap), textinput.Blink, m.spin.Tick)
}

func (m *formModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case flashDoneMsg:
		if msg.seq == m.flashSeq {
			m.flash = ""
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case tea.MouseMsg:
		return m, m.handleMouse(msg)

	case tea.KeyMsg:
		return m, m.handleKey(msg)
	}

	if cmd := m.ctrl.Update(msg); cmd != nil {
		return m, cmd
	}
	return m, m.updateFocusedInput(msg)
}

func (m *formModel) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		m.ctrl.Unmount()
		return tea.Quit

	case key.Matches(msg, m.keys.Save):
		if err := m.ctrl.Validate(); err != nil {
			m.focusUID()
			return m.showFlash("Cannot save: " + err.Error())
		}
		m.saved = true
		m.quitting = true
		m.ctrl.Unmount()
		return tea.Quit

	case key.Matches(msg, m.keys.Next), key.Matches(msg, m.keys.Prev):
		if m.opts.TargetField == "" {
			return nil
		}
		if m.focus == focusUID {
			m.blurUID()
			m.focus = focusSource
			return m.source.Focus()
		}
		m.source.Blur()
		return m.focusUID()

	case key.Matches(msg, m.keys.Dismiss):
		m.ctrl.ClickOutside()
		return nil

	case key.Matches(msg, m.keys.Regenerate):
		return m.ctrl.Regenerate()

	case key.Matches(msg, m.keys.AcceptAlt):
		return m.ctrl.AcceptSuggestion()

	case key.Matches(msg, m.keys.Accept):
		if m.focus == focusUID && m.ctrl.SuggestionOpen() {
			return m.ctrl.AcceptSuggestion()
		}
		return nil
	}
	return m.updateFocusedInput(msg)
}

// updateFocusedInput forwards msg to the focused input and reports value
// changes to the controller.
func (m *formModel) updateFocusedInput(msg tea.Msg) tea.Cmd {
	var cmds []tea.Cmd
	switch m.focus {
	case focusSource:
		before := m.source.Value()
		var cmd tea.Cmd
		m.source, cmd = m.source.Update(msg)
		cmds = append(cmds, cmd)
		if v := m.source.Value(); v != before {
			m.record[m.opts.TargetField] = v
			cmds = append(cmds, m.ctrl.SetRecord(m.record))
		}
	case focusUID:
		if !m.opts.Editable {
			// Read-only: the input keeps blinking but ignores edits.
			if _, ok := msg.(tea.KeyMsg); ok {
				return nil
			}
		}
		before := m.uid.Value()
		var cmd tea.Cmd
		m.uid, cmd = m.uid.Update(msg)
		cmds = append(cmds, cmd)
		if v := m.uid.Value(); v != before {
			cmds = append(cmds, m.ctrl.UserChange(v))
		}
	}
	return tea.Batch(cmds...)
}

func (m *formModel) focusUID() tea.Cmd {
	m.focus = focusUID
	m.ctrl.Focus()
	return m.uid.Focus()
}

// blurUID leaves the UID field and validates it, like a form blur.
func (m *formModel) blurUID() {
	m.uid.Blur()
	_ = m.ctrl.Validate()
}

func (m *formModel) showFlash(s string) tea.Cmd {
	m.flash = s
	m.flashSeq++
	seq := m.flashSeq
	return tea.Tick(flashDuration, func(time.Time) tea.Msg { return flashDoneMsg{seq: seq} })
}

func (m *formModel) result() Result {
	rec := m.record.Clone()
	rec[m.opts.Field] = m.ctrl.Value()
	var dirty []string
	for _, k := range sortedKeys(rec) {
		if rec.String(k) != m.baseline.String(k) {
			dirty = append(dirty, k)
		}
	}
	return Result{Saved: m.saved, Record: rec, Dirty: dirty}
}

func sortedKeys(r uidfield.Record) []string {
	keys := make([]string, 0, len(r))
	for k := range r {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
