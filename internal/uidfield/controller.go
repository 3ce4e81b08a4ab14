package uidfield

import (
	"context"
	"regexp"
	"strings"
	"time"

	"uidfield/internal/logx"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	DefaultDebounce       = 300 * time.Millisecond
	DefaultAvailableTTL   = 4 * time.Second
	DefaultRequestTimeout = 30 * time.Second

	HoverRegenerate = "regenerate"
)

// Options configures a Controller. Zero durations take the defaults above.
type Options struct {
	Name           string
	ContentTypeUID string
	// TargetField is the sibling field generation derives from. Empty disables auto-generation.
	TargetField string
	Required    bool
	Editable    bool
	Pattern     *regexp.Regexp

	Service  Service
	OnChange ChangeFunc
	Logger   logx.Logger
	Clock    Clock

	Debounce       time.Duration
	AvailableTTL   time.Duration
	RequestTimeout time.Duration
}

type generatedMsg struct {
	field     string
	seq       int
	requestID string
	adopt     bool
	value     string
	err       error
}

type checkedMsg struct {
	field     string
	seq       int
	requestID string
	result    Availability
	err       error
}

type dismissMsg struct {
	field string
	seq   int
}

type request struct {
	seq      int
	inflight bool
}

// Controller owns the UID field's value and its generate/check lifecycle.
// It is not safe for concurrent use; call it from the update loop only.
type Controller struct {
	name           string
	contentTypeUID string
	targetField    string
	required       bool
	editable       bool
	pattern        *regexp.Regexp
	service        Service
	onChange       ChangeFunc
	log            logx.Logger
	clock          Clock
	availableTTL   time.Duration
	requestTimeout time.Duration

	value        string
	initialValue string
	creating     bool
	customized   bool
	record       Record
	sourceRaw    string

	// result is the settled outcome of the last completed check.
	result     State
	dismissSeq int

	gen   request
	check request
	// loading is the phase of the most recently started request.
	loading Phase

	valueDebounce  Debouncer
	sourceDebounce Debouncer

	hover  string
	err    error
	closed bool
}

// New builds a Controller; call Mount before feeding it messages.
func New(opts Options) *Controller {
	if opts.Pattern == nil {
		opts.Pattern = DefaultPattern
	}
	if opts.Logger == nil {
		opts.Logger = logx.Nop()
	}
	if opts.Clock == nil {
		opts.Clock = TeaClock{}
	}
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	if opts.AvailableTTL <= 0 {
		opts.AvailableTTL = DefaultAvailableTTL
	}
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = DefaultRequestTimeout
	}
	return &Controller{
		name:           opts.Name,
		contentTypeUID: opts.ContentTypeUID,
		targetField:    opts.TargetField,
		required:       opts.Required,
		editable:       opts.Editable,
		pattern:        opts.Pattern,
		service:        opts.Service,
		onChange:       opts.OnChange,
		log:            opts.Logger.With(zap.String("content_type", opts.ContentTypeUID), zap.String("field", opts.Name)),
		clock:          opts.Clock,
		availableTTL:   opts.AvailableTTL,
		requestTimeout: opts.RequestTimeout,
		record:         Record{},
		result:         idleState(),
		valueDebounce:  newDebouncer(opts.Name, streamValue, opts.Debounce, opts.Clock),
		sourceDebounce: newDebouncer(opts.Name, streamSource, opts.Debounce, opts.Clock),
	}
}

// Mount initializes the controller from the host's snapshot and runs the
// initial evaluation of both effects with the undebounced values.
func (c *Controller) Mount(s Snapshot) tea.Cmd {
	c.record = s.Modified.Clone()
	c.creating = len(s.Initial) == 0
	c.initialValue = s.Initial.String(c.name)
	c.value = c.record.String(c.name)
	c.sourceRaw = c.sourceValue()

	c.valueDebounce.Seed(c.value)
	c.sourceDebounce.Seed(c.sourceRaw)

	if c.value == "" && c.required {
		// The adopting generation already covers the source field.
		return tea.Batch(c.generate(true), c.onDebouncedValue(c.value))
	}
	return tea.Batch(c.onDebouncedValue(c.value), c.onDebouncedSource(c.sourceRaw))
}

// Unmount drops pending timers and in-flight results.
func (c *Controller) Unmount() {
	c.closed = true
	c.valueDebounce.Cancel()
	c.sourceDebounce.Cancel()
	c.dismissSeq++
	c.supersedeRequests()
}

// UserChange handles raw input. It never issues a request directly.
func (c *Controller) UserChange(raw string) tea.Cmd {
	if c.closed {
		return nil
	}
	c.err = nil
	if c.creating && raw != "" {
		c.customized = true
	}
	if c.check.inflight {
		// The dropped check never settled, so the same value must check again.
		c.valueDebounce.Forget()
	}
	c.supersedeRequests()
	c.value = raw
	c.record[c.name] = raw
	c.emit(raw, false)
	return c.valueDebounce.Push(raw)
}

// SetRecord replaces the host record snapshot. The source debounce restarts
// only when the target field's value changed.
func (c *Controller) SetRecord(r Record) tea.Cmd {
	if c.closed {
		return nil
	}
	c.record = r.Clone()
	c.record[c.name] = c.value
	src := c.sourceValue()
	if c.targetField == "" || src == c.sourceRaw {
		return nil
	}
	c.sourceRaw = src
	return c.sourceDebounce.Push(src)
}

// Focus reopens the suggestion dropdown when a suggestion is pending.
func (c *Controller) Focus() {
	if c.result.Availability().HasSuggestion() {
		c.result = c.result.withOpen(true)
	}
}

// ClickOutside closes the dropdown and keeps the availability result.
func (c *Controller) ClickOutside() {
	c.result = c.result.withOpen(false)
}

// AcceptSuggestion takes the pending suggestion as the value. No-op without one.
func (c *Controller) AcceptSuggestion() tea.Cmd {
	if c.closed || !c.result.Availability().HasSuggestion() {
		return nil
	}
	suggestion := c.result.Suggestion
	c.result = c.result.withOpen(false)
	c.supersedeRequests()
	return c.setValue(suggestion, false)
}

// Regenerate asks the server for a fresh value. Read-only fields ignore it.
func (c *Controller) Regenerate() tea.Cmd {
	if c.closed || !c.editable {
		return nil
	}
	return c.generate(false)
}

func (c *Controller) HoverRegenerate(on bool) {
	if on {
		c.hover = HoverRegenerate
		return
	}
	c.hover = ""
}

// Validate runs the required/shape checks and stores the result as the field error.
func (c *Controller) Validate() error {
	c.err = Validate(c.name, c.value, c.required, c.pattern)
	return c.err
}

func (c *Controller) SetErr(err error) { c.err = err }

// Update consumes the controller's own messages (debounce ticks, responses,
// dismiss timers) and ignores everything else.
func (c *Controller) Update(msg tea.Msg) tea.Cmd {
	if c == nil || c.closed {
		return nil
	}
	switch msg := msg.(type) {
	case debouncedMsg:
		switch msg.stream {
		case streamValue:
			if v, ok := c.valueDebounce.accept(msg); ok {
				return c.onDebouncedValue(v)
			}
		case streamSource:
			if v, ok := c.sourceDebounce.accept(msg); ok {
				return c.onDebouncedSource(v)
			}
		}
		return nil

	case generatedMsg:
		if msg.field != c.name || !c.gen.inflight || msg.seq != c.gen.seq {
			return nil
		}
		c.gen.inflight = false
		if msg.err != nil {
			c.report(msg.requestID, "uid.generate", msg.err)
			return nil
		}
		return c.setValue(msg.value, msg.adopt)

	case checkedMsg:
		if msg.field != c.name || !c.check.inflight || msg.seq != c.check.seq {
			return nil
		}
		c.check.inflight = false
		if msg.err != nil {
			c.report(msg.requestID, "uid.check_availability", msg.err)
			return nil
		}
		return c.setResult(stateFromAvailability(msg.result))

	case dismissMsg:
		if msg.field == c.name && msg.seq == c.dismissSeq && c.result.dismissible() {
			c.result = idleState()
			c.dismissSeq++
		}
		return nil
	}
	return nil
}

func (c *Controller) onDebouncedValue(v string) tea.Cmd {
	switch {
	case v != "" && matchesShape(c.pattern, v) && v != c.initialValue:
		return c.startCheck()
	case v == "":
		c.check = request{seq: c.check.seq + 1}
		return c.setResult(idleState())
	}
	return nil
}

func (c *Controller) onDebouncedSource(v string) tea.Cmd {
	if c.customized || !c.creating || v == "" {
		return nil
	}
	return c.generate(false)
}

func (c *Controller) generate(adopt bool) tea.Cmd {
	if c.service == nil {
		return nil
	}
	c.gen = request{seq: c.gen.seq + 1, inflight: true}
	c.loading = PhaseGenerating

	req := GenerateRequest{
		ContentTypeUID: c.contentTypeUID,
		Field:          c.name,
		Data:           c.Record(),
	}
	msg := generatedMsg{field: c.name, seq: c.gen.seq, requestID: uuid.NewString(), adopt: adopt}
	svc := c.service
	timeout := c.requestTimeout
	c.log.Debug("uid generate issued", zap.String("request_id", msg.requestID), zap.Bool("adopt_as_initial", adopt))

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(logx.WithRequestID(context.Background(), msg.requestID), timeout)
		defer cancel()
		msg.value, msg.err = svc.Generate(ctx, req)
		return msg
	}
}

func (c *Controller) startCheck() tea.Cmd {
	if c.service == nil {
		return nil
	}
	c.check = request{seq: c.check.seq + 1, inflight: true}
	c.loading = PhaseChecking

	req := CheckRequest{ContentTypeUID: c.contentTypeUID, Field: c.name}
	if v := strings.TrimSpace(c.value); v != "" {
		req.Value = &v
	}
	msg := checkedMsg{field: c.name, seq: c.check.seq, requestID: uuid.NewString()}
	svc := c.service
	timeout := c.requestTimeout
	c.log.Debug("uid availability check issued", zap.String("request_id", msg.requestID), zap.String("value", c.value))

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(logx.WithRequestID(context.Background(), msg.requestID), timeout)
		defer cancel()
		msg.result, msg.err = svc.CheckAvailability(ctx, req)
		return msg
	}
}

// setResult replaces the settled result. Any change cancels a pending
// auto-dismiss; an available result arms a new one, suggestion or not.
func (c *Controller) setResult(s State) tea.Cmd {
	c.result = s
	c.dismissSeq++
	if !s.dismissible() {
		return nil
	}
	msg := dismissMsg{field: c.name, seq: c.dismissSeq}
	return c.clock.After(c.availableTTL, func() tea.Msg { return msg })
}

func (c *Controller) setValue(v string, adopt bool) tea.Cmd {
	c.value = v
	c.record[c.name] = v
	if adopt {
		c.initialValue = v
	}
	c.emit(v, adopt)
	return c.valueDebounce.Push(v)
}

func (c *Controller) supersedeRequests() {
	c.gen = request{seq: c.gen.seq + 1}
	c.check = request{seq: c.check.seq + 1}
}

func (c *Controller) emit(v string, adopt bool) {
	if c.onChange == nil {
		return
	}
	c.onChange(Event{Name: c.name, Value: v, Type: "text"}, adopt)
}

func (c *Controller) report(requestID, action string, err error) {
	ctx := logx.WithRequestID(context.Background(), requestID)
	logx.ReportSysError(ctx, c.log, logx.NewSysLog(action, err), zap.String("value", c.value))
}

func (c *Controller) sourceValue() string {
	if c.targetField == "" {
		return ""
	}
	return c.record.String(c.targetField)
}

func (c *Controller) Name() string         { return c.name }
func (c *Controller) TargetField() string  { return c.targetField }
func (c *Controller) Value() string        { return c.value }
func (c *Controller) InitialValue() string { return c.initialValue }
func (c *Controller) Creating() bool       { return c.creating }
func (c *Controller) Customized() bool     { return c.customized }
func (c *Controller) Required() bool       { return c.required }
func (c *Controller) Editable() bool       { return c.editable }
func (c *Controller) HoverLabel() string   { return c.hover }
func (c *Controller) Err() error           { return c.err }
func (c *Controller) Loading() bool        { return c.gen.inflight || c.check.inflight }

// Availability is the last completed check result, or nil.
func (c *Controller) Availability() *Availability { return c.result.Availability() }

func (c *Controller) SuggestionOpen() bool {
	return c.result.Phase == PhaseSuggesting && c.result.Open
}

// State returns the visible state: a loading phase while a request is
// outstanding, the settled result otherwise.
func (c *Controller) State() State {
	switch {
	case c.gen.inflight && c.check.inflight:
		return State{Phase: c.loading}
	case c.gen.inflight:
		return State{Phase: PhaseGenerating}
	case c.check.inflight:
		return State{Phase: PhaseChecking}
	}
	return c.result
}

// Record returns a copy of the host record with this field's current value.
func (c *Controller) Record() Record {
	out := c.record.Clone()
	out[c.name] = c.value
	return out
}
