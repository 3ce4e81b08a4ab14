package uidfield

import (
	"context"
	"sort"
	"sync"
	"testing"
	"time"

	"uidfield/internal/logx"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type manualTimer struct {
	at  time.Duration
	msg func() tea.Msg
}

// manualClock collects scheduled messages; advance delivers them in deadline order.
type manualClock struct {
	now    time.Duration
	timers []manualTimer
}

func (c *manualClock) After(d time.Duration, msg func() tea.Msg) tea.Cmd {
	c.timers = append(c.timers, manualTimer{at: c.now + d, msg: msg})
	return nil
}

type fakeService struct {
	mu        sync.Mutex
	generated []GenerateRequest
	checked   []CheckRequest

	generate func(GenerateRequest) (string, error)
	check    func(CheckRequest) (Availability, error)
}

func (s *fakeService) Generate(ctx context.Context, req GenerateRequest) (string, error) {
	s.mu.Lock()
	s.generated = append(s.generated, req)
	fn := s.generate
	s.mu.Unlock()
	if fn == nil {
		return "generated-uid", nil
	}
	return fn(req)
}

func (s *fakeService) CheckAvailability(ctx context.Context, req CheckRequest) (Availability, error) {
	s.mu.Lock()
	s.checked = append(s.checked, req)
	fn := s.check
	s.mu.Unlock()
	if fn == nil {
		return Availability{IsAvailable: true}, nil
	}
	return fn(req)
}

func (s *fakeService) generateCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.generated)
}

func (s *fakeService) checkCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.checked)
}

type changeCall struct {
	ev    Event
	adopt bool
}

type harness struct {
	t       *testing.T
	c       *Controller
	clock   *manualClock
	svc     *fakeService
	logs    *observer.ObservedLogs
	pending []tea.Cmd
	changes []changeCall
}

func newHarness(t *testing.T, opts Options) *harness {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	h := &harness{
		t:     t,
		clock: &manualClock{},
		svc:   &fakeService{},
		logs:  logs,
	}
	if opts.Name == "" {
		opts.Name = "slug"
	}
	if opts.ContentTypeUID == "" {
		opts.ContentTypeUID = "application::article.article"
	}
	opts.Service = h.svc
	opts.Clock = h.clock
	opts.Logger = logx.NewZapLogger(zap.New(core))
	opts.OnChange = func(ev Event, adopt bool) {
		h.changes = append(h.changes, changeCall{ev: ev, adopt: adopt})
	}
	h.c = New(opts)
	return h
}

func (h *harness) do(cmd tea.Cmd) {
	if cmd != nil {
		h.pending = append(h.pending, cmd)
	}
}

func (h *harness) deliver(msg tea.Msg) {
	switch m := msg.(type) {
	case nil:
	case tea.BatchMsg:
		for _, cmd := range m {
			h.do(cmd)
		}
	default:
		h.do(h.c.Update(m))
	}
}

// take removes and returns the queued commands without running them.
func (h *harness) take() []tea.Cmd {
	out := h.pending
	h.pending = nil
	return out
}

// flush runs queued commands (remote calls) until nothing is left.
func (h *harness) flush() {
	for len(h.pending) > 0 {
		cmd := h.pending[0]
		h.pending = h.pending[1:]
		h.deliver(cmd())
	}
}

// advance moves the clock forward, delivering due timers in order. Commands
// the timers produce are queued, not run.
func (h *harness) advance(d time.Duration) {
	target := h.clock.now + d
	for {
		sort.SliceStable(h.clock.timers, func(i, j int) bool { return h.clock.timers[i].at < h.clock.timers[j].at })
		if len(h.clock.timers) == 0 || h.clock.timers[0].at > target {
			break
		}
		next := h.clock.timers[0]
		h.clock.timers = h.clock.timers[1:]
		h.clock.now = next.at
		h.deliver(next.msg())
	}
	h.clock.now = target
}

func (h *harness) lastChange() changeCall {
	h.t.Helper()
	if len(h.changes) == 0 {
		h.t.Fatalf("expected at least one change callback")
	}
	return h.changes[len(h.changes)-1]
}

func creation() Snapshot {
	return Snapshot{Initial: Record{}, Modified: Record{}}
}
