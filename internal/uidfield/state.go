package uidfield

type Phase int

const (
	PhaseIdle Phase = iota
	PhaseGenerating
	PhaseChecking
	PhaseAvailable
	PhaseUnavailable
	PhaseSuggesting
)

func (p Phase) String() string {
	switch p {
	case PhaseGenerating:
		return "generating"
	case PhaseChecking:
		return "checking"
	case PhaseAvailable:
		return "available"
	case PhaseUnavailable:
		return "unavailable"
	case PhaseSuggesting:
		return "suggesting"
	default:
		return "idle"
	}
}

func (p Phase) Loading() bool { return p == PhaseGenerating || p == PhaseChecking }

// State is the visible state of the field. Suggestion and Open are only set
// in PhaseSuggesting, where Available keeps the server's isAvailable.
type State struct {
	Phase      Phase
	Available  bool
	Suggestion string
	Open       bool
}

func idleState() State { return State{Phase: PhaseIdle} }

// stateFromAvailability is the settled state after a completed check.
// A suggestion always opens the dropdown.
func stateFromAvailability(a Availability) State {
	switch {
	case a.HasSuggestion():
		return State{Phase: PhaseSuggesting, Available: a.IsAvailable, Suggestion: a.Suggestion, Open: true}
	case a.IsAvailable:
		return State{Phase: PhaseAvailable, Available: true}
	default:
		return State{Phase: PhaseUnavailable}
	}
}

// Availability reports the check result this state represents, or nil.
func (s State) Availability() *Availability {
	switch s.Phase {
	case PhaseAvailable:
		return &Availability{IsAvailable: true}
	case PhaseUnavailable:
		return &Availability{IsAvailable: false}
	case PhaseSuggesting:
		return &Availability{IsAvailable: s.Available, Suggestion: s.Suggestion}
	default:
		return nil
	}
}

// dismissible reports whether the state holds an available result, which
// reverts to idle after the auto-dismiss delay.
func (s State) dismissible() bool {
	a := s.Availability()
	return a != nil && a.IsAvailable
}

func (s State) withOpen(open bool) State {
	if s.Phase != PhaseSuggesting {
		return s
	}
	s.Open = open
	return s
}
