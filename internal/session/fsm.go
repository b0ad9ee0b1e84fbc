package session

import (
	"fmt"

	"github.com/dgallion1/infographic/internal/apperr"
)

// Phase is the section of the workflow the user is in.
type Phase string

const (
	PhaseInput       Phase = "input"
	PhaseInfographic Phase = "infographic"
	PhaseExport      Phase = "export"
)

func (p Phase) Valid() bool {
	return p == PhaseInput || p == PhaseInfographic || p == PhaseExport
}

// EventType names a workflow event.
type EventType string

const (
	EventGenerationStarted   EventType = "generation_started"
	EventGenerationCompleted EventType = "generation_completed"
	EventGenerationFailed    EventType = "generation_failed"
	EventReset               EventType = "reset"
	EventViewportCrossed     EventType = "viewport_crossed"
	EventStepSelected        EventType = "step_selected"
)

// Event drives a transition.
type Event struct {
	Type EventType `json:"type"`
	// Above is set on viewport_crossed when the viewport moved back above the
	// infographic threshold.
	Above bool `json:"above,omitempty"`
	// Target is the phase chosen by step_selected.
	Target Phase `json:"target,omitempty"`
}

// State is everything a transition depends on.
type State struct {
	Phase       Phase `json:"phase"`
	Processing  bool  `json:"processing"`
	HasDocument bool  `json:"has_document"`
}

// Initial is the state of a fresh session.
var Initial = State{Phase: PhaseInput}

type rule func(s State, ev Event) (State, bool)

var rules = map[EventType]rule{
	EventGenerationStarted: func(s State, _ Event) (State, bool) {
		if s.Processing {
			return s, false
		}
		return State{Phase: PhaseInfographic, Processing: true, HasDocument: s.HasDocument}, true
	},
	EventGenerationCompleted: func(s State, _ Event) (State, bool) {
		if !s.Processing {
			return s, false
		}
		return State{Phase: PhaseExport, HasDocument: true}, true
	},
	EventGenerationFailed: func(s State, _ Event) (State, bool) {
		if !s.Processing {
			return s, false
		}
		next := State{Phase: PhaseInput, HasDocument: s.HasDocument}
		if s.HasDocument {
			next.Phase = PhaseExport
		}
		return next, true
	},
	EventReset: func(State, Event) (State, bool) {
		return Initial, true
	},
	EventViewportCrossed: func(s State, ev Event) (State, bool) {
		switch {
		case ev.Above:
			if !s.Processing {
				s.Phase = PhaseInput
			}
		case s.HasDocument:
			if s.Phase == PhaseInput {
				s.Phase = PhaseExport
			}
		case s.Processing:
			s.Phase = PhaseInfographic
		}
		return s, true
	},
	EventStepSelected: func(s State, ev Event) (State, bool) {
		if !ev.Target.Valid() {
			return s, false
		}
		if ev.Target == PhaseExport && !s.HasDocument {
			return s, false
		}
		s.Phase = ev.Target
		return s, true
	},
}

// Transition applies ev to s. It has no side effects; an event that is not
// allowed from s is an Invalid error and s is returned unchanged.
func Transition(s State, ev Event) (State, error) {
	r, ok := rules[ev.Type]
	if !ok {
		return s, apperr.New(apperr.Invalid, apperr.CodeInvalidRequest, fmt.Sprintf("unknown event %q", ev.Type))
	}
	next, ok := r(s, ev)
	if !ok {
		return s, apperr.New(apperr.Invalid, apperr.CodeInvalidRequest,
			fmt.Sprintf("event %q not allowed in phase %q", ev.Type, s.Phase))
	}
	return next, nil
}
