// Package fsm defines the capture-session lifecycle as a pure transition function.
package fsm

import (
	"errors"
	"fmt"
)

type State string

type Event string

const (
	StateIdle      State = "idle"
	StateRecording State = "recording"
	StatePaused    State = "paused"
	StatePreview   State = "preview"
)

const (
	EventStart   Event = "start"
	EventPause   Event = "pause"
	EventResume  Event = "resume"
	EventStop    Event = "stop"
	EventCommit  Event = "commit"
	EventDiscard Event = "discard"
)

// ErrInvalidTransition marks every rejected state/event pair.
var ErrInvalidTransition = errors.New("invalid transition")

// Transition returns the next state for one event, or the unchanged state
// with an error wrapping ErrInvalidTransition. Commit and discard are
// terminal for the session; both land back on idle so a fresh session can
// start without constructing a new controller.
func Transition(current State, event Event) (State, error) {
	switch current {
	case StateIdle:
		if event == EventStart {
			return StateRecording, nil
		}
	case StateRecording:
		switch event {
		case EventPause:
			return StatePaused, nil
		case EventStop:
			return StatePreview, nil
		}
	case StatePaused:
		switch event {
		case EventResume:
			return StateRecording, nil
		case EventStop:
			return StatePreview, nil
		}
	case StatePreview:
		switch event {
		case EventCommit, EventDiscard:
			return StateIdle, nil
		}
	default:
		return current, fmt.Errorf("unknown state %q", current)
	}
	return current, fmt.Errorf("%w: %s --(%s)--> ?", ErrInvalidTransition, current, event)
}
