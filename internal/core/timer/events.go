package timer

import "time"

// Phase is the current mode of the timer.
type Phase string

const (
	PhaseWork  Phase = "work"
	PhaseBreak Phase = "break"
)

// Next returns the phase that follows.
func (phase Phase) Next() Phase {
	if phase == PhaseWork {
		return PhaseBreak
	}
	return PhaseWork
}

// EventType defines the type of timer event.
type EventType string

const (
	EventStarted     EventType = "started"
	EventPaused      EventType = "paused"
	EventReset       EventType = "reset"
	EventPhaseChange EventType = "phase_change"
	EventSkipped     EventType = "skipped"
)

// Event represents a timer update for observers.
type Event struct {
	Type      EventType
	Phase     Phase
	Previous  Phase
	Remaining time.Duration
	Running   bool
	Completed int
	At        time.Time
}

// Transition describes a phase change caused by Tick.
type Transition struct {
	From      Phase
	To        Phase
	Completed int
}

// State is a snapshot of the timer.
type State struct {
	Phase     Phase
	Remaining time.Duration
	Running   bool
	Completed int
}
