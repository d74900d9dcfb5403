package timer

import (
	"fmt"
	"time"

	"pomopet/internal/core/model"

	"github.com/jonboulle/clockwork"
)

const (
	DefaultWork  = 25 * time.Minute
	DefaultBreak = 5 * time.Minute
)

// Timer is the work/break state machine.
//
// Timer is not safe for concurrent use. The UI loop owns it; other goroutines
// observe it through Subscribe.
type Timer struct {
	config    model.TimerConfig
	clock     clockwork.Clock
	phase     Phase
	remaining time.Duration
	running   bool
	completed int
	events    []chan Event
}

// New creates a Timer in the work phase with the full work duration.
func New(config model.TimerConfig, clock clockwork.Clock) *Timer {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	timer := &Timer{
		config: normalize(config),
		clock:  clock,
		phase:  PhaseWork,
	}
	timer.remaining = timer.config.Work
	return timer
}

// Subscribe registers a new observer channel.
func (timer *Timer) Subscribe(buffer int) <-chan Event {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan Event, buffer)
	timer.events = append(timer.events, ch)
	return ch
}

// Close closes all observer channels.
func (timer *Timer) Close() {
	for _, ch := range timer.events {
		close(ch)
	}
	timer.events = nil
}

// Start sets the timer running. It reports false if it was already running.
func (timer *Timer) Start() bool {
	if timer.running {
		return false
	}
	timer.running = true
	timer.emit(EventStarted, timer.phase)
	return true
}

// Pause stops the countdown. It reports false if it was already paused.
func (timer *Timer) Pause() bool {
	if !timer.running {
		return false
	}
	timer.running = false
	timer.emit(EventPaused, timer.phase)
	return true
}

// Toggle starts a paused timer or pauses a running one.
func (timer *Timer) Toggle() {
	if timer.running {
		timer.Pause()
		return
	}
	timer.Start()
}

// Reset returns to a stopped work phase with the full work duration.
func (timer *Timer) Reset() {
	previous := timer.phase
	timer.phase = PhaseWork
	timer.remaining = timer.config.Work
	timer.running = false
	timer.emit(EventReset, previous)
}

// Tick subtracts elapsed time while running. When the remaining time reaches
// zero the phase flips and the new phase's duration is loaded; the returned
// Transition describes the change. Time past zero is not carried over.
func (timer *Timer) Tick(elapsed time.Duration) (Transition, bool) {
	if !timer.running || elapsed <= 0 {
		return Transition{}, false
	}
	timer.remaining -= elapsed
	if timer.remaining > 0 {
		return Transition{}, false
	}

	from := timer.phase
	if from == PhaseWork {
		timer.completed++
	}
	timer.switchPhase()
	if !timer.config.AutoContinue {
		timer.running = false
	}
	timer.emit(EventPhaseChange, from)

	return Transition{From: from, To: timer.phase, Completed: timer.completed}, true
}

// Skip moves to the other phase without counting a completed session.
func (timer *Timer) Skip() {
	from := timer.phase
	timer.switchPhase()
	timer.emit(EventSkipped, from)
}

// SetDurations updates the phase durations. A stopped timer reloads the
// remaining time for its current phase.
func (timer *Timer) SetDurations(work, brk time.Duration) {
	timer.config = normalize(model.TimerConfig{
		Work:         work,
		Break:        brk,
		AutoContinue: timer.config.AutoContinue,
	})
	if !timer.running {
		timer.remaining = timer.durationFor(timer.phase)
	}
}

// SetAutoContinue toggles running through phase changes.
func (timer *Timer) SetAutoContinue(enabled bool) {
	timer.config.AutoContinue = enabled
}

// State returns a snapshot of the timer.
func (timer *Timer) State() State {
	return State{
		Phase:     timer.phase,
		Remaining: timer.remaining,
		Running:   timer.running,
		Completed: timer.completed,
	}
}

// Progress returns the elapsed fraction of the current phase.
func (timer *Timer) Progress() float64 {
	total := timer.durationFor(timer.phase)
	if total <= 0 {
		return 1
	}
	progress := float64(total-timer.remaining) / float64(total)
	if progress < 0 {
		return 0
	}
	if progress > 1 {
		return 1
	}
	return progress
}

func (timer *Timer) switchPhase() {
	timer.phase = timer.phase.Next()
	timer.remaining = timer.durationFor(timer.phase)
}

func (timer *Timer) durationFor(phase Phase) time.Duration {
	if phase == PhaseBreak {
		return timer.config.Break
	}
	return timer.config.Work
}

func (timer *Timer) emit(eventType EventType, previous Phase) {
	event := Event{
		Type:      eventType,
		Phase:     timer.phase,
		Previous:  previous,
		Remaining: timer.remaining,
		Running:   timer.running,
		Completed: timer.completed,
		At:        timer.clock.Now(),
	}
	for _, ch := range timer.events {
		select {
		case ch <- event:
		default:
		}
	}
}

func normalize(config model.TimerConfig) model.TimerConfig {
	if config.Work <= 0 {
		config.Work = DefaultWork
	}
	if config.Break <= 0 {
		config.Break = DefaultBreak
	}
	return config
}

// FormatRemaining renders a duration as MM:SS, rounding partial seconds up.
func FormatRemaining(remaining time.Duration) string {
	if remaining < 0 {
		remaining = 0
	}
	seconds := int((remaining + time.Second - 1) / time.Second)
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}
