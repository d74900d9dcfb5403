package ticker

import (
	"context"
	"time"

	"github.com/jonboulle/clockwork"
)

// DefaultInterval is the render tick rate.
const DefaultInterval = 100 * time.Millisecond

// Dispatcher runs fn on the goroutine that owns UI state.
type Dispatcher func(fn func())

// Loop drives a callback at a fixed rate with the measured elapsed time.
type Loop struct {
	clock    clockwork.Clock
	interval time.Duration
	dispatch Dispatcher
	onTick   func(elapsed time.Duration)
}

// New creates a Loop. A nil dispatcher calls onTick on the loop goroutine.
func New(clock clockwork.Clock, interval time.Duration, dispatch Dispatcher, onTick func(time.Duration)) *Loop {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if interval <= 0 {
		interval = DefaultInterval
	}
	if dispatch == nil {
		dispatch = func(fn func()) { fn() }
	}
	return &Loop{
		clock:    clock,
		interval: interval,
		dispatch: dispatch,
		onTick:   onTick,
	}
}

// Interval returns the tick interval.
func (loop *Loop) Interval() time.Duration {
	return loop.interval
}

// Run ticks until ctx is cancelled.
func (loop *Loop) Run(ctx context.Context) {
	last := loop.clock.Now()
	ticker := loop.clock.NewTicker(loop.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.Chan():
			now := loop.clock.Now()
			elapsed := now.Sub(last)
			last = now
			if elapsed <= 0 {
				continue
			}
			loop.dispatch(func() {
				loop.onTick(elapsed)
			})
		}
	}
}
