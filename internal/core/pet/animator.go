package pet

import "pomopet/internal/core/timer"

// Animator cycles a frame index at a phase-dependent rate.
type Animator struct {
	frames     int
	workTicks  int
	breakTicks int
	phase      timer.Phase
	counter    int
	index      int
}

// NewAnimator creates an animator over frames frames. Work usually uses fewer
// ticks per frame than break.
func NewAnimator(frames, workTicks, breakTicks int) *Animator {
	if frames < 1 {
		frames = 1
	}
	if workTicks < 1 {
		workTicks = 1
	}
	if breakTicks < 1 {
		breakTicks = 1
	}
	return &Animator{
		frames:     frames,
		workTicks:  workTicks,
		breakTicks: breakTicks,
		phase:      timer.PhaseWork,
	}
}

// SetPhase changes the frame rate. The tick counter is kept.
func (animator *Animator) SetPhase(phase timer.Phase) {
	animator.phase = phase
}

// TicksPerFrame returns the current frame length in ticks.
func (animator *Animator) TicksPerFrame() int {
	if animator.phase == timer.PhaseBreak {
		return animator.breakTicks
	}
	return animator.workTicks
}

// Advance adds ticks to the counter and returns how many frames were stepped.
func (animator *Animator) Advance(ticks int) int {
	if ticks <= 0 {
		return 0
	}
	perFrame := animator.TicksPerFrame()
	animator.counter += ticks
	steps := animator.counter / perFrame
	animator.counter %= perFrame
	animator.index = (animator.index + steps) % animator.frames
	return steps
}

// Frame returns the current frame index in [0, frames).
func (animator *Animator) Frame() int {
	return animator.index
}

// Frames returns the cycle length.
func (animator *Animator) Frames() int {
	return animator.frames
}
