package pet

import (
	"errors"

	"pomopet/internal/core/timer"
)

// ErrUnknownActivity is returned when queueing an unregistered activity.
var ErrUnknownActivity = errors.New("unknown activity")

const (
	ActivityHappy  = "happy"
	ActivityAttack = "attack"
)

// Activity is a scripted animation that interrupts walking.
type Activity struct {
	Name       string
	Frames     []int
	Phases     []timer.Phase
	Chance     float64
	FrameDelay int
	MinCycles  int
	MaxCycles  int

	// NeedsRunningTimer restricts random triggering to a running timer.
	NeedsRunningTimer bool
	// Then names the activity started when this one finishes.
	Then string
}

func (activity *Activity) allows(phase timer.Phase, timerRunning bool) bool {
	if activity.NeedsRunningTimer && !timerRunning {
		return false
	}
	for _, allowed := range activity.Phases {
		if allowed == phase {
			return true
		}
	}
	return false
}

type playback struct {
	activity   *Activity
	index      int
	delay      int
	cyclesLeft int
}

func (play *playback) frame() int {
	return play.activity.Frames[play.index]
}

// advance moves the playback by one animation step and reports whether the
// activity has finished.
func (play *playback) advance() bool {
	frameDelay := play.activity.FrameDelay
	if frameDelay < 1 {
		frameDelay = 1
	}
	play.delay++
	if play.delay < frameDelay {
		return false
	}
	play.delay = 0
	play.index++
	if play.index < len(play.activity.Frames) {
		return false
	}
	play.index = 0
	play.cyclesLeft--
	return play.cyclesLeft <= 0
}
