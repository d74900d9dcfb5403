package model

import "time"

// TimerConfig defines the work/break cycle.
type TimerConfig struct {
	Work  time.Duration
	Break time.Duration

	// AutoContinue keeps the timer running across a phase change.
	AutoContinue bool
}

// ActivityConfig tunes a scripted pet animation.
type ActivityConfig struct {
	Chance     float64
	FrameDelay int
	MinCycles  int
	MaxCycles  int
}

// PetConfig contains pet animation and walking parameters.
// Tick values are counted in render ticks.
type PetConfig struct {
	Name string

	WorkTicksPerFrame  int
	BreakTicksPerFrame int
	WorkStep           int
	BreakStep          int

	AreaWidth   int
	SpriteWidth int
	Margin      int

	MinWalkDistance       int
	DirectionChangeChance float64

	Happy  ActivityConfig
	Attack ActivityConfig
}
