package controller

import (
	"strings"
	"time"

	"pomopet/internal/core/model"
	"pomopet/internal/core/pet"
	"pomopet/internal/core/timer"

	"github.com/rs/zerolog"
)

// Command is a user action understood by every frontend.
type Command int

const (
	CommandToggle Command = iota
	CommandStart
	CommandPause
	CommandReset
	CommandSkip
	CommandQuit
)

func (command Command) String() string {
	switch command {
	case CommandToggle:
		return "toggle"
	case CommandStart:
		return "start"
	case CommandPause:
		return "pause"
	case CommandReset:
		return "reset"
	case CommandSkip:
		return "skip"
	case CommandQuit:
		return "quit"
	default:
		return "unknown"
	}
}

// CommandForKey maps a key name to a command. Both fyne key names
// ("Space", "Escape") and terminal key strings (" ", "esc") are accepted.
func CommandForKey(key string) (Command, bool) {
	switch strings.ToLower(key) {
	case " ", "space":
		return CommandToggle, true
	case "r":
		return CommandReset, true
	case "s":
		return CommandSkip, true
	case "esc", "escape":
		return CommandQuit, true
	}
	return 0, false
}

// Chime plays the phase-change sound.
type Chime interface {
	Play()
}

// Snapshot is everything a frontend needs to draw one frame.
type Snapshot struct {
	Timer    timer.State
	Progress float64
	Pose     pet.Pose
	X        int
	Activity string
	PetName  string
}

// Controller routes commands and render ticks to the timer and the pet.
// It must only be used from the goroutine that owns the UI.
type Controller struct {
	timer         *timer.Timer
	pet           *pet.Pet
	chime         Chime
	logger        zerolog.Logger
	onPhaseChange func(timer.Transition)
	onQuit        func()
}

// New creates a controller. chime may be nil.
func New(pomodoro *timer.Timer, companion *pet.Pet, chime Chime, logger zerolog.Logger) *Controller {
	controller := &Controller{
		timer:  pomodoro,
		chime:  chime,
		logger: logger.With().Str("component", "controller").Logger(),
	}
	controller.SetPet(companion)
	return controller
}

// OnPhaseChange registers a callback run after the timer flips phase on its own.
func (controller *Controller) OnPhaseChange(handler func(timer.Transition)) {
	controller.onPhaseChange = handler
}

// OnQuit registers the quit handler.
func (controller *Controller) OnQuit(handler func()) {
	controller.onQuit = handler
}

// Dispatch applies a command.
func (controller *Controller) Dispatch(command Command) {
	controller.logger.Debug().Stringer("command", command).Msg("dispatch")

	switch command {
	case CommandToggle:
		controller.timer.Toggle()
	case CommandStart:
		controller.timer.Start()
	case CommandPause:
		controller.timer.Pause()
	case CommandReset:
		controller.timer.Reset()
		controller.pet.SetPhase(timer.PhaseWork)
	case CommandSkip:
		controller.timer.Skip()
		controller.pet.SetPhase(controller.timer.State().Phase)
	case CommandQuit:
		controller.timer.Pause()
		if controller.onQuit != nil {
			controller.onQuit()
		}
		return
	}
	controller.pet.SetTimerRunning(controller.timer.State().Running)
}

// Tick advances the timer by elapsed and the pet by one render tick.
func (controller *Controller) Tick(elapsed time.Duration) {
	if transition, changed := controller.timer.Tick(elapsed); changed {
		controller.pet.SetPhase(transition.To)
		controller.logger.Info().
			Str("from", string(transition.From)).
			Str("to", string(transition.To)).
			Int("completed", transition.Completed).
			Msg("phase change")
		if controller.chime != nil {
			controller.chime.Play()
		}
		if controller.onPhaseChange != nil {
			controller.onPhaseChange(transition)
		}
	}
	controller.pet.SetTimerRunning(controller.timer.State().Running)
	controller.pet.Advance(1)
}

// SetPet swaps the companion, keeping it in step with the timer.
func (controller *Controller) SetPet(companion *pet.Pet) {
	state := controller.timer.State()
	companion.SetPhase(state.Phase)
	companion.SetTimerRunning(state.Running)
	controller.pet = companion
}

// Configure applies new phase durations and auto-continue.
func (controller *Controller) Configure(config model.TimerConfig) {
	controller.timer.SetDurations(config.Work, config.Break)
	controller.timer.SetAutoContinue(config.AutoContinue)
}

// Resize changes the pet's walking area.
func (controller *Controller) Resize(width int) {
	controller.pet.Resize(width)
}

// Snapshot returns the current render state.
func (controller *Controller) Snapshot() Snapshot {
	return Snapshot{
		Timer:    controller.timer.State(),
		Progress: controller.timer.Progress(),
		Pose:     controller.pet.Pose(),
		X:        controller.pet.X(),
		Activity: controller.pet.Activity(),
		PetName:  controller.pet.Name(),
	}
}
