package pet

import (
	"fmt"
	"math/rand"
	"time"

	"pomopet/internal/core/model"
	"pomopet/internal/core/timer"
)

// FrameCount is the number of sprite frames a pet set provides.
const FrameCount = 12

var walkFrames = []int{0, 1}

// Pose identifies the sprite to draw. Sprites face left; Mirrored flips them.
type Pose struct {
	Frame    int
	Mirrored bool
}

// Pet walks back and forth across its area and occasionally plays an activity.
// Pet is not safe for concurrent use.
type Pet struct {
	config       model.PetConfig
	rng          *rand.Rand
	animator     *Animator
	phase        timer.Phase
	timerRunning bool

	x         int
	direction int
	walked    int

	activities map[string]*Activity
	order      []string
	active     *playback
	queue      []string
}

// DefaultConfig returns pet defaults for a 100ms render tick.
func DefaultConfig() model.PetConfig {
	return model.PetConfig{
		Name:                  "Agumon",
		WorkTicksPerFrame:     3,
		BreakTicksPerFrame:    7,
		WorkStep:              3,
		BreakStep:             1,
		AreaWidth:             230,
		SpriteWidth:           48,
		Margin:                12,
		MinWalkDistance:       25,
		DirectionChangeChance: 0.07,
		Happy: model.ActivityConfig{
			Chance:     0.03,
			FrameDelay: 2,
			MinCycles:  1,
			MaxCycles:  3,
		},
		Attack: model.ActivityConfig{
			Chance:     0.08,
			FrameDelay: 3,
			MinCycles:  5,
			MaxCycles:  10,
		},
	}
}

// New creates a pet with the happy and attack activities registered.
// A nil rng is seeded from the current time.
func New(config model.PetConfig, rng *rand.Rand) *Pet {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	pet := &Pet{
		config:     config,
		rng:        rng,
		animator:   NewAnimator(len(walkFrames), config.WorkTicksPerFrame, config.BreakTicksPerFrame),
		phase:      timer.PhaseWork,
		x:          config.Margin,
		direction:  1,
		activities: make(map[string]*Activity),
	}
	pet.Register(Activity{
		Name:              ActivityAttack,
		Frames:            []int{6, 11},
		Phases:            []timer.Phase{timer.PhaseWork},
		Chance:            config.Attack.Chance,
		FrameDelay:        config.Attack.FrameDelay,
		MinCycles:         config.Attack.MinCycles,
		MaxCycles:         config.Attack.MaxCycles,
		NeedsRunningTimer: true,
		Then:              ActivityHappy,
	})
	pet.Register(Activity{
		Name:       ActivityHappy,
		Frames:     []int{7, 3},
		Phases:     []timer.Phase{timer.PhaseWork, timer.PhaseBreak},
		Chance:     config.Happy.Chance,
		FrameDelay: config.Happy.FrameDelay,
		MinCycles:  config.Happy.MinCycles,
		MaxCycles:  config.Happy.MaxCycles,
	})
	pet.clamp()
	return pet
}

// Register adds or replaces an activity. Activities are rolled in
// registration order.
func (pet *Pet) Register(activity Activity) {
	if len(activity.Frames) == 0 {
		return
	}
	if _, exists := pet.activities[activity.Name]; !exists {
		pet.order = append(pet.order, activity.Name)
	}
	copied := activity
	pet.activities[activity.Name] = &copied
}

// Queue starts the named activity now, or after the current one finishes.
func (pet *Pet) Queue(name string) error {
	if _, ok := pet.activities[name]; !ok {
		return fmt.Errorf("queue %q: %w", name, ErrUnknownActivity)
	}
	if pet.active == nil {
		pet.activate(name)
		return nil
	}
	pet.queue = append(pet.queue, name)
	return nil
}

// SetPhase switches walking speed and cancels any activity.
func (pet *Pet) SetPhase(phase timer.Phase) {
	pet.phase = phase
	pet.animator.SetPhase(phase)
	pet.active = nil
	pet.queue = nil
}

// SetTimerRunning records whether the pomodoro countdown is active.
func (pet *Pet) SetTimerRunning(running bool) {
	pet.timerRunning = running
}

// Resize sets the walking area width and keeps the pet inside it.
func (pet *Pet) Resize(width int) {
	pet.config.AreaWidth = width
	pet.clamp()
}

// Advance moves the pet by render ticks and reports whether it changed.
func (pet *Pet) Advance(ticks int) bool {
	steps := pet.animator.Advance(ticks)
	for i := 0; i < steps; i++ {
		pet.step()
	}
	return steps > 0
}

// Pose returns the sprite to draw now.
func (pet *Pet) Pose() Pose {
	frame := walkFrames[pet.animator.Frame()%len(walkFrames)]
	if pet.active != nil {
		frame = pet.active.frame()
	}
	return Pose{Frame: frame, Mirrored: pet.direction > 0}
}

// X returns the left edge of the sprite.
func (pet *Pet) X() int {
	return pet.x
}

// Direction returns +1 when walking right and -1 when walking left.
func (pet *Pet) Direction() int {
	return pet.direction
}

// Activity returns the playing activity name, or "" while walking.
func (pet *Pet) Activity() string {
	if pet.active == nil {
		return ""
	}
	return pet.active.activity.Name
}

// Name returns the pet's display name.
func (pet *Pet) Name() string {
	return pet.config.Name
}

func (pet *Pet) step() {
	if pet.active == nil && len(pet.queue) > 0 {
		pet.activateNextQueued()
	}
	if pet.active == nil && pet.roll() {
		return
	}
	if pet.active != nil {
		if pet.active.advance() {
			next := pet.active.activity.Then
			pet.active = nil
			if next != "" {
				pet.activate(next)
			} else if len(pet.queue) > 0 {
				pet.activateNextQueued()
			}
		}
		return
	}
	pet.walk()
}

func (pet *Pet) roll() bool {
	for _, name := range pet.order {
		activity := pet.activities[name]
		if !activity.allows(pet.phase, pet.timerRunning) {
			continue
		}
		if pet.rng.Float64() < activity.Chance {
			pet.activate(name)
			return true
		}
	}
	return false
}

func (pet *Pet) activate(name string) {
	activity, ok := pet.activities[name]
	if !ok {
		return
	}
	cycles := activity.MinCycles
	if activity.MaxCycles > activity.MinCycles {
		cycles += pet.rng.Intn(activity.MaxCycles - activity.MinCycles + 1)
	}
	if cycles < 1 {
		cycles = 1
	}
	pet.active = &playback{activity: activity, cyclesLeft: cycles}
}

func (pet *Pet) activateNextQueued() {
	name := pet.queue[0]
	pet.queue = pet.queue[1:]
	pet.activate(name)
}

func (pet *Pet) walk() {
	step := pet.config.WorkStep
	if pet.phase == timer.PhaseBreak {
		step = pet.config.BreakStep
	}
	pet.x += pet.direction * step
	pet.walked += step

	if pet.bounce() {
		pet.walked = 0
		return
	}
	if pet.walked >= pet.config.MinWalkDistance && pet.rng.Float64() < pet.config.DirectionChangeChance {
		pet.direction = -pet.direction
		pet.walked = 0
	}
}

func (pet *Pet) bounds() (int, int) {
	left := pet.config.Margin
	right := pet.config.AreaWidth - pet.config.SpriteWidth - pet.config.Margin
	if right < left {
		right = left
	}
	return left, right
}

func (pet *Pet) bounce() bool {
	left, right := pet.bounds()
	if pet.x >= right {
		pet.x = right
		pet.direction = -1
		return true
	}
	if pet.x <= left {
		pet.x = left
		pet.direction = 1
		return true
	}
	return false
}

func (pet *Pet) clamp() {
	left, right := pet.bounds()
	if pet.x > right {
		pet.x = right
	}
	if pet.x < left {
		pet.x = left
	}
}
