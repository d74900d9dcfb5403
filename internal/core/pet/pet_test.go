package pet

import (
	"errors"
	"math/rand"
	"testing"

	"pomopet/internal/core/model"
	"pomopet/internal/core/timer"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// calmConfig disables every random behaviour.
func calmConfig() model.PetConfig {
	config := DefaultConfig()
	config.WorkTicksPerFrame = 1
	config.BreakTicksPerFrame = 2
	config.DirectionChangeChance = 0
	config.Happy.Chance = 0
	config.Attack.Chance = 0
	return config
}

func TestPetWalksRightFromMargin(t *testing.T) {
	pet := New(calmConfig(), rand.New(rand.NewSource(1)))
	assert.Equal(t, 12, pet.X())

	assert.True(t, pet.Advance(1))

	assert.Equal(t, 15, pet.X())
	assert.Equal(t, Pose{Frame: 1, Mirrored: true}, pet.Pose())
}

func TestPetAlternatesWalkFrames(t *testing.T) {
	pet := New(calmConfig(), rand.New(rand.NewSource(1)))

	var frames []int
	for i := 0; i < 4; i++ {
		pet.Advance(1)
		frames = append(frames, pet.Pose().Frame)
	}

	assert.Equal(t, []int{1, 0, 1, 0}, frames)
}

func TestPetBouncesAtRightEdge(t *testing.T) {
	pet := New(calmConfig(), rand.New(rand.NewSource(1)))

	for i := 0; i < 100; i++ {
		pet.Advance(1)
		if pet.Direction() < 0 {
			break
		}
	}

	assert.Equal(t, -1, pet.Direction())
	assert.Equal(t, 230-48-12, pet.X())
	assert.False(t, pet.Pose().Mirrored)
}

func TestPetStaysInBounds(t *testing.T) {
	config := DefaultConfig()
	config.WorkTicksPerFrame = 1
	config.BreakTicksPerFrame = 1
	config.DirectionChangeChance = 0.5
	pet := New(config, rand.New(rand.NewSource(42)))
	pet.SetTimerRunning(true)

	phases := []timer.Phase{timer.PhaseWork, timer.PhaseBreak}
	for i := 0; i < 2000; i++ {
		if i%300 == 0 {
			pet.SetPhase(phases[i/300%2])
		}
		pet.Advance(1)
		require.GreaterOrEqual(t, pet.X(), config.Margin)
		require.LessOrEqual(t, pet.X(), config.AreaWidth-config.SpriteWidth-config.Margin)
		frame := pet.Pose().Frame
		require.True(t, frame >= 0 && frame < FrameCount, "frame %d", frame)
	}
}

func TestPetBreakWalksSlower(t *testing.T) {
	pet := New(calmConfig(), rand.New(rand.NewSource(1)))
	pet.SetPhase(timer.PhaseBreak)

	pet.Advance(1)
	assert.Equal(t, 12, pet.X())

	pet.Advance(1)
	assert.Equal(t, 13, pet.X())
}

func TestQueuedActivityStartsImmediately(t *testing.T) {
	pet := New(calmConfig(), rand.New(rand.NewSource(1)))

	require.NoError(t, pet.Queue(ActivityHappy))

	assert.Equal(t, ActivityHappy, pet.Activity())
	assert.Equal(t, 7, pet.Pose().Frame)
}

func TestQueuedActivitiesRunInOrder(t *testing.T) {
	pet := New(calmConfig(), rand.New(rand.NewSource(1)))
	pet.Register(Activity{Name: "first", Frames: []int{2}, Phases: []timer.Phase{timer.PhaseWork}, MinCycles: 1, MaxCycles: 1})
	pet.Register(Activity{Name: "second", Frames: []int{4}, Phases: []timer.Phase{timer.PhaseWork}, MinCycles: 1, MaxCycles: 1})

	require.NoError(t, pet.Queue("first"))
	require.NoError(t, pet.Queue("second"))
	assert.Equal(t, "first", pet.Activity())

	pet.Advance(1)
	assert.Equal(t, "second", pet.Activity())
	assert.Equal(t, 4, pet.Pose().Frame)

	pet.Advance(1)
	assert.Empty(t, pet.Activity())
}

func TestPetStandsStillDuringActivity(t *testing.T) {
	pet := New(calmConfig(), rand.New(rand.NewSource(1)))
	require.NoError(t, pet.Queue(ActivityHappy))
	x := pet.X()

	pet.Advance(1)

	assert.Equal(t, x, pet.X())
}

func TestAttackIsFollowedByHappy(t *testing.T) {
	pet := New(calmConfig(), rand.New(rand.NewSource(3)))
	require.NoError(t, pet.Queue(ActivityAttack))

	seenHappy := false
	for i := 0; i < 200 && pet.Activity() != ""; i++ {
		pet.Advance(1)
		if pet.Activity() == ActivityHappy {
			seenHappy = true
		}
	}

	assert.True(t, seenHappy)
}

func TestAttackNeverTriggersInBreakOrWhilePaused(t *testing.T) {
	config := calmConfig()
	config.Attack.Chance = 1
	paused := New(config, rand.New(rand.NewSource(1)))
	resting := New(config, rand.New(rand.NewSource(1)))
	resting.SetTimerRunning(true)
	resting.SetPhase(timer.PhaseBreak)

	for i := 0; i < 50; i++ {
		paused.Advance(1)
		resting.Advance(2)
		assert.NotEqual(t, ActivityAttack, paused.Activity())
		assert.NotEqual(t, ActivityAttack, resting.Activity())
	}
}

func TestAttackTriggersWhileWorking(t *testing.T) {
	config := calmConfig()
	config.Attack.Chance = 1
	pet := New(config, rand.New(rand.NewSource(1)))
	pet.SetTimerRunning(true)

	pet.Advance(1)

	assert.Equal(t, ActivityAttack, pet.Activity())
	assert.Contains(t, []int{6, 11}, pet.Pose().Frame)
}

func TestSetPhaseCancelsActivity(t *testing.T) {
	pet := New(calmConfig(), rand.New(rand.NewSource(1)))
	require.NoError(t, pet.Queue(ActivityHappy))
	require.NoError(t, pet.Queue(ActivityAttack))

	pet.SetPhase(timer.PhaseBreak)

	assert.Empty(t, pet.Activity())
	pet.Advance(10)
	assert.Empty(t, pet.Activity())
}

func TestQueueUnknownActivity(t *testing.T) {
	pet := New(calmConfig(), nil)

	err := pet.Queue("dance")

	assert.True(t, errors.Is(err, ErrUnknownActivity))
}

func TestResizeClampsPosition(t *testing.T) {
	pet := New(calmConfig(), rand.New(rand.NewSource(1)))
	for i := 0; i < 60; i++ {
		pet.Advance(1)
	}

	pet.Resize(100)

	assert.LessOrEqual(t, pet.X(), 100-48-12)
}
