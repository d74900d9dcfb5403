package sound

import (
	"testing"
	"time"

	"pomopet/resources"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeBundledChime(t *testing.T) {
	data, err := resources.Sound("chime.wav")
	require.NoError(t, err)

	buffer, format, err := Decode(data)

	require.NoError(t, err)
	assert.Equal(t, 44100, int(format.SampleRate))
	assert.Equal(t, 1, format.NumChannels)
	assert.InDelta(t, float64(format.SampleRate.N(600*time.Millisecond)), float64(buffer.Len()), 1)
}

func TestDecodeRejectsGarbage(t *testing.T) {
	_, _, err := Decode([]byte("definitely not a wav file"))

	assert.Error(t, err)
}

func TestMutedChimeSkipsSpeaker(t *testing.T) {
	data, err := resources.Sound("chime.wav")
	require.NoError(t, err)
	chime, err := NewChime(data, zerolog.Nop())
	require.NoError(t, err)
	assert.True(t, chime.Enabled())

	chime.SetEnabled(false)
	chime.Play()

	assert.False(t, chime.Enabled())
	assert.NoError(t, chime.openErr)
}
