package sound

import (
	"bytes"
	"fmt"
	"sync"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/speaker"
	"github.com/faiface/beep/wav"
	"github.com/rs/zerolog"
)

// Chime plays a short sound on the system speaker.
type Chime struct {
	mu      sync.Mutex
	buffer  *beep.Buffer
	format  beep.Format
	enabled bool
	logger  zerolog.Logger

	open    sync.Once
	openErr error
}

// Decode reads a WAV file fully into memory.
func Decode(data []byte) (*beep.Buffer, beep.Format, error) {
	streamer, format, err := wav.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, beep.Format{}, fmt.Errorf("decode wav: %w", err)
	}
	defer streamer.Close()

	buffer := beep.NewBuffer(format)
	buffer.Append(streamer)
	if err := streamer.Err(); err != nil {
		return nil, beep.Format{}, fmt.Errorf("read wav: %w", err)
	}
	return buffer, format, nil
}

// NewChime decodes data. The speaker is opened at the file's sample rate on
// the first enabled Play.
func NewChime(data []byte, logger zerolog.Logger) (*Chime, error) {
	buffer, format, err := Decode(data)
	if err != nil {
		return nil, err
	}
	return &Chime{
		buffer:  buffer,
		format:  format,
		enabled: true,
		logger:  logger.With().Str("component", "sound").Logger(),
	}, nil
}

// SetEnabled mutes or unmutes the chime.
func (chime *Chime) SetEnabled(enabled bool) {
	chime.mu.Lock()
	defer chime.mu.Unlock()
	chime.enabled = enabled
}

// Play starts the chime without waiting for it to finish.
func (chime *Chime) Play() {
	chime.mu.Lock()
	enabled := chime.enabled
	chime.mu.Unlock()
	if !enabled {
		return
	}
	if err := chime.openSpeaker(); err != nil {
		return
	}
	chime.logger.Debug().Msg("play chime")
	speaker.Play(chime.buffer.Streamer(0, chime.buffer.Len()))
}

// Enabled reports whether Play makes a sound.
func (chime *Chime) Enabled() bool {
	chime.mu.Lock()
	defer chime.mu.Unlock()
	return chime.enabled
}

func (chime *Chime) openSpeaker() error {
	chime.open.Do(func() {
		rate := chime.format.SampleRate
		if err := speaker.Init(rate, rate.N(time.Second/10)); err != nil {
			chime.openErr = fmt.Errorf("init speaker: %w", err)
			chime.logger.Warn().Err(chime.openErr).Msg("chime muted")
		}
	})
	return chime.openErr
}
