package preferences

import (
	"time"

	"pomopet/internal/core/model"
	"pomopet/internal/core/pet"
	"pomopet/internal/core/ticker"
)

// Settings defines editable user preferences.
type Settings struct {
	Work         time.Duration
	Break        time.Duration
	AutoContinue bool

	Pet         string
	SpriteDir   string
	SpriteScale int

	Sound        bool
	Journal      bool
	TickInterval time.Duration
}

// DefaultSettings returns default settings for PomoPet.
func DefaultSettings() Settings {
	return Settings{
		Work:         25 * time.Minute,
		Break:        5 * time.Minute,
		AutoContinue: false,
		Pet:          "Agumon",
		SpriteScale:  2,
		Sound:        true,
		Journal:      true,
		TickInterval: ticker.DefaultInterval,
	}
}

// TimerConfig converts settings to a timer configuration.
func (settings Settings) TimerConfig() model.TimerConfig {
	return model.TimerConfig{
		Work:         settings.Work,
		Break:        settings.Break,
		AutoContinue: settings.AutoContinue,
	}
}

// PetConfig converts settings to a pet configuration for sprites spriteWidth
// pixels wide. Frame timings are kept constant in wall time when the tick
// interval differs from the default.
func (settings Settings) PetConfig(spriteWidth int) model.PetConfig {
	config := pet.DefaultConfig()
	config.Name = settings.Pet
	if spriteWidth > 0 {
		config.SpriteWidth = spriteWidth
	}
	if minimum := config.SpriteWidth + 2*config.Margin; config.AreaWidth < minimum {
		config.AreaWidth = minimum
	}

	interval := settings.TickInterval
	if interval <= 0 || interval == ticker.DefaultInterval {
		return config
	}
	config.WorkTicksPerFrame = rescale(config.WorkTicksPerFrame, interval)
	config.BreakTicksPerFrame = rescale(config.BreakTicksPerFrame, interval)
	return config
}

func rescale(ticks int, interval time.Duration) int {
	scaled := int((time.Duration(ticks)*ticker.DefaultInterval + interval/2) / interval)
	if scaled < 1 {
		return 1
	}
	return scaled
}
