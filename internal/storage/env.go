package storage

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"pomopet/internal/ui/preferences"

	"github.com/joho/godotenv"
)

// Environment variables that override the settings file.
const (
	EnvWorkMinutes  = "POMOPET_WORK_MINUTES"
	EnvBreakMinutes = "POMOPET_BREAK_MINUTES"
	EnvPet          = "POMOPET_PET"
	EnvSpriteDir    = "POMOPET_SPRITE_DIR"
	EnvSound        = "POMOPET_SOUND"
)

// LoadEnvFiles loads variables from the given .env files (".env" when none
// are named) without overriding the process environment. Missing files are
// ignored.
func LoadEnvFiles(fileNames ...string) error {
	if len(fileNames) == 0 {
		fileNames = []string{".env"}
	}
	for _, fileName := range fileNames {
		if err := godotenv.Load(fileName); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("load env file %s: %w", fileName, err)
		}
	}
	return nil
}

// ApplyEnv overrides settings from the process environment. Invalid values
// are ignored.
func ApplyEnv(settings preferences.Settings) preferences.Settings {
	return applyEnv(settings, os.LookupEnv)
}

func applyEnv(settings preferences.Settings, lookup func(string) (string, bool)) preferences.Settings {
	if minutes, ok := envPositiveInt(lookup, EnvWorkMinutes); ok {
		settings.Work = time.Duration(minutes) * time.Minute
	}
	if minutes, ok := envPositiveInt(lookup, EnvBreakMinutes); ok {
		settings.Break = time.Duration(minutes) * time.Minute
	}
	if value, ok := lookup(EnvPet); ok && strings.TrimSpace(value) != "" {
		settings.Pet = strings.TrimSpace(value)
	}
	if value, ok := lookup(EnvSpriteDir); ok && strings.TrimSpace(value) != "" {
		settings.SpriteDir = strings.TrimSpace(value)
	}
	if value, ok := lookup(EnvSound); ok {
		if enabled, err := strconv.ParseBool(strings.TrimSpace(value)); err == nil {
			settings.Sound = enabled
		}
	}
	return settings
}

func envPositiveInt(lookup func(string) (string, bool), key string) (int, bool) {
	value, ok := lookup(key)
	if !ok {
		return 0, false
	}
	parsed, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || parsed <= 0 {
		return 0, false
	}
	return parsed, true
}
