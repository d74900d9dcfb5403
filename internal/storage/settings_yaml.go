package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"pomopet/internal/ui/preferences"

	"gopkg.in/yaml.v3"
)

const settingsFileName = "settings.yaml"

type yamlSettings struct {
	WorkMinutes    int    `yaml:"work_minutes"`
	BreakMinutes   int    `yaml:"break_minutes"`
	AutoContinue   bool   `yaml:"auto_continue"`
	Pet            string `yaml:"pet"`
	SpriteDir      string `yaml:"sprite_dir,omitempty"`
	SpriteScale    int    `yaml:"sprite_scale"`
	Sound          *bool  `yaml:"sound"`
	Journal        *bool  `yaml:"journal"`
	TickIntervalMs int    `yaml:"tick_interval_ms"`
}

// LoadSettings reads user preferences from YAML in the user config directory.
// If the config file does not exist, default settings are returned.
func LoadSettings(appName string) (preferences.Settings, error) {
	configPath, err := resolveConfigPath(appName)
	if err != nil {
		return preferences.DefaultSettings(), err
	}
	return LoadSettingsFile(configPath)
}

// LoadSettingsFile reads user preferences from the YAML file at configPath.
func LoadSettingsFile(configPath string) (preferences.Settings, error) {
	settings := preferences.DefaultSettings()

	rawData, err := os.ReadFile(configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return settings, nil
		}
		return settings, fmt.Errorf("read settings file: %w", err)
	}

	var fileData yamlSettings
	if err := yaml.Unmarshal(rawData, &fileData); err != nil {
		return settings, fmt.Errorf("parse settings yaml: %w", err)
	}

	applyYamlSettings(&settings, fileData)
	return settings, nil
}

// SaveSettings writes user preferences to YAML in the user config directory.
func SaveSettings(appName string, settings preferences.Settings) error {
	configPath, err := resolveConfigPath(appName)
	if err != nil {
		return err
	}
	return SaveSettingsFile(configPath, settings)
}

// SaveSettingsFile writes user preferences to the YAML file at configPath.
func SaveSettingsFile(configPath string, settings preferences.Settings) error {
	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	sound := settings.Sound
	journal := settings.Journal
	fileData := yamlSettings{
		WorkMinutes:    int(settings.Work / time.Minute),
		BreakMinutes:   int(settings.Break / time.Minute),
		AutoContinue:   settings.AutoContinue,
		Pet:            settings.Pet,
		SpriteDir:      settings.SpriteDir,
		SpriteScale:    settings.SpriteScale,
		Sound:          &sound,
		Journal:        &journal,
		TickIntervalMs: int(settings.TickInterval / time.Millisecond),
	}

	serialized, err := yaml.Marshal(fileData)
	if err != nil {
		return fmt.Errorf("marshal settings yaml: %w", err)
	}

	if err := os.WriteFile(configPath, serialized, 0o644); err != nil {
		return fmt.Errorf("write settings file: %w", err)
	}

	return nil
}

func resolveConfigPath(appName string) (string, error) {
	configDir, err := AppDir(appName)
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, settingsFileName), nil
}

func applyYamlSettings(settings *preferences.Settings, fileData yamlSettings) {
	if fileData.WorkMinutes > 0 {
		settings.Work = time.Duration(fileData.WorkMinutes) * time.Minute
	}
	if fileData.BreakMinutes > 0 {
		settings.Break = time.Duration(fileData.BreakMinutes) * time.Minute
	}
	if fileData.Pet != "" {
		settings.Pet = fileData.Pet
	}
	if fileData.SpriteScale >= 1 && fileData.SpriteScale <= 8 {
		settings.SpriteScale = fileData.SpriteScale
	}
	if fileData.TickIntervalMs >= 10 && fileData.TickIntervalMs <= 1000 {
		settings.TickInterval = time.Duration(fileData.TickIntervalMs) * time.Millisecond
	}
	if fileData.Sound != nil {
		settings.Sound = *fileData.Sound
	}
	if fileData.Journal != nil {
		settings.Journal = *fileData.Journal
	}

	settings.AutoContinue = fileData.AutoContinue
	settings.SpriteDir = fileData.SpriteDir
}
