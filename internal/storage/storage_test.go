package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"pomopet/internal/ui/preferences"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSettingsMissingFileReturnsDefaults(t *testing.T) {
	settings, err := LoadSettingsFile(filepath.Join(t.TempDir(), "absent.yaml"))

	require.NoError(t, err)
	assert.Equal(t, preferences.DefaultSettings(), settings)
}

func TestSaveAndLoadSettings(t *testing.T) {
	path := filepath.Join(t.TempDir(), "PomoPet", settingsFileName)
	settings := preferences.DefaultSettings()
	settings.Work = 40 * time.Minute
	settings.Break = 8 * time.Minute
	settings.AutoContinue = true
	settings.Pet = "Gabumon"
	settings.SpriteScale = 3
	settings.Sound = false

	require.NoError(t, SaveSettingsFile(path, settings))
	loaded, err := LoadSettingsFile(path)

	require.NoError(t, err)
	assert.Equal(t, settings, loaded)
}

func TestLoadSettingsFallsBackOnInvalidValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), settingsFileName)
	content := "work_minutes: -3\nbreak_minutes: 0\nsprite_scale: 99\ntick_interval_ms: 5\npet: \"\"\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	settings, err := LoadSettingsFile(path)

	require.NoError(t, err)
	assert.Equal(t, preferences.DefaultSettings(), settings)
}

func TestLoadSettingsRejectsBrokenYaml(t *testing.T) {
	path := filepath.Join(t.TempDir(), settingsFileName)
	require.NoError(t, os.WriteFile(path, []byte("work_minutes: [\n"), 0o644))

	settings, err := LoadSettingsFile(path)

	assert.Error(t, err)
	assert.Equal(t, preferences.DefaultSettings(), settings)
}

func TestApplyEnvOverrides(t *testing.T) {
	env := map[string]string{
		EnvWorkMinutes:  "50",
		EnvBreakMinutes: "nope",
		EnvPet:          " Patamon ",
		EnvSpriteDir:    "/srv/sprites",
		EnvSound:        "false",
	}
	lookup := func(key string) (string, bool) {
		value, ok := env[key]
		return value, ok
	}

	settings := applyEnv(preferences.DefaultSettings(), lookup)

	assert.Equal(t, 50*time.Minute, settings.Work)
	assert.Equal(t, 5*time.Minute, settings.Break)
	assert.Equal(t, "Patamon", settings.Pet)
	assert.Equal(t, "/srv/sprites", settings.SpriteDir)
	assert.False(t, settings.Sound)
}

func TestLoadEnvFiles(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte(EnvBreakMinutes+"=7\n"), 0o644))
	t.Cleanup(func() { _ = os.Unsetenv(EnvBreakMinutes) })

	require.NoError(t, LoadEnvFiles(path, filepath.Join(t.TempDir(), "missing.env")))

	assert.Equal(t, 7*time.Minute, ApplyEnv(preferences.DefaultSettings()).Break)
}

func TestPaths(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())
	t.Setenv("AppData", t.TempDir())

	dir, err := AppDir("PomoPet")
	require.NoError(t, err)

	journal, err := JournalPath("PomoPet")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, journalFileName), journal)

	root, err := SpriteRoot("PomoPet", "")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, spriteDirName), root)

	root, err = SpriteRoot("PomoPet", "/custom")
	require.NoError(t, err)
	assert.Equal(t, "/custom", root)
}
