package main

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"pomopet/internal/core/controller"
	"pomopet/internal/sprites"
	"pomopet/internal/ui/preferences"
	"pomopet/resources"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSpritesFallsBackToBundledPet(t *testing.T) {
	set, err := loadSprites(t.TempDir(), resources.DefaultPet, 1)

	require.NoError(t, err)
	assert.Equal(t, resources.DefaultPet, set.Name())
}

func TestLoadSpritesUnknownPet(t *testing.T) {
	_, err := loadSprites(t.TempDir(), "Gabumon", 1)

	assert.True(t, errors.Is(err, sprites.ErrMissingFrame))
}

func TestPetNamesAlwaysListsBundledPet(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "Gabumon"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "Gabumon", "0.png"), []byte("png"), 0o644))

	assert.Equal(t, []string{resources.DefaultPet, "Gabumon"}, petNames(root))
	assert.Equal(t, []string{resources.DefaultPet}, petNames(filepath.Join(root, "missing")))
}

func testSettings(t *testing.T) preferences.Settings {
	t.Helper()
	settings := preferences.DefaultSettings()
	settings.SpriteDir = t.TempDir()
	settings.SpriteScale = 1
	settings.Journal = false
	settings.Sound = false
	return settings
}

func TestSessionApplyKeepsPetOnFailure(t *testing.T) {
	s, err := newSession(context.Background(), testSettings(t), clockwork.NewFakeClock())
	require.NoError(t, err)
	defer s.close()

	updated := s.settings
	updated.Pet = "Gabumon"
	updated.Work = 10 * time.Minute

	err = s.apply(updated)

	require.Error(t, err)
	assert.Equal(t, resources.DefaultPet, s.settings.Pet)
	assert.Equal(t, 10*time.Minute, s.settings.Work)
	assert.Equal(t, 10*time.Minute, s.controller.Snapshot().Timer.Remaining)
}

func TestSessionApplyRescalesSprites(t *testing.T) {
	s, err := newSession(context.Background(), testSettings(t), clockwork.NewFakeClock())
	require.NoError(t, err)
	defer s.close()
	width, _ := s.sprites.Size()

	updated := s.settings
	updated.SpriteScale = 2
	require.NoError(t, s.apply(updated))

	scaled, _ := s.sprites.Size()
	assert.Equal(t, 2*width, scaled)
	assert.Equal(t, resources.DefaultPet, s.controller.Snapshot().PetName)
}

func TestSessionJournalRecordsWork(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	settings := testSettings(t)
	settings.Journal = true
	settings.Work = time.Minute
	clock := clockwork.NewFakeClock()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	s, err := newSession(ctx, settings, clock)
	require.NoError(t, err)
	require.NotNil(t, s.journal)

	s.controller.Dispatch(controller.CommandStart)
	s.controller.Tick(time.Minute)
	s.close()

	entries := s.journal.Entries()
	require.Len(t, entries, 1)
	assert.True(t, entries[0].Completed())
}
