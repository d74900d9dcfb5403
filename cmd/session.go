package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"sort"

	"pomopet/internal/core/controller"
	"pomopet/internal/core/pet"
	"pomopet/internal/core/timer"
	"pomopet/internal/journal"
	"pomopet/internal/sprites"
	"pomopet/internal/storage"
	"pomopet/internal/ui/preferences"
	"pomopet/internal/ui/sound"
	"pomopet/resources"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
)

// session wires the timer, pet, chime and journal shared by both frontends.
type session struct {
	settings   preferences.Settings
	spriteRoot string
	sprites    *sprites.Set
	timer      *timer.Timer
	controller *controller.Controller
	chime      *sound.Chime
	journal    *journal.Journal
	recorded   chan struct{}
}

func newSession(ctx context.Context, settings preferences.Settings, clock clockwork.Clock) (*session, error) {
	spriteRoot, err := storage.SpriteRoot(appName, settings.SpriteDir)
	if err != nil {
		return nil, err
	}
	set, err := loadSprites(spriteRoot, settings.Pet, settings.SpriteScale)
	if err != nil {
		return nil, err
	}

	pomodoro := timer.New(settings.TimerConfig(), clock)
	width, _ := set.Size()
	companion := pet.New(settings.PetConfig(width), nil)

	s := &session{
		settings:   settings,
		spriteRoot: spriteRoot,
		sprites:    set,
		timer:      pomodoro,
	}

	var chime controller.Chime
	if s.chime = newChime(); s.chime != nil {
		s.chime.SetEnabled(settings.Sound)
		chime = s.chime
	}
	s.controller = controller.New(pomodoro, companion, chime, log.Logger)

	if settings.Journal {
		if err := s.startJournal(ctx, clock); err != nil {
			log.Error().Err(err).Msg("session journal disabled")
		}
	}
	return s, nil
}

func (s *session) startJournal(ctx context.Context, clock clockwork.Clock) error {
	journalPath, err := storage.JournalPath(appName)
	if err != nil {
		return err
	}
	sessions, err := journal.Open(journalPath, clock, log.Logger)
	if err != nil {
		return err
	}
	sessions.SetPet(s.settings.Pet)
	s.journal = sessions
	s.recorded = make(chan struct{})

	events := s.timer.Subscribe(32)
	go func() {
		defer close(s.recorded)
		sessions.Record(ctx, events)
	}()
	return nil
}

// apply switches to updated settings. Only the pet and sprite scale can fail.
func (s *session) apply(updated preferences.Settings) error {
	s.controller.Configure(updated.TimerConfig())
	if s.chime != nil {
		s.chime.SetEnabled(updated.Sound)
	}

	if updated.Pet != s.settings.Pet || updated.SpriteScale != s.settings.SpriteScale {
		set, err := loadSprites(s.spriteRoot, updated.Pet, updated.SpriteScale)
		if err != nil {
			updated.Pet = s.settings.Pet
			updated.SpriteScale = s.settings.SpriteScale
			s.settings = updated
			return err
		}
		width, _ := set.Size()
		s.sprites = set
		s.controller.SetPet(pet.New(updated.PetConfig(width), nil))
		if s.journal != nil {
			s.journal.SetPet(updated.Pet)
		}
	}
	s.settings = updated
	return nil
}

func (s *session) petNames() []string {
	return petNames(s.spriteRoot)
}

// close stops the timer observers and waits for the journal to flush.
func (s *session) close() {
	s.timer.Close()
	if s.recorded != nil {
		<-s.recorded
	}
}

func newChime() *sound.Chime {
	data, err := resources.Sound("chime.wav")
	if err != nil {
		log.Warn().Err(err).Msg("chime unavailable")
		return nil
	}
	chime, err := sound.NewChime(data, log.Logger)
	if err != nil {
		log.Warn().Err(err).Msg("chime unavailable")
		return nil
	}
	return chime
}

// loadSprites prefers an installed set under root and falls back to the
// bundled pet.
func loadSprites(root, name string, scale int) (*sprites.Set, error) {
	set, err := sprites.Load(os.DirFS(root), name, scale)
	if err == nil {
		return set, nil
	}
	if name != resources.DefaultPet {
		return nil, fmt.Errorf("load pet %s from %s: %w", name, root, err)
	}
	if !errors.Is(err, sprites.ErrMissingFrame) {
		log.Warn().Err(err).Msg("installed sprites unreadable, using bundled set")
	}
	set, err = sprites.Load(resources.Sprites(), path.Join(resources.SpriteRoot, name), scale)
	if err != nil {
		return nil, fmt.Errorf("load bundled pet %s: %w", name, err)
	}
	return set, nil
}

func petNames(root string) []string {
	names, err := sprites.Available(root)
	if err != nil {
		log.Warn().Err(err).Msg("list sprite sets")
	}
	for _, name := range names {
		if name == resources.DefaultPet {
			return names
		}
	}
	names = append(names, resources.DefaultPet)
	sort.Strings(names)
	return names
}
