package main

import (
	"context"
	"fmt"
	"time"

	"pomopet/internal/core/controller"
	"pomopet/internal/core/ticker"
	"pomopet/internal/core/timer"
	"pomopet/internal/journal"
	"pomopet/internal/platform"
	"pomopet/internal/sprites"
	"pomopet/internal/storage"
	"pomopet/internal/ui/pomodoro"
	"pomopet/internal/ui/preferences"
	"pomopet/internal/ui/tray"
	"pomopet/resources"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/driver/desktop"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
)

func runGUI(settings preferences.Settings) error {
	guard, err := platform.AcquireSingleInstance(appName)
	if err != nil {
		return err
	}
	defer func() {
		_ = guard.Release()
	}()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	s, err := newSession(ctx, settings, clockwork.NewRealClock())
	if err != nil {
		return err
	}
	defer s.close()

	fyneApp := app.NewWithID(appID)
	fyneApp.SetIcon(resources.MustLogo("work.png"))

	timerWindow := pomodoro.New(fyneApp, s.controller, s.sprites)
	s.controller.OnPhaseChange(func(transition timer.Transition) {
		timerWindow.Flash()
		fyneApp.SendNotification(phaseNotification(transition, s.settings.Pet))
	})
	s.controller.OnQuit(fyneApp.Quit)
	timerWindow.Window().SetCloseIntercept(func() {
		s.controller.Dispatch(controller.CommandQuit)
	})

	prefsWindow := preferences.New(fyneApp, settings, s.petNames(), func(updated preferences.Settings) {
		if err := s.apply(updated); err != nil {
			log.Error().Err(err).Str("pet", updated.Pet).Msg("switch pet")
			timerWindow.ShowError(err)
		} else {
			timerWindow.SetSprites(s.sprites)
		}
		if err := storage.SaveSettings(appName, s.settings); err != nil {
			log.Error().Err(err).Msg("save settings")
			timerWindow.ShowError(err)
		}
		timerWindow.Render()
	})

	showStats := func() {
		if s.journal == nil {
			timerWindow.ShowText("Statistics", "The session journal is disabled.")
			return
		}
		timerWindow.ShowText("Statistics", journal.Report(s.journal.Entries(), time.Now()))
	}
	importPack := func() {
		timerWindow.ChooseSpritePack(func(zipPath string) {
			name, err := sprites.Import(zipPath, s.spriteRoot)
			if err != nil {
				log.Error().Err(err).Str("pack", zipPath).Msg("import sprite pack")
				timerWindow.ShowError(err)
				return
			}
			log.Info().Str("pet", name).Msg("sprite pack imported")
			prefsWindow.SetPets(s.petNames())
			timerWindow.ShowText("Import", fmt.Sprintf("%s is ready. Pick it in Preferences.", name))
		})
	}

	var trayManager *tray.Manager
	if desktopApp, ok := fyneApp.(desktop.App); ok {
		dispatch := func(command controller.Command) func() {
			return func() {
				s.controller.Dispatch(command)
				timerWindow.Render()
			}
		}
		trayManager = tray.New(desktopApp, tray.Icons{
			Work:   resources.MustLogo("work.png"),
			Break:  resources.MustLogo("break.png"),
			Paused: resources.MustLogo("paused.png"),
		}, tray.Callbacks{
			OnShow:        timerWindow.Show,
			OnToggle:      dispatch(controller.CommandToggle),
			OnReset:       dispatch(controller.CommandReset),
			OnSkip:        dispatch(controller.CommandSkip),
			OnPreferences: prefsWindow.Show,
			OnStats:       showStats,
			OnImport:      importPack,
			OnQuit:        dispatch(controller.CommandQuit),
		})
		desktopApp.SetSystemTrayWindow(timerWindow.Window())
	} else {
		log.Info().Msg("system tray unsupported on this platform")
	}

	loop := ticker.New(nil, s.settings.TickInterval, fyne.Do, func(elapsed time.Duration) {
		s.controller.Tick(elapsed)
		timerWindow.Render()
		if trayManager != nil {
			state := s.controller.Snapshot().Timer
			trayManager.Update(timer.FormatRemaining(state.Remaining), state.Running, state.Phase == timer.PhaseBreak)
		}
	})
	loopCtx, stopLoop := context.WithCancel(ctx)
	go loop.Run(loopCtx)

	log.Info().Str("pet", s.settings.Pet).Dur("work", s.settings.Work).Dur("break", s.settings.Break).Msg("pomopet started")
	timerWindow.Show()
	fyneApp.Run()
	stopLoop()
	return nil
}

func phaseNotification(transition timer.Transition, pet string) *fyne.Notification {
	if transition.From == timer.PhaseWork {
		return fyne.NewNotification("Work Session Complete!",
			fmt.Sprintf("Time for a break! Your %s is relaxing.", pet))
	}
	return fyne.NewNotification("Break Time Over!",
		fmt.Sprintf("Time to get back to work! Your %s is ready to train.", pet))
}
