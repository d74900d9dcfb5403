package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"pomopet/internal/platform"
	"pomopet/internal/storage"
	"pomopet/internal/tui"
	"pomopet/internal/ui/preferences"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const tuiLogFile = "pomopet-tui.log"

func runTUI(settings preferences.Settings) error {
	guard, err := platform.AcquireSingleInstance(appName)
	if err != nil {
		return err
	}
	defer func() {
		_ = guard.Release()
	}()

	// The terminal belongs to the UI while it runs.
	logFile, err := openTUILog()
	if err != nil {
		return err
	}
	defer logFile.Close()
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: logFile, NoColor: true})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	s, err := newSession(ctx, settings, clockwork.NewRealClock())
	if err != nil {
		return err
	}
	defer s.close()

	return tui.Run(s.controller, s.settings.TickInterval)
}

func openTUILog() (*os.File, error) {
	dir, err := storage.AppDir(appName)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create app dir: %w", err)
	}
	file, err := os.OpenFile(filepath.Join(dir, tuiLogFile), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open tui log: %w", err)
	}
	return file, nil
}
