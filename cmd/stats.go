package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"pomopet/internal/journal"
	"pomopet/internal/sprites"
	"pomopet/internal/storage"
	"pomopet/internal/ui/preferences"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
)

func runStats(args []string) error {
	flags := flag.NewFlagSet("stats", flag.ContinueOnError)
	csvPath := flags.String("csv", "", "export sessions as CSV to this file")
	pdfPath := flags.String("pdf", "", "write a PDF report to this file")
	if err := flags.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	journalPath, err := storage.JournalPath(appName)
	if err != nil {
		return err
	}
	sessions, err := journal.Open(journalPath, clockwork.NewRealClock(), log.Logger)
	if err != nil {
		return err
	}
	entries := sessions.Entries()
	now := time.Now()

	fmt.Print(journal.Report(entries, now))

	if *csvPath != "" {
		if err := writeCSV(*csvPath, entries); err != nil {
			return err
		}
		log.Info().Str("path", *csvPath).Int("sessions", len(entries)).Msg("csv exported")
	}
	if *pdfPath != "" {
		if err := journal.WritePDF(*pdfPath, entries, now); err != nil {
			return err
		}
		log.Info().Str("path", *pdfPath).Msg("pdf report written")
	}
	return nil
}

func writeCSV(path string, entries []journal.Entry) (err error) {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv: %w", err)
	}
	defer func() {
		if closeErr := file.Close(); err == nil {
			err = closeErr
		}
	}()
	return journal.ExportCSV(file, entries)
}

func runImport(settings preferences.Settings, args []string) error {
	if len(args) != 1 {
		return errors.New("import needs exactly one zip file")
	}
	root, err := storage.SpriteRoot(appName, settings.SpriteDir)
	if err != nil {
		return err
	}
	name, err := sprites.Import(args[0], root)
	if err != nil {
		return err
	}
	log.Info().Str("pet", name).Str("root", root).Msg("sprite pack imported")
	return nil
}
