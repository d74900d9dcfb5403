package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"pomopet/internal/platform"
	"pomopet/internal/storage"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	appName = "PomoPet"
	appID   = "com.pomopet.app"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	if err := storage.LoadEnvFiles(); err != nil {
		log.Warn().Err(err).Msg("could not load .env file")
	}

	debug := flag.Bool("debug", false, "enable debug logging")
	flag.Usage = usage
	flag.Parse()
	if *debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	settings, err := storage.LoadSettings(appName)
	if err != nil {
		log.Warn().Err(err).Msg("using default settings")
	}
	settings = storage.ApplyEnv(settings)

	command := "gui"
	args := flag.Args()
	if len(args) > 0 {
		command, args = args[0], args[1:]
	}

	switch command {
	case "gui":
		err = runGUI(settings)
	case "tui":
		err = runTUI(settings)
	case "stats":
		err = runStats(args)
	case "import":
		err = runImport(settings, args)
	default:
		flag.Usage()
		os.Exit(2)
	}
	if isAlreadyRunning(err) {
		log.Info().Msg("pomopet is already running")
		return
	}
	if err != nil {
		log.Fatal().Err(err).Str("command", command).Msg("pomopet failed")
	}
}

func usage() {
	out := flag.CommandLine.Output()
	fmt.Fprintf(out, "Usage: pomopet [-debug] [command]\n\n")
	fmt.Fprintf(out, "Commands:\n")
	fmt.Fprintf(out, "  gui                        open the timer window (default)\n")
	fmt.Fprintf(out, "  tui                        run the timer in the terminal\n")
	fmt.Fprintf(out, "  stats [-csv f] [-pdf f]    print work statistics, optionally exporting them\n")
	fmt.Fprintf(out, "  import <pack.zip>          install a 12-frame sprite pack\n\n")
	flag.PrintDefaults()
}

func isAlreadyRunning(err error) bool {
	return errors.Is(err, platform.ErrAlreadyRunning)
}
