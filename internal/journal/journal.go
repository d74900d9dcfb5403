package journal

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"pomopet/internal/core/timer"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"
)

// Journal appends finished work sessions to a plain text file.
// It is safe for concurrent use.
type Journal struct {
	mu      sync.Mutex
	path    string
	clock   clockwork.Clock
	logger  zerolog.Logger
	pet     string
	entries []Entry
	active  *Entry
}

// Open loads the journal at path. A missing file is an empty journal.
// Lines that cannot be parsed are skipped with a warning.
func Open(path string, clock clockwork.Clock, logger zerolog.Logger) (*Journal, error) {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	journal := &Journal{
		path:   path,
		clock:  clock,
		logger: logger.With().Str("component", "journal").Logger(),
	}
	if err := journal.load(); err != nil {
		return nil, err
	}
	return journal, nil
}

func (journal *Journal) load() error {
	file, err := os.Open(journal.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("open journal: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	lineNumber := 0
	for scanner.Scan() {
		lineNumber++
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		entry, err := ParseEntry(line)
		if err != nil {
			journal.logger.Warn().Err(err).Int("line", lineNumber).Msg("skip journal line")
			continue
		}
		journal.entries = append(journal.entries, entry)
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read journal: %w", err)
	}
	return nil
}

// Path returns the journal file path.
func (journal *Journal) Path() string {
	return journal.path
}

// SetPet sets the pet name recorded with new sessions.
func (journal *Journal) SetPet(name string) {
	journal.mu.Lock()
	defer journal.mu.Unlock()
	journal.pet = name
}

// Begin opens a session at the given time. It reports false if one is
// already open.
func (journal *Journal) Begin(at time.Time) bool {
	journal.mu.Lock()
	defer journal.mu.Unlock()

	if journal.active != nil {
		return false
	}
	journal.active = &Entry{
		ID:    uuid.New(),
		Pet:   journal.pet,
		Start: at,
	}
	journal.logger.Debug().Str("id", journal.active.ID.String()).Msg("session started")
	return true
}

// Active reports whether a session is open.
func (journal *Journal) Active() bool {
	journal.mu.Lock()
	defer journal.mu.Unlock()
	return journal.active != nil
}

// End closes the open session and appends it to the file. It reports false
// when no session was open.
func (journal *Journal) End(at time.Time, outcome Outcome) (Entry, bool, error) {
	journal.mu.Lock()
	defer journal.mu.Unlock()

	if journal.active == nil {
		return Entry{}, false, nil
	}
	entry := *journal.active
	entry.End = at
	entry.Outcome = outcome
	journal.active = nil
	journal.entries = append(journal.entries, entry)

	journal.logger.Info().
		Str("id", entry.ID.String()).
		Str("outcome", string(outcome)).
		Dur("duration", entry.Duration()).
		Msg("session ended")

	if err := journal.append(entry); err != nil {
		return entry, true, err
	}
	return entry, true, nil
}

func (journal *Journal) append(entry Entry) error {
	if err := os.MkdirAll(filepath.Dir(journal.path), 0o755); err != nil {
		return fmt.Errorf("create journal directory: %w", err)
	}
	file, err := os.OpenFile(journal.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open journal: %w", err)
	}
	if _, err := fmt.Fprintln(file, entry.String()); err != nil {
		_ = file.Close()
		return fmt.Errorf("write journal: %w", err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("close journal: %w", err)
	}
	return nil
}

// Entries returns a copy of all finished sessions in file order.
func (journal *Journal) Entries() []Entry {
	journal.mu.Lock()
	defer journal.mu.Unlock()
	entries := make([]Entry, len(journal.entries))
	copy(entries, journal.entries)
	return entries
}

// Today summarizes the sessions that started on now's day.
func (journal *Journal) Today(now time.Time) Summary {
	return Summarize(OnDay(journal.Entries(), now))
}

// ByPet summarizes all sessions per pet.
func (journal *Journal) ByPet() map[string]Summary {
	return ByPet(journal.Entries())
}

// Record consumes timer events until the channel closes or ctx is done,
// opening and closing work sessions. An open session is recorded as
// interrupted on exit.
func (journal *Journal) Record(ctx context.Context, events <-chan timer.Event) {
	defer func() {
		journal.finish(journal.clock.Now(), OutcomeInterrupted)
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-events:
			if !ok {
				return
			}
			journal.handle(event)
		}
	}
}

func (journal *Journal) handle(event timer.Event) {
	switch event.Type {
	case timer.EventStarted:
		if event.Phase == timer.PhaseWork {
			journal.Begin(event.At)
		}
	case timer.EventPaused:
		if event.Phase == timer.PhaseWork {
			journal.finish(event.At, OutcomeInterrupted)
		}
	case timer.EventPhaseChange:
		if event.Previous == timer.PhaseWork {
			journal.finish(event.At, OutcomeCompleted)
		}
		if event.Phase == timer.PhaseWork && event.Running {
			journal.Begin(event.At)
		}
	case timer.EventReset, timer.EventSkipped:
		if event.Previous == timer.PhaseWork {
			journal.finish(event.At, OutcomeInterrupted)
		}
		if event.Phase == timer.PhaseWork && event.Running {
			journal.Begin(event.At)
		}
	}
}

func (journal *Journal) finish(at time.Time, outcome Outcome) {
	if _, _, err := journal.End(at, outcome); err != nil {
		journal.logger.Error().Err(err).Msg("write journal entry")
	}
}
