package journal

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ErrMalformedEntry is returned for journal lines that cannot be parsed.
var ErrMalformedEntry = errors.New("malformed journal entry")

// Outcome records how a work session ended.
type Outcome string

const (
	OutcomeCompleted   Outcome = "completed"
	OutcomeInterrupted Outcome = "interrupted"
)

// Entry is one finished work session.
type Entry struct {
	ID      uuid.UUID
	Pet     string
	Start   time.Time
	End     time.Time
	Outcome Outcome
}

// Duration returns the wall time of the session.
func (entry Entry) Duration() time.Duration {
	if entry.End.Before(entry.Start) {
		return 0
	}
	return entry.End.Sub(entry.Start)
}

// Completed reports whether the session ran to the end of the work phase.
func (entry Entry) Completed() bool {
	return entry.Outcome == OutcomeCompleted
}

// String renders the entry as one tab separated journal line without the
// trailing newline.
func (entry Entry) String() string {
	return strings.Join([]string{
		entry.ID.String(),
		sanitize(entry.Pet),
		entry.Start.Format(time.RFC3339),
		entry.End.Format(time.RFC3339),
		strconv.FormatInt(int64(entry.Duration()/time.Second), 10),
		string(entry.Outcome),
	}, "\t")
}

// ParseEntry parses a line written by Entry.String.
func ParseEntry(line string) (Entry, error) {
	fields := strings.Split(strings.TrimRight(line, "\r\n"), "\t")
	if len(fields) != 6 {
		return Entry{}, fmt.Errorf("expected 6 fields, got %d: %w", len(fields), ErrMalformedEntry)
	}

	id, err := uuid.Parse(fields[0])
	if err != nil {
		return Entry{}, fmt.Errorf("parse id %q: %w", fields[0], ErrMalformedEntry)
	}
	start, err := time.Parse(time.RFC3339, fields[2])
	if err != nil {
		return Entry{}, fmt.Errorf("parse start %q: %w", fields[2], ErrMalformedEntry)
	}
	end, err := time.Parse(time.RFC3339, fields[3])
	if err != nil {
		return Entry{}, fmt.Errorf("parse end %q: %w", fields[3], ErrMalformedEntry)
	}
	if _, err := strconv.ParseInt(fields[4], 10, 64); err != nil {
		return Entry{}, fmt.Errorf("parse duration %q: %w", fields[4], ErrMalformedEntry)
	}

	outcome := Outcome(fields[5])
	if outcome != OutcomeCompleted && outcome != OutcomeInterrupted {
		return Entry{}, fmt.Errorf("unknown outcome %q: %w", fields[5], ErrMalformedEntry)
	}

	return Entry{
		ID:      id,
		Pet:     fields[1],
		Start:   start,
		End:     end,
		Outcome: outcome,
	}, nil
}

func sanitize(value string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '\t', '\n', '\r':
			return ' '
		}
		return r
	}, value)
}

// Summary aggregates a set of entries.
type Summary struct {
	Sessions    int
	Completed   int
	Interrupted int
	Total       time.Duration
}

func (summary *Summary) add(entry Entry) {
	summary.Sessions++
	summary.Total += entry.Duration()
	if entry.Completed() {
		summary.Completed++
		return
	}
	summary.Interrupted++
}

// Minutes returns the total work time in minutes.
func (summary Summary) Minutes() float64 {
	return summary.Total.Minutes()
}

// SuccessRate returns the share of completed sessions as a percentage.
func (summary Summary) SuccessRate() float64 {
	if summary.Sessions == 0 {
		return 0
	}
	return float64(summary.Completed) / float64(summary.Sessions) * 100
}

// Summarize totals entries.
func Summarize(entries []Entry) Summary {
	var summary Summary
	for _, entry := range entries {
		summary.add(entry)
	}
	return summary
}

// ByPet totals entries per pet name.
func ByPet(entries []Entry) map[string]Summary {
	result := make(map[string]Summary)
	for _, entry := range entries {
		name := entry.Pet
		if name == "" {
			name = "Unknown"
		}
		summary := result[name]
		summary.add(entry)
		result[name] = summary
	}
	return result
}

// OnDay returns the entries that started on the same local day as day.
func OnDay(entries []Entry, day time.Time) []Entry {
	year, month, date := day.Date()
	var result []Entry
	for _, entry := range entries {
		startYear, startMonth, startDate := entry.Start.In(day.Location()).Date()
		if startYear == year && startMonth == month && startDate == date {
			result = append(result, entry)
		}
	}
	return result
}
