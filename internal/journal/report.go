package journal

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"
)

var csvHeader = []string{"id", "pet", "start", "end", "duration_minutes", "outcome"}

// ExportCSV writes entries as CSV with a header row.
func ExportCSV(w io.Writer, entries []Entry) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(csvHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, entry := range entries {
		record := []string{
			entry.ID.String(),
			entry.Pet,
			entry.Start.Format(time.RFC3339),
			entry.End.Format(time.RFC3339),
			strconv.FormatFloat(entry.Duration().Minutes(), 'f', 2, 64),
			string(entry.Outcome),
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("write csv record: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}

// WritePDF renders a work report for the day of now plus all-time totals
// per pet.
func WritePDF(path string, entries []Entry, now time.Time) error {
	today := OnDay(entries, now)
	todaySummary := Summarize(today)

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(40, 10, fmt.Sprintf("Work Report: %s", now.Format("2006-01-02")))
	pdf.Ln(12)

	pdf.SetFont("Arial", "B", 14)
	pdf.Cell(0, 10, "Today")
	pdf.Ln(8)
	pdf.SetFont("Arial", "", 12)
	writeSummary(pdf, todaySummary)

	if len(today) == 0 {
		pdf.Cell(0, 8, "  - No sessions logged today.")
		pdf.Ln(8)
	}
	for _, entry := range today {
		status := "[ ]"
		if entry.Completed() {
			status = "[x]"
		}
		pdf.Cell(0, 8, fmt.Sprintf("  %s %s-%s  %.1f min  %s",
			status,
			entry.Start.In(now.Location()).Format("15:04"),
			entry.End.In(now.Location()).Format("15:04"),
			entry.Duration().Minutes(),
			entry.Pet,
		))
		pdf.Ln(6)
	}
	pdf.Ln(8)

	byPet := ByPet(entries)
	if len(byPet) > 0 {
		pdf.SetFont("Arial", "B", 14)
		pdf.Cell(0, 10, "By Pet")
		pdf.Ln(8)

		names := make([]string, 0, len(byPet))
		for name := range byPet {
			names = append(names, name)
		}
		sort.Strings(names)

		for _, name := range names {
			pdf.SetFont("Arial", "B", 12)
			pdf.Cell(0, 8, name)
			pdf.Ln(6)
			pdf.SetFont("Arial", "", 12)
			writeSummary(pdf, byPet[name])
			pdf.Ln(2)
		}
	}

	if err := pdf.OutputFileAndClose(path); err != nil {
		return fmt.Errorf("write pdf report: %w", err)
	}
	return nil
}

func writeSummary(pdf *fpdf.Fpdf, summary Summary) {
	pdf.Cell(0, 8, fmt.Sprintf("  Work time: %.1f min (%.2f h)", summary.Minutes(), summary.Total.Hours()))
	pdf.Ln(6)
	pdf.Cell(0, 8, fmt.Sprintf("  Sessions: %d completed, %d interrupted", summary.Completed, summary.Interrupted))
	pdf.Ln(6)
	pdf.Cell(0, 8, fmt.Sprintf("  Success rate: %.1f%%", summary.SuccessRate()))
	pdf.Ln(6)
}

// Report renders today's summary followed by per pet totals as plain text.
func Report(entries []Entry, now time.Time) string {
	var builder strings.Builder
	today := Summarize(OnDay(entries, now))
	fmt.Fprintf(&builder, "Today (%s)\n", now.Format("2006-01-02"))
	writeSummaryText(&builder, today)

	byPet := ByPet(entries)
	names := make([]string, 0, len(byPet))
	for name := range byPet {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(&builder, "\n%s\n", name)
		writeSummaryText(&builder, byPet[name])
	}
	return builder.String()
}

func writeSummaryText(w io.Writer, summary Summary) {
	fmt.Fprintf(w, "  work time     %.1f min\n", summary.Minutes())
	fmt.Fprintf(w, "  sessions      %d (%d completed, %d interrupted)\n", summary.Sessions, summary.Completed, summary.Interrupted)
	fmt.Fprintf(w, "  success rate  %.1f%%\n", summary.SuccessRate())
}
