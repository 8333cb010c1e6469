package main

import (
	"encoding/json"
	"fmt"
	"io"
	"time"
	"unicode/utf8"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Statusf prints a progress message to stderr unless quiet mode is set.
func (cc *CLIContext) Statusf(format string, args ...any) {
	statusf(cc.Err, cc.Flags.Quiet, format, args...)
}

func statusf(w io.Writer, quiet bool, format string, args ...any) {
	if !quiet {
		fmt.Fprintf(w, format, args...)
	}
}

// Markers for result lines. fatih/color disables itself when stdout is not
// a terminal or NO_COLOR is set.
var (
	successMark = color.New(color.FgGreen, color.Bold).SprintFunc()
	failureMark = color.New(color.FgRed, color.Bold).SprintFunc()
	hintMark    = color.New(color.FgCyan).SprintFunc()
)

// sizePrinter formats byte counts with thousands separators.
var sizePrinter = message.NewPrinter(language.English)

// formatBytes returns an exact size such as "1,048,576 bytes".
func formatBytes(n int64) string {
	return sizePrinter.Sprintf("%d bytes", n)
}

// Size unit constants for human-readable formatting.
const (
	sizeKB = 1024
	sizeMB = 1024 * 1024
	sizeGB = 1024 * 1024 * 1024
	sizeTB = 1024 * 1024 * 1024 * 1024
)

// formatSize returns a human-readable size string (e.g. "1.2 MB").
func formatSize(bytes int64) string {
	switch {
	case bytes >= sizeTB:
		return fmt.Sprintf("%.1f TB", float64(bytes)/float64(sizeTB))
	case bytes >= sizeGB:
		return fmt.Sprintf("%.1f GB", float64(bytes)/float64(sizeGB))
	case bytes >= sizeMB:
		return fmt.Sprintf("%.1f MB", float64(bytes)/float64(sizeMB))
	case bytes >= sizeKB:
		return fmt.Sprintf("%.1f KB", float64(bytes)/float64(sizeKB))
	default:
		return fmt.Sprintf("%d B", bytes)
	}
}

// formatDate returns the local calendar date, or "-" when unknown.
func formatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}

	return t.Local().Format(time.DateOnly)
}

// formatTimestamp returns the local date and time, or "unknown".
func formatTimestamp(t time.Time) string {
	if t.IsZero() {
		return "unknown"
	}

	return t.Local().Format("2006-01-02 15:04:05 MST")
}

// truncate shortens s to at most limit runes, ending in "..." when cut.
func truncate(s string, limit int) string {
	const ellipsis = "..."

	if utf8.RuneCountInString(s) <= limit {
		return s
	}

	runes := []rune(s)

	return string(runes[:limit-len(ellipsis)]) + ellipsis
}

// newTable returns a table writer with truncating left-aligned columns.
func newTable(w io.Writer, columns int) *tablewriter.Table {
	align := make([]tw.Align, columns)
	for i := range align {
		align[i] = tw.AlignLeft
	}

	table := tablewriter.NewWriter(w)
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Formatting.AutoWrap = tw.WrapTruncate
		cfg.Row.Alignment.PerColumn = align
	})

	return table
}

// printJSON writes v as indented JSON.
func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(v)
}
