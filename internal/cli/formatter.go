package cli

import (
	"bufio"
	"cmp"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/idelchi/fssummary/internal/summary"
)

// PrintJSON outputs a report in JSON format.
func PrintJSON(report *summary.Report, writer io.Writer) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding JSON output: %w", err)
	}

	if _, err := fmt.Fprintln(writer, string(data)); err != nil {
		return err
	}

	return nil
}

// PrintTable outputs a report as markdown-style sections with fixed-width columns.
//
//nolint:forbidigo // This function prints output to the console.
func PrintTable(report *summary.Report, writer io.Writer) error {
	w := bufio.NewWriter(writer)

	fmt.Fprint(w, "\n# Scan summary\n\n")
	fmt.Fprintf(w, "Run on: %s\n", report.RunOn.Format("2006-01-02"))
	fmt.Fprintf(w, "Paths scanned: %s\n", quotedList(report.Paths))
	fmt.Fprintf(w, "Dirs scanned: %d\n", report.Dirs)
	fmt.Fprintf(w, "Files included: %d  (total %.1fGB)\n", report.Files, float64(report.Bytes)/summary.GB)
	fmt.Fprintf(w, "File ignored: %d  (patterns ignored %s)\n", report.Ignored, quotedList(report.IgnorePatterns))

	if report.Errors > 0 {
		fmt.Fprintf(w, "Entries skipped: %d  (unreadable)\n", report.Errors)
	}

	fmt.Fprint(w, "\n## File sizes (count)\n\n")
	printSection(w, "filesize(MB)", "num_files", report.SizeCount, sizeKey)

	fmt.Fprint(w, "\n## File sizes (storage)\n\n")
	printSection(w, "filesize(MB)", "storage(MB)", report.SizeStorage, sizeKey)

	fmt.Fprint(w, "\n## Files by year (count)\n\n")
	printSection(w, "year", "num_files", report.YearCount, yearKey)

	fmt.Fprint(w, "\n## File by year (storage)\n\n")
	printSection(w, "year", "storage(MB)", report.YearStorage, yearKey)

	return w.Flush()
}

func sizeKey(k int64) string { return fmt.Sprintf("%-16d", k) }

func yearKey(k string) string { return fmt.Sprintf("%-16s", k) }

// printSection writes a header row and one row per bin, values rounded half up.
func printSection[K cmp.Ordered, V summary.Value](
	w io.Writer,
	keyHeader, valueHeader string,
	entries []summary.Entry[K, V],
	key func(K) string,
) {
	fmt.Fprintf(w, "%-16s %-8s\n", "#"+keyHeader, valueHeader)

	for _, e := range entries {
		fmt.Fprintf(w, "%s %-8d\n", key(e.Key), int64(float64(e.Value)+0.5))
	}
}

// quotedList renders names as a bracketed, comma-separated list of quoted strings,
// e.g. ['a', 'b'].
func quotedList(items []string) string {
	quoted := make([]string, len(items))
	for i, item := range items {
		quoted[i] = quote(item)
	}

	return "[" + strings.Join(quoted, ", ") + "]"
}

// quote wraps s in single quotes, switching to double quotes when s contains
// a single quote but no double quote.
func quote(s string) string {
	q := byte('\'')
	if strings.Contains(s, "'") && !strings.Contains(s, `"`) {
		q = '"'
	}

	var b strings.Builder

	b.WriteByte(q)

	for _, r := range s {
		switch {
		case r == '\\':
			b.WriteString(`\\`)
		case r == rune(q):
			b.WriteByte('\\')
			b.WriteRune(r)
		case r == '\n':
			b.WriteString(`\n`)
		case r == '\r':
			b.WriteString(`\r`)
		case r == '\t':
			b.WriteString(`\t`)
		default:
			b.WriteRune(r)
		}
	}

	b.WriteByte(q)

	return b.String()
}
