// Package ui - Terminal user interface
// Colored CLI output with tables and summary boxes.
package ui

import (
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"
)

// Colors for terminal output
const (
	Reset  = "\033[0m"
	Bold   = "\033[1m"
	Dim    = "\033[2m"
	Red    = "\033[31m"
	Green  = "\033[32m"
	Yellow = "\033[33m"
	Blue   = "\033[34m"
	Cyan   = "\033[36m"
)

// Writer is the UI output destination
type Writer struct {
	out     io.Writer
	noColor bool
}

// NewWriter creates a UI writer
func NewWriter(out io.Writer, noColor bool) *Writer {
	if out == nil {
		out = os.Stdout
	}
	return &Writer{
		out:     out,
		noColor: noColor,
	}
}

// color applies color if enabled
func (w *Writer) color(c, text string) string {
	if w.noColor {
		return text
	}
	return c + text + Reset
}

// Println writes a line with newline
func (w *Writer) Println(format string, args ...interface{}) {
	fmt.Fprintf(w.out, format+"\n", args...)
}

// Header prints a section header
func (w *Writer) Header(title string) {
	w.Println("")
	w.Println("%s", w.color(Bold+Cyan, "━━━ "+title+" ━━━"))
	w.Println("")
}

// SubHeader prints a subsection header
func (w *Writer) SubHeader(title string) {
	w.Println("%s", w.color(Bold, "▸ "+title))
}

// Success prints a success message
func (w *Writer) Success(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	w.Println("%s%s", w.color(Green, "✓ "), msg)
}

// Warning prints a warning
func (w *Writer) Warning(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	w.Println("%s%s", w.color(Yellow, "⚠ "), msg)
}

// Error prints an error
func (w *Writer) Error(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	w.Println("%s%s", w.color(Red, "✗ "), msg)
}

// Info prints an info message
func (w *Writer) Info(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	w.Println("%s%s", w.color(Blue, "ℹ "), msg)
}

// Muted prints dimmed text
func (w *Writer) Muted(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	w.Println("%s", w.color(Dim, msg))
}

// Table renders a table
type Table struct {
	w       *Writer
	headers []string
	rows    [][]string
	widths  []int
	marked  map[int]bool
}

// NewTable creates a table
func (w *Writer) NewTable(headers ...string) *Table {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = utf8.RuneCountInString(h)
	}
	return &Table{
		w:       w,
		headers: headers,
		rows:    [][]string{},
		widths:  widths,
		marked:  map[int]bool{},
	}
}

// AddRow adds a row to the table
func (t *Table) AddRow(cells ...string) {
	// Pad or truncate cells to match header count
	row := make([]string, len(t.headers))
	for i := range row {
		if i < len(cells) {
			row[i] = cells[i]
		}
		if n := utf8.RuneCountInString(row[i]); n > t.widths[i] {
			t.widths[i] = n
		}
	}
	t.rows = append(t.rows, row)
}

// Highlight renders the most recently added row in green
func (t *Table) Highlight() {
	if len(t.rows) > 0 {
		t.marked[len(t.rows)-1] = true
	}
}

// Render prints the table
func (t *Table) Render() {
	t.w.Println("%s", t.w.color(Bold, t.line(t.headers)))

	// Separator
	parts := make([]string, len(t.widths))
	for i, w := range t.widths {
		parts[i] = strings.Repeat("─", w)
	}
	t.w.Println("%s", strings.Join(parts, "─┼─"))

	for i, row := range t.rows {
		line := t.line(row)
		if t.marked[i] {
			line = t.w.color(Green, line)
		}
		t.w.Println("%s", line)
	}
}

func (t *Table) line(cells []string) string {
	padded := make([]string, len(cells))
	for i, cell := range cells {
		padded[i] = cell + strings.Repeat(" ", t.widths[i]-utf8.RuneCountInString(cell))
	}
	return strings.TrimRight(strings.Join(padded, " │ "), " ")
}

// Summary renders the best-option box
type Summary struct {
	w *Writer

	// Option is the name of the cheapest option
	Option string

	// Total is the formatted total cost
	Total string

	// Savings is the formatted saving against metered rates, empty to hide
	Savings string

	// Alerts is the number of trip alerts
	Alerts int

	// Warnings is the number of warnings on the best option
	Warnings int
}

// NewSummary creates a summary box
func (w *Writer) NewSummary() *Summary {
	return &Summary{w: w}
}

// Render prints the summary box
func (s *Summary) Render() {
	const width = 44
	row := func(label, value string) string {
		text := fmt.Sprintf("  %-14s%s", label, value)
		if pad := width - utf8.RuneCountInString(text); pad > 0 {
			text += strings.Repeat(" ", pad)
		}
		return text
	}

	s.w.Println("%s", s.w.color(Bold, "╭"+strings.Repeat("─", width)+"╮"))
	s.w.Println("%s%s%s", s.w.color(Bold, "│"), s.w.color(Green, row("Best option:", s.Option)), s.w.color(Bold, "│"))
	s.w.Println("%s%s%s", s.w.color(Bold, "│"), s.w.color(Green, row("Total:", s.Total)), s.w.color(Bold, "│"))
	if s.Savings != "" {
		s.w.Println("%s%s%s", s.w.color(Bold, "│"), s.w.color(Dim, row("You save:", s.Savings)), s.w.color(Bold, "│"))
	}
	s.w.Println("%s", s.w.color(Bold, "╰"+strings.Repeat("─", width)+"╯"))

	if s.Warnings > 0 {
		s.w.Warning("%d warnings on the best option", s.Warnings)
	}
	if s.Alerts > 0 {
		s.w.Info("%d trip alerts", s.Alerts)
	}
}

// ChangeList shows before/after values side by side
type ChangeList struct {
	w     *Writer
	items []ChangeItem
}

// ChangeItem is a single before/after entry
type ChangeItem struct {
	Label  string
	Before string
	After  string
}

// NewChangeList creates a before/after view
func (w *Writer) NewChangeList() *ChangeList {
	return &ChangeList{w: w}
}

// Add appends an entry
func (c *ChangeList) Add(label, before, after string) {
	c.items = append(c.items, ChangeItem{Label: label, Before: before, After: after})
}

// Render prints the entries, highlighting those that changed
func (c *ChangeList) Render() {
	for _, item := range c.items {
		arrow := c.w.color(Yellow, "→")
		after := item.After
		if item.Before != item.After {
			after = c.w.color(Bold, after)
		}
		c.w.Println("  %-8s %s %s %s", item.Label, item.Before, arrow, after)
	}
}
