package errors

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
)

type ansi string

const (
	ansiReset ansi = "\033[0m"
	ansiRed   ansi = "\033[31m"
	ansiCyan  ansi = "\033[36m"
	ansiWhite ansi = "\033[37m"
	ansiGray  ansi = "\033[90m"
	ansiBold  ansi = "\033[1m"
)

var colorEnabled = true

// DisableColors turns off ANSI styling in Format and PrintError.
func DisableColors() { colorEnabled = false }

// EnableColors turns ANSI styling back on.
func EnableColors() { colorEnabled = true }

func paint(s ansi, text string) string {
	if !colorEnabled {
		return text
	}
	return string(s) + text + string(ansiReset)
}

func red(text string) string   { return paint(ansiRed, text) }
func cyan(text string) string  { return paint(ansiCyan, text) }
func white(text string) string { return paint(ansiWhite, text) }
func gray(text string) string  { return paint(ansiGray, text) }
func bold(text string) string  { return paint(ansiBold, text) }

// Format renders the error for a terminal: header, location with source
// context, detail, hint and cause.
func (e *BacktensionError) Format() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(red(bold("ERROR")))
	if e.Code != "" {
		b.WriteString(" " + white(bold(e.Code)))
	}
	b.WriteString(white(bold(": ")) + white(e.Message) + "\n\n")

	if e.Location != nil {
		fmt.Fprintf(&b, "  %s\n\n", cyan(e.Location.String()))
		if len(e.Context) > 0 {
			e.writeContext(&b)
			b.WriteString("\n")
		}
	}

	if lines := wrapText(e.Detail, 70); len(lines) > 0 {
		for _, line := range lines {
			fmt.Fprintf(&b, "  %s\n", line)
		}
		b.WriteString("\n")
	}

	if e.Suggestion != "" {
		fmt.Fprintf(&b, "  %s%s\n\n", cyan("Hint: "), e.Suggestion)
	}
	if e.Wrapped != nil {
		fmt.Fprintf(&b, "  %s%s\n", gray("Cause: "), e.Wrapped.Error())
	}
	return b.String()
}

// writeContext prints the captured source lines, marking the error line and
// column.
func (e *BacktensionError) writeContext(w io.Writer) {
	first := e.Location.Line - len(e.Context)/2
	for i, line := range e.Context {
		n := first + i
		if n != e.Location.Line {
			fmt.Fprintf(w, "    %4d%s%s\n", n, gray(" │ "), line)
			continue
		}
		fmt.Fprintf(w, "  %s%4d%s%s\n", red("→ "), n, gray(" │ "), line)
		if e.Location.Column > 0 {
			fmt.Fprintf(w, "       %s%s%s\n", gray("│ "), strings.Repeat(" ", e.Location.Column-1), red("^"))
		}
	}
}

// FormatCompact renders the error on one line, e.g.
// "regions.yaml:3:5: E143: Region file is invalid: cause".
func (e *BacktensionError) FormatCompact() string {
	parts := make([]string, 0, 4)
	if e.Location != nil {
		parts = append(parts, e.Location.String())
	}
	if e.Code != "" {
		parts = append(parts, e.Code)
	}
	parts = append(parts, e.Message)
	if e.Wrapped != nil {
		parts = append(parts, e.Wrapped.Error())
	}
	return strings.Join(parts, ": ")
}

type jsonLocation struct {
	File   string `json:"file"`
	Line   int    `json:"line"`
	Column int    `json:"column"`
}

type jsonError struct {
	Code       string        `json:"code,omitempty"`
	Category   Category      `json:"category"`
	Message    string        `json:"message"`
	Detail     string        `json:"detail,omitempty"`
	Location   *jsonLocation `json:"location,omitempty"`
	Suggestion string        `json:"suggestion,omitempty"`
	Cause      string        `json:"cause,omitempty"`
}

// FormatJSON renders the error as a single JSON object for tooling.
func (e *BacktensionError) FormatJSON() string {
	out := jsonError{
		Code:       e.Code,
		Category:   e.Category,
		Message:    e.Message,
		Detail:     e.Detail,
		Suggestion: e.Suggestion,
	}
	if e.Location != nil {
		out.Location = &jsonLocation{File: e.Location.File, Line: e.Location.Line, Column: e.Location.Column}
	}
	if e.Wrapped != nil {
		out.Cause = e.Wrapped.Error()
	}
	data, err := json.Marshal(out)
	if err != nil {
		return fmt.Sprintf(`{"message":%q}`, e.Error())
	}
	return string(data)
}

// wrapText breaks text into lines of at most width characters. Words longer
// than width get a line of their own.
func wrapText(text string, width int) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	var lines []string
	line := words[0]
	for _, word := range words[1:] {
		if len(line)+1+len(word) > width {
			lines = append(lines, line)
			line = word
			continue
		}
		line += " " + word
	}
	return append(lines, line)
}

// Style selects how Fprint renders an error.
type Style int

const (
	// StylePretty is the multi-line terminal rendering of Format.
	StylePretty Style = iota
	// StyleCompact is the single line of FormatCompact.
	StyleCompact
	// StyleJSON is the object of FormatJSON.
	StyleJSON
)

// Fprint writes err to w in the given style. Errors that are not a
// *BacktensionError are rendered from their message alone.
func Fprint(w io.Writer, err error, s Style) {
	if err == nil {
		return
	}
	be, ok := err.(*BacktensionError)
	if !ok {
		be = &BacktensionError{Category: CategoryCLI, Message: err.Error()}
	}
	switch s {
	case StyleJSON:
		fmt.Fprintln(w, be.FormatJSON())
	case StyleCompact:
		fmt.Fprintln(w, be.FormatCompact())
	default:
		fmt.Fprint(w, be.Format())
	}
}

// PrintError writes err to stderr in the given style.
func PrintError(err error, s Style) {
	Fprint(os.Stderr, err, s)
}
