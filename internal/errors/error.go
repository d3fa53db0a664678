package errors

import (
	"bufio"
	"fmt"
	"os"
	"regexp"
	"strconv"
)

// Category represents the type of error.
type Category string

const (
	CategoryConfig   Category = "config"
	CategoryCLI      Category = "cli"
	CategoryDocument Category = "document"
	CategoryRegions  Category = "regions"
)

// Location represents a position in an input file.
type Location struct {
	File   string
	Line   int
	Column int
}

// String returns the location as a formatted string.
func (l *Location) String() string {
	if l == nil {
		return ""
	}
	if l.Line <= 0 {
		return l.File
	}
	if l.Column > 0 {
		return fmt.Sprintf("%s:%d:%d", l.File, l.Line, l.Column)
	}
	return fmt.Sprintf("%s:%d", l.File, l.Line)
}

// BacktensionError is a structured error with an input location and a
// suggestion.
type BacktensionError struct {
	// Code is a unique error identifier (e.g., "E120").
	Code string

	// Category is the error type.
	Category Category

	// Message is a short description of the error.
	Message string

	// Detail is a longer explanation of the error.
	Detail string

	// Location is the input position where the error occurred.
	Location *Location

	// Context contains the surrounding input lines.
	Context []string

	// Suggestion is a hint on how to fix the error.
	Suggestion string

	// Wrapped is the underlying error, if any.
	Wrapped error
}

// Error implements the error interface.
func (e *BacktensionError) Error() string {
	msg := e.Message
	if e.Code != "" {
		msg = e.Code + ": " + msg
	}
	if e.Wrapped != nil {
		msg += ": " + e.Wrapped.Error()
	}
	return msg
}

// Unwrap returns the wrapped error for errors.Is/As support.
func (e *BacktensionError) Unwrap() error {
	return e.Wrapped
}

// WithLocation adds an input location and reads the lines around it.
func (e *BacktensionError) WithLocation(file string, line, column int) *BacktensionError {
	e.Location = &Location{File: file, Line: line, Column: column}
	if line > 0 {
		e.Context = readContextLines(file, line, 5)
	}
	return e
}

// decoderLine matches the line reported by yaml.v3 ("yaml: line 4: ...")
// and by the JSON loader ("line 4: ...").
var decoderLine = regexp.MustCompile(`line (\d+)`)

// WithLocationFromError sets the location of file from the line number
// embedded in a decoder error, if there is one.
func (e *BacktensionError) WithLocationFromError(file string, err error) *BacktensionError {
	if err == nil {
		return e
	}
	line := 0
	if m := decoderLine.FindStringSubmatch(err.Error()); m != nil {
		line, _ = strconv.Atoi(m[1])
	}
	return e.WithLocation(file, line, 0)
}

// WithSuggestion adds a fix suggestion to the error.
func (e *BacktensionError) WithSuggestion(s string) *BacktensionError {
	e.Suggestion = s
	return e
}

// WithDetail replaces the registered explanation.
func (e *BacktensionError) WithDetail(d string) *BacktensionError {
	e.Detail = d
	return e
}

// Wrap wraps another error.
func (e *BacktensionError) Wrap(err error) *BacktensionError {
	e.Wrapped = err
	return e
}

// readContextLines reads lines around the specified line number from a file.
func readContextLines(filename string, targetLine, contextSize int) []string {
	file, err := os.Open(filename)
	if err != nil {
		return nil
	}
	defer file.Close()

	var lines []string
	scanner := bufio.NewScanner(file)
	lineNum := 0
	startLine := targetLine - contextSize/2
	endLine := targetLine + contextSize/2

	for scanner.Scan() {
		lineNum++
		if lineNum >= startLine && lineNum <= endLine {
			lines = append(lines, scanner.Text())
		}
		if lineNum > endLine {
			break
		}
	}

	return lines
}

// New creates a BacktensionError from a registered error code.
func New(code string) *BacktensionError {
	template, ok := registry[code]
	if !ok {
		return &BacktensionError{
			Code:    code,
			Message: "Unknown error",
		}
	}
	return &BacktensionError{
		Code:     code,
		Category: template.Category,
		Message:  template.Message,
		Detail:   template.Detail,
	}
}

// Newf creates an uncoded error with a formatted message.
func Newf(category Category, format string, args ...any) *BacktensionError {
	return &BacktensionError{
		Category: category,
		Message:  fmt.Sprintf(format, args...),
	}
}

// FromError wraps a standard error under code. Errors that already are
// a *BacktensionError are returned unchanged.
func FromError(err error, code string) *BacktensionError {
	if err == nil {
		return nil
	}
	if be, ok := err.(*BacktensionError); ok {
		return be
	}
	return New(code).Wrap(err)
}
