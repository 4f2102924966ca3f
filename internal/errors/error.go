package errors

import (
	"bufio"
	stderrors "errors"
	"fmt"
	"os"
	"regexp"
	"strconv"
)

// Category represents the type of error.
type Category string

const (
	CategoryRuntime  Category = "runtime"
	CategoryConfig   Category = "config"
	CategoryScenario Category = "scenario"
	CategoryCLI      Category = "cli"
)

// Location represents a position in a source file.
type Location struct {
	File   string `json:"file"`
	Line   int    `json:"line"`
	Column int    `json:"column,omitempty"`
}

// String returns the location as file:line[:column].
func (l *Location) String() string {
	if l == nil {
		return ""
	}
	if l.Column > 0 {
		return fmt.Sprintf("%s:%d:%d", l.File, l.Line, l.Column)
	}
	return fmt.Sprintf("%s:%d", l.File, l.Line)
}

// ReactiveError is a structured error with an optional source location,
// suggestion and documentation link.
type ReactiveError struct {
	// Code is a unique error identifier (e.g., "R001").
	Code string

	// Category is the error type.
	Category Category

	// Message is a short description of the error.
	Message string

	// Detail is a longer explanation, usually specific to this occurrence.
	Detail string

	// Location is where the error occurred, if it came from a file.
	Location *Location

	// Context holds the source lines around Location.
	Context []string

	// contextStart is the line number of Context[0].
	contextStart int

	// Step is the 1-based scenario step that failed, or 0.
	Step int

	// Suggestion is a hint on how to fix the error.
	Suggestion string

	// DocURL links to documentation about this error.
	DocURL string

	// Wrapped is the underlying error, if any.
	Wrapped error
}

// Error implements the error interface.
func (e *ReactiveError) Error() string {
	msg := e.Message
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	if e.Code != "" {
		return e.Code + ": " + msg
	}
	return msg
}

// Unwrap returns the wrapped error for errors.Is/As support.
func (e *ReactiveError) Unwrap() error {
	return e.Wrapped
}

// WithStep records the scenario step that failed.
func (e *ReactiveError) WithStep(step int) *ReactiveError {
	e.Step = step
	return e
}

// WithLocation records a source location and reads the surrounding lines.
func (e *ReactiveError) WithLocation(file string, line, column int) *ReactiveError {
	e.Location = &Location{File: file, Line: line, Column: column}
	e.Context, e.contextStart = readContextLines(file, line, 5)
	return e
}

// yamlLine matches the line number in yaml.v3 and encoding/json syntax
// errors ("yaml: line 7: ...").
var yamlLine = regexp.MustCompile(`line (\d+)`)

// WithLocationFromError extracts a line number from a parser error and
// records it against file. Errors without a line number leave e unchanged.
func (e *ReactiveError) WithLocationFromError(file string, err error) *ReactiveError {
	if err == nil {
		return e
	}
	m := yamlLine.FindStringSubmatch(err.Error())
	if m == nil {
		return e
	}
	line, convErr := strconv.Atoi(m[1])
	if convErr != nil || line <= 0 {
		return e
	}
	return e.WithLocation(file, line, 0)
}

// WithSuggestion adds a fix suggestion.
func (e *ReactiveError) WithSuggestion(s string) *ReactiveError {
	e.Suggestion = s
	return e
}

// WithDetail sets the occurrence-specific explanation.
func (e *ReactiveError) WithDetail(d string) *ReactiveError {
	e.Detail = d
	return e
}

// WithDetailf sets a formatted explanation.
func (e *ReactiveError) WithDetailf(format string, args ...any) *ReactiveError {
	e.Detail = fmt.Sprintf(format, args...)
	return e
}

// Wrap records the underlying error.
func (e *ReactiveError) Wrap(err error) *ReactiveError {
	e.Wrapped = err
	return e
}

// readContextLines reads up to contextSize lines centred on targetLine and
// returns them with the line number of the first one.
func readContextLines(filename string, targetLine, contextSize int) ([]string, int) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, 0
	}
	defer file.Close()

	var lines []string
	scanner := bufio.NewScanner(file)
	lineNum := 0
	startLine := max(targetLine-contextSize/2, 1)
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

	return lines, startLine
}

// New creates a ReactiveError from a registered code.
func New(code string) *ReactiveError {
	template, ok := registry[code]
	if !ok {
		return &ReactiveError{
			Code:    code,
			Message: "Unknown error",
		}
	}
	return &ReactiveError{
		Code:       code,
		Category:   template.Category,
		Message:    template.Message,
		Suggestion: template.Suggestion,
		DocURL:     template.DocURL,
	}
}

// Newf creates an uncoded error with a formatted message.
func Newf(category Category, format string, args ...any) *ReactiveError {
	return &ReactiveError{
		Category: category,
		Message:  fmt.Sprintf(format, args...),
	}
}

// FromError wraps err under code. A *ReactiveError anywhere in err's chain
// is returned as-is.
func FromError(err error, code string) *ReactiveError {
	if err == nil {
		return nil
	}
	var re *ReactiveError
	if stderrors.As(err, &re) {
		return re
	}
	return New(code).Wrap(err).WithDetail(err.Error())
}
