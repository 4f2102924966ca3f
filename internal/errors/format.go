package errors

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// ANSI color codes for terminal output.
const (
	colorReset = "\033[0m"
	colorRed   = "\033[31m"
	colorBlue  = "\033[34m"
	colorCyan  = "\033[36m"
	colorWhite = "\033[37m"
	colorGray  = "\033[90m"
	colorBold  = "\033[1m"
)

// colorEnabled controls whether ANSI colors are used.
var colorEnabled = true

// DisableColors disables ANSI color output.
func DisableColors() {
	colorEnabled = false
}

// EnableColors enables ANSI color output.
func EnableColors() {
	colorEnabled = true
}

// color wraps text in ANSI color codes if colors are enabled.
func color(code, text string) string {
	if !colorEnabled {
		return text
	}
	return code + text + colorReset
}

func red(text string) string   { return color(colorRed, text) }
func blue(text string) string  { return color(colorBlue, text) }
func cyan(text string) string  { return color(colorCyan, text) }
func white(text string) string { return color(colorWhite, text) }
func gray(text string) string  { return color(colorGray, text) }
func bold(text string) string  { return color(colorBold, text) }

// Format renders the error for a terminal: a header, the source position
// with surrounding lines, then detail, hint and doc link.
func (e *ReactiveError) Format() string {
	var b strings.Builder

	b.WriteString("\n")
	e.writeHeader(&b)
	b.WriteString("\n\n")

	if e.Location != nil || e.Step > 0 {
		e.writePosition(&b)
	}

	if e.Detail != "" {
		for _, line := range wrapText(e.Detail, 70) {
			b.WriteString("  " + line + "\n")
		}
		b.WriteString("\n")
	}

	if e.Suggestion != "" {
		b.WriteString("  " + cyan("Hint: ") + e.Suggestion + "\n\n")
	}

	if e.DocURL != "" {
		b.WriteString("  " + gray("Learn more: ") + blue(e.DocURL) + "\n")
	}

	return b.String()
}

func (e *ReactiveError) writeHeader(b *strings.Builder) {
	if e.Code == "" {
		b.WriteString(red(bold("ERROR: ")) + white(e.Message))
		return
	}
	b.WriteString(red(bold("ERROR ")) + white(bold(e.Code+": ")) + white(e.Message))
}

// writePosition prints "file:line (step N)" and the source excerpt.
func (e *ReactiveError) writePosition(b *strings.Builder) {
	b.WriteString("  ")
	if e.Location != nil {
		b.WriteString(cyan(e.Location.String()))
		if e.Step > 0 {
			b.WriteString(" ")
		}
	}
	if e.Step > 0 {
		b.WriteString(gray(fmt.Sprintf("(step %d)", e.Step)))
	}
	b.WriteString("\n\n")

	if e.Location == nil || len(e.Context) == 0 {
		return
	}
	for i, line := range e.Context {
		n := e.contextStart + i
		marker := "    "
		if n == e.Location.Line {
			marker = "  " + red("→ ")
		}
		fmt.Fprintf(b, "%s%4d%s%s\n", marker, n, gray(" │ "), line)

		if n == e.Location.Line && e.Location.Column > 0 {
			b.WriteString("       " + gray("│ ") + strings.Repeat(" ", e.Location.Column-1) + red("^") + "\n")
		}
	}
	b.WriteString("\n")
}

// FormatCompact returns a compact single-line error format.
func (e *ReactiveError) FormatCompact() string {
	var b strings.Builder

	if e.Location != nil {
		b.WriteString(e.Location.String())
		b.WriteString(": ")
	}

	if e.Code != "" {
		b.WriteString(e.Code)
		b.WriteString(": ")
	}

	b.WriteString(e.Message)

	return b.String()
}

// jsonError is the wire shape of FormatJSON.
type jsonError struct {
	Code       string    `json:"code,omitempty"`
	Category   Category  `json:"category"`
	Message    string    `json:"message"`
	Detail     string    `json:"detail,omitempty"`
	Location   *Location `json:"location,omitempty"`
	Step       int       `json:"step,omitempty"`
	Suggestion string    `json:"suggestion,omitempty"`
	DocURL     string    `json:"docUrl,omitempty"`
	Cause      string    `json:"cause,omitempty"`
}

// FormatJSON returns the error as a single-line JSON object.
func (e *ReactiveError) FormatJSON() string {
	out := jsonError{
		Code:       e.Code,
		Category:   e.Category,
		Message:    e.Message,
		Detail:     e.Detail,
		Location:   e.Location,
		Step:       e.Step,
		Suggestion: e.Suggestion,
		DocURL:     e.DocURL,
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

// wrapText wraps text to the specified width.
func wrapText(text string, width int) []string {
	if text == "" {
		return nil
	}
	if len(text) <= width {
		return []string{text}
	}

	var lines []string
	words := strings.Fields(text)
	var current strings.Builder

	for _, word := range words {
		if current.Len()+len(word)+1 > width {
			if current.Len() > 0 {
				lines = append(lines, current.String())
				current.Reset()
			}
		}
		if current.Len() > 0 {
			current.WriteString(" ")
		}
		current.WriteString(word)
	}

	if current.Len() > 0 {
		lines = append(lines, current.String())
	}

	return lines
}

// PrintError writes err to w, formatted if it is a *ReactiveError.
func PrintError(w io.Writer, err error) {
	if re, ok := err.(*ReactiveError); ok {
		fmt.Fprint(w, re.Format())
		return
	}
	fmt.Fprintf(w, "\n%s %s\n\n", red(bold("ERROR:")), err.Error())
}
