package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/gezibash/geoclient/internal/observability"
)

// Error is a structured error result. Details keep insertion order.
// Created via Output.Error().
type Error struct {
	out     *Output
	meta    Meta
	err     error
	code    string
	details []kvPair
}

// WithCode sets an error code.
func (e *Error) WithCode(code string) *Error {
	e.code = code
	return e
}

// With adds a detail key-value pair.
func (e *Error) With(key string, value any) *Error {
	e.details = append(e.details, kvPair{key: key, value: value})
	return e
}

// Render outputs the error in the configured format.
func (e *Error) Render() error {
	return e.out.Render(e)
}

// Meta returns the metadata.
func (e *Error) Meta() Meta {
	return e.meta
}

func (e *Error) label() string {
	if e.code != "" {
		return fmt.Sprintf("Error [%s]", e.code)
	}
	return "Error"
}

// RenderText writes the error. The label is colored when w is a terminal.
func (e *Error) RenderText(w io.Writer) error {
	label := e.label() + ":"
	if observability.IsTerminal(w) {
		label = lipgloss.NewRenderer(w).NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("1")).
			Render(label)
	}

	if _, err := fmt.Fprintf(w, "%s %v\n", label, e.err); err != nil {
		return err
	}
	for _, d := range e.details {
		if _, err := fmt.Fprintf(w, "  %s: %v\n", d.key, d.value); err != nil {
			return err
		}
	}
	return nil
}

// RenderJSON returns error as object.
func (e *Error) RenderJSON() any {
	result := map[string]any{
		"error": e.err.Error(),
	}
	if e.code != "" {
		result["code"] = e.code
	}
	for _, d := range e.details {
		result[toJSONKey(d.key)] = d.value
	}
	return result
}

// RenderMarkdown writes the error as a blockquote followed by its details.
func (e *Error) RenderMarkdown(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "> **%s:** %v\n", e.label(), e.err); err != nil {
		return err
	}
	if len(e.details) == 0 {
		return nil
	}

	if _, err := fmt.Fprintln(w); err != nil {
		return err
	}
	for _, d := range e.details {
		if _, err := fmt.Fprintf(w, "- %s: %s\n", d.key, formatMarkdownValue(d.value)); err != nil {
			return err
		}
	}
	return nil
}
