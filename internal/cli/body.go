package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// Body renders a response payload. Text output is the payload verbatim
// followed by a newline; JSON and markdown wrap it with its fields.
// Created via Output.Body().
type Body struct {
	out     *Output
	meta    Meta
	content string
	key     string
	fields  []kvPair
}

// Set adds a field shown alongside the payload in JSON and markdown.
func (b *Body) Set(key string, value any) *Body {
	b.fields = append(b.fields, kvPair{key: key, value: value})
	return b
}

// As names the payload field in JSON and markdown output (default "body").
func (b *Body) As(key string) *Body {
	b.key = key
	return b
}

// Render outputs the body in the configured format.
func (b *Body) Render() error {
	return b.out.Render(b)
}

// Meta returns the metadata.
func (b *Body) Meta() Meta {
	return b.meta
}

func (b *Body) contentKey() string {
	if b.key == "" {
		return "body"
	}
	return b.key
}

// RenderText writes the payload exactly, then a newline.
func (b *Body) RenderText(w io.Writer) error {
	_, err := fmt.Fprintln(w, b.content)
	return err
}

// RenderJSON embeds the payload as raw JSON when it is valid JSON,
// otherwise as a string.
func (b *Body) RenderJSON() any {
	result := make(map[string]any, len(b.fields)+1)
	for _, f := range b.fields {
		result[toJSONKey(f.key)] = f.value
	}
	trimmed := strings.TrimSpace(b.content)
	if trimmed != "" && json.Valid([]byte(trimmed)) {
		result[b.contentKey()] = json.RawMessage(trimmed)
	} else {
		result[b.contentKey()] = b.content
	}
	return result
}

// RenderMarkdown writes the fields as a definition list and the payload
// as a fenced code block.
func (b *Body) RenderMarkdown(w io.Writer) error {
	for _, f := range b.fields {
		if _, err := fmt.Fprintf(w, "**%s:** %s\n\n", f.key, formatMarkdownValue(f.value)); err != nil {
			return err
		}
	}

	lang := ""
	if json.Valid([]byte(strings.TrimSpace(b.content))) {
		lang = "json"
	}
	_, err := fmt.Fprintf(w, "**%s:**\n\n```%s\n%s\n```\n", b.contentKey(), lang, strings.TrimRight(b.content, "\n"))
	return err
}
