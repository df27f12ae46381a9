// Package cli renders command results as text, JSON or markdown.
//
// Text is what a shell pipeline sees and carries no decoration. JSON wraps
// every result in a {meta, data} envelope; markdown prefixes the result with
// YAML frontmatter holding the same meta.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	geoerrors "github.com/gezibash/geoclient/pkg/errors"
)

// Format represents an output format.
type Format string

const (
	FormatText     Format = "text"
	FormatJSON     Format = "json"
	FormatMarkdown Format = "markdown"
)

// ParseFormat parses a format name. Empty selects text; "md" is accepted
// for markdown.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "text":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	}
	return FormatText, fmt.Errorf("%w: unknown output format %q (want text, json or markdown)", geoerrors.ErrUsage, s)
}

// Meta describes a rendered result.
type Meta struct {
	Type      string    `json:"type" yaml:"type"`
	Version   string    `json:"version,omitempty" yaml:"version,omitempty"`
	Generated time.Time `json:"generated" yaml:"generated"`
}

// NewMeta creates v1 metadata stamped with the current UTC time.
func NewMeta(resultType string) Meta {
	return Meta{
		Type:      resultType,
		Version:   "v1",
		Generated: time.Now().UTC(),
	}
}

// Renderable can render itself in every Format.
type Renderable interface {
	Meta() Meta
	RenderText(w io.Writer) error
	RenderJSON() any
	RenderMarkdown(w io.Writer) error
}

// Output writes renderables to one writer in one format.
type Output struct {
	format Format
	w      io.Writer
}

// NewOutput creates an output renderer for the given format.
func NewOutput(format Format, w io.Writer) *Output {
	return &Output{format: format, w: w}
}

// Format returns the configured output format.
func (o *Output) Format() Format {
	return o.format
}

// KV creates a labelled-values renderer.
func (o *Output) KV(resultType string) *KV {
	return &KV{out: o, meta: NewMeta(resultType)}
}

// Body creates a renderer for a response payload.
func (o *Output) Body(resultType, content string) *Body {
	return &Body{out: o, meta: NewMeta(resultType), content: content}
}

// Error creates an error renderer; its meta type is resultType + "-error".
func (o *Output) Error(resultType string, err error) *Error {
	return &Error{out: o, meta: NewMeta(resultType + "-error"), err: err}
}

// Render outputs r in the configured format.
func (o *Output) Render(r Renderable) error {
	switch o.format {
	case FormatJSON:
		return o.writeEnvelope(r)
	case FormatMarkdown:
		if err := o.writeFrontmatter(r.Meta()); err != nil {
			return err
		}
		return r.RenderMarkdown(o.w)
	default:
		return r.RenderText(o.w)
	}
}

func (o *Output) writeEnvelope(r Renderable) error {
	enc := json.NewEncoder(o.w)
	enc.SetIndent("", "  ")
	return enc.Encode(struct {
		Meta Meta `json:"meta"`
		Data any  `json:"data"`
	}{r.Meta(), r.RenderJSON()})
}

func (o *Output) writeFrontmatter(meta Meta) error {
	var b strings.Builder
	b.WriteString("---\n")
	enc := yaml.NewEncoder(&b)
	enc.SetIndent(2)
	if err := enc.Encode(meta); err != nil {
		return fmt.Errorf("encode frontmatter: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("encode frontmatter: %w", err)
	}
	b.WriteString("---\n\n")

	_, err := io.WriteString(o.w, b.String())
	return err
}

// toJSONKey converts a label to a JSON key: lowercase, spaces and dashes
// become underscores.
func toJSONKey(s string) string {
	return strings.ToLower(strings.NewReplacer(" ", "_", "-", "_").Replace(s))
}
