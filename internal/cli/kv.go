package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// KV renders labelled values, one per line.
// Created via Output.KV().
type KV struct {
	out   *Output
	meta  Meta
	pairs []kvPair
}

type kvPair struct {
	key   string
	value any
}

// Set appends a labelled value. Labels keep insertion order.
func (k *KV) Set(key string, value any) *KV {
	k.pairs = append(k.pairs, kvPair{key: key, value: value})
	return k
}

// Render outputs the pairs in the configured format.
func (k *KV) Render() error {
	return k.out.Render(k)
}

// Meta returns the metadata.
func (k *KV) Meta() Meta {
	return k.meta
}

// RenderText writes "Label: value" rows with the values aligned.
func (k *KV) RenderText(w io.Writer) error {
	if len(k.pairs) == 0 {
		return nil
	}

	tw := table.NewWriter()
	tw.SetStyle(table.Style{
		Box:     table.StyleBoxDefault,
		Options: table.OptionsNoBordersAndSeparators,
	})
	tw.Style().Box.PaddingLeft = ""
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignLeft},
		{Number: 2, Align: text.AlignLeft},
	})
	for _, p := range k.pairs {
		tw.AppendRow(table.Row{p.key + ":", fmt.Sprint(p.value)})
	}

	_, err := io.WriteString(w, tw.Render()+"\n")
	return err
}

// RenderJSON returns the pairs as an object keyed by toJSONKey(label).
func (k *KV) RenderJSON() any {
	result := make(map[string]any, len(k.pairs))
	for _, p := range k.pairs {
		result[toJSONKey(p.key)] = p.value
	}
	return result
}

// RenderMarkdown writes one bold label per paragraph.
func (k *KV) RenderMarkdown(w io.Writer) error {
	for _, p := range k.pairs {
		if _, err := fmt.Fprintf(w, "**%s:** %s\n\n", p.key, formatMarkdownValue(p.value)); err != nil {
			return err
		}
	}
	return nil
}

// formatMarkdownValue code-spans identifiers and escapes table pipes.
func formatMarkdownValue(v any) string {
	s := fmt.Sprint(v)
	if looksLikeHash(s) {
		return "`" + s + "`"
	}
	return strings.ReplaceAll(s, "|", "\\|")
}

// looksLikeHash reports whether s is a canonical uuid or a hex digest of at
// least 16 characters.
func looksLikeHash(s string) bool {
	if len(s) == 36 {
		if _, err := uuid.Parse(s); err == nil {
			return true
		}
	}
	if len(s) < 16 {
		return false
	}
	for _, c := range s {
		switch {
		case c >= '0' && c <= '9', c >= 'a' && c <= 'f', c >= 'A' && c <= 'F':
		default:
			return false
		}
	}
	return true
}
