// Package prompt embeds TOON-encoded data in LLM prompt text.
//
// It wraps encoder output in a fenced block with an optional preamble,
// and applies the Config.MaxStringLength hint by truncating long
// strings before encoding. The input value is never mutated.
package prompt

import (
	"strings"

	"github.com/toonkit/toon"
)

// Options controls how encoded output is framed.
type Options struct {
	// Preamble is prose placed before the data block, typically an
	// instruction telling the model what the data is.
	Preamble string

	// Fence wraps the output in a ``` code fence.
	Fence bool

	// FenceTag is the language tag on the opening fence.
	FenceTag string
}

// DefaultOptions returns a fenced block tagged "toon" with no preamble.
func DefaultOptions() Options {
	return Options{Fence: true, FenceTag: "toon"}
}

// Wrap encodes v under cfg and frames it per opts. When
// cfg.MaxStringLength is positive, strings longer than that many runes
// are truncated with a trailing ellipsis on a deep copy; the caller's
// value is left untouched.
func Wrap(v *toon.Value, cfg toon.Config, opts Options) (string, error) {
	if cfg.MaxStringLength > 0 {
		v = truncateStrings(v, cfg.MaxStringLength)
	}
	text, err := toon.Encode(v, cfg)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	if opts.Preamble != "" {
		b.WriteString(opts.Preamble)
		b.WriteString("\n\n")
	}
	if opts.Fence {
		b.WriteString("```")
		b.WriteString(opts.FenceTag)
		b.WriteByte('\n')
		b.WriteString(text)
		b.WriteString("\n```")
	} else {
		b.WriteString(text)
	}
	return b.String(), nil
}

// truncateStrings returns v with every string capped at max runes.
// Untouched subtrees are shared, not copied.
func truncateStrings(v *toon.Value, max int) *toon.Value {
	switch v.Kind() {
	case toon.KindString:
		s, _ := v.AsString()
		runes := []rune(s)
		if len(runes) <= max {
			return v
		}
		return toon.Str(string(runes[:max]) + "…")
	case toon.KindSequence:
		items, _ := v.Items()
		out := toon.Seq()
		for _, item := range items {
			out.Append(truncateStrings(item, max))
		}
		return out
	case toon.KindMapping:
		entries, _ := v.Entries()
		out := toon.Map()
		for _, e := range entries {
			out.Set(e.Key, truncateStrings(e.Value, max))
		}
		return out
	default:
		return v
	}
}
