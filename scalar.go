package toon

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// quoteChar is the fixed string quote character.
const quoteChar = '"'

// ============================================================
// Canonical Scalar Rendering
// ============================================================

// formatScalar renders a leaf value. Containers are the callers'
// responsibility (they route through inline literals).
func formatScalar(v *Value, cfg Config) (string, error) {
	switch v.Kind() {
	case KindNull:
		return "null", nil
	case KindBool:
		if v.boolVal {
			return "true", nil
		}
		return "false", nil
	case KindInt:
		return strconv.FormatInt(v.intVal, 10), nil
	case KindFloat:
		return formatFloat(v.floatVal)
	case KindString:
		return formatString(v.strVal, cfg), nil
	default:
		return "", fmt.Errorf("toon: formatScalar on %s", v.Kind())
	}
}

// formatFloat renders a float with a guaranteed fractional or exponent
// part so it stays distinguishable from an integer on decode.
func formatFloat(f float64) (string, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return "", &EncodeError{Code: EncodeUnsupportedNumber, Msg: "non-finite float"}
	}
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s, nil
}

func formatString(s string, cfg Config) string {
	if cfg.QuoteStrings || needsQuoting(s, cfg) {
		return quote(s)
	}
	return s
}

// formatKey renders a mapping key or table column name. Keys are quoted
// only when structurally required, independent of QuoteStrings.
func formatKey(key string, cfg Config) string {
	if needsQuoting(key, cfg) {
		return quote(key)
	}
	return key
}

// needsQuoting reports whether a bare rendering of s would be ambiguous:
// empty, padded, a literal/number lookalike, a dash-item or table-row
// lookalike, or containing structural characters.
func needsQuoting(s string, cfg Config) bool {
	if s == "" {
		return true
	}
	if s != strings.TrimSpace(s) {
		return true
	}
	switch s {
	case "null", "true", "false", "-":
		return true
	}
	if looksNumeric(s) {
		return true
	}
	if strings.HasPrefix(s, "- ") {
		return true
	}
	for _, r := range s {
		switch r {
		case ':', ',', '[', ']', '{', '}', '\n', '\r', quoteChar:
			return true
		}
		if r == cfg.TableSeparator {
			return true
		}
	}
	return false
}

// quote wraps s in the quote character with minimal escapes.
func quote(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte(quoteChar)
	for _, r := range s {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case quoteChar:
			b.WriteString(`\"`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte(quoteChar)
	return b.String()
}

var (
	intPattern   = regexp.MustCompile(`^-?[0-9]+$`)
	floatPattern = regexp.MustCompile(`^-?[0-9]+(\.[0-9]+([eE][+-]?[0-9]+)?|[eE][+-]?[0-9]+)$`)
)

// looksNumeric reports whether s parses as a number literal. The
// encoder quotes such strings and the decoder's scalar grammar uses the
// same patterns, keeping the two sides agreed.
func looksNumeric(s string) bool {
	return intPattern.MatchString(s) || floatPattern.MatchString(s)
}

// ============================================================
// Scalar Grammar
// ============================================================

// parseScalar applies the leaf grammar to trimmed text, in fixed
// precedence order: quoted literal, null/true/false, integer, decimal,
// inline array, inline object, raw string. depth is the container
// nesting already open around the text; inline brackets nest past it.
func parseScalar(text string, cfg Config, line, depth int) (*Value, error) {
	if text == "" {
		return Null(), nil
	}
	if text[0] == quoteChar {
		s, err := unquote(text, line)
		if err != nil {
			return nil, err
		}
		return Str(s), nil
	}
	switch text {
	case "null":
		return Null(), nil
	case "true":
		return Bool(true), nil
	case "false":
		return Bool(false), nil
	}
	if intPattern.MatchString(text) {
		if n, err := strconv.ParseInt(text, 10, 64); err == nil {
			return Int(n), nil
		}
		// Out of int64 range: fall back to float, then raw text.
		if f, err := strconv.ParseFloat(text, 64); err == nil && !math.IsInf(f, 0) {
			return Float(f), nil
		}
		return Str(text), nil
	}
	if floatPattern.MatchString(text) {
		if f, err := strconv.ParseFloat(text, 64); err == nil && !math.IsInf(f, 0) {
			return Float(f), nil
		}
		return Str(text), nil
	}
	if text[0] == '[' {
		return parseInlineSeq(text, cfg, line, depth)
	}
	if text[0] == '{' {
		return parseInlineMap(text, cfg, line, depth)
	}
	return Str(text), nil
}

// unquote parses a full-string quoted literal, reversing the escapes
// emitted by quote. Unknown escapes pass the escaped character through.
func unquote(text string, line int) (string, error) {
	var b strings.Builder
	b.Grow(len(text))
	escaped := false
	for i := 1; i < len(text); i++ {
		c := text[i]
		switch {
		case escaped:
			switch c {
			case 'n':
				b.WriteByte('\n')
			case 'r':
				b.WriteByte('\r')
			case 't':
				b.WriteByte('\t')
			default:
				b.WriteByte(c)
			}
			escaped = false
		case c == '\\':
			escaped = true
		case c == quoteChar:
			if i != len(text)-1 {
				return "", decodeErrf(DecodeUnknownLineForm, line, "characters after closing quote: %q", text[i+1:])
			}
			return b.String(), nil
		default:
			b.WriteByte(c)
		}
	}
	return "", decodeErrf(DecodeUnterminatedQuote, line, "missing closing quote in %q", text)
}

func parseInlineSeq(text string, cfg Config, line, depth int) (*Value, error) {
	if depth+1 > cfg.MaxNestingDepth {
		return nil, decodeErrf(DecodeDepthExceeded, line, "inline nesting exceeds limit %d", cfg.MaxNestingDepth)
	}
	inner, err := innerLiteral(text, ']', line)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(inner) == "" {
		return Seq(), nil
	}
	parts, err := splitTopLevel(inner, ',', line)
	if err != nil {
		return nil, err
	}
	items := make([]*Value, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			return nil, decodeErrf(DecodeUnknownLineForm, line, "empty array element in %q", text)
		}
		elem, err := parseScalar(part, cfg, line, depth+1)
		if err != nil {
			return nil, err
		}
		items = append(items, elem)
	}
	return Seq(items...), nil
}

func parseInlineMap(text string, cfg Config, line, depth int) (*Value, error) {
	if depth+1 > cfg.MaxNestingDepth {
		return nil, decodeErrf(DecodeDepthExceeded, line, "inline nesting exceeds limit %d", cfg.MaxNestingDepth)
	}
	inner, err := innerLiteral(text, '}', line)
	if err != nil {
		return nil, err
	}
	result := Map()
	if strings.TrimSpace(inner) == "" {
		return result, nil
	}
	parts, err := splitTopLevel(inner, ',', line)
	if err != nil {
		return nil, err
	}
	for _, part := range parts {
		part = strings.TrimSpace(part)
		idx := keyColonIndex(part)
		if idx < 0 {
			return nil, decodeErrf(DecodeUnknownLineForm, line, "expected key: value in inline object, got %q", part)
		}
		key, err := decodeKey(strings.TrimSpace(part[:idx]), line)
		if err != nil {
			return nil, err
		}
		val, err := parseScalar(strings.TrimSpace(part[idx+1:]), cfg, line, depth+1)
		if err != nil {
			return nil, err
		}
		result.Set(key, val)
	}
	return result, nil
}

// innerLiteral strips the outer bracket pair of an inline literal,
// verifying the opener at position 0 closes exactly at the end.
func innerLiteral(text string, closer byte, line int) (string, error) {
	var stack []byte
	i := 0
	for i < len(text) {
		c := text[i]
		switch {
		case c == quoteChar:
			j := closingQuote(text[i:])
			if j < 0 {
				return "", decodeErrf(DecodeUnterminatedQuote, line, "missing closing quote in %q", text)
			}
			i += j + 1
			continue
		case c == '[':
			stack = append(stack, ']')
		case c == '{':
			stack = append(stack, '}')
		case c == ']' || c == '}':
			if len(stack) == 0 || stack[len(stack)-1] != c {
				return "", decodeErrf(DecodeUnterminatedBracket, line, "unbalanced %q in %q", c, text)
			}
			stack = stack[:len(stack)-1]
			if len(stack) == 0 {
				if i != len(text)-1 {
					return "", decodeErrf(DecodeUnknownLineForm, line, "characters after closing %q: %q", closer, text[i+1:])
				}
				if c != closer {
					return "", decodeErrf(DecodeUnterminatedBracket, line, "expected %q, got %q", closer, c)
				}
				return text[1:i], nil
			}
		}
		i++
	}
	return "", decodeErrf(DecodeUnterminatedBracket, line, "missing closing %q in %q", closer, text)
}

// ============================================================
// Quote- and Bracket-Aware Splitting
// ============================================================

// closingQuote returns the index of the closing quote of a literal
// starting at index 0, respecting escapes, or -1.
func closingQuote(s string) int {
	escaped := false
	for i := 1; i < len(s); i++ {
		switch {
		case escaped:
			escaped = false
		case s[i] == '\\':
			escaped = true
		case s[i] == quoteChar:
			return i
		}
	}
	return -1
}

// splitTopLevel splits s on sep occurrences outside quotes and outside
// any bracket nesting.
func splitTopLevel(s string, sep byte, line int) ([]string, error) {
	var parts []string
	var stack []byte
	start := 0
	i := 0
	for i < len(s) {
		c := s[i]
		switch {
		case c == quoteChar:
			j := closingQuote(s[i:])
			if j < 0 {
				return nil, decodeErrf(DecodeUnterminatedQuote, line, "missing closing quote in %q", s)
			}
			i += j + 1
			continue
		case c == '[':
			stack = append(stack, ']')
		case c == '{':
			stack = append(stack, '}')
		case c == ']' || c == '}':
			if len(stack) == 0 || stack[len(stack)-1] != c {
				return nil, decodeErrf(DecodeUnterminatedBracket, line, "unbalanced %q in %q", c, s)
			}
			stack = stack[:len(stack)-1]
		case c == sep && len(stack) == 0:
			parts = append(parts, s[start:i])
			start = i + 1
		}
		i++
	}
	if len(stack) != 0 {
		return nil, decodeErrf(DecodeUnterminatedBracket, line, "missing closing %q in %q", stack[len(stack)-1], s)
	}
	return append(parts, s[start:]), nil
}

// keyColonIndex returns the index of the first colon outside quotes and
// brackets, or -1. That colon separates a key from its value.
func keyColonIndex(s string) int {
	var depth int
	for i := 0; i < len(s); {
		c := s[i]
		switch {
		case c == quoteChar:
			j := closingQuote(s[i:])
			if j < 0 {
				return -1
			}
			i += j + 1
			continue
		case c == '[' || c == '{':
			depth++
		case c == ']' || c == '}':
			if depth > 0 {
				depth--
			}
		case c == ':' && depth == 0:
			return i
		}
		i++
	}
	return -1
}

// decodeKey interprets a raw key token: a quoted literal or bare text.
func decodeKey(raw string, line int) (string, error) {
	if raw == "" {
		return "", decodeErrf(DecodeUnknownLineForm, line, "empty key")
	}
	if raw[0] == quoteChar {
		return unquote(raw, line)
	}
	return raw, nil
}
