package toon

import "fmt"

// Config is the parameter bundle consumed by Classify, Encode and
// Decode. The codec never mutates it; callers may share one Config
// across concurrent calls.
type Config struct {
	// TableSeparator is the column delimiter of table rows.
	TableSeparator rune

	// HeaderFillChar fills the separator row between a table header
	// and its data rows.
	HeaderFillChar rune

	// MaxInlineArrayLength is the longest all-primitive sequence that
	// still renders as a one-line [..] literal.
	MaxInlineArrayLength int

	// CompressPrimitiveArrays enables the one-line [..] rendering for
	// short all-primitive sequences.
	CompressPrimitiveArrays bool

	// MaxStringLength is a truncation hint for collaborators that
	// embed encoded output in prompts. The codec itself never
	// truncates; 0 means no hint.
	MaxStringLength int

	// QuoteStrings forces quoting of every string, even ones that
	// would be unambiguous bare.
	QuoteStrings bool

	// IndentSize is the number of columns per nesting level.
	IndentSize int

	// MaxNestingDepth bounds structural nesting on both encode and
	// decode, closing off unbounded recursion on adversarial input.
	MaxNestingDepth int

	// UniformityThreshold is the minimum fraction of sequence elements
	// that must share the majority key set for table eligibility.
	// The boundary is inclusive.
	UniformityThreshold float64

	// MinTableRows is the minimum element count for table rendering.
	MinTableRows int
}

// DefaultConfig returns the documented defaults. Call sites that need a
// default construct one explicitly; there is no shared global instance.
func DefaultConfig() Config {
	return Config{
		TableSeparator:          '|',
		HeaderFillChar:          '-',
		MaxInlineArrayLength:    10,
		CompressPrimitiveArrays: true,
		MaxStringLength:         0,
		QuoteStrings:            false,
		IndentSize:              2,
		MaxNestingDepth:         10,
		UniformityThreshold:     0.8,
		MinTableRows:            2,
	}
}

// Validate checks the Config once, up front. Encode, Decode and
// Classify all call it before doing any work.
func (c Config) Validate() error {
	if c.UniformityThreshold < 0 || c.UniformityThreshold > 1 {
		return &ConfigError{Field: "UniformityThreshold", Reason: "must be in [0,1]"}
	}
	if c.IndentSize < 1 {
		return &ConfigError{Field: "IndentSize", Reason: "must be >= 1"}
	}
	if c.MaxNestingDepth < 1 {
		return &ConfigError{Field: "MaxNestingDepth", Reason: "must be >= 1"}
	}
	if c.MinTableRows < 1 {
		return &ConfigError{Field: "MinTableRows", Reason: "must be >= 1"}
	}
	if c.MaxInlineArrayLength < 0 {
		return &ConfigError{Field: "MaxInlineArrayLength", Reason: "must be >= 0"}
	}
	if err := validateMarker(c.TableSeparator); err != "" {
		return &ConfigError{Field: "TableSeparator", Reason: err}
	}
	if err := validateMarker(c.HeaderFillChar); err != "" {
		return &ConfigError{Field: "HeaderFillChar", Reason: err}
	}
	if c.TableSeparator == '-' {
		return &ConfigError{Field: "TableSeparator", Reason: "'-' collides with dash items"}
	}
	if c.TableSeparator == c.HeaderFillChar {
		return &ConfigError{Field: "HeaderFillChar", Reason: "must differ from TableSeparator"}
	}
	return nil
}

// validateMarker vets the single-character structural markers. They
// must be printable ASCII punctuation so that line splitting can work
// bytewise and never collides with quoting or literal grammar.
func validateMarker(r rune) string {
	switch {
	case r == 0:
		return "must be set"
	case r >= 128:
		return "must be ASCII"
	case r == quoteChar || r == '\\':
		return fmt.Sprintf("%q collides with string quoting", r)
	case r == '[' || r == ']' || r == '{' || r == '}' || r == ',' || r == ':':
		return fmt.Sprintf("%q collides with the inline literal grammar", r)
	case r == ' ' || r == '\t' || r == '\n' || r == '\r':
		return "must not be whitespace"
	case r >= '0' && r <= '9', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		return "must not be alphanumeric"
	}
	return ""
}
