package toon

import "testing"

func TestNeedsQuoting(t *testing.T) {
	cfg := DefaultConfig()
	tests := []struct {
		s    string
		want bool
	}{
		{"hello", false},
		{"hello world", false},
		{"", true},
		{" padded", true},
		{"padded ", true},
		{"null", true},
		{"true", true},
		{"false", true},
		{"-", true},
		{"- item", true},
		{"-dash", false},
		{"123", true},
		{"-42", true},
		{"3.14", true},
		{"1e5", true},
		{"1.2.3", false},
		{"a:b", true},
		{"a,b", true},
		{"a|b", true},
		{"[x]", true},
		{"{x}", true},
		{"line\nbreak", true},
		{`has"quote`, true},
	}
	for _, tt := range tests {
		t.Run(tt.s, func(t *testing.T) {
			if got := needsQuoting(tt.s, cfg); got != tt.want {
				t.Fatalf("needsQuoting(%q) = %v, want %v", tt.s, got, tt.want)
			}
		})
	}
}

func TestQuoteUnquoteRoundTrip(t *testing.T) {
	tests := []string{
		"",
		"plain",
		`back\slash`,
		`say "hi"`,
		"line1\nline2",
		"cr\rhere",
		"mixed \"q\" and \\ and \n end",
	}
	for _, s := range tests {
		t.Run(s, func(t *testing.T) {
			q := quote(s)
			got, err := unquote(q, 1)
			if err != nil {
				t.Fatal(err)
			}
			if got != s {
				t.Fatalf("unquote(quote(%q)) = %q", s, got)
			}
		})
	}
}

func TestParseScalarPrecedence(t *testing.T) {
	cfg := DefaultConfig()
	tests := []struct {
		input string
		want  *Value
	}{
		{`"true"`, Str("true")},
		{`"123"`, Str("123")},
		{"null", Null()},
		{"true", Bool(true)},
		{"false", Bool(false)},
		{"42", Int(42)},
		{"-7", Int(-7)},
		{"3.14", Float(3.14)},
		{"-0.5", Float(-0.5)},
		{"1e5", Float(1e5)},
		{"2.5e-3", Float(2.5e-3)},
		{"[1, 2, 3]", Seq(Int(1), Int(2), Int(3))},
		{"[]", Seq()},
		{"{}", Map()},
		{"{a: 1, b: two}", Map(Field("a", Int(1)), Field("b", Str("two")))},
		{"[{x: 1}, [2]]", Seq(Map(Field("x", Int(1))), Seq(Int(2)))},
		{"hello world", Str("hello world")},
		{"1.2.3", Str("1.2.3")},
		{"nullish", Str("nullish")},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := parseScalar(tt.input, cfg, 1, 0)
			if err != nil {
				t.Fatal(err)
			}
			if !got.Equal(tt.want) {
				t.Fatalf("parseScalar(%q) = %+v, want %+v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseScalarIntOverflow(t *testing.T) {
	cfg := DefaultConfig()
	v, err := parseScalar("123456789012345678901234567890", cfg, 1, 0)
	if err != nil {
		t.Fatal(err)
	}
	if v.Kind() != KindFloat {
		t.Fatalf("Kind = %s, want float", v.Kind())
	}
}

func TestParseScalarErrors(t *testing.T) {
	cfg := DefaultConfig()
	tests := []struct {
		input string
		code  DecodeErrorCode
	}{
		{`"open`, DecodeUnterminatedQuote},
		{`"done" extra`, DecodeUnknownLineForm},
		{"[1, 2", DecodeUnterminatedBracket},
		{"{a: 1", DecodeUnterminatedBracket},
		{"[1, ]", DecodeUnknownLineForm},
		{"{noval}", DecodeUnknownLineForm},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, err := parseScalar(tt.input, cfg, 3, 0)
			de, ok := err.(*DecodeError)
			if !ok {
				t.Fatalf("err = %v, want *DecodeError", err)
			}
			if de.Code != tt.code {
				t.Fatalf("Code = %s, want %s", de.Code, tt.code)
			}
			if de.Line != 3 {
				t.Fatalf("Line = %d, want 3", de.Line)
			}
		})
	}
}

func TestSplitTopLevel(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"a, b, c", []string{"a", " b", " c"}},
		{"[1, 2], b", []string{"[1, 2]", " b"}},
		{`"a, b", c`, []string{`"a, b"`, " c"}},
		{"{x: [1, 2]}, y", []string{"{x: [1, 2]}", " y"}},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := splitTopLevel(tt.input, ',', 1)
			if err != nil {
				t.Fatal(err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("parts = %q, want %q", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("parts[%d] = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestKeyColonIndex(t *testing.T) {
	tests := []struct {
		input string
		want  int
	}{
		{"a: 1", 1},
		{"no colon", -1},
		{`"a:b": 1`, 5},
		{"{a: 1}", -1},
		{"[x:y]", -1},
		{"k: {a: 1}", 1},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := keyColonIndex(tt.input); got != tt.want {
				t.Fatalf("keyColonIndex(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestFormatFloat(t *testing.T) {
	tests := []struct {
		f    float64
		want string
	}{
		{3.14, "3.14"},
		{1, "1.0"},
		{-0.5, "-0.5"},
		{1e21, "1e+21"},
	}
	for _, tt := range tests {
		got, err := formatFloat(tt.f)
		if err != nil {
			t.Fatal(err)
		}
		if got != tt.want {
			t.Fatalf("formatFloat(%v) = %q, want %q", tt.f, got, tt.want)
		}
	}
}
