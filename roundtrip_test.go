package toon

import "testing"

// Encode then Decode must reproduce the value exactly, kinds included,
// for everything except the documented lossy table exception.
func TestRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		v    *Value
	}{
		{"null", Null()},
		{"bool", Bool(false)},
		{"int", Int(-42)},
		{"float", Float(3.14)},
		{"whole float", Float(2)},
		{"string", Str("hello world")},
		{"numeric string", Str("123")},
		{"float string", Str("1.5e3")},
		{"bool string", Str("false")},
		{"empty string", Str("")},
		{"padded string", Str("  spaced  ")},
		{"escapes", Str("line1\nline2\\done")},
		{"quoted content", Str(`say "hi" | bye`)},
		{"empty seq", Seq()},
		{"empty map", Map()},
		{"short primitives", Seq(Int(1), Float(2.5), Str("x"), Null(), Bool(true))},
		{"nested arrays", Seq(Seq(Seq(Int(1), Int(2))))},
		{"mixed", Seq(Int(1), Seq(Int(2)), Map(Field("a", Int(3))))},
		{
			"flat mapping",
			Map(
				Field("n", Null()),
				Field("b", Bool(true)),
				Field("i", Int(42)),
				Field("f", Float(3.14)),
				Field("s", Str("hello")),
			),
		},
		{
			"nested mapping",
			Map(Field("user", Map(
				Field("name", Str("Alice")),
				Field("tags", Seq(Str("admin"), Str("ops"))),
				Field("prefs", Map(Field("theme", Str("dark")))),
			))),
		},
		{
			"table",
			Seq(
				Map(Field("id", Int(1)), Field("name", Str("Alice")), Field("score", Float(9.5))),
				Map(Field("id", Int(2)), Field("name", Str("Bob")), Field("score", Float(7.25))),
			),
		},
		{
			"table with absent keys",
			Seq(
				Map(Field("a", Int(1)), Field("b", Int(2))),
				Map(Field("a", Int(3)), Field("b", Int(4))),
				Map(Field("a", Int(5)), Field("b", Int(6))),
				Map(Field("a", Int(7)), Field("b", Int(8))),
				Map(Field("a", Int(9))),
			),
		},
		{
			"dash list of mappings",
			Seq(
				Map(Field("a", Int(1)), Field("b", Int(2))),
				Map(Field("c", Int(3))),
			),
		},
		{
			"dash list with nested blocks",
			Seq(
				Map(
					Field("user", Map(Field("name", Str("A")))),
					Field("id", Int(1)),
				),
				Map(Field("id", Int(2))),
			),
		},
		{
			"long primitive list",
			Seq(
				Int(0), Int(1), Int(2), Int(3), Int(4), Int(5),
				Int(6), Int(7), Int(8), Int(9), Int(10),
			),
		},
		{
			"keys needing quotes",
			Map(
				Field("a:b", Int(1)),
				Field("with space", Int(2)),
				Field("123", Int(3)),
				Field("", Int(4)),
			),
		},
		{
			"tables nested in dash elements",
			Seq(
				Map(Field("rows", Seq(
					Map(Field("x", Int(1))),
					Map(Field("x", Int(2))),
				))),
				Map(Field("other", Str("y"))),
			),
		},
	}

	cfg := DefaultConfig()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, err := Encode(tt.v, cfg)
			if err != nil {
				t.Fatalf("Encode: %v", err)
			}
			back, err := Decode(text, cfg)
			if err != nil {
				t.Fatalf("Decode of\n%s\n: %v", text, err)
			}
			if !back.Equal(tt.v) {
				t.Fatalf("round trip changed the value.\nencoded:\n%s\ngot: %+v\nwant: %+v", text, back, tt.v)
			}
		})
	}
}

func TestRoundTripQuoteStrings(t *testing.T) {
	cfg := DefaultConfig()
	cfg.QuoteStrings = true
	v := Map(
		Field("s", Str("plain")),
		Field("list", Seq(Str("a"), Str("b"))),
	)
	text, err := Encode(v, cfg)
	if err != nil {
		t.Fatal(err)
	}
	back, err := Decode(text, cfg)
	if err != nil {
		t.Fatal(err)
	}
	if !back.Equal(v) {
		t.Fatalf("got %+v, want %+v", back, v)
	}
}

func TestRoundTripCustomMarkers(t *testing.T) {
	cfg := DefaultConfig()
	cfg.TableSeparator = '!'
	cfg.HeaderFillChar = '='
	v := Seq(
		Map(Field("id", Int(1)), Field("name", Str("Alice"))),
		Map(Field("id", Int(2)), Field("name", Str("Bob"))),
	)
	text, err := Encode(v, cfg)
	if err != nil {
		t.Fatal(err)
	}
	back, err := Decode(text, cfg)
	if err != nil {
		t.Fatalf("Decode of\n%s\n: %v", text, err)
	}
	if !back.Equal(v) {
		t.Fatalf("got %+v, want %+v", back, v)
	}
}

func TestRoundTripWideIndent(t *testing.T) {
	cfg := DefaultConfig()
	cfg.IndentSize = 4
	v := Map(Field("outer", Map(Field("inner", Seq(
		Map(Field("k", Int(1))),
		Map(Field("j", Int(2))),
	)))))
	text, err := Encode(v, cfg)
	if err != nil {
		t.Fatal(err)
	}
	back, err := Decode(text, cfg)
	if err != nil {
		t.Fatalf("Decode of\n%s\n: %v", text, err)
	}
	if !back.Equal(v) {
		t.Fatalf("got %+v, want %+v", back, v)
	}
}
