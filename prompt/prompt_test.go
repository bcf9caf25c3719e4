package prompt

import (
	"strings"
	"testing"

	"github.com/toonkit/toon"
)

func TestWrapFenced(t *testing.T) {
	v := toon.Map(toon.Field("a", toon.Int(1)))
	got, err := Wrap(v, toon.DefaultConfig(), DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	want := "```toon\na: 1\n```"
	if got != want {
		t.Fatalf("Wrap = %q, want %q", got, want)
	}
}

func TestWrapPreamble(t *testing.T) {
	v := toon.Str("hello")
	opts := Options{Preamble: "The data:", Fence: true, FenceTag: "toon"}
	got, err := Wrap(v, toon.DefaultConfig(), opts)
	if err != nil {
		t.Fatal(err)
	}
	want := "The data:\n\n```toon\nhello\n```"
	if got != want {
		t.Fatalf("Wrap = %q, want %q", got, want)
	}
}

func TestWrapBare(t *testing.T) {
	v := toon.Seq(toon.Int(1), toon.Int(2))
	got, err := Wrap(v, toon.DefaultConfig(), Options{})
	if err != nil {
		t.Fatal(err)
	}
	if got != "[1, 2]" {
		t.Fatalf("Wrap = %q", got)
	}
}

func TestWrapTruncatesStrings(t *testing.T) {
	cfg := toon.DefaultConfig()
	cfg.MaxStringLength = 5

	v := toon.Map(
		toon.Field("short", toon.Str("abc")),
		toon.Field("long", toon.Str("abcdefghij")),
	)
	got, err := Wrap(v, cfg, Options{})
	if err != nil {
		t.Fatal(err)
	}
	want := "short: abc\nlong: abcde…"
	if got != want {
		t.Fatalf("Wrap = %q, want %q", got, want)
	}

	// The caller's value is untouched.
	if s, _ := v.Get("long").AsString(); s != "abcdefghij" {
		t.Fatalf("input mutated to %q", s)
	}
}

func TestWrapTruncationIsRuneSafe(t *testing.T) {
	cfg := toon.DefaultConfig()
	cfg.MaxStringLength = 3

	v := toon.Str("héllo wörld")
	got, err := Wrap(v, cfg, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if got != "hél…" {
		t.Fatalf("Wrap = %q", got)
	}
	if !strings.HasSuffix(got, "…") {
		t.Fatalf("missing ellipsis: %q", got)
	}
}

func TestWrapPropagatesEncodeErrors(t *testing.T) {
	cfg := toon.DefaultConfig()
	cfg.MaxNestingDepth = 1
	v := toon.Map(toon.Field("a", toon.Map(toon.Field("b", toon.Int(1)))))
	if _, err := Wrap(v, cfg, DefaultOptions()); err == nil {
		t.Fatal("expected depth error")
	}
}
