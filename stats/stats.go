// Package stats measures how much a TOON rendering saves over JSON,
// in bytes and in estimated LLM tokens.
package stats

import (
	"unicode"

	"github.com/toonkit/toon"
)

// Tokenizer counts the tokens a piece of text would cost. Plug in a
// real model tokenizer for exact numbers; HeuristicTokenizer gives a
// model-free estimate good enough for comparisons.
type Tokenizer interface {
	Count(text string) int
}

// HeuristicTokenizer approximates BPE behavior: runs of letters or
// digits cost roughly one token per four characters, and every
// punctuation character costs one token. Whitespace is free but ends
// the current run.
type HeuristicTokenizer struct{}

// Count implements Tokenizer.
func (HeuristicTokenizer) Count(text string) int {
	tokens := 0
	run := 0
	flush := func() {
		if run > 0 {
			tokens += (run + 3) / 4
			run = 0
		}
	}
	for _, r := range text {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			run++
		case unicode.IsSpace(r):
			flush()
		default:
			flush()
			tokens++
		}
	}
	flush()
	return tokens
}

// Measurement is the size of one rendering of a value.
type Measurement struct {
	Label  string
	Text   string
	Tokens int
	Bytes  int
}

// Report compares the TOON and JSON renderings of one value.
type Report struct {
	Toon Measurement
	JSON Measurement
}

// TokenSavings is the fraction of JSON tokens the TOON rendering
// avoids. Negative when TOON costs more.
func (r Report) TokenSavings() float64 {
	if r.JSON.Tokens == 0 {
		return 0
	}
	return 1 - float64(r.Toon.Tokens)/float64(r.JSON.Tokens)
}

// ByteSavings is the fraction of JSON bytes the TOON rendering avoids.
func (r Report) ByteSavings() float64 {
	if r.JSON.Bytes == 0 {
		return 0
	}
	return 1 - float64(r.Toon.Bytes)/float64(r.JSON.Bytes)
}

// Compare renders v both ways under cfg and measures each with tok.
func Compare(v *toon.Value, cfg toon.Config, tok Tokenizer) (Report, error) {
	encoded, err := toon.Encode(v, cfg)
	if err != nil {
		return Report{}, err
	}
	asJSON, err := toon.ToJSON(v)
	if err != nil {
		return Report{}, err
	}
	return Report{
		Toon: measure("toon", encoded, tok),
		JSON: measure("json", string(asJSON), tok),
	}, nil
}

// CompareConfigs renders v under two configs, for tuning thresholds
// against a representative payload.
func CompareConfigs(v *toon.Value, a, b toon.Config, tok Tokenizer) (Measurement, Measurement, error) {
	ea, err := toon.Encode(v, a)
	if err != nil {
		return Measurement{}, Measurement{}, err
	}
	eb, err := toon.Encode(v, b)
	if err != nil {
		return Measurement{}, Measurement{}, err
	}
	return measure("a", ea, tok), measure("b", eb, tok), nil
}

func measure(label, text string, tok Tokenizer) Measurement {
	return Measurement{
		Label:  label,
		Text:   text,
		Tokens: tok.Count(text),
		Bytes:  len(text),
	}
}
