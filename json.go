package toon

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"
)

// ============================================================
// JSON Bridge
// ============================================================

// maxJSONDepth bounds container nesting in FromJSON input, keeping the
// bridge's recursion on the same footing as the decoder's explicit
// stack.
const maxJSONDepth = 1000

// FromJSON parses a JSON document into a Value. Object key order is
// preserved, and numbers keep the int/float distinction: a literal
// without fraction or exponent that fits int64 becomes KindInt,
// everything else KindFloat.
func FromJSON(data []byte) (*Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	v, err := readJSONValue(dec, 0)
	if err != nil {
		return nil, fmt.Errorf("toon: invalid JSON: %w", err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("toon: trailing content after JSON value")
	}
	return v, nil
}

func readJSONValue(dec *json.Decoder, depth int) (*Value, error) {
	if depth > maxJSONDepth {
		return nil, fmt.Errorf("nesting depth exceeds %d", maxJSONDepth)
	}
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	switch t := tok.(type) {
	case nil:
		return Null(), nil
	case bool:
		return Bool(t), nil
	case string:
		return Str(t), nil
	case json.Number:
		if n, err := strconv.ParseInt(t.String(), 10, 64); err == nil {
			return Int(n), nil
		}
		f, err := t.Float64()
		if err != nil {
			return nil, err
		}
		return Float(f), nil
	case json.Delim:
		switch t {
		case '[':
			seq := Seq()
			for dec.More() {
				item, err := readJSONValue(dec, depth+1)
				if err != nil {
					return nil, err
				}
				seq.Append(item)
			}
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			return seq, nil
		case '{':
			m := Map()
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return nil, err
				}
				key, ok := keyTok.(string)
				if !ok {
					return nil, fmt.Errorf("object key is %T, want string", keyTok)
				}
				val, err := readJSONValue(dec, depth+1)
				if err != nil {
					return nil, err
				}
				m.Set(key, val)
			}
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			return m, nil
		}
	}
	return nil, fmt.Errorf("unexpected JSON token %v", tok)
}

// ToJSON renders v as compact JSON, preserving entry order. Non-finite
// floats fail with EncodeError{EncodeUnsupportedNumber}.
func ToJSON(v *Value) ([]byte, error) {
	var b bytes.Buffer
	if err := writeJSON(&b, v); err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}

// ToJSONIndent is ToJSON with the given indentation per nesting level.
func ToJSONIndent(v *Value, indent string) ([]byte, error) {
	compact, err := ToJSON(v)
	if err != nil {
		return nil, err
	}
	var b bytes.Buffer
	if err := json.Indent(&b, compact, "", indent); err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}

func writeJSON(b *bytes.Buffer, v *Value) error {
	switch v.Kind() {
	case KindNull:
		b.WriteString("null")
	case KindBool:
		b.WriteString(strconv.FormatBool(v.boolVal))
	case KindInt:
		b.WriteString(strconv.FormatInt(v.intVal, 10))
	case KindFloat:
		if math.IsNaN(v.floatVal) || math.IsInf(v.floatVal, 0) {
			return &EncodeError{Code: EncodeUnsupportedNumber, Msg: "non-finite float has no JSON form"}
		}
		b.WriteString(strconv.FormatFloat(v.floatVal, 'g', -1, 64))
	case KindString:
		enc, err := json.Marshal(v.strVal)
		if err != nil {
			return err
		}
		b.Write(enc)
	case KindSequence:
		b.WriteByte('[')
		for i, item := range v.seqVal {
			if i > 0 {
				b.WriteByte(',')
			}
			if err := writeJSON(b, item); err != nil {
				return err
			}
		}
		b.WriteByte(']')
	case KindMapping:
		b.WriteByte('{')
		for i, ent := range v.mapVal {
			if i > 0 {
				b.WriteByte(',')
			}
			key, err := json.Marshal(ent.Key)
			if err != nil {
				return err
			}
			b.Write(key)
			b.WriteByte(':')
			if err := writeJSON(b, ent.Value); err != nil {
				return err
			}
		}
		b.WriteByte('}')
	}
	return nil
}
