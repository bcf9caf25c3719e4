package toon

import (
	"fmt"
)

// Kind identifies the variant held by a Value.
type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindInt
	KindFloat
	KindString
	KindSequence
	KindMapping
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindSequence:
		return "sequence"
	case KindMapping:
		return "mapping"
	default:
		return "unknown"
	}
}

// Value is a closed tagged union over the JSON-like data model.
// Integers and floats are separate kinds so an integer and an
// equal-valued float stay distinguishable through a round trip.
type Value struct {
	kind Kind

	boolVal  bool
	intVal   int64
	floatVal float64
	strVal   string

	seqVal []*Value
	mapVal []Entry
}

// Entry is one key/value pair of a Mapping. Entry order is significant:
// it determines object key order and table column order end to end.
type Entry struct {
	Key   string
	Value *Value
}

// ============================================================
// Constructors
// ============================================================

// Null creates a null value.
func Null() *Value {
	return &Value{kind: KindNull}
}

// Bool creates a boolean value.
func Bool(v bool) *Value {
	return &Value{kind: KindBool, boolVal: v}
}

// Int creates an integer value.
func Int(v int64) *Value {
	return &Value{kind: KindInt, intVal: v}
}

// Float creates a floating-point value.
func Float(v float64) *Value {
	return &Value{kind: KindFloat, floatVal: v}
}

// Str creates a string value.
func Str(v string) *Value {
	return &Value{kind: KindString, strVal: v}
}

// Seq creates a sequence from items, preserving order.
func Seq(items ...*Value) *Value {
	return &Value{kind: KindSequence, seqVal: items}
}

// Map creates a mapping from entries, preserving first-seen position.
// A repeated key overwrites the earlier value in place so the
// uniqueness invariant always holds.
func Map(entries ...Entry) *Value {
	v := &Value{kind: KindMapping}
	for _, e := range entries {
		v.Set(e.Key, e.Value)
	}
	return v
}

// Field creates an Entry for use in Map construction.
func Field(key string, value *Value) Entry {
	return Entry{Key: key, Value: value}
}

// ============================================================
// Accessors
// ============================================================

// Kind returns the value kind. A nil Value reports KindNull.
func (v *Value) Kind() Kind {
	if v == nil {
		return KindNull
	}
	return v.kind
}

// IsNull reports whether this is a null value.
func (v *Value) IsNull() bool {
	return v == nil || v.kind == KindNull
}

// AsBool returns the boolean value.
func (v *Value) AsBool() (bool, error) {
	if v.Kind() != KindBool {
		return false, fmt.Errorf("toon: expected bool, got %s", v.Kind())
	}
	return v.boolVal, nil
}

// AsInt returns the integer value.
func (v *Value) AsInt() (int64, error) {
	if v.Kind() != KindInt {
		return 0, fmt.Errorf("toon: expected int, got %s", v.Kind())
	}
	return v.intVal, nil
}

// AsFloat returns the floating-point value.
func (v *Value) AsFloat() (float64, error) {
	if v.Kind() != KindFloat {
		return 0, fmt.Errorf("toon: expected float, got %s", v.Kind())
	}
	return v.floatVal, nil
}

// AsString returns the string value.
func (v *Value) AsString() (string, error) {
	if v.Kind() != KindString {
		return "", fmt.Errorf("toon: expected string, got %s", v.Kind())
	}
	return v.strVal, nil
}

// Items returns the sequence elements.
func (v *Value) Items() ([]*Value, error) {
	if v.Kind() != KindSequence {
		return nil, fmt.Errorf("toon: expected sequence, got %s", v.Kind())
	}
	return v.seqVal, nil
}

// Entries returns the mapping entries in insertion order.
func (v *Value) Entries() ([]Entry, error) {
	if v.Kind() != KindMapping {
		return nil, fmt.Errorf("toon: expected mapping, got %s", v.Kind())
	}
	return v.mapVal, nil
}

// Get returns the value for key in a mapping, or nil if the key is
// absent or the value is not a mapping.
func (v *Value) Get(key string) *Value {
	if v.Kind() != KindMapping {
		return nil
	}
	for _, e := range v.mapVal {
		if e.Key == key {
			return e.Value
		}
	}
	return nil
}

// Len returns the element count of a sequence or entry count of a
// mapping, and 0 for scalars.
func (v *Value) Len() int {
	switch v.Kind() {
	case KindSequence:
		return len(v.seqVal)
	case KindMapping:
		return len(v.mapVal)
	default:
		return 0
	}
}

// ============================================================
// Mutators
// ============================================================

// Set assigns key in a mapping, overwriting an existing entry in place
// or appending a new one.
func (v *Value) Set(key string, val *Value) {
	if v.Kind() != KindMapping {
		panic("toon: Set on non-mapping value")
	}
	for i := range v.mapVal {
		if v.mapVal[i].Key == key {
			v.mapVal[i].Value = val
			return
		}
	}
	v.mapVal = append(v.mapVal, Entry{Key: key, Value: val})
}

// Append adds an element to a sequence.
func (v *Value) Append(item *Value) {
	if v.Kind() != KindSequence {
		panic("toon: Append on non-sequence value")
	}
	v.seqVal = append(v.seqVal, item)
}

// ============================================================
// Equality
// ============================================================

// Equal reports deep equality. Kinds must match exactly: Int(1) and
// Float(1) are not equal. Sequence element order and mapping entry
// order are both significant.
func (v *Value) Equal(o *Value) bool {
	if v.Kind() != o.Kind() {
		return false
	}
	switch v.Kind() {
	case KindNull:
		return true
	case KindBool:
		return v.boolVal == o.boolVal
	case KindInt:
		return v.intVal == o.intVal
	case KindFloat:
		return v.floatVal == o.floatVal
	case KindString:
		return v.strVal == o.strVal
	case KindSequence:
		if len(v.seqVal) != len(o.seqVal) {
			return false
		}
		for i := range v.seqVal {
			if !v.seqVal[i].Equal(o.seqVal[i]) {
				return false
			}
		}
		return true
	case KindMapping:
		if len(v.mapVal) != len(o.mapVal) {
			return false
		}
		for i := range v.mapVal {
			if v.mapVal[i].Key != o.mapVal[i].Key {
				return false
			}
			if !v.mapVal[i].Value.Equal(o.mapVal[i].Value) {
				return false
			}
		}
		return true
	default:
		return false
	}
}
