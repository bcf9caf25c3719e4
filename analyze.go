package toon

import (
	"fmt"
	"sort"
	"strings"
)

// StructureKind is the analyzer's decision of which rendering and
// parsing shape applies to a value.
type StructureKind uint8

const (
	StructurePrimitive StructureKind = iota
	StructureInlineArray
	StructureTable
	StructureDashList
	StructureMapping
	StructureMixedInline
)

// String returns the kind name.
func (k StructureKind) String() string {
	switch k {
	case StructurePrimitive:
		return "primitive"
	case StructureInlineArray:
		return "inline-array"
	case StructureTable:
		return "table"
	case StructureDashList:
		return "dash-list"
	case StructureMapping:
		return "mapping"
	case StructureMixedInline:
		return "mixed-inline"
	default:
		return "unknown"
	}
}

// StructureInfo is the analyzer output for one value. It is computed
// fresh per call, never cached or mutated.
type StructureInfo struct {
	Kind StructureKind

	// Columns is the table column list in first-seen key order.
	// Only set for StructureTable.
	Columns []string

	// Depth is the structural nesting depth of the analyzed value.
	Depth int
}

// Classify decides the rendering shape of v under cfg and computes its
// structural depth. It fails with EncodeError{DepthExceeded} when the
// depth would exceed cfg.MaxNestingDepth.
func Classify(v *Value, cfg Config) (StructureInfo, error) {
	if err := cfg.Validate(); err != nil {
		return StructureInfo{}, err
	}
	depth := structuralDepth(v)
	if depth > cfg.MaxNestingDepth {
		return StructureInfo{}, &EncodeError{
			Code: EncodeDepthExceeded,
			Msg:  fmt.Sprintf("nesting depth %d exceeds limit %d", depth, cfg.MaxNestingDepth),
		}
	}
	info := classifyValue(v, cfg)
	info.Depth = depth
	return info, nil
}

// classifyValue is the depth-free core shared with the encoder, which
// has already depth-checked the root.
func classifyValue(v *Value, cfg Config) StructureInfo {
	switch v.Kind() {
	case KindSequence:
		return classifySequence(v.seqVal, cfg)
	case KindMapping:
		if len(v.mapVal) == 0 {
			return StructureInfo{Kind: StructurePrimitive}
		}
		return StructureInfo{Kind: StructureMapping}
	default:
		return StructureInfo{Kind: StructurePrimitive}
	}
}

func classifySequence(items []*Value, cfg Config) StructureInfo {
	if len(items) == 0 {
		return StructureInfo{Kind: StructureInlineArray}
	}

	allPrimitive := true
	allSequence := true
	allMapping := true
	for _, item := range items {
		switch item.Kind() {
		case KindSequence:
			allPrimitive = false
			allMapping = false
		case KindMapping:
			allPrimitive = false
			allSequence = false
		default:
			allSequence = false
			allMapping = false
		}
	}

	switch {
	case allSequence:
		// Arrays of arrays always inline: a dash-list rendering of a
		// nested array is not distinguishable from a list of scalars
		// on decode.
		return StructureInfo{Kind: StructureMixedInline}

	case allPrimitive:
		if cfg.CompressPrimitiveArrays && len(items) <= cfg.MaxInlineArrayLength {
			return StructureInfo{Kind: StructureInlineArray}
		}
		return StructureInfo{Kind: StructureDashList}

	case allMapping:
		columns, frac := majorityKeySet(items)
		if len(columns) > 0 && frac >= cfg.UniformityThreshold && len(items) >= cfg.MinTableRows {
			return StructureInfo{Kind: StructureTable, Columns: columns}
		}
		return StructureInfo{Kind: StructureDashList}

	default:
		return StructureInfo{Kind: StructureMixedInline}
	}
}

// majorityKeySet finds the key set shared by the largest fraction of
// mapping elements. It returns the winning set's keys in the insertion
// order of the first element carrying it, plus the fraction. Ties go to
// the earlier first-seen set.
func majorityKeySet(items []*Value) ([]string, float64) {
	counts := make(map[string]int, len(items))
	firstSeen := make(map[string]int, len(items))
	for i, item := range items {
		sig := keySetSignature(item.mapVal)
		counts[sig]++
		if _, ok := firstSeen[sig]; !ok {
			firstSeen[sig] = i
		}
	}

	bestSig := ""
	bestCount := -1
	for sig, n := range counts {
		switch {
		case n > bestCount:
			bestSig, bestCount = sig, n
		case n == bestCount && firstSeen[sig] < firstSeen[bestSig]:
			bestSig = sig
		}
	}

	winner := items[firstSeen[bestSig]].mapVal
	columns := make([]string, len(winner))
	for i, e := range winner {
		columns[i] = e.Key
	}
	return columns, float64(bestCount) / float64(len(items))
}

// keySetSignature is an order-insensitive identity for a key set.
func keySetSignature(entries []Entry) string {
	keys := make([]string, len(entries))
	for i, e := range entries {
		keys[i] = e.Key
	}
	sort.Strings(keys)
	return strings.Join(keys, "\x00")
}

// structuralDepth computes container nesting depth iteratively, so
// pathological inputs cannot blow the call stack. Scalars are depth 0;
// a container is one deeper than its deepest child container.
func structuralDepth(v *Value) int {
	type item struct {
		v *Value
		d int
	}
	max := 0
	var stack []item
	push := func(v *Value, parentDepth int) {
		switch v.Kind() {
		case KindSequence, KindMapping:
			stack = append(stack, item{v, parentDepth + 1})
			if parentDepth+1 > max {
				max = parentDepth + 1
			}
		}
	}
	push(v, 0)
	for len(stack) > 0 {
		it := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		switch it.v.Kind() {
		case KindSequence:
			for _, c := range it.v.seqVal {
				push(c, it.d)
			}
		case KindMapping:
			for _, e := range it.v.mapVal {
				push(e.Value, it.d)
			}
		}
	}
	return max
}
