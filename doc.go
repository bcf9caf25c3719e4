// Package toon implements TOON, a compact indentation- and table-based
// text form for JSON-like data.
//
// TOON is designed to be:
//   - Token-cheap when embedding structured data in LLM prompts
//   - Line-oriented and indentation-driven (one line = one unit)
//   - Losslessly reversible for values the encoder itself produced
//   - Deterministic (identical value + config always yields identical text)
//
// # Data Model
//
// Scalars: null, bool, int, float, string
// Containers: sequence (ordered), mapping (ordered keys, unique)
//
// Integers and floats are distinct kinds so that 1 and 1.0 survive a
// round trip unchanged.
//
// # Syntax
//
// Mapping:      key: value        (nested blocks indent by IndentSize)
// Inline array: [1, 2, 3]
// Table:        | id | name  |    (uniform arrays of mappings)
//               |----|-------|
//               | 1  | Alice |
// Dash list:    - key: value      (mapping arrays below table thresholds)
//               - bare value      (primitive elements)
//
// # Structural Classification
//
// The analyzer decides which rendering applies to each sequence: short
// all-primitive sequences inline as [..]; uniform mapping sequences (the
// majority key set covers at least UniformityThreshold of the elements,
// and there are at least MinTableRows of them) render as tables; other
// mapping sequences render as dash lists; everything else renders as a
// one-line inline literal.
//
// # Concurrency
//
// Encode and Decode are pure functions of their inputs; concurrent
// callers need no coordination.
package toon
