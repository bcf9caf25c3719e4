package toon

import "strings"

// Decode parses TOON text into a Value. Failures carry a typed
// *DecodeError with the 1-based source line.
//
// Blank lines are skipped, trailing whitespace is ignored, and both \n
// and \r\n line endings are accepted. Empty input decodes to Null.
func Decode(text string, cfg Config) (*Value, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	lines, err := splitSourceLines(text)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return Null(), nil
	}
	d := &decoder{cfg: cfg, lines: lines}
	return d.run()
}

// srcLine is one non-blank source line with its indentation stripped.
type srcLine struct {
	no     int
	indent int
	text   string
}

func splitSourceLines(text string) ([]srcLine, error) {
	var out []srcLine
	for i, raw := range strings.Split(text, "\n") {
		raw = strings.TrimSuffix(raw, "\r")
		indent := 0
		for indent < len(raw) && raw[indent] == ' ' {
			indent++
		}
		rest := strings.TrimRight(raw[indent:], " \t")
		if rest == "" {
			continue
		}
		if rest[0] == '\t' {
			return nil, decodeErrf(DecodeUnexpectedIndentation, i+1, "tab in indentation")
		}
		out = append(out, srcLine{no: i + 1, indent: indent, text: rest})
	}
	return out, nil
}

// ============================================================
// Frame Stack
// ============================================================

type frameKind uint8

const (
	frameMapping frameKind = iota
	frameDashList
	frameTable
)

// frame is one open block. A dash-list element opens a mapping frame
// with indent -1: its true indent is fixed by the first line after the
// dash, and it closes once a line falls back to minIndent or shallower.
type frame struct {
	kind      frameKind
	indent    int
	minIndent int
	weight    int

	// binding back into the parent frame on close
	bindKey  string
	hasBind  bool
	fromDash bool

	entries []Entry   // frameMapping
	items   []*Value  // frameDashList, frameTable
	columns []string  // frameTable

	// pending is a key whose line carried no value; the next line
	// decides between a nested block and an explicit Null.
	pending    string
	hasPending bool
}

func (f *frame) setEntry(key string, v *Value) {
	for i := range f.entries {
		if f.entries[i].Key == key {
			f.entries[i].Value = v
			return
		}
	}
	f.entries = append(f.entries, Entry{Key: key, Value: v})
}

// childThreshold is the indent a line must exceed to open a nested
// block under this frame's pending key.
func (f *frame) childThreshold(cfg Config) int {
	if f.indent >= 0 {
		return f.indent
	}
	return f.minIndent + cfg.IndentSize
}

func (f *frame) finalize() *Value {
	if f.hasPending {
		f.setEntry(f.pending, Null())
		f.hasPending = false
	}
	if f.kind == frameMapping {
		return &Value{kind: KindMapping, mapVal: f.entries}
	}
	return &Value{kind: KindSequence, seqVal: f.items}
}

type relation uint8

const (
	relBelongs relation = iota
	relCloses
)

// relate decides whether ln is part of this frame, closes it, or is an
// indentation error. An unfixed dash-element frame adopts the line's
// indent as its own.
func (f *frame) relate(ln srcLine, cfg Config) (relation, error) {
	switch f.kind {
	case frameMapping:
		if f.indent < 0 {
			if ln.indent <= f.minIndent {
				return relCloses, nil
			}
			f.indent = ln.indent
			return relBelongs, nil
		}
		switch {
		case ln.indent == f.indent:
			return relBelongs, nil
		case ln.indent < f.indent:
			return relCloses, nil
		default:
			return 0, decodeErrf(DecodeUnexpectedIndentation, ln.no,
				"indent %d does not match any open block", ln.indent)
		}

	case frameDashList:
		switch {
		case ln.indent < f.indent:
			return relCloses, nil
		case ln.indent > f.indent:
			return 0, decodeErrf(DecodeUnexpectedIndentation, ln.no,
				"indent %d does not match any open block", ln.indent)
		case isDashLine(ln.text):
			return relBelongs, nil
		default:
			return 0, decodeErrf(DecodeUnknownLineForm, ln.no,
				"expected dash item, got %q", ln.text)
		}

	default: // frameTable
		if ln.indent > f.indent {
			return 0, decodeErrf(DecodeUnexpectedIndentation, ln.no,
				"indent %d does not match any open block", ln.indent)
		}
		if ln.indent == f.indent && strings.HasPrefix(ln.text, string(cfg.TableSeparator)) {
			return relBelongs, nil
		}
		return relCloses, nil
	}
}

func isDashLine(text string) bool {
	return text == "-" || strings.HasPrefix(text, "- ")
}

func dashRest(text string) string {
	if text == "-" {
		return ""
	}
	return strings.TrimSpace(text[2:])
}

// ============================================================
// Decoder
// ============================================================

type decoder struct {
	cfg    Config
	lines  []srcLine
	pos    int
	stack  []*frame
	depth  int
	result *Value
}

func (d *decoder) run() (*Value, error) {
	first := d.lines[0]
	if first.indent != 0 {
		return nil, decodeErrf(DecodeUnexpectedIndentation, first.no,
			"top-level content must start at column 0")
	}

	switch {
	case strings.HasPrefix(first.text, string(d.cfg.TableSeparator)):
		columns, err := d.consumeTableHeader()
		if err != nil {
			return nil, err
		}
		root := &frame{kind: frameTable, indent: 0, columns: columns}
		if err := d.push(root, 2, first.no); err != nil {
			return nil, err
		}
	case isDashLine(first.text):
		if err := d.push(&frame{kind: frameDashList, indent: 0}, 1, first.no); err != nil {
			return nil, err
		}
	case keyColonIndex(first.text) >= 0:
		if err := d.push(&frame{kind: frameMapping, indent: 0}, 1, first.no); err != nil {
			return nil, err
		}
	default:
		v, err := parseScalar(first.text, d.cfg, first.no, 0)
		if err != nil {
			return nil, err
		}
		if len(d.lines) > 1 {
			return nil, decodeErrf(DecodeUnknownLineForm, d.lines[1].no,
				"content after top-level value")
		}
		return v, nil
	}

	for d.pos < len(d.lines) {
		if err := d.step(); err != nil {
			return nil, err
		}
	}
	for len(d.stack) > 0 {
		d.popFrame()
	}
	return d.result, nil
}

func (d *decoder) top() *frame {
	if len(d.stack) == 0 {
		return nil
	}
	return d.stack[len(d.stack)-1]
}

func (d *decoder) push(f *frame, weight, line int) error {
	f.weight = weight
	d.depth += weight
	if d.depth > d.cfg.MaxNestingDepth {
		return decodeErrf(DecodeDepthExceeded, line,
			"nesting depth %d exceeds limit %d", d.depth, d.cfg.MaxNestingDepth)
	}
	d.stack = append(d.stack, f)
	return nil
}

func (d *decoder) popFrame() {
	f := d.stack[len(d.stack)-1]
	d.stack = d.stack[:len(d.stack)-1]
	d.depth -= f.weight
	v := f.finalize()
	parent := d.top()
	if parent == nil {
		d.result = v
		return
	}
	switch {
	case f.fromDash:
		parent.items = append(parent.items, v)
	case f.hasBind:
		parent.setEntry(f.bindKey, v)
	}
}

// step processes the line at d.pos. It may leave the line unconsumed
// after pushing a child frame; the next call then dispatches it there.
func (d *decoder) step() error {
	ln := d.lines[d.pos]

	// A dangling key decides here: a deeper line opens a nested block
	// bound to it, anything else makes it an explicit Null.
	if top := d.top(); top != nil && top.kind == frameMapping && top.hasPending {
		if ln.indent > top.childThreshold(d.cfg) {
			return d.pushChild(ln, top)
		}
		top.setEntry(top.pending, Null())
		top.hasPending = false
	}

	// Close frames until the line fits one.
	var top *frame
	for {
		top = d.top()
		if top == nil {
			return decodeErrf(DecodeUnknownLineForm, ln.no, "content after top-level value")
		}
		rel, err := top.relate(ln, d.cfg)
		if err != nil {
			return err
		}
		if rel == relBelongs {
			break
		}
		d.popFrame()
	}

	switch top.kind {
	case frameMapping:
		return d.stepMapping(ln, top)
	case frameDashList:
		return d.stepDashList(ln, top)
	default:
		return d.stepTable(ln, top)
	}
}

// pushChild opens the block introduced by a dangling key. Table headers
// consume two lines here; other blocks leave the line for the next step.
func (d *decoder) pushChild(ln srcLine, parent *frame) error {
	key := parent.pending
	parent.hasPending = false

	switch {
	case strings.HasPrefix(ln.text, string(d.cfg.TableSeparator)):
		columns, err := d.consumeTableHeader()
		if err != nil {
			return err
		}
		child := &frame{kind: frameTable, indent: ln.indent, bindKey: key, hasBind: true, columns: columns}
		return d.push(child, 2, ln.no)
	case isDashLine(ln.text):
		child := &frame{kind: frameDashList, indent: ln.indent, bindKey: key, hasBind: true}
		return d.push(child, 1, ln.no)
	default:
		child := &frame{kind: frameMapping, indent: ln.indent, bindKey: key, hasBind: true}
		return d.push(child, 1, ln.no)
	}
}

func (d *decoder) stepMapping(ln srcLine, f *frame) error {
	idx := keyColonIndex(ln.text)
	if idx < 0 {
		return decodeErrf(DecodeUnknownLineForm, ln.no, "expected key: value, got %q", ln.text)
	}
	key, err := decodeKey(strings.TrimSpace(ln.text[:idx]), ln.no)
	if err != nil {
		return err
	}
	rest := strings.TrimSpace(ln.text[idx+1:])
	if rest == "" {
		f.pending = key
		f.hasPending = true
	} else {
		v, err := parseScalar(rest, d.cfg, ln.no, d.depth)
		if err != nil {
			return err
		}
		f.setEntry(key, v)
	}
	d.pos++
	return nil
}

func (d *decoder) stepDashList(ln srcLine, f *frame) error {
	rest := dashRest(ln.text)
	if rest == "" {
		return decodeErrf(DecodeUnknownLineForm, ln.no, "empty dash item")
	}

	if idx := keyColonIndex(rest); idx >= 0 {
		// A key on the dash line starts a mapping element. Its indent is
		// unknown until the next line; further fields may share the dash
		// column plus one level.
		elem := &frame{kind: frameMapping, indent: -1, minIndent: ln.indent, fromDash: true}
		if err := d.push(elem, 1, ln.no); err != nil {
			return err
		}
		key, err := decodeKey(strings.TrimSpace(rest[:idx]), ln.no)
		if err != nil {
			return err
		}
		val := strings.TrimSpace(rest[idx+1:])
		if val == "" {
			elem.pending = key
			elem.hasPending = true
		} else {
			v, err := parseScalar(val, d.cfg, ln.no, d.depth)
			if err != nil {
				return err
			}
			elem.setEntry(key, v)
		}
		d.pos++
		return nil
	}

	v, err := parseScalar(rest, d.cfg, ln.no, d.depth)
	if err != nil {
		return err
	}
	f.items = append(f.items, v)
	d.pos++
	return nil
}

func (d *decoder) stepTable(ln srcLine, f *frame) error {
	cells, err := d.tableCells(ln)
	if err != nil {
		return err
	}
	if len(cells) != len(f.columns) {
		return decodeErrf(DecodeColumnMismatch, ln.no,
			"row has %d cells, header has %d", len(cells), len(f.columns))
	}
	row := Map()
	for j, cell := range cells {
		if cell == "" {
			continue // empty cell: the key is absent from this row
		}
		v, err := parseScalar(cell, d.cfg, ln.no, d.depth)
		if err != nil {
			return err
		}
		row.Set(f.columns[j], v)
	}
	f.items = append(f.items, row)
	d.pos++
	return nil
}

// tableCells splits a table line into trimmed data cells, requiring the
// leading and trailing separators.
func (d *decoder) tableCells(ln srcLine) ([]string, error) {
	parts, err := splitTopLevel(ln.text, byte(d.cfg.TableSeparator), ln.no)
	if err != nil {
		return nil, err
	}
	if len(parts) < 3 || parts[0] != "" || strings.TrimSpace(parts[len(parts)-1]) != "" {
		return nil, decodeErrf(DecodeUnknownLineForm, ln.no,
			"table row must start and end with %q", string(d.cfg.TableSeparator))
	}
	cells := make([]string, len(parts)-2)
	for i, p := range parts[1 : len(parts)-1] {
		cells[i] = strings.TrimSpace(p)
	}
	return cells, nil
}

// consumeTableHeader reads the header row plus the separator row at
// d.pos, returning the column names. d.pos advances past both.
func (d *decoder) consumeTableHeader() ([]string, error) {
	header := d.lines[d.pos]
	cells, err := d.tableCells(header)
	if err != nil {
		return nil, err
	}
	columns := make([]string, len(cells))
	for i, c := range cells {
		key, err := decodeKey(c, header.no)
		if err != nil {
			return nil, err
		}
		columns[i] = key
	}

	if d.pos+1 >= len(d.lines) {
		return nil, decodeErrf(DecodeUnknownLineForm, header.no, "missing table separator row")
	}
	sep := d.lines[d.pos+1]
	if sep.indent != header.indent {
		return nil, decodeErrf(DecodeUnexpectedIndentation, sep.no,
			"table separator row must match header indent")
	}
	if !strings.HasPrefix(sep.text, string(d.cfg.TableSeparator)) {
		return nil, decodeErrf(DecodeUnknownLineForm, sep.no, "expected table separator row")
	}
	sepCells, err := d.tableCells(sep)
	if err != nil {
		return nil, err
	}
	if len(sepCells) != len(columns) {
		return nil, decodeErrf(DecodeColumnMismatch, sep.no,
			"separator row has %d cells, header has %d", len(sepCells), len(columns))
	}
	fill := string(d.cfg.HeaderFillChar)
	for _, c := range sepCells {
		if c == "" || strings.Trim(c, fill) != "" {
			return nil, decodeErrf(DecodeUnknownLineForm, sep.no,
				"separator row cells must contain only %q", fill)
		}
	}

	d.pos += 2
	return columns, nil
}
