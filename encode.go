package toon

import (
	"strings"
	"unicode/utf8"
)

// Encode renders v as TOON text. It is a pure function: identical
// (value, config) inputs always yield identical text, there are no side
// effects, and concurrent calls need no coordination.
//
// The output carries no trailing newline.
func Encode(v *Value, cfg Config) (string, error) {
	info, err := Classify(v, cfg)
	if err != nil {
		return "", err
	}
	e := &encoder{cfg: cfg}
	if err := e.encodeRoot(v, info); err != nil {
		return "", err
	}
	return strings.Join(e.lines, "\n"), nil
}

type encoder struct {
	cfg   Config
	lines []string
}

func (e *encoder) writeLine(indent int, text string) {
	e.lines = append(e.lines, strings.Repeat(" ", indent)+text)
}

func (e *encoder) encodeRoot(v *Value, info StructureInfo) error {
	switch info.Kind {
	case StructurePrimitive, StructureInlineArray, StructureMixedInline:
		s, err := e.inline(v)
		if err != nil {
			return err
		}
		e.lines = append(e.lines, s)
		return nil
	case StructureMapping:
		return e.writeMapping(v, 0)
	case StructureTable:
		return e.writeTable(v, info.Columns, 0)
	case StructureDashList:
		return e.writeDashList(v, 0)
	default:
		return nil
	}
}

// inline renders any value as a one-line literal: scalars per the
// scalar grammar, containers as [..] / {..}.
func (e *encoder) inline(v *Value) (string, error) {
	switch v.Kind() {
	case KindSequence:
		var b strings.Builder
		b.WriteByte('[')
		for i, item := range v.seqVal {
			if i > 0 {
				b.WriteString(", ")
			}
			s, err := e.inline(item)
			if err != nil {
				return "", err
			}
			b.WriteString(s)
		}
		b.WriteByte(']')
		return b.String(), nil
	case KindMapping:
		var b strings.Builder
		b.WriteByte('{')
		for i, ent := range v.mapVal {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(formatKey(ent.Key, e.cfg))
			b.WriteString(": ")
			s, err := e.inline(ent.Value)
			if err != nil {
				return "", err
			}
			b.WriteString(s)
		}
		b.WriteByte('}')
		return b.String(), nil
	default:
		return formatScalar(v, e.cfg)
	}
}

func (e *encoder) writeMapping(v *Value, indent int) error {
	for _, ent := range v.mapVal {
		if err := e.writeEntry(ent, indent, false); err != nil {
			return err
		}
	}
	return nil
}

// writeEntry emits one key line plus any nested block. When dash is
// set, the entry starts a dash-list element and shares the dash line.
func (e *encoder) writeEntry(ent Entry, indent int, dash bool) error {
	key := formatKey(ent.Key, e.cfg)
	info := classifyValue(ent.Value, e.cfg)

	head := key + ":"
	nested := false
	switch info.Kind {
	case StructurePrimitive, StructureInlineArray, StructureMixedInline:
		s, err := e.inline(ent.Value)
		if err != nil {
			return err
		}
		head = key + ": " + s
	default:
		nested = true
	}

	if dash {
		e.writeLine(indent, "- "+head)
	} else {
		e.writeLine(indent, head)
	}
	if !nested {
		return nil
	}

	// A dash-line entry sits logically one level past the dash, so its
	// nested block indents two levels past the dash column.
	childIndent := indent + e.cfg.IndentSize
	if dash {
		childIndent += e.cfg.IndentSize
	}
	switch info.Kind {
	case StructureMapping:
		return e.writeMapping(ent.Value, childIndent)
	case StructureTable:
		return e.writeTable(ent.Value, info.Columns, childIndent)
	case StructureDashList:
		return e.writeDashList(ent.Value, childIndent)
	}
	return nil
}

func (e *encoder) writeDashList(v *Value, indent int) error {
	for _, item := range v.seqVal {
		info := classifyValue(item, e.cfg)
		if info.Kind != StructureMapping {
			s, err := e.inline(item)
			if err != nil {
				return err
			}
			e.writeLine(indent, "- "+s)
			continue
		}
		fieldIndent := indent + e.cfg.IndentSize
		for i, ent := range item.mapVal {
			if i == 0 {
				if err := e.writeEntry(ent, indent, true); err != nil {
					return err
				}
				continue
			}
			if err := e.writeEntry(ent, fieldIndent, false); err != nil {
				return err
			}
		}
	}
	return nil
}

func (e *encoder) writeTable(v *Value, columns []string, indent int) error {
	header := make([]string, len(columns))
	for j, col := range columns {
		header[j] = formatKey(col, e.cfg)
	}

	rows := make([][]string, len(v.seqVal))
	for i, item := range v.seqVal {
		row := make([]string, len(columns))
		for j, col := range columns {
			cell := item.Get(col)
			if cell == nil {
				continue // absent key renders as an empty cell
			}
			s, err := e.inline(cell)
			if err != nil {
				return err
			}
			row[j] = s
		}
		rows[i] = row
	}

	widths := make([]int, len(columns))
	for j := range columns {
		widths[j] = utf8.RuneCountInString(header[j])
	}
	for _, row := range rows {
		for j, cell := range row {
			if w := utf8.RuneCountInString(cell); w > widths[j] {
				widths[j] = w
			}
		}
	}

	e.writeLine(indent, e.tableRow(header, widths))
	e.writeLine(indent, e.separatorRow(widths))
	for _, row := range rows {
		e.writeLine(indent, e.tableRow(row, widths))
	}
	return nil
}

func (e *encoder) tableRow(cells []string, widths []int) string {
	sep := string(e.cfg.TableSeparator)
	var b strings.Builder
	for j, cell := range cells {
		b.WriteString(sep)
		b.WriteByte(' ')
		b.WriteString(cell)
		b.WriteString(strings.Repeat(" ", widths[j]-utf8.RuneCountInString(cell)+1))
	}
	b.WriteString(sep)
	return b.String()
}

func (e *encoder) separatorRow(widths []int) string {
	sep := string(e.cfg.TableSeparator)
	fill := string(e.cfg.HeaderFillChar)
	var b strings.Builder
	for _, w := range widths {
		b.WriteString(sep)
		b.WriteString(strings.Repeat(fill, w+2))
	}
	b.WriteString(sep)
	return b.String()
}
