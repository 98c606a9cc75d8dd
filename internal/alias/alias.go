// Package alias assembles the OBJECT POOL into an alias table and writes
// it into the zobj.
package alias

import (
	"bytes"
	"fmt"

	"zobj-alias-compiler/internal/errs"
	"zobj-alias-compiler/internal/gbi"
	"zobj-alias-compiler/internal/manifest"
	"zobj-alias-compiler/internal/symtab"
)

// SpanHierarchy marks the copied hierarchy header in Table.Spans.
const SpanHierarchy = "Hierarchy"

// flagOffset is the distance back from the end of the table to the
// flag byte of a group's trailing CallList.
const flagOffset = 7

// Span locates one compiled call, or the hierarchy header, in a table.
type Span struct {
	Label  string
	Fn     string
	Offset int
	Len    int
}

// Table is an assembled alias table.
type Table struct {
	Bytes []byte
	Spans []Span
}

// Build compiles every group of pool in order. Each label is bound to
// its pool address before its calls compile, so a group may reference
// itself and any earlier group. The hierarchy header is appended last.
// dict is not modified; the returned dictionary includes pool labels.
func Build(file string, pool manifest.Pool, dict *symtab.Dictionary, header []byte) (*Table, *symtab.Dictionary, error) {
	d := dict.Clone()
	var buf bytes.Buffer
	t := &Table{}

	for _, g := range pool.Groups {
		if err := d.Define(g.Label, symtab.Resolved(pool.Base+uint32(buf.Len()))); err != nil {
			return nil, nil, errs.Locate(err, file, g.Line)
		}

		last := ""
		for _, c := range g.Calls {
			call, err := gbi.ParseCall(c.Text)
			if err != nil {
				return nil, nil, errs.Locate(err, file, c.Line)
			}
			code, err := gbi.Compile(call, d)
			if err != nil {
				return nil, nil, errs.Locate(err, file, c.Line)
			}
			t.Spans = append(t.Spans, Span{Label: g.Label, Fn: call.Name, Offset: buf.Len(), Len: len(code)})
			buf.Write(code)
			last = call.Name
		}

		// DE00 -> DE01 on the last CallList of a group.
		if last == gbi.FnCallList {
			buf.Bytes()[buf.Len()-flagOffset] = 0x01
		}
	}

	t.Spans = append(t.Spans, Span{Fn: SpanHierarchy, Offset: buf.Len(), Len: len(header)})
	buf.Write(header)

	if uint64(buf.Len()) > uint64(pool.Size) {
		return nil, nil, &errs.Error{
			Kind: errs.Capacity,
			File: file,
			Line: pool.Line,
			Msg:  fmt.Sprintf("alias table exceeds max OBJECT POOL size (0x%X > 0x%X)", buf.Len(), pool.Size),
		}
	}

	t.Bytes = buf.Bytes()
	return t, d, nil
}

// Compose returns trimmed followed by the placeholder command, with the
// table written at base.
func Compose(trimmed []byte, table []byte, base uint32) ([]byte, error) {
	out := make([]byte, 0, len(trimmed)+gbi.InstrSize)
	out = append(out, trimmed...)
	out = append(out, gbi.Placeholder[:]...)

	if uint64(base)+uint64(len(table)) > uint64(len(out)) {
		return nil, errs.New(errs.Capacity, "alias table at 0x%X (0x%X bytes) extends past end of zobj (0x%X)", base, len(table), len(out))
	}
	copy(out[base:], table)
	return out, nil
}
