// Package playas compiles a manifest and a zobj into a zobj carrying an
// alias table in its OBJECT POOL.
package playas

import (
	"zobj-alias-compiler/internal/alias"
	"zobj-alias-compiler/internal/errs"
	"zobj-alias-compiler/internal/manifest"
	"zobj-alias-compiler/internal/symtab"
	"zobj-alias-compiler/internal/zobj"
)

// Result is a fully built zobj. It is immutable; accessors return copies.
type Result struct {
	poolOffset uint32
	poolSize   uint32
	table      []byte
	spans      []alias.Span
	zobj       []byte
	hierarchy  zobj.Hierarchy
	trailer    []zobj.Entry
	dict       *symtab.Dictionary
}

// Build runs the whole pipeline. manifestName and zobjName appear in
// error messages only. asset is not modified.
func Build(manifestSrc, asset []byte, manifestName, zobjName string) (*Result, error) {
	tr, err := zobj.ParseTrailer(asset, zobjName)
	if err != nil {
		return nil, err
	}
	h, err := zobj.FindHierarchy(asset, zobjName)
	if err != nil {
		return nil, err
	}
	trimmed := tr.Trim(asset)

	m, err := manifest.Parse(manifestName, manifestSrc)
	if err != nil {
		return nil, err
	}

	dict := symtab.Merge(m, tr, uint32(len(trimmed)))

	tbl, dict, err := alias.Build(manifestName, m.Pool, dict, h.Header[:])
	if err != nil {
		return nil, err
	}

	out, err := alias.Compose(trimmed, tbl.Bytes, m.Pool.Base)
	if err != nil {
		return nil, errs.Locate(err, manifestName, m.Pool.Line)
	}

	return &Result{
		poolOffset: m.Pool.Base,
		poolSize:   m.Pool.Size,
		table:      tbl.Bytes,
		spans:      tbl.Spans,
		zobj:       out,
		hierarchy:  h,
		trailer:    tr.Entries,
		dict:       dict,
	}, nil
}

// PoolOffset returns the zobj offset the alias table is written to.
func (r *Result) PoolOffset() uint32 { return r.poolOffset }

// PoolSize returns the OBJECT POOL byte budget.
func (r *Result) PoolSize() uint32 { return r.poolSize }

// AliasTable returns the assembled alias table.
func (r *Result) AliasTable() []byte { return clone(r.table) }

// Zobj returns the patched zobj.
func (r *Result) Zobj() []byte { return clone(r.zobj) }

// Spans returns the placement of each compiled call within the table.
func (r *Result) Spans() []alias.Span { return append([]alias.Span(nil), r.spans...) }

// Hierarchy returns the located skeleton header.
func (r *Result) Hierarchy() zobj.Hierarchy { return r.hierarchy }

// Trailer returns the display lists named by the embedded trailer.
func (r *Result) Trailer() []zobj.Entry { return append([]zobj.Entry(nil), r.trailer...) }

// Dictionary returns every symbol known after the build, sorted by name.
func (r *Result) Dictionary() []symtab.Entry { return r.dict.Listing() }

func clone(b []byte) []byte {
	return append([]byte(nil), b...)
}
