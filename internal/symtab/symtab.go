// Package symtab holds the dictionary that maps manifest names to zobj
// offsets.
package symtab

import (
	"fmt"
	"sort"

	"zobj-alias-compiler/internal/errs"
	"zobj-alias-compiler/internal/manifest"
	"zobj-alias-compiler/internal/zobj"
)

// Placeholder names the appended DF instruction that stands in for
// display lists resolved by the bank.
const Placeholder = "DL_DF_COMMAND"

// Value is either a resolved zobj offset or a marker that the name is
// resolved externally.
type Value struct {
	offset   uint32
	external bool
}

// Resolved returns a Value for a concrete offset.
func Resolved(off uint32) Value { return Value{offset: off} }

// External is the Value of a name resolved by the bank.
var External = Value{external: true}

// Offset returns the resolved offset and false for external values.
func (v Value) Offset() (uint32, bool) {
	return v.offset, !v.external
}

func (v Value) IsExternal() bool { return v.external }

func (v Value) String() string {
	if v.external {
		return "external"
	}
	return fmt.Sprintf("0x%X", v.offset)
}

// Dictionary maps names to values. The zero value is not usable; use New.
type Dictionary struct {
	m map[string]Value
}

func New() *Dictionary {
	return &Dictionary{m: make(map[string]Value)}
}

// Lookup returns the value bound to name.
func (d *Dictionary) Lookup(name string) (Value, bool) {
	v, ok := d.m[name]
	return v, ok
}

// Set binds name to v, replacing any earlier binding.
func (d *Dictionary) Set(name string, v Value) {
	d.m[name] = v
}

// Define binds name to v and fails if name is already bound.
func (d *Dictionary) Define(name string, v Value) error {
	if _, ok := d.m[name]; ok {
		return &errs.Error{Kind: errs.Duplicate, Symbol: name, Msg: fmt.Sprintf("duplicate dictionary entry %q", name)}
	}
	d.m[name] = v
	return nil
}

// Resolve returns the concrete offset for name. External values resolve
// to the placeholder entry.
func (d *Dictionary) Resolve(name string) (uint32, error) {
	v, ok := d.m[name]
	if !ok {
		return 0, unresolved(name)
	}
	if off, ok := v.Offset(); ok {
		return off, nil
	}
	p, ok := d.m[Placeholder]
	if !ok {
		return 0, unresolved(Placeholder)
	}
	off, ok := p.Offset()
	if !ok {
		return 0, &errs.Error{Kind: errs.Argument, Symbol: Placeholder, Msg: "placeholder entry is not resolved"}
	}
	return off, nil
}

func (d *Dictionary) Len() int { return len(d.m) }

// Clone returns an independent copy of d.
func (d *Dictionary) Clone() *Dictionary {
	c := &Dictionary{m: make(map[string]Value, len(d.m))}
	for k, v := range d.m {
		c.m[k] = v
	}
	return c
}

// Entry is one binding in a Listing.
type Entry struct {
	Name  string
	Value Value
}

// Listing returns every binding sorted by name.
func (d *Dictionary) Listing() []Entry {
	out := make([]Entry, 0, len(d.m))
	for k, v := range d.m {
		out = append(out, Entry{Name: k, Value: v})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func unresolved(name string) error {
	return &errs.Error{Kind: errs.Unresolved, Symbol: name, Msg: "dictionary entry not found: " + name}
}

// Merge builds the dictionary from the manifest's literal entries, its
// bank aliases and the zobj trailer. placeholder is the offset of the
// appended DF instruction.
func Merge(m *manifest.Manifest, tr *zobj.Trailer, placeholder uint32) *Dictionary {
	d := New()
	for _, l := range m.Literals {
		d.Set(l.Name, Resolved(l.Offset))
	}

	byKey := make(map[string]string, len(m.Aliases))
	for _, a := range m.Aliases {
		d.Set(a.Name, External)
		byKey[a.Key] = a.Name
	}

	if tr != nil {
		for _, e := range tr.Entries {
			if name, ok := byKey[e.Name]; ok {
				d.Set(name, Resolved(e.Offset))
			}
		}
	}

	d.Set(Placeholder, Resolved(placeholder))
	return d
}
