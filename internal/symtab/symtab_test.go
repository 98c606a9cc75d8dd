package symtab

import (
	"testing"

	"zobj-alias-compiler/internal/errs"
	"zobj-alias-compiler/internal/manifest"
	"zobj-alias-compiler/internal/zobj"
)

func TestMerge(t *testing.T) {
	m := &manifest.Manifest{
		Literals: []manifest.Literal{
			{Name: "MATRIX_SWORD", Offset: 0x5008},
			{Name: "DL_SHIELD", Offset: 0x1},
			{Name: "ZERO", Offset: 0},
		},
		Aliases: []manifest.Alias{
			{Name: "DL_SHIELD", Key: "Shield"},
			{Name: "DL_BOTTLE", Key: "Bottle"},
		},
	}
	tr := &zobj.Trailer{Entries: []zobj.Entry{
		{Name: "Shield", Offset: 0x2340},
		{Name: "Unused", Offset: 0x9990},
	}}

	d := Merge(m, tr, 0x8000)

	tests := []struct {
		name string
		want Value
	}{
		{"MATRIX_SWORD", Resolved(0x5008)},
		{"ZERO", Resolved(0)},
		{"DL_SHIELD", Resolved(0x2340)},
		{"DL_BOTTLE", External},
		{Placeholder, Resolved(0x8000)},
	}
	for _, tc := range tests {
		got, ok := d.Lookup(tc.name)
		if !ok || got != tc.want {
			t.Errorf("Lookup(%s) = %v, %v; want %v", tc.name, got, ok, tc.want)
		}
	}
	if _, ok := d.Lookup("Unused"); ok {
		t.Errorf("trailer entry without alias leaked into dictionary")
	}
	if d.Len() != 5 {
		t.Errorf("Len = %d; want 5", d.Len())
	}
}

func TestResolve(t *testing.T) {
	d := New()
	d.Set("A", Resolved(0))
	d.Set("BANK", External)

	if off, err := d.Resolve("A"); err != nil || off != 0 {
		t.Errorf("Resolve(A) = %#x, %v", off, err)
	}
	if _, err := d.Resolve("BANK"); !errs.Is(err, errs.Unresolved) {
		t.Errorf("Resolve(BANK) without placeholder: err = %v", err)
	}
	d.Set(Placeholder, Resolved(0x1F0))
	if off, err := d.Resolve("BANK"); err != nil || off != 0x1F0 {
		t.Errorf("Resolve(BANK) = %#x, %v; want 0x1F0", off, err)
	}
	_, err := d.Resolve("missing")
	if !errs.Is(err, errs.Unresolved) || err.Error() != "dictionary entry not found: missing" {
		t.Errorf("Resolve(missing) = %v", err)
	}
}

func TestDefineRejectsDuplicates(t *testing.T) {
	d := New()
	if err := d.Define("L", Resolved(4)); err != nil {
		t.Fatalf("Define: %v", err)
	}
	c := d.Clone()
	if err := c.Define("L", Resolved(8)); !errs.Is(err, errs.Duplicate) {
		t.Errorf("second Define: err = %v; want Duplicate", err)
	}
	if err := c.Define("M", Resolved(8)); err != nil {
		t.Errorf("Define(M) = %v", err)
	}
	if _, ok := d.Lookup("M"); ok {
		t.Errorf("Clone shares storage with original")
	}
	l := c.Listing()
	if len(l) != 2 || l[0].Name != "L" || l[1].Name != "M" {
		t.Errorf("Listing = %+v", l)
	}
}
