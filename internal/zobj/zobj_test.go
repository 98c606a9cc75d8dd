package zobj_test

import (
	"bytes"
	"encoding/binary"
	"testing"

	"zobj-alias-compiler/internal/errs"
	"zobj-alias-compiler/internal/zobj"
	"zobj-alias-compiler/internal/zobj/zobjtest"
)

func TestParseTrailer(t *testing.T) {
	asset := zobjtest.WithTrailer(zobjtest.Skeleton(),
		zobj.Entry{Name: "Sword", Offset: 0x1230},
		zobj.Entry{Name: "Shield Back", Offset: 0x4560},
	)

	tr, err := zobj.ParseTrailer(asset, "link.zobj")
	if err != nil {
		t.Fatalf("ParseTrailer: %v", err)
	}
	if tr.Offset != zobjtest.Size {
		t.Errorf("Offset = %#x; want %#x", tr.Offset, zobjtest.Size)
	}
	if len(tr.Entries) != 2 {
		t.Fatalf("entries = %d; want 2", len(tr.Entries))
	}
	if off, ok := tr.Lookup("Shield Back"); !ok || off != 0x4560 {
		t.Errorf("Lookup(Shield Back) = %#x, %v", off, ok)
	}
	if tr.Entries[0].Name != "Sword" || tr.Entries[0].Offset != 0x1230 {
		t.Errorf("entry 0 = %+v", tr.Entries[0])
	}

	trimmed := tr.Trim(asset)
	if !bytes.Equal(trimmed, zobjtest.Skeleton()) {
		t.Errorf("Trim left %d bytes; want %d", len(trimmed), zobjtest.Size)
	}
}

func TestParseTrailerErrors(t *testing.T) {
	if _, err := zobj.ParseTrailer(zobjtest.Skeleton(), "bare.zobj"); !errs.Is(err, errs.NotFound) {
		t.Errorf("missing marker: err = %v; want NotFound", err)
	}

	asset := zobjtest.WithTrailer(zobjtest.Skeleton(), zobj.Entry{Name: "A", Offset: 8})
	// claim three entries while only one is present
	binary.BigEndian.PutUint16(asset[zobjtest.Size+0x10:], 3)
	if _, err := zobj.ParseTrailer(asset, "short.zobj"); !errs.Is(err, errs.Syntax) {
		t.Errorf("truncated: err = %v; want Syntax", err)
	}
}

func TestFindHierarchy(t *testing.T) {
	asset := zobjtest.Skeleton()
	h, err := zobj.FindHierarchy(asset, "link.zobj")
	if err != nil {
		t.Fatalf("FindHierarchy: %v", err)
	}
	if h.Offset != zobjtest.HeaderOffset {
		t.Errorf("Offset = %#x; want %#x", h.Offset, zobjtest.HeaderOffset)
	}
	if !bytes.Equal(h.Header[:], zobjtest.Header()) {
		t.Errorf("Header = % x", h.Header)
	}
	if h.LimbTable() != 0x06000000|zobjtest.TableOffset || h.Limbs() != 21 || h.DLists() != 18 {
		t.Errorf("decoded header = %#x %d %d", h.LimbTable(), h.Limbs(), h.DLists())
	}

	again, _ := zobj.FindHierarchy(asset, "link.zobj")
	if again != h {
		t.Errorf("repeated scan differs: %+v vs %+v", again, h)
	}
}

func TestFindHierarchySkipsDecoys(t *testing.T) {
	asset := zobjtest.Skeleton()
	// A decoy pattern early in the file whose table pointer is misaligned.
	decoy := []byte{0x06, 0x00, 0x03, 0x04, 0x15, 0, 0, 0, 0x12, 0, 0, 0}
	copy(asset[0x10:], decoy)
	// A second decoy at offset 0 with no room for the pointer.
	copy(asset[0:], []byte{0x15, 0, 0, 0, 0x12, 0, 0, 0})

	h, err := zobj.FindHierarchy(asset, "link.zobj")
	if err != nil {
		t.Fatalf("FindHierarchy: %v", err)
	}
	if h.Offset != zobjtest.HeaderOffset {
		t.Errorf("Offset = %#x; want %#x", h.Offset, zobjtest.HeaderOffset)
	}
}

func TestFindHierarchyRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(a []byte)
	}{
		{"no pattern", func(a []byte) { a[zobjtest.HeaderOffset+4] = 0x14 }},
		{"wrong segment", func(a []byte) { a[zobjtest.TableOffset+5*4] = 0x04 }},
		{"unaligned limb", func(a []byte) {
			binary.BigEndian.PutUint32(a[zobjtest.TableOffset+2*4:], 0x06000104)
		}},
		{"limb out of range", func(a []byte) {
			binary.BigEndian.PutUint32(a[zobjtest.TableOffset:], 0x060003F8)
		}},
		{"low detail differs", func(a []byte) {
			binary.BigEndian.PutUint32(a[zobjtest.LimbBase+20*0x10+0x0C:], 0x06000000)
		}},
		{"table out of range", func(a []byte) {
			binary.BigEndian.PutUint32(a[zobjtest.HeaderOffset:], 0x060003B0)
		}},
	}
	for _, tc := range tests {
		asset := zobjtest.Skeleton()
		tc.mutate(asset)
		if _, err := zobj.FindHierarchy(asset, "x.zobj"); !errs.Is(err, errs.NotFound) {
			t.Errorf("%s: err = %v; want NotFound", tc.name, err)
		}
	}
}
