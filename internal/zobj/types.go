package zobj

import "encoding/binary"

// Entry is one display list named in the embedded trailer.
type Entry struct {
	Name   string
	Offset uint32
}

// Trailer holds the embedded manifest appended to a zobj.
type Trailer struct {
	Offset  int // position of the marker; everything from here on is trailer
	Entries []Entry
}

// Lookup returns the offset recorded for name.
func (t *Trailer) Lookup(name string) (uint32, bool) {
	for _, e := range t.Entries {
		if e.Name == name {
			return e.Offset, true
		}
	}
	return 0, false
}

// Trim returns asset with the trailer removed. The result aliases asset.
func (t *Trailer) Trim(asset []byte) []byte {
	if t.Offset > len(asset) {
		return asset
	}
	return asset[:t.Offset:t.Offset]
}

// HeaderSize is the byte length of a skeleton hierarchy header.
const HeaderSize = 0x0C

// Hierarchy is a located skeleton header.
type Hierarchy struct {
	Offset int
	Header [HeaderSize]byte
}

// LimbTable returns the segmented address of the limb index table.
func (h Hierarchy) LimbTable() uint32 {
	return binary.BigEndian.Uint32(h.Header[0:4])
}

// Limbs returns the number of limbs declared by the header.
func (h Hierarchy) Limbs() int {
	return int(h.Header[4])
}

// DLists returns the number of limbs carrying display lists.
func (h Hierarchy) DLists() int {
	return int(h.Header[8])
}
