package zobj

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"zobj-alias-compiler/internal/errs"
)

// TrailerMarker opens the embedded manifest appended by the export tool.
const TrailerMarker = "!PlayAsManifest"

const (
	trailerCountOffset   = 0x10
	trailerEntriesOffset = 0x12
)

// ParseTrailer locates the embedded manifest in asset and reads its
// display list names and offsets.
func ParseTrailer(asset []byte, name string) (*Trailer, error) {
	mark := bytes.Index(asset, []byte(TrailerMarker))
	if mark == -1 {
		return nil, &errs.Error{Kind: errs.NotFound, File: name, Msg: "trailer not found"}
	}

	r := &reader{data: asset, off: mark + trailerCountOffset}
	count, ok := r.u16()
	if !ok {
		return nil, truncated(name, 0)
	}

	t := &Trailer{Offset: mark, Entries: make([]Entry, 0, count)}
	r.off = mark + trailerEntriesOffset
	for i := 0; i < int(count); i++ {
		s, ok := r.cstring()
		if !ok {
			return nil, truncated(name, i)
		}
		off, ok := r.u32()
		if !ok {
			return nil, truncated(name, i)
		}
		t.Entries = append(t.Entries, Entry{Name: s, Offset: off})
	}
	return t, nil
}

func truncated(name string, entry int) error {
	return &errs.Error{Kind: errs.Syntax, File: name, Msg: fmt.Sprintf("trailer truncated at entry %d", entry)}
}

// reader is a big-endian cursor over the raw asset.
type reader struct {
	data []byte
	off  int
}

func (r *reader) u16() (uint16, bool) {
	if r.off < 0 || r.off+2 > len(r.data) {
		return 0, false
	}
	v := binary.BigEndian.Uint16(r.data[r.off:])
	r.off += 2
	return v, true
}

func (r *reader) u32() (uint32, bool) {
	if r.off < 0 || r.off+4 > len(r.data) {
		return 0, false
	}
	v := binary.BigEndian.Uint32(r.data[r.off:])
	r.off += 4
	return v, true
}

// cstring reads a NUL-terminated string and skips the terminator.
func (r *reader) cstring() (string, bool) {
	if r.off >= len(r.data) {
		return "", false
	}
	n := bytes.IndexByte(r.data[r.off:], 0)
	if n == -1 {
		return "", false
	}
	s := string(r.data[r.off : r.off+n])
	r.off += n + 1
	return s, true
}
