// Package zobjtest builds small synthetic zobj images for tests.
package zobjtest

import (
	"encoding/binary"

	"zobj-alias-compiler/internal/zobj"
)

// Layout of the image returned by Skeleton.
const (
	LimbBase     = 0x100
	TableOffset  = 0x300
	HeaderOffset = 0x360
	DListOffset  = 0x3C0
	Size         = 0x400
)

// Skeleton returns a zobj image with one valid 21-limb hierarchy header at
// HeaderOffset and no trailer.
func Skeleton() []byte {
	asset := make([]byte, Size)
	for i := 0; i < zobj.LimbCount; i++ {
		limb := LimbBase + i*0x10
		binary.BigEndian.PutUint32(asset[limb+0x08:], 0x06000000|DListOffset)
		binary.BigEndian.PutUint32(asset[limb+0x0C:], 0x06000000|DListOffset)
		binary.BigEndian.PutUint32(asset[TableOffset+i*4:], 0x06000000|uint32(limb))
	}
	binary.BigEndian.PutUint32(asset[HeaderOffset:], 0x06000000|TableOffset)
	asset[HeaderOffset+4] = zobj.LimbCount
	asset[HeaderOffset+8] = zobj.DListCount
	return asset
}

// Header returns the 12 header bytes Skeleton writes at HeaderOffset.
func Header() []byte {
	return append([]byte(nil), Skeleton()[HeaderOffset:HeaderOffset+zobj.HeaderSize]...)
}

// WithTrailer appends an embedded manifest listing entries to asset.
func WithTrailer(asset []byte, entries ...zobj.Entry) []byte {
	out := append([]byte(nil), asset...)
	hdr := make([]byte, 0x12)
	copy(hdr, zobj.TrailerMarker)
	binary.BigEndian.PutUint16(hdr[0x10:], uint16(len(entries)))
	out = append(out, hdr...)
	for _, e := range entries {
		out = append(out, e.Name...)
		out = append(out, 0)
		out = binary.BigEndian.AppendUint32(out, e.Offset)
	}
	return out
}
