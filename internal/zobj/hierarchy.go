package zobj

import (
	"bytes"
	"encoding/binary"

	"zobj-alias-compiler/internal/errs"
)

const (
	// LimbCount is the only skeleton shape accepted: 21 limbs, 18 of
	// which carry display lists.
	LimbCount  = 0x15
	DListCount = 0x12

	// SegmentTag is the high byte of an address inside the zobj segment.
	SegmentTag = 0x06

	limbEntrySize = 0x10
	limbTableSize = LimbCount * 4
)

// hierarchyPattern is the padded limb-count and display-list-count bytes
// that follow the limb table pointer in every matching header.
var hierarchyPattern = []byte{LimbCount, 0x00, 0x00, 0x00, DListCount, 0x00, 0x00, 0x00}

// FindHierarchy returns the first header in asset that describes a
// 21-limb skeleton whose limbs have no separate low-detail display lists.
// The format carries no tag for this structure, so candidates are accepted
// only when the limb table they point at is internally consistent.
func FindHierarchy(asset []byte, name string) (Hierarchy, error) {
	for p := 0; ; p++ {
		n := bytes.Index(asset[p:], hierarchyPattern)
		if n == -1 {
			break
		}
		p += n
		if p < 4 {
			continue
		}
		if validHierarchy(asset, p-4) {
			var h Hierarchy
			h.Offset = p - 4
			copy(h.Header[:], asset[h.Offset:])
			return h, nil
		}
	}
	return Hierarchy{}, &errs.Error{Kind: errs.NotFound, File: name, Msg: "hierarchy not found"}
}

// validHierarchy reports whether the header candidate at off points at a
// limb index table of LimbCount segment addresses, each naming an aligned
// limb whose high- and low-detail display list pointers are identical.
func validHierarchy(asset []byte, off int) bool {
	if off < 0 || off+HeaderSize > len(asset) {
		return false
	}
	table := int(binary.BigEndian.Uint32(asset[off:]) & 0x00FFFFFF)
	if table >= len(asset)-limbTableSize || table%8 != 0 {
		return false
	}

	for i := 0; i < LimbCount; i++ {
		slot := table + i*4
		if asset[slot] != SegmentTag {
			return false
		}
		limb := int(binary.BigEndian.Uint32(asset[slot:]) & 0x00FFFFFF)
		if limb >= len(asset)-limbEntrySize || limb%8 != 0 {
			return false
		}
		hi := binary.BigEndian.Uint32(asset[limb+0x08:])
		lo := binary.BigEndian.Uint32(asset[limb+0x0C:])
		if hi != lo {
			return false
		}
	}
	return true
}
