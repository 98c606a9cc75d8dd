package skeleton

import (
	"encoding/binary"
	"fmt"

	"zobj-alias-compiler/internal/zobj"
)

// NoLimb marks an absent child or sibling.
const NoLimb = 0xFF

// Limb is one 16-byte LOD limb entry.
type Limb struct {
	Offset  int      // zobj offset of the entry
	Joint   [3]int16 // joint position relative to the parent
	Child   int
	Sibling int
	DList   uint32 // high-detail display list
	FarList uint32 // low-detail display list
}

// Read decodes every limb referenced by the hierarchy's limb table.
func Read(asset []byte, h zobj.Hierarchy) ([]Limb, error) {
	table := int(h.LimbTable() & 0x00FFFFFF)
	n := h.Limbs()
	if table+n*4 > len(asset) {
		return nil, fmt.Errorf("skeleton: limb table at 0x%X runs past end of zobj", table)
	}

	limbs := make([]Limb, n)
	for i := range limbs {
		off := int(binary.BigEndian.Uint32(asset[table+i*4:]) & 0x00FFFFFF)
		if off+0x10 > len(asset) {
			return nil, fmt.Errorf("skeleton: limb %d at 0x%X runs past end of zobj", i, off)
		}
		e := asset[off:]
		limbs[i] = Limb{
			Offset: off,
			Joint: [3]int16{
				int16(binary.BigEndian.Uint16(e[0:])),
				int16(binary.BigEndian.Uint16(e[2:])),
				int16(binary.BigEndian.Uint16(e[4:])),
			},
			Child:   int(e[6]),
			Sibling: int(e[7]),
			DList:   binary.BigEndian.Uint32(e[8:]),
			FarList: binary.BigEndian.Uint32(e[12:]),
		}
	}
	return limbs, nil
}

// Walk visits limbs depth first from limb 0, passing each limb's depth in
// the tree. Links that point outside the table or revisit a limb are
// ignored.
func Walk(limbs []Limb, fn func(index, depth int)) {
	seen := make([]bool, len(limbs))
	var visit func(i, depth int)
	visit = func(i, depth int) {
		for i != NoLimb && i < len(limbs) && !seen[i] {
			seen[i] = true
			fn(i, depth)
			visit(limbs[i].Child, depth+1)
			i = limbs[i].Sibling
		}
	}
	if len(limbs) > 0 {
		visit(0, 0)
	}
}
