package mathutil

import (
	"encoding/binary"
	"math"
)

// MatrixSize is the byte length of a packed fixed-point matrix.
const MatrixSize = 0x40

// ToFixed converts v to signed 16.16 fixed point, wrapping to 32 bits.
func ToFixed(v float64) int32 {
	return int32(int64(math.Round(v * 65536)))
}

// FixedPoint packs m into the hardware 16.16 layout: eight words of
// integer halves followed by eight words of fractional halves, each word
// pairing two adjacent columns of a row.
func (m Mat4) FixedPoint() [MatrixSize]byte {
	var out [MatrixSize]byte
	off := 0
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c += 2 {
			a := uint32(ToFixed(m.At(r, c)))
			b := uint32(ToFixed(m.At(r, c+1)))
			binary.BigEndian.PutUint32(out[off:], a&0xFFFF0000|b>>16)
			binary.BigEndian.PutUint32(out[off+0x20:], a<<16|b&0xFFFF)
			off += 4
		}
	}
	return out
}
