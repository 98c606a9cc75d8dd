package mathutil

import "math"

// Mat4 is a 4×4 matrix stored row-major. Row 3 holds the translation,
// matching the layout the RSP matrix loader expects.
type Mat4 [16]float64

func Mat4Identity() Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// At returns the element at row r, column c.
func (m Mat4) At(r, c int) float64 {
	return m[r*4+c]
}

// RTS builds a roll/pitch/heading rotation with per-axis scale on rows 0–2
// and translation on row 3. Angles are in degrees.
func RTS(r, p, h, x, y, z, sx, sy, sz float64) Mat4 {
	sinr, cosr := math.Sincos(Deg2Rad(r))
	sinp, cosp := math.Sincos(Deg2Rad(p))
	sinh, cosh := math.Sincos(Deg2Rad(h))

	return Mat4{
		(cosp * cosh) * sx, (cosp * sinh) * sx, (-sinp) * sx, 0,
		(sinr*sinp*cosh - cosr*sinh) * sy, (sinr*sinp*sinh + cosr*cosh) * sy, (sinr * cosp) * sy, 0,
		(cosr*sinp*cosh + sinr*sinh) * sz, (cosr*sinp*sinh - sinr*cosh) * sz, (cosr * cosp) * sz, 0,
		x, y, z, 1,
	}
}
