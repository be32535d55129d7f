package vec2

// Mat2 is a 2x2 matrix stored row-major, used for the revolute joint's
// point-constraint effective mass.
type Mat2 struct {
	M00, M01 float64
	M10, M11 float64
}

func (m Mat2) Det() float64 {
	return m.M00*m.M11 - m.M01*m.M10
}

// Inverse returns the matrix inverse, or the zero matrix if m is singular.
// A zero effective-mass matrix correctly yields zero impulse corrections,
// matching the degenerate-configuration contract elsewhere in the solver.
func (m Mat2) Inverse() Mat2 {
	det := m.Det()
	if det > -1e-12 && det < 1e-12 {
		return Mat2{}
	}
	inv := 1 / det
	return Mat2{
		M00: m.M11 * inv, M01: -m.M01 * inv,
		M10: -m.M10 * inv, M11: m.M00 * inv,
	}
}

func (m Mat2) MulVec(v Vec2) Vec2 {
	return Vec2{m.M00*v.X + m.M01*v.Y, m.M10*v.X + m.M11*v.Y}
}

func (m Mat2) Add(o Mat2) Mat2 {
	return Mat2{m.M00 + o.M00, m.M01 + o.M01, m.M10 + o.M10, m.M11 + o.M11}
}
