package vec2

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMat2InverseIdentity(t *testing.T) {
	m := Mat2{M00: 2, M01: 0, M10: 0, M11: 4}
	inv := m.Inverse()
	id := Mat2{m.M00*inv.M00 + m.M01*inv.M10, m.M00*inv.M01 + m.M01*inv.M11, m.M10*inv.M00 + m.M11*inv.M10, m.M10*inv.M01 + m.M11*inv.M11}
	assert.InDelta(t, 1, id.M00, 1e-9)
	assert.InDelta(t, 0, id.M01, 1e-9)
	assert.InDelta(t, 0, id.M10, 1e-9)
	assert.InDelta(t, 1, id.M11, 1e-9)
}

func TestMat2SingularReturnsZero(t *testing.T) {
	m := Mat2{}
	inv := m.Inverse()
	assert.Equal(t, Mat2{}, inv)
}
