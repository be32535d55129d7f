package phys2d

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/evolvatron/phys2d/vec2"
)

func TestAccessorsReflectWorldState(t *testing.T) {
	w := NewWorld()
	p, _ := w.AddParticle(vec2.V(1, 2), 1, 0.05)
	w.Vel[p] = vec2.V(0.5, -0.5)
	b, _ := w.AddRigidBody(vec2.V(3, 4), 0.2, 2, []Geom{{Radius: 0.3}})

	assert.Equal(t, 1, w.ParticleCount())
	assert.Equal(t, 1, w.BodyCount())
	assert.Equal(t, 0, w.JointCount())

	pos, err := w.ParticlePosition(p)
	require.NoError(t, err)
	assert.Equal(t, vec2.V(1, 2), pos)

	vel, err := w.ParticleVelocity(p)
	require.NoError(t, err)
	assert.Equal(t, vec2.V(0.5, -0.5), vel)

	st, err := w.BodyState(b)
	require.NoError(t, err)
	assert.Equal(t, vec2.V(3, 4), st.Pos)
	assert.InDelta(t, 0.2, st.Angle, 1e-12)
	assert.False(t, st.Sleeping)
}

func TestAccessorsRejectBadIndices(t *testing.T) {
	w := NewWorld()
	_, err := w.ParticlePosition(0)
	assert.ErrorIs(t, err, ErrInvalidIndex)
	_, err = w.ParticleVelocity(-1)
	assert.ErrorIs(t, err, ErrInvalidIndex)
	_, err = w.BodyState(0)
	assert.ErrorIs(t, err, ErrInvalidIndex)
	_, err = w.JointAngle(0)
	assert.ErrorIs(t, err, ErrInvalidIndex)
	_, err = w.JointAnchorSeparation(0)
	assert.ErrorIs(t, err, ErrInvalidIndex)
}

func TestJointAngleReportsRelativeRotation(t *testing.T) {
	w := NewWorld()
	geoms := []Geom{{Radius: 0.5}}
	a, _ := w.AddPinnedRigidBody(vec2.V(0, 0), 0, geoms)
	b, _ := w.AddRigidBody(vec2.V(0, 0), 0, 1, geoms)
	ji, _ := w.AddRevoluteJoint(a, b, vec2.V(0, 0), vec2.V(0, 0))

	w.Bodies[b].Angle = 0.4
	angle, err := w.JointAngle(ji)
	require.NoError(t, err)
	assert.InDelta(t, 0.4, angle, 1e-12)
}
