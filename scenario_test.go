package phys2d

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/evolvatron/phys2d/vec2"
)

// A 2 kg box dropped from half a meter settles on a ground box, resting
// one half-extent above its top surface, nearly at rest.
func TestRigidBoxSettlesOnGround(t *testing.T) {
	w := NewWorld()
	w.AddBoxCollider(vec2.V(0, -2), vec2.V(1, 0), vec2.V(20, 0.5))
	bi, _ := w.AddRigidBody(vec2.V(0, 0.5), 0, 2, boxGeoms(0.5, 0.05))

	cfg := NewConfig(WithDt(1.0/240.0), WithSubsteps(1), WithGravity(0, -9.81))
	stepper := NewStepper()

	steps := int(5.0 / cfg.Dt)
	for i := 0; i < steps; i++ {
		stepper.Step(w, cfg)
	}

	y := w.Bodies[bi].Pos.Y
	assert.GreaterOrEqual(t, y, -1.2)
	assert.LessOrEqual(t, y, -0.8)
	assert.Less(t, w.Bodies[bi].Vel.Len(), 0.1)
}

// An L of three particles with rods on both edges and an angle
// constraint at the corner holds its right angle while falling onto and
// resting on the ground.
func TestLShapeHoldsRightAngleUnderGravity(t *testing.T) {
	w := NewWorld()
	w.AddBoxCollider(vec2.V(0, -2), vec2.V(1, 0), vec2.V(20, 0.5))

	p0, _ := w.AddParticle(vec2.V(-1, 5), 1, 0.05)
	p1, _ := w.AddParticle(vec2.V(0, 5), 1, 0.05)
	p2, _ := w.AddParticle(vec2.V(0, 6), 1, 0.05)

	w.AddRod(p0, p1, 1.0, 0)
	w.AddRod(p1, p2, 1.0, 0)
	_, err := w.AddAngle(p0, p1, p2, 1.5707963267948966, 0)
	assert.NoError(t, err)

	cfg := NewConfig(WithDt(1.0/60.0), WithSubsteps(1), WithXPBDIterations(40))
	stepper := NewStepper()

	for i := 0; i < 300; i++ {
		stepper.Step(w, cfg)
	}

	u := w.Pos[p0].Sub(w.Pos[p1])
	v := w.Pos[p2].Sub(w.Pos[p1])
	angle := vec2.SignedAngle(u, v)
	assert.InDelta(t, 1.5707963267948966, angle, 0.1)
}

// Two boxes hinged edge-to-edge fall three seconds toward a distant
// ground; the joint keeps their anchors coincident throughout.
func TestJointedBoxesKeepAnchorsCoincident(t *testing.T) {
	w := NewWorld()
	w.AddBoxCollider(vec2.V(0, -5), vec2.V(1, 0), vec2.V(20, 0.5))

	geoms := boxGeoms(0.5, 0.05)
	a, _ := w.AddRigidBody(vec2.V(-0.6, 2), 0, 1, geoms)
	b, _ := w.AddRigidBody(vec2.V(0.6, 2), 0, 1, geoms)
	ji, err := w.AddRevoluteJoint(a, b, vec2.V(0.5, 0), vec2.V(-0.5, 0))
	assert.NoError(t, err)

	cfg := NewConfig(WithDt(1.0/240.0), WithSubsteps(1))
	stepper := NewStepper()

	steps := int(3.0 / cfg.Dt)
	for i := 0; i < steps; i++ {
		stepper.Step(w, cfg)
	}

	sep, err := w.JointAnchorSeparation(ji)
	assert.NoError(t, err)
	assert.Less(t, sep, 0.01)
}

// After a settled box has warm-started contacts, its velocity stays
// small indefinitely: persistent contacts reuse cached impulses instead
// of re-colliding every substep.
func TestSettledBoxStaysQuiet(t *testing.T) {
	w := NewWorld()
	w.AddBoxCollider(vec2.V(0, -2), vec2.V(1, 0), vec2.V(20, 0.5))
	bi, _ := w.AddRigidBody(vec2.V(0, 0.5), 0, 2, boxGeoms(0.5, 0.05))

	cfg := NewConfig(WithDt(1.0/240.0), WithSubsteps(1), WithGravity(0, -9.81))
	stepper := NewStepper()

	settleSteps := int(5.0 / cfg.Dt)
	for i := 0; i < settleSteps; i++ {
		stepper.Step(w, cfg)
	}

	maxSpeed := 0.0
	checkSteps := int(0.5 / cfg.Dt)
	for i := 0; i < checkSteps; i++ {
		stepper.Step(w, cfg)
		if s := w.Bodies[bi].Vel.Len(); s > maxSpeed {
			maxSpeed = s
		}
	}
	assert.Less(t, maxSpeed, 0.1)
}
