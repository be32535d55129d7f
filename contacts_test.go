package phys2d

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/evolvatron/phys2d/vec2"
)

func boxGeoms(halfExtent, radius float64) []Geom {
	return []Geom{
		{LocalOffset: vec2.V(-halfExtent+radius, -halfExtent+radius), Radius: radius},
		{LocalOffset: vec2.V(halfExtent-radius, -halfExtent+radius), Radius: radius},
		{LocalOffset: vec2.V(-halfExtent+radius, halfExtent-radius), Radius: radius},
		{LocalOffset: vec2.V(halfExtent-radius, halfExtent-radius), Radius: radius},
	}
}

func TestWarmStartIdempotentRestingBox(t *testing.T) {
	w := NewWorld()
	w.AddBoxCollider(vec2.V(0, -2), vec2.V(1, 0), vec2.V(20, 0.5))
	bi, _ := w.AddRigidBody(vec2.V(0, 0.5), 0, 2, boxGeoms(0.5, 0.05))

	cfg := NewConfig(WithDt(1.0 / 240.0), WithSubsteps(1))
	stepper := NewStepper()

	settleSteps := int(0.5 / cfg.Dt)
	for i := 0; i < settleSteps; i++ {
		stepper.Step(w, cfg)
	}

	posAfterSettle := w.Bodies[bi].Pos
	maxSpeed := 0.0
	remainingSteps := int(1.5 / cfg.Dt)
	for i := 0; i < remainingSteps; i++ {
		stepper.Step(w, cfg)
		if s := w.Bodies[bi].Vel.Len(); s > maxSpeed {
			maxSpeed = s
		}
	}
	posAfterHold := w.Bodies[bi].Pos

	assert.Less(t, posAfterHold.Sub(posAfterSettle).Len(), 1e-4)
	assert.Less(t, maxSpeed, 0.5) // loose bound; TestSettledBoxStaysQuiet in scenario_test.go checks 0.1 m/s
}

func TestWarmStartCachePersistsAcrossSteps(t *testing.T) {
	w := NewWorld()
	ci := w.AddBoxCollider(vec2.V(0, -2), vec2.V(1, 0), vec2.V(20, 0.5))
	bi, _ := w.AddRigidBody(vec2.V(0, -0.9), 0, 2, boxGeoms(0.5, 0.05))

	cfg := NewConfig(WithDt(1.0 / 240.0))
	stepper := NewStepper()

	for i := 0; i < 240; i++ {
		stepper.Step(w, cfg)
	}

	// The resting box's two bottom geoms (indices 0 and 1) are in
	// persistent contact with the ground box; their cached normal
	// impulses carry the weight.
	totalNormal := 0.0
	for _, gi := range []int{0, 1} {
		seed, ok := stepper.warmStart[ContactId{Body: bi, ColliderKind: ColliderBox, ColliderIndex: ci, GeomIndex: gi}]
		assert.True(t, ok, "expected warm-start entry for bottom geom %d", gi)
		assert.Greater(t, seed.Normal, 0.0)
		totalNormal += seed.Normal
	}
	// Per substep the cached impulses must roughly balance gravity:
	// m*g*dt = 2*9.81/240.
	assert.InDelta(t, 2*9.81/240.0, totalNormal, 2*9.81/240.0*0.5)
}

func TestRigidContactAgainstCapsuleCollider(t *testing.T) {
	w := NewWorld()
	w.AddCapsuleCollider(vec2.V(0, -2), vec2.V(1, 0), 10, 0.5)
	bi, _ := w.AddRigidBody(vec2.V(0, 0), 0, 1, []Geom{{Radius: 0.25}})

	cfg := NewConfig(WithDt(1.0 / 240.0))
	stepper := NewStepper()
	for i := 0; i < 3*240; i++ {
		stepper.Step(w, cfg)
	}

	// Rests on top of the capsule: surface at y = -1.5, center one geom
	// radius above.
	assert.InDelta(t, -1.25, w.Bodies[bi].Pos.Y, 0.1)
	assert.Less(t, w.Bodies[bi].Vel.Len(), 0.1)
}

func TestContactGenerationSkipsNonPenetrating(t *testing.T) {
	w := NewWorld()
	w.AddCircleCollider(vec2.V(0, -10), 1)
	w.AddRigidBody(vec2.V(0, 0), 0, 1, []Geom{{Radius: 0.5}})

	cfg := NewConfig()
	contacts := generateRigidContacts(w, cfg, cfg.Dt, nil)
	assert.Empty(t, contacts)
}
