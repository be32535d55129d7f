package phys2d

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/evolvatron/phys2d/vec2"
)

func TestEnergyConservationFreeParticle(t *testing.T) {
	w := NewWorld()
	i, _ := w.AddParticle(vec2.V(0, 0), 1, 0.05)
	w.Vel[i] = vec2.V(3, 1)

	cfg := NewConfig(WithGravity(0, 0), WithDamping(0, 0))
	stepper := NewStepper()
	initialSpeed := w.Vel[i].Len()

	for n := 0; n < 1000; n++ {
		stepper.Step(w, cfg)
	}
	finalSpeed := w.Vel[i].Len()
	assert.InEpsilon(t, initialSpeed, finalSpeed, 0.01)
}

func TestGravityUsesConfigDt(t *testing.T) {
	w := NewWorld()
	geoms := []Geom{{Radius: 0.5}}
	b, _ := w.AddRigidBody(vec2.V(0, 10), 0, 1, geoms)

	cfg := NewConfig(WithDt(1.0/30.0), WithSubsteps(1), WithGravity(0, -9.81))
	applyGravityRigidBodies(w, cfg.GravityX, cfg.GravityY, cfg.Dt)

	assert.InDelta(t, -9.81*(1.0/30.0), w.Bodies[b].Vel.Y, 1e-12)
}
