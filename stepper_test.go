package phys2d

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/evolvatron/phys2d/vec2"
)

func buildDeterminismWorld() *World {
	w := NewWorld()
	w.AddBoxCollider(vec2.V(0, -2), vec2.V(1, 0), vec2.V(20, 0.5))
	a, _ := w.AddParticle(vec2.V(-0.3, 2), 1, 0.05)
	b, _ := w.AddParticle(vec2.V(0.3, 2), 1, 0.05)
	c, _ := w.AddParticle(vec2.V(0, 2.6), 1, 0.05)
	w.AddRod(a, b, 0.6, 0)
	w.AddRod(b, c, 0.6, 0)
	w.AddRod(c, a, 0.6, 0)
	return w
}

func TestDeterminismAcrossIdenticallyBuiltWorlds(t *testing.T) {
	cfg := NewConfig()

	w1 := buildDeterminismWorld()
	w2 := buildDeterminismWorld()
	s1 := NewStepper()
	s2 := NewStepper()

	for i := 0; i < 1000; i++ {
		s1.Step(w1, cfg)
		s2.Step(w2, cfg)
	}

	for i := range w1.Pos {
		assert.InDelta(t, w1.Pos[i].X, w2.Pos[i].X, 1e-6)
		assert.InDelta(t, w1.Pos[i].Y, w2.Pos[i].Y, 1e-6)
	}
}

func BenchmarkStepTriangleOnGround(b *testing.B) {
	w := buildDeterminismWorld()
	cfg := NewConfig()
	stepper := NewStepper()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		stepper.Step(w, cfg)
	}
}

func TestContactEventLifecycle(t *testing.T) {
	w := NewWorld()
	w.AddCircleCollider(vec2.V(0, -1), 1)
	w.AddRigidBody(vec2.V(0, 0.2), 0, 1, []Geom{{Radius: 0.2}})

	cfg := NewConfig(WithDt(1.0 / 240.0))
	stepper := NewStepper()

	var sawEnter bool
	for i := 0; i < 120; i++ {
		stepper.Step(w, cfg)
		for _, ev := range w.DrainContactEvents() {
			if ev.Kind == EventEnter {
				sawEnter = true
			}
		}
	}
	assert.True(t, sawEnter)
}
