// Package batch implements the planned batched/parallel engine variant:
// N independent worlds stepped in lockstep, sharing the same schema and
// (by convention of the template) the same static colliders, with a
// counter-based stateless PRNG for per-world randomization.
package batch

import (
	"fmt"

	"github.com/google/uuid"

	phys2d "github.com/evolvatron/phys2d"
)

// Template builds one world's initial state. The same Template is used
// for every world in a Batch so all worlds share a schema (same number
// of bodies, joints, and colliders), which the concatenated-SoA index
// mapping depends on.
type Template func(w *phys2d.World, worldIndex int, rng *Stream)

// Batch owns N independent worlds and steppers, stepped together.
type Batch struct {
	ID       string
	Worlds   []*phys2d.World
	steppers []*phys2d.Stepper

	cfg      *phys2d.Config
	template Template
	baseSeed uint64
}

// NewBatch constructs n worlds from template, immediately resetting them
// with baseSeed so Worlds is populated and ready to Step.
func NewBatch(n int, cfg *phys2d.Config, template Template, baseSeed uint64) *Batch {
	b := &Batch{
		ID:       uuid.NewString(),
		cfg:      cfg,
		template: template,
	}
	b.Worlds = make([]*phys2d.World, n)
	b.steppers = make([]*phys2d.Stepper, n)
	b.ResetAll(baseSeed)
	return b
}

// Step advances every world by one Step call of the shared Config.
func (b *Batch) Step() {
	parallelRange(len(b.Worlds), func(i int) {
		b.steppers[i].Step(b.Worlds[i], b.cfg)
	})
}

// StepN advances every world by n Step calls.
func (b *Batch) StepN(n int) {
	for i := 0; i < n; i++ {
		b.Step()
	}
}

// ResetAll rebuilds every world from the template using base_seed, giving
// identical results for identical seeds (Scenario E: batched reset
// determinism).
func (b *Batch) ResetAll(baseSeed uint64) {
	b.baseSeed = baseSeed
	parallelRange(len(b.Worlds), func(i int) {
		w := phys2d.NewWorld()
		b.template(w, i, NewStream(baseSeed, i))
		b.Worlds[i] = w
		b.steppers[i] = phys2d.NewStepper()
	})
}

// Apply runs fn over every world, in parallel, before or between Step
// calls: the action-application hook for controllers that set motor
// targets per world. fn must touch only its own world.
func (b *Batch) Apply(fn func(worldIndex int, w *phys2d.World)) {
	parallelRange(len(b.Worlds), func(i int) {
		fn(i, b.Worlds[i])
	})
}

// BodyStates returns a snapshot of rigid body `local` across every world,
// indexed by world. Worlds whose schema lacks that body yield a zero
// BodyState; CheckSchema rules that out up front.
func (b *Batch) BodyStates(local int) []phys2d.BodyState {
	out := make([]phys2d.BodyState, len(b.Worlds))
	for i, w := range b.Worlds {
		if st, err := w.BodyState(local); err == nil {
			out[i] = st
		}
	}
	return out
}

// CheckSchema verifies every world the template built shares world 0's
// entity counts, the fixed-schema contract the concatenated-SoA index
// mapping depends on. Call it once after NewBatch or ResetAll; a template
// that branches on worldIndex can otherwise silently break GlobalIndex.
func (b *Batch) CheckSchema() error {
	if len(b.Worlds) == 0 {
		return nil
	}
	ref := b.Worlds[0]
	for i, w := range b.Worlds[1:] {
		if w.ParticleCount() != ref.ParticleCount() ||
			w.BodyCount() != ref.BodyCount() ||
			w.JointCount() != ref.JointCount() {
			return fmt.Errorf("batch: world %d schema (%d particles, %d bodies, %d joints) differs from world 0 (%d, %d, %d)",
				i+1, w.ParticleCount(), w.BodyCount(), w.JointCount(),
				ref.ParticleCount(), ref.BodyCount(), ref.JointCount())
		}
	}
	return nil
}

// GlobalIndex maps (worldIndex, localIndex) to the concatenated SoA index
// entity_index = world_index*per_world_count + local_index.
func GlobalIndex(worldIndex, localIndex, perWorldCount int) int {
	return worldIndex*perWorldCount + localIndex
}

// SplitIndex is the inverse of GlobalIndex.
func SplitIndex(global, perWorldCount int) (worldIndex, localIndex int) {
	return global / perWorldCount, global % perWorldCount
}
