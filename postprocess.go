package phys2d

import (
	"math"

	"github.com/evolvatron/phys2d/vec2"
)

const particleFrictionTolerance = 0.01

// stabilizeVelocities recomputes particle velocity from the position
// delta over the substep and blends it with the integrated velocity,
// with an optional magnitude clamp. The clamp scales to half of
// MaxVelocity rather than to MaxVelocity itself: an explicit
// energy-dissipating measure, not merely a cap, so XPBD position
// corrections during penetration resolution cannot inject unbounded
// kinetic energy.
func stabilizeVelocities(w *World, cfg *Config, dt float64) {
	beta := cfg.VelocityStabilizationBeta
	for i := range w.Pos {
		if w.InvMass[i] <= 0 {
			continue
		}
		corrected := w.Pos[i].Sub(w.PrevPos[i]).Scale(1 / dt)
		w.Vel[i] = corrected.Scale(beta).Add(w.Vel[i].Scale(1 - beta))

		if cfg.MaxVelocity > 0 {
			if speed := w.Vel[i].Len(); speed > cfg.MaxVelocity {
				w.Vel[i] = w.Vel[i].Scale(0.5 * cfg.MaxVelocity / speed)
			}
		}
	}
}

// applyParticleFriction reduces tangential velocity (Coulomb) for every
// dynamic particle resting against its nearest collider within
// particleFrictionTolerance.
func applyParticleFriction(w *World, cfg *Config) {
	for i := range w.Pos {
		if w.InvMass[i] <= 0 {
			continue
		}
		phi, n, found := nearestColliderNormal(w, w.Pos[i])
		if !found || phi > particleFrictionTolerance {
			continue
		}

		v := w.Vel[i]
		vn := v.Dot(n)
		normalPart := n.Scale(vn)
		tangentPart := v.Sub(normalPart)
		vtLen := tangentPart.Len()
		maxReduction := cfg.FrictionMu * math.Abs(vn)

		if maxReduction >= vtLen || vtLen < 1e-12 {
			w.Vel[i] = normalPart
		} else {
			w.Vel[i] = normalPart.Add(tangentPart.Scale(1 - maxReduction/vtLen))
		}
	}
}

func nearestColliderNormal(w *World, p vec2.Vec2) (float64, vec2.Vec2, bool) {
	best := math.Inf(1)
	var bestN vec2.Vec2
	found := false
	for ci := range w.Circles {
		phi, n := w.SDF(ColliderCircle, ci, p)
		if phi < best {
			best, bestN, found = phi, n, true
		}
	}
	for ci := range w.Capsules {
		phi, n := w.SDF(ColliderCapsule, ci, p)
		if phi < best {
			best, bestN, found = phi, n, true
		}
	}
	for ci := range w.Boxes {
		phi, n := w.SDF(ColliderBox, ci, p)
		if phi < best {
			best, bestN, found = phi, n, true
		}
	}
	return best, bestN, found
}

// applyDamping applies exponential-style linear damping to particles and
// rigid bodies, and angular damping to rigid bodies (particle angular
// damping is handled separately in applyAngularDampingParticles, which
// needs the rod topology rather than per-particle state).
func applyDamping(w *World, cfg *Config, dt float64) {
	linFactor := math.Max(0, 1-cfg.GlobalDamping*dt)
	angFactor := math.Max(0, 1-cfg.AngularDamping*dt)

	for i := range w.Pos {
		if w.InvMass[i] <= 0 {
			continue
		}
		w.Vel[i] = w.Vel[i].Scale(linFactor)
	}
	for i := range w.Bodies {
		b := &w.Bodies[i]
		if b.InvMass <= 0 || b.Sleeping {
			continue
		}
		b.Vel = b.Vel.Scale(linFactor)
		b.AngVel *= angFactor
	}
}
