package phys2d

import "github.com/evolvatron/phys2d/vec2"

// applyGravityParticles adds m*g to the force accumulator of every
// dynamic particle (invMass > 0).
func applyGravityParticles(w *World, gx, gy float64) {
	for i := range w.Pos {
		invMass := w.InvMass[i]
		if invMass <= 0 {
			continue
		}
		mass := 1 / invMass
		w.Force[i].X += mass * gx
		w.Force[i].Y += mass * gy
	}
}

// integrateParticles performs symplectic Euler: v += dt*F*invMass;
// p += dt*v; F is cleared afterward. Pinned particles are untouched.
func integrateParticles(w *World, dt float64) {
	for i := range w.Pos {
		if w.InvMass[i] <= 0 {
			w.Force[i] = vec2.Vec2{}
			continue
		}
		w.Vel[i].X += dt * w.Force[i].X * w.InvMass[i]
		w.Vel[i].Y += dt * w.Force[i].Y * w.InvMass[i]
		w.Pos[i].X += dt * w.Vel[i].X
		w.Pos[i].Y += dt * w.Vel[i].Y
		w.Force[i] = vec2.Vec2{}
	}
}

// applyGravityRigidBodies applies v += dt*g to every dynamic rigid body.
// dt is always the config's step size, never a hardcoded rate.
func applyGravityRigidBodies(w *World, gx, gy, dt float64) {
	for i := range w.Bodies {
		b := &w.Bodies[i]
		if b.InvMass <= 0 || b.Sleeping {
			continue
		}
		b.Vel.X += dt * gx
		b.Vel.Y += dt * gy
	}
}

// integrateRigidBodies performs p += dt*v, theta += dt*omega.
func integrateRigidBodies(w *World, dt float64) {
	for i := range w.Bodies {
		b := &w.Bodies[i]
		if b.InvMass <= 0 || b.Sleeping {
			continue
		}
		b.Pos.X += dt * b.Vel.X
		b.Pos.Y += dt * b.Vel.Y
		b.Angle += dt * b.AngVel
	}
}

// applyAngularDampingParticles dissipates spurious rotation in
// articulated particle assemblies without touching translation. For
// each rod, treats its two endpoints as a two-body system spinning about
// their combined center of mass, damps that angular velocity by
// max(0, 1 - cAng*dt), and redistributes the resulting delta-omega as
// tangential velocity changes at both endpoints.
func applyAngularDampingParticles(w *World, cAng, dt float64) {
	damp := 1 - cAng*dt
	if damp < 0 {
		damp = 0
	}
	if damp == 1 {
		return
	}
	for _, r := range w.Rods {
		wi, wj := w.InvMass[r.I], w.InvMass[r.J]
		if wi <= 0 && wj <= 0 {
			continue
		}
		mi, mj := massOrZero(wi), massOrZero(wj)
		totalMass := mi + mj
		if totalMass <= 0 {
			continue
		}
		com := w.Pos[r.I].Scale(mi).Add(w.Pos[r.J].Scale(mj)).Scale(1 / totalMass)
		ri := w.Pos[r.I].Sub(com)
		rj := w.Pos[r.J].Sub(com)

		// Angular momentum about the center of mass, and the moment of
		// inertia of this two-particle system about the same point.
		li := mi * ri.Cross(w.Vel[r.I])
		lj := mj * rj.Cross(w.Vel[r.J])
		ii := mi * ri.LenSqr()
		ij := mj * rj.LenSqr()
		momentOfInertia := ii + ij
		if momentOfInertia < 1e-12 {
			continue
		}
		omega := (li + lj) / momentOfInertia
		deltaOmega := omega * (damp - 1)

		if wi > 0 {
			w.Vel[r.I] = w.Vel[r.I].Add(vec2.CrossScalar(deltaOmega, ri))
		}
		if wj > 0 {
			w.Vel[r.J] = w.Vel[r.J].Add(vec2.CrossScalar(deltaOmega, rj))
		}
	}
}

func massOrZero(invMass float64) float64 {
	if invMass <= 0 {
		return 0
	}
	return 1 / invMass
}
