package phys2d

import (
	"github.com/evolvatron/phys2d/vec2"
)

const xpbdEpsilon = 1e-9

// resetXPBDLambdas zeroes every rod/angle/motor accumulator once per
// substep. Resetting per iteration instead would destroy XPBD's
// effective-compliance interpretation: this must only ever be called
// once per substep, never inside the iteration loop.
func resetXPBDLambdas(w *World) {
	for i := range w.Rods {
		w.Rods[i].Lambda = 0
	}
	for i := range w.Angles {
		w.Angles[i].Lambda = 0
	}
	for i := range w.Motors {
		w.Motors[i].Lambda = 0
	}
}

// solveXPBDIteration runs one sweep of rods, angles, particle contacts,
// then motors, in that fixed order: structural integrity first, then
// shape, then non-penetration, then actuation.
func solveXPBDIteration(w *World, cfg *Config, dt float64) {
	for i := range w.Rods {
		solveRod(w, &w.Rods[i], cfg, dt)
	}
	for i := range w.Angles {
		solveAngle(w, &w.Angles[i], cfg, dt)
	}
	solveParticleContacts(w, cfg, dt)
	for i := range w.Motors {
		solveAngle(w, &w.Motors[i], cfg, dt)
	}
}

func effectiveCompliance(perConstraint, globalDefault float64) float64 {
	if perConstraint != 0 {
		return perConstraint
	}
	return globalDefault
}

// solveRod applies one XPBD iteration of the distance constraint
// C = |p_i - p_j| - L.
func solveRod(w *World, r *Rod, cfg *Config, dt float64) {
	wi, wj := w.InvMass[r.I], w.InvMass[r.J]
	if wi <= 0 && wj <= 0 {
		return
	}
	delta := w.Pos[r.I].Sub(w.Pos[r.J])
	length := delta.Len()
	if length < xpbdEpsilon {
		return
	}
	n := delta.Scale(1 / length)
	c := length - r.RestLength

	compliance := effectiveCompliance(r.Compliance, cfg.RodCompliance)
	tilCompliance := compliance / (dt * dt)
	denom := wi + wj + tilCompliance
	if denom <= 0 {
		logger.Warn("phys2d: rod constraint has zero effective mass", "i", r.I, "j", r.J)
		return
	}
	deltaLambda := (-c - tilCompliance*r.Lambda) / denom
	r.Lambda += deltaLambda

	if wi > 0 {
		w.Pos[r.I] = w.Pos[r.I].Add(n.Scale(wi * deltaLambda))
	}
	if wj > 0 {
		w.Pos[r.J] = w.Pos[r.J].Add(n.Scale(-wj * deltaLambda))
	}
}

// solveAngle applies one XPBD iteration of the angle constraint with
// vertex j, using the full atan2-derivative gradient.
func solveAngle(w *World, a *Angle, cfg *Config, dt float64) {
	wi, wj, wk := w.InvMass[a.I], w.InvMass[a.J], w.InvMass[a.K]
	if wi <= 0 && wj <= 0 && wk <= 0 {
		return
	}
	u := w.Pos[a.I].Sub(w.Pos[a.J])
	v := w.Pos[a.K].Sub(w.Pos[a.J])
	uLenSqr, vLenSqr := u.LenSqr(), v.LenSqr()
	if uLenSqr < xpbdEpsilon || vLenSqr < xpbdEpsilon {
		return
	}

	theta := vec2.SignedAngle(u, v)
	cErr := vec2.WrapAngle(theta - a.Target)

	gradI, gradK := angleGradients(u, v)
	gradJ := gradI.Add(gradK).Neg()

	sumW := wi*gradI.LenSqr() + wj*gradJ.LenSqr() + wk*gradK.LenSqr()

	compliance := effectiveCompliance(a.Compliance, defaultAngleCompliance(cfg, a.IsMotor))
	tilCompliance := compliance / (dt * dt)
	denom := sumW + tilCompliance
	if denom <= 0 {
		logger.Warn("phys2d: angle constraint has zero effective mass", "i", a.I, "j", a.J, "k", a.K)
		return
	}
	deltaLambda := (-cErr - tilCompliance*a.Lambda) / denom
	a.Lambda += deltaLambda

	if wi > 0 {
		w.Pos[a.I] = w.Pos[a.I].Add(gradI.Scale(wi * deltaLambda))
	}
	if wj > 0 {
		w.Pos[a.J] = w.Pos[a.J].Add(gradJ.Scale(wj * deltaLambda))
	}
	if wk > 0 {
		w.Pos[a.K] = w.Pos[a.K].Add(gradK.Scale(wk * deltaLambda))
	}
}

// angleGradients returns the analytical derivatives of
// theta = atan2(u x v, u . v) with respect to u and v. This is the full
// coupled formulation; a perpendicular-to-unit-edge shortcut that drops
// the coupling between the two edges fails a finite-difference check off
// right angles and destabilizes rest configurations.
//
//	d theta/du = -(c*perp(v) + s*v) / D
//	d theta/dv =  (c*perp(u) - s*u) / D,   D = |u|^2 |v|^2, perp((x,y)) = (-y,x)
func angleGradients(u, v vec2.Vec2) (dThetaDu, dThetaDv vec2.Vec2) {
	c := u.Dot(v)
	s := u.Cross(v)
	d := u.LenSqr()*v.LenSqr() + 1e-12
	dThetaDu = v.Perp().Scale(c).Add(v.Scale(s)).Scale(-1 / d)
	dThetaDv = u.Perp().Scale(c).Sub(u.Scale(s)).Scale(1 / d)
	return dThetaDu, dThetaDv
}

func defaultAngleCompliance(cfg *Config, isMotor bool) float64 {
	if isMotor {
		return cfg.MotorCompliance
	}
	return cfg.AngleCompliance
}

// solveParticleContacts sweeps every dynamic particle against every
// static collider, applying a one-shot penetration correction. Contact
// lambda is local to this sweep (starts at zero each call) and is not
// accumulated across XPBD iterations, unlike rods/angles/motors.
func solveParticleContacts(w *World, cfg *Config, dt float64) {
	tilCompliance := cfg.ContactCompliance / (dt * dt)
	for i := range w.Pos {
		wi := w.InvMass[i]
		if wi <= 0 {
			continue
		}
		p := w.Pos[i]
		for ci := range w.Circles {
			phi, n := w.SDF(ColliderCircle, ci, p)
			solveOneParticleContact(w, i, wi, phi, n, tilCompliance)
		}
		for ci := range w.Capsules {
			phi, n := w.SDF(ColliderCapsule, ci, p)
			solveOneParticleContact(w, i, wi, phi, n, tilCompliance)
		}
		for ci := range w.Boxes {
			phi, n := w.SDF(ColliderBox, ci, p)
			solveOneParticleContact(w, i, wi, phi, n, tilCompliance)
		}
	}
}

// solveOneParticleContact applies a one-shot penetration correction
// against an already-evaluated (phi, normal) pair. phi has not yet been
// inflated by the particle radius; that happens here.
func solveOneParticleContact(w *World, i int, wi, phi float64, n vec2.Vec2, tilCompliance float64) {
	c := phi - w.Radius[i]
	if c >= 0 {
		return // outside: no attractive pull, per the contact one-sidedness contract.
	}
	deltaLambda := -c / (wi + tilCompliance)
	if deltaLambda <= 0 {
		return // clamp lambda >= 0: only ever push, never pull.
	}
	w.Pos[i] = w.Pos[i].Add(n.Scale(wi * deltaLambda))
}
