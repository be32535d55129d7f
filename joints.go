package phys2d

import (
	"math"

	"github.com/evolvatron/phys2d/vec2"
)

const (
	jointMaxLinearCorrection  = 0.2               // meters per position-correction pass
	jointAngularSlop          = 2 * math.Pi / 180 // 2 degrees
)

// JointConstraint is the solver-time state for one revolute joint,
// rebuilt fresh every substep. Scratch state owned by the Stepper.
type JointConstraint struct {
	JointIndex int

	RA, RB vec2.Vec2 // world-space anchor offsets from each body's center
	Mass   vec2.Mat2 // inverse of the 2x2 point-constraint effective-mass matrix

	Impulse vec2.Vec2 // accumulated point-constraint impulse

	AngleMass    float64 // 1/(invIA+invIB), 0 if both bodies are pinned
	LimitImpulse float64
	MotorImpulse float64
}

// buildJointConstraints precomputes the effective-mass data for every
// joint in the world, for this substep.
func buildJointConstraints(w *World, scratch []JointConstraint) []JointConstraint {
	for ji := range w.Joints {
		j := &w.Joints[ji]
		a := &w.Bodies[j.BodyA]
		b := &w.Bodies[j.BodyB]

		rA := j.LocalAnchorA.Rotate(a.Angle)
		rB := j.LocalAnchorB.Rotate(b.Angle)

		k := vec2.Mat2{
			M00: a.InvMass + b.InvMass + a.InvInertia*rA.Y*rA.Y + b.InvInertia*rB.Y*rB.Y,
			M01: -a.InvInertia*rA.X*rA.Y - b.InvInertia*rB.X*rB.Y,
			M10: -a.InvInertia*rA.X*rA.Y - b.InvInertia*rB.X*rB.Y,
			M11: a.InvMass + b.InvMass + a.InvInertia*rA.X*rA.X + b.InvInertia*rB.X*rB.X,
		}

		angleMass := 0.0
		if sum := a.InvInertia + b.InvInertia; sum > 0 {
			angleMass = 1 / sum
		}

		scratch = append(scratch, JointConstraint{
			JointIndex: ji,
			RA:         rA,
			RB:         rB,
			Mass:       k.Inverse(),
			AngleMass:  angleMass,
		})
	}
	return scratch
}

// solveJointConstraints runs one velocity iteration: motor, then angle
// limits, then the point constraint, for every joint.
func solveJointConstraints(w *World, cfg *Config, dt float64, joints []JointConstraint) {
	for i := range joints {
		jc := &joints[i]
		j := &w.Joints[jc.JointIndex]
		a := &w.Bodies[j.BodyA]
		b := &w.Bodies[j.BodyB]

		if j.MotorEnabled {
			solveJointMotor(a, b, j, jc, dt)
		}
		if j.LimitsEnabled {
			solveJointLimit(a, b, j, jc, dt)
		}
		solveJointPoint(a, b, jc)
	}
}

func solveJointMotor(a, b *RigidBody, j *RevoluteJoint, jc *JointConstraint, dt float64) {
	if jc.AngleMass <= 0 {
		return
	}
	cdot := b.AngVel - a.AngVel - j.MotorTargetVel
	deltaImpulse := -jc.AngleMass * cdot
	old := jc.MotorImpulse
	maxImpulse := j.MaxTorque * dt
	newImpulse := clampf(old+deltaImpulse, -maxImpulse, maxImpulse)
	deltaImpulse = newImpulse - old
	jc.MotorImpulse = newImpulse

	a.AngVel -= a.InvInertia * deltaImpulse
	b.AngVel += b.InvInertia * deltaImpulse
}

func jointAngle(a, b *RigidBody, j *RevoluteJoint) float64 {
	return vec2.WrapAngle(b.Angle - a.Angle - j.ReferenceAngle)
}

// solveJointLimit applies a one-sided impulse when the joint angle is
// outside [lower, upper]; the accumulated impulse is clamped to the sign
// that only pushes back into range, never pulls past it. The positional
// bias term uses the substep's dt, the same baumgarteBeta/dt form
// contacts.go uses, never a hardcoded rate.
func solveJointLimit(a, b *RigidBody, j *RevoluteJoint, jc *JointConstraint, dt float64) {
	if jc.AngleMass <= 0 {
		return
	}
	angle := jointAngle(a, b, j)
	cdot := b.AngVel - a.AngVel

	var c float64
	var lo, hi float64
	switch {
	case angle <= j.LowerLimit:
		c = angle - j.LowerLimit
		lo, hi = 0, math.Inf(1)
	case angle >= j.UpperLimit:
		c = angle - j.UpperLimit
		lo, hi = math.Inf(-1), 0
	default:
		jc.LimitImpulse = 0
		return
	}

	deltaImpulse := -jc.AngleMass * (cdot + baumgarteBeta/dt*c)
	old := jc.LimitImpulse
	newImpulse := clampf(old+deltaImpulse, lo, hi)
	deltaImpulse = newImpulse - old
	jc.LimitImpulse = newImpulse

	a.AngVel -= a.InvInertia * deltaImpulse
	b.AngVel += b.InvInertia * deltaImpulse
}

func solveJointPoint(a, b *RigidBody, jc *JointConstraint) {
	vA := a.Vel.Add(vec2.CrossScalar(a.AngVel, jc.RA))
	vB := b.Vel.Add(vec2.CrossScalar(b.AngVel, jc.RB))
	cdot := vB.Sub(vA)

	impulse := jc.Mass.MulVec(cdot.Neg())
	jc.Impulse = jc.Impulse.Add(impulse)

	a.Vel = a.Vel.Sub(impulse.Scale(a.InvMass))
	a.AngVel -= a.InvInertia * jc.RA.Cross(impulse)
	b.Vel = b.Vel.Add(impulse.Scale(b.InvMass))
	b.AngVel += b.InvInertia * jc.RB.Cross(impulse)
}

// stabilizeJoints runs a single position-correction pass after velocity
// iterations, resolving residual anchor separation and angle-limit
// violations with a clamped per-step linear correction and an angular
// slop tolerance, rather than iterating to convergence every substep.
func stabilizeJoints(w *World) {
	for ji := range w.Joints {
		j := &w.Joints[ji]
		a := &w.Bodies[j.BodyA]
		b := &w.Bodies[j.BodyB]

		rA := j.LocalAnchorA.Rotate(a.Angle)
		rB := j.LocalAnchorB.Rotate(b.Angle)
		anchorA := a.Pos.Add(rA)
		anchorB := b.Pos.Add(rB)
		c := anchorB.Sub(anchorA)

		totalInvMass := a.InvMass + b.InvMass
		if totalInvMass > 0 && c.Len() > 0 {
			mag := c.Len()
			clamped := math.Min(mag, jointMaxLinearCorrection)
			corr := c.Scale(clamped / mag)
			a.Pos = a.Pos.Add(corr.Scale(a.InvMass / totalInvMass))
			b.Pos = b.Pos.Add(corr.Scale(-b.InvMass / totalInvMass))
		}

		if j.LimitsEnabled {
			totalInvI := a.InvInertia + b.InvInertia
			if totalInvI > 0 {
				angle := jointAngle(a, b, j)
				var violation float64
				switch {
				case angle < j.LowerLimit-jointAngularSlop:
					violation = angle - j.LowerLimit
				case angle > j.UpperLimit+jointAngularSlop:
					violation = angle - j.UpperLimit
				}
				if violation != 0 {
					a.Angle += violation * (a.InvInertia / totalInvI)
					b.Angle -= violation * (b.InvInertia / totalInvI)
				}
			}
		}
	}
}
