package phys2d

import "github.com/evolvatron/phys2d/vec2"

// Read-only accessors over world state, the third external surface next
// to the builder API and Step. Fitness evaluators read trajectories
// through these; nothing here mutates the world.

// ParticleCount returns the number of particles in the world.
func (w *World) ParticleCount() int { return len(w.Pos) }

// BodyCount returns the number of rigid bodies in the world.
func (w *World) BodyCount() int { return len(w.Bodies) }

// JointCount returns the number of revolute joints in the world.
func (w *World) JointCount() int { return len(w.Joints) }

// ParticlePosition returns the position of particle i.
func (w *World) ParticlePosition(i int) (vec2.Vec2, error) {
	if err := w.checkParticle(i); err != nil {
		return vec2.Vec2{}, err
	}
	return w.Pos[i], nil
}

// ParticleVelocity returns the velocity of particle i.
func (w *World) ParticleVelocity(i int) (vec2.Vec2, error) {
	if err := w.checkParticle(i); err != nil {
		return vec2.Vec2{}, err
	}
	return w.Vel[i], nil
}

// BodyState is a read-only snapshot of one rigid body's dynamic state.
type BodyState struct {
	Pos      vec2.Vec2
	Angle    float64
	Vel      vec2.Vec2
	AngVel   float64
	Sleeping bool
}

// BodyState returns a snapshot of rigid body i.
func (w *World) BodyState(i int) (BodyState, error) {
	if err := w.checkBody(i); err != nil {
		return BodyState{}, err
	}
	b := &w.Bodies[i]
	return BodyState{
		Pos:      b.Pos,
		Angle:    b.Angle,
		Vel:      b.Vel,
		AngVel:   b.AngVel,
		Sleeping: b.Sleeping,
	}, nil
}

// JointAngle returns the current joint angle of joint i: the bodies'
// angle difference minus the reference angle, wrapped to (-pi, pi].
func (w *World) JointAngle(i int) (float64, error) {
	if err := w.checkJoint(i); err != nil {
		return 0, err
	}
	j := &w.Joints[i]
	return jointAngle(&w.Bodies[j.BodyA], &w.Bodies[j.BodyB], j), nil
}

// JointAnchorSeparation returns the world-space distance between the two
// bodies' anchors of joint i; zero for a perfectly satisfied joint.
func (w *World) JointAnchorSeparation(i int) (float64, error) {
	if err := w.checkJoint(i); err != nil {
		return 0, err
	}
	j := &w.Joints[i]
	a := &w.Bodies[j.BodyA]
	b := &w.Bodies[j.BodyB]
	anchorA := a.Pos.Add(j.LocalAnchorA.Rotate(a.Angle))
	anchorB := b.Pos.Add(j.LocalAnchorB.Rotate(b.Angle))
	return anchorB.Sub(anchorA).Len(), nil
}
