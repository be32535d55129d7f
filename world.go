package phys2d

import (
	"math"

	"github.com/google/uuid"

	"github.com/evolvatron/phys2d/vec2"
)

// ColliderKind distinguishes the three static collider shapes. Kept as a
// small int rather than an interface so contact generation can iterate
// three homogeneous arrays in a fixed order, cheap on a CPU and the
// layout the batched engine needs unchanged.
type ColliderKind int

const (
	ColliderCircle ColliderKind = iota
	ColliderCapsule
	ColliderBox
)

// CircleCollider is an immutable static circle.
type CircleCollider struct {
	Center vec2.Vec2
	Radius float64
}

// CapsuleCollider is an immutable static capsule: a segment of half-length
// HalfLen along unit Axis through Center, inflated by Radius.
type CapsuleCollider struct {
	Center  vec2.Vec2
	Axis    vec2.Vec2
	HalfLen float64
	Radius  float64
}

// BoxCollider is an immutable static oriented box: half-extents along
// unit Axis (local X) and its perpendicular (local Y).
type BoxCollider struct {
	Center      vec2.Vec2
	Axis        vec2.Vec2
	HalfExtents vec2.Vec2
}

// SDF evaluates the signed distance and outward normal of a point against
// collider index idx of the given kind. Index validity is the caller's
// responsibility; it is only ever called internally with indices drawn
// from the world's own arrays.
func (w *World) SDF(kind ColliderKind, idx int, p vec2.Vec2) (float64, vec2.Vec2) {
	switch kind {
	case ColliderCircle:
		c := w.Circles[idx]
		return vec2.CircleSDF(p, c.Center, c.Radius)
	case ColliderCapsule:
		c := w.Capsules[idx]
		return vec2.CapsuleSDF(p, c.Center, c.Axis, c.HalfLen, c.Radius)
	case ColliderBox:
		c := w.Boxes[idx]
		return vec2.BoxSDF(p, c.Center, c.Axis, c.HalfExtents.X, c.HalfExtents.Y)
	}
	return 0, vec2.Vec2{}
}

// Rod is a distance constraint between two particles.
type Rod struct {
	I, J       int
	RestLength float64
	Compliance float64
	Lambda     float64
}

// Angle is a 2D angle constraint with vertex J, or a motor-angle
// constraint when IsMotor is true (its Target is mutated by the caller
// between steps rather than fixed at construction).
type Angle struct {
	I, J, K    int
	Target     float64
	Compliance float64
	Lambda     float64
	IsMotor    bool
}

// Geom is one circle collision shape attached to a rigid body, in the
// body's local frame.
type Geom struct {
	LocalOffset vec2.Vec2
	Radius      float64
}

// RigidBody is a 2D body with one or more circle geoms.
type RigidBody struct {
	Pos    vec2.Vec2
	Angle  float64
	Vel    vec2.Vec2
	AngVel float64

	InvMass    float64
	InvInertia float64

	GeomStart int
	GeomCount int

	Sleeping   bool
	sleepTimer float64
}

// GeomWorldPos returns the world-space position of geom g attached to this body.
func (b *RigidBody) GeomWorldPos(g Geom) vec2.Vec2 {
	return b.Pos.Add(g.LocalOffset.Rotate(b.Angle))
}

// RevoluteJoint pins two rigid bodies' local anchors together and
// optionally constrains/drives their relative angle.
type RevoluteJoint struct {
	BodyA, BodyB             int
	LocalAnchorA, LocalAnchorB vec2.Vec2
	ReferenceAngle           float64

	LimitsEnabled        bool
	LowerLimit, UpperLimit float64

	MotorEnabled   bool
	MotorTargetVel float64
	MaxTorque      float64
}

// ContactId is the compound key identifying a rigid-body contact across
// substeps for warm-starting: (body, collider kind, collider index, geom
// index).
type ContactId struct {
	Body          int
	ColliderKind  ColliderKind
	ColliderIndex int
	GeomIndex     int
}

// World owns all simulation data in Structure-of-Arrays layout. Solvers
// borrow it mutably for the duration of one solver pass and retain no
// references across calls.
type World struct {
	ID string

	// Particles, SoA: all six arrays share one length.
	Pos     []vec2.Vec2
	Vel     []vec2.Vec2
	InvMass []float64
	Radius  []float64
	PrevPos []vec2.Vec2
	Force   []vec2.Vec2

	Rods   []Rod
	Angles []Angle
	Motors []Angle

	Bodies []RigidBody
	Geoms  []Geom
	Joints []RevoluteJoint

	Circles  []CircleCollider
	Capsules []CapsuleCollider
	Boxes    []BoxCollider

	pendingEvents []ContactEvent
}

// NewWorld returns an empty world with a fresh ID.
func NewWorld() *World {
	return &World{ID: uuid.NewString()}
}

// AddParticle adds a dynamic particle and returns its stable index.
func (w *World) AddParticle(pos vec2.Vec2, mass, radius float64) (int, error) {
	if math.IsNaN(mass) || mass <= 0 {
		return 0, invalidMassf("particle mass must be positive, got %v", mass)
	}
	if !finiteVec(pos) {
		return 0, invalidValuef("particle position is not finite: (%v, %v)", pos.X, pos.Y)
	}
	return w.addParticle(pos, 1/mass, radius), nil
}

// AddPinnedParticle adds a particle with zero inverse mass: it never
// moves under any solver.
func (w *World) AddPinnedParticle(pos vec2.Vec2, radius float64) int {
	return w.addParticle(pos, 0, radius)
}

func (w *World) addParticle(pos vec2.Vec2, invMass, radius float64) int {
	idx := len(w.Pos)
	w.Pos = append(w.Pos, pos)
	w.Vel = append(w.Vel, vec2.Vec2{})
	w.InvMass = append(w.InvMass, invMass)
	w.Radius = append(w.Radius, radius)
	w.PrevPos = append(w.PrevPos, pos)
	w.Force = append(w.Force, vec2.Vec2{})
	return idx
}

// AddRod adds a distance constraint between particles i and j with rest
// length L and compliance. A negative compliance is invalid.
func (w *World) AddRod(i, j int, restLength, compliance float64) (int, error) {
	if err := w.checkParticle(i); err != nil {
		return 0, err
	}
	if err := w.checkParticle(j); err != nil {
		return 0, err
	}
	if compliance < 0 || math.IsNaN(compliance) {
		return 0, invalidValuef("rod compliance must be >= 0, got %v", compliance)
	}
	if math.IsNaN(restLength) || restLength < 0 {
		return 0, invalidValuef("rod rest length must be >= 0, got %v", restLength)
	}
	idx := len(w.Rods)
	w.Rods = append(w.Rods, Rod{I: i, J: j, RestLength: restLength, Compliance: compliance})
	return idx, nil
}

// AddAngle adds an angle constraint with vertex j and target angle theta0.
func (w *World) AddAngle(i, j, k int, target, compliance float64) (int, error) {
	if err := w.checkAngleIndices(i, j, k); err != nil {
		return 0, err
	}
	if math.IsNaN(target) || compliance < 0 || math.IsNaN(compliance) {
		return 0, invalidValuef("angle target %v / compliance %v invalid", target, compliance)
	}
	idx := len(w.Angles)
	w.Angles = append(w.Angles, Angle{I: i, J: j, K: k, Target: target, Compliance: compliance})
	return idx, nil
}

// AddMotor adds a motor-angle constraint: shaped like AddAngle, but its
// Target is expected to be mutated by the caller between steps (servo
// actuation), and is swept after contacts rather than with the angle list.
func (w *World) AddMotor(i, j, k int, target, compliance float64) (int, error) {
	if err := w.checkAngleIndices(i, j, k); err != nil {
		return 0, err
	}
	if math.IsNaN(target) || compliance < 0 || math.IsNaN(compliance) {
		return 0, invalidValuef("motor target %v / compliance %v invalid", target, compliance)
	}
	idx := len(w.Motors)
	w.Motors = append(w.Motors, Angle{I: i, J: j, K: k, Target: target, Compliance: compliance, IsMotor: true})
	return idx, nil
}

// AddAngleAsRod is the preferred way to hold a target angle in rigid
// articulated structures, where a direct angle constraint fights the
// rods and ground contacts: rather than constraining
// the angle directly, it adds a rod between i and k whose rest length is
// the diagonal implied by the law of cosines for edges (j,i), (j,k) and
// the target angle: d^2 = L1^2 + L2^2 - 2*L1*L2*cos(theta).
func (w *World) AddAngleAsRod(i, j, k int, target, compliance float64) (int, error) {
	if err := w.checkAngleIndices(i, j, k); err != nil {
		return 0, err
	}
	l1 := w.Pos[i].Sub(w.Pos[j]).Len()
	l2 := w.Pos[k].Sub(w.Pos[j]).Len()
	d2 := l1*l1 + l2*l2 - 2*l1*l2*math.Cos(target)
	if d2 < 0 {
		d2 = 0
	}
	return w.AddRod(i, k, math.Sqrt(d2), compliance)
}

// AddRigidBody adds a rigid body with the given geoms (in body-local
// space) and returns its stable index.
func (w *World) AddRigidBody(pos vec2.Vec2, angle, mass float64, geoms []Geom) (int, error) {
	if math.IsNaN(mass) || mass <= 0 {
		return 0, invalidMassf("rigid body mass must be positive, got %v", mass)
	}
	if !finiteVec(pos) || math.IsNaN(angle) {
		return 0, invalidValuef("rigid body pose is not finite: (%v, %v) @ %v", pos.X, pos.Y, angle)
	}
	if len(geoms) == 0 {
		return 0, invalidValuef("rigid body must have at least one geom")
	}
	invMass := 1 / mass
	invInertia := 1 / rigidBodyInertia(mass, geoms)

	start := len(w.Geoms)
	w.Geoms = append(w.Geoms, geoms...)

	idx := len(w.Bodies)
	w.Bodies = append(w.Bodies, RigidBody{
		Pos: pos, Angle: angle,
		InvMass: invMass, InvInertia: invInertia,
		GeomStart: start, GeomCount: len(geoms),
	})
	return idx, nil
}

// AddPinnedRigidBody adds a rigid body with zero inverse mass and zero
// inverse inertia: it never moves, and serves as a fixed anchor for
// revolute joints. It generates no contacts.
func (w *World) AddPinnedRigidBody(pos vec2.Vec2, angle float64, geoms []Geom) (int, error) {
	if !finiteVec(pos) || math.IsNaN(angle) {
		return 0, invalidValuef("rigid body pose is not finite: (%v, %v) @ %v", pos.X, pos.Y, angle)
	}
	if len(geoms) == 0 {
		return 0, invalidValuef("rigid body must have at least one geom")
	}
	start := len(w.Geoms)
	w.Geoms = append(w.Geoms, geoms...)

	idx := len(w.Bodies)
	w.Bodies = append(w.Bodies, RigidBody{
		Pos: pos, Angle: angle,
		GeomStart: start, GeomCount: len(geoms),
	})
	return idx, nil
}

// rigidBodyInertia approximates the moment of inertia of a body as the
// sum of its circle geoms' own inertia (1/2 m r^2 for a disc about its
// own center) plus the parallel-axis contribution of its offset, with
// per-geom mass apportioned by area.
func rigidBodyInertia(mass float64, geoms []Geom) float64 {
	totalArea := 0.0
	for _, g := range geoms {
		totalArea += g.Radius * g.Radius
	}
	if totalArea <= 0 {
		return mass // degenerate guard; never reached when geoms validated above
	}
	inertia := 0.0
	for _, g := range geoms {
		m := mass * (g.Radius * g.Radius) / totalArea
		inertia += 0.5*m*g.Radius*g.Radius + m*g.LocalOffset.LenSqr()
	}
	return inertia
}

// AddRevoluteJoint pins local anchors of bodyA and bodyB together.
func (w *World) AddRevoluteJoint(bodyA, bodyB int, localAnchorA, localAnchorB vec2.Vec2) (int, error) {
	if err := w.checkBody(bodyA); err != nil {
		return 0, err
	}
	if err := w.checkBody(bodyB); err != nil {
		return 0, err
	}
	ref := w.Bodies[bodyB].Angle - w.Bodies[bodyA].Angle
	idx := len(w.Joints)
	w.Joints = append(w.Joints, RevoluteJoint{
		BodyA: bodyA, BodyB: bodyB,
		LocalAnchorA: localAnchorA, LocalAnchorB: localAnchorB,
		ReferenceAngle: ref,
	})
	return idx, nil
}

// EnableJointLimits turns on angle limits [lower, upper] (radians,
// relative to the joint's reference angle) for an existing joint.
func (w *World) EnableJointLimits(joint int, lower, upper float64) error {
	if err := w.checkJoint(joint); err != nil {
		return err
	}
	if lower > upper {
		return invalidValuef("joint limits lower %v > upper %v", lower, upper)
	}
	j := &w.Joints[joint]
	j.LimitsEnabled = true
	j.LowerLimit = lower
	j.UpperLimit = upper
	return nil
}

// DisableJointLimits turns off angle limits for an existing joint.
func (w *World) DisableJointLimits(joint int) error {
	if err := w.checkJoint(joint); err != nil {
		return err
	}
	w.Joints[joint].LimitsEnabled = false
	return nil
}

// EnableJointMotor drives the joint toward targetVel (rad/s of relative
// angular velocity) with torque bounded by maxTorque.
func (w *World) EnableJointMotor(joint int, targetVel, maxTorque float64) error {
	if err := w.checkJoint(joint); err != nil {
		return err
	}
	if maxTorque < 0 {
		return invalidValuef("joint motor max torque must be >= 0, got %v", maxTorque)
	}
	j := &w.Joints[joint]
	j.MotorEnabled = true
	j.MotorTargetVel = targetVel
	j.MaxTorque = maxTorque
	return nil
}

// SetJointMotorTarget updates the target angular velocity of an already
// enabled joint motor; the controller calls this between steps.
func (w *World) SetJointMotorTarget(joint int, targetVel float64) error {
	if err := w.checkJoint(joint); err != nil {
		return err
	}
	w.Joints[joint].MotorTargetVel = targetVel
	return nil
}

// DisableJointMotor turns the joint motor off.
func (w *World) DisableJointMotor(joint int) error {
	if err := w.checkJoint(joint); err != nil {
		return err
	}
	w.Joints[joint].MotorEnabled = false
	return nil
}

// SetMotorTarget updates the target angle of a motor-angle constraint;
// servo controllers call this between steps to drive actuators.
func (w *World) SetMotorTarget(motor int, target float64) error {
	if motor < 0 || motor >= len(w.Motors) {
		return invalidIndexf("motor index %d out of range [0,%d)", motor, len(w.Motors))
	}
	if math.IsNaN(target) {
		return invalidValuef("motor target is NaN")
	}
	w.Motors[motor].Target = target
	return nil
}

// AddCircleCollider adds an immutable static circle collider.
func (w *World) AddCircleCollider(center vec2.Vec2, radius float64) int {
	idx := len(w.Circles)
	w.Circles = append(w.Circles, CircleCollider{Center: center, Radius: radius})
	return idx
}

// AddCapsuleCollider adds an immutable static capsule collider. axis is
// normalized on insertion.
func (w *World) AddCapsuleCollider(center, axis vec2.Vec2, halfLen, radius float64) int {
	idx := len(w.Capsules)
	w.Capsules = append(w.Capsules, CapsuleCollider{Center: center, Axis: axis.Unit(), HalfLen: halfLen, Radius: radius})
	return idx
}

// AddBoxCollider adds an immutable static oriented box collider. axis is
// normalized on insertion.
func (w *World) AddBoxCollider(center, axis vec2.Vec2, halfExtents vec2.Vec2) int {
	idx := len(w.Boxes)
	w.Boxes = append(w.Boxes, BoxCollider{Center: center, Axis: axis.Unit(), HalfExtents: halfExtents})
	return idx
}

// Clear resets all arrays, as if the world were newly constructed, save
// for its ID.
func (w *World) Clear() {
	id := w.ID
	*w = World{ID: id}
}

func (w *World) checkParticle(i int) error {
	if i < 0 || i >= len(w.Pos) {
		return invalidIndexf("particle index %d out of range [0,%d)", i, len(w.Pos))
	}
	return nil
}

func (w *World) checkBody(i int) error {
	if i < 0 || i >= len(w.Bodies) {
		return invalidIndexf("body index %d out of range [0,%d)", i, len(w.Bodies))
	}
	return nil
}

func finiteVec(v vec2.Vec2) bool {
	return !math.IsNaN(v.X) && !math.IsInf(v.X, 0) &&
		!math.IsNaN(v.Y) && !math.IsInf(v.Y, 0)
}

func (w *World) checkJoint(i int) error {
	if i < 0 || i >= len(w.Joints) {
		return invalidIndexf("joint index %d out of range [0,%d)", i, len(w.Joints))
	}
	return nil
}

func (w *World) checkAngleIndices(i, j, k int) error {
	if err := w.checkParticle(i); err != nil {
		return err
	}
	if err := w.checkParticle(j); err != nil {
		return err
	}
	return w.checkParticle(k)
}
