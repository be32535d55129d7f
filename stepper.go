package phys2d

// Stepper orchestrates one simulated step per the fixed substep pipeline:
// gravity, integrate, solve, impulses, post-process. It owns the
// warm-start cache and the per-substep scratch buffers for rigid
// contacts and joint constraints, so solvers never allocate on the hot
// path after the first substep.
type Stepper struct {
	warmStart map[ContactId]WarmImpulse

	contactScratch []RigidContact
	jointScratch   []JointConstraint

	prevActiveContacts map[ContactId]bool
}

// NewStepper returns a Stepper with an empty warm-start cache.
func NewStepper() *Stepper {
	return &Stepper{warmStart: make(map[ContactId]WarmImpulse)}
}

// Step advances the world by cfg.Substeps substeps. It never fails: all
// error handling is local, and degenerate configurations short-circuit
// inside the solvers that encounter them.
func (s *Stepper) Step(w *World, cfg *Config) {
	for i := 0; i < cfg.Substeps; i++ {
		s.substep(w, cfg)
	}
	var events []ContactEvent
	events, s.prevActiveContacts = diffContactEvents(s.contactScratch, s.prevActiveContacts)
	w.pendingEvents = append(w.pendingEvents, events...)
}

func (s *Stepper) substep(w *World, cfg *Config) {
	dt := cfg.Dt

	// (i) gravity
	applyGravityParticles(w, cfg.GravityX, cfg.GravityY)
	applyGravityRigidBodies(w, cfg.GravityX, cfg.GravityY, dt)

	// (ii) save previous positions
	copy(w.PrevPos, w.Pos)

	// (iii) integrate velocities and positions
	integrateParticles(w, dt)
	integrateRigidBodies(w, dt)

	// (iv) reset XPBD multipliers
	resetXPBDLambdas(w)

	// (v) XPBD sweeps over particle constraints
	for i := 0; i < cfg.XPBDIterations; i++ {
		solveXPBDIteration(w, cfg, dt)
	}

	// (vi) build rigid-body contact and joint constraints
	s.contactScratch = generateRigidContacts(w, cfg, dt, s.contactScratch[:0])
	s.jointScratch = buildJointConstraints(w, s.jointScratch[:0])

	// (vii) apply warm-start impulses
	warmStartRigidContacts(w, s.contactScratch, s.warmStart)

	// (viii) XpbdIterations sweeps of velocity constraints
	for i := 0; i < cfg.XPBDIterations; i++ {
		solveRigidContacts(w, s.contactScratch)
		solveJointConstraints(w, cfg, dt, s.jointScratch)
	}

	// (ix) one joint position stabilization pass
	stabilizeJoints(w)

	// (x) cache impulses
	storeWarmStartCache(s.contactScratch, s.warmStart)

	// (xi) velocity stabilization, friction, damping
	stabilizeVelocities(w, cfg, dt)
	applyParticleFriction(w, cfg)
	applyAngularDampingParticles(w, cfg.AngularDamping, dt)
	applyDamping(w, cfg, dt)
	updateSleepState(w, cfg, dt)
}
