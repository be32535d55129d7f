package phys2d

import (
	"math"

	"github.com/evolvatron/phys2d/vec2"
)

const (
	baumgarteBeta = 0.2
	contactSlop   = 0.01
)

// WarmImpulse is the cached (normal, tangent) accumulated impulse for one
// ContactId, reused to seed the next substep's solve.
type WarmImpulse struct {
	Normal, Tangent float64
}

// RigidContact is one rigid-body-vs-static-collider contact constraint,
// rebuilt fresh every substep by generateRigidContacts and solved by
// solveRigidContacts. It is scratch state owned by the Stepper, never by
// the World.
type RigidContact struct {
	ID ContactId

	Body int

	ContactPoint vec2.Vec2
	R            vec2.Vec2 // offset from body center to contact point, world space
	Normal       vec2.Vec2 // unit normal pointing from collider into the body
	Tangent      vec2.Vec2

	NormalMass   float64
	TangentMass  float64
	VelocityBias float64
	Friction     float64

	NormalImpulse  float64
	TangentImpulse float64
}

// generateRigidContacts enumerates every geom of every dynamic rigid body
// against every static collider, brute force; per-world entity counts
// are small enough that a broadphase would cost more than it saves.
// The result is appended to scratch (reset by the caller
// each substep) to avoid reallocating the contact list every call.
func generateRigidContacts(w *World, cfg *Config, dt float64, scratch []RigidContact) []RigidContact {
	for bi := range w.Bodies {
		b := &w.Bodies[bi]
		if b.InvMass <= 0 || b.Sleeping {
			continue
		}
		for gi := 0; gi < b.GeomCount; gi++ {
			geom := w.Geoms[b.GeomStart+gi]
			geomWorld := b.GeomWorldPos(geom)

			for ci := range w.Circles {
				scratch = maybeAddContact(w, cfg, dt, scratch, bi, b, gi, geom, geomWorld, ColliderCircle, ci)
			}
			for ci := range w.Capsules {
				scratch = maybeAddContact(w, cfg, dt, scratch, bi, b, gi, geom, geomWorld, ColliderCapsule, ci)
			}
			for ci := range w.Boxes {
				scratch = maybeAddContact(w, cfg, dt, scratch, bi, b, gi, geom, geomWorld, ColliderBox, ci)
			}
		}
	}
	return scratch
}

func maybeAddContact(w *World, cfg *Config, dt float64, scratch []RigidContact, bi int, b *RigidBody, gi int, geom Geom, geomWorld vec2.Vec2, kind ColliderKind, ci int) []RigidContact {
	phi, n := w.SDF(kind, ci, geomWorld)
	phiTotal := phi - geom.Radius
	if phiTotal >= 0 {
		return scratch
	}

	contactPoint := geomWorld.Sub(n.Scale(geom.Radius))
	r := contactPoint.Sub(b.Pos)
	t := n.Perp()

	rCrossN := r.Cross(n)
	rCrossT := r.Cross(t)
	normalDenom := b.InvMass + b.InvInertia*rCrossN*rCrossN
	tangentDenom := b.InvMass + b.InvInertia*rCrossT*rCrossT
	if normalDenom <= 0 {
		logger.Warn("phys2d: rigid contact has zero normal effective mass", "body", bi)
		return scratch
	}

	velocityBias := baumgarteBeta / dt * math.Max(0, -phiTotal-contactSlop)
	if cfg.Restitution > 0 {
		closingVel := b.Vel.Add(vec2.CrossScalar(b.AngVel, r)).Dot(n)
		if closingVel < 0 {
			restBias := -cfg.Restitution * closingVel
			if restBias > velocityBias {
				velocityBias = restBias
			}
		}
	}

	tangentMass := 0.0
	if tangentDenom > 0 {
		tangentMass = 1 / tangentDenom
	}

	return append(scratch, RigidContact{
		ID:           ContactId{Body: bi, ColliderKind: kind, ColliderIndex: ci, GeomIndex: gi},
		Body:         bi,
		ContactPoint: contactPoint,
		R:            r,
		Normal:       n,
		Tangent:      t,
		NormalMass:   1 / normalDenom,
		TangentMass:  tangentMass,
		VelocityBias: velocityBias,
		Friction:     cfg.FrictionMu,
	})
}

// warmStartRigidContacts seeds each contact's accumulated impulses from
// the cache and immediately applies them to body velocity, the standard
// warm-start acceleration for persistent contacts.
func warmStartRigidContacts(w *World, contacts []RigidContact, cache map[ContactId]WarmImpulse) {
	for i := range contacts {
		c := &contacts[i]
		seed, ok := cache[c.ID]
		if !ok {
			continue // cache miss is "new contact", initial lambda = 0; not an error.
		}
		c.NormalImpulse = seed.Normal
		c.TangentImpulse = seed.Tangent
		applyContactImpulse(w, c, c.Normal.Scale(c.NormalImpulse).Add(c.Tangent.Scale(c.TangentImpulse)))
	}
}

// solveRigidContacts runs one velocity-solve iteration over all contacts,
// friction before normal per contact, in contact-list order.
func solveRigidContacts(w *World, contacts []RigidContact) {
	for i := range contacts {
		solveContactFriction(w, &contacts[i])
		solveContactNormal(w, &contacts[i])
	}
}

func solveContactFriction(w *World, c *RigidContact) {
	b := &w.Bodies[c.Body]
	vc := b.Vel.Add(vec2.CrossScalar(b.AngVel, c.R))
	vt := vc.Dot(c.Tangent)

	deltaLambda := -c.TangentMass * vt
	oldImpulse := c.TangentImpulse
	maxFriction := c.Friction * c.NormalImpulse
	newImpulse := clampf(oldImpulse+deltaLambda, -maxFriction, maxFriction)
	deltaLambda = newImpulse - oldImpulse
	c.TangentImpulse = newImpulse

	applyContactImpulse(w, c, c.Tangent.Scale(deltaLambda))
}

func solveContactNormal(w *World, c *RigidContact) {
	b := &w.Bodies[c.Body]
	vc := b.Vel.Add(vec2.CrossScalar(b.AngVel, c.R))
	vn := vc.Dot(c.Normal)

	deltaLambda := -c.NormalMass * (vn - c.VelocityBias)
	oldImpulse := c.NormalImpulse
	newImpulse := math.Max(oldImpulse+deltaLambda, 0)
	deltaLambda = newImpulse - oldImpulse
	c.NormalImpulse = newImpulse

	applyContactImpulse(w, c, c.Normal.Scale(deltaLambda))
}

func applyContactImpulse(w *World, c *RigidContact, impulse vec2.Vec2) {
	b := &w.Bodies[c.Body]
	b.Vel = b.Vel.Add(impulse.Scale(b.InvMass))
	b.AngVel += b.InvInertia * c.R.Cross(impulse)
}

// storeWarmStartCache overwrites the cache with this substep's final
// accumulated impulses, keyed by ContactId. Entries for ContactIds that
// no longer appear are left untouched: an acceptable monotonic growth for
// bounded scenes. The cache lives as long as its Stepper; World.Clear does
// not empty it, and only a new Stepper (as batch.ResetAll creates) starts
// with an empty cache.
func storeWarmStartCache(contacts []RigidContact, cache map[ContactId]WarmImpulse) {
	for i := range contacts {
		c := &contacts[i]
		cache[c.ID] = WarmImpulse{Normal: c.NormalImpulse, Tangent: c.TangentImpulse}
	}
}

func clampf(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
