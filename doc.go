// Package phys2d is a deterministic, fixed-timestep 2D physics engine:
// the simulation substrate for an evolutionary reinforcement-learning
// platform. It advances a world of point-mass particles, articulated
// particle assemblies, and rigid bodies under gravity, constraints, and
// contact with static colliders, producing bit-identical trajectories
// for identical inputs on machines with the same floating-point
// configuration.
//
// Two complementary solvers split the work: an XPBD position solver for
// particle constraints (rods, angles, motors, contacts) and a
// sequential-impulse velocity solver for rigid-body contacts and
// revolute joints, with warm-starting across substeps. Static colliders
// are closed-form signed-distance fields (circle, capsule, oriented
// box); there is no broadphase and no rigid-vs-rigid contact.
//
// The three public surfaces are the world-building API on World, the
// Step function on Stepper driven by a Config, and read-only accessors
// over world state. The batch subpackage steps N independent worlds in
// lockstep for fitness evaluation.
package phys2d
