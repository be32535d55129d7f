package phys2d

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/evolvatron/phys2d/vec2"
)

// pinned base plus a co-centered arm: the joint removes translation, the
// motor is the only thing driving rotation.
func buildMotorRig(t *testing.T) (*World, int, int) {
	t.Helper()
	w := NewWorld()
	geoms := []Geom{{Radius: 0.5}}
	base, err := w.AddPinnedRigidBody(vec2.V(0, 0), 0, geoms)
	assert.NoError(t, err)
	arm, err := w.AddRigidBody(vec2.V(0, 0), 0, 1, geoms)
	assert.NoError(t, err)
	ji, err := w.AddRevoluteJoint(base, arm, vec2.V(0, 0), vec2.V(0, 0))
	assert.NoError(t, err)
	return w, arm, ji
}

func TestJointMotorReachesTargetVelocity(t *testing.T) {
	w, arm, ji := buildMotorRig(t)
	assert.NoError(t, w.EnableJointMotor(ji, 2.0, 100))

	cfg := NewConfig(WithGravity(0, 0), WithDamping(0, 0))
	stepper := NewStepper()
	for i := 0; i < 240; i++ {
		stepper.Step(w, cfg)
	}

	assert.InDelta(t, 2.0, w.Bodies[arm].AngVel, 0.1)
}

func TestJointMotorTorqueBoundLimitsSpinup(t *testing.T) {
	w, arm, ji := buildMotorRig(t)
	// Nearly zero torque budget: the arm must stay far from the target
	// velocity after a short run.
	assert.NoError(t, w.EnableJointMotor(ji, 50.0, 1e-4))

	cfg := NewConfig(WithGravity(0, 0), WithDamping(0, 0))
	stepper := NewStepper()
	for i := 0; i < 24; i++ {
		stepper.Step(w, cfg)
	}

	assert.Less(t, w.Bodies[arm].AngVel, 1.0)
}

func TestJointLimitStopsMotorDrivenArm(t *testing.T) {
	w, _, ji := buildMotorRig(t)
	assert.NoError(t, w.EnableJointMotor(ji, 2.0, 100))
	assert.NoError(t, w.EnableJointLimits(ji, -0.3, 0.3))

	cfg := NewConfig(WithGravity(0, 0), WithDamping(0, 0))
	stepper := NewStepper()
	for i := 0; i < 480; i++ {
		stepper.Step(w, cfg)
	}

	angle, err := w.JointAngle(ji)
	assert.NoError(t, err)
	assert.InDelta(t, 0.3, angle, 0.1)
}

func TestJointLimitValidation(t *testing.T) {
	w, _, ji := buildMotorRig(t)
	assert.Error(t, w.EnableJointLimits(ji, 1.0, -1.0))
	assert.Error(t, w.EnableJointLimits(99, -1.0, 1.0))
	assert.NoError(t, w.EnableJointLimits(ji, -1.0, 1.0))
	assert.NoError(t, w.DisableJointLimits(ji))
}

func TestSetJointMotorTargetRetargets(t *testing.T) {
	w, arm, ji := buildMotorRig(t)
	assert.NoError(t, w.EnableJointMotor(ji, 2.0, 100))

	cfg := NewConfig(WithGravity(0, 0), WithDamping(0, 0))
	stepper := NewStepper()
	for i := 0; i < 120; i++ {
		stepper.Step(w, cfg)
	}
	assert.NoError(t, w.SetJointMotorTarget(ji, -1.0))
	for i := 0; i < 240; i++ {
		stepper.Step(w, cfg)
	}

	assert.InDelta(t, -1.0, w.Bodies[arm].AngVel, 0.1)
}
