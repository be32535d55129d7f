package phys2d

import "github.com/evolvatron/phys2d/vec2"

const (
	sleepLinearThreshold  = 0.05 // m/s
	sleepAngularThreshold = 0.05 // rad/s
	sleepTimeThreshold    = 0.5  // seconds below threshold before sleeping
)

// updateSleepState puts rigid bodies to sleep after their velocity has
// stayed under the thresholds for sleepTimeThreshold seconds, and wakes
// them the moment it rises again. Disabled by default
// (Config.SleepEnabled = false); fitness-evaluation callers opt in for
// the performance win. A body only ever sleeps once its velocity is
// already near zero, so skipping it in later substeps changes nothing
// observable.
func updateSleepState(w *World, cfg *Config, dt float64) {
	if !cfg.SleepEnabled {
		return
	}
	for i := range w.Bodies {
		b := &w.Bodies[i]
		if b.InvMass <= 0 {
			continue
		}
		slow := b.Vel.LenSqr() < sleepLinearThreshold*sleepLinearThreshold &&
			b.AngVel*b.AngVel < sleepAngularThreshold*sleepAngularThreshold
		if !slow {
			b.sleepTimer = 0
			b.Sleeping = false
			continue
		}
		b.sleepTimer += dt
		if b.sleepTimer >= sleepTimeThreshold {
			b.Sleeping = true
			b.Vel = vec2.Vec2{}
			b.AngVel = 0
		}
	}
}
