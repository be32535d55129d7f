package phys2d

// Config holds the tunable simulation parameters consumed by Step. Build
// one with NewConfig and zero or more Attr options; unset fields take the
// documented defaults.
type Config struct {
	Dt              float64 // substep duration in seconds
	Substeps        int     // number of substeps per step
	XPBDIterations  int     // constraint sweeps per substep
	GravityX        float64
	GravityY        float64

	ContactCompliance float64 // particle-contact XPBD compliance
	RodCompliance     float64 // particle-rod XPBD compliance
	AngleCompliance   float64 // particle-angle XPBD compliance
	MotorCompliance   float64 // motor-angle XPBD compliance

	FrictionMu  float64 // Coulomb mu for particles and rigid bodies
	Restitution float64 // rigid-body normal restitution

	VelocityStabilizationBeta float64 // blend factor, see postprocess.go

	GlobalDamping  float64 // linear damping coefficient per second
	AngularDamping float64 // angular damping coefficient per second

	MaxVelocity float64 // optional particle speed cap, 0 = off

	SleepEnabled bool // supplemented: opt-in rigid body sleeping
}

// configDefaults mirrors the default column of the simulation
// configuration table: dt = 1/240, substeps = 1, 12 XPBD iterations,
// gravity (0, -9.81), and so on.
var configDefaults = Config{
	Dt:             1.0 / 240.0,
	Substeps:       1,
	XPBDIterations: 12,
	GravityX:       0,
	GravityY:       -9.81,

	ContactCompliance: 1e-8,
	RodCompliance:     0,
	AngleCompliance:   0,
	MotorCompliance:   1e-6,

	FrictionMu:  0.6,
	Restitution: 0,

	VelocityStabilizationBeta: 1.0,

	GlobalDamping:  0.01,
	AngularDamping: 0.1,

	MaxVelocity: 10,

	SleepEnabled: false,
}

// Attr configures a Config option, following the functional-options
// pattern: each With* constructor returns a closure applied in order by
// NewConfig.
type Attr func(*Config)

func WithDt(dt float64) Attr                { return func(c *Config) { c.Dt = dt } }
func WithSubsteps(n int) Attr               { return func(c *Config) { c.Substeps = n } }
func WithXPBDIterations(n int) Attr         { return func(c *Config) { c.XPBDIterations = n } }
func WithGravity(x, y float64) Attr         { return func(c *Config) { c.GravityX, c.GravityY = x, y } }
func WithContactCompliance(a float64) Attr  { return func(c *Config) { c.ContactCompliance = a } }
func WithRodCompliance(a float64) Attr      { return func(c *Config) { c.RodCompliance = a } }
func WithAngleCompliance(a float64) Attr    { return func(c *Config) { c.AngleCompliance = a } }
func WithMotorCompliance(a float64) Attr    { return func(c *Config) { c.MotorCompliance = a } }
func WithFrictionMu(mu float64) Attr        { return func(c *Config) { c.FrictionMu = mu } }
func WithRestitution(r float64) Attr        { return func(c *Config) { c.Restitution = r } }
func WithVelocityStabilizationBeta(b float64) Attr {
	return func(c *Config) { c.VelocityStabilizationBeta = b }
}
func WithDamping(linear, angular float64) Attr {
	return func(c *Config) { c.GlobalDamping, c.AngularDamping = linear, angular }
}
func WithMaxVelocity(v float64) Attr { return func(c *Config) { c.MaxVelocity = v } }
func WithSleep(enabled bool) Attr    { return func(c *Config) { c.SleepEnabled = enabled } }

// NewConfig builds a Config starting from the documented defaults and
// applying each Attr in order.
func NewConfig(attrs ...Attr) *Config {
	cfg := configDefaults
	for _, attr := range attrs {
		attr(&cfg)
	}
	return &cfg
}
