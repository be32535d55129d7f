package phys2d

import "log/slog"

// logger receives the engine's degenerate-configuration warnings. The
// happy path of step never logs; a warning fires each time a solver meets
// a constraint with zero effective mass, which for particle rods and
// angles means once per XPBD iteration. Override with SetLogger for callers that want
// to route engine diagnostics into their own handler.
var logger = slog.Default()

// SetLogger replaces the logger used for degenerate-configuration
// warnings across the solvers.
func SetLogger(l *slog.Logger) {
	if l != nil {
		logger = l
	}
}
