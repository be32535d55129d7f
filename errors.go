package phys2d

import (
	"errors"
	"fmt"
)

// Sentinel error kinds for the world-building API. The step path never
// returns an error; only construction-time validation does.
var (
	ErrInvalidIndex  = errors.New("invalid index")
	ErrInvalidMass   = errors.New("invalid mass")
	ErrInvalidValue  = errors.New("invalid value")
)

func invalidIndexf(format string, args ...any) error {
	return fmt.Errorf("phys2d: %w: %s", ErrInvalidIndex, fmt.Sprintf(format, args...))
}

func invalidMassf(format string, args ...any) error {
	return fmt.Errorf("phys2d: %w: %s", ErrInvalidMass, fmt.Sprintf(format, args...))
}

func invalidValuef(format string, args ...any) error {
	return fmt.Errorf("phys2d: %w: %s", ErrInvalidValue, fmt.Sprintf(format, args...))
}
