// Package access performs the capability-access check that precedes every
// privileged hardware call.
package access

import "codeberg.org/mutker/hwcaps/internal/errors"

// Permission is the capability-access permission callers must hold.
const Permission = "hwcaps.permission.HARDWARE_ABSTRACTION_ACCESS"

// Checker fails when the caller lacks Permission.
type Checker interface {
	Check() error
}

// CheckerFunc adapts a function to Checker.
type CheckerFunc func() error

func (f CheckerFunc) Check() error {
	return f()
}

// AllowAll grants every caller.
var AllowAll Checker = CheckerFunc(func() error { return nil })

// Granted checks Permission against the set of permissions held by the
// calling process.
type Granted map[string]bool

func (g Granted) Check() error {
	if g[Permission] {
		return nil
	}
	return errors.New().WithData(errors.ErrPermissionDenied, Permission)
}

// Enforce runs c and wraps a failure as permission_denied. A nil Checker
// grants access.
func Enforce(c Checker) error {
	if c == nil {
		return nil
	}
	if err := c.Check(); err != nil {
		if errors.HasCode(err, errors.ErrPermissionDenied) {
			return err
		}
		return errors.New().Wrap(errors.ErrPermissionDenied, err)
	}
	return nil
}
