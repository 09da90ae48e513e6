package governance

import "errors"

// ErrHalted is returned by every public operation once the system has
// latched into FAILED. There is no recovery path within a run.
var ErrHalted = errors.New("governance: system halted")

// ErrTimeRegression is the cause recorded the moment the system
// transitions into FAILED because an incoming timestamp regressed
// behind system_time.
var ErrTimeRegression = errors.New("governance: time regression")

// ErrInvariantBreach is the cause recorded when a structural invariant
// (band non-overlap, strength/confidence bounds, symbol ownership) fails
// a post-update check.
var ErrInvariantBreach = errors.New("governance: invariant breach")
