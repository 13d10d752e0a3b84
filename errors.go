package avd

import "errors"

var (
	// ErrUnknownSegmentType is returned when a mission profile entry is not one of the six segment kinds.
	ErrUnknownSegmentType = errors.New("avd: unknown mission segment type")
	// ErrNonPositiveDenominator is returned when 1 - Wf/W0 - We/W0 collapses to zero or below.
	ErrNonPositiveDenominator = errors.New("avd: sizing denominator is not positive, mission cannot be closed")
	// ErrNonConvergence is returned when the last two gross weights differ by more than the tolerance.
	ErrNonConvergence = errors.New("avd: gross weight did not converge")
	// ErrInfeasibleDesignSpace is returned when no wing loading satisfies every constraint.
	ErrInfeasibleDesignSpace = errors.New("avd: infeasible design space")
	// ErrInvalidSweep is returned for wing loading sweeps which are empty, non positive or not strictly increasing.
	ErrInvalidSweep = errors.New("avd: wing loading sweep must be positive and strictly increasing")
	// ErrInvalidInputs is returned when session inputs fail validation.
	ErrInvalidInputs = errors.New("avd: invalid inputs")
	// ErrUnimplemented is returned by lookups which only cover part of their domain.
	ErrUnimplemented = errors.New("avd: not implemented")
)
