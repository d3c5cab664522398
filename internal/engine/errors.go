package engine

import "errors"

// Input validation errors. Callers match them with errors.Is.
var (
	ErrUnsupportedStatKind = errors.New("unsupported stat kind")
	ErrNonPositiveStdDev   = errors.New("standard deviation must be positive")
	ErrNegativeRate        = errors.New("poisson rate cannot be negative")
	ErrRateOutOfRange      = errors.New("poisson rate is too large")
	ErrInvalidOdds         = errors.New("invalid American odds: cannot be 0")
	ErrDivisionByZero      = errors.New("odds imply zero net payout")
	ErrInsufficientData    = errors.New("at least two values are required")
	ErrNonFiniteInput      = errors.New("input must be a finite number")
)
