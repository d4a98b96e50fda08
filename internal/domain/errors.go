package domain

import "errors"

// Validation failures surfaced by the forecast pipeline. None of them is
// transient; callers report them instead of substituting a value.
var (
	ErrInvalidTicker             = errors.New("invalid ticker")
	ErrUnknownModelTag           = errors.New("unknown model tag")
	ErrAmbiguousLocalTime        = errors.New("ambiguous local time")
	ErrInsufficientData          = errors.New("insufficient data")
	ErrEmptyRange                = errors.New("empty range")
	ErrMalformedOptimizationData = errors.New("malformed optimization data")
	ErrMalformedTable            = errors.New("malformed table")
)
