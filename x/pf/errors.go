package pf

import "errors"

// ErrInvalidWeights is returned when weighted-distribution construction
// rejects its inputs: a negative or NaN weight in a non-degenerate
// context, or a weight vector that sums to zero without every error
// being exactly zero (the well-posedness condition the caller's
// weight_from_error function is responsible for).
var ErrInvalidWeights = errors.New("pf: invalid particle weights")

// ErrEmptyBelief is returned if resampling would produce zero
// particles. Construction-time validation of max particle count keeps
// this from ever firing in practice.
var ErrEmptyBelief = errors.New("pf: resampling produced an empty belief")
