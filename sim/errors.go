package sim

import (
	"errors"

	"github.com/inference-sim/bandit-sim/sim/trace"
)

// Error taxonomy. Callers match with errors.Is; every returned error wraps one of these.
var (
	// ErrConfiguration reports an experiment that cannot start: zero arms,
	// non-positive trial count, arm-count mismatch, unknown algorithm, bad parameters.
	ErrConfiguration = errors.New("invalid experiment configuration")

	// ErrSampling reports an unusable random draw. Fatal to the run and never
	// retried: redrawing would change the experiment's statistics.
	ErrSampling = errors.New("sampling failure")

	// ErrNoData reports an average over zero recorded trials.
	ErrNoData = trace.ErrNoData
)
