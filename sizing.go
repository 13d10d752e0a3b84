package avd

import (
	"fmt"
	"math"

	kitlog "github.com/go-kit/kit/log"
	"github.com/go-kit/kit/log/level"
)

// Sizer converges the gross takeoff weight of an aircraft by fixed point iteration.
type Sizer struct {
	Empty     EmptyWeightModel
	Tolerance float64 // relative tolerance on the last two iterates
	logger    kitlog.Logger
}

// NewSizer returns a Sizer using the empty weight regression and tolerance of the configuration.
func NewSizer(conf Config) Sizer {
	logger := conf.Logger
	if logger == nil {
		logger = kitlog.NewNopLogger()
	}
	return Sizer{conf.EmptyWeight, conf.Tolerance, logger}
}

// SizingResult is the outcome of a converged sizing loop.
type SizingResult struct {
	W0        float64           // converged gross weight (kg)
	History   []float64         // W0 at each iteration, including the seed
	WfW0      float64           // fuel weight fraction
	WeW0      float64           // empty weight fraction at the converged W0
	Breakdown []SegmentFraction // per segment mass ratios, in profile order
}

// FuelWeight returns the mission fuel mass (kg).
func (r SizingResult) FuelWeight() float64 {
	return r.W0 * r.WfW0
}

// EmptyWeight returns the operating empty mass (kg).
func (r SizingResult) EmptyWeight() float64 {
	return r.W0 * r.WeW0
}

// Iterations returns the number of iterations performed.
func (r SizingResult) Iterations() int {
	return len(r.History) - 1
}

// Iterate runs n iterations of W0 = Wfixed / (1 - Wf/W0 - We/W0) starting from state.W0.
// The state's gross weight is updated at every iteration; nothing else is modified.
func (z Sizer) Iterate(state *AircraftState, profile Profile, n int) (SizingResult, error) {
	if !(state.W0 > 0) || math.IsInf(state.W0, 0) {
		return SizingResult{}, fmt.Errorf("%w: initial gross weight %f", ErrInvalidInputs, state.W0)
	}
	if n < 1 {
		return SizingResult{}, fmt.Errorf("%w: at least one iteration is required", ErrNonConvergence)
	}
	// The fuel fraction does not depend on W0, so it is computed once.
	wfw0, breakdown, err := WfW0(profile, state.SFC, state.LD)
	if err != nil {
		return SizingResult{}, err
	}
	history := make([]float64, 1, n+1)
	history[0] = state.W0
	for i := 1; i <= n; i++ {
		denom := 1 - wfw0 - z.Empty.WeW0(state.W0)
		if !(denom > 0) {
			level.Error(z.logger).Log("subsys", "sizing", "iter", i, "WfW0", wfw0, "WeW0", z.Empty.WeW0(state.W0))
			return SizingResult{}, fmt.Errorf("%w: iteration %d: 1 - %.4f - %.4f = %g", ErrNonPositiveDenominator, i, wfw0, z.Empty.WeW0(state.W0), denom)
		}
		W0 := state.FixedWeight / denom
		if !(W0 > 0) || math.IsInf(W0, 0) {
			return SizingResult{}, fmt.Errorf("%w: iteration %d: W0=%g", ErrNonPositiveDenominator, i, W0)
		}
		state.W0 = W0
		history = append(history, W0)
		level.Debug(z.logger).Log("subsys", "sizing", "iter", i, "W0(kg)", W0)
	}
	last, prev := history[n], history[n-1]
	if Δ := math.Abs(last-prev) / last; Δ >= z.Tolerance {
		level.Warn(z.logger).Log("subsys", "sizing", "iterations", n, "Δ", Δ, "tolerance", z.Tolerance)
		return SizingResult{}, fmt.Errorf("%w: |ΔW0|/W0=%.3e after %d iterations (tolerance %.1e)", ErrNonConvergence, Δ, n, z.Tolerance)
	}
	level.Info(z.logger).Log("subsys", "sizing", "status", "converged", "iterations", n, "W0(kg)", state.W0, "WfW0", wfw0)
	return SizingResult{state.W0, history, wfw0, z.Empty.WeW0(state.W0), breakdown}, nil
}
