package avd

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/go-kit/kit/log/level"
	"github.com/gonum/matrix/mat64"
	"github.com/gonum/stat"
	"github.com/gonum/stat/distmv"
	"golang.org/x/sync/errgroup"
)

// TradeStudy defines a Monte Carlo trade study around a base set of inputs.
// AR, e and Cl_max are drawn from independent normal distributions centered on the base inputs.
type TradeStudy struct {
	Samples int
	σAR     float64
	σe      float64
	σClMax  float64
	Seed    int64
	Workers int // maximum number of concurrent sessions, zero for no limit
}

// NewTradeStudy returns a trade study with the provided standard deviations of AR, e and Cl_max.
func NewTradeStudy(samples int, σAR, σe, σClMax float64, seed int64) TradeStudy {
	return TradeStudy{Samples: samples, σAR: σAR, σe: σe, σClMax: σClMax, Seed: seed}
}

// TradeOutcome is one session of a trade study: either Result or Err is set.
type TradeOutcome struct {
	Inputs Inputs
	Result Result
	Err    error
}

// Draw returns the inputs of every session of the study.
func (ts TradeStudy) Draw(base Inputs) ([]Inputs, error) {
	if ts.Samples < 1 {
		return nil, fmt.Errorf("%w: trade study requires at least one sample", ErrInvalidInputs)
	}
	if !(ts.σAR > 0 && ts.σe > 0 && ts.σClMax > 0) {
		return nil, fmt.Errorf("%w: trade study standard deviations must be positive", ErrInvalidInputs)
	}
	μ := []float64{base.AspectRatio, base.Oswald, base.ClMax}
	Σ := mat64.NewSymDense(3, []float64{
		ts.σAR * ts.σAR, 0, 0,
		0, ts.σe * ts.σe, 0,
		0, 0, ts.σClMax * ts.σClMax,
	})
	dist, ok := distmv.NewNormal(μ, Σ, rand.New(rand.NewSource(ts.Seed)))
	if !ok {
		return nil, fmt.Errorf("%w: covariance is not positive definite", ErrInvalidInputs)
	}
	inputs := make([]Inputs, ts.Samples)
	x := make([]float64, 3)
	for i := range inputs {
		dist.Rand(x)
		in := base
		in.AspectRatio, in.Oswald, in.ClMax = x[0], x[1], x[2]
		inputs[i] = in
	}
	return inputs, nil
}

// RunTrade runs every session of the study concurrently. Session failures are reported in
// their outcome; the returned error is only set if the study could not run.
func RunTrade(ctx context.Context, conf Config, base Inputs, ts TradeStudy) ([]TradeOutcome, error) {
	inputs, err := ts.Draw(base)
	if err != nil {
		return nil, err
	}
	outcomes := make([]TradeOutcome, len(inputs))
	g, gCtx := errgroup.WithContext(ctx)
	if ts.Workers > 0 {
		g.SetLimit(ts.Workers)
	}
	for i, in := range inputs {
		i, in := i, in
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			res, err := Run(conf, in)
			outcomes[i] = TradeOutcome{in, res, err}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if conf.Logger != nil {
		summary := Summarize(outcomes)
		level.Info(conf.Logger).Log("subsys", "trade", "samples", len(outcomes), "feasible", summary.Feasible, "W0mean(kg)", summary.W0Mean)
	}
	return outcomes, nil
}

// TradeSummary aggregates the successful sessions of a trade study.
type TradeSummary struct {
	Feasible       int
	W0Mean, W0Std  float64 // kg
	WSMean, TWMean float64
}

func (s TradeSummary) String() string {
	return fmt.Sprintf("%d feasible: W0=%.1f±%.1fkg W/S=%.1fPa T/W=%.4f", s.Feasible, s.W0Mean, s.W0Std, s.WSMean, s.TWMean)
}

// Summarize returns the statistics of the successful outcomes.
func Summarize(outcomes []TradeOutcome) TradeSummary {
	var W0, ws, tw []float64
	for _, o := range outcomes {
		if o.Err != nil {
			continue
		}
		W0 = append(W0, o.Result.Sizing.W0)
		ws = append(ws, o.Result.Design.Point.WS)
		tw = append(tw, o.Result.Design.Point.TW)
	}
	s := TradeSummary{Feasible: len(W0)}
	if s.Feasible == 0 {
		return s
	}
	if s.Feasible == 1 {
		s.W0Mean = W0[0]
	} else {
		s.W0Mean, s.W0Std = stat.MeanStdDev(W0, nil)
	}
	s.WSMean = stat.Mean(ws, nil)
	s.TWMean = stat.Mean(tw, nil)
	return s
}
