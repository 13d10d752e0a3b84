package avd

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/gonum/floats"
	"github.com/gonum/stat"
)

func TestTradeStudyDraw(t *testing.T) {
	base := DefaultInputs()
	ts := NewTradeStudy(2000, 0.5, 0.02, 0.1, 42)
	inputs, err := ts.Draw(base)
	if err != nil {
		t.Fatal(err)
	}
	if len(inputs) != 2000 {
		t.Fatalf("drew %d inputs", len(inputs))
	}
	ar := make([]float64, len(inputs))
	for i, in := range inputs {
		ar[i] = in.AspectRatio
		if in.FieldLength != base.FieldLength || len(in.Profile) != len(base.Profile) {
			t.Fatal("only AR, e and Cl max are drawn")
		}
	}
	μ, σ := stat.MeanStdDev(ar, nil)
	if !floats.EqualWithinAbs(μ, 7.5, 0.05) || !floats.EqualWithinAbs(σ, 0.5, 0.05) {
		t.Fatalf("AR ~ N(%f, %f)", μ, σ)
	}
	again, _ := ts.Draw(base)
	if again[10].AspectRatio != inputs[10].AspectRatio {
		t.Fatal("draws with the same seed differ")
	}
}

func TestTradeStudyDrawErrors(t *testing.T) {
	for _, ts := range []TradeStudy{NewTradeStudy(0, 0.5, 0.02, 0.1, 1), NewTradeStudy(10, 0, 0.02, 0.1, 1)} {
		if _, err := ts.Draw(DefaultInputs()); !errors.Is(err, ErrInvalidInputs) {
			t.Fatalf("expected ErrInvalidInputs, got %v", err)
		}
	}
}

func TestRunTrade(t *testing.T) {
	ts := NewTradeStudy(24, 0.5, 0.02, 0.1, 7)
	ts.Workers = 4
	outcomes, err := RunTrade(context.Background(), DefaultConfig(), DefaultInputs(), ts)
	if err != nil {
		t.Fatal(err)
	}
	if len(outcomes) != 24 {
		t.Fatalf("got %d outcomes", len(outcomes))
	}
	failed := 0
	for _, o := range outcomes {
		if o.Err == nil {
			if o.Result.Inputs.AspectRatio != o.Inputs.AspectRatio || o.Result.Envelope == nil {
				t.Fatal("outcome result does not match its inputs")
			}
			continue
		}
		failed++
		if !errors.Is(o.Err, ErrInfeasibleDesignSpace) && !errors.Is(o.Err, ErrInvalidInputs) && !errors.Is(o.Err, ErrNonConvergence) {
			t.Fatalf("unexpected session error %s", o.Err)
		}
	}
	summary := Summarize(outcomes)
	if summary.Feasible+failed != 24 {
		t.Fatalf("%d feasible and %d failed", summary.Feasible, failed)
	}
	if summary.Feasible > 0 && !floats.EqualWithinRel(summary.W0Mean, 3842.88, 0.05) {
		t.Fatalf("mean W0 %f", summary.W0Mean)
	}
}

func TestRunTradeCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := RunTrade(ctx, DefaultConfig(), DefaultInputs(), NewTradeStudy(8, 0.5, 0.02, 0.1, 7)); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize([]TradeOutcome{{Err: ErrInfeasibleDesignSpace}})
	if s.Feasible != 0 || s.W0Mean != 0 {
		t.Fatalf("invalid summary %s", s)
	}
}

func TestSummarizeSingle(t *testing.T) {
	var o TradeOutcome
	o.Result.Sizing.W0 = 3842.9
	o.Result.Design.Point = DesignPoint{2392.3, 0.257}
	s := Summarize([]TradeOutcome{o, {Err: ErrInfeasibleDesignSpace}})
	if s.Feasible != 1 || s.W0Mean != 3842.9 || s.W0Std != 0 || s.WSMean != 2392.3 {
		t.Fatalf("invalid summary %s", s)
	}
	if strings.Contains(s.String(), "NaN") {
		t.Fatalf("summary has NaN: %s", s)
	}
}
