package avd

import (
	"errors"
	"testing"

	"github.com/gonum/floats"
)

func TestSelectDesignPoint(t *testing.T) {
	env := buildEnvelope(t, 1400)
	sel, err := SelectDesignPoint(env, 0.5)
	if err != nil {
		t.Fatal(err)
	}
	if sel.MinIndex != 7849 || !floats.EqualWithinAbs(sel.Minimum.WS, 2355.15, 0.01) || !floats.EqualWithinAbs(sel.Minimum.TW, 0.252997, 1e-6) {
		t.Fatalf("minimum feasible point %s at %d", sel.Minimum, sel.MinIndex)
	}
	// The minimum feasible point is the first sample where takeoff dominates.
	prev := sel.MinIndex - 1
	if env.Takeoff.TW[prev] > env.others()[prev] {
		t.Fatal("an earlier sample is feasible")
	}
	if sel.Limiter != "landing (Raymer)" || !floats.EqualWithinAbs(sel.LandingBound.WS, 2429.41, 0.01) {
		t.Fatalf("landing bound %s (%s)", sel.LandingBound, sel.Limiter)
	}
	if !floats.EqualWithinAbs(sel.LandingBound.TW, 0.260975, 1e-6) {
		t.Fatalf("landing bound T/W %f", sel.LandingBound.TW)
	}
	if !floats.EqualWithinAbs(sel.Point.WS, 2392.28, 0.01) || !floats.EqualWithinAbs(sel.Point.TW, 0.256986, 1e-6) {
		t.Fatalf("design point %s", sel.Point)
	}
}

func TestSelectDesignPointBlendEnds(t *testing.T) {
	env := buildEnvelope(t, 1400)
	low, _ := SelectDesignPoint(env, 0)
	high, _ := SelectDesignPoint(env, 1)
	if low.Point != low.Minimum {
		t.Fatal("blend 0 must return the minimum feasible point")
	}
	if high.Point != high.LandingBound {
		t.Fatal("blend 1 must return the landing bound point")
	}
	for _, blend := range []float64{-0.1, 1.1} {
		if _, err := SelectDesignPoint(env, blend); !errors.Is(err, ErrInvalidInputs) {
			t.Fatalf("blend %f: expected ErrInvalidInputs, got %v", blend, err)
		}
	}
}

func TestSelectDesignPointInfeasible(t *testing.T) {
	// The 1200 m field is feasible from 2019 Pa but the landing limits wing loading to 1935 Pa.
	env := buildEnvelope(t, 1200)
	if idx := env.MinimumFeasible(); idx < 0 || !floats.EqualWithinAbs(env.Sweep[idx], 2018.93, 0.01) {
		t.Fatalf("minimum feasible index %d", idx)
	}
	if _, err := SelectDesignPoint(env, 0.5); !errors.Is(err, ErrInfeasibleDesignSpace) {
		t.Fatalf("expected ErrInfeasibleDesignSpace, got %v", err)
	}
	// A sweep which stops before takeoff dominates has no feasible point.
	short, _ := NewSweep(1, 1500, 500)
	env, err := BuildEnvelopeOn(short, DefaultConfig(), regionalJet(t).Aero(), field(1400))
	if err != nil {
		t.Fatal(err)
	}
	if env.MinimumFeasible() != -1 {
		t.Fatal("found a feasible point")
	}
	if _, err := SelectDesignPoint(env, 0.5); !errors.Is(err, ErrInfeasibleDesignSpace) {
		t.Fatalf("expected ErrInfeasibleDesignSpace, got %v", err)
	}
}

func TestSelectDesignPointNonPositiveBound(t *testing.T) {
	// Raymer's landing distance does not cover the obstacle allowance.
	env := buildEnvelope(t, 300)
	if _, err := SelectDesignPoint(env, 0); !errors.Is(err, ErrInfeasibleDesignSpace) {
		t.Fatalf("expected ErrInfeasibleDesignSpace, got %v", err)
	}
}
