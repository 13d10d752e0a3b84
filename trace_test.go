package avd

import (
	"errors"
	"testing"

	"github.com/gonum/floats"
)

func TestTraceSegmentBreguet(t *testing.T) {
	state := regionalJet(t)
	cruise := Cruise{Speed: 220, Range: 2.5e6, Altitude: 12192}
	points, err := TraceSegment(cruise, 0, 3842.88, state.SFC, state.LD, 50)
	if err != nil {
		t.Fatal(err)
	}
	if len(points) != 51 {
		t.Fatalf("expected 51 points, got %d", len(points))
	}
	for _, p := range points {
		exp := 3842.88 * BreguetRange(p.Time*cruise.Speed, cruise.Speed, state.SFC.Cruise, state.LD.Cruise)
		if !floats.EqualWithinRel(p.Weight, exp, 1e-8) {
			t.Fatalf("t=%f: W=%f expected %f", p.Time, p.Weight, exp)
		}
		if p.Kind != KindCruise {
			t.Fatal("invalid kind")
		}
	}
	if last := points[50]; !floats.EqualWithinAbs(last.Time, 2.5e6/220, 1e-6) {
		t.Fatalf("trace ends at %f s", last.Time)
	}

	loiter := Loiter{Endurance: Minutes(45), Altitude: 1524, Speed: 77.2}
	points, err = TraceSegment(loiter, 100, 1000, state.SFC, state.LD, 10)
	if err != nil {
		t.Fatal(err)
	}
	if points[0].Time != 100 || !floats.EqualWithinAbs(points[10].Time, 2800, 1e-9) {
		t.Fatal("loiter trace must be offset by its start time")
	}
	if !floats.EqualWithinRel(points[10].Weight, 1000*BreguetEndurance(loiter.Endurance, state.SFC.Loiter, state.LD.Loiter), 1e-8) {
		t.Fatalf("loiter end weight %f", points[10].Weight)
	}
}

func TestTraceProfile(t *testing.T) {
	state := regionalJet(t)
	profile := DefaultInputs().Profile
	points, err := TraceProfile(profile, 3842.88, state.SFC, state.LD, 100)
	if err != nil {
		t.Fatal(err)
	}
	wf, _, _ := WfW0(profile, state.SFC, state.LD)
	// WfW0 includes the 1 % reserve margin.
	burnt := 1 - points[len(points)-1].Weight/3842.88
	if !floats.EqualWithinRel(burnt*1.01, wf, 1e-8) {
		t.Fatalf("burnt fraction %f, WfW0 %f", burnt, wf)
	}
	if len(points) != 1+2+100+2 {
		t.Fatalf("unexpected number of points %d", len(points))
	}
	for i := 1; i < len(points); i++ {
		if points[i].Weight > points[i-1].Weight || points[i].Time < points[i-1].Time {
			t.Fatalf("point %d goes back in time or gains weight", i)
		}
	}
}

func TestTraceErrors(t *testing.T) {
	state := regionalJet(t)
	if _, err := TraceSegment(Takeoff{}, 0, 1000, state.SFC, state.LD, 10); !errors.Is(err, ErrInvalidInputs) {
		t.Fatalf("expected ErrInvalidInputs, got %v", err)
	}
	if _, err := TraceSegment(Cruise{Speed: 200, Range: 1e6}, 0, 1000, state.SFC, state.LD, 0); !errors.Is(err, ErrInvalidInputs) {
		t.Fatalf("expected ErrInvalidInputs, got %v", err)
	}
	if _, err := TraceSegment(Cruise{Range: 1e6}, 0, 1000, state.SFC, state.LD, 10); !errors.Is(err, ErrInvalidInputs) {
		t.Fatalf("expected ErrInvalidInputs, got %v", err)
	}
	if _, err := TraceProfile(Profile{Takeoff{}, nil}, 1000, state.SFC, state.LD, 10); !errors.Is(err, ErrUnknownSegmentType) {
		t.Fatalf("expected ErrUnknownSegmentType, got %v", err)
	}
}
