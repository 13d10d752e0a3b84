package avd

import (
	"testing"

	"github.com/gonum/floats"
)

func assertPanic(t *testing.T, f func()) {
	defer func() {
		if r := recover(); r == nil {
			t.Errorf("code did not panic")
		}
	}()
	f()
}

func vectorsEqual(a, b []float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := len(a) - 1; i >= 0; i-- {
		if !floats.EqualWithinRel(a[i], b[i], 1e-3) {
			return false
		}
	}
	return true
}

// regionalJet returns the state of the default inputs with the default baseline.
func regionalJet(t *testing.T) *AircraftState {
	in := DefaultInputs()
	conf := DefaultConfig()
	state, err := NewAircraftState(conf.Baseline, conf.Headcount.FixedWeight(in.Passengers, in.Crew), in.AspectRatio, in.Oswald)
	if err != nil {
		t.Fatal(err)
	}
	return state
}
