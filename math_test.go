package avd

import (
	"math"
	"testing"

	"github.com/gonum/floats"
)

func TestUnits(t *testing.T) {
	if !floats.EqualWithinAbs(Knots(100), 51.4444, 1e-4) {
		t.Fatalf("100 kts = %f m/s", Knots(100))
	}
	if Feet(40000) != 12192 {
		t.Fatalf("40000 ft = %f m", Feet(40000))
	}
	if Minutes(45) != 2700 {
		t.Fatal("invalid minutes")
	}
	if !floats.EqualWithinAbs(PerHour(0.8)*3600, 0.8, 1e-12) {
		t.Fatal("invalid SFC conversion")
	}
}

func TestLerp(t *testing.T) {
	a, b := 2355.150515051505, 2429.4117647058824
	if lerp(a, b, 0) != a || lerp(a, b, 1) != b {
		t.Fatal("blend end points are not exact")
	}
	if !floats.EqualWithinAbs(lerp(a, b, 0.5), (a+b)/2, 1e-9) {
		t.Fatal("invalid mid point")
	}
}

func TestFinite(t *testing.T) {
	for _, v := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		if finite(v) {
			t.Fatalf("%f is not finite", v)
		}
	}
	if !finite(0) || !finite(-1e300) {
		t.Fatal("finite values rejected")
	}
}
