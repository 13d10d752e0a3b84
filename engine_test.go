package avd

import (
	"errors"
	"math"
	"testing"

	"github.com/gonum/floats"
)

func TestTurbofanLapse(t *testing.T) {
	fan := NewTurbofan()
	if fan.Lapse(0, 1) != 1 {
		t.Fatal("no lapse at sea level")
	}
	if fan.Lapse(10000, 0.337) != math.Pow(0.337, 0.7) {
		t.Fatal("invalid troposphere lapse")
	}
	if fan.Lapse(11000, 0.297) != math.Pow(0.297, 0.7) {
		t.Fatal("tropopause belongs to the troposphere")
	}
	if !floats.EqualWithinAbs(fan.Lapse(12192, 0.247), 0.355433, 1e-9) {
		t.Fatal("invalid stratosphere lapse")
	}
	if (GenericLapse{1}).Lapse(5000, 0.6) != 0.6 {
		t.Fatal("invalid generic lapse")
	}
}

func TestEngineFromString(t *testing.T) {
	for _, name := range []string{"", "turbofan", "turbojet"} {
		if _, err := EngineFromString(name); err != nil {
			t.Fatalf("%q: %s", name, err)
		}
	}
	if _, err := EngineFromString("ramjet"); !errors.Is(err, ErrUnimplemented) {
		t.Fatalf("expected ErrUnimplemented, got %v", err)
	}
}

func TestOEIFactor(t *testing.T) {
	if OEIFactor(2) != 2 || OEIFactor(4) != 4.0/3 {
		t.Fatal("invalid one engine inoperative factor")
	}
	assertPanic(t, func() {
		OEIFactor(1)
	})
}
