package avd

import (
	"errors"
	"testing"
)

func TestClimbRequirements(t *testing.T) {
	segs, err := ClimbRequirements(FAR25, 2, 0.3)
	if err != nil {
		t.Fatal(err)
	}
	if len(segs) != 5 {
		t.Fatalf("expected five climb segments, got %d", len(segs))
	}
	exp := []float64{0.1, 2.4, 1.2, 2.1, 3.2}
	for i, seg := range segs {
		if seg.Gradient != exp[i] {
			t.Fatalf("%s: gradient %f", seg.Name, seg.Gradient)
		}
		if seg.OEI != (i < 4) {
			t.Fatalf("%s: OEI=%v", seg.Name, seg.OEI)
		}
	}
	if segs[3].Alpha != 0.3 || segs[4].Alpha != 0.3 || segs[0].Alpha != 1 {
		t.Fatal("invalid weight fractions")
	}
	if segs[3].Flaps != LandingFlaps || segs[1].Flaps != TakeoffFlaps {
		t.Fatal("invalid flap settings")
	}
	four, _ := ClimbRequirements(FAR25, 4, 0.3)
	if four[1].Gradient != 3.0 {
		t.Fatal("invalid four engine second segment gradient")
	}
}

func TestClimbRequirementsUnimplemented(t *testing.T) {
	if _, err := ClimbRequirements(FAR23, 2, 0.3); !errors.Is(err, ErrUnimplemented) {
		t.Fatalf("expected ErrUnimplemented, got %v", err)
	}
	if _, err := ClimbRequirements(FAR25, 5, 0.3); !errors.Is(err, ErrUnimplemented) {
		t.Fatalf("expected ErrUnimplemented, got %v", err)
	}
}

func TestRegulationFromString(t *testing.T) {
	for name, exp := range map[string]Regulation{"FAR25": FAR25, "cs 25": FAR25, "far23": FAR23} {
		if reg, err := RegulationFromString(name); err != nil || reg != exp {
			t.Fatalf("%q: %s %v", name, reg, err)
		}
	}
	if _, err := RegulationFromString("MIL"); !errors.Is(err, ErrUnimplemented) {
		t.Fatal("unknown regulation accepted")
	}
	assertPanic(t, func() {
		_ = Regulation(0).String()
	})
}
