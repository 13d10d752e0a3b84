package avd

import (
	"fmt"
	"strings"
)

// Regulation is the airworthiness code the climb and field requirements are taken from.
type Regulation uint8

const (
	// FAR25 is the transport category code.
	FAR25 Regulation = iota + 1
	// FAR23 is the normal category code.
	FAR23
)

func (r Regulation) String() string {
	switch r {
	case FAR25:
		return "FAR25"
	case FAR23:
		return "FAR23"
	default:
		panic("unknown regulation")
	}
}

// RegulationFromString returns the regulation from its name.
func RegulationFromString(name string) (Regulation, error) {
	switch strings.ToUpper(strings.ReplaceAll(name, " ", "")) {
	case "FAR25", "CS25":
		return FAR25, nil
	case "FAR23", "CS23":
		return FAR23, nil
	default:
		return 0, fmt.Errorf("%w: regulation %q", ErrUnimplemented, name)
	}
}

// FlapSetting selects the lift coefficient a climb segment is flown at.
type FlapSetting uint8

const (
	// TakeoffFlaps flies at the takeoff maximum lift coefficient.
	TakeoffFlaps FlapSetting = iota + 1
	// LandingFlaps flies at the landing maximum lift coefficient.
	LandingFlaps
)

// ClimbSegment is a regulatory climb gradient requirement.
type ClimbSegment struct {
	Name         string
	Gradient     float64 // %
	SpeedFactor  float64 // V / V_stall
	ΔCd0         float64 // zero lift drag increment from flaps and gear
	OswaldFactor float64 // multiplier on the clean Oswald efficiency
	Alpha        float64 // weight fraction W/W0 at this point of the mission
	Flaps        FlapSetting
	OEI          bool // one engine inoperative
}

// FAR 25.121 gradients (%) for twins, three and four engine aircraft.
var far25Gradients = map[int][5]float64{
	2: {0.1, 2.4, 1.2, 2.1, 3.2}, // 1st segment is "positive" for twins
	3: {0.3, 2.7, 1.5, 2.4, 3.2},
	4: {0.5, 3.0, 1.7, 2.7, 3.2},
}

// ClimbRequirements returns the climb segments required by the regulation for the engine count.
// The landing weight fraction applies to the approach and landing climbs.
func ClimbRequirements(reg Regulation, engines int, landingAlpha float64) ([]ClimbSegment, error) {
	if reg != FAR25 {
		return nil, fmt.Errorf("%w: climb requirements for %s", ErrUnimplemented, reg)
	}
	g, found := far25Gradients[engines]
	if !found {
		return nil, fmt.Errorf("%w: %s climb gradients for %d engines", ErrUnimplemented, reg, engines)
	}
	return []ClimbSegment{
		{"climb 1st segment OEI", g[0], 1.1, 0.04, 0.95, 1, TakeoffFlaps, true},
		{"climb 2nd segment OEI", g[1], 1.1, 0.02, 0.95, 1, TakeoffFlaps, true},
		{"climb 3rd segment OEI", g[2], 1.25, 0, 1, 1, TakeoffFlaps, true},
		{"approach climb OEI", g[3], 1.5, 0.05, 0.9, landingAlpha, LandingFlaps, true},
		{"landing climb AEO", g[4], 1.3, 0.07, 0.9, landingAlpha, LandingFlaps, false},
	}, nil
}
