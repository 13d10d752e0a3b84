package avd

import (
	"fmt"
	"math"
	"strings"
)

// AircraftClass selects the empirical correlations of the baseline configuration.
type AircraftClass uint8

const (
	// CivilJet is a civil jet transport.
	CivilJet AircraftClass = iota + 1
	// MilitaryJet is a military jet.
	MilitaryJet
	// RetractableProp is a propeller aircraft with retractable gear.
	RetractableProp
	// FixedGearProp is a propeller aircraft with fixed gear.
	FixedGearProp
	// HighAspectRatio is a high aspect ratio aircraft.
	HighAspectRatio
	// Sailplane is a sailplane.
	Sailplane
)

func (c AircraftClass) String() string {
	switch c {
	case CivilJet:
		return "civil-jet"
	case MilitaryJet:
		return "military-jet"
	case RetractableProp:
		return "retractable-prop"
	case FixedGearProp:
		return "fixed-gear-prop"
	case HighAspectRatio:
		return "high-aspect-ratio"
	case Sailplane:
		return "sailplane"
	default:
		return fmt.Sprintf("class(%d)", uint8(c))
	}
}

// AircraftClassFromString returns the aircraft class from its name.
func AircraftClassFromString(name string) (AircraftClass, error) {
	for c := CivilJet; c <= Sailplane; c++ {
		if strings.EqualFold(c.String(), name) {
			return c, nil
		}
	}
	return 0, fmt.Errorf("%w: aircraft class %q", ErrUnimplemented, name)
}

// KLD returns the K_LD factor of the wetted aspect ratio correlation L/Dmax = K_LD sqrt(A_wetted).
func (c AircraftClass) KLD() (float64, error) {
	switch c {
	case CivilJet:
		return 15.5, nil
	case MilitaryJet:
		return 14, nil
	case RetractableProp:
		return 11, nil
	case FixedGearProp:
		return 9, nil
	case HighAspectRatio:
		return 13, nil
	case Sailplane:
		return 15, nil
	default:
		return 0, fmt.Errorf("%w: K_LD for %s", ErrUnimplemented, c)
	}
}

// Baseline holds the empirical approximations used before any higher fidelity analysis.
type Baseline struct {
	Class           AircraftClass
	W0              float64      // initial gross weight guess (kg)
	WettedAreaRatio float64      // S_wet / S_ref
	CruiseLDFactor  float64      // L/D cruise as a fraction of L/D max
	SFC             CruiseLoiter // specific fuel consumption (1/s)
}

// AircraftState is the working state of one sizing session.
// Only W0 changes once the state is created.
type AircraftState struct {
	W0              float64 // current gross weight estimate (kg)
	FixedWeight     float64 // payload, crew and baggage (kg)
	AspectRatio     float64
	Oswald          float64
	WettedAreaRatio float64
	LDMax           float64
	LD              CruiseLoiter
	SFC             CruiseLoiter // 1/s
	Cd0             float64      // zero lift drag coefficient
}

// NewAircraftState initializes the state from the baseline approximations.
func NewAircraftState(b Baseline, fixedWeight, aspectRatio, oswald float64) (*AircraftState, error) {
	kLD, err := b.Class.KLD()
	if err != nil {
		return nil, err
	}
	if b.WettedAreaRatio <= 0 {
		return nil, fmt.Errorf("%w: wetted area ratio must be positive", ErrInvalidInputs)
	}
	LDmax := kLD * math.Sqrt(aspectRatio/b.WettedAreaRatio)
	s := &AircraftState{
		W0:              b.W0,
		FixedWeight:     fixedWeight,
		AspectRatio:     aspectRatio,
		Oswald:          oswald,
		WettedAreaRatio: b.WettedAreaRatio,
		LDMax:           LDmax,
		LD:              CruiseLoiter{b.CruiseLDFactor * LDmax, LDmax},
		SFC:             b.SFC,
		Cd0:             math.Pi * aspectRatio * oswald / math.Pow(2*LDmax, 2),
	}
	return s, nil
}

// InducedDragFactor returns K in Cd = Cd0 + K Cl^2 for the provided Oswald efficiency.
func (s AircraftState) InducedDragFactor(e float64) float64 {
	return 1 / (math.Pi * s.AspectRatio * e)
}

func (s AircraftState) String() string {
	return fmt.Sprintf("W0=%.1fkg fixed=%.1fkg AR=%.2f e=%.2f L/D=%.2f/%.2f Cd0=%.5f", s.W0, s.FixedWeight, s.AspectRatio, s.Oswald, s.LD.Cruise, s.LD.Loiter, s.Cd0)
}
