package avd

import (
	"fmt"
	"math"

	"github.com/gonum/floats"
)

const (
	takeoffFraction = 0.97
	climbFraction   = 0.985
	descentFraction = 0.99
	landingFraction = 0.995
	// fuelMargin accounts for trapped fuel and reserves.
	fuelMargin = 1.01
)

// CruiseLoiter holds the cruise and loiter values of a quantity, e.g. L/D or SFC.
type CruiseLoiter struct {
	Cruise, Loiter float64
}

// SegmentFraction is the mass ratio (end/start) of one mission segment.
type SegmentFraction struct {
	Kind     SegmentKind
	Fraction float64
}

// BreguetRange returns the cruise mass ratio for the provided range (m), speed (m/s),
// specific fuel consumption (1/s) and lift to drag ratio.
func BreguetRange(distance, speed, sfc, LD float64) float64 {
	return math.Exp(-distance * sfc / (speed * LD))
}

// BreguetEndurance returns the loiter mass ratio for the provided endurance (s),
// specific fuel consumption (1/s) and lift to drag ratio.
func BreguetEndurance(endurance, sfc, LD float64) float64 {
	return math.Exp(-endurance * sfc / LD)
}

// SegmentMassRatio returns the mass ratio of a single segment.
func SegmentMassRatio(seg Segment, sfc, LD CruiseLoiter) (float64, error) {
	switch s := seg.(type) {
	case Takeoff:
		return takeoffFraction, nil
	case Climb:
		return climbFraction, nil
	case Descent:
		return descentFraction, nil
	case Landing:
		return landingFraction, nil
	case Cruise:
		if err := s.Validate(); err != nil {
			return 0, err
		}
		return BreguetRange(s.Range, s.Speed, sfc.Cruise, LD.Cruise), nil
	case Loiter:
		if err := s.Validate(); err != nil {
			return 0, err
		}
		return BreguetEndurance(s.Endurance, sfc.Loiter, LD.Loiter), nil
	default:
		return 0, fmt.Errorf("%w: %T", ErrUnknownSegmentType, seg)
	}
}

// WfW0 returns the fuel weight fraction of the mission profile along with the
// mass ratio of each segment, in profile order. An empty profile burns no fuel.
func WfW0(profile Profile, sfc, LD CruiseLoiter) (float64, []SegmentFraction, error) {
	breakdown := make([]SegmentFraction, len(profile))
	ratios := make([]float64, len(profile))
	for i, seg := range profile {
		ratio, err := SegmentMassRatio(seg, sfc, LD)
		if err != nil {
			return 0, nil, fmt.Errorf("segment %d: %w", i, err)
		}
		ratios[i] = ratio
		breakdown[i] = SegmentFraction{seg.Kind(), ratio}
	}
	if len(profile) == 0 {
		return 0, breakdown, nil
	}
	return fuelMargin * (1 - floats.Prod(ratios)), breakdown, nil
}
