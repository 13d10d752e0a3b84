package avd

import (
	"fmt"
)

// DesignPoint is a wing loading (Pa) and thrust to weight pair.
type DesignPoint struct {
	WS float64
	TW float64
}

func (p DesignPoint) String() string {
	return fmt.Sprintf("W/S=%.1f Pa T/W=%.4f", p.WS, p.TW)
}

// Selection is the outcome of a design point selection.
type Selection struct {
	Point        DesignPoint // blended design point
	Minimum      DesignPoint // minimum feasible wing loading
	LandingBound DesignPoint // most restrictive vertical bound
	Limiter      string      // name of the limiting vertical bound
	MinIndex     int         // sweep index of the minimum feasible point
	Blend        float64
}

// MinimumFeasible returns the first sweep index where the takeoff requirement exceeds
// every other curve, or -1 if there is none.
func (e *Envelope) MinimumFeasible() int {
	others := e.others()
	for i, tw := range e.Takeoff.TW {
		if tw > others[i] {
			return i
		}
	}
	return -1
}

// SelectDesignPoint blends the minimum feasible point (blend=0) and the landing bound point (blend=1).
func SelectDesignPoint(env *Envelope, blend float64) (Selection, error) {
	if !(blend >= 0 && blend <= 1) {
		return Selection{}, fmt.Errorf("%w: blend factor %f not in [0, 1]", ErrInvalidInputs, blend)
	}
	idx := env.MinimumFeasible()
	if idx < 0 {
		return Selection{}, fmt.Errorf("%w: takeoff never exceeds the other constraints on [%.1f, %.1f] Pa", ErrInfeasibleDesignSpace, env.Sweep[0], env.Sweep[len(env.Sweep)-1])
	}
	bound := env.LandingBound()
	if !(bound.WS > 0) {
		return Selection{}, fmt.Errorf("%w: %s is %.1f Pa", ErrInfeasibleDesignSpace, bound.Name, bound.WS)
	}
	minimum := DesignPoint{env.Sweep[idx], env.Takeoff.TW[idx]}
	if minimum.WS > bound.WS {
		return Selection{}, fmt.Errorf("%w: minimum feasible wing loading %.1f Pa exceeds %s at %.1f Pa", ErrInfeasibleDesignSpace, minimum.WS, bound.Name, bound.WS)
	}
	landing := DesignPoint{bound.WS, env.Required(bound.WS)}
	sel := Selection{
		Point:        DesignPoint{lerp(minimum.WS, landing.WS, blend), lerp(minimum.TW, landing.TW, blend)},
		Minimum:      minimum,
		LandingBound: landing,
		Limiter:      bound.Name,
		MinIndex:     idx,
		Blend:        blend,
	}
	return sel, nil
}
