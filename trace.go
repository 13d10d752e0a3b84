package avd

import (
	"fmt"

	"github.com/ChristopherRabotin/ode"
)

// TracePoint is the aircraft mass (kg) at a mission time (s).
type TracePoint struct {
	Time   float64
	Weight float64
	Kind   SegmentKind // zero for the initial point
}

// weightTrace integrates dW/dt = -SFC W / (L/D) over a cruise or loiter segment.
type weightTrace struct {
	weight   float64
	rate     float64 // SFC / (L/D), 1/s
	step     float64
	t0       float64
	steps, k int
	kind     SegmentKind
	points   []TracePoint
}

// GetState implements the ode.Integrable interface.
func (w *weightTrace) GetState() []float64 {
	return []float64{w.weight}
}

// SetState implements the ode.Integrable interface.
func (w *weightTrace) SetState(t float64, s []float64) {
	w.k++
	w.weight = s[0]
	w.points = append(w.points, TracePoint{w.t0 + float64(w.k)*w.step, w.weight, w.kind})
}

// Stop implements the ode.Integrable interface.
func (w *weightTrace) Stop(t float64) bool {
	return w.k >= w.steps
}

// Func implements the ode.Integrable interface.
func (w *weightTrace) Func(t float64, f []float64) []float64 {
	return []float64{-w.rate * f[0]}
}

// segmentDuration returns the duration (s) and the SFC/(L/D) ratio of a cruise or loiter segment.
func segmentDuration(seg Segment, sfc, LD CruiseLoiter) (duration, rate float64, err error) {
	switch s := seg.(type) {
	case Cruise:
		if err := s.Validate(); err != nil {
			return 0, 0, err
		}
		return s.Range / s.Speed, sfc.Cruise / LD.Cruise, nil
	case Loiter:
		if err := s.Validate(); err != nil {
			return 0, 0, err
		}
		return s.Endurance, sfc.Loiter / LD.Loiter, nil
	default:
		return 0, 0, fmt.Errorf("%w: only cruise and loiter segments are integrated, got %v", ErrInvalidInputs, seg)
	}
}

// TraceSegment integrates the aircraft mass along a cruise or loiter segment with an RK4 in the
// provided number of steps, starting at t0 (s) with mass W (kg). The initial point is included.
func TraceSegment(seg Segment, t0, W float64, sfc, LD CruiseLoiter, steps int) ([]TracePoint, error) {
	if steps < 1 {
		return nil, fmt.Errorf("%w: at least one integration step is required", ErrInvalidInputs)
	}
	duration, rate, err := segmentDuration(seg, sfc, LD)
	if err != nil {
		return nil, err
	}
	w := &weightTrace{weight: W, rate: rate, step: duration / float64(steps), t0: t0, steps: steps, kind: seg.Kind()}
	w.points = append(make([]TracePoint, 0, steps+1), TracePoint{t0, W, seg.Kind()})
	ode.NewRK4(t0, w.step, w).Solve() // Blocking.
	return w.points, nil
}

// TraceProfile returns the aircraft mass along the full profile. Segments with a fixed mass ratio
// are applied instantaneously, cruise and loiter segments are integrated with stepsPerSegment steps.
func TraceProfile(profile Profile, W0 float64, sfc, LD CruiseLoiter, stepsPerSegment int) ([]TracePoint, error) {
	points := []TracePoint{{0, W0, 0}}
	t, W := 0.0, W0
	for _, seg := range profile {
		if seg == nil {
			return nil, fmt.Errorf("%w: nil segment", ErrUnknownSegmentType)
		}
		switch seg.Kind() {
		case KindCruise, KindLoiter:
			trace, err := TraceSegment(seg, t, W, sfc, LD, stepsPerSegment)
			if err != nil {
				return nil, err
			}
			points = append(points, trace[1:]...)
		default:
			ratio, err := SegmentMassRatio(seg, sfc, LD)
			if err != nil {
				return nil, err
			}
			points = append(points, TracePoint{t, W * ratio, seg.Kind()})
		}
		last := points[len(points)-1]
		t, W = last.Time, last.Weight
	}
	return points, nil
}
