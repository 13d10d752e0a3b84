package avd

import (
	"fmt"
	"math"

	"github.com/ChristopherRabotin/avd/atmosphere"
	"github.com/go-kit/kit/log/level"
	"github.com/gonum/floats"
	"github.com/gonum/matrix/mat64"
)

// Atmosphere returns the ambient conditions at a geometric altitude (m).
type Atmosphere interface {
	Conditions(altitude float64) (atmosphere.Conditions, error)
}

// Sweep is the wing loading domain (Pa) shared by all the curves of an envelope.
type Sweep []float64

// NewSweep returns n linearly spaced wing loadings from min to max (Pa).
func NewSweep(min, max float64, n int) (Sweep, error) {
	if n < 2 || !(max > min) {
		return nil, fmt.Errorf("%w: [%f, %f] with %d samples", ErrInvalidSweep, min, max, n)
	}
	s := Sweep(floats.Span(make([]float64, n), min, max))
	return s, s.Validate()
}

// Validate checks that the sweep is non empty, positive and strictly increasing.
func (s Sweep) Validate() error {
	if len(s) == 0 {
		return fmt.Errorf("%w: empty", ErrInvalidSweep)
	}
	if !(s[0] > 0) {
		return fmt.Errorf("%w: first wing loading is %f", ErrInvalidSweep, s[0])
	}
	for i := 1; i < len(s); i++ {
		if !(s[i] > s[i-1]) || !finite(s[i]) {
			return fmt.Errorf("%w: sample %d (%f) after %f", ErrInvalidSweep, i, s[i], s[i-1])
		}
	}
	return nil
}

// CurveKind identifies the origin of a constraint curve.
type CurveKind uint8

const (
	// TakeoffKind is the takeoff field length curve.
	TakeoffKind CurveKind = iota + 1
	// ThrustMatchingKind is a point performance (thrust matching) curve.
	ThrustMatchingKind
	// ClimbKind is a regulatory climb gradient requirement.
	ClimbKind
)

func (k CurveKind) String() string {
	switch k {
	case TakeoffKind:
		return "takeoff"
	case ThrustMatchingKind:
		return "thrust-matching"
	case ClimbKind:
		return "climb"
	default:
		panic("unknown curve kind")
	}
}

// Curve is a minimum thrust to weight requirement sampled on the envelope sweep.
type Curve struct {
	Name string
	Kind CurveKind
	TW   []float64 // one value per sweep sample
	at   func(ws float64) float64
}

func newCurve(name string, kind CurveKind, sweep Sweep, at func(ws float64) float64) Curve {
	tw := make([]float64, len(sweep))
	for i, ws := range sweep {
		tw[i] = at(ws)
	}
	return Curve{name, kind, tw, at}
}

// At evaluates the requirement at any positive wing loading (Pa).
func (c Curve) At(ws float64) float64 {
	if !(ws > 0) {
		panic(fmt.Errorf("curve %s evaluated at non positive wing loading %f", c.Name, ws))
	}
	return c.at(ws)
}

// Bound is a maximum wing loading (Pa), independent of thrust to weight.
type Bound struct {
	Name string
	WS   float64
}

// Aero holds the drag polar parameters used by the point performance constraints.
type Aero struct {
	AspectRatio float64
	Oswald      float64
	Cd0         float64
}

// Aero returns the drag polar of the aircraft state.
func (s AircraftState) Aero() Aero {
	return Aero{s.AspectRatio, s.Oswald, s.Cd0}
}

// FieldInputs are the high lift and field performance requirements.
type FieldInputs struct {
	FieldLength   float64 // m
	MaxStallSpeed float64 // m/s
	ClMax         float64 // landing maximum lift coefficient
	ClClean       float64 // clean maximum lift coefficient
}

// ClMaxTakeoff returns the takeoff maximum lift coefficient.
func (f FieldInputs) ClMaxTakeoff() float64 {
	return f.ClClean + 0.7*(f.ClMax-f.ClClean)
}

/* Field performance */

// TakeoffConstraint returns the takeoff curve TW = WS / (Cl_TO g TOP / 1.21), where the takeoff
// parameter TOP is the field length divided by topParameter (m^3/kg).
func TakeoffConstraint(sweep Sweep, f FieldInputs, topParameter float64) Curve {
	top := f.FieldLength / topParameter // kg/m^2
	k := f.ClMaxTakeoff() * gravity * top / 1.21
	return newCurve("takeoff", TakeoffKind, sweep, func(ws float64) float64 {
		return ws / k
	})
}

// RoskamApproachStall returns the stall speed (m/s) compatible with the landing field length (m).
func RoskamApproachStall(fieldLength float64) float64 {
	return Knots(math.Sqrt((fieldLength / ft2m) / 0.5136))
}

// LandingRoskam returns the maximum wing loading (Pa) from the Roskam landing field length correlation.
func LandingRoskam(f FieldInputs, ρ0 float64) float64 {
	Vs := RoskamApproachStall(f.FieldLength)
	return 0.5 * ρ0 * Vs * Vs * f.ClMax
}

// LandingRaymer returns the maximum wing loading (Pa) from the Raymer landing distance, where
// fieldFraction converts the field length to landing distance, allowance is the obstacle
// clearance distance (m) and K the runway correction.
func LandingRaymer(f FieldInputs, fieldFraction, allowance, K float64) float64 {
	ald := f.FieldLength * fieldFraction
	return ((ald - allowance) / (0.51 * K)) * f.ClMax
}

// StallBound returns the maximum wing loading (Pa) meeting the maximum stall speed.
func StallBound(f FieldInputs, ρ0 float64) float64 {
	return 0.5 * ρ0 * f.MaxStallSpeed * f.MaxStallSpeed * f.ClMax
}

/* Point performance */

// ThrustRegime is a flight condition for the thrust matching equation.
type ThrustRegime struct {
	Name       string  `mapstructure:"name"`
	Altitude   float64 `mapstructure:"altitude"`    // m
	Speed      float64 `mapstructure:"speed"`       // m/s, zero to use Mach
	Mach       float64 `mapstructure:"mach"`        // used when Speed is zero
	ClimbRate  float64 `mapstructure:"climb_rate"`  // m/s
	Alpha      float64 `mapstructure:"alpha"`       // weight fraction W/W0
	LoadFactor float64 `mapstructure:"load_factor"` // zero means 1
}

// ThrustMatching returns the thrust to weight required to fly the regime:
// TW = (α/β) [ROC/V + q Cd0/(α WS) + α n² WS/(q π AR e)].
// The climb angle induced drag term is neglected.
func ThrustMatching(sweep Sweep, r ThrustRegime, aero Aero, atm Atmosphere, ρ0 float64, engine Engine) (Curve, error) {
	cond, err := atm.Conditions(r.Altitude)
	if err != nil {
		return Curve{}, fmt.Errorf("%s: %w", r.Name, err)
	}
	V := r.Speed
	if V == 0 {
		V = r.Mach * cond.SpeedOfSound
	}
	if !(V > 0) {
		return Curve{}, fmt.Errorf("%w: %s has no speed", ErrInvalidInputs, r.Name)
	}
	if !(r.Alpha > 0) {
		return Curve{}, fmt.Errorf("%w: %s weight fraction must be positive", ErrInvalidInputs, r.Name)
	}
	n := r.LoadFactor
	if n == 0 {
		n = 1
	}
	σ := cond.Density / ρ0
	β := engine.Lapse(r.Altitude, σ)
	q := 0.5 * cond.Density * V * V
	α := r.Alpha
	climb := r.ClimbRate / V
	return newCurve(r.Name, ThrustMatchingKind, sweep, func(ws float64) float64 {
		return (α / β) * (climb + q*aero.Cd0/(α*ws) + α*n*n*ws/(q*math.Pi*aero.AspectRatio*aero.Oswald))
	}), nil
}

// ClimbConstraint returns the thrust to weight needed to meet a climb gradient:
// TW = (1/LD + G/100) α, scaled by oeiFactor when one engine is inoperative.
func ClimbConstraint(sweep Sweep, seg ClimbSegment, aero Aero, f FieldInputs, oeiFactor float64) Curve {
	cl := f.ClMax
	if seg.Flaps == TakeoffFlaps {
		cl = f.ClMaxTakeoff()
	}
	cl /= seg.SpeedFactor * seg.SpeedFactor
	cd0 := aero.Cd0 + seg.ΔCd0
	e := aero.Oswald * seg.OswaldFactor
	LD := cl / (cd0 + cl*cl/(math.Pi*aero.AspectRatio*e))
	tw := (1/LD + seg.Gradient/100) * seg.Alpha
	if seg.OEI {
		tw *= oeiFactor
	}
	return newCurve(seg.Name, ClimbKind, sweep, func(float64) float64 {
		return tw
	})
}

// Envelope is the set of constraints of one design, all sampled on the same sweep.
type Envelope struct {
	Sweep   Sweep
	Takeoff Curve
	Curves  []Curve // every curve other than takeoff
	Bounds  []Bound
}

// BuildEnvelope evaluates every constraint of the configuration for the provided drag polar and field inputs.
func BuildEnvelope(conf Config, aero Aero, f FieldInputs) (*Envelope, error) {
	sweep, err := NewSweep(conf.Sweep.Min, conf.Sweep.Max, conf.Sweep.Samples)
	if err != nil {
		return nil, err
	}
	return BuildEnvelopeOn(sweep, conf, aero, f)
}

// BuildEnvelopeOn is BuildEnvelope on a caller provided sweep.
func BuildEnvelopeOn(sweep Sweep, conf Config, aero Aero, f FieldInputs) (*Envelope, error) {
	if err := sweep.Validate(); err != nil {
		return nil, err
	}
	ρ0 := conf.SeaLevel.Density
	env := &Envelope{Sweep: sweep}
	env.Takeoff = TakeoffConstraint(sweep, f, conf.Takeoff.Parameter)

	roskam := LandingRoskam(f, ρ0)
	env.Bounds = append(env.Bounds,
		Bound{"landing (Roskam)", roskam},
		Bound{"landing (Raymer)", LandingRaymer(f, conf.Landing.FieldFraction, conf.Landing.Allowance, conf.Landing.K)})
	if conf.Landing.WetRunway {
		env.Bounds = append(env.Bounds, Bound{"landing (Roskam, wet runway)", roskam / conf.Landing.WetFactor})
	}
	env.Bounds = append(env.Bounds, Bound{"stall speed", StallBound(f, ρ0)})

	for _, regime := range conf.Regimes {
		c, err := ThrustMatching(sweep, regime, aero, conf.Atmosphere, ρ0, conf.Engine)
		if err != nil {
			return nil, err
		}
		env.Curves = append(env.Curves, c)
	}
	climbs, err := ClimbRequirements(conf.Regulation, conf.Engines, conf.Landing.Alpha)
	if err != nil {
		return nil, err
	}
	for _, seg := range climbs {
		env.Curves = append(env.Curves, ClimbConstraint(sweep, seg, aero, f, OEIFactor(conf.Engines)))
	}
	if conf.Logger != nil {
		level.Info(conf.Logger).Log("subsys", "constraints", "curves", len(env.Curves)+1, "bounds", len(env.Bounds), "landing(Pa)", env.LandingBound().WS)
	}
	return env, nil
}

// All returns every curve, takeoff first.
func (e *Envelope) All() []Curve {
	return append([]Curve{e.Takeoff}, e.Curves...)
}

// Curve returns the curve with the provided name.
func (e *Envelope) Curve(name string) (Curve, bool) {
	for _, c := range e.All() {
		if c.Name == name {
			return c, true
		}
	}
	return Curve{}, false
}

// LandingBound returns the most restrictive vertical bound, or the end of the sweep if there are none.
func (e *Envelope) LandingBound() Bound {
	if len(e.Bounds) == 0 {
		return Bound{"end of sweep", e.Sweep[len(e.Sweep)-1]}
	}
	b := e.Bounds[0]
	for _, candidate := range e.Bounds[1:] {
		if candidate.WS < b.WS {
			b = candidate
		}
	}
	return b
}

// Matrix returns the curves as a dense matrix with one row per curve (takeoff first)
// and one column per sweep sample.
func (e *Envelope) Matrix() *mat64.Dense {
	all := e.All()
	m := mat64.NewDense(len(all), len(e.Sweep), nil)
	for i, c := range all {
		m.SetRow(i, c.TW)
	}
	return m
}

// Required returns the thrust to weight satisfying every curve at the provided wing loading.
func (e *Envelope) Required(ws float64) float64 {
	tw := e.Takeoff.At(ws)
	for _, c := range e.Curves {
		tw = math.Max(tw, c.At(ws))
	}
	return tw
}

// others returns, per sweep sample, the maximum of every curve other than takeoff.
func (e *Envelope) others() []float64 {
	req := make([]float64, len(e.Sweep))
	if len(e.Curves) == 0 {
		return req
	}
	for j := range req {
		req[j] = e.Curves[0].TW[j]
		for _, c := range e.Curves[1:] {
			req[j] = math.Max(req[j], c.TW[j])
		}
	}
	return req
}
