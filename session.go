package avd

import (
	"fmt"

	kitlog "github.com/go-kit/kit/log"
	"github.com/go-kit/kit/log/level"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

var validate = validator.New()

// Inputs are the design requirements of one sizing session.
type Inputs struct {
	Passengers    int     `validate:"gte=0" mapstructure:"passengers"`
	Crew          int     `validate:"gte=0" mapstructure:"crew"`
	Profile       Profile `mapstructure:"-"`
	AspectRatio   float64 `validate:"gt=0" mapstructure:"aspect_ratio"`
	Oswald        float64 `validate:"gt=0,lte=1" mapstructure:"oswald"`
	FieldLength   float64 `validate:"gt=0" mapstructure:"field_length"`    // m
	MaxStallSpeed float64 `validate:"gt=0" mapstructure:"max_stall_speed"` // m/s
	ClMax         float64 `validate:"gt=0" mapstructure:"cl_max"`
	ClClean       float64 `validate:"gt=0,ltefield=ClMax" mapstructure:"cl_clean"`
	Iterations    int     `mapstructure:"iterations"`
	Blend         float64 `mapstructure:"blend"`
	Seed          float64 `validate:"gte=0" mapstructure:"seed"` // initial gross weight (kg), zero for the baseline
}

// Field returns the field performance inputs.
func (in Inputs) Field() FieldInputs {
	return FieldInputs{in.FieldLength, in.MaxStallSpeed, in.ClMax, in.ClClean}
}

// DefaultInputs returns the requirements of a four seat business jet.
func DefaultInputs() Inputs {
	return Inputs{
		Passengers: 4,
		Crew:       2,
		Profile: Profile{
			Takeoff{},
			Climb{},
			Cruise{Speed: 220, Range: 2.5e6, Altitude: Feet(40000)},
			Descent{},
			Landing{},
		},
		AspectRatio:   7.5,
		Oswald:        0.9,
		FieldLength:   1400,
		MaxStallSpeed: Knots(100),
		ClMax:         2.1,
		ClClean:       1.5,
		Iterations:    10,
		Blend:         0.5,
	}
}

// Result is the complete outcome of a sizing session.
type Result struct {
	ID       uuid.UUID
	Inputs   Inputs
	State    AircraftState // state at convergence
	Sizing   SizingResult
	Envelope *Envelope
	Design   Selection
}

// FixedWeight returns the payload, crew and baggage mass (kg).
func (r Result) FixedWeight() float64 {
	return r.State.FixedWeight
}

// WingArea returns the reference wing area (m^2) at the design point.
func (r Result) WingArea() float64 {
	return r.Sizing.W0 * gravity / r.Design.Point.WS
}

// Thrust returns the total installed sea level static thrust (N) at the design point.
func (r Result) Thrust() float64 {
	return r.Design.Point.TW * r.Sizing.W0 * gravity
}

func (r Result) String() string {
	return fmt.Sprintf("[%s] W0=%.1fkg (empty=%.1fkg fuel=%.1fkg fixed=%.1fkg) %s S=%.2fm^2 T=%.1fkN",
		r.ID, r.Sizing.W0, r.Sizing.EmptyWeight(), r.Sizing.FuelWeight(), r.FixedWeight(), r.Design.Point, r.WingArea(), r.Thrust()/1e3)
}

// Run sizes the aircraft, builds its constraint envelope and selects the design point.
// A session either returns a complete result or a single error.
func Run(conf Config, in Inputs) (Result, error) {
	if err := validate.Struct(in); err != nil {
		return Result{}, fmt.Errorf("%w: %s", ErrInvalidInputs, err)
	}
	if err := conf.Validate(); err != nil {
		return Result{}, err
	}
	fixed := conf.Headcount.FixedWeight(in.Passengers, in.Crew)
	if !(fixed > 0) {
		return Result{}, fmt.Errorf("%w: fixed weight must be positive, got %f kg", ErrInvalidInputs, fixed)
	}
	id := uuid.New()
	if conf.Logger == nil {
		conf.Logger = kitlog.NewNopLogger()
	}
	conf.Logger = kitlog.With(conf.Logger, "session", id.String())

	baseline := conf.Baseline
	if in.Seed > 0 {
		baseline.W0 = in.Seed
	}
	state, err := NewAircraftState(baseline, fixed, in.AspectRatio, in.Oswald)
	if err != nil {
		return Result{}, err
	}
	level.Info(conf.Logger).Log("subsys", "design", "state", state)

	sizing, err := NewSizer(conf).Iterate(state, in.Profile, in.Iterations)
	if err != nil {
		return Result{}, fmt.Errorf("sizing: %w", err)
	}
	env, err := BuildEnvelope(conf, state.Aero(), in.Field())
	if err != nil {
		return Result{}, fmt.Errorf("constraints: %w", err)
	}
	sel, err := SelectDesignPoint(env, in.Blend)
	if err != nil {
		level.Error(conf.Logger).Log("subsys", "design", "err", err)
		return Result{}, fmt.Errorf("design point: %w", err)
	}
	level.Info(conf.Logger).Log("subsys", "design", "point", sel.Point, "limiter", sel.Limiter)
	return Result{id, in, *state, sizing, env, sel}, nil
}
