package avd

import (
	"fmt"

	"github.com/ChristopherRabotin/avd/atmosphere"
	kitlog "github.com/go-kit/kit/log"
	"github.com/spf13/viper"
)

// SweepConfig defines the wing loading sweep (Pa).
type SweepConfig struct {
	Min     float64 `mapstructure:"min"`
	Max     float64 `mapstructure:"max"`
	Samples int     `mapstructure:"samples"`
}

// TakeoffConfig holds the takeoff field length correlation.
type TakeoffConfig struct {
	Parameter float64 `mapstructure:"parameter"` // k1, field length per takeoff parameter (m^3/kg)
}

// LandingConfig holds the landing field length correlations.
type LandingConfig struct {
	FieldFraction float64 `mapstructure:"field_fraction"` // landing distance over field length
	Allowance     float64 `mapstructure:"allowance"`      // obstacle clearance distance (m)
	K             float64 `mapstructure:"k"`              // runway correction
	WetRunway     bool    `mapstructure:"wet_runway"`
	WetFactor     float64 `mapstructure:"wet_factor"`
	Alpha         float64 `mapstructure:"alpha"` // landing weight fraction for the approach and landing climbs
}

// Config is the full configuration of a sizing session.
type Config struct {
	EmptyWeight EmptyWeightModel
	Tolerance   float64
	Baseline    Baseline
	Headcount   Headcount
	Sweep       SweepConfig
	Takeoff     TakeoffConfig
	Landing     LandingConfig
	Regimes     []ThrustRegime
	Regulation  Regulation
	Engines     int
	Engine      Engine
	Atmosphere  Atmosphere
	SeaLevel    atmosphere.Conditions
	Logger      kitlog.Logger
}

// DefaultRegimes returns the point performance regimes of a twin jet transport.
func DefaultRegimes() []ThrustRegime {
	return []ThrustRegime{
		{Name: "cruise", Altitude: Feet(40000), Mach: 0.75, Alpha: 0.98},
		{Name: "cruise max speed", Altitude: Feet(40000), Mach: 0.78, Alpha: 0.94},
		{Name: "absolute ceiling", Altitude: Feet(45000), Mach: 0.6, Alpha: 0.94},
		{Name: "cruise 2", Altitude: Feet(26000), Speed: Knots(200), Alpha: 0.5},
		{Name: "loiter", Altitude: Feet(5000), Speed: Knots(150), Alpha: 0.2},
	}
}

// DefaultConfig returns the configuration of a civil jet transport.
func DefaultConfig() Config {
	return Config{
		EmptyWeight: EmptyWeightModel{A: 1.4, C: -0.1},
		Tolerance:   0.01,
		Baseline: Baseline{
			Class:           CivilJet,
			W0:              5000,
			WettedAreaRatio: 6,
			CruiseLDFactor:  0.866,
			SFC:             CruiseLoiter{PerHour(0.8), PerHour(0.7)},
		},
		Headcount: Headcount{PassengerMass: 100, CrewMass: 100, BaggageMass: 23},
		Sweep:     SweepConfig{1, 3000, 10000},
		Takeoff:   TakeoffConfig{37.5 * ft2m * ft2m * ft2m / lb2kg},
		Landing: LandingConfig{
			FieldFraction: 0.6,
			Allowance:     250,
			K:             1,
			WetFactor:     1.3,
			Alpha:         0.3,
		},
		Regimes:    DefaultRegimes(),
		Regulation: FAR25,
		Engines:    2,
		Engine:     NewTurbofan(),
		Atmosphere: atmosphere.ISA{},
		SeaLevel:   atmosphere.SeaLevel(),
		Logger:     kitlog.NewNopLogger(),
	}
}

// LoadConfig returns the default configuration overridden by the keys set in the provided file.
func LoadConfig(path string) (Config, error) {
	conf := DefaultConfig()
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return conf, fmt.Errorf("%w: %s", ErrInvalidInputs, err)
	}
	if err := conf.apply(v); err != nil {
		return conf, err
	}
	return conf, nil
}

func (c *Config) apply(v *viper.Viper) error {
	floatKeys := map[string]*float64{
		"sizing.empty_weight.a":         &c.EmptyWeight.A,
		"sizing.empty_weight.c":         &c.EmptyWeight.C,
		"sizing.tolerance":              &c.Tolerance,
		"baseline.w0":                   &c.Baseline.W0,
		"baseline.wetted_area_ratio":    &c.Baseline.WettedAreaRatio,
		"baseline.cruise_ld_factor":     &c.Baseline.CruiseLDFactor,
		"constraints.takeoff.parameter": &c.Takeoff.Parameter,
	}
	for key, ptr := range floatKeys {
		if v.IsSet(key) {
			*ptr = v.GetFloat64(key)
		}
	}
	// SFC is configured per hour.
	if v.IsSet("baseline.sfc_cruise") {
		c.Baseline.SFC.Cruise = PerHour(v.GetFloat64("baseline.sfc_cruise"))
	}
	if v.IsSet("baseline.sfc_loiter") {
		c.Baseline.SFC.Loiter = PerHour(v.GetFloat64("baseline.sfc_loiter"))
	}
	if v.IsSet("baseline.class") {
		class, err := AircraftClassFromString(v.GetString("baseline.class"))
		if err != nil {
			return err
		}
		c.Baseline.Class = class
	}
	for key, dst := range map[string]interface{}{
		"headcount":           &c.Headcount,
		"constraints.sweep":   &c.Sweep,
		"constraints.landing": &c.Landing,
	} {
		if !v.IsSet(key) {
			continue
		}
		if err := v.UnmarshalKey(key, dst); err != nil {
			return fmt.Errorf("%w: %s: %s", ErrInvalidInputs, key, err)
		}
	}
	if v.IsSet("constraints.regimes") {
		var regimes []ThrustRegime
		if err := v.UnmarshalKey("constraints.regimes", &regimes); err != nil {
			return fmt.Errorf("%w: constraints.regimes: %s", ErrInvalidInputs, err)
		}
		c.Regimes = regimes
	}
	if v.IsSet("constraints.regulation") {
		reg, err := RegulationFromString(v.GetString("constraints.regulation"))
		if err != nil {
			return err
		}
		c.Regulation = reg
	}
	if v.IsSet("constraints.engines") {
		c.Engines = v.GetInt("constraints.engines")
	}
	if v.IsSet("constraints.engine") {
		engine, err := EngineFromString(v.GetString("constraints.engine"))
		if err != nil {
			return err
		}
		c.Engine = engine
	}
	return c.Validate()
}

// Validate checks the configuration for values which would make every session fail.
func (c Config) Validate() error {
	if !(c.Tolerance > 0) {
		return fmt.Errorf("%w: tolerance must be positive", ErrInvalidInputs)
	}
	if !(c.Baseline.W0 > 0) {
		return fmt.Errorf("%w: baseline gross weight must be positive", ErrInvalidInputs)
	}
	if c.Engines < 2 {
		return fmt.Errorf("%w: at least two engines are required, got %d", ErrInvalidInputs, c.Engines)
	}
	if !(c.Takeoff.Parameter > 0) {
		return fmt.Errorf("%w: takeoff parameter must be positive", ErrInvalidInputs)
	}
	if !(c.Landing.WetFactor > 0) || !(c.Landing.K > 0) {
		return fmt.Errorf("%w: landing wet factor and runway correction must be positive", ErrInvalidInputs)
	}
	if c.Engine == nil || c.Atmosphere == nil {
		return fmt.Errorf("%w: engine and atmosphere models are required", ErrInvalidInputs)
	}
	if _, err := NewSweep(c.Sweep.Min, c.Sweep.Max, c.Sweep.Samples); err != nil {
		return err
	}
	return nil
}
