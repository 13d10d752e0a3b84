package avd

import (
	"fmt"
	"math"
)

// Engine defines how installed thrust lapses with altitude.
type Engine interface {
	// Lapse returns the ratio of available thrust to sea level static thrust (β)
	// at the provided altitude (m) and density ratio σ.
	Lapse(altitude, σ float64) float64
}

/* Available engines */

// Turbofan is a high bypass turbofan: β = σ^0.7 in the troposphere and 1.439σ above it.
type Turbofan struct {
	Tropopause float64 // m
}

// Lapse implements the Engine interface.
func (t Turbofan) Lapse(altitude, σ float64) float64 {
	if altitude <= t.Tropopause {
		return math.Pow(σ, 0.7)
	}
	return 1.439 * σ
}

// GenericLapse is an engine whose thrust lapses as σ^Exponent at all altitudes.
type GenericLapse struct {
	Exponent float64
}

// Lapse implements the Engine interface.
func (g GenericLapse) Lapse(altitude, σ float64) float64 {
	return math.Pow(σ, g.Exponent)
}

// NewTurbofan returns a turbofan with the tropopause at 11 km.
func NewTurbofan() Turbofan {
	return Turbofan{11000}
}

// EngineFromString returns an engine model from its configuration name.
func EngineFromString(name string) (Engine, error) {
	switch name {
	case "", "turbofan":
		return NewTurbofan(), nil
	case "turbojet":
		return GenericLapse{1}, nil
	default:
		return nil, fmt.Errorf("%w: engine %q", ErrUnimplemented, name)
	}
}

// OEIFactor returns the thrust multiplier needed to meet a one engine inoperative
// requirement with all engines sized equally: N/(N-1), i.e. 2 for a twin.
func OEIFactor(engines int) float64 {
	if engines < 2 {
		panic(fmt.Errorf("one engine inoperative requirement undefined for %d engine(s)", engines))
	}
	n := float64(engines)
	return n / (n - 1)
}
