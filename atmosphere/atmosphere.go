package atmosphere

import (
	"errors"
	"fmt"
	"math"
)

const (
	// G0 is the standard gravitational acceleration (m/s^2).
	G0 = 9.80665
	// R is the specific gas constant of dry air (J/(kg K)).
	R = 287.05287
	// γ is the ratio of specific heats of air.
	γ = 1.4
	// Sutherland's law constants for air.
	sutherlandβ = 1.458e-6
	sutherlandS = 110.4
	// MaxAltitude is the highest geometric altitude supported (m).
	MaxAltitude = 47000.0
)

// ErrAltitudeOutOfRange is returned for altitudes outside [0, MaxAltitude].
var ErrAltitudeOutOfRange = errors.New("atmosphere: altitude out of range")

// layer is one layer of the 1976 standard atmosphere.
type layer struct {
	base  float64 // base altitude (m)
	T     float64 // base temperature (K)
	p     float64 // base pressure (Pa)
	lapse float64 // temperature gradient (K/m)
}

var layers []layer

func init() {
	// Base pressures are computed once from sea level so that the layers are continuous.
	bases := []struct{ h, lapse float64 }{{0, -0.0065}, {11000, 0}, {20000, 0.001}, {32000, 0.0028}}
	T, p := 288.15, 101325.0
	for i, b := range bases {
		if i > 0 {
			prev := layers[i-1]
			T, p = prev.at(b.h)
		}
		layers = append(layers, layer{b.h, T, p, b.lapse})
	}
}

// at returns the temperature and pressure at altitude h within this layer.
func (l layer) at(h float64) (T, p float64) {
	Δh := h - l.base
	if l.lapse == 0 {
		return l.T, l.p * math.Exp(-G0*Δh/(R*l.T))
	}
	T = l.T + l.lapse*Δh
	return T, l.p * math.Pow(T/l.T, -G0/(l.lapse*R))
}

// Conditions are the ambient air properties at a given altitude.
type Conditions struct {
	Altitude     float64 // m
	Temperature  float64 // K
	Pressure     float64 // Pa
	Density      float64 // kg/m^3
	Viscosity    float64 // dynamic viscosity, Pa s
	SpeedOfSound float64 // m/s
}

func (c Conditions) String() string {
	return fmt.Sprintf("h=%.0fm T=%.2fK p=%.1fPa ρ=%.5fkg/m^3 a=%.2fm/s", c.Altitude, c.Temperature, c.Pressure, c.Density, c.SpeedOfSound)
}

// ISA is the International Standard Atmosphere.
type ISA struct{}

// Conditions returns the standard atmosphere at the provided geometric altitude in meters.
func (ISA) Conditions(altitude float64) (Conditions, error) {
	return Lookup(altitude)
}

// Lookup returns the standard atmosphere at the provided geometric altitude in meters.
func Lookup(altitude float64) (Conditions, error) {
	if math.IsNaN(altitude) || altitude < 0 || altitude > MaxAltitude {
		return Conditions{}, fmt.Errorf("%w: %f m", ErrAltitudeOutOfRange, altitude)
	}
	l := layers[0]
	for _, candidate := range layers[1:] {
		if altitude < candidate.base {
			break
		}
		l = candidate
	}
	T, p := l.at(altitude)
	return Conditions{
		Altitude:     altitude,
		Temperature:  T,
		Pressure:     p,
		Density:      p / (R * T),
		Viscosity:    sutherlandβ * math.Pow(T, 1.5) / (T + sutherlandS),
		SpeedOfSound: math.Sqrt(γ * R * T),
	}, nil
}

// SeaLevel returns the standard sea level conditions.
func SeaLevel() Conditions {
	c, _ := Lookup(0)
	return c
}

// MachToSpeed converts a Mach number to a true airspeed (m/s) at the provided altitude.
func MachToSpeed(altitude, mach float64) (float64, error) {
	c, err := Lookup(altitude)
	if err != nil {
		return 0, err
	}
	return mach * c.SpeedOfSound, nil
}
