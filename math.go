package avd

import "math"

const (
	ft2m  = 0.3048
	lb2kg = 0.45359237
	kt2ms = 1852.0 / 3600
	// gravity is the acceleration used by the field performance correlations (m/s^2).
	gravity = 9.81
)

// Knots converts a speed in knots to m/s.
func Knots(v float64) float64 {
	return v * kt2ms
}

// Feet converts a length in feet to meters.
func Feet(l float64) float64 {
	return l * ft2m
}

// Minutes converts a duration in minutes to seconds.
func Minutes(m float64) float64 {
	return m * 60
}

// PerHour converts a specific fuel consumption in 1/h to 1/s.
func PerHour(c float64) float64 {
	return c / 3600
}

// lerp blends a and b such that f=0 returns exactly a and f=1 returns exactly b.
func lerp(a, b, f float64) float64 {
	return (1-f)*a + f*b
}

// finite returns whether v is neither NaN nor infinite.
func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
