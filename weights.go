package avd

import "math"

// EmptyWeightModel is the We/W0 = A W0^C regression of operating empty weight fraction.
type EmptyWeightModel struct {
	A, C float64
}

// WeW0 returns the empty weight fraction for the provided gross weight (kg).
// The result is not bounded here: the sizing loop rejects fractions which cannot close the mission.
func (m EmptyWeightModel) WeW0(W0 float64) float64 {
	return m.A * math.Pow(W0, m.C)
}

// Headcount defines the per-person masses used to compute the fixed weight.
type Headcount struct {
	PassengerMass float64 `mapstructure:"passenger_mass"` // kg per passenger
	CrewMass      float64 `mapstructure:"crew_mass"`      // kg per crew member
	BaggageMass   float64 `mapstructure:"baggage_mass"`   // kg of baggage per passenger
}

// FixedWeight returns the payload, crew and baggage mass (kg).
func (h Headcount) FixedWeight(passengers, crew int) float64 {
	pax := float64(passengers)
	return pax*h.PassengerMass + float64(crew)*h.CrewMass + pax*h.BaggageMass
}
