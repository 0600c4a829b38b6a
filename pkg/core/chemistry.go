// Package core provides chemistry constants and mass-accuracy helpers shared by
// the adduct engine and the detector.
package core

import "math"

// Atomic masses (monoisotopic)
const (
	MassH  = 1.0078250321
	MassC  = 12.0000000000
	MassN  = 14.0030740052
	MassO  = 15.9949146221
	MassNa = 22.9897692820
	MassK  = 38.9637064864
	MassCl = 34.9688527100

	// Proton and electron masses for charge calculations
	ProtonMass   = 1.00727646688
	ElectronMass = 0.00054857990

	// Neutral losses / gains
	MassH2O = 2*MassH + MassO
	MassNH3 = MassN + 3*MassH
)

// PPMError returns the rounded absolute difference between an experimental and
// a theoretical mass, expressed in parts per million of the theoretical mass.
func PPMError(experimental, theoretical float64) int {
	return int(math.Round(math.Abs((experimental - theoretical) * 1e6 / theoretical)))
}

// DaFromPPM converts a ppm tolerance around mass into Daltons, rounded to the
// nearest integer Dalton.
func DaFromPPM(mass float64, ppm int) float64 {
	return math.Round(PPMWindow(mass, ppm))
}

// PPMWindow converts a ppm tolerance around mass into an unrounded Dalton
// window.
func PPMWindow(mass float64, ppm int) float64 {
	return math.Abs(mass*float64(ppm)) / 1e6
}

// RoundFloat rounds a float to n decimal places
func RoundFloat(val float64, precision int) float64 {
	ratio := math.Pow(10, float64(precision))
	return math.Round(val*ratio) / ratio
}
