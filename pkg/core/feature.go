package core

import (
	"fmt"
	"math"
	"strings"
)

// Feature is one grouped LC-MS feature awaiting adduct detection: the
// representative ion, the peaks grouped with it and the candidate lipid.
type Feature struct {
	Lipid         Lipid
	MZ            float64 // representative m/z
	RetentionTime float64 // minutes
	Intensity     float64 // 0 means "use the most intense grouped peak"
	Polarity      Polarity
	Peaks         *PeakCluster

	// Internal tracking
	SourceFile string
	SourceLine int
}

// Validate checks that a feature meets all requirements for detection.
func (f *Feature) Validate() error {
	var errs []string

	if err := f.Lipid.Validate(); err != nil {
		errs = append(errs, err.Error())
	}
	if math.IsNaN(f.MZ) || math.IsInf(f.MZ, 0) || f.MZ <= 0 {
		errs = append(errs, "representative m/z must be a positive number")
	}
	if math.IsNaN(f.RetentionTime) || f.RetentionTime < 0 {
		errs = append(errs, "retention time must be non-negative")
	}
	if f.Intensity < 0 || math.IsNaN(f.Intensity) {
		errs = append(errs, "intensity must be non-negative")
	}
	if err := f.Peaks.Validate(); err != nil {
		errs = append(errs, err.Error())
	}

	if len(errs) > 0 {
		return &ValidationError{
			Field:   "Feature",
			Message: strings.Join(errs, "; "),
		}
	}
	return nil
}

// RepresentativeIntensity returns Intensity, falling back to the most intense
// grouped peak when Intensity is unset.
func (f *Feature) RepresentativeIntensity() float64 {
	if f.Intensity > 0 {
		return f.Intensity
	}
	if p, ok := f.Peaks.MostIntense(); ok {
		return p.Intensity
	}
	return 0
}

// Name returns the feature name in format "Lipid@mz"
func (f *Feature) Name() string {
	return fmt.Sprintf("%s@%.4f", f.Lipid.Name, f.MZ)
}
