// Package filter provides peak cluster filtering applied before adduct detection
package filter

import (
	"fmt"
	"math"
	"sort"

	"github.com/ChrisMcGann/adductid/pkg/core"
)

// Config holds filtering configuration
type Config struct {
	TopN            int     // Keep only top N most intense peaks (0 = no limit)
	IntensityCutoff float64 // Keep only peaks above this % of base peak (0 = no cutoff)
	MinIntensity    float64 // Keep only peaks at or above this absolute intensity (0 = no minimum)
}

// Validate checks the configured limits
func (c *Config) Validate() error {
	if c.TopN < 0 {
		return fmt.Errorf("top-n must be >= 0 (got %d)", c.TopN)
	}
	if c.IntensityCutoff < 0 || c.IntensityCutoff > 100 || math.IsNaN(c.IntensityCutoff) {
		return fmt.Errorf("intensity cutoff must be between 0 and 100 (got %v)", c.IntensityCutoff)
	}
	if c.MinIntensity < 0 || math.IsNaN(c.MinIntensity) {
		return fmt.Errorf("minimum intensity must be >= 0 (got %v)", c.MinIntensity)
	}
	return nil
}

// Apply applies all configured filters to the cluster and returns the result.
// Peaks whose m/z equals keepMz are never removed, so the representative ion
// always survives filtering.
func (c *Config) Apply(cluster *core.PeakCluster, keepMz float64) *core.PeakCluster {
	peaks := cluster.Peaks()

	// Apply intensity filters
	if c.MinIntensity > 0 {
		peaks = filterByMinIntensity(peaks, c.MinIntensity, keepMz)
	}
	if c.IntensityCutoff > 0 {
		peaks = filterByIntensity(peaks, c.IntensityCutoff, keepMz)
	}

	// Apply top-N filter
	if c.TopN > 0 {
		peaks = filterTopN(peaks, c.TopN, keepMz)
	}

	// NewPeakCluster restores cluster order after all filtering
	return core.NewPeakCluster(peaks...)
}

func isKept(peak core.Peak, keepMz float64) bool {
	return math.Abs(peak.MZ-keepMz) < 1e-8
}

// filterByMinIntensity removes peaks below an absolute intensity
func filterByMinIntensity(peaks []core.Peak, minIntensity float64, keepMz float64) []core.Peak {
	var filtered []core.Peak
	for _, peak := range peaks {
		if peak.Intensity >= minIntensity || isKept(peak, keepMz) {
			filtered = append(filtered, peak)
		}
	}
	return filtered
}

// filterByIntensity removes peaks below the intensity cutoff percentage
func filterByIntensity(peaks []core.Peak, cutoff float64, keepMz float64) []core.Peak {
	if len(peaks) == 0 {
		return peaks
	}

	// Find maximum intensity
	maxIntensity := 0.0
	for _, peak := range peaks {
		if peak.Intensity > maxIntensity {
			maxIntensity = peak.Intensity
		}
	}

	// Calculate threshold
	threshold := (cutoff / 100.0) * maxIntensity

	var filtered []core.Peak
	for _, peak := range peaks {
		if peak.Intensity >= threshold || isKept(peak, keepMz) {
			filtered = append(filtered, peak)
		}
	}
	return filtered
}

// filterTopN keeps only the N most intense peaks, plus the kept m/z
func filterTopN(peaks []core.Peak, n int, keepMz float64) []core.Peak {
	if len(peaks) <= n {
		return peaks
	}

	// Create a copy and sort by intensity descending
	sorted := make([]core.Peak, len(peaks))
	copy(sorted, peaks)

	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Intensity > sorted[j].Intensity
	})

	filtered := sorted[:n:n]
	for _, peak := range sorted[n:] {
		if isKept(peak, keepMz) {
			filtered = append(filtered, peak)
		}
	}
	return filtered
}

// RemoveZeroIntensityPeaks removes peaks with zero or negative intensity
func RemoveZeroIntensityPeaks(cluster *core.PeakCluster) *core.PeakCluster {
	return cluster.Without(func(p core.Peak) bool {
		return p.Intensity <= 0
	})
}
