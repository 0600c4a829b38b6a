package core

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// Peak represents a single m/z, intensity pair.
type Peak struct {
	MZ        float64
	Intensity float64
}

// ComparePeaks orders peaks by m/z, then by intensity. It returns -1, 0 or +1.
func ComparePeaks(a, b Peak) int {
	switch {
	case a.MZ < b.MZ:
		return -1
	case a.MZ > b.MZ:
		return 1
	case a.Intensity < b.Intensity:
		return -1
	case a.Intensity > b.Intensity:
		return 1
	}
	return 0
}

func (p Peak) String() string {
	return fmt.Sprintf("%.4f@%.1f", p.MZ, p.Intensity)
}

// ValidationError represents an error found during peak or cluster validation.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error in %s: %s", e.Field, e.Message)
}

// PeakCluster is an ordered set of peaks believed to come from the same
// neutral species. Peaks are kept sorted by ComparePeaks and exact duplicates
// are stored once. A PeakCluster is never modified after construction.
type PeakCluster struct {
	peaks []Peak
}

// NewPeakCluster builds a cluster from peaks in any order.
func NewPeakCluster(peaks ...Peak) *PeakCluster {
	sorted := make([]Peak, len(peaks))
	copy(sorted, peaks)

	sort.Slice(sorted, func(i, j int) bool {
		return ComparePeaks(sorted[i], sorted[j]) < 0
	})

	// Drop exact duplicates
	unique := sorted[:0]
	for i, peak := range sorted {
		if i > 0 && ComparePeaks(peak, unique[len(unique)-1]) == 0 {
			continue
		}
		unique = append(unique, peak)
	}

	return &PeakCluster{peaks: unique}
}

// Len returns the number of distinct peaks in the cluster.
func (c *PeakCluster) Len() int {
	if c == nil {
		return 0
	}
	return len(c.peaks)
}

// Peaks returns a copy of the peaks in cluster order.
func (c *PeakCluster) Peaks() []Peak {
	if c == nil {
		return nil
	}
	out := make([]Peak, len(c.peaks))
	copy(out, c.peaks)
	return out
}

// Each calls fn for every peak in cluster order without copying.
func (c *PeakCluster) Each(fn func(Peak)) {
	if c == nil {
		return
	}
	for _, peak := range c.peaks {
		fn(peak)
	}
}

// Contains reports whether an identical peak is part of the cluster.
func (c *PeakCluster) Contains(p Peak) bool {
	if c == nil {
		return false
	}
	i := sort.Search(len(c.peaks), func(i int) bool {
		return ComparePeaks(c.peaks[i], p) >= 0
	})
	return i < len(c.peaks) && ComparePeaks(c.peaks[i], p) == 0
}

// Without returns a new cluster with every peak for which drop returns true
// removed.
func (c *PeakCluster) Without(drop func(Peak) bool) *PeakCluster {
	var kept []Peak
	c.Each(func(p Peak) {
		if !drop(p) {
			kept = append(kept, p)
		}
	})
	return &PeakCluster{peaks: kept}
}

// MostIntense returns the peak with the highest intensity. The second return
// value is false for an empty cluster.
func (c *PeakCluster) MostIntense() (Peak, bool) {
	var best Peak
	found := false
	c.Each(func(p Peak) {
		if !found || p.Intensity > best.Intensity {
			best = p
			found = true
		}
	})
	return best, found
}

// Validate checks that every peak has a finite, positive m/z and a finite,
// non-negative intensity.
func (c *PeakCluster) Validate() error {
	var errs []string

	for i, peak := range c.Peaks() {
		if math.IsNaN(peak.MZ) || math.IsInf(peak.MZ, 0) {
			errs = append(errs, fmt.Sprintf("peak %d has invalid m/z", i))
		} else if peak.MZ <= 0 {
			errs = append(errs, fmt.Sprintf("peak %d m/z must be positive", i))
		}
		if math.IsNaN(peak.Intensity) || math.IsInf(peak.Intensity, 0) {
			errs = append(errs, fmt.Sprintf("peak %d has invalid intensity", i))
		} else if peak.Intensity < 0 {
			errs = append(errs, fmt.Sprintf("peak %d intensity must be non-negative", i))
		}
	}

	if len(errs) > 0 {
		return &ValidationError{
			Field:   "PeakCluster",
			Message: strings.Join(errs, "; "),
		}
	}

	return nil
}
