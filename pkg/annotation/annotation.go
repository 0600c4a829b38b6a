// Package annotation records a lipid assignment for a grouped peak and the
// adduct detected for it.
package annotation

import (
	"fmt"

	"github.com/ChrisMcGann/adductid/pkg/core"
	"github.com/ChrisMcGann/adductid/pkg/detect"
)

// Annotation is a lipid hypothesis for one observed feature.
type Annotation struct {
	Lipid         core.Lipid
	MZ            float64
	Intensity     float64 // intensity of the most abundant grouped peak
	RetentionTime float64 // minutes
	Polarity      core.Polarity

	groupedPeaks  *core.PeakCluster
	detection     detect.Result
	score         int
	scoresApplied int
}

// New builds an annotation and detects its adduct with d.
func New(d *detect.Detector, lipid core.Lipid, mz, intensity, rt float64,
	polarity core.Polarity, grouped ...core.Peak) (*Annotation, error) {
	a := &Annotation{
		Lipid:         lipid,
		MZ:            mz,
		Intensity:     intensity,
		RetentionTime: rt,
		Polarity:      polarity,
		groupedPeaks:  core.NewPeakCluster(grouped...),
	}

	res, err := d.Detect(mz, polarity, a.groupedPeaks)
	if err != nil {
		return nil, fmt.Errorf("detect adduct for %s at m/z %.4f: %w", lipid.Name, mz, err)
	}
	a.detection = res

	return a, nil
}

// Adduct returns the detected (or explicitly set) adduct label.
func (a *Annotation) Adduct() string {
	return a.detection.Adduct
}

// SetAdduct overrides the detected adduct.
func (a *Annotation) SetAdduct(label string) {
	a.detection.Adduct = label
}

// Explained returns how many grouped peaks the detected adduct explained.
func (a *Annotation) Explained() int {
	return a.detection.Explained
}

// NeutralMass returns the neutral mass under the detected adduct.
func (a *Annotation) NeutralMass() float64 {
	return a.detection.NeutralMass
}

// GroupedPeaks returns the peaks grouped with this feature.
func (a *Annotation) GroupedPeaks() *core.PeakCluster {
	return a.groupedPeaks
}

func (a *Annotation) Score() int {
	return a.score
}

func (a *Annotation) SetScore(score int) {
	a.score = score
}

// AddScore applies one scoring rule outcome.
func (a *Annotation) AddScore(delta int) {
	a.score += delta
	a.scoresApplied++
}

// NormalizedScore is the mean of the applied rule outcomes, 0 if no rule has
// been applied.
func (a *Annotation) NormalizedScore() float64 {
	if a.scoresApplied == 0 {
		return 0
	}
	return float64(a.score) / float64(a.scoresApplied)
}

// Equal reports whether both annotations assign the same lipid to the same
// feature (m/z and retention time).
func (a *Annotation) Equal(b *Annotation) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	return a.MZ == b.MZ && a.RetentionTime == b.RetentionTime && a.Lipid == b.Lipid
}

func (a *Annotation) String() string {
	return fmt.Sprintf("Annotation(%s, mz=%.4f, RT=%.2f, adduct=%s, intensity=%.1f, score=%d)",
		a.Lipid.Name, a.MZ, a.RetentionTime, a.Adduct(), a.Intensity, a.score)
}
