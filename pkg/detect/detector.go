// Package detect infers which adduct best explains a cluster of co-eluting
// peaks.
//
// For every candidate adduct X of the polarity's vocabulary the detector
// derives the neutral mass from the representative m/z, projects that mass onto
// every adduct Y and counts how many peer peaks fall within the tolerance of
// some projection. The candidate explaining the most peaks wins; ties go to the
// earliest declared candidate.
package detect

import (
	"fmt"
	"log/slog"
	"math"

	"gonum.org/v1/gonum/floats/scalar"

	"github.com/ChrisMcGann/adductid/pkg/adduct"
	"github.com/ChrisMcGann/adductid/pkg/core"
)

// DefaultTolerance is the m/z window, in Da, used when none is configured.
const DefaultTolerance = 0.01

// Peaks closer than this to the representative m/z are the representative
// itself and are not scored.
const selfMzEpsilon = 1e-8

// Result is the outcome of one detection.
type Result struct {
	Adduct      string  // winning label
	Explained   int     // peer peaks explained by the winner
	NeutralMass float64 // neutral mass under the winning hypothesis
}

// Detector scores adduct hypotheses. It holds no mutable state and is safe
// for concurrent use.
type Detector struct {
	table     *adduct.Table
	tolerance float64
	log       *slog.Logger
}

// Option configures a Detector.
type Option func(*Detector)

// WithTolerance sets the m/z tolerance in Da.
func WithTolerance(da float64) Option {
	return func(d *Detector) { d.tolerance = da }
}

// WithLogger sets the logger used for per-candidate debug output.
func WithLogger(log *slog.Logger) Option {
	return func(d *Detector) { d.log = log }
}

// New creates a Detector over table. A nil table selects adduct.DefaultTable.
func New(table *adduct.Table, opts ...Option) (*Detector, error) {
	if table == nil {
		table = adduct.DefaultTable()
	}
	d := &Detector{
		table:     table,
		tolerance: DefaultTolerance,
		log:       slog.Default(),
	}
	for _, opt := range opts {
		opt(d)
	}

	if math.IsNaN(d.tolerance) || math.IsInf(d.tolerance, 0) || d.tolerance < 0 {
		return nil, fmt.Errorf("tolerance must be a finite, non-negative number of Da (got %v)", d.tolerance)
	}
	return d, nil
}

// Tolerance returns the configured tolerance in Da.
func (d *Detector) Tolerance() float64 {
	return d.tolerance
}

// Table returns the adduct table the detector draws candidates from.
func (d *Detector) Table() *adduct.Table {
	return d.table
}

// Detect picks the adduct of the polarity's vocabulary that explains the most
// peaks of cluster, given that the peak at representativeMz is the ion being
// annotated. With no peer peaks the first declared adduct is returned.
func (d *Detector) Detect(representativeMz float64, polarity core.Polarity, cluster *core.PeakCluster) (Result, error) {
	vocab := d.table.Vocabulary(polarity)
	if vocab.Len() == 0 {
		return Result{}, fmt.Errorf("no %s adducts to choose from", polarity)
	}

	candidates, err := vocab.Specs()
	if err != nil {
		return Result{}, fmt.Errorf("resolve %s adducts: %w", polarity, err)
	}

	var peers []core.Peak
	cluster.Each(func(p core.Peak) {
		if math.Abs(p.MZ-representativeMz) < selfMzEpsilon {
			return
		}
		peers = append(peers, p)
	})

	best := Result{
		Adduct:      candidates[0].Label,
		NeutralMass: candidates[0].MassFromMz(representativeMz),
	}
	bestScore := -1

	for _, x := range candidates {
		neutralMass := x.MassFromMz(representativeMz)
		score := d.explained(neutralMass, peers, candidates)

		d.log.Debug("adduct hypothesis scored",
			slog.String("adduct", x.Label),
			slog.Float64("neutral_mass", neutralMass),
			slog.Int("explained", score),
		)

		if score > bestScore {
			bestScore = score
			best = Result{Adduct: x.Label, Explained: score, NeutralMass: neutralMass}
		}
	}

	return best, nil
}

// explained counts the peers that some adduct of candidates places within
// tolerance of its projection of neutralMass. Each peer counts at most once.
func (d *Detector) explained(neutralMass float64, peers []core.Peak, candidates []adduct.Spec) int {
	score := 0
	for _, p := range peers {
		for _, y := range candidates {
			if scalar.EqualWithinAbs(y.MzFromMass(neutralMass), p.MZ, d.tolerance) {
				score++
				break
			}
		}
	}
	return score
}

// Detect runs a one-off detection against adduct.DefaultTable and returns the
// winning label.
func Detect(representativeMz float64, polarity core.Polarity, cluster *core.PeakCluster, toleranceDa float64) (string, error) {
	d, err := New(nil, WithTolerance(toleranceDa))
	if err != nil {
		return "", err
	}
	res, err := d.Detect(representativeMz, polarity, cluster)
	if err != nil {
		return "", err
	}
	return res.Adduct, nil
}
