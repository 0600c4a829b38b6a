package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/ChrisMcGann/adductid/pkg/core"
	"github.com/ChrisMcGann/adductid/pkg/reader/cluster"
)

var validateCmd = &cobra.Command{
	Use:   "validate [file]",
	Short: "Validate a peak cluster file and the configured adduct lists",
	Long:  `Validate that a peak cluster file is properly formatted, that every feature carries valid data, and that the configured adduct lists load.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runValidate,
}

var summarizeCmd = &cobra.Command{
	Use:   "summarize [file]",
	Short: "Summarize peak cluster file contents",
	Long:  `Print summary statistics about a peak cluster file including feature count, polarity split, m/z range and peaks per feature.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runSummarize,
}

func init() {
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(summarizeCmd)
}

// eachFeature streams every feature of path to fn
func eachFeature(path string, fn func(*core.Feature)) error {
	polarity, err := cfg.Detect.PolarityMode()
	if err != nil {
		return err
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open input file: %w", err)
	}
	defer f.Close()

	reader := cluster.NewReader(f, path, polarity)
	for reader.Next() {
		fn(reader.Feature())
	}
	if err := reader.Err(); err != nil {
		return fmt.Errorf("error reading input file: %w", err)
	}
	return nil
}

func runValidate(cmd *cobra.Command, args []string) error {
	if _, err := loadTable(cfg.Vocabulary); err != nil {
		return err
	}

	total, invalid := 0, 0
	err := eachFeature(args[0], func(f *core.Feature) {
		total++
		if err := f.Validate(); err != nil {
			invalid++
			logger.Warn("invalid feature", slog.String("feature", f.Name()),
				slog.Int("line", f.SourceLine), slog.Any("error", err))
		}
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Features: %d, invalid: %d\n", total, invalid)
	if invalid > 0 {
		return fmt.Errorf("%d of %d features are invalid", invalid, total)
	}
	return nil
}

// clusterSummary holds the statistics printed by summarize
type clusterSummary struct {
	Features      int
	Positive      int
	Negative      int
	MinMZ, MaxMZ  float64
	PeaksMean     float64
	PeaksStdDev   float64
	IntensityMean float64
}

func summarize(features []*core.Feature) clusterSummary {
	s := clusterSummary{Features: len(features)}
	if len(features) == 0 {
		return s
	}

	mzs := make([]float64, len(features))
	peakCounts := make([]float64, len(features))
	intensities := make([]float64, len(features))
	for i, f := range features {
		mzs[i] = f.MZ
		peakCounts[i] = float64(f.Peaks.Len())
		intensities[i] = f.RepresentativeIntensity()
		if f.Polarity == core.Negative {
			s.Negative++
		} else {
			s.Positive++
		}
	}

	s.MinMZ = floats.Min(mzs)
	s.MaxMZ = floats.Max(mzs)
	s.PeaksMean, s.PeaksStdDev = stat.MeanStdDev(peakCounts, nil)
	s.IntensityMean = stat.Mean(intensities, nil)
	return s
}

func (s clusterSummary) write(w io.Writer) {
	fmt.Fprintf(w, "Features: %d (positive %d, negative %d)\n", s.Features, s.Positive, s.Negative)
	if s.Features == 0 {
		return
	}
	fmt.Fprintf(w, "m/z range: %.4f - %.4f\n", s.MinMZ, s.MaxMZ)
	fmt.Fprintf(w, "Peaks per feature: %.2f ± %.2f\n", s.PeaksMean, s.PeaksStdDev)
	fmt.Fprintf(w, "Mean representative intensity: %.1f\n", s.IntensityMean)
}

func runSummarize(cmd *cobra.Command, args []string) error {
	var features []*core.Feature
	if err := eachFeature(args[0], func(f *core.Feature) {
		features = append(features, f)
	}); err != nil {
		return err
	}

	summarize(features).write(cmd.OutOrStdout())
	return nil
}
