package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/ChrisMcGann/adductid/pkg/adduct"
	"github.com/ChrisMcGann/adductid/pkg/annotation"
	"github.com/ChrisMcGann/adductid/pkg/core"
	"github.com/ChrisMcGann/adductid/pkg/detect"
	"github.com/ChrisMcGann/adductid/pkg/filter"
	"github.com/ChrisMcGann/adductid/pkg/reader/cluster"
	"github.com/ChrisMcGann/adductid/pkg/writer/sqlite"
)

var (
	// Flags for detect command
	inputFile       string
	outputFile      string
	polarityFlag    string
	toleranceDa     float64
	tolerancePPM    int
	topN            int
	cutoffPercent   float64
	minIntensity    float64
	positiveAddList string
	negativeAddList string
)

var detectCmd = &cobra.Command{
	Use:   "detect",
	Short: "Detect the adduct of every feature in a peak cluster file",
	Long: `Read grouped features from a peak cluster file and detect, for each one, the
adduct that explains the most grouped peaks.

Examples:
  # Detect with default settings and print annotations
  adductid detect --in clusters.txt

  # Use a 5 ppm window, keep the 20 most intense peaks, store results
  adductid detect --in clusters.txt --ppm 5 --top-n 20 --out annotations.db

  # Negative mode with a custom adduct list
  adductid detect --in neg.txt --polarity negative --negative-adducts neg.csv`,
	RunE: runDetect,
}

func init() {
	rootCmd.AddCommand(detectCmd)

	detectCmd.Flags().StringVarP(&inputFile, "in", "i", "", "Input peak cluster file (required)")
	detectCmd.Flags().StringVarP(&outputFile, "out", "o", "", "Output SQLite database (optional)")
	detectCmd.Flags().StringVar(&polarityFlag, "polarity", "", "Polarity for blocks without a Polarity line: positive or negative")
	detectCmd.Flags().Float64Var(&toleranceDa, "tolerance", detect.DefaultTolerance, "m/z tolerance in Da")
	detectCmd.Flags().IntVar(&tolerancePPM, "ppm", 0, "m/z tolerance in ppm of the representative m/z (overrides --tolerance)")
	detectCmd.Flags().IntVar(&topN, "top-n", 0, "Keep only top N most intense peaks (0 = no limit)")
	detectCmd.Flags().Float64Var(&cutoffPercent, "cutoff", 0, "Intensity cutoff as % of base peak (0 = no cutoff)")
	detectCmd.Flags().Float64Var(&minIntensity, "min-intensity", 0, "Absolute minimum peak intensity (0 = no minimum)")
	detectCmd.Flags().StringVar(&positiveAddList, "positive-adducts", "", "CSV file replacing the built-in positive adduct list")
	detectCmd.Flags().StringVar(&negativeAddList, "negative-adducts", "", "CSV file replacing the built-in negative adduct list")

	detectCmd.MarkFlagRequired("in")
}

// applyDetectFlags copies explicitly set flags over the loaded config
func applyDetectFlags(cmd *cobra.Command) error {
	flags := cmd.Flags()
	if flags.Changed("polarity") {
		cfg.Detect.Polarity = polarityFlag
	}
	if flags.Changed("tolerance") {
		cfg.Detect.ToleranceDa = toleranceDa
	}
	if flags.Changed("ppm") {
		cfg.Detect.TolerancePPM = tolerancePPM
	}
	if flags.Changed("top-n") {
		cfg.Filter.TopN = topN
	}
	if flags.Changed("cutoff") {
		cfg.Filter.IntensityCutoff = cutoffPercent
	}
	if flags.Changed("min-intensity") {
		cfg.Filter.MinIntensity = minIntensity
	}
	if flags.Changed("positive-adducts") {
		cfg.Vocabulary.PositiveCSV = positiveAddList
	}
	if flags.Changed("negative-adducts") {
		cfg.Vocabulary.NegativeCSV = negativeAddList
	}
	return cfg.Validate()
}

func runDetect(cmd *cobra.Command, args []string) error {
	if err := applyDetectFlags(cmd); err != nil {
		return fmt.Errorf("invalid settings: %w", err)
	}

	// Validate input file exists
	if _, err := os.Stat(inputFile); os.IsNotExist(err) {
		return fmt.Errorf("input file does not exist: %s", inputFile)
	}

	defaultPolarity, err := cfg.Detect.PolarityMode()
	if err != nil {
		return err
	}

	table, err := loadTable(cfg.Vocabulary)
	if err != nil {
		return err
	}

	inFile, err := os.Open(inputFile)
	if err != nil {
		return fmt.Errorf("failed to open input file: %w", err)
	}
	defer inFile.Close()

	reader := cluster.NewReader(inFile, inputFile, defaultPolarity)

	var writer *sqlite.Writer
	if outputFile != "" {
		writer, err = sqlite.NewWriter(outputFile)
		if err != nil {
			return fmt.Errorf("failed to create output database: %w", err)
		}
		defer writer.Close()
	}

	filterConfig := &filter.Config{
		TopN:            cfg.Filter.TopN,
		IntensityCutoff: cfg.Filter.IntensityCutoff,
		MinIntensity:    cfg.Filter.MinIntensity,
	}
	if err := filterConfig.Validate(); err != nil {
		return fmt.Errorf("invalid filter settings: %w", err)
	}

	logger.Info("detecting adducts",
		slog.String("input", inputFile),
		slog.String("default_polarity", defaultPolarity.String()),
		slog.Float64("tolerance_da", cfg.Detect.ToleranceDa),
		slog.Int("tolerance_ppm", cfg.Detect.TolerancePPM),
	)

	out := cmd.OutOrStdout()
	count := 0
	skipped := 0

	for reader.Next() {
		f := reader.Feature()

		// Validate feature
		if err := f.Validate(); err != nil {
			logger.Warn("invalid feature", slog.String("feature", f.Name()),
				slog.Int("line", f.SourceLine), slog.Any("error", err))
			skipped++
			continue
		}

		a, err := annotate(table, filterConfig, f)
		if err != nil {
			logger.Warn("detection failed", slog.String("feature", f.Name()),
				slog.Int("line", f.SourceLine), slog.Any("error", err))
			skipped++
			continue
		}

		fmt.Fprintln(out, a.String())

		if writer != nil {
			if err := writer.WriteAnnotation(a); err != nil {
				return fmt.Errorf("failed to write annotation %s: %w", f.Name(), err)
			}
		}

		count++
		if count%1000 == 0 {
			logger.Info("progress", slog.Int("annotated", count))
		}
	}

	if err := reader.Err(); err != nil {
		return fmt.Errorf("error reading input file: %w", err)
	}

	if writer != nil {
		if err := writer.Finalize(cfg.Detect.ToleranceDa); err != nil {
			return fmt.Errorf("failed to finalize database: %w", err)
		}
	}

	fmt.Fprintf(out, "\nDetection complete!\n")
	fmt.Fprintf(out, "Annotated: %d features\n", count)
	if skipped > 0 {
		fmt.Fprintf(out, "Skipped: %d features (see warnings)\n", skipped)
	}
	if outputFile != "" {
		fmt.Fprintf(out, "Output: %s\n", outputFile)
	}

	return nil
}

// annotate filters the feature's peaks and runs detection with the tolerance
// that applies to it
func annotate(table *adduct.Table, fc *filter.Config, f *core.Feature) (*annotation.Annotation, error) {
	tolerance := cfg.Detect.ToleranceDa
	if cfg.Detect.TolerancePPM > 0 {
		tolerance = core.PPMWindow(f.MZ, cfg.Detect.TolerancePPM)
	}

	d, err := detect.New(table, detect.WithTolerance(tolerance), detect.WithLogger(logger))
	if err != nil {
		return nil, err
	}

	peaks := filter.RemoveZeroIntensityPeaks(f.Peaks)
	peaks = fc.Apply(peaks, f.MZ)

	return annotation.New(d, f.Lipid, f.MZ, f.RepresentativeIntensity(), f.RetentionTime,
		f.Polarity, peaks.Peaks()...)
}
