// Package cmd provides CLI command implementations
package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/ChrisMcGann/adductid/internal/config"
	"github.com/ChrisMcGann/adductid/internal/logging"
	"github.com/ChrisMcGann/adductid/pkg/adduct"
	"github.com/ChrisMcGann/adductid/pkg/core"
)

var (
	// Global flags
	configPath string
	logLevel   string
	logFormat  string

	// Loaded in PersistentPreRunE
	cfg    *config.Config
	logger *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "adductid",
	Short: "adductid - Adduct detection for grouped LC-MS features",
	Long: `adductid converts between m/z and neutral monoisotopic mass for adducts
such as [M+H]+, [2M+H]+ or [M+2H]2+, and detects which adduct best explains a
cluster of co-eluting peaks.

Supports:
- Strict adduct notation parsing ([<n>M<groups>]<z><sign>)
- Built-in or CSV-supplied positive and negative adduct lists
- Peak cluster filtering (top-N, intensity cutoff)
- SQLite output of annotations`,
	Version:       "1.0.0",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return loadSettings(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to YAML config file (default ./adductid.yaml if present)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "Log format: text or json")
}

// loadSettings reads the config file and environment, applies global flag
// overrides and installs the logger.
func loadSettings(cmd *cobra.Command) error {
	var err error
	cfg, err = config.Load(configPath)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.Log.Level = logLevel
	}
	if flags.Changed("log-format") {
		cfg.Log.Format = logFormat
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid settings: %w", err)
	}

	logger = logging.New(cfg.Log, cmd.ErrOrStderr())
	return nil
}

// loadTable returns the adduct table, replacing built-in lists with the
// configured CSV files.
func loadTable(vc config.VocabularyConfig) (*adduct.Table, error) {
	def := adduct.DefaultTable()
	positive, negative := def.Vocabulary(core.Positive), def.Vocabulary(core.Negative)

	if vc.PositiveCSV != "" {
		v, err := readVocabularyFile(vc.PositiveCSV, core.Positive)
		if err != nil {
			return nil, err
		}
		positive = v
		logger.Info("loaded adduct list", slog.String("polarity", "positive"),
			slog.String("path", vc.PositiveCSV), slog.Int("adducts", v.Len()))
	}
	if vc.NegativeCSV != "" {
		v, err := readVocabularyFile(vc.NegativeCSV, core.Negative)
		if err != nil {
			return nil, err
		}
		negative = v
		logger.Info("loaded adduct list", slog.String("polarity", "negative"),
			slog.String("path", vc.NegativeCSV), slog.Int("adducts", v.Len()))
	}

	return adduct.NewTable(positive, negative), nil
}

func readVocabularyFile(path string, p core.Polarity) (*adduct.Vocabulary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open adduct list: %w", err)
	}
	defer f.Close()

	v, err := adduct.ReadVocabularyCSV(f, p)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}
	return v, nil
}
