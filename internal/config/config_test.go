package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ChrisMcGann/adductid/pkg/core"
)

func writeYAML(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "adductid.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write yaml: %v", err)
	}
	return path
}

const validYAML = `
detect:
  tolerance_da: 0.02
  polarity: "negative"

filter:
  top_n: 25
  intensity_cutoff: 1.5

vocabulary:
  positive_csv: "pos.csv"

log:
  level: "debug"
  format: "json"
`

func TestLoad_ValidYAML(t *testing.T) {
	path := writeYAML(t, t.TempDir(), validYAML)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Detect.ToleranceDa != 0.02 {
		t.Errorf("detect.tolerance_da = %v, want 0.02", cfg.Detect.ToleranceDa)
	}
	if p, _ := cfg.Detect.PolarityMode(); p != core.Negative {
		t.Errorf("detect.polarity = %q, want negative", cfg.Detect.Polarity)
	}
	if cfg.Filter.TopN != 25 {
		t.Errorf("filter.top_n = %d, want 25", cfg.Filter.TopN)
	}
	if cfg.Filter.IntensityCutoff != 1.5 {
		t.Errorf("filter.intensity_cutoff = %v, want 1.5", cfg.Filter.IntensityCutoff)
	}
	if cfg.Vocabulary.PositiveCSV != "pos.csv" || cfg.Vocabulary.NegativeCSV != "" {
		t.Errorf("vocabulary = %+v", cfg.Vocabulary)
	}
	if cfg.Log.Level != "debug" || cfg.Log.Format != "json" {
		t.Errorf("log = %+v", cfg.Log)
	}
}

func TestLoad_Defaults(t *testing.T) {
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })
	t.Setenv("ADDUCTID_CONFIG", "")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Detect.ToleranceDa != 0.01 {
		t.Errorf("detect.tolerance_da = %v, want 0.01", cfg.Detect.ToleranceDa)
	}
	if cfg.Detect.TolerancePPM != 0 {
		t.Errorf("detect.tolerance_ppm = %d, want 0", cfg.Detect.TolerancePPM)
	}
	if cfg.Detect.Polarity != "positive" {
		t.Errorf("detect.polarity = %q, want positive", cfg.Detect.Polarity)
	}
	if cfg.Log.Level != "info" || cfg.Log.Format != "text" {
		t.Errorf("log = %+v, want info/text", cfg.Log)
	}
}

func TestLoad_EnvOverridesYAML(t *testing.T) {
	path := writeYAML(t, t.TempDir(), validYAML)
	t.Setenv("ADDUCTID_TOLERANCE_DA", "0.005")
	t.Setenv("ADDUCTID_TOP_N", "3")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Detect.ToleranceDa != 0.005 {
		t.Errorf("detect.tolerance_da = %v, want 0.005", cfg.Detect.ToleranceDa)
	}
	if cfg.Filter.TopN != 3 {
		t.Errorf("filter.top_n = %d, want 3", cfg.Filter.TopN)
	}
}

func TestLoad_ConfigPathFromEnv(t *testing.T) {
	path := writeYAML(t, t.TempDir(), validYAML)
	t.Setenv("ADDUCTID_CONFIG", path)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Filter.TopN != 25 {
		t.Errorf("filter.top_n = %d, want 25", cfg.Filter.TopN)
	}
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Fatal("expected error for missing explicit config file")
	}
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantMsg string
	}{
		{"negative tolerance", "detect:\n  tolerance_da: -1\n", "tolerance_da"},
		{"bad polarity", "detect:\n  polarity: sideways\n", "invalid polarity"},
		{"cutoff too high", "filter:\n  intensity_cutoff: 120\n", "intensity_cutoff"},
		{"negative top_n", "filter:\n  top_n: -2\n", "top_n"},
		{"bad log format", "log:\n  format: xml\n", "format"},
		{"bad log level", "log:\n  level: loud\n", "level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeYAML(t, t.TempDir(), tt.yaml)
			_, err := Load(path)
			if err == nil || !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("Load() error = %v, want it to contain %q", err, tt.wantMsg)
			}
		})
	}
}
