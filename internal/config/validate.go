package config

import (
	"fmt"
	"math"
	"strings"

	"github.com/ChrisMcGann/adductid/pkg/core"
)

// Validate performs business-rule validation on the loaded configuration.
// Load calls it automatically; call it again after overriding fields.
func (c *Config) Validate() error {
	if err := c.Detect.validate(); err != nil {
		return fmt.Errorf("detect: %w", err)
	}
	if err := c.Filter.validate(); err != nil {
		return fmt.Errorf("filter: %w", err)
	}
	if err := c.Log.validate(); err != nil {
		return fmt.Errorf("log: %w", err)
	}
	return nil
}

// PolarityMode returns the parsed default polarity.
func (d DetectConfig) PolarityMode() (core.Polarity, error) {
	return core.ParsePolarity(d.Polarity)
}

func (d *DetectConfig) validate() error {
	if math.IsNaN(d.ToleranceDa) || math.IsInf(d.ToleranceDa, 0) || d.ToleranceDa < 0 {
		return fmt.Errorf("tolerance_da must be >= 0 (got %v)", d.ToleranceDa)
	}
	if d.TolerancePPM < 0 {
		return fmt.Errorf("tolerance_ppm must be >= 0 (got %d)", d.TolerancePPM)
	}
	if _, err := d.PolarityMode(); err != nil {
		return err
	}
	return nil
}

func (f *FilterConfig) validate() error {
	if f.TopN < 0 {
		return fmt.Errorf("top_n must be >= 0 (got %d)", f.TopN)
	}
	if f.IntensityCutoff < 0 || f.IntensityCutoff > 100 {
		return fmt.Errorf("intensity_cutoff must be between 0 and 100 (got %v)", f.IntensityCutoff)
	}
	if f.MinIntensity < 0 {
		return fmt.Errorf("min_intensity must be >= 0 (got %v)", f.MinIntensity)
	}
	return nil
}

func (l *LogConfig) validate() error {
	switch strings.ToLower(strings.TrimSpace(l.Format)) {
	case "text", "json":
	default:
		return fmt.Errorf("format must be text or json (got %q)", l.Format)
	}
	switch strings.ToLower(strings.TrimSpace(l.Level)) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("level must be one of debug, info, warn, error (got %q)", l.Level)
	}
	return nil
}
