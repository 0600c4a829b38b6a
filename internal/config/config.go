// Package config loads adductid settings from YAML and the environment.
package config

// Config is the root application configuration.
type Config struct {
	Detect     DetectConfig     `yaml:"detect"`
	Filter     FilterConfig     `yaml:"filter"`
	Vocabulary VocabularyConfig `yaml:"vocabulary"`
	Log        LogConfig        `yaml:"log"`
}

// DetectConfig holds adduct detection settings.
type DetectConfig struct {
	ToleranceDa float64 `yaml:"tolerance_da" env:"ADDUCTID_TOLERANCE_DA" env-default:"0.01"`
	// TolerancePPM, when > 0, replaces ToleranceDa with a window computed from
	// each feature's representative m/z.
	TolerancePPM int    `yaml:"tolerance_ppm" env:"ADDUCTID_TOLERANCE_PPM" env-default:"0"`
	Polarity     string `yaml:"polarity"      env:"ADDUCTID_POLARITY"      env-default:"positive"`
}

// FilterConfig holds peak cluster filter settings.
type FilterConfig struct {
	TopN            int     `yaml:"top_n"            env:"ADDUCTID_TOP_N"            env-default:"0"`
	IntensityCutoff float64 `yaml:"intensity_cutoff" env:"ADDUCTID_INTENSITY_CUTOFF" env-default:"0"`
	MinIntensity    float64 `yaml:"min_intensity"    env:"ADDUCTID_MIN_INTENSITY"    env-default:"0"`
}

// VocabularyConfig points at optional CSV adduct lists replacing the built-in
// ones.
type VocabularyConfig struct {
	PositiveCSV string `yaml:"positive_csv" env:"ADDUCTID_POSITIVE_ADDUCTS"`
	NegativeCSV string `yaml:"negative_csv" env:"ADDUCTID_NEGATIVE_ADDUCTS"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"ADDUCTID_LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"ADDUCTID_LOG_FORMAT" env-default:"text"`
}
