// Package cluster provides a streaming reader for grouped peak cluster files.
//
// A file holds blocks separated by blank lines:
//
//	Name: PC 34:1
//	Formula: C42H82NO8P
//	Comment: CompoundID=12 LipidType=PC Carbons=34 DoubleBonds=1
//	MZ: 760.5851
//	RT: 5.21
//	Intensity: 1200000
//	Polarity: positive
//	Num peaks: 2
//	782.5670	400000
//	1520.1629	50000
//
// Lines starting with "#" are ignored.
package cluster

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/ChrisMcGann/adductid/pkg/core"
)

// Reader provides streaming access to peak cluster files
type Reader struct {
	scanner         *bufio.Scanner
	source          string
	defaultPolarity core.Polarity
	lineNum         int
	current         *core.Feature
	err             error
}

// NewReader creates a new cluster reader. Blocks without a Polarity line get
// defaultPolarity; source is recorded on every feature.
func NewReader(r io.Reader, source string, defaultPolarity core.Polarity) *Reader {
	return &Reader{
		scanner:         bufio.NewScanner(r),
		source:          source,
		defaultPolarity: defaultPolarity,
	}
}

// Next advances to the next feature. Returns false when no more features or error.
func (r *Reader) Next() bool {
	r.current = nil

	f, err := r.readFeature()
	if err != nil {
		if err != io.EOF {
			r.err = err
		}
		return false
	}

	r.current = f
	return true
}

// Feature returns the current feature
func (r *Reader) Feature() *core.Feature {
	return r.current
}

// Err returns any error encountered during reading
func (r *Reader) Err() error {
	return r.err
}

// readFeature reads a single block from the file
func (r *Reader) readFeature() (*core.Feature, error) {
	f := &core.Feature{
		Polarity:   r.defaultPolarity,
		SourceFile: r.source,
	}

	var peaks []core.Peak
	numPeaks := -1
	started := false

	for r.scanner.Scan() {
		r.lineNum++
		line := strings.TrimSpace(r.scanner.Text())

		if strings.HasPrefix(line, "#") {
			continue
		}
		if line == "" {
			if !started {
				continue
			}
			if numPeaks < 0 {
				return nil, fmt.Errorf("line %d: block for '%s' ended before 'Num peaks'", r.lineNum, f.Lipid.Name)
			}
			return nil, fmt.Errorf("line %d: expected %d peaks for '%s', got %d", r.lineNum, numPeaks, f.Lipid.Name, len(peaks))
		}

		if !started {
			started = true
			f.SourceLine = r.lineNum
		}

		if numPeaks < 0 {
			if err := r.parseHeader(f, line, &numPeaks); err != nil {
				return nil, fmt.Errorf("line %d: %w", r.lineNum, err)
			}
		} else {
			peak, err := parsePeak(line)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", r.lineNum, err)
			}
			peaks = append(peaks, peak)
		}

		// Block is complete once all declared peaks are read
		if numPeaks >= 0 && len(peaks) == numPeaks {
			f.Peaks = core.NewPeakCluster(peaks...)
			return f, nil
		}
	}

	if err := r.scanner.Err(); err != nil {
		return nil, err
	}

	if started {
		return nil, fmt.Errorf("line %d: unexpected end of file in block for '%s'", r.lineNum, f.Lipid.Name)
	}

	return nil, io.EOF
}

// parseHeader handles one "Key: value" line
func (r *Reader) parseHeader(f *core.Feature, line string, numPeaks *int) error {
	key, value, ok := strings.Cut(line, ":")
	if !ok {
		return fmt.Errorf("invalid header line '%s', expected 'Key: value'", line)
	}
	key = strings.TrimSpace(key)
	value = strings.TrimSpace(value)

	var err error
	switch key {
	case "Name":
		f.Lipid.Name = value
	case "Formula":
		f.Lipid.Formula = value
	case "Comment":
		r.parseComment(f, value)
	case "MZ", "PrecursorMZ":
		f.MZ, err = parseFloat("m/z", value)
	case "RT", "RetentionTime":
		f.RetentionTime, err = parseFloat("retention time", value)
	case "Intensity":
		f.Intensity, err = parseFloat("intensity", value)
	case "Polarity":
		f.Polarity, err = core.ParsePolarity(value)
	case "Num peaks":
		n, convErr := strconv.Atoi(value)
		if convErr != nil || n < 0 {
			return fmt.Errorf("invalid num peaks '%s'", value)
		}
		*numPeaks = n
	default:
		// Unknown headers are tolerated
	}
	return err
}

// parseComment extracts lipid metadata from the Comment field
func (r *Reader) parseComment(f *core.Feature, comment string) {
	// Comment format: key=value key=value...
	// Example: CompoundID=12 LipidType=PC Carbons=34 DoubleBonds=1
	for _, field := range strings.Fields(comment) {
		key, value, ok := strings.Cut(field, "=")
		if !ok {
			continue
		}

		switch key {
		case "CompoundID":
			if id, err := strconv.Atoi(value); err == nil {
				f.Lipid.CompoundID = id
			}
		case "LipidType":
			f.Lipid.LipidType = value
		case "Carbons":
			if n, err := strconv.Atoi(value); err == nil {
				f.Lipid.CarbonCount = n
			}
		case "DoubleBonds":
			if n, err := strconv.Atoi(value); err == nil {
				f.Lipid.DoubleBondsCount = n
			}
		}
	}
}

func parseFloat(field, value string) (float64, error) {
	v, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value '%s': %w", field, value, err)
	}
	return v, nil
}

// parsePeak parses a single peak line (format: "mz\tintensity")
func parsePeak(line string) (core.Peak, error) {
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return core.Peak{}, fmt.Errorf("invalid peak format, expected at least 2 fields")
	}

	mz, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return core.Peak{}, fmt.Errorf("invalid m/z value: %w", err)
	}

	intensity, err := strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return core.Peak{}, fmt.Errorf("invalid intensity value: %w", err)
	}

	return core.Peak{
		MZ:        mz,
		Intensity: intensity,
	}, nil
}
