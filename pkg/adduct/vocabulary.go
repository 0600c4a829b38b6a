package adduct

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/ChrisMcGann/adductid/pkg/core"
)

// Entry is one adduct label and its mass shift.
type Entry struct {
	Label string
	Shift float64
}

// Vocabulary is the ordered list of candidate adducts for one polarity.
// Declaration order is significant: the first entry is the default adduct and
// earlier entries win ties during detection.
type Vocabulary struct {
	polarity core.Polarity
	entries  []Entry
	index    map[string]int // label -> position in entries
}

// NewVocabulary builds a vocabulary, rejecting labels that do not parse or
// that appear twice.
func NewVocabulary(polarity core.Polarity, entries ...Entry) (*Vocabulary, error) {
	v := &Vocabulary{
		polarity: polarity,
		entries:  make([]Entry, 0, len(entries)),
		index:    make(map[string]int, len(entries)),
	}

	for _, e := range entries {
		if _, err := Parse(e.Label); err != nil {
			return nil, err
		}
		if _, dup := v.index[e.Label]; dup {
			return nil, fmt.Errorf("adduct '%s' declared more than once", e.Label)
		}
		v.index[e.Label] = len(v.entries)
		v.entries = append(v.entries, e)
	}

	return v, nil
}

// ReadVocabularyCSV loads a vocabulary from CSV (format: adduct,massshift).
// The first line is a header and is skipped; entries keep file order. A list
// without entries is rejected.
func ReadVocabularyCSV(r io.Reader, polarity core.Polarity) (*Vocabulary, error) {
	scanner := bufio.NewScanner(r)

	// Skip header line
	scanner.Scan()

	var entries []Entry
	lineNum := 1
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.Split(line, ",")
		if len(parts) < 2 {
			return nil, fmt.Errorf("line %d: invalid format, expected at least 2 comma-separated fields", lineNum)
		}

		label := strings.TrimSpace(parts[0])
		shiftStr := strings.TrimSpace(parts[1])

		shift, err := strconv.ParseFloat(shiftStr, 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid mass shift '%s': %w", lineNum, shiftStr, err)
		}

		entries = append(entries, Entry{Label: label, Shift: shift})
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading CSV: %w", err)
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("%s adduct list has no entries", polarity)
	}

	v, err := NewVocabulary(polarity, entries...)
	if err != nil {
		return nil, fmt.Errorf("invalid %s adduct list: %w", polarity, err)
	}
	return v, nil
}

// Polarity returns the ionization mode the vocabulary serves.
func (v *Vocabulary) Polarity() core.Polarity {
	return v.polarity
}

// Len returns the number of adducts.
func (v *Vocabulary) Len() int {
	return len(v.entries)
}

// First returns the first declared label, or "" for an empty vocabulary.
func (v *Vocabulary) First() string {
	if len(v.entries) == 0 {
		return ""
	}
	return v.entries[0].Label
}

// Labels returns the labels in declaration order.
func (v *Vocabulary) Labels() []string {
	labels := make([]string, len(v.entries))
	for i, e := range v.entries {
		labels[i] = e.Label
	}
	return labels
}

// Entries returns a copy of the entries in declaration order.
func (v *Vocabulary) Entries() []Entry {
	out := make([]Entry, len(v.entries))
	copy(out, v.entries)
	return out
}

// Shift returns the mass shift for an exact label.
func (v *Vocabulary) Shift(label string) (float64, bool) {
	i, ok := v.index[label]
	if !ok {
		return 0, false
	}
	return v.entries[i].Shift, true
}

// Contains reports whether label is declared in this vocabulary.
func (v *Vocabulary) Contains(label string) bool {
	_, ok := v.index[label]
	return ok
}

// Spec parses label and attaches its shift from this vocabulary only.
func (v *Vocabulary) Spec(label string) (Spec, error) {
	n, err := Parse(label)
	if err != nil {
		return Spec{}, err
	}
	shift, ok := v.Shift(label)
	if !ok {
		return Spec{}, &Error{Label: label, Reason: "not in " + v.polarity.String() + " adduct list", Err: ErrUnknownAdduct}
	}
	return Spec{Notation: n, Shift: shift}, nil
}

// Specs resolves every entry in declaration order.
func (v *Vocabulary) Specs() ([]Spec, error) {
	specs := make([]Spec, 0, len(v.entries))
	for _, e := range v.entries {
		s, err := NewSpec(e.Label, e.Shift)
		if err != nil {
			return nil, err
		}
		specs = append(specs, s)
	}
	return specs, nil
}
