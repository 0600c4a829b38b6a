package adduct

import (
	"sync"

	"github.com/ChrisMcGann/adductid/pkg/core"
)

// Table holds the positive- and negative-mode adduct vocabularies. It is
// read-only after construction.
type Table struct {
	positive *Vocabulary
	negative *Vocabulary
}

// NewTable pairs two vocabularies. A nil vocabulary is treated as empty.
func NewTable(positive, negative *Vocabulary) *Table {
	if positive == nil {
		positive, _ = NewVocabulary(core.Positive)
	}
	if negative == nil {
		negative, _ = NewVocabulary(core.Negative)
	}
	return &Table{positive: positive, negative: negative}
}

// Vocabulary returns the vocabulary for a polarity.
func (t *Table) Vocabulary(p core.Polarity) *Vocabulary {
	if p == core.Negative {
		return t.negative
	}
	return t.positive
}

// Spec resolves label against the positive vocabulary first and the negative
// vocabulary second, so a label declared in both takes its positive shift.
func (t *Table) Spec(label string) (Spec, error) {
	n, err := Parse(label)
	if err != nil {
		return Spec{}, err
	}
	if shift, ok := t.positive.Shift(label); ok {
		return Spec{Notation: n, Shift: shift}, nil
	}
	if shift, ok := t.negative.Shift(label); ok {
		return Spec{Notation: n, Shift: shift}, nil
	}
	return Spec{}, unknown(label)
}

// MassFromMz returns the neutral mass of an ion observed at mz as label.
func (t *Table) MassFromMz(mz float64, label string) (float64, error) {
	s, err := t.Spec(label)
	if err != nil {
		return 0, err
	}
	return s.MassFromMz(mz), nil
}

// MzFromMass returns the m/z expected for a neutral mass ionized as label.
func (t *Table) MzFromMass(mass float64, label string) (float64, error) {
	s, err := t.Spec(label)
	if err != nil {
		return 0, err
	}
	return s.MzFromMass(mass), nil
}

// MassFromMz converts using DefaultTable.
func MassFromMz(mz float64, label string) (float64, error) {
	return DefaultTable().MassFromMz(mz, label)
}

// MzFromMass converts using DefaultTable.
func MzFromMass(mass float64, label string) (float64, error) {
	return DefaultTable().MzFromMass(mass, label)
}

// DefaultTable returns the built-in adduct lists. The table is shared and must
// not be modified.
var DefaultTable = sync.OnceValue(func() *Table {
	return NewTable(
		mustVocabulary(core.Positive, defaultPositive),
		mustVocabulary(core.Negative, defaultNegative),
	)
})

func mustVocabulary(p core.Polarity, entries []Entry) *Vocabulary {
	v, err := NewVocabulary(p, entries...)
	if err != nil {
		panic(err)
	}
	return v
}

// Shifts satisfy multimer*M = mz*charge + shift.
var defaultPositive = []Entry{
	{"[M+H]+", -1.007276},
	{"[2M+H]+", -1.007276},
	{"[M+Na]+", -22.989218},
	{"[M+K]+", -38.963158},
	{"[M+NH4]+", -18.033823},
	{"[M+H-H2O]+", 17.003289},
	{"[M+2H]2+", -2.014552},
	{"[M+3H]3+", -3.021828},
	{"[2M+Na]+", -22.989218},
	{"[M+H+NH4]2+", -19.041099},
}

var defaultNegative = []Entry{
	{"[M-H]-", 1.007276},
	{"[2M-H]-", 1.007276},
	{"[M+Cl]-", -34.969402},
	{"[M+HCOOH-H]-", -44.998203},
	{"[M+CH3COOH-H]-", -59.013853},
	{"[M-H-H2O]-", 19.017841},
	{"[M-2H]2-", 2.014552},
	{"[3M-H]-", 1.007276},
}
