// Package adduct parses adduct notation such as "[2M+H-H2O]2+" and converts
// between observed m/z and neutral monoisotopic mass.
//
// Conversions follow
//
//	multimer * M = mz * charge + shift
//
// where shift is the value stored for the exact label in a Vocabulary. Shifts
// already carry the charge multiplicity, so "[M+2H]2+" stores -2*proton.
package adduct

import (
	"fmt"
	"regexp"
	"strconv"
	"sync"
)

// grammar matches "[" multimer? "M" extra "]" charge? sign. The extra part
// must open with a "+" or "-" group and may not contain "]".
var grammar = sync.OnceValue(func() *regexp.Regexp {
	return regexp.MustCompile(`^\[(\d*)M([+-][^\]]*)\](\d*)([+-])$`)
})

// Notation is the parsed form of an adduct label.
type Notation struct {
	Label    string
	Multimer int // molecules of M in the ion, >= 1
	Charge   int // charge magnitude, >= 1
	Sign     int // +1 or -1
}

// Parse parses an adduct label. Missing multimer or charge digits default to 1.
func Parse(label string) (Notation, error) {
	m := grammar().FindStringSubmatch(label)
	if m == nil {
		return Notation{}, malformed(label, `expected "[<n>M<+|-group>...]<z><+|->"`)
	}

	multimer, err := parseCount(label, "multimer", m[1])
	if err != nil {
		return Notation{}, err
	}
	charge, err := parseCount(label, "charge", m[3])
	if err != nil {
		return Notation{}, err
	}

	sign := 1
	if m[4] == "-" {
		sign = -1
	}

	return Notation{
		Label:    label,
		Multimer: multimer,
		Charge:   charge,
		Sign:     sign,
	}, nil
}

// parseCount converts an optional digit run; empty means 1.
func parseCount(label, field, digits string) (int, error) {
	if digits == "" {
		return 1, nil
	}
	n, err := strconv.Atoi(digits)
	if err != nil {
		return 0, malformed(label, fmt.Sprintf("invalid %s '%s'", field, digits))
	}
	if n == 0 {
		return 0, &Error{Label: label, Reason: field + " is zero", Err: ErrDegenerateAdduct}
	}
	return n, nil
}

// SignedCharge returns the charge including its sign, e.g. -2 for "[M-2H]2-".
func (n Notation) SignedCharge() int {
	return n.Sign * n.Charge
}

func (n Notation) String() string {
	return n.Label
}
