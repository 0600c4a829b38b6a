package core

import (
	"fmt"
	"strings"
)

// Polarity is the ionization mode a peak was acquired in.
type Polarity int

const (
	Positive Polarity = iota
	Negative
)

func (p Polarity) String() string {
	switch p {
	case Positive:
		return "positive"
	case Negative:
		return "negative"
	default:
		return fmt.Sprintf("Polarity(%d)", int(p))
	}
}

// Symbol returns "+" or "-", the form used in adduct labels and database rows.
func (p Polarity) Symbol() string {
	if p == Negative {
		return "-"
	}
	return "+"
}

// ParsePolarity accepts "positive", "negative", "pos", "neg", "+" and "-"
// (case-insensitive).
func ParsePolarity(s string) (Polarity, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "positive", "pos", "+":
		return Positive, nil
	case "negative", "neg", "-":
		return Negative, nil
	default:
		return Positive, fmt.Errorf("invalid polarity '%s', must be positive or negative", s)
	}
}
