package core

import (
	"fmt"
	"strings"
)

// Lipid identifies the candidate compound a peak cluster is annotated with.
type Lipid struct {
	CompoundID       int
	Name             string // e.g. "PC 34:1"
	Formula          string // e.g. "C42H82NO8P"
	LipidType        string // e.g. "PC", "TG"
	CarbonCount      int
	DoubleBondsCount int
}

// Validate checks the fields every stored lipid must carry.
func (l Lipid) Validate() error {
	var errs []string

	if strings.TrimSpace(l.Name) == "" {
		errs = append(errs, "name is required")
	}
	if l.CarbonCount < 0 {
		errs = append(errs, "carbon count must be non-negative")
	}
	if l.DoubleBondsCount < 0 {
		errs = append(errs, "double bond count must be non-negative")
	}

	if len(errs) > 0 {
		return &ValidationError{
			Field:   "Lipid",
			Message: strings.Join(errs, "; "),
		}
	}
	return nil
}

func (l Lipid) String() string {
	if l.Formula == "" {
		return l.Name
	}
	return fmt.Sprintf("%s (%s)", l.Name, l.Formula)
}
