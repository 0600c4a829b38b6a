package adduct

// Spec is a parsed adduct together with the mass shift stored for its label.
type Spec struct {
	Notation
	Shift float64 // Da, added to mz*charge to obtain multimer*M
}

// NewSpec parses label and attaches shift.
func NewSpec(label string, shift float64) (Spec, error) {
	n, err := Parse(label)
	if err != nil {
		return Spec{}, err
	}
	return Spec{Notation: n, Shift: shift}, nil
}

// MassFromMz returns the neutral monoisotopic mass of an ion observed at mz
// under this adduct hypothesis.
func (s Spec) MassFromMz(mz float64) float64 {
	return (mz*float64(s.Charge) + s.Shift) / float64(s.Multimer)
}

// MzFromMass returns the m/z at which a neutral mass is expected to appear
// under this adduct.
func (s Spec) MzFromMass(mass float64) float64 {
	return (mass*float64(s.Multimer) - s.Shift) / float64(s.Charge)
}
