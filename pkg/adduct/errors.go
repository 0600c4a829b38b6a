package adduct

import (
	"errors"
	"fmt"
)

// Sentinel errors returned (wrapped in *Error) by the adduct engine.
var (
	ErrMalformedAdduct  = errors.New("malformed adduct")
	ErrUnknownAdduct    = errors.New("unknown adduct")
	ErrDegenerateAdduct = errors.New("degenerate adduct")
)

// Error describes a failure tied to one adduct label.
type Error struct {
	Label  string
	Reason string
	Err    error // one of the sentinels above
}

func (e *Error) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("%v '%s'", e.Err, e.Label)
	}
	return fmt.Sprintf("%v '%s': %s", e.Err, e.Label, e.Reason)
}

func (e *Error) Unwrap() error { return e.Err }

func malformed(label, reason string) *Error {
	return &Error{Label: label, Reason: reason, Err: ErrMalformedAdduct}
}

func unknown(label string) *Error {
	return &Error{Label: label, Reason: "not in positive or negative adduct list", Err: ErrUnknownAdduct}
}
