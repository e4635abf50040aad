package hs

import (
	"errors"
	"fmt"
)

// TypeError reports a failed unification or inference step.
//
// Type errors never abort diagram editing: the wire core records them
// on the affected anchors and the inspector renders the type as "?".
type TypeError struct {
	// Left and Right are the types that failed to unify, when the
	// failure came from unification. Either may be nil.
	Left  Type
	Right Type

	// Reason is a human-readable description.
	Reason string
}

// Error implements the error interface.
func (e *TypeError) Error() string {
	if e.Left != nil && e.Right != nil {
		return fmt.Sprintf("type error: %s (%s vs %s)", e.Reason, TypeString(e.Left), TypeString(e.Right))
	}
	return "type error: " + e.Reason
}

// IsTypeError reports whether err is (or wraps) a *TypeError.
func IsTypeError(err error) bool {
	var te *TypeError
	return errors.As(err, &te)
}

func mismatch(a, b Type) error {
	return &TypeError{Left: a, Right: b, Reason: "cannot match types"}
}
