package wire

import (
	"errors"
	"fmt"
)

// IllegalConnectionCode categorizes rejected connection attempts.
type IllegalConnectionCode string

const (
	// CodeSameAnchor indicates both endpoints alias the same anchor.
	CodeSameAnchor IllegalConnectionCode = "SAME_ANCHOR"

	// CodeInputToInput indicates both endpoints are inputs.
	CodeInputToInput IllegalConnectionCode = "INPUT_TO_INPUT"

	// CodeOutputToOutput indicates both endpoints are outputs.
	CodeOutputToOutput IllegalConnectionCode = "OUTPUT_TO_OUTPUT"

	// CodeMissingAnchor indicates a nil or unresolvable endpoint.
	CodeMissingAnchor IllegalConnectionCode = "MISSING_ANCHOR"
)

// IllegalConnectionError reports a connection attempt the graph
// refused. It is always recovered locally: the attempted commit is
// abandoned and the in-progress wire torn down; nothing surfaces to
// the user beyond the wire visually disappearing.
type IllegalConnectionError struct {
	Code IllegalConnectionCode
	From string
	To   string
}

// Error implements the error interface.
func (e *IllegalConnectionError) Error() string {
	if e.From != "" && e.To != "" {
		return fmt.Sprintf("%s: illegal connection %s -> %s", e.Code, e.From, e.To)
	}
	return fmt.Sprintf("%s: illegal connection", e.Code)
}

// IsIllegalConnection reports whether err is (or wraps) an
// *IllegalConnectionError. Uses errors.As to handle wrapped errors.
func IsIllegalConnection(err error) bool {
	var ice *IllegalConnectionError
	return errors.As(err, &ice)
}
