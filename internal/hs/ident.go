package hs

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// SanitizeIdent normalizes a user-supplied name into a valid Haskell
// variable identifier. Strings are NFC normalized first so visually
// identical names from different input methods map to the same
// binder. Characters outside [a-zA-Z0-9_'] are dropped, and the
// result is forced to start with a lowercase letter.
//
// Returns "x" when nothing usable remains.
func SanitizeIdent(name string) string {
	name = norm.NFC.String(name)

	var sb strings.Builder
	for _, r := range name {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || r == '\'':
			sb.WriteRune(r)
		}
	}

	out := sb.String()
	if out == "" {
		return "x"
	}
	r := rune(out[0])
	if unicode.IsUpper(r) {
		out = strings.ToLower(string(r)) + out[1:]
	} else if !unicode.IsLetter(r) {
		out = "x" + out
	}
	return out
}
