package hs

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToHaskell(t *testing.T) {
	cases := []struct {
		name string
		expr Expr
		want string
	}{
		{
			"identifier",
			&Ident{Name: "map"},
			"map",
		},
		{
			"operator is sectioned",
			&Ident{Name: "+"},
			"(+)",
		},
		{
			"application",
			ApplyAll(&Ident{Name: "succ"}, &Lit{Text: "1"}),
			"succ 1",
		},
		{
			"nested application parenthesized",
			ApplyAll(&Ident{Name: "succ"}, ApplyAll(&Ident{Name: "succ"}, &Lit{Text: "1"})),
			"succ (succ 1)",
		},
		{
			"hole compiles to undefined",
			ApplyAll(&Ident{Name: "succ"}, &Hole{}),
			"succ undefined",
		},
		{
			"lambda",
			&Lambda{Binders: []string{"x", "y"}, Body: ApplyAll(&Ident{Name: "+"}, &Ident{Name: "x"}, &Ident{Name: "y"})},
			"\\x y -> (+) x y",
		},
		{
			"lambda in argument position",
			ApplyAll(&Ident{Name: "map"}, &Lambda{Binders: []string{"x"}, Body: &Ident{Name: "x"}}),
			"map (\\x -> x)",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.expr.ToHaskell())
		})
	}
}

func TestSanitizeIdent(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"x", "x"},
		{"myVar", "myVar"},
		{"My Var", "myVar"},
		{"2nd", "x2nd"},
		{"", "x"},
		{"x'", "x'"},
		{"...", "x"},
	}

	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			assert.Equal(t, tc.want, SanitizeIdent(tc.in))
		})
	}
}
