package hs

import "strings"

// Expr is the interface implemented by all expression forms.
type Expr interface {
	// ToHaskell renders the expression as Haskell source.
	ToHaskell() string
	// Children returns the direct subexpressions, for tree walks.
	Children() []Expr
}

// Ident is a reference to a named function or binder.
type Ident struct {
	Name string
}

// Lit is a literal constant, carried verbatim in the source text.
// Type, when non-nil, fixes the literal's type during inference;
// otherwise the literal is polymorphic (a fresh variable).
type Lit struct {
	Text string
	Type Type
}

// Hole stands for an unconnected input anchor. It compiles to
// undefined so partially wired diagrams still produce valid source.
type Hole struct{}

// Apply is function application, one argument at a time.
type Apply struct {
	Fn  Expr
	Arg Expr
}

// Lambda abstracts over one or more binders.
type Lambda struct {
	Binders []string
	Body    Expr
}

func (e *Ident) ToHaskell() string {
	// Operator identifiers must be sectioned when used prefix.
	if isOperator(e.Name) {
		return "(" + e.Name + ")"
	}
	return e.Name
}
func (e *Lit) ToHaskell() string { return e.Text }
func (*Hole) ToHaskell() string  { return "undefined" }

func (e *Apply) ToHaskell() string {
	return e.Fn.ToHaskell() + " " + argString(e.Arg)
}

func (e *Lambda) ToHaskell() string {
	return "\\" + strings.Join(e.Binders, " ") + " -> " + e.Body.ToHaskell()
}

func (e *Ident) Children() []Expr  { return nil }
func (e *Lit) Children() []Expr    { return nil }
func (*Hole) Children() []Expr     { return nil }
func (e *Apply) Children() []Expr  { return []Expr{e.Fn, e.Arg} }
func (e *Lambda) Children() []Expr { return []Expr{e.Body} }

// argString parenthesizes non-atomic expressions in argument position.
func argString(e Expr) string {
	switch e.(type) {
	case *Apply, *Lambda:
		return "(" + e.ToHaskell() + ")"
	default:
		return e.ToHaskell()
	}
}

// ApplyAll curries fn over args.
func ApplyAll(fn Expr, args ...Expr) Expr {
	e := fn
	for _, arg := range args {
		e = &Apply{Fn: e, Arg: arg}
	}
	return e
}

// isOperator reports whether name is made of Haskell symbol characters.
func isOperator(name string) bool {
	if name == "" {
		return false
	}
	for _, r := range name {
		if !strings.ContainsRune("!#$%&*+./<=>?@\\^|-~:", r) {
			return false
		}
	}
	return true
}
