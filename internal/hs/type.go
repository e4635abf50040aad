package hs

// Special binding levels, used as flags on Var.
const (
	// GenericVarLevel marks a quantified signature variable.
	GenericVarLevel = 1<<31 - 1
	// LinkVarLevel marks a variable bound to another type.
	LinkVarLevel = -1 << 31
)

// Type is the interface implemented by all Haskell type forms.
type Type interface {
	typeForm()
}

func (*Var) typeForm()   {}
func (*Con) typeForm()   {}
func (*App) typeForm()   {}
func (*Func) typeForm()  {}
func (*Tuple) typeForm() {}

// Var is a type variable. A Var is in exactly one of three states:
// unbound (fresh, awaiting unification), linked (bound to another
// type), or generic (quantified, to be instantiated before use).
type Var struct {
	name  string
	link  Type
	id    int32
	level int32
}

// VarState indicates whether a type variable is unbound, linked, or generic.
type VarState int

const (
	// UnboundVar is a fresh variable not yet bound by unification.
	UnboundVar VarState = iota
	// LinkVar is bound to another type.
	LinkVar
	// GenericVar is quantified in a signature.
	GenericVar
)

// NewVar creates a fresh unbound type variable.
func NewVar(id int, name string) *Var {
	return &Var{id: int32(id), name: name}
}

// NewGenericVar creates a quantified signature variable.
func NewGenericVar(id int, name string) *Var {
	return &Var{id: int32(id), name: name, level: GenericVarLevel}
}

// State returns the current state of the variable.
func (tv *Var) State() VarState {
	switch tv.level {
	case LinkVarLevel:
		return LinkVar
	case GenericVarLevel:
		return GenericVar
	default:
		return UnboundVar
	}
}

// Id returns the unique identifier of the variable.
func (tv *Var) Id() int { return int(tv.id) }

// Name returns the display name of the variable.
func (tv *Var) Name() string { return tv.name }

// Link returns the type this variable is bound to, or nil if unbound.
func (tv *Var) Link() Type { return tv.link }

// SetLink binds the variable to t.
func (tv *Var) SetLink(t Type) { tv.link, tv.level = t, LinkVarLevel }

// IsGeneric reports whether the variable is quantified.
func (tv *Var) IsGeneric() bool { return tv.level == GenericVarLevel }

// Con is a type constructor with no arguments applied, e.g. Int, Bool,
// Maybe, or the list constructor "[]".
type Con struct {
	Name string
}

// App applies a type constructor to an argument, e.g. Maybe a.
// Multi-argument applications curry: Either a b is App(App(Either, a), b).
type App struct {
	Fn  Type
	Arg Type
}

// Func is the function arrow a -> b.
type Func struct {
	Arg Type
	Res Type
}

// Tuple is a tuple type (a, b, ...). Len >= 2.
type Tuple struct {
	Items []Type
}

// RealType follows link chains and returns the representative of t.
// Chains are path-compressed as a side effect.
func RealType(t Type) Type {
	if tv, ok := t.(*Var); ok && tv.State() == LinkVar {
		r := RealType(tv.link)
		tv.link = r
		return r
	}
	return t
}

// FuncType builds a curried function type from argument types and a result.
func FuncType(args []Type, res Type) Type {
	t := res
	for i := len(args) - 1; i >= 0; i-- {
		t = &Func{Arg: args[i], Res: t}
	}
	return t
}

// ListOf wraps t in the list constructor.
func ListOf(t Type) Type {
	return &App{Fn: &Con{Name: "[]"}, Arg: t}
}
