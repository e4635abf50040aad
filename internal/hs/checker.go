package hs

// Checker owns the fresh-variable supply and performs inference.
//
// A single Checker is shared by all blocks on a pane so variable ids
// stay unique across the whole diagram. Checker is not safe for
// concurrent use; the wire core only calls it from its single
// mutating goroutine.
type Checker struct {
	nextID int
}

// NewChecker creates a checker with an empty variable supply.
func NewChecker() *Checker {
	return &Checker{}
}

// Fresh returns a new unbound type variable.
func (c *Checker) Fresh() *Var {
	id := c.nextID
	c.nextID++
	return NewVar(id, "")
}

// Instantiate replaces every generic variable in t with a fresh
// unbound variable, consistently across shared occurrences. Types
// without generic variables are returned as-is.
func (c *Checker) Instantiate(t Type) Type {
	return c.instantiate(t, map[*Var]*Var{})
}

func (c *Checker) instantiate(t Type, seen map[*Var]*Var) Type {
	switch t := RealType(t).(type) {
	case *Var:
		if !t.IsGeneric() {
			return t
		}
		if fresh, ok := seen[t]; ok {
			return fresh
		}
		fresh := c.Fresh()
		seen[t] = fresh
		return fresh
	case *App:
		return &App{Fn: c.instantiate(t.Fn, seen), Arg: c.instantiate(t.Arg, seen)}
	case *Func:
		return &Func{Arg: c.instantiate(t.Arg, seen), Res: c.instantiate(t.Res, seen)}
	case *Tuple:
		items := make([]Type, len(t.Items))
		for i, item := range t.Items {
			items[i] = c.instantiate(item, seen)
		}
		return &Tuple{Items: items}
	default:
		return t
	}
}

// Infer computes the type of e under env.
//
// Failures return a *TypeError; the partially unified state of any
// involved type variables is left as-is, which matches how the wire
// core treats inference: best-effort annotation, never a veto.
func (c *Checker) Infer(env *TypeEnv, e Expr) (Type, error) {
	switch e := e.(type) {
	case *Ident:
		t, ok := env.Lookup(e.Name)
		if !ok {
			return nil, &TypeError{Reason: "unbound identifier " + e.Name}
		}
		return c.Instantiate(t), nil

	case *Lit:
		if e.Type != nil {
			return e.Type, nil
		}
		return c.Fresh(), nil

	case *Hole:
		return c.Fresh(), nil

	case *Apply:
		fnT, err := c.Infer(env, e.Fn)
		if err != nil {
			return nil, err
		}
		argT, err := c.Infer(env, e.Arg)
		if err != nil {
			return nil, err
		}
		res := c.Fresh()
		if err := Unify(fnT, &Func{Arg: argT, Res: res}); err != nil {
			return nil, err
		}
		return res, nil

	case *Lambda:
		binderTs := make([]Type, len(e.Binders))
		inner := env
		for i, name := range e.Binders {
			tv := c.Fresh()
			binderTs[i] = tv
			inner = inner.Bind(name, tv)
		}
		bodyT, err := c.Infer(inner, e.Body)
		if err != nil {
			return nil, err
		}
		return FuncType(binderTs, bodyT), nil

	default:
		return nil, &TypeError{Reason: "unknown expression form"}
	}
}
