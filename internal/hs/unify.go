package hs

// Unify makes a and b equal by binding unbound variables, or returns
// a *TypeError if the two types cannot match.
//
// Generic variables must be instantiated before unification; passing
// one is a programming error and reported as a type error rather
// than a panic, since the caller may be feeding user-built graphs.
func Unify(a, b Type) error {
	a, b = RealType(a), RealType(b)
	if a == b {
		return nil
	}

	if tv, ok := a.(*Var); ok {
		return bindVar(tv, b)
	}
	if tv, ok := b.(*Var); ok {
		return bindVar(tv, a)
	}

	switch at := a.(type) {
	case *Con:
		if bt, ok := b.(*Con); ok && at.Name == bt.Name {
			return nil
		}
	case *App:
		if bt, ok := b.(*App); ok {
			if err := Unify(at.Fn, bt.Fn); err != nil {
				return err
			}
			return Unify(at.Arg, bt.Arg)
		}
	case *Func:
		if bt, ok := b.(*Func); ok {
			if err := Unify(at.Arg, bt.Arg); err != nil {
				return err
			}
			return Unify(at.Res, bt.Res)
		}
	case *Tuple:
		if bt, ok := b.(*Tuple); ok && len(at.Items) == len(bt.Items) {
			for i := range at.Items {
				if err := Unify(at.Items[i], bt.Items[i]); err != nil {
					return err
				}
			}
			return nil
		}
	}

	return mismatch(a, b)
}

// bindVar links tv to t after the occurs check.
func bindVar(tv *Var, t Type) error {
	if tv.IsGeneric() {
		return &TypeError{Left: tv, Right: t, Reason: "cannot unify uninstantiated signature variable"}
	}
	if occurs(tv, t) {
		return &TypeError{Left: tv, Right: t, Reason: "infinite type"}
	}
	tv.SetLink(t)
	return nil
}

// occurs reports whether tv appears within t.
func occurs(tv *Var, t Type) bool {
	switch t := RealType(t).(type) {
	case *Var:
		return t == tv
	case *App:
		return occurs(tv, t.Fn) || occurs(tv, t.Arg)
	case *Func:
		return occurs(tv, t.Arg) || occurs(tv, t.Res)
	case *Tuple:
		for _, item := range t.Items {
			if occurs(tv, item) {
				return true
			}
		}
	}
	return false
}
