// Package hs models the fragment of Haskell the editor manipulates:
// types, expressions, unification, and inference.
//
// The wire core treats this package as an opaque service with two
// entry points: Checker.Infer (may fail with *TypeError) and
// Expr.ToHaskell. Inference failures are ordinary values here, not
// fatal conditions - the diagram must stay editable while ill-typed.
//
// Types form a closed set of variants (Var, Con, App, Func, Tuple).
// Type variables use link semantics: unifying a variable binds it in
// place, and RealType follows link chains to the representative. A
// catalog signature is stored with generic variables and is
// instantiated with fresh unbound variables each time a block's
// anchors are refreshed.
package hs
