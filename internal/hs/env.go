package hs

import "github.com/benbjohnson/immutable"

// TypeEnv maps identifiers to their (possibly quantified) types.
//
// The environment is persistent: Bind returns a new environment
// sharing structure with the old one. Lambda scopes extend the
// environment for their body without mutating the enclosing scope,
// so nested containers can infer concurrently-visible regions
// without copy bookkeeping.
type TypeEnv struct {
	m *immutable.Map[string, Type]
}

// NewTypeEnv creates an empty environment.
func NewTypeEnv() *TypeEnv {
	return &TypeEnv{m: immutable.NewMap[string, Type](nil)}
}

// Bind returns a new environment with name bound to t.
func (e *TypeEnv) Bind(name string, t Type) *TypeEnv {
	return &TypeEnv{m: e.m.Set(name, t)}
}

// Lookup returns the type bound to name.
func (e *TypeEnv) Lookup(name string) (Type, bool) {
	return e.m.Get(name)
}

// Len returns the number of bindings.
func (e *TypeEnv) Len() int {
	return e.m.Len()
}
