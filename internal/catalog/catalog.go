package catalog

import (
	"github.com/skeinproject/skein/internal/hs"
)

// Entry is one catalog function: a name and its parsed signature.
type Entry struct {
	Name      string
	Signature string
	Doc       string
	Type      hs.Type
}

// Catalog is an immutable set of function entries, preserving the
// order they were declared in.
type Catalog struct {
	entries map[string]Entry
	order   []string
}

// Lookup finds an entry by function name.
func (c *Catalog) Lookup(name string) (Entry, bool) {
	e, ok := c.entries[name]
	return e, ok
}

// Names returns the function names in declaration order.
func (c *Catalog) Names() []string {
	return append([]string(nil), c.order...)
}

// Len returns the number of entries.
func (c *Catalog) Len() int { return len(c.entries) }

// Env builds a type environment binding every catalog function to its
// signature, for use by the inspector.
func (c *Catalog) Env() *hs.TypeEnv {
	env := hs.NewTypeEnv()
	for _, name := range c.order {
		env = env.Bind(name, c.entries[name].Type)
	}
	return env
}
