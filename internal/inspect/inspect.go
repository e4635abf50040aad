// Package inspect renders the type breakdown of an expression: every
// subexpression annotated with its inferred type, as a plain-text
// tree. Subexpressions that cannot be typed in isolation (a binder
// used outside its lambda, an unbound name) are annotated with "?"
// instead of an error; the inspector is a window, never a gate.
package inspect

import (
	"strings"

	"github.com/skeinproject/skein/internal/hs"
)

// Tree renders the expression's type breakdown. Each line is one
// subexpression, indented two spaces per nesting level, in the form
// "expr :: type".
//
// Every node is inferred independently with its own variable supply,
// so the rendered variable names (t0, t1, ...) are stable regardless
// of what else the surrounding pane has inferred.
func Tree(env *hs.TypeEnv, e hs.Expr) string {
	var sb strings.Builder
	writeNode(&sb, env, e, 0)
	return sb.String()
}

func writeNode(sb *strings.Builder, env *hs.TypeEnv, e hs.Expr, depth int) {
	sb.WriteString(strings.Repeat("  ", depth))
	sb.WriteString(e.ToHaskell())
	sb.WriteString(" :: ")
	sb.WriteString(typeLabel(env, e))
	sb.WriteByte('\n')
	for _, child := range e.Children() {
		writeNode(sb, env, child, depth+1)
	}
}

// typeLabel infers the node's type, falling back to "?" on failure.
func typeLabel(env *hs.TypeEnv, e hs.Expr) string {
	t, err := hs.NewChecker().Infer(env, e)
	if err != nil {
		return "?"
	}
	return hs.TypeString(t)
}
