package hs

import (
	"fmt"
	"strings"
)

// TypeString renders a type in Haskell surface syntax.
// Linked variables print as their representative; unbound variables
// print by name (t0, t1, ... for fresh ones).
func TypeString(t Type) string {
	var sb strings.Builder
	writeType(&sb, t, false)
	return sb.String()
}

// writeType appends t to sb. arg controls parenthesization: function
// arrows and applications need parens in argument position.
func writeType(sb *strings.Builder, t Type, arg bool) {
	switch t := RealType(t).(type) {
	case *Var:
		if t.name != "" {
			sb.WriteString(t.name)
		} else {
			fmt.Fprintf(sb, "t%d", t.Id())
		}
	case *Con:
		sb.WriteString(t.Name)
	case *App:
		// Lists have dedicated surface syntax.
		if c, ok := RealType(t.Fn).(*Con); ok && c.Name == "[]" {
			sb.WriteByte('[')
			writeType(sb, t.Arg, false)
			sb.WriteByte(']')
			return
		}
		if arg {
			sb.WriteByte('(')
		}
		writeType(sb, t.Fn, false)
		sb.WriteByte(' ')
		writeType(sb, t.Arg, true)
		if arg {
			sb.WriteByte(')')
		}
	case *Func:
		if arg {
			sb.WriteByte('(')
		}
		writeFuncArg(sb, t.Arg)
		sb.WriteString(" -> ")
		writeType(sb, t.Res, false)
		if arg {
			sb.WriteByte(')')
		}
	case *Tuple:
		sb.WriteByte('(')
		for i, item := range t.Items {
			if i > 0 {
				sb.WriteString(", ")
			}
			writeType(sb, item, false)
		}
		sb.WriteByte(')')
	}
}

// writeFuncArg parenthesizes a function type on the left of an arrow.
func writeFuncArg(sb *strings.Builder, t Type) {
	if _, ok := RealType(t).(*Func); ok {
		sb.WriteByte('(')
		writeType(sb, t, false)
		sb.WriteByte(')')
		return
	}
	writeType(sb, t, true)
}
