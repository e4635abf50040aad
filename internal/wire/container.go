package wire

import (
	"log/slog"
	"math"

	"github.com/skeinproject/skein/internal/hs"
)

// Point is a position in pane coordinates. The core has no opinion on
// pixels; positions exist only for the scope-validity hint, computed
// against externally supplied container bounds.
type Point struct {
	X, Y float64
}

// Bounds is an axis-aligned rectangle in pane coordinates.
type Bounds struct {
	Min, Max Point
}

// Contains reports whether p lies within the bounds.
func (b Bounds) Contains(p Point) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X && p.Y >= b.Min.Y && p.Y <= b.Max.Y
}

// Container is a nesting scope constraining which connections are
// in-scope and how far type propagation reaches. Containers form a
// tree via the contained-within relation; the bounds come from the
// rendering layer and are treated as a read-only oracle.
type Container interface {
	// Name returns the container's identifier ("top" for the root,
	// the lambda block's id otherwise).
	Name() string
	// Bounds returns the container's current screen-space bounds.
	Bounds() Bounds
	// Parent returns the enclosing container, nil for the root.
	Parent() Container
	// IsContainedWithin reports whether the receiver equals other or
	// is nested (transitively) inside it.
	IsContainedWithin(other Container) bool
}

// TopLevel is the root scope of a pane. Its bounds are unbounded, so
// every position is in scope.
type TopLevel struct{}

// Name returns "top".
func (*TopLevel) Name() string { return "top" }

// Bounds returns an unbounded rectangle.
func (*TopLevel) Bounds() Bounds {
	inf := math.Inf(1)
	return Bounds{Min: Point{X: -inf, Y: -inf}, Max: Point{X: inf, Y: inf}}
}

// Parent returns nil; the top level has no enclosing scope.
func (*TopLevel) Parent() Container { return nil }

// IsContainedWithin reports whether other is the top level itself.
func (t *TopLevel) IsContainedWithin(other Container) bool {
	return Container(t) == other
}

// LambdaContainer is the body scope of a lambda block. It owns the
// argument binder anchors and the result anchor; blocks placed inside
// it may use the binders, and the lambda's external function type is
// inferred from how they are used.
type LambdaContainer struct {
	block   *Block
	parent  Container
	binders []*BinderAnchor
	result  *InputAnchor
	bounds  Bounds
	graph   *Graph
}

// Name returns the lambda block's id.
func (lc *LambdaContainer) Name() string { return lc.block.id }

// Bounds returns the last bounds supplied by the rendering layer.
func (lc *LambdaContainer) Bounds() Bounds { return lc.bounds }

// SetBounds records the container's screen-space bounds. Called by
// the rendering layer on every layout change.
func (lc *LambdaContainer) SetBounds(b Bounds) { lc.bounds = b }

// Parent returns the enclosing container.
func (lc *LambdaContainer) Parent() Container { return lc.parent }

// IsContainedWithin walks the parent chain looking for other.
func (lc *LambdaContainer) IsContainedWithin(other Container) bool {
	for c := Container(lc); c != nil; c = c.Parent() {
		if c == other {
			return true
		}
	}
	return false
}

// Binders returns the argument binder anchors.
func (lc *LambdaContainer) Binders() []*BinderAnchor { return lc.binders }

// Result returns the body's result anchor.
func (lc *LambdaContainer) Result() *InputAnchor { return lc.result }

// Block returns the lambda block presenting this scope's function
// value to the outside.
func (lc *LambdaContainer) Block() *Block { return lc.block }

func (lc *LambdaContainer) targetName() string { return "lambda:" + lc.block.id }

// prepareConnectionChanges refreshes the container's own anchor type
// placeholders: fresh variables for every binder and for the result.
// Body blocks are not touched; their types are external inputs to
// this scope's computation.
func (lc *LambdaContainer) prepareConnectionChanges(c *hs.Checker) {
	for _, b := range lc.binders {
		b.typ = c.Fresh()
	}
	lc.result.typ = c.Fresh()
	lc.result.typeErr = nil
	lc.block.outputs[0].typ = hs.FuncType(lc.binderTypes(), lc.result.typ)
}

// handleConnectionChanges re-derives the lambda's function type from
// its binder uses and result. The non-final pass publishes a partial
// view by unifying into the current external type, so mutually
// dependent sibling scopes can react; the final pass settles, committing
// the derived type to the block's output anchor outright.
func (lc *LambdaContainer) handleConnectionChanges(final bool) {
	g := lc.graph

	// Binder types are known only from their uses inside the body.
	for _, b := range lc.binders {
		for _, id := range b.Connections() {
			if conn, ok := g.Connection(id); ok {
				conn.sink.applyTypeFrom(b)
			}
		}
	}

	if id, ok := lc.result.Connection(); ok {
		if conn, ok := g.Connection(id); ok {
			lc.result.applyTypeFrom(conn.src)
		}
	}

	fn := hs.FuncType(lc.binderTypes(), lc.result.typ)
	out := lc.block.outputs[0]
	if final {
		out.typ = fn
		return
	}
	if err := hs.Unify(out.typ, fn); err != nil {
		// Stale partial view; the final pass replaces it wholesale.
		slog.Debug("partial lambda type out of date",
			"lambda", lc.block.id,
			"error", err,
		)
	}
}

func (lc *LambdaContainer) binderTypes() []hs.Type {
	ts := make([]hs.Type, len(lc.binders))
	for i, b := range lc.binders {
		ts[i] = b.typ
	}
	return ts
}
