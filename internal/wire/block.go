package wire

import (
	"github.com/skeinproject/skein/internal/hs"
)

// BlockKind discriminates the block variants.
type BlockKind string

const (
	// FunctionBlock applies a named function to its connected inputs.
	FunctionBlock BlockKind = "function"
	// LiteralBlock is a source-only block carrying a literal value.
	LiteralBlock BlockKind = "literal"
	// LambdaBlock presents a function value built from a nested body scope.
	LambdaBlock BlockKind = "lambda"
)

// Block is a node in the pane's graph. Its anchors are created at
// construction and never change; only their types and connections do.
type Block struct {
	id    string
	kind  BlockKind
	graph *Graph

	// container is the scope the block was placed in.
	container Container

	// function blocks
	fn      string
	sig     hs.Type // generic signature, instantiated fresh on every prepare
	sigText string

	// literal blocks
	litText     string
	litType     hs.Type // nil means the literal's type is inferred
	litTypeText string

	inputs  []*InputAnchor
	outputs []*OutputAnchor

	// lambda is the body scope of a lambda block, nil otherwise.
	lambda *LambdaContainer

	pos Point
}

// ID returns the block's identifier.
func (b *Block) ID() string { return b.id }

// Kind returns the block variant.
func (b *Block) Kind() BlockKind { return b.kind }

// Func returns the applied function name of a function block.
func (b *Block) Func() string { return b.fn }

// Signature returns a function block's type signature as written.
func (b *Block) Signature() string { return b.sigText }

// LiteralText returns a literal block's source text.
func (b *Block) LiteralText() string { return b.litText }

// LiteralType returns a literal block's declared type as written,
// empty when the type is inferred.
func (b *Block) LiteralType() string { return b.litTypeText }

// Container returns the scope the block lives in.
func (b *Block) Container() Container { return b.container }

// Inputs returns the block's input anchors.
func (b *Block) Inputs() []*InputAnchor { return b.inputs }

// Outputs returns the block's output anchors.
func (b *Block) Outputs() []*OutputAnchor { return b.outputs }

// Lambda returns the body scope of a lambda block, nil otherwise.
func (b *Block) Lambda() *LambdaContainer { return b.lambda }

// Pos returns the block's pane position.
func (b *Block) Pos() Point { return b.pos }

// SetPos records the block's pane position. Layout only; it has no
// effect on connections or types.
func (b *Block) SetPos(p Point) { b.pos = p }

func newFunctionBlock(g *Graph, id, fn string, sig hs.Type, sigText string, container Container) *Block {
	b := &Block{
		id:        id,
		kind:      FunctionBlock,
		graph:     g,
		container: container,
		fn:        fn,
		sig:       sig,
		sigText:   sigText,
	}
	arity := funcArity(sig)
	for i := 0; i < arity; i++ {
		b.inputs = append(b.inputs, &InputAnchor{anchorBase: anchorBase{block: b, index: i}})
	}
	b.outputs = []*OutputAnchor{{anchorBase: anchorBase{block: b, index: 0}}}
	b.prepareConnectionChanges(g.checker)
	return b
}

func newLiteralBlock(g *Graph, id, text string, typ hs.Type, typText string, container Container) *Block {
	b := &Block{
		id:          id,
		kind:        LiteralBlock,
		graph:       g,
		container:   container,
		litText:     text,
		litType:     typ,
		litTypeText: typText,
	}
	b.outputs = []*OutputAnchor{{anchorBase: anchorBase{block: b, index: 0}}}
	b.prepareConnectionChanges(g.checker)
	return b
}

func newLambdaBlock(g *Graph, id string, binders []string, container Container) *Block {
	b := &Block{
		id:        id,
		kind:      LambdaBlock,
		graph:     g,
		container: container,
	}
	b.outputs = []*OutputAnchor{{anchorBase: anchorBase{block: b, index: 0}}}

	lc := &LambdaContainer{block: b, parent: container, graph: g}
	for i, name := range binders {
		lc.binders = append(lc.binders, &BinderAnchor{
			OutputAnchor: OutputAnchor{anchorBase: anchorBase{block: b, index: i}},
			lambda:       lc,
			name:         hs.SanitizeIdent(name),
		})
	}
	lc.result = &InputAnchor{anchorBase: anchorBase{block: b}, result: true}
	b.lambda = lc
	lc.prepareConnectionChanges(g.checker)
	return b
}

// funcArity counts the argument positions of a function signature.
func funcArity(t hs.Type) int {
	n := 0
	for {
		f, ok := hs.RealType(t).(*hs.Func)
		if !ok {
			return n
		}
		n++
		t = f.Res
	}
}

// propTargetFor returns the propagation target a block contributes to
// the region walk: lambda blocks are handled by their body container,
// every other block handles itself.
func (b *Block) propTargetFor() propTarget {
	if b.lambda != nil {
		return b.lambda
	}
	return b
}

func (b *Block) targetName() string { return "block:" + b.id }

// prepareConnectionChanges resets the block's anchor types to a fresh
// instantiation of its signature, discarding everything earlier
// propagation rounds unified into them. Connections are untouched.
func (b *Block) prepareConnectionChanges(c *hs.Checker) {
	switch b.kind {
	case FunctionBlock:
		t := c.Instantiate(b.sig)
		for _, in := range b.inputs {
			f := hs.RealType(t).(*hs.Func)
			in.typ = f.Arg
			in.typeErr = nil
			t = f.Res
		}
		b.outputs[0].typ = t
	case LiteralBlock:
		if b.litType != nil {
			b.outputs[0].typ = b.litType
		} else {
			b.outputs[0].typ = c.Fresh()
		}
	}
}

// handleConnectionChanges pulls the current source types into the
// block's connected inputs. The non-final and final passes do the same
// work here; the distinction matters only for lambda containers, which
// settle their derived function type on the final pass.
func (b *Block) handleConnectionChanges(final bool) {
	for _, in := range b.inputs {
		id, ok := in.Connection()
		if !ok {
			continue
		}
		if conn, ok := b.graph.Connection(id); ok {
			in.applyTypeFrom(conn.src)
		}
	}
}

// Expression builds the Haskell expression rooted at this block's
// output. Unconnected inputs become holes; cycles through out-of-scope
// wires are cut with a hole as well.
func (b *Block) Expression() hs.Expr {
	return b.expression(make(map[*Block]bool))
}

func (b *Block) expression(visited map[*Block]bool) hs.Expr {
	if visited[b] {
		// A cycle can only arise through an out-of-scope wire; cut it.
		return &hs.Hole{}
	}
	visited[b] = true
	defer delete(visited, b)

	switch b.kind {
	case LiteralBlock:
		return &hs.Lit{Text: b.litText, Type: b.litType}
	case LambdaBlock:
		names := make([]string, len(b.lambda.binders))
		for i, bind := range b.lambda.binders {
			names[i] = bind.name
		}
		return &hs.Lambda{Binders: names, Body: b.inputExpr(b.lambda.result, visited)}
	default:
		args := make([]hs.Expr, len(b.inputs))
		for i, in := range b.inputs {
			args[i] = b.inputExpr(in, visited)
		}
		return hs.ApplyAll(&hs.Ident{Name: b.fn}, args...)
	}
}

func (b *Block) inputExpr(in *InputAnchor, visited map[*Block]bool) hs.Expr {
	id, ok := in.Connection()
	if !ok {
		return &hs.Hole{}
	}
	conn, ok := b.graph.Connection(id)
	if !ok {
		return &hs.Hole{}
	}
	return conn.src.expression(visited)
}
