package wire

import (
	"fmt"
	"log/slog"

	"github.com/skeinproject/skein/internal/hs"
)

// Graph owns the blocks, containers, and connection arena of a pane.
//
// All structural edits flow through the owning pane's single writer,
// so Graph performs no internal locking. Connections live in an arena
// keyed by ConnID; anchors refer to connections by id only, which
// keeps endpoint bookkeeping symmetric and makes stale references
// detectable.
type Graph struct {
	checker *hs.Checker

	blocks map[string]*Block
	order  []string // block ids in creation order, for deterministic walks

	conns    map[ConnID]*Connection
	nextConn ConnID

	top        *TopLevel
	containers []Container

	trace []TraceEntry
}

// NewGraph creates an empty graph with a fresh type checker and a
// top-level container.
func NewGraph() *Graph {
	g := &Graph{
		checker: hs.NewChecker(),
		blocks:  make(map[string]*Block),
		conns:   make(map[ConnID]*Connection),
		top:     &TopLevel{},
	}
	g.containers = append(g.containers, g.top)
	return g
}

// Checker returns the graph's type checker.
func (g *Graph) Checker() *hs.Checker { return g.checker }

// Top returns the root container.
func (g *Graph) Top() *TopLevel { return g.top }

// Containers returns every container in the graph, root first, then
// lambda scopes in creation order.
func (g *Graph) Containers() []Container { return g.containers }

// ContainerByName finds a container by name ("top" or a lambda block id).
func (g *Graph) ContainerByName(name string) (Container, bool) {
	for _, c := range g.containers {
		if c.Name() == name {
			return c, true
		}
	}
	return nil, false
}

// Block finds a block by id.
func (g *Graph) Block(id string) (*Block, bool) {
	b, ok := g.blocks[id]
	return b, ok
}

// Blocks returns all blocks in creation order.
func (g *Graph) Blocks() []*Block {
	out := make([]*Block, 0, len(g.order))
	for _, id := range g.order {
		out = append(out, g.blocks[id])
	}
	return out
}

// Connection finds a committed connection by id. A stale id (already
// removed or evicted) reports false.
func (g *Graph) Connection(id ConnID) (*Connection, bool) {
	c, ok := g.conns[id]
	return c, ok
}

// Connections returns all committed connections in id order.
func (g *Graph) Connections() []*Connection {
	out := make([]*Connection, 0, len(g.conns))
	for id := ConnID(1); id <= g.nextConn; id++ {
		if c, ok := g.conns[id]; ok {
			out = append(out, c)
		}
	}
	return out
}

// AddFunctionBlock creates a block applying a named function whose
// type signature determines the input arity.
func (g *Graph) AddFunctionBlock(id, fn, signature string, container Container) (*Block, error) {
	if err := g.checkNewBlock(id, container); err != nil {
		return nil, err
	}
	sig, err := hs.ParseType(signature)
	if err != nil {
		return nil, fmt.Errorf("block %q: bad signature: %w", id, err)
	}
	b := newFunctionBlock(g, id, fn, sig, signature, container)
	g.install(b)
	return b, nil
}

// AddLiteralBlock creates a source-only block carrying a literal value.
func (g *Graph) AddLiteralBlock(id, text, litType string, container Container) (*Block, error) {
	if err := g.checkNewBlock(id, container); err != nil {
		return nil, err
	}
	var typ hs.Type
	if litType != "" {
		t, err := hs.ParseType(litType)
		if err != nil {
			return nil, fmt.Errorf("block %q: bad literal type: %w", id, err)
		}
		typ = t
	}
	b := newLiteralBlock(g, id, text, typ, litType, container)
	g.install(b)
	return b, nil
}

// AddLambdaBlock creates a lambda block with the given argument
// binders. The block carries one output (the function value) and owns
// a body container holding the binder anchors and a result anchor.
func (g *Graph) AddLambdaBlock(id string, binders []string, container Container) (*Block, error) {
	if err := g.checkNewBlock(id, container); err != nil {
		return nil, err
	}
	if len(binders) == 0 {
		return nil, fmt.Errorf("lambda %q needs at least one binder", id)
	}
	b := newLambdaBlock(g, id, binders, container)
	g.install(b)
	g.containers = append(g.containers, b.lambda)
	return b, nil
}

func (g *Graph) checkNewBlock(id string, container Container) error {
	if id == "" {
		return fmt.Errorf("empty block id")
	}
	if _, exists := g.blocks[id]; exists {
		return fmt.Errorf("block %q already exists", id)
	}
	if container == nil {
		return fmt.Errorf("block %q: nil container", id)
	}
	return nil
}

func (g *Graph) install(b *Block) {
	g.blocks[b.id] = b
	g.order = append(g.order, b.id)
}

// RemoveBlock deletes a block and every connection touching any of its
// anchors, then propagates from each source that lost a sink. Removing
// a lambda block removes its body scope with everything inside it:
// body blocks (including nested lambdas and their contents) go too, so
// no block is left holding a reference to a dead scope.
func (g *Graph) RemoveBlock(id string) error {
	b, ok := g.blocks[id]
	if !ok {
		return fmt.Errorf("unknown block %q", id)
	}

	doomed := []*Block{b}
	if b.lambda != nil {
		for _, bid := range g.order {
			inner := g.blocks[bid]
			if inner != b && inner.container.IsContainedWithin(b.lambda) {
				doomed = append(doomed, inner)
			}
		}
	}

	var dirty []Source
	seen := make(map[Source]bool)
	for _, d := range doomed {
		for _, src := range g.severBlock(d) {
			if !seen[src] {
				seen[src] = true
				dirty = append(dirty, src)
			}
		}
	}
	for _, d := range doomed {
		g.uninstall(d)
	}

	for _, src := range dirty {
		if _, alive := g.blocks[src.Block().id]; !alive {
			continue
		}
		src.initiateConnectionChanges(g)
	}
	return nil
}

// uninstall drops a severed block from the block map, the creation
// order, and the container list.
func (g *Graph) uninstall(b *Block) {
	delete(g.blocks, b.id)
	for i, bid := range g.order {
		if bid == b.id {
			g.order = append(g.order[:i], g.order[i+1:]...)
			break
		}
	}
	if b.lambda != nil {
		for i, c := range g.containers {
			if c == Container(b.lambda) {
				g.containers = append(g.containers[:i], g.containers[i+1:]...)
				break
			}
		}
	}
}

// severBlock removes every connection touching b's anchors and returns
// the surviving sources whose downstream changed.
func (g *Graph) severBlock(b *Block) []Source {
	var dirty []Source
	seen := make(map[Source]bool)

	sever := func(id ConnID) {
		c, ok := g.conns[id]
		if !ok {
			return
		}
		g.detach(c)
		if c.src.Block() != b && !seen[c.src] {
			seen[c.src] = true
			dirty = append(dirty, c.src)
		}
	}

	for _, in := range b.inputs {
		if id, ok := in.Connection(); ok {
			sever(id)
		}
	}
	for _, out := range b.outputs {
		for _, id := range append([]ConnID(nil), out.Connections()...) {
			sever(id)
		}
	}
	if b.lambda != nil {
		for _, bind := range b.lambda.binders {
			for _, id := range append([]ConnID(nil), bind.Connections()...) {
				sever(id)
			}
		}
		if id, ok := b.lambda.result.Connection(); ok {
			sever(id)
		}
	}
	return dirty
}

// Connect commits a connection from src to sink. If the sink already
// holds a connection it is evicted first; the eviction and the new
// attachment happen back to back with no propagation in between, so
// the input never observably holds two connections. Propagation runs
// once, from the new source, and once from the evicted source if its
// downstream shrank.
func (g *Graph) Connect(src Source, sink *InputAnchor) *Connection {
	var evictedSrc Source
	if old, ok := sink.Connection(); ok {
		if c, ok := g.conns[old]; ok {
			evictedSrc = c.src
			g.detach(c)
		}
	}

	g.nextConn++
	c := &Connection{id: g.nextConn, src: src, sink: sink}
	g.conns[c.id] = c
	src.addConnection(c.id)
	sink.setConnection(c.id)

	slog.Debug("connection committed",
		"conn", int64(c.id),
		"from", src.Ref().String(),
		"to", sink.Ref().String(),
		"in_scope", c.InScope(),
	)

	src.initiateConnectionChanges(g)
	if evictedSrc != nil && evictedSrc != src {
		evictedSrc.initiateConnectionChanges(g)
	}
	return c
}

// ConnectAnchors classifies a pair of anchors and commits a connection
// between them, rejecting pairs that do not form one source and one
// sink. On rejection the graph is untouched.
func (g *Graph) ConnectAnchors(a, b Anchor) (*Connection, error) {
	if a == nil || b == nil {
		return nil, &IllegalConnectionError{Code: CodeMissingAnchor}
	}
	if a == b {
		return nil, &IllegalConnectionError{Code: CodeSameAnchor, From: a.Ref().String(), To: b.Ref().String()}
	}

	srcA, aIsSrc := a.(Source)
	srcB, bIsSrc := b.(Source)
	sinkA, aIsSink := a.(*InputAnchor)
	sinkB, bIsSink := b.(*InputAnchor)

	switch {
	case aIsSrc && bIsSink:
		return g.Connect(srcA, sinkB), nil
	case bIsSrc && aIsSink:
		return g.Connect(srcB, sinkA), nil
	case aIsSink && bIsSink:
		return nil, &IllegalConnectionError{Code: CodeInputToInput, From: a.Ref().String(), To: b.Ref().String()}
	default:
		return nil, &IllegalConnectionError{Code: CodeOutputToOutput, From: a.Ref().String(), To: b.Ref().String()}
	}
}

// Remove deletes a committed connection and propagates from its former
// source. Removing an already-removed id is a no-op.
func (g *Graph) Remove(id ConnID) {
	c, ok := g.conns[id]
	if !ok {
		return
	}
	g.detach(c)
	c.src.initiateConnectionChanges(g)
}

// detach unlinks a connection from both endpoints and the arena
// without propagating.
func (g *Graph) detach(c *Connection) {
	c.src.removeConnection(c.id)
	c.sink.clearConnection(c.id)
	c.sink.typeErr = nil
	delete(g.conns, c.id)
}
