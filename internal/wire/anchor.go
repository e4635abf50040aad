package wire

import (
	"log/slog"

	"github.com/skeinproject/skein/internal/hs"
)

// Anchor is the capability common to every connection endpoint: a
// typed point on a block where wires attach.
//
// The concrete variants form a closed set: *InputAnchor is the only
// sink, and *OutputAnchor plus its *BinderAnchor specialization are
// the sources (the Source interface). Connection building classifies
// endpoints by variant in exactly one place, buildConnectionTo.
type Anchor interface {
	// Block returns the block this anchor belongs to.
	Block() *Block
	// Container returns the scope this anchor is wired within.
	Container() Container
	// Type returns the current inferred type of the anchor.
	Type() hs.Type
	// Ref returns the stable reference used by journal and diagrams.
	Ref() AnchorRef

	wireInProgress() *DrawWire
	setWireInProgress(w *DrawWire)
}

// Source is the output-side anchor capability. An output may feed any
// number of connections.
type Source interface {
	Anchor

	// Connections returns the ids of all outgoing connections.
	Connections() []ConnID

	addConnection(id ConnID)
	removeConnection(id ConnID)

	// initiateConnectionChanges starts the two-phase propagation
	// protocol from this anchor.
	initiateConnectionChanges(g *Graph)

	expression(visited map[*Block]bool) hs.Expr
}

// anchorBase carries the state shared by all anchor variants.
type anchorBase struct {
	block *Block
	index int
	typ   hs.Type
	wire  *DrawWire
}

func (a *anchorBase) Block() *Block        { return a.block }
func (a *anchorBase) Type() hs.Type        { return a.typ }
func (a *anchorBase) Container() Container { return a.block.container }

func (a *anchorBase) wireInProgress() *DrawWire     { return a.wire }
func (a *anchorBase) setWireInProgress(w *DrawWire) { a.wire = w }

// InputAnchor is a sink holding at most one committed connection.
//
// The single-connection invariant is maintained by Graph.Connect:
// targeting an occupied input evicts the previous connection before
// installing the new one, with no externally observable intermediate
// state.
type InputAnchor struct {
	anchorBase

	conn    ConnID // 0 when unconnected
	typeErr error  // last unification failure on this anchor
	result  bool   // true for a lambda body's result anchor
}

// HasConnection reports whether the input currently holds a connection.
func (a *InputAnchor) HasConnection() bool { return a.conn != 0 }

// Connection returns the id of the held connection, if any.
func (a *InputAnchor) Connection() (ConnID, bool) {
	if a.conn == 0 {
		return 0, false
	}
	return a.conn, true
}

// TypeError returns the last unification failure recorded on this
// anchor, or nil. Inference failures never block editing; they are
// surfaced here for inspection collaborators.
func (a *InputAnchor) TypeError() error { return a.typeErr }

// Container returns the scope the anchor is wired within. A lambda's
// result anchor belongs to the lambda block but is scoped to the
// body container.
func (a *InputAnchor) Container() Container {
	if a.result {
		return a.block.lambda
	}
	return a.block.container
}

// Ref returns the stable reference of this anchor.
func (a *InputAnchor) Ref() AnchorRef {
	if a.result {
		return AnchorRef{Block: a.block.id, Dir: DirResult}
	}
	return AnchorRef{Block: a.block.id, Dir: DirIn, Index: a.index}
}

func (a *InputAnchor) setConnection(id ConnID) { a.conn = id }

func (a *InputAnchor) clearConnection(id ConnID) {
	if a.conn == id {
		a.conn = 0
	}
}

// applyTypeFrom unifies the connected source's type into this anchor,
// recording rather than returning any mismatch: the graph must stay
// editable while ill-typed.
func (a *InputAnchor) applyTypeFrom(src Anchor) {
	a.typeErr = nil
	if err := hs.Unify(src.Type(), a.typ); err != nil {
		a.typeErr = err
		slog.Debug("type mismatch on connection",
			"from", src.Ref().String(),
			"to", a.Ref().String(),
			"error", err,
		)
	}
}

// OutputAnchor is a source feeding any number of connections.
type OutputAnchor struct {
	anchorBase

	conns []ConnID
}

// Connections returns the ids of all outgoing connections, in the
// order they were committed.
func (a *OutputAnchor) Connections() []ConnID { return a.conns }

// Ref returns the stable reference of this anchor.
func (a *OutputAnchor) Ref() AnchorRef {
	return AnchorRef{Block: a.block.id, Dir: DirOut, Index: a.index}
}

func (a *OutputAnchor) addConnection(id ConnID) {
	a.conns = append(a.conns, id)
}

func (a *OutputAnchor) removeConnection(id ConnID) {
	for i, c := range a.conns {
		if c == id {
			a.conns = append(a.conns[:i], a.conns[i+1:]...)
			return
		}
	}
}

// initiateConnectionChanges runs the two-phase protocol over the
// downstream region of this anchor's block: prepare everywhere first,
// then handle non-final, then handle final.
func (a *OutputAnchor) initiateConnectionChanges(g *Graph) {
	region := g.collectRegion(a.block)
	for _, t := range region {
		g.recordPhase(t, PhasePrepare)
		t.prepareConnectionChanges(g.checker)
	}
	for _, t := range region {
		g.recordPhase(t, PhasePropagate)
		t.handleConnectionChanges(false)
	}
	for _, t := range region {
		g.recordPhase(t, PhaseSettle)
		t.handleConnectionChanges(true)
	}
}

func (a *OutputAnchor) expression(visited map[*Block]bool) hs.Expr {
	return a.block.expression(visited)
}

// BinderAnchor is the internal output anchor of a lambda argument
// binder. It lives on the lambda block but is scoped to the body
// container, and it is a hard propagation wall: changes initiated
// here run the protocol against the owning container only, never
// escaping the scope boundary.
type BinderAnchor struct {
	OutputAnchor

	lambda *LambdaContainer
	name   string
}

// Name returns the binder's identifier as it appears in the lambda.
func (a *BinderAnchor) Name() string { return a.name }

// Container returns the lambda body scope the binder belongs to.
func (a *BinderAnchor) Container() Container { return a.lambda }

// Ref returns the stable reference of this anchor.
func (a *BinderAnchor) Ref() AnchorRef {
	return AnchorRef{Block: a.block.id, Dir: DirBinder, Index: a.index}
}

// initiateConnectionChanges starts a two-phase change propagation
// from this binder, confined to its own container.
func (a *BinderAnchor) initiateConnectionChanges(g *Graph) {
	g.recordPhase(a.lambda, PhasePrepare)
	a.lambda.prepareConnectionChanges(g.checker)
	g.recordPhase(a.lambda, PhasePropagate)
	a.lambda.handleConnectionChanges(false)
	g.recordPhase(a.lambda, PhaseSettle)
	a.lambda.handleConnectionChanges(true)
}

// expression returns the binder as a bare identifier: the scope of a
// binder's definition never extends past its container, so nothing
// upstream of the lambda is pulled into the expression.
func (a *BinderAnchor) expression(map[*Block]bool) hs.Expr {
	return &hs.Ident{Name: a.name}
}
