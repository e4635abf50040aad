package wire

import (
	"fmt"
	"log/slog"
)

// Pane is the editing surface: it owns the graph, the logical clock
// stamping edits, the session token, and the wires in flight.
//
// All mutating methods must be called from a single goroutine, the
// pane's writer. This is the same single-writer discipline the rest
// of the system follows; the clock is atomic only so readers may
// observe it without coordination.
type Pane struct {
	graph    *Graph
	clock    *Clock
	session  string
	recorder Recorder

	wires map[*DrawWire]struct{}
}

// PaneOption configures a pane at construction.
type PaneOption func(*Pane)

// WithRecorder attaches an edit recorder; every committed structural
// edit is forwarded to it.
func WithRecorder(r Recorder) PaneOption {
	return func(p *Pane) { p.recorder = r }
}

// WithSession sets the session token generator. Defaults to UUIDv7.
func WithSession(g SessionTokenGenerator) PaneOption {
	return func(p *Pane) { p.session = g.Generate() }
}

// WithClock sets the pane's logical clock. Used by replay to resume
// from the last journaled sequence number.
func WithClock(c *Clock) PaneOption {
	return func(p *Pane) { p.clock = c }
}

// NewPane creates an empty pane.
func NewPane(opts ...PaneOption) *Pane {
	p := &Pane{
		graph: NewGraph(),
		clock: NewClock(),
		wires: make(map[*DrawWire]struct{}),
	}
	p.session = UUIDv7Generator{}.Generate()
	for _, o := range opts {
		o(p)
	}
	return p
}

// Graph returns the pane's graph.
func (p *Pane) Graph() *Graph { return p.graph }

// Session returns the pane's session token.
func (p *Pane) Session() string { return p.session }

// Clock returns the pane's logical clock.
func (p *Pane) Clock() *Clock { return p.clock }

// Wires returns the wires currently in flight.
func (p *Pane) Wires() []*DrawWire {
	out := make([]*DrawWire, 0, len(p.wires))
	for w := range p.wires {
		out = append(out, w)
	}
	return out
}

// record stamps a committed edit with seq and session and forwards it
// to the recorder. Journal failures are logged, never propagated; the
// in-memory edit already happened and must not be rolled back.
func (p *Pane) record(e Edit) {
	e.Seq = p.clock.Next()
	e.Session = p.session
	if p.recorder == nil {
		return
	}
	if err := p.recorder.RecordEdit(e); err != nil {
		slog.Error("edit journal write failed",
			"seq", e.Seq,
			"kind", string(e.Kind),
			"error", err,
		)
	}
}

// AddFunctionBlock creates a function block and journals the edit.
func (p *Pane) AddFunctionBlock(id, fn, signature string, container Container) (*Block, error) {
	b, err := p.graph.AddFunctionBlock(id, fn, signature, container)
	if err != nil {
		return nil, err
	}
	p.record(Edit{
		Kind: EditAddBlock, Block: id, Func: fn, Signature: signature,
		Parent: containerName(container),
	})
	return b, nil
}

// AddLiteralBlock creates a literal block and journals the edit.
func (p *Pane) AddLiteralBlock(id, text, litType string, container Container) (*Block, error) {
	b, err := p.graph.AddLiteralBlock(id, text, litType, container)
	if err != nil {
		return nil, err
	}
	p.record(Edit{
		Kind: EditAddLiteral, Block: id, Literal: text, LitType: litType,
		Parent: containerName(container),
	})
	return b, nil
}

// AddLambdaBlock creates a lambda block and journals the edit.
func (p *Pane) AddLambdaBlock(id string, binders []string, container Container) (*Block, error) {
	b, err := p.graph.AddLambdaBlock(id, binders, container)
	if err != nil {
		return nil, err
	}
	p.record(Edit{
		Kind: EditAddLambda, Block: id, Binders: binders,
		Parent: containerName(container),
	})
	return b, nil
}

// RemoveBlock deletes a block with all its connections and journals
// the edit.
func (p *Pane) RemoveBlock(id string) error {
	if err := p.graph.RemoveBlock(id); err != nil {
		return err
	}
	p.record(Edit{Kind: EditRemoveBlock, Block: id})
	return nil
}

// Connect commits a connection between two anchors directly, without
// a gesture, and journals the edit. Tooling and replay use this; the
// editor itself wires through BeginWire/ReleaseWire.
func (p *Pane) Connect(a, b Anchor) (*Connection, error) {
	c, err := p.graph.ConnectAnchors(a, b)
	if err != nil {
		return nil, err
	}
	p.record(Edit{
		Kind: EditConnect,
		From: c.src.Ref().String(),
		To:   c.sink.Ref().String(),
	})
	return c, nil
}

// Disconnect removes the connection held by an input anchor and
// journals the edit. A free input is a no-op.
func (p *Pane) Disconnect(sink *InputAnchor) {
	id, ok := sink.Connection()
	if !ok {
		return
	}
	c, _ := p.graph.Connection(id)
	p.graph.Remove(id)
	p.record(Edit{
		Kind: EditDisconnect,
		From: c.src.Ref().String(),
		To:   sink.Ref().String(),
	})
}

// BeginWire starts a drag gesture on an anchor.
//
// On a free anchor the wire hangs off that anchor. On a connected
// input the gesture is a pull-out: the existing connection is removed
// immediately and the wire continues from its former source, so the
// user is visually re-dragging the same wire. Starting a second wire
// on an anchor that already has one in flight fails.
func (p *Pane) BeginWire(a Anchor, gesture GestureID) (*DrawWire, error) {
	if a.wireInProgress() != nil {
		return nil, fmt.Errorf("anchor %s already has a wire in progress", a.Ref())
	}

	fixed := a
	if sink, ok := a.(*InputAnchor); ok {
		if id, connected := sink.Connection(); connected {
			c, _ := p.graph.Connection(id)
			// The former source must be free before anything is torn
			// down; a rejected pull-out leaves the connection intact.
			if c.src.wireInProgress() != nil {
				return nil, fmt.Errorf("anchor %s already has a wire in progress", c.src.Ref())
			}
			fixed = c.src
			p.Disconnect(sink)
		}
	}

	w := &DrawWire{
		pane:    p,
		anchor:  fixed,
		gesture: gesture,
		state:   WireDragging,
	}
	fixed.setWireInProgress(w)
	p.wires[w] = struct{}{}
	logWireEvent("wire started", w)
	return w, nil
}

// MoveWire moves a wire's loose end. Events carrying the wrong gesture
// id, or addressed to a wire that is no longer dragging, are silently
// dropped.
func (p *Pane) MoveWire(w *DrawWire, gesture GestureID, pos Point) {
	if w.state != WireDragging || w.gesture != gesture {
		return
	}
	w.setFreePosition(pos)
}

// ReleaseWire ends a drag gesture. The wire is torn down no matter
// what: a nil target or an illegal pair discards it, a valid pair
// commits a connection. Stale or mismatched-gesture releases are
// silent no-ops, leaving the wire alive for its real gesture.
func (p *Pane) ReleaseWire(w *DrawWire, gesture GestureID, target Anchor) (*Connection, error) {
	if w.state != WireDragging || w.gesture != gesture {
		return nil, nil
	}

	w.anchor.setWireInProgress(nil)
	delete(p.wires, w)

	if target == nil {
		w.state = WireDiscarded
		logWireEvent("wire discarded", w)
		return nil, nil
	}

	c, err := w.buildConnectionTo(target)
	if err != nil {
		w.state = WireDiscarded
		logWireEvent("wire discarded", w)
		return nil, err
	}
	w.state = WireCommitted
	logWireEvent("wire committed", w)
	p.record(Edit{
		Kind: EditConnect,
		From: c.src.Ref().String(),
		To:   c.sink.Ref().String(),
	})
	return c, nil
}

func containerName(c Container) string {
	if _, ok := c.(*TopLevel); ok {
		return ""
	}
	return c.Name()
}
