package wire

import "log/slog"

// WireState is the lifecycle state of a drag gesture.
type WireState string

const (
	// WireDragging is the live state; the wire follows the pointer.
	WireDragging WireState = "dragging"
	// WireCommitted means the release produced a connection.
	WireCommitted WireState = "committed"
	// WireDiscarded means the release produced nothing.
	WireDiscarded WireState = "discarded"
)

// GestureID identifies the input gesture driving a wire: a touch id,
// or MouseGesture for the pointer. Wires ignore events from any other
// gesture, so concurrent touches cannot steal each other's wires.
type GestureID int64

// MouseGesture is the gesture id of the mouse pointer.
const MouseGesture GestureID = -1

// DrawWire is a wire-in-progress: one end fixed on an anchor, the
// other following a drag gesture. It is a transient object; once
// released it is spent and every further event on it is a no-op.
type DrawWire struct {
	pane    *Pane
	anchor  Anchor
	gesture GestureID
	free    Point
	inScope bool
	state   WireState
}

// Anchor returns the fixed endpoint.
func (w *DrawWire) Anchor() Anchor { return w.anchor }

// Gesture returns the driving gesture id.
func (w *DrawWire) Gesture() GestureID { return w.gesture }

// State returns the wire's lifecycle state.
func (w *DrawWire) State() WireState { return w.state }

// FreePosition returns the current position of the loose end.
func (w *DrawWire) FreePosition() Point { return w.free }

// InScope reports whether a connection dropped at the current free
// position would respect container nesting. Purely a rendering hint;
// out-of-scope wires are drawn dashed but connect all the same.
func (w *DrawWire) InScope() bool { return w.inScope }

// setFreePosition moves the loose end and recomputes the scope hint.
// From a source anchor the loose end is a prospective sink, which must
// stay inside the source container's bounds. From a sink anchor it is
// a prospective source: every container whose bounds cover the point
// must be the sink's container or one enclosing it, so a sibling scope
// under the point flags the wire even when scopes overlap on screen.
func (w *DrawWire) setFreePosition(p Point) {
	w.free = p
	if _, isSink := w.anchor.(*InputAnchor); isSink {
		w.inScope = true
		for _, c := range w.pane.graph.containers {
			if c.Bounds().Contains(p) && !w.anchor.Container().IsContainedWithin(c) {
				w.inScope = false
				return
			}
		}
		return
	}
	w.inScope = w.anchor.Container().Bounds().Contains(p)
}

// buildConnectionTo commits a connection between the fixed anchor and
// the release target. The pair must form one source and one sink;
// anything else leaves the graph untouched.
func (w *DrawWire) buildConnectionTo(target Anchor) (*Connection, error) {
	return w.pane.graph.ConnectAnchors(w.anchor, target)
}

func logWireEvent(event string, w *DrawWire) {
	slog.Debug(event,
		"anchor", w.anchor.Ref().String(),
		"gesture", int64(w.gesture),
		"state", string(w.state),
	)
}
