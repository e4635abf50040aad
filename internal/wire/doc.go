// Package wire implements the anchor/connection graph at the heart of
// the skein editor: the live, user-editable structure linking block
// outputs to block inputs, and the protocol that re-propagates type
// information through it on every structural change.
//
// ARCHITECTURE:
//
// Single-Writer Editing:
// All graph mutations happen on one logical goroutine, driven by
// discrete gesture events (begin/move/release). After any public
// mutating operation returns, the graph is fully consistent - no
// input anchor ever holds two connections, and no connection dangles.
// Readers (renderer, inspector) may observe the graph at any point
// between operations.
//
// Gesture Flow:
//  1. Pane.BeginWire creates a DrawWire rooted at an anchor. Grabbing
//     a connected input "pulls out" the existing wire: the connection
//     is removed and the new DrawWire originates from its far end.
//  2. Pane.MoveWire updates the free endpoint and the scope-validity
//     hint. A move carrying a gesture identity with no active wire is
//     silently ignored.
//  3. Pane.ReleaseWire either commits a Connection (evicting whatever
//     previously occupied the target input) or discards the wire.
//     Either way the scratch state is torn down unconditionally.
//
// Two-Phase Propagation:
// Committing a connection triggers propagation over the affected
// region (the downstream closure of the source's block). The region
// is prepared in full - every block re-instantiates its anchor types
// - strictly before any handling happens; then every participant
// handles the change twice, first non-final and then final. The two
// passes exist because lambda containers can be mutually dependent: a
// binder's type is known only from its uses, and the uses may sit
// inside further nested scopes. Binder anchors are hard propagation
// walls: changes initiated at a binder run the protocol against its
// own container only.
//
// Determinism:
// Regions are walked in discovery order, anchors in index order, and
// every committed edit is stamped with a monotonic seq number, so an
// edit journal replays to an identical graph.
package wire
