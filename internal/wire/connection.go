package wire

// ConnID identifies a committed connection within its graph. Ids are
// allocated from a monotonic counter and never reused, so a stale id
// held across edits resolves to nothing rather than to a different
// connection.
type ConnID int64

// Connection is a committed directed edge from a source anchor to an
// input anchor. Connections are immutable once created; edits replace
// them rather than mutating endpoints.
type Connection struct {
	id   ConnID
	src  Source
	sink *InputAnchor
}

// ID returns the connection's stable identifier.
func (c *Connection) ID() ConnID { return c.id }

// Source returns the output-side endpoint.
func (c *Connection) Source() Source { return c.src }

// Sink returns the input-side endpoint.
func (c *Connection) Sink() *InputAnchor { return c.sink }

// InScope reports whether the connection respects container nesting:
// the sink's scope must be the source's scope or nested within it.
// Out-of-scope connections are legal and functional; this is a hint
// for the rendering layer, which draws them dashed.
func (c *Connection) InScope() bool {
	return c.sink.Container().IsContainedWithin(c.src.Container())
}
