package wire

import "sync/atomic"

// Clock is the monotonic logical clock stamping committed edits.
//
// Every structural edit gets a strictly increasing seq number. The
// journal orders edits by seq, so replay reproduces the exact edit
// order without wall-clock races.
//
// Thread-safety: Clock is safe for concurrent use (atomic operations),
// though the pane's single-writer design means only one goroutine
// typically calls Next().
type Clock struct {
	seq atomic.Int64
}

// NewClock creates a new clock starting at 0.
func NewClock() *Clock {
	return &Clock{}
}

// NewClockAt creates a clock starting at a specific sequence number.
// Used by replay to resume from the last journaled position.
func NewClockAt(start int64) *Clock {
	c := &Clock{}
	c.seq.Store(start)
	return c
}

// Next returns the next sequence number and increments the clock.
func (c *Clock) Next() int64 {
	return c.seq.Add(1)
}

// Current returns the current sequence number without incrementing.
func (c *Clock) Current() int64 {
	return c.seq.Load()
}
