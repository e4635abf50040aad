package wire

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPane(t *testing.T) *Pane {
	t.Helper()
	return NewPane(WithSession(NewFixedGenerator("test-session")))
}

func TestReleaseWire_CommitsConnection(t *testing.T) {
	p := testPane(t)
	lit, err := p.AddLiteralBlock("five", "5", "Int", p.Graph().Top())
	require.NoError(t, err)
	succ, err := p.AddFunctionBlock("succ", "succ", "Int -> Int", p.Graph().Top())
	require.NoError(t, err)

	w, err := p.BeginWire(lit.Outputs()[0], MouseGesture)
	require.NoError(t, err)
	assert.Equal(t, WireDragging, w.State())

	p.MoveWire(w, MouseGesture, Point{X: 10, Y: 10})
	c, err := p.ReleaseWire(w, MouseGesture, succ.Inputs()[0])
	require.NoError(t, err)
	require.NotNil(t, c)

	assert.Equal(t, WireCommitted, w.State())
	assert.True(t, succ.Inputs()[0].HasConnection())
	assert.Empty(t, p.Wires())
	assert.Nil(t, lit.Outputs()[0].wireInProgress())
}

func TestReleaseWire_OverNothingDiscards(t *testing.T) {
	p := testPane(t)
	lit, err := p.AddLiteralBlock("five", "5", "Int", p.Graph().Top())
	require.NoError(t, err)

	w, err := p.BeginWire(lit.Outputs()[0], MouseGesture)
	require.NoError(t, err)
	c, err := p.ReleaseWire(w, MouseGesture, nil)
	require.NoError(t, err)
	assert.Nil(t, c)

	assert.Equal(t, WireDiscarded, w.State())
	assert.Empty(t, p.Graph().Connections(), "begin then release over empty is a net no-op")
	assert.Empty(t, lit.Outputs()[0].Connections())
}

func TestReleaseWire_IllegalPairDiscards(t *testing.T) {
	p := testPane(t)
	one, err := p.AddLiteralBlock("one", "1", "Int", p.Graph().Top())
	require.NoError(t, err)
	two, err := p.AddLiteralBlock("two", "2", "Int", p.Graph().Top())
	require.NoError(t, err)

	w, err := p.BeginWire(one.Outputs()[0], MouseGesture)
	require.NoError(t, err)
	c, err := p.ReleaseWire(w, MouseGesture, two.Outputs()[0])
	assert.Nil(t, c)
	require.Error(t, err)
	assert.True(t, IsIllegalConnection(err))

	assert.Equal(t, WireDiscarded, w.State())
	assert.Empty(t, p.Graph().Connections())
}

func TestBeginWire_PullOutRemovesConnection(t *testing.T) {
	p := testPane(t)
	lit, err := p.AddLiteralBlock("five", "5", "Int", p.Graph().Top())
	require.NoError(t, err)
	succ, err := p.AddFunctionBlock("succ", "succ", "Int -> Int", p.Graph().Top())
	require.NoError(t, err)
	_, err = p.Connect(lit.Outputs()[0], succ.Inputs()[0])
	require.NoError(t, err)

	// Grabbing a connected input re-drags the wire from its source.
	w, err := p.BeginWire(succ.Inputs()[0], MouseGesture)
	require.NoError(t, err)
	assert.Same(t, lit.Outputs()[0], w.Anchor())
	assert.False(t, succ.Inputs()[0].HasConnection(),
		"pull-out severs the connection immediately")

	// Dropping it over nothing leaves the input free.
	_, err = p.ReleaseWire(w, MouseGesture, nil)
	require.NoError(t, err)
	assert.False(t, succ.Inputs()[0].HasConnection())
	assert.Empty(t, p.Graph().Connections())
}

func TestBeginWire_Displacement(t *testing.T) {
	p := testPane(t)
	lit, err := p.AddLiteralBlock("five", "5", "Int", p.Graph().Top())
	require.NoError(t, err)
	succ, err := p.AddFunctionBlock("succ", "succ", "Int -> Int", p.Graph().Top())
	require.NoError(t, err)
	idb, err := p.AddFunctionBlock("idb", "id", "a -> a", p.Graph().Top())
	require.NoError(t, err)
	_, err = p.Connect(lit.Outputs()[0], succ.Inputs()[0])
	require.NoError(t, err)

	// Pull the wire out of succ and drop it on id instead.
	w, err := p.BeginWire(succ.Inputs()[0], MouseGesture)
	require.NoError(t, err)
	c, err := p.ReleaseWire(w, MouseGesture, idb.Inputs()[0])
	require.NoError(t, err)
	require.NotNil(t, c)

	assert.False(t, succ.Inputs()[0].HasConnection())
	assert.True(t, idb.Inputs()[0].HasConnection())
	assert.Len(t, p.Graph().Connections(), 1)
}

func TestBeginWire_SecondWireOnAnchorFails(t *testing.T) {
	p := testPane(t)
	lit, err := p.AddLiteralBlock("five", "5", "Int", p.Graph().Top())
	require.NoError(t, err)

	_, err = p.BeginWire(lit.Outputs()[0], GestureID(1))
	require.NoError(t, err)
	_, err = p.BeginWire(lit.Outputs()[0], GestureID(2))
	assert.Error(t, err)
}

func TestBeginWire_RejectedPullOutLeavesConnection(t *testing.T) {
	p := testPane(t)
	lit, err := p.AddLiteralBlock("five", "5", "Int", p.Graph().Top())
	require.NoError(t, err)
	succ, err := p.AddFunctionBlock("succ", "succ", "Int -> Int", p.Graph().Top())
	require.NoError(t, err)
	c, err := p.Connect(lit.Outputs()[0], succ.Inputs()[0])
	require.NoError(t, err)

	// The source is busy with another gesture, so the pull-out from the
	// connected input must fail without touching the graph.
	_, err = p.BeginWire(lit.Outputs()[0], GestureID(1))
	require.NoError(t, err)
	_, err = p.BeginWire(succ.Inputs()[0], GestureID(2))
	require.Error(t, err)

	assert.True(t, succ.Inputs()[0].HasConnection(),
		"a failed pull-out must leave the connection intact")
	_, ok := p.Graph().Connection(c.ID())
	assert.True(t, ok)
	assert.Len(t, p.Graph().Connections(), 1)
}

func TestWire_StaleGestureEventsIgnored(t *testing.T) {
	p := testPane(t)
	lit, err := p.AddLiteralBlock("five", "5", "Int", p.Graph().Top())
	require.NoError(t, err)
	succ, err := p.AddFunctionBlock("succ", "succ", "Int -> Int", p.Graph().Top())
	require.NoError(t, err)

	w, err := p.BeginWire(lit.Outputs()[0], GestureID(3))
	require.NoError(t, err)
	p.MoveWire(w, GestureID(3), Point{X: 5, Y: 5})

	// Events from another gesture never touch this wire.
	p.MoveWire(w, GestureID(4), Point{X: 99, Y: 99})
	assert.Equal(t, Point{X: 5, Y: 5}, w.FreePosition())

	c, err := p.ReleaseWire(w, GestureID(4), succ.Inputs()[0])
	assert.Nil(t, c)
	assert.NoError(t, err)
	assert.Equal(t, WireDragging, w.State(), "foreign release must not end the drag")

	// The owning gesture still works.
	c, err = p.ReleaseWire(w, GestureID(3), succ.Inputs()[0])
	require.NoError(t, err)
	require.NotNil(t, c)

	// A spent wire absorbs every further event.
	p.MoveWire(w, GestureID(3), Point{X: 1, Y: 1})
	c2, err := p.ReleaseWire(w, GestureID(3), succ.Inputs()[0])
	assert.Nil(t, c2)
	assert.NoError(t, err)
	assert.Len(t, p.Graph().Connections(), 1)
}

func TestWire_ScopeHintFollowsPosition(t *testing.T) {
	p := testPane(t)
	lam, err := p.AddLambdaBlock("f", []string{"x"}, p.Graph().Top())
	require.NoError(t, err)
	lam.Lambda().SetBounds(Bounds{Min: Point{X: 0, Y: 0}, Max: Point{X: 100, Y: 100}})

	// From a binder, the loose end must stay inside the lambda body.
	w, err := p.BeginWire(lam.Lambda().Binders()[0], MouseGesture)
	require.NoError(t, err)
	p.MoveWire(w, MouseGesture, Point{X: 50, Y: 50})
	assert.True(t, w.InScope())
	p.MoveWire(w, MouseGesture, Point{X: 200, Y: 200})
	assert.False(t, w.InScope())
	_, err = p.ReleaseWire(w, MouseGesture, nil)
	require.NoError(t, err)

	// From a top-level source, everywhere is in scope.
	lit, err := p.AddLiteralBlock("five", "5", "Int", p.Graph().Top())
	require.NoError(t, err)
	w, err = p.BeginWire(lit.Outputs()[0], MouseGesture)
	require.NoError(t, err)
	p.MoveWire(w, MouseGesture, Point{X: 50, Y: 50})
	assert.True(t, w.InScope(), "dropping into a nested scope is legal from above")
	_, err = p.ReleaseWire(w, MouseGesture, nil)
	require.NoError(t, err)
}

func TestWire_ScopeHintOverlappingSiblingScopes(t *testing.T) {
	p := testPane(t)
	la, err := p.AddLambdaBlock("la", []string{"x"}, p.Graph().Top())
	require.NoError(t, err)
	lb, err := p.AddLambdaBlock("lb", []string{"y"}, p.Graph().Top())
	require.NoError(t, err)
	la.Lambda().SetBounds(Bounds{Min: Point{X: 0, Y: 0}, Max: Point{X: 100, Y: 100}})
	lb.Lambda().SetBounds(Bounds{Min: Point{X: 50, Y: 0}, Max: Point{X: 150, Y: 100}})

	succ, err := p.AddFunctionBlock("succ", "succ", "Int -> Int", la.Lambda())
	require.NoError(t, err)

	// The prospective source must sit in the input's scope or one
	// enclosing it; a sibling scope under the point breaks that no
	// matter how deep the point also sits in the input's own scope.
	w, err := p.BeginWire(succ.Inputs()[0], MouseGesture)
	require.NoError(t, err)

	p.MoveWire(w, MouseGesture, Point{X: 25, Y: 50})
	assert.True(t, w.InScope(), "inside the input's own scope only")

	p.MoveWire(w, MouseGesture, Point{X: 75, Y: 50})
	assert.False(t, w.InScope(), "overlap with a sibling scope is out")

	p.MoveWire(w, MouseGesture, Point{X: 125, Y: 50})
	assert.False(t, w.InScope(), "inside the sibling scope only")

	p.MoveWire(w, MouseGesture, Point{X: 200, Y: 50})
	assert.True(t, w.InScope(), "a source above the input's scope is fine")

	_, err = p.ReleaseWire(w, MouseGesture, nil)
	require.NoError(t, err)
}

func TestWire_OutOfScopeConnectionStillCommits(t *testing.T) {
	p := testPane(t)
	lam, err := p.AddLambdaBlock("f", []string{"x"}, p.Graph().Top())
	require.NoError(t, err)
	show, err := p.AddFunctionBlock("show", "show", "a -> String", p.Graph().Top())
	require.NoError(t, err)

	w, err := p.BeginWire(lam.Lambda().Binders()[0], MouseGesture)
	require.NoError(t, err)
	c, err := p.ReleaseWire(w, MouseGesture, show.Inputs()[0])
	require.NoError(t, err)
	require.NotNil(t, c)

	assert.Equal(t, WireCommitted, w.State())
	assert.False(t, c.InScope(), "scope violations are hints, not vetoes")
}
