package wire

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skeinproject/skein/internal/hs"
)

type memRecorder struct {
	edits []Edit
}

func (r *memRecorder) RecordEdit(e Edit) error {
	r.edits = append(r.edits, e)
	return nil
}

func TestPane_JournalsEditsInOrder(t *testing.T) {
	rec := &memRecorder{}
	p := NewPane(WithRecorder(rec), WithSession(NewFixedGenerator("sess-1")))

	lit, err := p.AddLiteralBlock("five", "5", "Int", p.Graph().Top())
	require.NoError(t, err)
	succ, err := p.AddFunctionBlock("succ", "succ", "Int -> Int", p.Graph().Top())
	require.NoError(t, err)
	_, err = p.Connect(lit.Outputs()[0], succ.Inputs()[0])
	require.NoError(t, err)
	p.Disconnect(succ.Inputs()[0])

	require.Len(t, rec.edits, 4)
	kinds := make([]EditKind, len(rec.edits))
	for i, e := range rec.edits {
		kinds[i] = e.Kind
		assert.Equal(t, "sess-1", e.Session)
		assert.Equal(t, int64(i+1), e.Seq, "seq numbers are dense and ordered")
	}
	assert.Equal(t, []EditKind{EditAddLiteral, EditAddBlock, EditConnect, EditDisconnect}, kinds)

	assert.Equal(t, "five.out[0]", rec.edits[2].From)
	assert.Equal(t, "succ.in[0]", rec.edits[2].To)
}

func TestPane_WireGestureJournalsConnect(t *testing.T) {
	rec := &memRecorder{}
	p := NewPane(WithRecorder(rec), WithSession(NewFixedGenerator("sess-1")))

	lit, err := p.AddLiteralBlock("five", "5", "Int", p.Graph().Top())
	require.NoError(t, err)
	succ, err := p.AddFunctionBlock("succ", "succ", "Int -> Int", p.Graph().Top())
	require.NoError(t, err)

	w, err := p.BeginWire(lit.Outputs()[0], MouseGesture)
	require.NoError(t, err)
	_, err = p.ReleaseWire(w, MouseGesture, succ.Inputs()[0])
	require.NoError(t, err)

	last := rec.edits[len(rec.edits)-1]
	assert.Equal(t, EditConnect, last.Kind)
	assert.Equal(t, "five.out[0]", last.From)
	assert.Equal(t, "succ.in[0]", last.To)

	// A discarded wire journals nothing.
	n := len(rec.edits)
	w, err = p.BeginWire(succ.Outputs()[0], MouseGesture)
	require.NoError(t, err)
	_, err = p.ReleaseWire(w, MouseGesture, nil)
	require.NoError(t, err)
	assert.Len(t, rec.edits, n)
}

func TestPane_ReplayRebuildsDiagram(t *testing.T) {
	rec := &memRecorder{}
	p := NewPane(WithRecorder(rec), WithSession(NewFixedGenerator("sess-1")))

	mapB, err := p.AddFunctionBlock("mapB", "map", "(a -> b) -> [a] -> [b]", p.Graph().Top())
	require.NoError(t, err)
	list, err := p.AddLiteralBlock("list", "[1,2,3]", "[Int]", p.Graph().Top())
	require.NoError(t, err)
	lam, err := p.AddLambdaBlock("f", []string{"x"}, p.Graph().Top())
	require.NoError(t, err)
	succ, err := p.AddFunctionBlock("succ", "succ", "Int -> Int", lam.Lambda())
	require.NoError(t, err)

	_, err = p.Connect(lam.Lambda().Binders()[0], succ.Inputs()[0])
	require.NoError(t, err)
	_, err = p.Connect(succ.Outputs()[0], lam.Lambda().Result())
	require.NoError(t, err)
	_, err = p.Connect(lam.Outputs()[0], mapB.Inputs()[0])
	require.NoError(t, err)
	_, err = p.Connect(list.Outputs()[0], mapB.Inputs()[1])
	require.NoError(t, err)

	// Obsolete work is journaled too; replay must survive it.
	_, err = p.AddLiteralBlock("extra", "0", "Int", p.Graph().Top())
	require.NoError(t, err)
	require.NoError(t, p.RemoveBlock("extra"))

	q := NewPane(WithSession(NewFixedGenerator("sess-2")))
	for _, e := range rec.edits {
		require.NoError(t, q.ApplyEdit(e), "edit seq %d", e.Seq)
	}

	got, ok := q.Graph().Block("mapB")
	require.True(t, ok)
	assert.Equal(t, mapB.Expression().ToHaskell(), got.Expression().ToHaskell())
	assert.Equal(t,
		hs.TypeString(mapB.Outputs()[0].Type()),
		hs.TypeString(got.Outputs()[0].Type()))

	_, ok = q.Graph().Block("extra")
	assert.False(t, ok)
	assert.Len(t, q.Graph().Connections(), len(p.Graph().Connections()))
}

func TestPane_EvictionJournalsSingleConnect(t *testing.T) {
	rec := &memRecorder{}
	p := NewPane(WithRecorder(rec), WithSession(NewFixedGenerator("sess-1")))

	one, err := p.AddLiteralBlock("one", "1", "Int", p.Graph().Top())
	require.NoError(t, err)
	two, err := p.AddLiteralBlock("two", "2", "Int", p.Graph().Top())
	require.NoError(t, err)
	succ, err := p.AddFunctionBlock("succ", "succ", "Int -> Int", p.Graph().Top())
	require.NoError(t, err)

	_, err = p.Connect(one.Outputs()[0], succ.Inputs()[0])
	require.NoError(t, err)
	_, err = p.Connect(two.Outputs()[0], succ.Inputs()[0])
	require.NoError(t, err)

	// Replaying the two connects against a fresh pane reproduces the
	// eviction: the input ends up holding only the second source.
	q := NewPane(WithSession(NewFixedGenerator("sess-2")))
	for _, e := range rec.edits {
		require.NoError(t, q.ApplyEdit(e))
	}
	qSucc, ok := q.Graph().Block("succ")
	require.True(t, ok)
	id, ok := qSucc.Inputs()[0].Connection()
	require.True(t, ok)
	c, ok := q.Graph().Connection(id)
	require.True(t, ok)
	assert.Equal(t, "two.out[0]", c.Source().Ref().String())
	assert.Len(t, q.Graph().Connections(), 1)
}
