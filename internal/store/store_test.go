package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skeinproject/skein/internal/wire"
)

func openTestJournal(t *testing.T) *Journal {
	t.Helper()
	j, err := Open(filepath.Join(t.TempDir(), "journal.db"))
	require.NoError(t, err)
	t.Cleanup(func() { j.Close() })
	return j
}

func TestOpen_Idempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal.db")

	j1, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, j1.Close())

	j2, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, j2.Close())
}

func TestRecordEdit_RoundTrips(t *testing.T) {
	j := openTestJournal(t)
	ctx := context.Background()

	edits := []wire.Edit{
		{Seq: 1, Session: "s1", Kind: wire.EditAddLiteral, Block: "five", Literal: "5", LitType: "Int"},
		{Seq: 2, Session: "s1", Kind: wire.EditAddBlock, Block: "succ", Func: "succ", Signature: "Int -> Int"},
		{Seq: 3, Session: "s1", Kind: wire.EditConnect, From: "five.out[0]", To: "succ.in[0]"},
		{Seq: 1, Session: "s2", Kind: wire.EditAddLambda, Block: "f", Binders: []string{"x"}},
	}
	for _, e := range edits {
		require.NoError(t, j.RecordEdit(e))
	}

	got, err := j.Edits(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, edits[:3], got)

	sessions, err := j.Sessions(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"s1", "s2"}, sessions)

	last, err := j.LastSeq(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, int64(3), last)

	last, err = j.LastSeq(ctx, "nope")
	require.NoError(t, err)
	assert.Zero(t, last)
}

func TestRecordEdit_RejectsDuplicateSeq(t *testing.T) {
	j := openTestJournal(t)

	e := wire.Edit{Seq: 1, Session: "s1", Kind: wire.EditAddLiteral, Block: "a", Literal: "1"}
	require.NoError(t, j.RecordEdit(e))
	assert.Error(t, j.RecordEdit(e))
}

func TestJournal_AsPaneRecorder(t *testing.T) {
	j := openTestJournal(t)
	ctx := context.Background()

	p := wire.NewPane(
		wire.WithRecorder(j),
		wire.WithSession(wire.NewFixedGenerator("live")),
	)
	lit, err := p.AddLiteralBlock("five", "5", "Int", p.Graph().Top())
	require.NoError(t, err)
	succ, err := p.AddFunctionBlock("succ", "succ", "Int -> Int", p.Graph().Top())
	require.NoError(t, err)
	_, err = p.Connect(lit.Outputs()[0], succ.Inputs()[0])
	require.NoError(t, err)

	got, err := j.Edits(ctx, "live")
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, wire.EditConnect, got[2].Kind)
}

func TestReplay_RebuildsPane(t *testing.T) {
	j := openTestJournal(t)
	ctx := context.Background()

	p := wire.NewPane(
		wire.WithRecorder(j),
		wire.WithSession(wire.NewFixedGenerator("live")),
	)
	lit, err := p.AddLiteralBlock("five", "5", "Int", p.Graph().Top())
	require.NoError(t, err)
	succ, err := p.AddFunctionBlock("succ", "succ", "Int -> Int", p.Graph().Top())
	require.NoError(t, err)
	_, err = p.Connect(lit.Outputs()[0], succ.Inputs()[0])
	require.NoError(t, err)

	replayed, err := j.Replay(ctx, "live")
	require.NoError(t, err)

	b, ok := replayed.Graph().Block("succ")
	require.True(t, ok)
	assert.Equal(t, "succ 5", b.Expression().ToHaskell())
	assert.Equal(t, int64(3), replayed.Clock().Current(),
		"replayed clock resumes after the last journaled seq")

	_, err = j.Replay(ctx, "empty")
	assert.Error(t, err)
}
