package store

import (
	"context"
	"fmt"

	"github.com/skeinproject/skein/internal/wire"
)

// Replay rebuilds a pane from a session's journaled edits. The
// returned pane's clock resumes after the last journaled seq, so
// further edits (journaled elsewhere) continue the numbering.
func (j *Journal) Replay(ctx context.Context, session string) (*wire.Pane, error) {
	edits, err := j.Edits(ctx, session)
	if err != nil {
		return nil, err
	}
	if len(edits) == 0 {
		return nil, fmt.Errorf("session %q has no edits", session)
	}

	last := edits[len(edits)-1].Seq
	pane := wire.NewPane(wire.WithClock(wire.NewClockAt(last)))
	for _, e := range edits {
		if err := pane.ApplyEdit(e); err != nil {
			return nil, fmt.Errorf("replay seq %d: %w", e.Seq, err)
		}
	}
	return pane, nil
}
