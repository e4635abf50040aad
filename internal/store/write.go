package store

import (
	"encoding/json"
	"fmt"

	"github.com/skeinproject/skein/internal/wire"
)

// RecordEdit appends one committed edit to the journal. Implements
// wire.Recorder, so a Journal can be attached to a pane directly:
//
//	pane := wire.NewPane(wire.WithRecorder(journal))
//
// Duplicate (session, seq) pairs are rejected by the primary key; the
// pane's clock makes them impossible in normal operation, so a
// conflict here means two writers share a session token.
func (j *Journal) RecordEdit(e wire.Edit) error {
	payload, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("marshal edit %d: %w", e.Seq, err)
	}
	_, err = j.db.Exec(
		`INSERT INTO edits (session, seq, kind, payload) VALUES (?, ?, ?, ?)`,
		e.Session, e.Seq, string(e.Kind), string(payload),
	)
	if err != nil {
		return fmt.Errorf("insert edit %d: %w", e.Seq, err)
	}
	return nil
}
