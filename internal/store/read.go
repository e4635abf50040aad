package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/skeinproject/skein/internal/wire"
)

// Edits returns a session's edits in seq order.
func (j *Journal) Edits(ctx context.Context, session string) ([]wire.Edit, error) {
	rows, err := j.db.QueryContext(ctx,
		`SELECT payload FROM edits WHERE session = ? ORDER BY seq`, session)
	if err != nil {
		return nil, fmt.Errorf("query edits: %w", err)
	}
	defer rows.Close()

	var edits []wire.Edit
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("scan edit: %w", err)
		}
		var e wire.Edit
		if err := json.Unmarshal([]byte(payload), &e); err != nil {
			return nil, fmt.Errorf("unmarshal edit: %w", err)
		}
		edits = append(edits, e)
	}
	return edits, rows.Err()
}

// Sessions returns all session tokens present in the journal, most
// recently started last (UUIDv7 tokens sort by creation time).
func (j *Journal) Sessions(ctx context.Context) ([]string, error) {
	rows, err := j.db.QueryContext(ctx,
		`SELECT DISTINCT session FROM edits ORDER BY session`)
	if err != nil {
		return nil, fmt.Errorf("query sessions: %w", err)
	}
	defer rows.Close()

	var sessions []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		sessions = append(sessions, s)
	}
	return sessions, rows.Err()
}

// LastSeq returns the highest seq recorded for a session, 0 when the
// session has no edits.
func (j *Journal) LastSeq(ctx context.Context, session string) (int64, error) {
	var seq sql.NullInt64
	err := j.db.QueryRowContext(ctx,
		`SELECT MAX(seq) FROM edits WHERE session = ?`, session).Scan(&seq)
	if err != nil {
		return 0, fmt.Errorf("query last seq: %w", err)
	}
	if !seq.Valid {
		return 0, nil
	}
	return seq.Int64, nil
}
