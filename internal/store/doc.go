// Package store persists the edit journal: every committed structural
// edit of a pane, keyed by session and sequence number.
//
// The journal is a SQLite database in WAL mode. Writes come from the
// pane's single writer via the wire.Recorder interface; reads may run
// concurrently. Replaying a session's edits in seq order rebuilds the
// pane exactly, including input evictions, since the journal records
// the edits as performed rather than the resulting state.
package store
