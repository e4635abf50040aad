// Package diagram reads and writes diagram documents: the YAML form
// of a pane's blocks and connections.
//
// Documents are declaration-ordered; building one replays its blocks
// and connections against a fresh pane, so everything the editor
// enforces (input eviction, propagation, scope hints) holds for loaded
// diagrams too. Function blocks may carry an explicit signature or
// take it from the catalog.
package diagram
