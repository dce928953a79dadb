// Package store provides the SQLite run ledger.
//
// Every finished simulation can be recorded as one row holding the machine
// and tape identity, the budget and dedup setting it ran with, and the
// outcome statistics. The ledger is append-only and write-idempotent: a
// run ID written twice keeps its first row.
//
// Rows are read back in insertion order (seq ASC). Run IDs are UUIDv7 in
// production so they also sort by creation time.
//
// The ledger never stores tapes beyond the input, or frontiers, so a run
// cannot be resumed from it.
package store
