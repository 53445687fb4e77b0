// Package database provides SQLite-based storage for audit history.
//
// This package implements the HistoryDB, which stores one summary row per
// audit run: page, node, and edge counts plus the orphan list. Full graphs
// are never persisted; every audit rebuilds its graph from the corpus, and
// only the summary needed for run-to-run comparison is kept.
//
// Design decision: We use SQLite (via modernc.org/sqlite) instead of other
// databases because:
// 1. No external dependencies - the database is a single file
// 2. CGO-free implementation allows easy cross-compilation
// 3. Sufficient performance for our use case
// 4. WAL mode provides good concurrent read performance
package database
