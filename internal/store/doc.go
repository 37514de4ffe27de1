// Package store provides persistent storage for the snippet library document.
//
// # Architecture
//
// One Store interface, two backends:
//
//   - FileStore: pretty-printed JSON file with atomic replace semantics
//   - SQLiteStore: single-row JSON blob in SQLite (modernc.org/sqlite)
//
// Both persist the whole document as one unit: every save replaces
// everything, and a load sees either the old or the new content, never a
// mix. There is no cross-process locking; concurrent savers race and the
// last write wins with no merge. This is an accepted limitation of the
// single-operator design.
//
// # Shape recovery
//
// Load never fails on stored content. A missing resource yields the
// canonical empty document, a bare JSON list is salvaged as a
// credential-less collection, and unreadable bytes collapse to the empty
// document. See document.Normalize for the decode rules.
//
// # Error Handling
//
// Save failures are reported as *StoreError with a kind
// (KindDirectoryUnwritable, KindWriteFailed) and the underlying I/O detail.
// These indicate deployment misconfiguration and are the only errors worth
// logging operationally.
//
// # Guard artifact
//
// When not disabled, FileStore writes an .htaccess next to the data file so
// a co-located Apache-style static server refuses to hand out the raw
// document. Deployment hardening only; skippable via store.skip_guard or
// ZENSHELL_SKIP_GUARD.
//
// # Testing
//
// Use NewFileStore(filepath.Join(t.TempDir(), "data.json"), WithSkipGuard(true))
// for unit tests, or NewSQLiteStore(":memory:") for the SQLite backend.
package store
