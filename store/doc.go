// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package store is the persistence boundary.

The Store interface exposes find-by-code/id, optimistic save, delete, and
the two bulk updates the quiz aggregate needs (status reactivation and
child association). Two implementations:

  - SQLStore: database/sql over PostgreSQL (lib/pq) or SQLite
    (modernc.org/sqlite); portable $N statements with JSON-encoded columns
    for options, tallies, fingerprints and history
  - MemStore: in-memory map store with the same copy/version semantics,
    used by tests and the dependency-free dev mode

Saves carry the record's version as an optimistic concurrency token:
a save against a stale version fails with ErrVersionConflict and applies
nothing.
*/
package store
