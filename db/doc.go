// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles database schema creation.

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.

# Tables

The schema includes:

  - poll: Question, options, live tally, join code, voter fingerprints,
    run history and lifecycle state
  - quiz: Titled collection of polls sharing one join code
  - folder: Owner-scoped grouping of polls

List-shaped data (options, tally, fingerprints, history, poll_ids) is
stored as JSON in TEXT columns so the same schema runs on sqlite and
postgres. Every mutable row carries a version counter used for
optimistic concurrency control.

# Indexes

Performance indexes on:

  - poll.code (unique)
  - poll.owner_id
  - poll.quiz_id
  - quiz.code (unique)
  - quiz.owner_id
  - folder.owner_id
*/
package db
