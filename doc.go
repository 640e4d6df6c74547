// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the Pollcast API server.

Pollcast is a live polling service: presenters create polls or quizzes,
hand out short join codes, and watch tallies update in real time as the
room votes. One vote per device fingerprint per poll.

# Starting the Server

The server requires environment variables or CLI flags for configuration:

	OWNER_KEY_SALT=... go run main.go

Or with flags:

	go run main.go -p 5000 -t postgres -d "postgres://..."

A .env file in the working directory is loaded if present.

# Configuration

Required settings:

  - OWNER_KEY_SALT (-owner-salt): Secret for owner key HMAC

Optional settings:

  - PORT (-p): Server port (default: 5000)
  - DATABASE_TYPE (-t): sqlite or postgres (default: sqlite)
  - DATABASE_URL (-d): Connection string (default: file:pollcast.db)
  - CODE_LENGTH (-code-length): Join code length (default: 6)

# Architecture

The server uses a handler-based architecture with dependency injection:

  - handlers: HTTP request handlers (polls, votes, quizzes, folders, imports)
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, JSON helpers
  - models: Domain and request/response types
  - code: Join code generation with uniqueness retries
  - ballot: Ballot normalization and validation
  - poll: Poll/quiz state machine and per-poll locks
  - vote: Vote processing (validate, persist, broadcast)
  - relaunch: Lifecycle coordination (status, relaunch, delete)
  - hub: Websocket broadcast rooms keyed by join code
  - store: Persistence over database/sql plus an in-memory test store
  - auth: Owner key minting and verification
  - ingest: CSV bulk import parsing
  - db: Schema creation
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
