// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the Pollcast API.

# Handler Types

Each handler is a struct holding its store, domain service and config
dependencies:

  - PollHandler: Poll lifecycle (create, fetch, results, status, relaunch, delete)
  - VoteHandler: Ballot submission against a join code
  - QuizHandler: Quiz creation, aggregate voting, status, relaunch
  - FolderHandler: Owner-scoped poll folders
  - ImportHandler: Bulk poll creation from CSV

Handlers are created via constructor functions:

	pollHandler := handlers.NewPollHandler(st, gen, coord, cfg)

# Poll Lifecycle

	POST   /api/polls                 → CreatePoll (returns owner_key)
	GET    /api/polls/{code}          → GetPoll
	GET    /api/polls/{code}/results  → GetResults
	PATCH  /api/polls/{code}/status   → SetStatus (close archives results)
	POST   /api/polls/relaunch        → Relaunch
	DELETE /api/polls/{code}          → DeletePoll

Owner operations require the X-Owner-Key header; the key is minted on
the first create and reused across resources so they group under one
owner.

# Voting Flow

Voters interact via the join code:

	POST /api/polls/{code}/votes   → SubmitVote
	POST /api/quizzes/{code}/votes → SubmitVotes (one entry per child poll)

A voter is identified by a client-supplied fingerprint, falling back to
the source IP. One vote per fingerprint per poll.

# Error Mapping

Domain errors map to HTTP status codes in writeDomainError: validation
failures 400, unknown codes 404, closed polls and duplicate votes 403,
persistence failures and code-space exhaustion 500. A vote rejected
with 500 was not counted and is safe to retry.
*/
package handlers
