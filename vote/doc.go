// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package vote orchestrates vote submissions.

Processor.ProcessVote runs the pipeline for one ballot: look up the poll by
code, acquire its lock, reload, validate the selection (package ballot),
apply the state machine (package poll), persist (package store), then
broadcast the new tally (package hub). Persistence failures surface as
PersistenceError — an accepted vote is never silently dropped, and nothing
is broadcast before the save is durable. Broadcast itself is fire and
forget and cannot fail a committed vote.

ProcessQuizVote fans one fingerprint's answers out over a quiz's child
polls with per-child isolation: a missing child, a duplicate fingerprint
or an invalid selection skips that entry only. A store failure is not
isolated; it aborts the submission and surfaces as PersistenceError.
*/
package vote
