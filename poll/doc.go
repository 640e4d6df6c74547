// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package poll implements the voting state machine for a single poll.

A poll is either open (accepting votes) or closed. SubmitVote enforces the
two rejection rules — closed poll, duplicate fingerprint — then increments
the tally and records the fingerprint. Close archives the current results
into the poll's append-only history before deactivating. Relaunch reopens
a poll, optionally archiving and resetting its results and optionally
taking a fresh share code.

Functions here mutate a models.Poll value loaded from the store; they do no
I/O themselves. Concurrency control lives in Locks: callers acquire the
poll's lock, reload the record, mutate, and persist before releasing, which
serializes the critical section per poll.
*/
package poll
