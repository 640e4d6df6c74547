// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Domain Types

  - Poll: question, options, tally, share code, dedup fingerprint set,
    append-only history of archived results
  - Quiz: titled collection of polls sharing one code and lifecycle
  - Folder: owner-scoped grouping of polls
  - HistoryEntry: immutable archival snapshot of a poll's results
  - VoteUpdate: payload broadcast to observers after an accepted vote

Tally and Options are parallel slices: Tally[i] is the vote count for
Options[i] and the two always have the same length.

# Request Types

Types for parsing incoming JSON:

  - CreatePollRequest: question, options, mode (single|multiple)
  - SubmitVoteRequest: fingerprint plus option_index or option_indices
  - CreateQuizRequest: title, description, questions
  - SubmitQuizVoteRequest: fingerprint plus per-poll vote entries
  - RelaunchPollRequest / RelaunchQuizRequest: reset_votes, new_code

# Response Types

Responses mirror the original API: create operations return the id, the
share code and an owner key; results are [{option, votes}] pairs by index.
OwnerID, Fingerprints and Version are never serialized.
*/
package models
