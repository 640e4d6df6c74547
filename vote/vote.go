// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package vote

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/danielhkuo/pollcast/ballot"
	"github.com/danielhkuo/pollcast/hub"
	"github.com/danielhkuo/pollcast/models"
	"github.com/danielhkuo/pollcast/poll"
	"github.com/danielhkuo/pollcast/store"
)

// ErrQuizClosed rejects quiz submissions while the quiz is inactive.
var ErrQuizClosed = errors.New("quiz is closed")

// PersistenceError wraps a store failure after a vote was accepted
// in memory. The vote is NOT committed: the caller must be told, because
// acknowledging it would silently drop the vote on the floor.
type PersistenceError struct {
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("vote accepted but not persisted: %v", e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// AcceptedVote reports a committed vote and the resulting tally.
type AcceptedVote struct {
	PollID string
	Code   string
	Tally  []int
}

// Processor runs one vote submission end to end: validation, the poll
// state machine, persistence, then broadcast. The hub is injected at
// construction, never reached through shared globals.
type Processor struct {
	store store.Store
	hub   *hub.Hub
	locks *poll.Locks
}

func NewProcessor(st store.Store, h *hub.Hub, locks *poll.Locks) *Processor {
	return &Processor{store: st, hub: h, locks: locks}
}

// ProcessVote handles a single-poll ballot addressed by share code.
// The poll's lock is held across reload-validate-mutate-persist; the
// broadcast happens after the save succeeds, so an observer never sees a
// tally that might still be rolled back.
func (pr *Processor) ProcessVote(ctx context.Context, b ballot.Ballot) (*AcceptedVote, error) {
	found, err := pr.store.FindPollByCode(ctx, b.TargetCode)
	if err != nil {
		return nil, err
	}

	unlock := pr.locks.Lock(found.ID)
	defer unlock()

	// Reload under the lock; the snapshot used to find the id may be stale.
	p, err := pr.store.FindPollByID(ctx, found.ID)
	if err != nil {
		return nil, err
	}

	indices, err := ballot.Normalize(p.Mode, len(p.Options), b)
	if err != nil {
		return nil, err
	}

	tally, err := poll.SubmitVote(p, b.Fingerprint, indices)
	if err != nil {
		return nil, err
	}

	if err := pr.store.SavePoll(ctx, p); err != nil {
		return nil, &PersistenceError{Err: err}
	}

	pr.publish(p)

	return &AcceptedVote{PollID: p.ID, Code: p.Code, Tally: tally}, nil
}

// ProcessQuizVote handles an aggregate submission against every answered
// child poll of a quiz. Routine rejections are per-child: a missing poll,
// an invalid selection, or an already-used fingerprint skips that entry and
// the rest of the submission still goes through. A store failure is not
// routine: it aborts the submission and the error is returned alongside the
// entries committed before it, so an accepted vote is never dropped
// silently.
func (pr *Processor) ProcessQuizVote(ctx context.Context, quizCode, fingerprint string, entries []models.QuizVoteEntry) ([]AcceptedVote, error) {
	q, err := pr.store.FindQuizByCode(ctx, quizCode)
	if err != nil {
		return nil, err
	}
	if !q.IsActive {
		return nil, ErrQuizClosed
	}

	children := make(map[string]bool, len(q.PollIDs))
	for _, id := range q.PollIDs {
		children[id] = true
	}

	var accepted []AcceptedVote
	for _, entry := range entries {
		if !children[entry.PollID] {
			slog.Warn("quiz vote entry skipped", "quiz_id", q.ID, "poll_id", entry.PollID, "reason", "not a child poll")
			continue
		}

		av, err := pr.voteOnChild(ctx, entry, fingerprint)
		if err != nil {
			var perr *PersistenceError
			if errors.As(err, &perr) {
				return accepted, err
			}
			// routine per-child rejections are logged and skipped
			slog.Info("quiz vote entry skipped", "quiz_id", q.ID, "poll_id", entry.PollID, "reason", err)
			continue
		}
		accepted = append(accepted, *av)
	}

	return accepted, nil
}

func (pr *Processor) voteOnChild(ctx context.Context, entry models.QuizVoteEntry, fingerprint string) (*AcceptedVote, error) {
	unlock := pr.locks.Lock(entry.PollID)
	defer unlock()

	p, err := pr.store.FindPollByID(ctx, entry.PollID)
	if err != nil {
		return nil, err
	}

	b := ballot.Ballot{
		Fingerprint:   fingerprint,
		OptionIndex:   entry.OptionIndex,
		OptionIndices: entry.OptionIndices,
	}
	indices, err := ballot.Normalize(p.Mode, len(p.Options), b)
	if err != nil {
		return nil, err
	}

	tally, err := poll.SubmitVote(p, fingerprint, indices)
	if err != nil {
		return nil, err
	}

	if err := pr.store.SavePoll(ctx, p); err != nil {
		return nil, &PersistenceError{Err: err}
	}

	pr.publish(p)

	return &AcceptedVote{PollID: p.ID, Code: p.Code, Tally: tally}, nil
}

// publish pushes the new tally to the poll's room. Fire and forget:
// broadcast can never fail an accepted, persisted vote.
func (pr *Processor) publish(p *models.Poll) {
	pr.hub.Publish(p.Code, models.VoteUpdate{
		Code:       p.Code,
		Question:   p.Question,
		Tally:      append([]int(nil), p.Tally...),
		VoterCount: len(p.Fingerprints),
	})
}
