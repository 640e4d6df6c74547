// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package relaunch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/danielhkuo/pollcast/auth"
	"github.com/danielhkuo/pollcast/code"
	"github.com/danielhkuo/pollcast/models"
	"github.com/danielhkuo/pollcast/poll"
	"github.com/danielhkuo/pollcast/store"
)

// Coordinator wraps the poll/quiz lifecycle transitions with ownership
// checks and unique-code acquisition. Votes and lifecycle changes share
// the same per-poll locks, so a relaunch cannot interleave with an
// in-flight submission.
type Coordinator struct {
	store store.Store
	codes *code.Generator
	locks *poll.Locks
}

func NewCoordinator(st store.Store, gen *code.Generator, locks *poll.Locks) *Coordinator {
	return &Coordinator{store: st, codes: gen, locks: locks}
}

// RelaunchPoll reopens a poll for its owner, optionally archiving and
// resetting its results and optionally issuing a fresh code.
func (c *Coordinator) RelaunchPoll(ctx context.Context, pollID, requesterID string, opts poll.RelaunchOptions) (*models.Poll, error) {
	found, err := c.store.FindPollByID(ctx, pollID)
	if err != nil {
		return nil, err
	}
	if err := auth.VerifyOwner(requesterID, found.OwnerID); err != nil {
		return nil, err
	}

	unlock := c.locks.Lock(pollID)
	defer unlock()

	p, err := c.store.FindPollByID(ctx, pollID)
	if err != nil {
		return nil, err
	}

	nextCode := func() (string, error) {
		return c.codes.NextUnique(ctx, store.PollCodeExists(c.store))
	}
	if err := poll.Relaunch(p, opts, nextCode); err != nil {
		return nil, err
	}
	if err := c.store.SavePoll(ctx, p); err != nil {
		return nil, fmt.Errorf("failed to persist relaunch: %w", err)
	}

	slog.Info("poll relaunched", "poll_id", p.ID, "code", p.Code,
		"reset_votes", opts.ResetVotes, "new_code", opts.NewCode)
	return p, nil
}

// SetPollStatus opens or closes a single poll. Closing archives the
// current results as a new history entry.
func (c *Coordinator) SetPollStatus(ctx context.Context, pollCode, requesterID string, active bool) (*models.Poll, error) {
	found, err := c.store.FindPollByCode(ctx, pollCode)
	if err != nil {
		return nil, err
	}
	if err := auth.VerifyOwner(requesterID, found.OwnerID); err != nil {
		return nil, err
	}

	unlock := c.locks.Lock(found.ID)
	defer unlock()

	p, err := c.store.FindPollByID(ctx, found.ID)
	if err != nil {
		return nil, err
	}

	poll.SetStatus(p, active)
	if err := c.store.SavePoll(ctx, p); err != nil {
		return nil, fmt.Errorf("failed to persist status change: %w", err)
	}

	slog.Info("poll status updated", "poll_id", p.ID, "is_active", active)
	return p, nil
}

// DeletePoll removes a poll and detaches it from its quiz and from every
// folder referencing it.
func (c *Coordinator) DeletePoll(ctx context.Context, pollID, requesterID string) error {
	p, err := c.store.FindPollByID(ctx, pollID)
	if err != nil {
		return err
	}
	if err := auth.VerifyOwner(requesterID, p.OwnerID); err != nil {
		return err
	}

	unlock := c.locks.Lock(pollID)
	defer unlock()

	if p.QuizID != "" {
		q, err := c.store.FindQuizByID(ctx, p.QuizID)
		if err == nil {
			kept := q.PollIDs[:0]
			for _, id := range q.PollIDs {
				if id != pollID {
					kept = append(kept, id)
				}
			}
			q.PollIDs = kept
			if err := c.store.SaveQuiz(ctx, q); err != nil {
				return fmt.Errorf("failed to detach poll from quiz: %w", err)
			}
		} else if !errors.Is(err, store.ErrNotFound) {
			return err
		}
	}

	if err := c.store.DetachPollFromFolders(ctx, pollID); err != nil {
		return err
	}
	if err := c.store.DeletePoll(ctx, pollID); err != nil {
		return err
	}

	slog.Info("poll deleted", "poll_id", pollID)
	return nil
}

// SetQuizStatus opens or closes a quiz and propagates the status to every
// child poll. Closing archives each child independently; reopening uses
// the store's bulk status update. A missing child is skipped, not fatal.
func (c *Coordinator) SetQuizStatus(ctx context.Context, quizCode, requesterID string, active bool) (*models.Quiz, error) {
	found, err := c.store.FindQuizByCode(ctx, quizCode)
	if err != nil {
		return nil, err
	}
	if err := auth.VerifyOwner(requesterID, found.OwnerID); err != nil {
		return nil, err
	}

	q, err := c.store.FindQuizByID(ctx, found.ID)
	if err != nil {
		return nil, err
	}
	q.IsActive = active
	if err := c.store.SaveQuiz(ctx, q); err != nil {
		return nil, fmt.Errorf("failed to persist quiz status: %w", err)
	}

	if active {
		if err := c.store.UpdatePollStatus(ctx, q.PollIDs, true); err != nil {
			return nil, err
		}
	} else {
		for _, pollID := range q.PollIDs {
			if err := c.closeChild(ctx, pollID); err != nil {
				slog.Warn("quiz child skipped during close", "quiz_id", q.ID, "poll_id", pollID, "error", err)
			}
		}
	}

	slog.Info("quiz status updated", "quiz_id", q.ID, "is_active", active)
	return q, nil
}

func (c *Coordinator) closeChild(ctx context.Context, pollID string) error {
	unlock := c.locks.Lock(pollID)
	defer unlock()

	p, err := c.store.FindPollByID(ctx, pollID)
	if err != nil {
		return err
	}
	poll.Close(p)
	return c.store.SavePoll(ctx, p)
}

// RelaunchQuiz reopens a quiz and all of its children. With ResetVotes
// every child archives its results and starts from zero; with NewCode the
// quiz and every child each get a fresh unique code. Missing children are
// skipped.
func (c *Coordinator) RelaunchQuiz(ctx context.Context, quizID, requesterID string, opts poll.RelaunchOptions) (*models.Quiz, error) {
	found, err := c.store.FindQuizByID(ctx, quizID)
	if err != nil {
		return nil, err
	}
	if err := auth.VerifyOwner(requesterID, found.OwnerID); err != nil {
		return nil, err
	}

	q, err := c.store.FindQuizByID(ctx, quizID)
	if err != nil {
		return nil, err
	}

	for _, pollID := range q.PollIDs {
		if err := c.relaunchChild(ctx, pollID, opts); err != nil {
			slog.Warn("quiz child skipped during relaunch", "quiz_id", q.ID, "poll_id", pollID, "error", err)
		}
	}

	if opts.NewCode {
		fresh, err := c.codes.NextUnique(ctx, store.QuizCodeExists(c.store))
		if err != nil {
			return nil, err
		}
		q.Code = fresh
	}
	q.IsActive = true
	if err := c.store.SaveQuiz(ctx, q); err != nil {
		return nil, fmt.Errorf("failed to persist quiz relaunch: %w", err)
	}

	slog.Info("quiz relaunched", "quiz_id", q.ID, "code", q.Code,
		"reset_votes", opts.ResetVotes, "new_code", opts.NewCode)
	return q, nil
}

func (c *Coordinator) relaunchChild(ctx context.Context, pollID string, opts poll.RelaunchOptions) error {
	unlock := c.locks.Lock(pollID)
	defer unlock()

	p, err := c.store.FindPollByID(ctx, pollID)
	if err != nil {
		return err
	}
	nextCode := func() (string, error) {
		return c.codes.NextUnique(ctx, store.PollCodeExists(c.store))
	}
	if err := poll.Relaunch(p, opts, nextCode); err != nil {
		return err
	}
	return c.store.SavePoll(ctx, p)
}
