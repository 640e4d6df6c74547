// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package poll

import (
	"errors"
	"time"

	"github.com/danielhkuo/pollcast/models"
)

var (
	// ErrClosed rejects votes against an inactive poll.
	ErrClosed = errors.New("poll is closed")
	// ErrDuplicateVote rejects a fingerprint that already voted on this poll.
	ErrDuplicateVote = errors.New("fingerprint has already voted")
)

// New builds an open poll with a zeroed tally matching the option count.
func New(id, question string, options []string, mode, code, ownerID string) *models.Poll {
	return &models.Poll{
		ID:           id,
		Question:     question,
		Options:      append([]string(nil), options...),
		Mode:         mode,
		Tally:        make([]int, len(options)),
		Code:         code,
		IsActive:     true,
		Fingerprints: make(map[string]bool),
		OwnerID:      ownerID,
		CreatedAt:    time.Now().UTC(),
	}
}

// SubmitVote applies one accepted ballot: every index in indices (already
// validated and de-duplicated) is incremented and the fingerprint recorded.
// Returns a copy of the new tally. The caller must hold the poll's lock;
// the read-check-increment-record sequence below is the critical section.
func SubmitVote(p *models.Poll, fingerprint string, indices []int) ([]int, error) {
	if !p.IsActive {
		return nil, ErrClosed
	}
	if p.Fingerprints[fingerprint] {
		return nil, ErrDuplicateVote
	}

	for _, i := range indices {
		p.Tally[i]++
	}
	if p.Fingerprints == nil {
		p.Fingerprints = make(map[string]bool)
	}
	p.Fingerprints[fingerprint] = true

	return append([]int(nil), p.Tally...), nil
}

// Archive appends the current tally and voter count to the poll's history.
// History is append-only: repeated closes produce independent entries.
func Archive(p *models.Poll) {
	p.History = append(p.History, models.HistoryEntry{
		Tally:            append([]int(nil), p.Tally...),
		FingerprintCount: len(p.Fingerprints),
		ArchivedAt:       time.Now().UTC(),
	})
}

// Close archives the current results and deactivates the poll.
func Close(p *models.Poll) {
	Archive(p)
	p.IsActive = false
}

// SetStatus transitions the poll; closing archives, reopening does not.
func SetStatus(p *models.Poll, active bool) {
	if !active {
		Close(p)
		return
	}
	p.IsActive = true
}

// Reset zeroes the tally and clears the fingerprint set, allowing every
// respondent to vote again.
func Reset(p *models.Poll) {
	p.Tally = make([]int, len(p.Options))
	p.Fingerprints = make(map[string]bool)
}

// RelaunchOptions selects what a relaunch changes besides reactivation.
type RelaunchOptions struct {
	ResetVotes bool
	NewCode    bool
}

// Relaunch reopens a poll. With ResetVotes the current results are archived
// first, then the tally and fingerprints are cleared. With NewCode the poll
// gets a fresh code from nextCode.
func Relaunch(p *models.Poll, opts RelaunchOptions, nextCode func() (string, error)) error {
	if opts.ResetVotes {
		Archive(p)
		Reset(p)
	}
	if opts.NewCode {
		c, err := nextCode()
		if err != nil {
			return err
		}
		p.Code = c
	}
	p.IsActive = true
	return nil
}
