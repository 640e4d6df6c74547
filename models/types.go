// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import "time"

// Selection mode constants
const (
	ModeSingle   = "single"
	ModeMultiple = "multiple"
)

// Domain types

// HistoryEntry is an archival snapshot of a poll's results, taken when the
// poll is closed or relaunched with a reset. Entries are never mutated once
// appended.
type HistoryEntry struct {
	Tally            []int     `json:"tally"`
	FingerprintCount int       `json:"fingerprint_count"`
	ArchivedAt       time.Time `json:"archived_at"`
}

type Poll struct {
	ID           string          `json:"id"`
	QuizID       string          `json:"quiz_id,omitempty"`
	Question     string          `json:"question"`
	Options      []string        `json:"options"`
	Mode         string          `json:"mode"`
	Tally        []int           `json:"tally"`
	Code         string          `json:"code"`
	IsActive     bool            `json:"is_active"`
	Fingerprints map[string]bool `json:"-"` // Never expose in JSON
	History      []HistoryEntry  `json:"history,omitempty"`
	OwnerID      string          `json:"-"` // Never expose in JSON
	Version      int             `json:"-"`
	CreatedAt    time.Time       `json:"created_at"`
}

// Clone returns a deep copy. Stores hand out clones so callers can mutate
// freely before saving.
func (p *Poll) Clone() *Poll {
	out := *p
	out.Options = append([]string(nil), p.Options...)
	out.Tally = append([]int(nil), p.Tally...)
	out.Fingerprints = make(map[string]bool, len(p.Fingerprints))
	for fp := range p.Fingerprints {
		out.Fingerprints[fp] = true
	}
	out.History = make([]HistoryEntry, len(p.History))
	for i, h := range p.History {
		out.History[i] = HistoryEntry{
			Tally:            append([]int(nil), h.Tally...),
			FingerprintCount: h.FingerprintCount,
			ArchivedAt:       h.ArchivedAt,
		}
	}
	return &out
}

type Quiz struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Code        string    `json:"code"`
	PollIDs     []string  `json:"poll_ids"`
	IsActive    bool      `json:"is_active"`
	OwnerID     string    `json:"-"`
	Version     int       `json:"-"`
	CreatedAt   time.Time `json:"created_at"`
}

func (q *Quiz) Clone() *Quiz {
	out := *q
	out.PollIDs = append([]string(nil), q.PollIDs...)
	return &out
}

type Folder struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	PollIDs     []string  `json:"poll_ids"`
	OwnerID     string    `json:"-"`
	CreatedAt   time.Time `json:"created_at"`
}

func (f *Folder) Clone() *Folder {
	out := *f
	out.PollIDs = append([]string(nil), f.PollIDs...)
	return &out
}

// VoteUpdate is the payload pushed to every observer of a poll's code after
// an accepted vote. The fingerprint set never leaves the server.
type VoteUpdate struct {
	Code       string `json:"code"`
	Question   string `json:"question"`
	Tally      []int  `json:"tally"`
	VoterCount int    `json:"voter_count"`
}

// Request types

type CreatePollRequest struct {
	Question string   `json:"question"`
	Options  []string `json:"options"`
	Mode     string   `json:"mode,omitempty"`
}

type SubmitVoteRequest struct {
	Fingerprint   string `json:"fingerprint"`
	OptionIndex   *int   `json:"option_index,omitempty"`
	OptionIndices []int  `json:"option_indices,omitempty"`
}

type UpdateStatusRequest struct {
	IsActive *bool `json:"is_active"`
}

type RelaunchPollRequest struct {
	PollID     string `json:"poll_id"`
	ResetVotes bool   `json:"reset_votes"`
	NewCode    bool   `json:"new_code"`
}

type QuizQuestion struct {
	Question string   `json:"question"`
	Options  []string `json:"options"`
	Mode     string   `json:"mode,omitempty"`
}

type CreateQuizRequest struct {
	Title       string         `json:"title"`
	Description string         `json:"description,omitempty"`
	Questions   []QuizQuestion `json:"questions"`
}

type QuizVoteEntry struct {
	PollID        string `json:"poll_id"`
	OptionIndex   *int   `json:"option_index,omitempty"`
	OptionIndices []int  `json:"option_indices,omitempty"`
}

type SubmitQuizVoteRequest struct {
	Fingerprint string          `json:"fingerprint"`
	Votes       []QuizVoteEntry `json:"votes"`
}

type RelaunchQuizRequest struct {
	QuizID     string `json:"quiz_id"`
	ResetVotes bool   `json:"reset_votes"`
	NewCode    bool   `json:"new_code"`
}

type CreateFolderRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// Response types

type CreatePollResponse struct {
	PollID   string `json:"poll_id"`
	Code     string `json:"code"`
	OwnerKey string `json:"owner_key"`
}

type PollResponse struct {
	Question string   `json:"question"`
	Options  []string `json:"options"`
	Code     string   `json:"code"`
	Mode     string   `json:"mode"`
	IsActive bool     `json:"is_active"`
}

type SubmitVoteResponse struct {
	Message string `json:"message"`
	Tally   []int  `json:"tally"`
}

type OptionResult struct {
	Option string `json:"option"`
	Votes  int    `json:"votes"`
}

type ResultsResponse struct {
	Question string         `json:"question"`
	Results  []OptionResult `json:"results"`
}

type RelaunchPollResponse struct {
	PollID string `json:"poll_id"`
	Code   string `json:"code"`
}

type CreateQuizResponse struct {
	QuizID   string `json:"quiz_id"`
	Code     string `json:"code"`
	OwnerKey string `json:"owner_key"`
}

type QuizResponse struct {
	Title       string         `json:"title"`
	Description string         `json:"description,omitempty"`
	Code        string         `json:"code"`
	IsActive    bool           `json:"is_active"`
	Polls       []PollResponse `json:"polls"`
}

type SubmitQuizVoteResponse struct {
	Message  string `json:"message"`
	Accepted int    `json:"accepted"`
}

type RelaunchQuizResponse struct {
	QuizID string `json:"quiz_id"`
	Code   string `json:"code"`
}

type FolderResponse struct {
	FolderID    string `json:"folder_id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

type FolderPollsResponse struct {
	FolderID string         `json:"folder_id"`
	Name     string         `json:"name"`
	Polls    []PollResponse `json:"polls"`
}

type ImportedPoll struct {
	PollID string `json:"poll_id"`
	Code   string `json:"code"`
	Topic  string `json:"topic,omitempty"`
}

type SkippedRow struct {
	Line   int    `json:"line"`
	Reason string `json:"reason"`
}

type ImportPollsResponse struct {
	Created  []ImportedPoll `json:"created"`
	Skipped  []SkippedRow   `json:"skipped"`
	OwnerKey string         `json:"owner_key"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
