// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"errors"

	"github.com/danielhkuo/pollcast/models"
)

var (
	// ErrNotFound reports an unknown code or id.
	ErrNotFound = errors.New("not found")
	// ErrVersionConflict reports an optimistic save that lost a race; the
	// caller should reload and retry.
	ErrVersionConflict = errors.New("version conflict")
)

// Store is the persistence boundary for polls, quizzes and folders. Find
// methods return detached copies; Save methods use the record's version as
// an optimistic concurrency token, bumping it on success.
type Store interface {
	CreatePoll(ctx context.Context, p *models.Poll) error
	FindPollByCode(ctx context.Context, code string) (*models.Poll, error)
	FindPollByID(ctx context.Context, id string) (*models.Poll, error)
	SavePoll(ctx context.Context, p *models.Poll) error
	DeletePoll(ctx context.Context, id string) error
	ListPollsByOwner(ctx context.Context, ownerID string) ([]*models.Poll, error)

	// UpdatePollStatus is a bulk field update used when reactivating the
	// children of a quiz. Closing goes through SavePoll per child instead,
	// because each close appends a history entry.
	UpdatePollStatus(ctx context.Context, ids []string, active bool) error
	// AssignPollsToQuiz bulk-associates freshly created child polls.
	AssignPollsToQuiz(ctx context.Context, pollIDs []string, quizID string) error

	CreateQuiz(ctx context.Context, q *models.Quiz) error
	FindQuizByCode(ctx context.Context, code string) (*models.Quiz, error)
	FindQuizByID(ctx context.Context, id string) (*models.Quiz, error)
	SaveQuiz(ctx context.Context, q *models.Quiz) error

	CreateFolder(ctx context.Context, f *models.Folder) error
	FindFolderByID(ctx context.Context, id string) (*models.Folder, error)
	SaveFolder(ctx context.Context, f *models.Folder) error
	ListFoldersByOwner(ctx context.Context, ownerID string) ([]*models.Folder, error)
	// DetachPollFromFolders removes a deleted poll from every folder that
	// references it.
	DetachPollFromFolders(ctx context.Context, pollID string) error
}

// PollCodeExists adapts FindPollByCode into a code.ExistsFunc.
func PollCodeExists(s Store) func(ctx context.Context, code string) (bool, error) {
	return func(ctx context.Context, code string) (bool, error) {
		_, err := s.FindPollByCode(ctx, code)
		if errors.Is(err, ErrNotFound) {
			return false, nil
		}
		if err != nil {
			return false, err
		}
		return true, nil
	}
}

// QuizCodeExists adapts FindQuizByCode into a code.ExistsFunc.
func QuizCodeExists(s Store) func(ctx context.Context, code string) (bool, error) {
	return func(ctx context.Context, code string) (bool, error) {
		_, err := s.FindQuizByCode(ctx, code)
		if errors.Is(err, ErrNotFound) {
			return false, nil
		}
		if err != nil {
			return false, err
		}
		return true, nil
	}
}
