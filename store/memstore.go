// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"sort"
	"sync"

	"github.com/danielhkuo/pollcast/models"
)

// MemStore is an in-memory Store. It backs the test suites and the
// zero-dependency dev mode, and mirrors SQLStore's semantics: detached
// copies on read, optimistic versions on save.
type MemStore struct {
	mu      sync.RWMutex
	polls   map[string]*models.Poll
	quizzes map[string]*models.Quiz
	folders map[string]*models.Folder

	// SaveErr, when set, fails the next SavePoll call and clears itself.
	// Tests use it to exercise the accepted-but-unpersisted path.
	SaveErr error
}

func NewMemStore() *MemStore {
	return &MemStore{
		polls:   make(map[string]*models.Poll),
		quizzes: make(map[string]*models.Quiz),
		folders: make(map[string]*models.Folder),
	}
}

// Polls

func (m *MemStore) CreatePoll(ctx context.Context, p *models.Poll) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.polls[p.ID] = p.Clone()
	return nil
}

func (m *MemStore) FindPollByCode(ctx context.Context, code string) (*models.Poll, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, p := range m.polls {
		if p.Code == code {
			return p.Clone(), nil
		}
	}
	return nil, ErrNotFound
}

func (m *MemStore) FindPollByID(ctx context.Context, id string) (*models.Poll, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.polls[id]
	if !ok {
		return nil, ErrNotFound
	}
	return p.Clone(), nil
}

func (m *MemStore) SavePoll(ctx context.Context, p *models.Poll) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.SaveErr != nil {
		err := m.SaveErr
		m.SaveErr = nil
		return err
	}

	current, ok := m.polls[p.ID]
	if !ok {
		return ErrNotFound
	}
	if current.Version != p.Version {
		return ErrVersionConflict
	}
	p.Version++
	m.polls[p.ID] = p.Clone()
	return nil
}

func (m *MemStore) DeletePoll(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.polls[id]; !ok {
		return ErrNotFound
	}
	delete(m.polls, id)
	return nil
}

func (m *MemStore) ListPollsByOwner(ctx context.Context, ownerID string) ([]*models.Poll, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*models.Poll
	for _, p := range m.polls {
		if p.OwnerID == ownerID {
			out = append(out, p.Clone())
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (m *MemStore) UpdatePollStatus(ctx context.Context, ids []string, active bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, id := range ids {
		if p, ok := m.polls[id]; ok {
			p.IsActive = active
			p.Version++
		}
	}
	return nil
}

func (m *MemStore) AssignPollsToQuiz(ctx context.Context, pollIDs []string, quizID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, id := range pollIDs {
		if p, ok := m.polls[id]; ok {
			p.QuizID = quizID
			p.Version++
		}
	}
	return nil
}

// Quizzes

func (m *MemStore) CreateQuiz(ctx context.Context, q *models.Quiz) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.quizzes[q.ID] = q.Clone()
	return nil
}

func (m *MemStore) FindQuizByCode(ctx context.Context, code string) (*models.Quiz, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, q := range m.quizzes {
		if q.Code == code {
			return q.Clone(), nil
		}
	}
	return nil, ErrNotFound
}

func (m *MemStore) FindQuizByID(ctx context.Context, id string) (*models.Quiz, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	q, ok := m.quizzes[id]
	if !ok {
		return nil, ErrNotFound
	}
	return q.Clone(), nil
}

func (m *MemStore) SaveQuiz(ctx context.Context, q *models.Quiz) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	current, ok := m.quizzes[q.ID]
	if !ok {
		return ErrNotFound
	}
	if current.Version != q.Version {
		return ErrVersionConflict
	}
	q.Version++
	m.quizzes[q.ID] = q.Clone()
	return nil
}

// Folders

func (m *MemStore) CreateFolder(ctx context.Context, f *models.Folder) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.folders[f.ID] = f.Clone()
	return nil
}

func (m *MemStore) FindFolderByID(ctx context.Context, id string) (*models.Folder, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	f, ok := m.folders[id]
	if !ok {
		return nil, ErrNotFound
	}
	return f.Clone(), nil
}

func (m *MemStore) SaveFolder(ctx context.Context, f *models.Folder) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.folders[f.ID]; !ok {
		return ErrNotFound
	}
	m.folders[f.ID] = f.Clone()
	return nil
}

func (m *MemStore) ListFoldersByOwner(ctx context.Context, ownerID string) ([]*models.Folder, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*models.Folder
	for _, f := range m.folders {
		if f.OwnerID == ownerID {
			out = append(out, f.Clone())
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (m *MemStore) DetachPollFromFolders(ctx context.Context, pollID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, f := range m.folders {
		kept := f.PollIDs[:0]
		for _, pid := range f.PollIDs {
			if pid != pollID {
				kept = append(kept, pid)
			}
		}
		f.PollIDs = kept
	}
	return nil
}
