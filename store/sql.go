// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/danielhkuo/pollcast/models"
)

// SQLStore persists polls, quizzes and folders through database/sql. The
// SQL sticks to $N placeholders and portable types so the same statements
// run on both PostgreSQL (lib/pq) and SQLite (modernc.org/sqlite).
// Option lists, tallies, fingerprints and history are JSON-encoded columns.
type SQLStore struct {
	db *sql.DB
}

func NewSQLStore(db *sql.DB) *SQLStore {
	return &SQLStore{db: db}
}

func marshalJSON(v interface{}) ([]byte, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode column: %w", err)
	}
	return b, nil
}

func fingerprintList(set map[string]bool) []string {
	out := make([]string, 0, len(set))
	for fp := range set {
		out = append(out, fp)
	}
	return out
}

func fingerprintSet(list []string) map[string]bool {
	out := make(map[string]bool, len(list))
	for _, fp := range list {
		out[fp] = true
	}
	return out
}

// Polls

const pollColumns = "id, quiz_id, question, options, mode, tally, code, is_active, fingerprints, history, owner_id, version, created_at"

func (s *SQLStore) CreatePoll(ctx context.Context, p *models.Poll) error {
	options, err := marshalJSON(p.Options)
	if err != nil {
		return err
	}
	tally, err := marshalJSON(p.Tally)
	if err != nil {
		return err
	}
	fingerprints, err := marshalJSON(fingerprintList(p.Fingerprints))
	if err != nil {
		return err
	}
	history, err := marshalJSON(p.History)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO poll (`+pollColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`, p.ID, p.QuizID, p.Question, options, p.Mode, tally, p.Code,
		p.IsActive, fingerprints, history, p.OwnerID, p.Version, p.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert poll: %w", err)
	}
	return nil
}

func (s *SQLStore) scanPoll(row *sql.Row) (*models.Poll, error) {
	var (
		p            models.Poll
		quizID       sql.NullString
		options      []byte
		tally        []byte
		fingerprints []byte
		history      []byte
	)
	err := row.Scan(&p.ID, &quizID, &p.Question, &options, &p.Mode, &tally,
		&p.Code, &p.IsActive, &fingerprints, &history, &p.OwnerID,
		&p.Version, &p.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan poll: %w", err)
	}

	p.QuizID = quizID.String
	if err := json.Unmarshal(options, &p.Options); err != nil {
		return nil, fmt.Errorf("failed to decode options: %w", err)
	}
	if err := json.Unmarshal(tally, &p.Tally); err != nil {
		return nil, fmt.Errorf("failed to decode tally: %w", err)
	}
	var fps []string
	if err := json.Unmarshal(fingerprints, &fps); err != nil {
		return nil, fmt.Errorf("failed to decode fingerprints: %w", err)
	}
	p.Fingerprints = fingerprintSet(fps)
	if len(history) > 0 {
		if err := json.Unmarshal(history, &p.History); err != nil {
			return nil, fmt.Errorf("failed to decode history: %w", err)
		}
	}
	return &p, nil
}

func (s *SQLStore) FindPollByCode(ctx context.Context, code string) (*models.Poll, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+pollColumns+" FROM poll WHERE code = $1", code)
	return s.scanPoll(row)
}

func (s *SQLStore) FindPollByID(ctx context.Context, id string) (*models.Poll, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+pollColumns+" FROM poll WHERE id = $1", id)
	return s.scanPoll(row)
}

func (s *SQLStore) SavePoll(ctx context.Context, p *models.Poll) error {
	tally, err := marshalJSON(p.Tally)
	if err != nil {
		return err
	}
	fingerprints, err := marshalJSON(fingerprintList(p.Fingerprints))
	if err != nil {
		return err
	}
	history, err := marshalJSON(p.History)
	if err != nil {
		return err
	}

	res, err := s.db.ExecContext(ctx, `
		UPDATE poll
		SET quiz_id = $1, tally = $2, code = $3, is_active = $4,
		    fingerprints = $5, history = $6, version = version + 1
		WHERE id = $7 AND version = $8
	`, p.QuizID, tally, p.Code, p.IsActive, fingerprints, history, p.ID, p.Version)
	if err != nil {
		return fmt.Errorf("failed to save poll: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read save result: %w", err)
	}
	if affected == 0 {
		return ErrVersionConflict
	}
	p.Version++
	return nil
}

func (s *SQLStore) DeletePoll(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM poll WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete poll: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read delete result: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SQLStore) ListPollsByOwner(ctx context.Context, ownerID string) ([]*models.Poll, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id FROM poll WHERE owner_id = $1 ORDER BY created_at DESC", ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query polls: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan poll id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate polls: %w", err)
	}

	polls := make([]*models.Poll, 0, len(ids))
	for _, id := range ids {
		p, err := s.FindPollByID(ctx, id)
		if err != nil {
			return nil, err
		}
		polls = append(polls, p)
	}
	return polls, nil
}

// placeholders renders $start..$start+n-1 for IN clauses.
func placeholders(start, n int) string {
	parts := make([]string, n)
	for i := 0; i < n; i++ {
		parts[i] = "$" + strconv.Itoa(start+i)
	}
	return strings.Join(parts, ", ")
}

func (s *SQLStore) UpdatePollStatus(ctx context.Context, ids []string, active bool) error {
	if len(ids) == 0 {
		return nil
	}
	args := make([]interface{}, 0, len(ids)+1)
	args = append(args, active)
	for _, id := range ids {
		args = append(args, id)
	}
	_, err := s.db.ExecContext(ctx,
		"UPDATE poll SET is_active = $1, version = version + 1 WHERE id IN ("+placeholders(2, len(ids))+")",
		args...)
	if err != nil {
		return fmt.Errorf("failed to update poll status: %w", err)
	}
	return nil
}

func (s *SQLStore) AssignPollsToQuiz(ctx context.Context, pollIDs []string, quizID string) error {
	if len(pollIDs) == 0 {
		return nil
	}
	args := make([]interface{}, 0, len(pollIDs)+1)
	args = append(args, quizID)
	for _, id := range pollIDs {
		args = append(args, id)
	}
	_, err := s.db.ExecContext(ctx,
		"UPDATE poll SET quiz_id = $1, version = version + 1 WHERE id IN ("+placeholders(2, len(pollIDs))+")",
		args...)
	if err != nil {
		return fmt.Errorf("failed to assign polls to quiz: %w", err)
	}
	return nil
}

// Quizzes

const quizColumns = "id, title, description, code, poll_ids, is_active, owner_id, version, created_at"

func (s *SQLStore) CreateQuiz(ctx context.Context, q *models.Quiz) error {
	pollIDs, err := marshalJSON(q.PollIDs)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO quiz (`+quizColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, q.ID, q.Title, q.Description, q.Code, pollIDs, q.IsActive,
		q.OwnerID, q.Version, q.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert quiz: %w", err)
	}
	return nil
}

func (s *SQLStore) scanQuiz(row *sql.Row) (*models.Quiz, error) {
	var (
		q       models.Quiz
		pollIDs []byte
	)
	err := row.Scan(&q.ID, &q.Title, &q.Description, &q.Code, &pollIDs,
		&q.IsActive, &q.OwnerID, &q.Version, &q.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan quiz: %w", err)
	}
	if err := json.Unmarshal(pollIDs, &q.PollIDs); err != nil {
		return nil, fmt.Errorf("failed to decode poll ids: %w", err)
	}
	return &q, nil
}

func (s *SQLStore) FindQuizByCode(ctx context.Context, code string) (*models.Quiz, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+quizColumns+" FROM quiz WHERE code = $1", code)
	return s.scanQuiz(row)
}

func (s *SQLStore) FindQuizByID(ctx context.Context, id string) (*models.Quiz, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+quizColumns+" FROM quiz WHERE id = $1", id)
	return s.scanQuiz(row)
}

func (s *SQLStore) SaveQuiz(ctx context.Context, q *models.Quiz) error {
	pollIDs, err := marshalJSON(q.PollIDs)
	if err != nil {
		return err
	}
	res, err := s.db.ExecContext(ctx, `
		UPDATE quiz
		SET code = $1, poll_ids = $2, is_active = $3, version = version + 1
		WHERE id = $4 AND version = $5
	`, q.Code, pollIDs, q.IsActive, q.ID, q.Version)
	if err != nil {
		return fmt.Errorf("failed to save quiz: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read save result: %w", err)
	}
	if affected == 0 {
		return ErrVersionConflict
	}
	q.Version++
	return nil
}

// Folders

const folderColumns = "id, name, description, poll_ids, owner_id, created_at"

func (s *SQLStore) CreateFolder(ctx context.Context, f *models.Folder) error {
	pollIDs, err := marshalJSON(f.PollIDs)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO folder (`+folderColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, f.ID, f.Name, f.Description, pollIDs, f.OwnerID, f.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert folder: %w", err)
	}
	return nil
}

func (s *SQLStore) scanFolder(row *sql.Row) (*models.Folder, error) {
	var (
		f       models.Folder
		pollIDs []byte
	)
	err := row.Scan(&f.ID, &f.Name, &f.Description, &pollIDs, &f.OwnerID, &f.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan folder: %w", err)
	}
	if err := json.Unmarshal(pollIDs, &f.PollIDs); err != nil {
		return nil, fmt.Errorf("failed to decode poll ids: %w", err)
	}
	return &f, nil
}

func (s *SQLStore) FindFolderByID(ctx context.Context, id string) (*models.Folder, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+folderColumns+" FROM folder WHERE id = $1", id)
	return s.scanFolder(row)
}

func (s *SQLStore) SaveFolder(ctx context.Context, f *models.Folder) error {
	pollIDs, err := marshalJSON(f.PollIDs)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `
		UPDATE folder SET name = $1, description = $2, poll_ids = $3 WHERE id = $4
	`, f.Name, f.Description, pollIDs, f.ID)
	if err != nil {
		return fmt.Errorf("failed to save folder: %w", err)
	}
	return nil
}

func (s *SQLStore) ListFoldersByOwner(ctx context.Context, ownerID string) ([]*models.Folder, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+folderColumns+" FROM folder WHERE owner_id = $1 ORDER BY created_at DESC", ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query folders: %w", err)
	}
	defer rows.Close()

	var folders []*models.Folder
	for rows.Next() {
		var (
			f       models.Folder
			pollIDs []byte
		)
		if err := rows.Scan(&f.ID, &f.Name, &f.Description, &pollIDs, &f.OwnerID, &f.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan folder: %w", err)
		}
		if err := json.Unmarshal(pollIDs, &f.PollIDs); err != nil {
			return nil, fmt.Errorf("failed to decode poll ids: %w", err)
		}
		folders = append(folders, &f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate folders: %w", err)
	}
	return folders, nil
}

func (s *SQLStore) DetachPollFromFolders(ctx context.Context, pollID string) error {
	// JSON membership predicates differ between the two engines, so filter
	// in Go over the owner-agnostic folder set.
	rows, err := s.db.QueryContext(ctx, "SELECT id, poll_ids FROM folder")
	if err != nil {
		return fmt.Errorf("failed to query folders: %w", err)
	}
	defer rows.Close()

	type update struct {
		id      string
		pollIDs []string
	}
	var updates []update
	for rows.Next() {
		var (
			id      string
			raw     []byte
			pollIDs []string
		)
		if err := rows.Scan(&id, &raw); err != nil {
			return fmt.Errorf("failed to scan folder: %w", err)
		}
		if err := json.Unmarshal(raw, &pollIDs); err != nil {
			return fmt.Errorf("failed to decode poll ids: %w", err)
		}
		kept := pollIDs[:0]
		removed := false
		for _, pid := range pollIDs {
			if pid == pollID {
				removed = true
				continue
			}
			kept = append(kept, pid)
		}
		if removed {
			updates = append(updates, update{id: id, pollIDs: kept})
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to iterate folders: %w", err)
	}

	for _, u := range updates {
		encoded, err := marshalJSON(u.pollIDs)
		if err != nil {
			return err
		}
		if _, err := s.db.ExecContext(ctx,
			"UPDATE folder SET poll_ids = $1 WHERE id = $2", encoded, u.id); err != nil {
			return fmt.Errorf("failed to detach poll from folder: %w", err)
		}
	}
	return nil
}
