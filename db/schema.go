// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS. The statements stick
// to the SQL subset both sqlite and postgres accept: TEXT columns hold
// JSON-encoded lists and timestamps are set by the application, never by
// database defaults.
func CreateSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

const schema = `
-- Polls
CREATE TABLE IF NOT EXISTS poll (
    id TEXT PRIMARY KEY,
    quiz_id TEXT NOT NULL DEFAULT '',
    question TEXT NOT NULL,
    options TEXT NOT NULL,
    mode TEXT NOT NULL CHECK (mode IN ('single', 'multiple')),
    tally TEXT NOT NULL,
    code TEXT NOT NULL UNIQUE,
    is_active BOOLEAN NOT NULL,
    fingerprints TEXT NOT NULL,
    history TEXT NOT NULL,
    owner_id TEXT NOT NULL,
    version INTEGER NOT NULL DEFAULT 0,
    created_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_poll_code ON poll(code);
CREATE INDEX IF NOT EXISTS idx_poll_owner_id ON poll(owner_id);
CREATE INDEX IF NOT EXISTS idx_poll_quiz_id ON poll(quiz_id);

-- Quizzes
CREATE TABLE IF NOT EXISTS quiz (
    id TEXT PRIMARY KEY,
    title TEXT NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    code TEXT NOT NULL UNIQUE,
    poll_ids TEXT NOT NULL,
    is_active BOOLEAN NOT NULL,
    owner_id TEXT NOT NULL,
    version INTEGER NOT NULL DEFAULT 0,
    created_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_quiz_code ON quiz(code);
CREATE INDEX IF NOT EXISTS idx_quiz_owner_id ON quiz(owner_id);

-- Folders
CREATE TABLE IF NOT EXISTS folder (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    poll_ids TEXT NOT NULL,
    owner_id TEXT NOT NULL,
    created_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_folder_owner_id ON folder(owner_id);
`
