// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/pollcast/auth"
	"github.com/danielhkuo/pollcast/cliparse"
	"github.com/danielhkuo/pollcast/models"
	"github.com/danielhkuo/pollcast/poll"
	"github.com/danielhkuo/pollcast/store"
)

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:         5000,
		DatabaseURL:  "file:pollcast_test.db",
		DatabaseType: "sqlite",
		OwnerKeySalt: "test-owner-salt",
		CodeLength:   6,
	}
}

// TestOwner returns a bearer token plus the owner identity it digests to
// under the test config's salt.
func TestOwner(t *testing.T, cfg cliparse.Config) (token, ownerID string) {
	t.Helper()

	token, err := auth.GenerateOwnerToken()
	if err != nil {
		t.Fatalf("Failed to generate owner token: %v", err)
	}
	return token, auth.DigestOwnerToken(token, cfg.OwnerKeySalt)
}

// CreateTestPoll inserts an active poll into the store and returns it
func CreateTestPoll(t *testing.T, st store.Store, pollCode, ownerID string) *models.Poll {
	t.Helper()

	p := poll.New(uuid.NewString(), "Test question?", []string{"Red", "Blue", "Green"}, models.ModeSingle, pollCode, ownerID)
	if err := st.CreatePoll(context.Background(), p); err != nil {
		t.Fatalf("Failed to create test poll: %v", err)
	}
	return p
}

// CreateTestQuiz inserts a quiz with the given child polls and binds them
func CreateTestQuiz(t *testing.T, st store.Store, quizCode, ownerID string, children ...*models.Poll) *models.Quiz {
	t.Helper()

	ids := make([]string, 0, len(children))
	for _, p := range children {
		ids = append(ids, p.ID)
	}
	q := &models.Quiz{
		ID:        uuid.NewString(),
		Title:     "Test Quiz",
		Code:      quizCode,
		PollIDs:   ids,
		IsActive:  true,
		OwnerID:   ownerID,
		CreatedAt: time.Now(),
	}
	if err := st.CreateQuiz(context.Background(), q); err != nil {
		t.Fatalf("Failed to create test quiz: %v", err)
	}
	if err := st.AssignPollsToQuiz(context.Background(), ids, q.ID); err != nil {
		t.Fatalf("Failed to bind polls to test quiz: %v", err)
	}
	return q
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
