// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/pollcast/auth"
	"github.com/danielhkuo/pollcast/ballot"
	"github.com/danielhkuo/pollcast/code"
	"github.com/danielhkuo/pollcast/middleware"
	"github.com/danielhkuo/pollcast/models"
	"github.com/danielhkuo/pollcast/poll"
	"github.com/danielhkuo/pollcast/store"
	"github.com/danielhkuo/pollcast/vote"
)

// requesterID derives the owner identity from the X-Owner-Key header.
// Returns "" when the header is absent.
func requesterID(r *http.Request, salt string) string {
	token := r.Header.Get("X-Owner-Key")
	if token == "" {
		return ""
	}
	return auth.DigestOwnerToken(token, salt)
}

// mintOwner returns the caller's owner identity plus the token to echo
// back. A caller that already holds a key keeps it, so all their
// resources group under one owner; otherwise a fresh token is minted.
func mintOwner(r *http.Request, salt string) (ownerID, ownerKey string, err error) {
	if token := r.Header.Get("X-Owner-Key"); token != "" {
		return auth.DigestOwnerToken(token, salt), token, nil
	}
	token, err := auth.GenerateOwnerToken()
	if err != nil {
		return "", "", err
	}
	return auth.DigestOwnerToken(token, salt), token, nil
}

// writeDomainError maps domain errors to HTTP responses. notFoundMsg
// names the missing resource for 404s.
func writeDomainError(w http.ResponseWriter, err error, notFoundMsg string) {
	var ve *ballot.ValidationError
	var pe *vote.PersistenceError

	switch {
	case errors.As(err, &ve):
		middleware.ErrorResponse(w, http.StatusBadRequest, ve.Message)
	case errors.Is(err, store.ErrNotFound):
		middleware.ErrorResponse(w, http.StatusNotFound, notFoundMsg)
	case errors.Is(err, auth.ErrUnauthorized):
		middleware.ErrorResponse(w, http.StatusForbidden, "Unauthorized")
	case errors.Is(err, poll.ErrClosed):
		middleware.ErrorResponse(w, http.StatusForbidden, "Poll is closed. Voting not allowed.")
	case errors.Is(err, vote.ErrQuizClosed):
		middleware.ErrorResponse(w, http.StatusForbidden, "Quiz is closed. Voting not allowed.")
	case errors.Is(err, poll.ErrDuplicateVote):
		middleware.ErrorResponse(w, http.StatusForbidden, "You have already voted in this poll")
	case errors.As(err, &pe):
		slog.Error("vote not persisted", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Vote was not saved and did not count; please retry")
	case errors.Is(err, code.ErrSpaceExhausted):
		slog.Error("code space exhausted", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Could not allocate a join code")
	default:
		slog.Error("request failed", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Internal server error")
	}
}

func pollResponse(p *models.Poll) models.PollResponse {
	return models.PollResponse{
		Question: p.Question,
		Options:  p.Options,
		Code:     p.Code,
		Mode:     p.Mode,
		IsActive: p.IsActive,
	}
}
