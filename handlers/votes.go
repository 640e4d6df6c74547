// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"

	"github.com/danielhkuo/pollcast/ballot"
	"github.com/danielhkuo/pollcast/middleware"
	"github.com/danielhkuo/pollcast/models"
	"github.com/danielhkuo/pollcast/vote"
)

type VoteHandler struct {
	processor *vote.Processor
}

func NewVoteHandler(pr *vote.Processor) *VoteHandler {
	return &VoteHandler{processor: pr}
}

// SubmitVote handles POST /api/polls/{code}/votes
func (h *VoteHandler) SubmitVote(w http.ResponseWriter, r *http.Request) {
	var req models.SubmitVoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	// Clients without a stable fingerprint fall back to the source IP.
	fingerprint := req.Fingerprint
	if fingerprint == "" {
		fingerprint = middleware.GetClientIP(r)
	}

	accepted, err := h.processor.ProcessVote(r.Context(), ballot.Ballot{
		TargetCode:    r.PathValue("code"),
		Fingerprint:   fingerprint,
		OptionIndex:   req.OptionIndex,
		OptionIndices: req.OptionIndices,
	})
	if err != nil {
		writeDomainError(w, err, "Poll not found")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.SubmitVoteResponse{
		Message: "Vote submitted successfully",
		Tally:   accepted.Tally,
	})
}
