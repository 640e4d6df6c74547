// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/danielhkuo/pollcast/cliparse"
	"github.com/danielhkuo/pollcast/code"
	"github.com/danielhkuo/pollcast/middleware"
	"github.com/danielhkuo/pollcast/models"
	"github.com/danielhkuo/pollcast/poll"
	"github.com/danielhkuo/pollcast/relaunch"
	"github.com/danielhkuo/pollcast/store"
)

type PollHandler struct {
	store store.Store
	codes *code.Generator
	coord *relaunch.Coordinator
	cfg   cliparse.Config
}

func NewPollHandler(st store.Store, gen *code.Generator, coord *relaunch.Coordinator, cfg cliparse.Config) *PollHandler {
	return &PollHandler{store: st, codes: gen, coord: coord, cfg: cfg}
}

// CreatePoll handles POST /api/polls
func (h *PollHandler) CreatePoll(w http.ResponseWriter, r *http.Request) {
	var req models.CreatePollRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	// Validate input
	if req.Question == "" || len(req.Options) < 2 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Question and at least 2 options are required")
		return
	}
	mode := req.Mode
	if mode == "" {
		mode = models.ModeSingle
	}
	if mode != models.ModeSingle && mode != models.ModeMultiple {
		middleware.ErrorResponse(w, http.StatusBadRequest, "mode must be single or multiple")
		return
	}

	ownerID, ownerKey, err := mintOwner(r, h.cfg.OwnerKeySalt)
	if err != nil {
		slog.Error("failed to mint owner key", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create poll")
		return
	}

	pollCode, err := h.codes.NextUnique(r.Context(), store.PollCodeExists(h.store))
	if err != nil {
		writeDomainError(w, err, "Poll not found")
		return
	}

	p := poll.New(uuid.NewString(), req.Question, req.Options, mode, pollCode, ownerID)
	if err := h.store.CreatePoll(r.Context(), p); err != nil {
		slog.Error("failed to insert poll", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create poll")
		return
	}

	slog.Info("poll created", "poll_id", p.ID, "code", p.Code, "mode", mode)

	middleware.JSONResponse(w, http.StatusCreated, models.CreatePollResponse{
		PollID:   p.ID,
		Code:     p.Code,
		OwnerKey: ownerKey,
	})
}

// GetPoll handles GET /api/polls/{code}
func (h *PollHandler) GetPoll(w http.ResponseWriter, r *http.Request) {
	p, err := h.store.FindPollByCode(r.Context(), r.PathValue("code"))
	if err != nil {
		writeDomainError(w, err, "Poll not found")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, pollResponse(p))
}

// GetResults handles GET /api/polls/{code}/results
func (h *PollHandler) GetResults(w http.ResponseWriter, r *http.Request) {
	p, err := h.store.FindPollByCode(r.Context(), r.PathValue("code"))
	if err != nil {
		writeDomainError(w, err, "Poll not found")
		return
	}

	results := make([]models.OptionResult, len(p.Options))
	for i, opt := range p.Options {
		results[i] = models.OptionResult{Option: opt, Votes: p.Tally[i]}
	}

	middleware.JSONResponse(w, http.StatusOK, models.ResultsResponse{
		Question: p.Question,
		Results:  results,
	})
}

// MyPolls handles GET /api/polls
func (h *PollHandler) MyPolls(w http.ResponseWriter, r *http.Request) {
	owner := requesterID(r, h.cfg.OwnerKeySalt)
	if owner == "" {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "X-Owner-Key required")
		return
	}

	polls, err := h.store.ListPollsByOwner(r.Context(), owner)
	if err != nil {
		writeDomainError(w, err, "Poll not found")
		return
	}

	out := make([]models.PollResponse, 0, len(polls))
	for _, p := range polls {
		out = append(out, pollResponse(p))
	}
	middleware.JSONResponse(w, http.StatusOK, out)
}

// SetStatus handles PATCH /api/polls/{code}/status
func (h *PollHandler) SetStatus(w http.ResponseWriter, r *http.Request) {
	owner := requesterID(r, h.cfg.OwnerKeySalt)
	if owner == "" {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "X-Owner-Key required")
		return
	}

	var req models.UpdateStatusRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.IsActive == nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "is_active is required")
		return
	}

	p, err := h.coord.SetPollStatus(r.Context(), r.PathValue("code"), owner, *req.IsActive)
	if err != nil {
		writeDomainError(w, err, "Poll not found")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, pollResponse(p))
}

// Relaunch handles POST /api/polls/relaunch
func (h *PollHandler) Relaunch(w http.ResponseWriter, r *http.Request) {
	owner := requesterID(r, h.cfg.OwnerKeySalt)
	if owner == "" {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "X-Owner-Key required")
		return
	}

	var req models.RelaunchPollRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.PollID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "poll_id is required")
		return
	}

	p, err := h.coord.RelaunchPoll(r.Context(), req.PollID, owner, poll.RelaunchOptions{
		ResetVotes: req.ResetVotes,
		NewCode:    req.NewCode,
	})
	if err != nil {
		writeDomainError(w, err, "Poll not found")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.RelaunchPollResponse{
		PollID: p.ID,
		Code:   p.Code,
	})
}

// DeletePoll handles DELETE /api/polls/{code}
func (h *PollHandler) DeletePoll(w http.ResponseWriter, r *http.Request) {
	owner := requesterID(r, h.cfg.OwnerKeySalt)
	if owner == "" {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "X-Owner-Key required")
		return
	}

	p, err := h.store.FindPollByCode(r.Context(), r.PathValue("code"))
	if err != nil {
		writeDomainError(w, err, "Poll not found")
		return
	}

	if err := h.coord.DeletePoll(r.Context(), p.ID, owner); err != nil {
		writeDomainError(w, err, "Poll not found")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
