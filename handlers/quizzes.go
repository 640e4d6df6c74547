// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/pollcast/cliparse"
	"github.com/danielhkuo/pollcast/code"
	"github.com/danielhkuo/pollcast/middleware"
	"github.com/danielhkuo/pollcast/models"
	"github.com/danielhkuo/pollcast/poll"
	"github.com/danielhkuo/pollcast/relaunch"
	"github.com/danielhkuo/pollcast/store"
	"github.com/danielhkuo/pollcast/vote"
)

type QuizHandler struct {
	store     store.Store
	codes     *code.Generator
	processor *vote.Processor
	coord     *relaunch.Coordinator
	cfg       cliparse.Config
}

func NewQuizHandler(st store.Store, gen *code.Generator, pr *vote.Processor, coord *relaunch.Coordinator, cfg cliparse.Config) *QuizHandler {
	return &QuizHandler{store: st, codes: gen, processor: pr, coord: coord, cfg: cfg}
}

// CreateQuiz handles POST /api/quizzes
// Creates one child poll per question, then binds them to the quiz.
func (h *QuizHandler) CreateQuiz(w http.ResponseWriter, r *http.Request) {
	var req models.CreateQuizRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Title == "" || len(req.Questions) == 0 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Title and at least 1 question are required")
		return
	}
	for _, q := range req.Questions {
		if q.Question == "" || len(q.Options) < 2 {
			middleware.ErrorResponse(w, http.StatusBadRequest, "Each question needs text and at least 2 options")
			return
		}
		if q.Mode != "" && q.Mode != models.ModeSingle && q.Mode != models.ModeMultiple {
			middleware.ErrorResponse(w, http.StatusBadRequest, "mode must be single or multiple")
			return
		}
	}

	ownerID, ownerKey, err := mintOwner(r, h.cfg.OwnerKeySalt)
	if err != nil {
		slog.Error("failed to mint owner key", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create quiz")
		return
	}

	quizCode, err := h.codes.NextUnique(r.Context(), store.QuizCodeExists(h.store))
	if err != nil {
		writeDomainError(w, err, "Quiz not found")
		return
	}

	pollIDs := make([]string, 0, len(req.Questions))
	for _, q := range req.Questions {
		mode := q.Mode
		if mode == "" {
			mode = models.ModeSingle
		}
		pollCode, err := h.codes.NextUnique(r.Context(), store.PollCodeExists(h.store))
		if err != nil {
			writeDomainError(w, err, "Quiz not found")
			return
		}
		p := poll.New(uuid.NewString(), q.Question, q.Options, mode, pollCode, ownerID)
		if err := h.store.CreatePoll(r.Context(), p); err != nil {
			slog.Error("failed to insert quiz poll", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create quiz")
			return
		}
		pollIDs = append(pollIDs, p.ID)
	}

	quiz := &models.Quiz{
		ID:          uuid.NewString(),
		Title:       req.Title,
		Description: req.Description,
		Code:        quizCode,
		PollIDs:     pollIDs,
		IsActive:    true,
		OwnerID:     ownerID,
		CreatedAt:   time.Now(),
	}
	if err := h.store.CreateQuiz(r.Context(), quiz); err != nil {
		slog.Error("failed to insert quiz", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create quiz")
		return
	}
	if err := h.store.AssignPollsToQuiz(r.Context(), pollIDs, quiz.ID); err != nil {
		slog.Error("failed to bind polls to quiz", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create quiz")
		return
	}

	slog.Info("quiz created", "quiz_id", quiz.ID, "code", quiz.Code, "polls", len(pollIDs))

	middleware.JSONResponse(w, http.StatusCreated, models.CreateQuizResponse{
		QuizID:   quiz.ID,
		Code:     quiz.Code,
		OwnerKey: ownerKey,
	})
}

// GetQuiz handles GET /api/quizzes/{code}
func (h *QuizHandler) GetQuiz(w http.ResponseWriter, r *http.Request) {
	quiz, err := h.store.FindQuizByCode(r.Context(), r.PathValue("code"))
	if err != nil {
		writeDomainError(w, err, "Quiz not found")
		return
	}

	polls := make([]models.PollResponse, 0, len(quiz.PollIDs))
	for _, id := range quiz.PollIDs {
		p, err := h.store.FindPollByID(r.Context(), id)
		if err != nil {
			// dangling reference, skip
			continue
		}
		polls = append(polls, pollResponse(p))
	}

	middleware.JSONResponse(w, http.StatusOK, models.QuizResponse{
		Title:       quiz.Title,
		Description: quiz.Description,
		Code:        quiz.Code,
		IsActive:    quiz.IsActive,
		Polls:       polls,
	})
}

// SubmitVotes handles POST /api/quizzes/{code}/votes
func (h *QuizHandler) SubmitVotes(w http.ResponseWriter, r *http.Request) {
	var req models.SubmitQuizVoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	fingerprint := req.Fingerprint
	if fingerprint == "" {
		fingerprint = middleware.GetClientIP(r)
	}

	accepted, err := h.processor.ProcessQuizVote(r.Context(), r.PathValue("code"), fingerprint, req.Votes)
	if err != nil {
		writeDomainError(w, err, "Quiz not found")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.SubmitQuizVoteResponse{
		Message:  "Votes submitted successfully",
		Accepted: len(accepted),
	})
}

// SetStatus handles PATCH /api/quizzes/{code}/status
func (h *QuizHandler) SetStatus(w http.ResponseWriter, r *http.Request) {
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

	quiz, err := h.coord.SetQuizStatus(r.Context(), r.PathValue("code"), owner, *req.IsActive)
	if err != nil {
		writeDomainError(w, err, "Quiz not found")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.QuizResponse{
		Title:       quiz.Title,
		Description: quiz.Description,
		Code:        quiz.Code,
		IsActive:    quiz.IsActive,
	})
}

// Relaunch handles POST /api/quizzes/relaunch
func (h *QuizHandler) Relaunch(w http.ResponseWriter, r *http.Request) {
	owner := requesterID(r, h.cfg.OwnerKeySalt)
	if owner == "" {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "X-Owner-Key required")
		return
	}

	var req models.RelaunchQuizRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.QuizID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "quiz_id is required")
		return
	}

	quiz, err := h.coord.RelaunchQuiz(r.Context(), req.QuizID, owner, poll.RelaunchOptions{
		ResetVotes: req.ResetVotes,
		NewCode:    req.NewCode,
	})
	if err != nil {
		writeDomainError(w, err, "Quiz not found")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.RelaunchQuizResponse{
		QuizID: quiz.ID,
		Code:   quiz.Code,
	})
}
