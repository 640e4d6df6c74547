// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/pollcast/auth"
	"github.com/danielhkuo/pollcast/cliparse"
	"github.com/danielhkuo/pollcast/middleware"
	"github.com/danielhkuo/pollcast/models"
	"github.com/danielhkuo/pollcast/store"
)

type FolderHandler struct {
	store store.Store
	cfg   cliparse.Config
}

func NewFolderHandler(st store.Store, cfg cliparse.Config) *FolderHandler {
	return &FolderHandler{store: st, cfg: cfg}
}

// CreateFolder handles POST /api/folders
func (h *FolderHandler) CreateFolder(w http.ResponseWriter, r *http.Request) {
	owner := requesterID(r, h.cfg.OwnerKeySalt)
	if owner == "" {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "X-Owner-Key required")
		return
	}

	var req models.CreateFolderRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.Name == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "name is required")
		return
	}

	folder := &models.Folder{
		ID:          uuid.NewString(),
		Name:        req.Name,
		Description: req.Description,
		OwnerID:     owner,
		CreatedAt:   time.Now(),
	}
	if err := h.store.CreateFolder(r.Context(), folder); err != nil {
		slog.Error("failed to insert folder", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create folder")
		return
	}

	slog.Info("folder created", "folder_id", folder.ID, "name", folder.Name)

	middleware.JSONResponse(w, http.StatusCreated, models.FolderResponse{
		FolderID:    folder.ID,
		Name:        folder.Name,
		Description: folder.Description,
	})
}

// ListFolders handles GET /api/folders
func (h *FolderHandler) ListFolders(w http.ResponseWriter, r *http.Request) {
	owner := requesterID(r, h.cfg.OwnerKeySalt)
	if owner == "" {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "X-Owner-Key required")
		return
	}

	folders, err := h.store.ListFoldersByOwner(r.Context(), owner)
	if err != nil {
		writeDomainError(w, err, "Folder not found")
		return
	}

	out := make([]models.FolderResponse, 0, len(folders))
	for _, f := range folders {
		out = append(out, models.FolderResponse{
			FolderID:    f.ID,
			Name:        f.Name,
			Description: f.Description,
		})
	}
	middleware.JSONResponse(w, http.StatusOK, out)
}

// GetFolderPolls handles GET /api/folders/{id}/polls
func (h *FolderHandler) GetFolderPolls(w http.ResponseWriter, r *http.Request) {
	owner := requesterID(r, h.cfg.OwnerKeySalt)
	if owner == "" {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "X-Owner-Key required")
		return
	}

	folder, err := h.store.FindFolderByID(r.Context(), r.PathValue("id"))
	if err != nil {
		writeDomainError(w, err, "Folder not found")
		return
	}
	if auth.VerifyOwner(owner, folder.OwnerID) != nil {
		middleware.ErrorResponse(w, http.StatusForbidden, "Unauthorized")
		return
	}

	polls := make([]models.PollResponse, 0, len(folder.PollIDs))
	for _, id := range folder.PollIDs {
		p, err := h.store.FindPollByID(r.Context(), id)
		if err != nil {
			continue
		}
		polls = append(polls, pollResponse(p))
	}

	middleware.JSONResponse(w, http.StatusOK, models.FolderPollsResponse{
		FolderID: folder.ID,
		Name:     folder.Name,
		Polls:    polls,
	})
}

// AddPoll handles POST /api/folders/{id}/polls/{code}
func (h *FolderHandler) AddPoll(w http.ResponseWriter, r *http.Request) {
	owner := requesterID(r, h.cfg.OwnerKeySalt)
	if owner == "" {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "X-Owner-Key required")
		return
	}

	folder, err := h.store.FindFolderByID(r.Context(), r.PathValue("id"))
	if err != nil {
		writeDomainError(w, err, "Folder not found")
		return
	}
	if auth.VerifyOwner(owner, folder.OwnerID) != nil {
		middleware.ErrorResponse(w, http.StatusForbidden, "Unauthorized")
		return
	}

	p, err := h.store.FindPollByCode(r.Context(), r.PathValue("code"))
	if err != nil {
		writeDomainError(w, err, "Poll not found")
		return
	}

	for _, id := range folder.PollIDs {
		if id == p.ID {
			middleware.ErrorResponse(w, http.StatusBadRequest, "Poll already in folder")
			return
		}
	}

	folder.PollIDs = append(folder.PollIDs, p.ID)
	if err := h.store.SaveFolder(r.Context(), folder); err != nil {
		slog.Error("failed to save folder", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to add poll to folder")
		return
	}

	slog.Info("poll added to folder", "folder_id", folder.ID, "poll_id", p.ID)

	middleware.JSONResponse(w, http.StatusOK, models.FolderPollsResponse{
		FolderID: folder.ID,
		Name:     folder.Name,
	})
}
