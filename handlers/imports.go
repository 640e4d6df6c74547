// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/pollcast/cliparse"
	"github.com/danielhkuo/pollcast/code"
	"github.com/danielhkuo/pollcast/ingest"
	"github.com/danielhkuo/pollcast/middleware"
	"github.com/danielhkuo/pollcast/models"
	"github.com/danielhkuo/pollcast/poll"
	"github.com/danielhkuo/pollcast/store"
)

type ImportHandler struct {
	store store.Store
	codes *code.Generator
	cfg   cliparse.Config
}

func NewImportHandler(st store.Store, gen *code.Generator, cfg cliparse.Config) *ImportHandler {
	return &ImportHandler{store: st, codes: gen, cfg: cfg}
}

// maxImportSize bounds uploaded CSV files.
const maxImportSize = 1 << 20

// ImportPolls handles POST /api/polls/import
// Accepts a CSV either as a multipart "file" field or as the raw request
// body. Every valid row becomes a poll; rejected rows are reported back
// with the line number and reason.
func (h *ImportHandler) ImportPolls(w http.ResponseWriter, r *http.Request) {
	ownerID, ownerKey, err := mintOwner(r, h.cfg.OwnerKeySalt)
	if err != nil {
		slog.Error("failed to mint owner key", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to import polls")
		return
	}

	body, err := importBody(r)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "A CSV file is required")
		return
	}
	defer body.Close()

	rows, err := ingest.ParseRows(io.LimitReader(body, maxImportSize))
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	// Folders named in the CSV are created on first use.
	folders := map[string]*models.Folder{}

	resp := models.ImportPollsResponse{
		Created:  []models.ImportedPoll{},
		Skipped:  []models.SkippedRow{},
		OwnerKey: ownerKey,
	}
	for _, row := range rows {
		if row.Skipped != nil {
			resp.Skipped = append(resp.Skipped, *row.Skipped)
			continue
		}
		v := row.Valid

		pollCode, err := h.codes.NextUnique(r.Context(), store.PollCodeExists(h.store))
		if err != nil {
			writeDomainError(w, err, "Poll not found")
			return
		}
		p := poll.New(uuid.NewString(), v.Question, v.Options, v.Mode, pollCode, ownerID)
		if err := h.store.CreatePoll(r.Context(), p); err != nil {
			slog.Error("failed to insert imported poll", "line", v.Line, "error", err)
			resp.Skipped = append(resp.Skipped, models.SkippedRow{Line: v.Line, Reason: "could not be saved"})
			continue
		}

		if v.Folder != "" {
			if err := h.fileInFolder(r, folders, v.Folder, ownerID, p.ID); err != nil {
				slog.Warn("imported poll not filed in folder", "line", v.Line, "folder", v.Folder, "error", err)
			}
		}

		resp.Created = append(resp.Created, models.ImportedPoll{
			PollID: p.ID,
			Code:   p.Code,
			Topic:  v.Topic,
		})
	}

	slog.Info("polls imported", "created", len(resp.Created), "skipped", len(resp.Skipped))

	middleware.JSONResponse(w, http.StatusCreated, resp)
}

func importBody(r *http.Request) (io.ReadCloser, error) {
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		file, _, err := r.FormFile("file")
		if err != nil {
			return nil, err
		}
		return file, nil
	}
	return r.Body, nil
}

func (h *ImportHandler) fileInFolder(r *http.Request, cache map[string]*models.Folder, name, ownerID, pollID string) error {
	folder, ok := cache[name]
	if !ok {
		existing, err := h.store.ListFoldersByOwner(r.Context(), ownerID)
		if err != nil {
			return err
		}
		for _, f := range existing {
			if f.Name == name {
				folder = f
				break
			}
		}
		if folder == nil {
			folder = &models.Folder{
				ID:        uuid.NewString(),
				Name:      name,
				OwnerID:   ownerID,
				CreatedAt: time.Now(),
			}
			if err := h.store.CreateFolder(r.Context(), folder); err != nil {
				return err
			}
		}
		cache[name] = folder
	}

	folder.PollIDs = append(folder.PollIDs, pollID)
	return h.store.SaveFolder(r.Context(), folder)
}
