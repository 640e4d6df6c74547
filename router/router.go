// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/danielhkuo/pollcast/cliparse"
	"github.com/danielhkuo/pollcast/code"
	"github.com/danielhkuo/pollcast/handlers"
	"github.com/danielhkuo/pollcast/hub"
	"github.com/danielhkuo/pollcast/middleware"
	"github.com/danielhkuo/pollcast/poll"
	"github.com/danielhkuo/pollcast/relaunch"
	"github.com/danielhkuo/pollcast/store"
	"github.com/danielhkuo/pollcast/vote"
)

func NewRouter(st store.Store, h *hub.Hub, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	// Shared domain services
	gen := code.NewGenerator(cfg.CodeLength)
	locks := poll.NewLocks()
	processor := vote.NewProcessor(st, h, locks)
	coord := relaunch.NewCoordinator(st, gen, locks)

	// Initialize handlers
	pollHandler := handlers.NewPollHandler(st, gen, coord, cfg)
	voteHandler := handlers.NewVoteHandler(processor)
	quizHandler := handlers.NewQuizHandler(st, gen, processor, coord, cfg)
	folderHandler := handlers.NewFolderHandler(st, cfg)
	importHandler := handlers.NewImportHandler(st, gen, cfg)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Live vote updates (websocket)
	mux.HandleFunc("GET /ws", func(w http.ResponseWriter, r *http.Request) {
		hub.ServeWS(h, w, r)
	})

	// Poll management (owner operations)
	mux.HandleFunc("POST /api/polls", middleware.WithLogging(pollHandler.CreatePoll))
	mux.HandleFunc("GET /api/polls", middleware.WithLogging(pollHandler.MyPolls))
	mux.HandleFunc("POST /api/polls/import", middleware.WithLogging(importHandler.ImportPolls))
	mux.HandleFunc("POST /api/polls/relaunch", middleware.WithLogging(pollHandler.Relaunch))
	mux.HandleFunc("PATCH /api/polls/{code}/status", middleware.WithLogging(pollHandler.SetStatus))
	mux.HandleFunc("DELETE /api/polls/{code}", middleware.WithLogging(pollHandler.DeletePoll))

	// Poll access and voting (public)
	mux.HandleFunc("GET /api/polls/{code}", middleware.WithLogging(pollHandler.GetPoll))
	mux.HandleFunc("GET /api/polls/{code}/results", middleware.WithLogging(pollHandler.GetResults))
	mux.HandleFunc("POST /api/polls/{code}/votes", middleware.WithLogging(voteHandler.SubmitVote))

	// Quiz management and voting
	mux.HandleFunc("POST /api/quizzes", middleware.WithLogging(quizHandler.CreateQuiz))
	mux.HandleFunc("POST /api/quizzes/relaunch", middleware.WithLogging(quizHandler.Relaunch))
	mux.HandleFunc("GET /api/quizzes/{code}", middleware.WithLogging(quizHandler.GetQuiz))
	mux.HandleFunc("POST /api/quizzes/{code}/votes", middleware.WithLogging(quizHandler.SubmitVotes))
	mux.HandleFunc("PATCH /api/quizzes/{code}/status", middleware.WithLogging(quizHandler.SetStatus))

	// Folders (owner operations)
	mux.HandleFunc("POST /api/folders", middleware.WithLogging(folderHandler.CreateFolder))
	mux.HandleFunc("GET /api/folders", middleware.WithLogging(folderHandler.ListFolders))
	mux.HandleFunc("GET /api/folders/{id}/polls", middleware.WithLogging(folderHandler.GetFolderPolls))
	mux.HandleFunc("POST /api/folders/{id}/polls/{code}", middleware.WithLogging(folderHandler.AddPoll))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("pollcast API v1"))
	})

	return mux
}
