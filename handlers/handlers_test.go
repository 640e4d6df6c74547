// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"testing"

	"github.com/danielhkuo/pollcast/cliparse"
	"github.com/danielhkuo/pollcast/code"
	"github.com/danielhkuo/pollcast/hub"
	"github.com/danielhkuo/pollcast/poll"
	"github.com/danielhkuo/pollcast/relaunch"
	"github.com/danielhkuo/pollcast/store"
	"github.com/danielhkuo/pollcast/testutil"
	"github.com/danielhkuo/pollcast/vote"
)

// testEnv wires the full handler stack over a MemStore, with the same
// route patterns the router registers.
type testEnv struct {
	mux *http.ServeMux
	st  *store.MemStore
	cfg cliparse.Config
	hub *hub.Hub
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	st := store.NewMemStore()
	cfg := testutil.GetTestConfig()
	h := hub.New()

	gen := code.NewGenerator(cfg.CodeLength)
	locks := poll.NewLocks()
	processor := vote.NewProcessor(st, h, locks)
	coord := relaunch.NewCoordinator(st, gen, locks)

	pollHandler := NewPollHandler(st, gen, coord, cfg)
	voteHandler := NewVoteHandler(processor)
	quizHandler := NewQuizHandler(st, gen, processor, coord, cfg)
	folderHandler := NewFolderHandler(st, cfg)
	importHandler := NewImportHandler(st, gen, cfg)

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/polls", pollHandler.CreatePoll)
	mux.HandleFunc("GET /api/polls", pollHandler.MyPolls)
	mux.HandleFunc("POST /api/polls/import", importHandler.ImportPolls)
	mux.HandleFunc("POST /api/polls/relaunch", pollHandler.Relaunch)
	mux.HandleFunc("PATCH /api/polls/{code}/status", pollHandler.SetStatus)
	mux.HandleFunc("DELETE /api/polls/{code}", pollHandler.DeletePoll)
	mux.HandleFunc("GET /api/polls/{code}", pollHandler.GetPoll)
	mux.HandleFunc("GET /api/polls/{code}/results", pollHandler.GetResults)
	mux.HandleFunc("POST /api/polls/{code}/votes", voteHandler.SubmitVote)
	mux.HandleFunc("POST /api/quizzes", quizHandler.CreateQuiz)
	mux.HandleFunc("POST /api/quizzes/relaunch", quizHandler.Relaunch)
	mux.HandleFunc("GET /api/quizzes/{code}", quizHandler.GetQuiz)
	mux.HandleFunc("POST /api/quizzes/{code}/votes", quizHandler.SubmitVotes)
	mux.HandleFunc("PATCH /api/quizzes/{code}/status", quizHandler.SetStatus)
	mux.HandleFunc("POST /api/folders", folderHandler.CreateFolder)
	mux.HandleFunc("GET /api/folders", folderHandler.ListFolders)
	mux.HandleFunc("GET /api/folders/{id}/polls", folderHandler.GetFolderPolls)
	mux.HandleFunc("POST /api/folders/{id}/polls/{code}", folderHandler.AddPoll)

	return &testEnv{mux: mux, st: st, cfg: cfg, hub: h}
}
