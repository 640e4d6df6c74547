// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the Pollcast API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(st, h, cfg)

# Endpoints

Health and live updates:

	GET /health
	GET /ws      - Websocket vote updates (join/leave rooms by code)

Poll management (owner, requires X-Owner-Key):

	POST   /api/polls                - Create poll (mints owner key)
	GET    /api/polls                - List caller's polls
	POST   /api/polls/import         - Bulk create from CSV
	POST   /api/polls/relaunch       - Reopen a poll
	PATCH  /api/polls/{code}/status  - Open/close (close archives results)
	DELETE /api/polls/{code}         - Delete and detach

Poll access and voting (public, uses join code):

	GET  /api/polls/{code}          - Poll info and options
	GET  /api/polls/{code}/results  - Per-option tallies
	POST /api/polls/{code}/votes    - Submit a ballot

Quizzes:

	POST  /api/quizzes                - Create quiz with child polls
	POST  /api/quizzes/relaunch       - Reopen quiz and children
	GET   /api/quizzes/{code}         - Quiz info with child polls
	POST  /api/quizzes/{code}/votes   - One ballot per child poll
	PATCH /api/quizzes/{code}/status  - Propagates to children

Folders (owner):

	POST /api/folders                    - Create folder
	GET  /api/folders                    - List caller's folders
	GET  /api/folders/{id}/polls         - Folder contents
	POST /api/folders/{id}/polls/{code}  - File a poll (rejects duplicates)

# Handler Initialization

The router builds the shared domain services once and injects them:

	gen := code.NewGenerator(cfg.CodeLength)
	locks := poll.NewLocks()
	processor := vote.NewProcessor(st, h, locks)
	coord := relaunch.NewCoordinator(st, gen, locks)

Vote submissions and lifecycle changes share the same per-poll locks.
*/
package router
