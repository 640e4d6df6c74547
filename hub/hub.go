// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package hub

import (
	"sync"

	"github.com/danielhkuo/pollcast/models"
)

// subscriberBuffer bounds how far a slow observer may lag before updates
// are dropped for it.
const subscriberBuffer = 16

// Subscriber receives vote updates for every room it has joined on C.
// C is closed when the subscriber is dropped from the hub.
type Subscriber struct {
	C chan models.VoteUpdate
}

// Hub is a room-based publish/subscribe fan-out. Rooms are keyed by share
// code. Delivery is best-effort to currently joined subscribers only: there
// is no replay, and an observer that joins after a vote must fetch current
// state itself. Publishes for the same code arrive in publish order;
// a subscriber too slow to drain its buffer loses updates rather than
// blocking the vote path.
type Hub struct {
	mu    sync.RWMutex
	rooms map[string]map[*Subscriber]bool
	codes map[*Subscriber]map[string]bool
}

func New() *Hub {
	return &Hub{
		rooms: make(map[string]map[*Subscriber]bool),
		codes: make(map[*Subscriber]map[string]bool),
	}
}

// NewSubscriber registers a fresh observer handle with the hub.
func (h *Hub) NewSubscriber() *Subscriber {
	s := &Subscriber{C: make(chan models.VoteUpdate, subscriberBuffer)}
	h.mu.Lock()
	h.codes[s] = make(map[string]bool)
	h.mu.Unlock()
	return s
}

// Join subscribes s to the room for code.
func (h *Hub) Join(code string, s *Subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.codes[s]; !ok {
		// dropped subscriber; ignore late joins
		return
	}
	if h.rooms[code] == nil {
		h.rooms[code] = make(map[*Subscriber]bool)
	}
	h.rooms[code][s] = true
	h.codes[s][code] = true
}

// Leave removes s from the room for code.
func (h *Hub) Leave(code string, s *Subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.leaveLocked(code, s)
}

func (h *Hub) leaveLocked(code string, s *Subscriber) {
	if room, ok := h.rooms[code]; ok {
		delete(room, s)
		if len(room) == 0 {
			delete(h.rooms, code)
		}
	}
	if codes, ok := h.codes[s]; ok {
		delete(codes, code)
	}
}

// Drop removes s from every room and closes its channel. Called on
// observer disconnect.
func (h *Hub) Drop(s *Subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()
	codes, ok := h.codes[s]
	if !ok {
		return
	}
	for code := range codes {
		h.leaveLocked(code, s)
	}
	delete(h.codes, s)
	close(s.C)
}

// Publish delivers update to every current subscriber of code. It never
// blocks: a full subscriber buffer drops the update for that subscriber.
func (h *Hub) Publish(code string, update models.VoteUpdate) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for s := range h.rooms[code] {
		select {
		case s.C <- update:
		default:
		}
	}
}

// RoomSize reports the current subscriber count for code.
func (h *Hub) RoomSize(code string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[code])
}
