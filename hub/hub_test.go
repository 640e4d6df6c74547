// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package hub

import (
	"testing"
	"time"

	"github.com/danielhkuo/pollcast/models"
)

func recvOne(t *testing.T, s *Subscriber) models.VoteUpdate {
	t.Helper()
	select {
	case u := <-s.C:
		return u
	case <-time.After(time.Second):
		t.Fatal("Timed out waiting for update")
		return models.VoteUpdate{}
	}
}

func assertNoUpdate(t *testing.T, s *Subscriber) {
	t.Helper()
	select {
	case u := <-s.C:
		t.Fatalf("Expected no update, got %+v", u)
	default:
	}
}

func TestPublishReachesAllRoomSubscribers(t *testing.T) {
	h := New()
	a := h.NewSubscriber()
	b := h.NewSubscriber()
	h.Join("AB12CD", a)
	h.Join("AB12CD", b)

	h.Publish("AB12CD", models.VoteUpdate{Code: "AB12CD", Tally: []int{1, 0}})

	for _, s := range []*Subscriber{a, b} {
		u := recvOne(t, s)
		if u.Code != "AB12CD" {
			t.Errorf("Expected code AB12CD, got %q", u.Code)
		}
	}
}

func TestPublishScopedToRoom(t *testing.T) {
	h := New()
	a := h.NewSubscriber()
	b := h.NewSubscriber()
	h.Join("ROOM01", a)
	h.Join("ROOM02", b)

	h.Publish("ROOM01", models.VoteUpdate{Code: "ROOM01"})

	recvOne(t, a)
	assertNoUpdate(t, b)
}

func TestLateSubscriberMissesEarlierVotes(t *testing.T) {
	h := New()

	h.Publish("AB12CD", models.VoteUpdate{Code: "AB12CD", Tally: []int{1, 0}})

	late := h.NewSubscriber()
	h.Join("AB12CD", late)
	// No replay: the earlier update is gone
	assertNoUpdate(t, late)

	h.Publish("AB12CD", models.VoteUpdate{Code: "AB12CD", Tally: []int{2, 0}})
	u := recvOne(t, late)
	if u.Tally[0] != 2 {
		t.Errorf("Expected only the post-join update, got %v", u.Tally)
	}
}

func TestPerCodeOrderingPreserved(t *testing.T) {
	h := New()
	s := h.NewSubscriber()
	h.Join("AB12CD", s)

	for i := 1; i <= 10; i++ {
		h.Publish("AB12CD", models.VoteUpdate{Code: "AB12CD", VoterCount: i})
	}

	for i := 1; i <= 10; i++ {
		u := recvOne(t, s)
		if u.VoterCount != i {
			t.Fatalf("Expected update %d in order, got %d", i, u.VoterCount)
		}
	}
}

func TestLeaveStopsDelivery(t *testing.T) {
	h := New()
	s := h.NewSubscriber()
	h.Join("AB12CD", s)
	h.Leave("AB12CD", s)

	h.Publish("AB12CD", models.VoteUpdate{Code: "AB12CD"})
	assertNoUpdate(t, s)

	if h.RoomSize("AB12CD") != 0 {
		t.Errorf("Expected empty room, got %d", h.RoomSize("AB12CD"))
	}
}

func TestDropRemovesAllSubscriptions(t *testing.T) {
	h := New()
	s := h.NewSubscriber()
	h.Join("ROOM01", s)
	h.Join("ROOM02", s)

	h.Drop(s)

	if h.RoomSize("ROOM01") != 0 || h.RoomSize("ROOM02") != 0 {
		t.Error("Drop must remove the subscriber from every room")
	}

	// Channel is closed
	if _, ok := <-s.C; ok {
		t.Error("Expected closed channel after Drop")
	}

	// Joining after drop is a no-op
	h.Join("ROOM03", s)
	if h.RoomSize("ROOM03") != 0 {
		t.Error("Dropped subscriber must not rejoin")
	}
}

func TestSlowSubscriberNeverBlocksPublish(t *testing.T) {
	h := New()
	s := h.NewSubscriber()
	h.Join("AB12CD", s)

	done := make(chan struct{})
	go func() {
		// Far more updates than the buffer holds; nothing drains
		for i := 0; i < subscriberBuffer*4; i++ {
			h.Publish("AB12CD", models.VoteUpdate{Code: "AB12CD", VoterCount: i})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Publish blocked on a slow subscriber")
	}

	// The buffered prefix is still delivered in order
	for i := 0; i < subscriberBuffer; i++ {
		u := recvOne(t, s)
		if u.VoterCount != i {
			t.Fatalf("Expected update %d, got %d", i, u.VoterCount)
		}
	}
}
