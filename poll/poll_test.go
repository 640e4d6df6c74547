// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package poll

import (
	"errors"
	"reflect"
	"sync"
	"testing"

	"github.com/danielhkuo/pollcast/models"
)

func newTestPoll() *models.Poll {
	return New("p1", "Color?", []string{"Red", "Blue", "Green"}, models.ModeSingle, "AB12CD", "owner1")
}

func TestNewPollZeroTally(t *testing.T) {
	p := newTestPoll()

	if len(p.Tally) != len(p.Options) {
		t.Fatalf("Expected tally length %d, got %d", len(p.Options), len(p.Tally))
	}
	for i, v := range p.Tally {
		if v != 0 {
			t.Errorf("Expected tally[%d] == 0, got %d", i, v)
		}
	}
	if !p.IsActive {
		t.Error("Expected new poll to be active")
	}
}

func TestSubmitVote(t *testing.T) {
	p := newTestPoll()

	tally, err := SubmitVote(p, "fp1", []int{0})
	if err != nil {
		t.Fatalf("SubmitVote failed: %v", err)
	}
	if !reflect.DeepEqual(tally, []int{1, 0, 0}) {
		t.Errorf("Expected tally [1 0 0], got %v", tally)
	}
	if len(p.Tally) != len(p.Options) {
		t.Errorf("Tally/options length invariant broken: %d != %d", len(p.Tally), len(p.Options))
	}

	// Returned tally is a copy, not an alias
	tally[0] = 99
	if p.Tally[0] != 1 {
		t.Error("Returned tally aliases internal state")
	}
}

func TestSubmitVoteMultipleIndices(t *testing.T) {
	p := New("p1", "Toppings?", []string{"A", "B", "C"}, models.ModeMultiple, "XY34ZW", "owner1")

	tally, err := SubmitVote(p, "fp1", []int{0, 2})
	if err != nil {
		t.Fatalf("SubmitVote failed: %v", err)
	}
	if !reflect.DeepEqual(tally, []int{1, 0, 1}) {
		t.Errorf("Expected tally [1 0 1], got %v", tally)
	}
	if len(p.Fingerprints) != 1 {
		t.Errorf("Expected one recorded fingerprint, got %d", len(p.Fingerprints))
	}
}

func TestSubmitVoteDuplicateFingerprint(t *testing.T) {
	p := newTestPoll()

	if _, err := SubmitVote(p, "fp1", []int{0}); err != nil {
		t.Fatalf("First vote failed: %v", err)
	}
	_, err := SubmitVote(p, "fp1", []int{1})
	if !errors.Is(err, ErrDuplicateVote) {
		t.Errorf("Expected ErrDuplicateVote, got %v", err)
	}
	if !reflect.DeepEqual(p.Tally, []int{1, 0, 0}) {
		t.Errorf("Rejected vote must not change tally, got %v", p.Tally)
	}
}

func TestSubmitVoteClosedPoll(t *testing.T) {
	p := newTestPoll()
	Close(p)

	_, err := SubmitVote(p, "fp1", []int{0})
	if !errors.Is(err, ErrClosed) {
		t.Errorf("Expected ErrClosed, got %v", err)
	}
}

func TestCloseArchivesResults(t *testing.T) {
	p := newTestPoll()
	SubmitVote(p, "fp1", []int{0})
	SubmitVote(p, "fp2", []int{1})
	p.Tally = []int{10, 5, 1} // simulate an accumulated tally

	Close(p)

	if p.IsActive {
		t.Error("Expected poll to be inactive after close")
	}
	if len(p.History) != 1 {
		t.Fatalf("Expected 1 history entry, got %d", len(p.History))
	}
	entry := p.History[0]
	if !reflect.DeepEqual(entry.Tally, []int{10, 5, 1}) {
		t.Errorf("Expected archived tally [10 5 1], got %v", entry.Tally)
	}
	if entry.FingerprintCount != 2 {
		t.Errorf("Expected fingerprint count 2, got %d", entry.FingerprintCount)
	}
}

func TestRepeatedCloseAppendsHistory(t *testing.T) {
	p := newTestPoll()
	SubmitVote(p, "fp1", []int{0})

	Close(p)
	Close(p)

	// Append-only: a second close must add a second, independent entry,
	// never overwrite the first
	if len(p.History) != 2 {
		t.Fatalf("Expected 2 history entries, got %d", len(p.History))
	}
	if !reflect.DeepEqual(p.History[0].Tally, p.History[1].Tally) {
		t.Errorf("Entries should snapshot the same tally, got %v and %v",
			p.History[0].Tally, p.History[1].Tally)
	}

	// Archived tallies are snapshots, not aliases of the live tally
	p.Tally[0] = 42
	if p.History[0].Tally[0] == 42 {
		t.Error("History entry aliases live tally")
	}
}

func TestSetStatus(t *testing.T) {
	p := newTestPoll()

	SetStatus(p, false)
	if p.IsActive {
		t.Error("Expected inactive after SetStatus(false)")
	}
	if len(p.History) != 1 {
		t.Errorf("Closing via SetStatus must archive, got %d entries", len(p.History))
	}

	SetStatus(p, true)
	if !p.IsActive {
		t.Error("Expected active after SetStatus(true)")
	}
	if len(p.History) != 1 {
		t.Errorf("Reopening must not archive, got %d entries", len(p.History))
	}
}

func TestRelaunchResetVotes(t *testing.T) {
	p := New("p1", "Q", []string{"A", "B"}, models.ModeSingle, "CODE11", "owner1")
	SubmitVote(p, "fp1", []int{0})
	SubmitVote(p, "fp2", []int{0})
	SubmitVote(p, "fp3", []int{1})
	Close(p)

	err := Relaunch(p, RelaunchOptions{ResetVotes: true}, nil)
	if err != nil {
		t.Fatalf("Relaunch failed: %v", err)
	}

	if !p.IsActive {
		t.Error("Expected poll active after relaunch")
	}
	if !reflect.DeepEqual(p.Tally, []int{0, 0}) {
		t.Errorf("Expected reset tally [0 0], got %v", p.Tally)
	}
	if len(p.Fingerprints) != 0 {
		t.Errorf("Expected cleared fingerprints, got %d", len(p.Fingerprints))
	}
	// One entry from Close, one from the relaunch archive
	if len(p.History) != 2 {
		t.Fatalf("Expected 2 history entries, got %d", len(p.History))
	}
	if !reflect.DeepEqual(p.History[1].Tally, []int{2, 1}) {
		t.Errorf("Expected archived tally [2 1], got %v", p.History[1].Tally)
	}

	// A vote after the reset starts from zero
	tally, err := SubmitVote(p, "fp1", []int{0})
	if err != nil {
		t.Fatalf("Post-relaunch vote failed: %v", err)
	}
	if !reflect.DeepEqual(tally, []int{1, 0}) {
		t.Errorf("Expected tally [1 0], got %v", tally)
	}
}

func TestRelaunchNewCode(t *testing.T) {
	p := newTestPoll()
	Close(p)
	oldCode := p.Code

	err := Relaunch(p, RelaunchOptions{NewCode: true}, func() (string, error) {
		return "FRESH2", nil
	})
	if err != nil {
		t.Fatalf("Relaunch failed: %v", err)
	}

	if p.Code == oldCode {
		t.Error("Expected a new code")
	}
	if p.Code != "FRESH2" {
		t.Errorf("Expected FRESH2, got %q", p.Code)
	}
	// Without ResetVotes nothing is archived or cleared
	if len(p.History) != 1 {
		t.Errorf("Expected only the close archive, got %d entries", len(p.History))
	}
}

func TestRelaunchNewCodeError(t *testing.T) {
	p := newTestPoll()
	boom := errors.New("exhausted")

	err := Relaunch(p, RelaunchOptions{NewCode: true}, func() (string, error) {
		return "", boom
	})
	if !errors.Is(err, boom) {
		t.Errorf("Expected code generation error, got %v", err)
	}
	if p.IsActive != true {
		// Poll was already active; failed relaunch must not close it
		t.Error("Failed relaunch changed activity state")
	}
}

func TestLocksSerializePerID(t *testing.T) {
	locks := NewLocks()
	counter := 0

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := locks.Lock("poll-1")
			defer unlock()
			counter++
		}()
	}
	wg.Wait()

	if counter != 50 {
		t.Errorf("Expected 50 serialized increments, got %d", counter)
	}
}

func TestLocksIndependentIDs(t *testing.T) {
	locks := NewLocks()

	unlockA := locks.Lock("poll-a")
	defer unlockA()

	// Holding poll-a must not block poll-b
	done := make(chan struct{})
	go func() {
		unlockB := locks.Lock("poll-b")
		unlockB()
		close(done)
	}()

	select {
	case <-done:
	default:
		// give the goroutine a chance to run
		<-done
	}
}
