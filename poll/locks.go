// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package poll

import "sync"

// Locks serializes mutations per poll id. The vote processor and the
// relaunch coordinator hold a poll's lock across reload-mutate-persist so
// concurrent submissions can neither double-record a fingerprint nor lose
// an increment. Locks for distinct polls are independent.
type Locks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewLocks() *Locks {
	return &Locks{locks: make(map[string]*sync.Mutex)}
}

// Lock acquires the mutex for id and returns its unlock function.
func (l *Locks) Lock(id string) func() {
	l.mu.Lock()
	m, ok := l.locks[id]
	if !ok {
		m = &sync.Mutex{}
		l.locks[id] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock
}
