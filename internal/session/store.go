// Copyright (c) 2025 Chatty
// Licensed under the MIT License. See LICENSE file in the project root for details.

package session

import (
	"sort"
	"sync"
)

// Listener receives the new session after every change to the Store.
type Listener func(Session)

// Store holds the current Session and broadcasts every change.
//
// Writes are last-writer-wins. Each change is delivered to all listeners
// before the next change starts delivering, so no listener can see a newer
// session while another still holds an older one. Listeners run on the
// writer's goroutine and must not call Set or Clear themselves.
type Store struct {
	// mu guards current, listeners and nextID.
	mu        sync.RWMutex
	current   Session
	listeners map[uint64]Listener
	nextID    uint64

	// broadcast serializes whole update+delivery cycles.
	broadcast sync.Mutex
}

// NewStore returns an unauthenticated Store.
func NewStore() *Store {
	return &Store{listeners: make(map[uint64]Listener)}
}

// Get returns the current session.
func (st *Store) Get() Session {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return st.current
}

// Set replaces the stored session and notifies listeners.
// A partial session is rejected and the store is left unchanged.
func (st *Store) Set(s Session) error {
	if err := s.Validate(); err != nil {
		return err
	}
	st.replace(s)
	return nil
}

// Clear sets the store to the unauthenticated state.
func (st *Store) Clear() {
	st.replace(Session{})
}

// Subscribe registers fn for every future change and returns a function that
// removes it. The returned function is safe to call more than once.
func (st *Store) Subscribe(fn Listener) (unsubscribe func()) {
	st.mu.Lock()
	id := st.nextID
	st.nextID++
	st.listeners[id] = fn
	st.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			st.mu.Lock()
			delete(st.listeners, id)
			st.mu.Unlock()
		})
	}
}

func (st *Store) replace(s Session) {
	st.broadcast.Lock()
	defer st.broadcast.Unlock()

	st.mu.Lock()
	st.current = s
	listeners := st.snapshot()
	st.mu.Unlock()

	for _, fn := range listeners {
		fn(s)
	}
}

// snapshot returns listeners in subscription order. Caller holds mu.
func (st *Store) snapshot() []Listener {
	ids := make([]uint64, 0, len(st.listeners))
	for id := range st.listeners {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	out := make([]Listener, 0, len(ids))
	for _, id := range ids {
		out = append(out, st.listeners[id])
	}
	return out
}
