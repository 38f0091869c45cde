// Copyright (c) 2025 Chatty
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package settings holds the settings screen's state: what to show for the
// current session and the logout action.
package settings

import (
	"sync"

	"chatty/cli/internal/profile"
	"chatty/cli/internal/session"
)

// View is what the settings screen shows.
type View int

const (
	ViewUnauthenticated View = iota
	ViewLoading
	ViewContent
)

func (v View) String() string {
	switch v {
	case ViewLoading:
		return "loading"
	case ViewContent:
		return "content"
	}
	return "unauthenticated"
}

// Gate picks the view from the session and data state alone.
func Gate(sessionPresent, dataLoaded bool) View {
	switch {
	case !sessionPresent:
		return ViewUnauthenticated
	case !dataLoaded:
		return ViewLoading
	}
	return ViewContent
}

// Frame is one render of the screen. Profile is set only for ViewContent.
type Frame struct {
	View     View
	Identity string
	Profile  profile.Profile
}

// ProfileSource reads profiles already held locally. Implementations must not
// go to the network.
type ProfileSource interface {
	Cached(identity string) (profile.Profile, bool)
}

// Renderer draws a frame.
type Renderer func(Frame)

// Screen re-renders on every session change.
type Screen struct {
	store  *session.Store
	source ProfileSource
	render Renderer

	mu          sync.Mutex
	frame       Frame
	unsubscribe func()
}

// NewScreen renders the current state once and then on every store change.
// render may be nil.
func NewScreen(store *session.Store, source ProfileSource, render Renderer) *Screen {
	s := &Screen{store: store, source: source, render: render}
	s.unsubscribe = store.Subscribe(s.update)
	s.update(store.Get())
	return s
}

// Refresh re-renders from the current session, picking up profiles that
// arrived in the cache since the last render.
func (s *Screen) Refresh() {
	s.update(s.store.Get())
}

func (s *Screen) update(cur session.Session) {
	f := Frame{View: ViewUnauthenticated}
	if cur.Present() {
		p, ok := s.source.Cached(cur.Identity)
		f = Frame{View: Gate(true, ok), Identity: cur.Identity}
		if ok {
			f.Profile = p
		}
	}

	s.mu.Lock()
	s.frame = f
	s.mu.Unlock()

	if s.render != nil {
		s.render(f)
	}
}

// Frame returns the last rendered frame.
func (s *Screen) Frame() Frame {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.frame
}

// Logout ends the session. Navigation away from the screen is the caller's
// business.
func (s *Screen) Logout() {
	s.store.Clear()
}

// Close stops rendering.
func (s *Screen) Close() {
	s.unsubscribe()
}
