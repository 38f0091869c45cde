// Copyright (c) 2025 Chatty
// Licensed under the MIT License. See LICENSE file in the project root for details.

package settings

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chatty/cli/internal/profile"
	"chatty/cli/internal/session"
)

type countingSource struct {
	profiles map[string]profile.Profile
	reads    []string
}

func (c *countingSource) Cached(identity string) (profile.Profile, bool) {
	c.reads = append(c.reads, identity)
	p, ok := c.profiles[identity]
	return p, ok
}

func TestGate(t *testing.T) {
	tests := []struct {
		present, loaded bool
		want            View
	}{
		{false, false, ViewUnauthenticated},
		{false, true, ViewUnauthenticated},
		{true, false, ViewLoading},
		{true, true, ViewContent},
	}
	for _, tt := range tests {
		t.Run(tt.want.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, Gate(tt.present, tt.loaded))
		})
	}
}

func TestUnauthenticatedScreenReadsNoProfile(t *testing.T) {
	src := &countingSource{}
	var frames []Frame
	s := NewScreen(session.NewStore(), src, func(f Frame) { frames = append(frames, f) })
	defer s.Close()

	assert.Empty(t, src.reads)
	assert.Equal(t, []Frame{{View: ViewUnauthenticated}}, frames)
}

func TestLoadingThenContent(t *testing.T) {
	st := session.NewStore()
	require.NoError(t, st.Set(session.Session{Identity: "u1", Token: "t1"}))
	src := &countingSource{profiles: map[string]profile.Profile{}}

	s := NewScreen(st, src, nil)
	defer s.Close()
	assert.Equal(t, Frame{View: ViewLoading, Identity: "u1"}, s.Frame())

	src.profiles["u1"] = profile.Profile{ID: "u1", Username: "ada"}
	s.Refresh()
	assert.Equal(t, ViewContent, s.Frame().View)
	assert.Equal(t, "ada", s.Frame().Profile.Username)
	assert.Equal(t, []string{"u1", "u1"}, src.reads)
}

func TestLogoutRerendersUnauthenticated(t *testing.T) {
	st := session.NewStore()
	require.NoError(t, st.Set(session.Session{Identity: "u1", Token: "t1"}))
	src := &countingSource{profiles: map[string]profile.Profile{"u1": {ID: "u1"}}}

	var views []View
	s := NewScreen(st, src, func(f Frame) { views = append(views, f.View) })
	other := NewScreen(st, src, nil)
	defer s.Close()
	defer other.Close()

	s.Logout()

	assert.False(t, st.Get().Present())
	assert.Equal(t, []View{ViewContent, ViewUnauthenticated}, views)
	assert.Equal(t, ViewUnauthenticated, other.Frame().View)
	assert.Len(t, src.reads, 2)
}

func TestClosedScreenStopsRendering(t *testing.T) {
	st := session.NewStore()
	var renders int
	s := NewScreen(st, &countingSource{}, func(Frame) { renders++ })
	s.Close()

	require.NoError(t, st.Set(session.Session{Identity: "u1", Token: "t1"}))
	assert.Equal(t, 1, renders)
}
