// Copyright (c) 2025 Chatty
// Licensed under the MIT License. See LICENSE file in the project root for details.

package auth

import (
	"testing"
	"time"

	"github.com/99designs/keyring"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "chatty/cli/internal/errors"
	"chatty/cli/internal/keychain"
	"chatty/cli/internal/profile"
	"chatty/cli/internal/session"
)

func newManager(t *testing.T, items ...keyring.Item) *keychain.Manager {
	t.Helper()
	return keychain.NewManagerWithRing(keyring.NewArrayKeyring(items))
}

func TestRestoreEmptyKeychain(t *testing.T) {
	st := session.NewStore()
	require.NoError(t, NewService(newManager(t), nil, nil).Restore(st))
	assert.False(t, st.Get().Present())
}

func TestRestoreSavedSession(t *testing.T) {
	km := newManager(t, keyring.Item{Key: keychain.KeySession, Data: []byte(`{"identity":"u1","token":"t1"}`)})
	st := session.NewStore()

	require.NoError(t, NewService(km, nil, nil).Restore(st))
	assert.Equal(t, session.Session{Identity: "u1", Token: "t1"}, st.Get())
}

func TestRestoreDiscardsPartialRecord(t *testing.T) {
	km := newManager(t, keyring.Item{Key: keychain.KeySession, Data: []byte(`{"identity":"u1"}`)})
	st := session.NewStore()

	require.NoError(t, NewService(km, nil, nil).Restore(st))
	assert.False(t, st.Get().Present())

	data, err := km.LoadSession()
	require.NoError(t, err)
	assert.Nil(t, data)
}

func TestRestoreCorruptRecord(t *testing.T) {
	km := newManager(t, keyring.Item{Key: keychain.KeySession, Data: []byte(`{`)})
	err := NewService(km, nil, nil).Restore(session.NewStore())
	assert.Equal(t, apperrors.StorageFailed, apperrors.KindOf(err))
}

func TestPersistFollowsStore(t *testing.T) {
	km := newManager(t)
	cache := profile.NewMemoryCache()
	require.NoError(t, cache.Put("u1", profile.Profile{ID: "u1"}))

	st := session.NewStore()
	stop := NewService(km, cache, nil).Persist(st)
	defer stop()

	require.NoError(t, st.Set(session.Session{Identity: "u1", Token: "t1"}))
	saved, err := Load(km, nil)
	require.NoError(t, err)
	assert.Equal(t, State{Identity: "u1", Token: "t1"}, saved)
	assert.Equal(t, 1, cache.Len())

	st.Clear()
	saved, err = Load(km, nil)
	require.NoError(t, err)
	assert.Equal(t, State{}, saved)
	assert.Zero(t, cache.Len())
}

func TestInspect(t *testing.T) {
	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":  42,
		"exp": exp.Unix(),
	}).SignedString([]byte("server-secret"))
	require.NoError(t, err)

	info := Inspect(signed)
	assert.False(t, info.Opaque)
	assert.Equal(t, "42", info.Subject)
	assert.True(t, exp.Equal(info.ExpiresAt))
	assert.False(t, info.Expired(time.Now()))
	assert.True(t, info.Expired(exp.Add(time.Minute)))

	signed, err = jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{Subject: "u1"}).SignedString([]byte("k"))
	require.NoError(t, err)
	assert.Equal(t, "u1", Inspect(signed).Subject)

	assert.True(t, Inspect("t1").Opaque)
}
