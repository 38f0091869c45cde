// Copyright (c) 2025 Chatty
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package session holds the process-wide record of who is logged in.
//
// A Session is an identity/token pair. Either both halves are present or
// neither is; there is no partially authenticated state. The Store is the
// single authority every screen consults before rendering or fetching
// anything that needs a token. It is created once by the caller and handed
// to each component explicitly.
package session

import (
	apperrors "chatty/cli/internal/errors"
)

// ErrPartialSession is returned when only one of identity and token is set.
var ErrPartialSession = apperrors.New(apperrors.InvalidSession, "identity and token must be set together")

// Session is the authenticated identity plus the token proving it.
// The zero value is the unauthenticated session.
type Session struct {
	Identity string `json:"identity"`
	Token    string `json:"token"`
}

// New builds a Session, rejecting a pair where only one half is present.
func New(identity, token string) (Session, error) {
	s := Session{Identity: identity, Token: token}
	if err := s.Validate(); err != nil {
		return Session{}, err
	}
	return s, nil
}

// Validate reports ErrPartialSession when exactly one half is empty.
func (s Session) Validate() error {
	if (s.Identity == "") != (s.Token == "") {
		return ErrPartialSession
	}
	return nil
}

// Present reports whether s is an authenticated session.
func (s Session) Present() bool {
	return s.Identity != "" && s.Token != ""
}
