// Copyright (c) 2025 Chatty
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package auth keeps the in-memory session store and the keychain in step.
// A session restored at startup is placed in the store; from then on every
// store change is written back, and a logout also drops cached profiles.
package auth

import (
	"log/slog"

	"chatty/cli/internal/keychain"
	"chatty/cli/internal/logging"
	"chatty/cli/internal/profile"
	"chatty/cli/internal/session"
)

// Service persists sessions for one process.
type Service struct {
	km    *keychain.Manager
	cache *profile.Cache
	log   *slog.Logger
}

// NewService returns a Service. cache may be nil.
func NewService(km *keychain.Manager, cache *profile.Cache, log *slog.Logger) *Service {
	return &Service{km: km, cache: cache, log: logging.OrDiscard(log)}
}

// Restore loads the saved session into store. A half-written record is
// removed and the store stays unauthenticated.
func (s *Service) Restore(store *session.Store) error {
	st, err := Load(s.km, s.log)
	if err != nil {
		return err
	}
	sess, err := st.Session()
	if err != nil {
		s.log.Warn("discarding incomplete stored session", "identity", st.Identity)
		return Clear(s.km)
	}
	if !sess.Present() {
		return nil
	}
	return store.Set(sess)
}

// Persist writes every future store change to the keychain until the
// returned function is called. Storage errors are logged; the in-memory
// session stays authoritative for the rest of the process.
func (s *Service) Persist(store *session.Store) (stop func()) {
	return store.Subscribe(func(sess session.Session) {
		if sess.Present() {
			if err := Save(s.km, State{Identity: sess.Identity, Token: sess.Token}, s.log); err != nil {
				s.log.Error("cannot persist session", "error", err)
			}
			return
		}
		if err := Clear(s.km); err != nil {
			s.log.Error("cannot remove stored session", "error", err)
		}
		if s.cache != nil {
			if err := s.cache.Reset(); err != nil {
				s.log.Warn("cannot reset profile cache", "error", err)
			}
		}
	})
}
