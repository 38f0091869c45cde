// Copyright (c) 2025 Chatty
// Licensed under the MIT License. See LICENSE file in the project root for details.

package auth

import (
	"encoding/json"
	"log/slog"

	apperrors "chatty/cli/internal/errors"
	"chatty/cli/internal/keychain"
	"chatty/cli/internal/logging"
	"chatty/cli/internal/session"
)

// State is the session record persisted in the keychain.
type State struct {
	Identity string `json:"identity"`
	Token    string `json:"token"`
}

// Session converts the record, rejecting half-written ones.
func (s State) Session() (session.Session, error) {
	return session.New(s.Identity, s.Token)
}

// Load reads the state from the keychain. Missing state yields zero value.
func Load(km *keychain.Manager, log *slog.Logger) (State, error) {
	log = logging.OrDiscard(log)
	var s State
	data, err := km.LoadSession()
	if err != nil {
		log.Debug("loading session failed", "error", err)
		return s, err
	}
	if len(data) == 0 {
		log.Debug("no stored session")
		return s, nil
	}
	if err := json.Unmarshal(data, &s); err != nil {
		log.Debug("stored session is unreadable", "bytes", len(data), "error", err)
		return State{}, apperrors.Wrap(apperrors.StorageFailed, "stored session is corrupt", err)
	}
	log.Debug("loaded session", "identity", s.Identity)
	return s, nil
}

// Save writes the state to the keychain.
func Save(km *keychain.Manager, s State, log *slog.Logger) error {
	log = logging.OrDiscard(log)
	b, err := json.Marshal(s)
	if err != nil {
		return err
	}
	if err := km.SaveSession(b); err != nil {
		log.Debug("saving session failed", "error", err)
		return err
	}
	log.Debug("saved session", "identity", s.Identity)
	return nil
}

// Clear removes the state from the keychain.
func Clear(km *keychain.Manager) error {
	return km.ClearSession()
}
