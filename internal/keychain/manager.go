// Copyright (c) 2025 Chatty
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package keychain stores the chatty session in the OS keychain/credential
// store. Only the session record lives here; non-secret settings go to the
// config file.
package keychain

import (
	"errors"
	"path/filepath"
	"runtime"
	"sync"

	"github.com/99designs/keyring"

	apperrors "chatty/cli/internal/errors"
	"chatty/cli/internal/xdg"
)

// ServiceName identifies our keychain/credential store namespace.
const ServiceName = "chatty"

// KeySession is the item holding the serialized session.
const KeySession = "session"

// Manager provides thread-safe access to the session item.
type Manager struct {
	mu   sync.RWMutex
	ring keyring.Keyring
}

// NewManager opens the platform keyring.
func NewManager() (*Manager, error) {
	ring, err := openRing()
	if err != nil {
		return nil, apperrors.Wrap(apperrors.StorageFailed, "secure storage is unavailable", err)
	}
	return &Manager{ring: ring}, nil
}

// NewManagerWithRing wraps an already opened keyring, e.g. keyring.NewArrayKeyring in tests.
func NewManagerWithRing(ring keyring.Keyring) *Manager {
	return &Manager{ring: ring}
}

// openRing opens the OS keyring, preferring native backends. On Linux an
// encrypted file in the state dir is the last resort for machines without a
// secret service.
func openRing() (keyring.Keyring, error) {
	cfg := keyring.Config{
		ServiceName: ServiceName,
		PassPrefix:  ServiceName,
	}

	switch runtime.GOOS {
	case "darwin":
		cfg.AllowedBackends = []keyring.BackendType{keyring.KeychainBackend, keyring.PassBackend}
	case "windows":
		cfg.AllowedBackends = []keyring.BackendType{keyring.WinCredBackend}
		cfg.WinCredPrefix = ServiceName
	default:
		cfg.AllowedBackends = []keyring.BackendType{
			keyring.SecretServiceBackend,
			keyring.KWalletBackend,
			keyring.KeyCtlBackend,
			keyring.PassBackend,
			keyring.FileBackend,
		}
		cfg.KeyCtlScope = "user"
		dir, err := xdg.StateDir()
		if err != nil {
			return nil, err
		}
		cfg.FileDir = filepath.Join(dir, "keyring")
		cfg.FilePasswordFunc = keyring.TerminalPrompt
	}

	return keyring.Open(cfg)
}

// SaveSession stores the serialized session.
func (m *Manager) SaveSession(data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.ring.Set(keyring.Item{Key: KeySession, Data: data, Label: "chatty session"}); err != nil {
		return apperrors.Wrap(apperrors.StorageFailed, "cannot save session to keychain", err)
	}
	return nil
}

// LoadSession returns the serialized session, or nil when none is stored.
func (m *Manager) LoadSession() ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	it, err := m.ring.Get(KeySession)
	if errors.Is(err, keyring.ErrKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, apperrors.Wrap(apperrors.StorageFailed, "cannot read session from keychain", err)
	}
	return it.Data, nil
}

// ClearSession removes the stored session. Removing a missing item is not an error.
func (m *Manager) ClearSession() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	err := m.ring.Remove(KeySession)
	if err != nil && !errors.Is(err, keyring.ErrKeyNotFound) {
		return apperrors.Wrap(apperrors.StorageFailed, "cannot remove session from keychain", err)
	}
	return nil
}
