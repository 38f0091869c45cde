// Copyright (c) 2025 Chatty
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"chatty/cli/internal/auth"
	"chatty/cli/internal/backend"
	"chatty/cli/internal/config"
	"chatty/cli/internal/keychain"
	"chatty/cli/internal/logging"
	"chatty/cli/internal/profile"
	"chatty/cli/internal/session"
)

// app is everything a command needs, built once per invocation. The session
// store is the single handle passed to every screen; nothing reaches it by name.
type app struct {
	cfg   config.Config
	log   *slog.Logger
	store *session.Store
	api   backend.API
	cache *profile.Cache

	closers []func()
}

// openApp loads configuration, restores the saved session and wires
// persistence. A missing keychain is not fatal: the session then lives for
// this process only.
func openApp(cmd *cobra.Command) (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	level := cfg.LogLevel
	if flagVerbose {
		level = "debug"
	}
	log := logging.New(level, cmd.ErrOrStderr())

	a := &app{cfg: cfg, log: log, store: session.NewStore()}

	a.cache = profile.NewMemoryCache()
	if p, err := profile.DefaultPath(); err == nil {
		if c, err := profile.OpenCache(p); err == nil {
			a.cache = c
		} else {
			log.Warn("profile cache unavailable", "error", err)
		}
	}

	if km, err := keychain.NewManager(); err != nil {
		log.Warn("session will not be remembered", "error", err)
	} else {
		svc := auth.NewService(km, a.cache, log)
		if err := svc.Restore(a.store); err != nil {
			log.Warn("cannot restore saved session", "error", err)
		}
		a.closers = append(a.closers, svc.Persist(a.store))
	}

	api, err := backend.New(cfg, log)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.api = api
	if c, ok := api.(io.Closer); ok {
		a.closers = append(a.closers, func() { _ = c.Close() })
	}
	return a, nil
}

// loadConfig applies the root flags on top of the stored configuration.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return cfg, err
	}
	if flagEndpoint != "" {
		cfg.Endpoint = flagEndpoint
	}
	if flagTrans != "" {
		cfg.Transport = flagTrans
	}
	return cfg, cfg.Validate()
}

// Close releases the backend connection and stops persisting the session.
func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}
