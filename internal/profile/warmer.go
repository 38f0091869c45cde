// Copyright (c) 2025 Chatty
// Licensed under the MIT License. See LICENSE file in the project root for details.

package profile

import (
	"context"
	"log/slog"

	"chatty/cli/internal/logging"
	"chatty/cli/internal/session"

	"golang.org/x/sync/singleflight"
)

// Fetcher loads the profile of the session's user from the remote service.
type Fetcher interface {
	GetUser(ctx context.Context, s session.Session) (Profile, error)
}

// Warmer fetches profiles into a Cache. Concurrent warms for the same
// identity share one remote call.
type Warmer struct {
	cache *Cache
	fetch Fetcher
	group singleflight.Group
	log   *slog.Logger
}

// NewWarmer returns a Warmer filling cache from fetch.
func NewWarmer(cache *Cache, fetch Fetcher, log *slog.Logger) *Warmer {
	return &Warmer{cache: cache, fetch: fetch, log: logging.OrDiscard(log)}
}

// Warm fetches the profile for s and stores it. An unauthenticated session
// is a no-op: nothing can be fetched without a token.
func (w *Warmer) Warm(ctx context.Context, s session.Session) (Profile, error) {
	if !s.Present() {
		return Profile{}, nil
	}
	v, err, shared := w.group.Do(s.Identity, func() (any, error) {
		p, err := w.fetch.GetUser(ctx, s)
		if err != nil {
			return Profile{}, err
		}
		if err := w.cache.Put(s.Identity, p); err != nil {
			return Profile{}, err
		}
		return p, nil
	})
	if err != nil {
		w.log.Debug("profile warm failed", "identity", s.Identity, "error", logging.Mask(err.Error()))
		return Profile{}, err
	}
	w.log.Debug("profile warmed", "identity", s.Identity, "shared", shared)
	return v.(Profile), nil
}
