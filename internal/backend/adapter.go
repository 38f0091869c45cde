// Copyright (c) 2025 Chatty
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package backend provides the clients the CLI uses to talk to the chat
// service's identity API. It defines the API contract for sign-in, sign-up,
// profile lookup and version checking, and ships a GraphQL-over-HTTP
// implementation; the gRPC implementation lives in backend/grpcclient.
package backend

import (
	"context"

	"chatty/cli/internal/backend/model"
	"chatty/cli/internal/profile"
	"chatty/cli/internal/session"
)

// Credentials is what the sign-in form submits.
type Credentials = model.Credentials

// API defines backend operations the CLI depends on.
// Implementations may call real HTTP/gRPC endpoints or provide fakes for tests.
//
// Login and Signup are distinct remote operations. Both fail with an
// errors.AuthenticationFailed whose Message is fit to show the user.
type API interface {
	Login(ctx context.Context, creds Credentials) (session.Session, error)
	Signup(ctx context.Context, creds Credentials) (session.Session, error)
	// GetUser loads the profile of the session's user. It needs a token.
	GetUser(ctx context.Context, s session.Session) (profile.Profile, error)
	// GetVersion returns the service version; no authentication required.
	GetVersion(ctx context.Context) (string, error)
}
