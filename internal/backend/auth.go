// Copyright (c) 2025 Chatty
// Licensed under the MIT License. See LICENSE file in the project root for details.

package backend

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"

	"chatty/cli/internal/backend/model"
	apperrors "chatty/cli/internal/errors"
	"chatty/cli/internal/session"
)

const loginMutation = `mutation login($user: SigninUserInput!) {
  login(user: $user) { id jwt username }
}`

const signupMutation = `mutation signup($user: SigninUserInput!) {
  signup(user: $user) { id jwt username }
}`

// flexID accepts an id sent either as a JSON string or as a number.
type flexID string

func (f *flexID) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*f = ""
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*f = flexID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*f = flexID(n.String())
	return nil
}

type userPayload struct {
	ID       flexID `json:"id"`
	JWT      string `json:"jwt"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

func (p userPayload) user() model.User {
	return model.User{ID: string(p.ID), JWT: p.JWT, Username: p.Username, Email: p.Email}
}

// Login runs the login mutation and returns the established session.
func (h *HTTP) Login(ctx context.Context, creds Credentials) (session.Session, error) {
	return h.authenticate(ctx, "login", loginMutation, creds)
}

// Signup runs the signup mutation and returns the established session.
func (h *HTTP) Signup(ctx context.Context, creds Credentials) (session.Session, error) {
	return h.authenticate(ctx, "signup", signupMutation, creds)
}

func (h *HTTP) authenticate(ctx context.Context, op, mutation string, creds Credentials) (session.Session, error) {
	var data map[string]*userPayload
	vars := map[string]any{"user": creds}
	header, err := h.graphql(ctx, op, mutation, vars, "", &data)
	if err != nil {
		return session.Session{}, apperrors.AsAuthFailure(err)
	}

	p := data[op]
	if p == nil {
		return session.Session{}, apperrors.New(apperrors.AuthenticationFailed, "The server returned no account")
	}
	u := p.user()
	if u.JWT == "" {
		u.JWT = findBearerTokenInHeaders(header)
	}
	s, err := session.New(u.ID, u.JWT)
	if err != nil || !s.Present() {
		return session.Session{}, apperrors.Wrap(apperrors.AuthenticationFailed, "The server returned an incomplete session", err)
	}
	h.log.Debug("authenticated", "op", op, "identity", s.Identity)
	return s, nil
}

// identityVariable sends numeric identities as numbers, which is what the
// user query's Int argument expects.
func identityVariable(identity string) any {
	if n, err := strconv.Atoi(strings.TrimSpace(identity)); err == nil {
		return n
	}
	return identity
}
