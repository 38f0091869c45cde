// Copyright (c) 2025 Chatty
// Licensed under the MIT License. See LICENSE file in the project root for details.

package backend

import (
	"context"

	apperrors "chatty/cli/internal/errors"
	"chatty/cli/internal/profile"
	"chatty/cli/internal/session"
)

const userQuery = `query user($id: Int) {
  user(id: $id) { id email username }
}`

// GetUser runs the user query for the session's identity with its token.
func (h *HTTP) GetUser(ctx context.Context, s session.Session) (profile.Profile, error) {
	if !s.Present() {
		return profile.Profile{}, apperrors.New(apperrors.InvalidSession, "not logged in")
	}
	var data struct {
		User *userPayload `json:"user"`
	}
	vars := map[string]any{"id": identityVariable(s.Identity)}
	if _, err := h.graphql(ctx, "user", userQuery, vars, s.Token, &data); err != nil {
		return profile.Profile{}, err
	}
	if data.User == nil {
		return profile.Profile{}, apperrors.New(apperrors.RequestRejected, "user not found")
	}
	u := data.User.user()
	return profile.Profile{ID: u.ID, Username: u.Username, Email: u.Email}, nil
}
