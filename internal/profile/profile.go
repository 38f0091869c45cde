// Copyright (c) 2025 Chatty
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package profile keeps user-profile data that screens may render without
// touching the network. The Cache is keyed by session identity; the Warmer is
// the only thing that fills it, and it is driven by sign-in, never by a screen
// that merely displays profile data.
package profile

// Profile is the subset of the account shown on the settings screen.
type Profile struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// DisplayName returns the best human-readable label for the profile.
func (p Profile) DisplayName() string {
	switch {
	case p.Username != "":
		return p.Username
	case p.Email != "":
		return p.Email
	}
	return p.ID
}
