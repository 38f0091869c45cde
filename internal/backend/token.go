// Copyright (c) 2025 Chatty
// Licensed under the MIT License. See LICENSE file in the project root for details.

package backend

import (
	"net/http"
	"strings"
)

// parseBearerToken extracts token from a value like "Bearer <token>" case-insensitively.
// Returns the token string without the "Bearer " prefix, or empty string if invalid format.
func parseBearerToken(value string) string {
	v := strings.TrimSpace(value)
	if len(v) < 7 {
		return ""
	}
	if strings.EqualFold(v[0:6], "bearer") && (v[6] == ' ' || v[6] == '\t') {
		return strings.TrimSpace(v[6:])
	}
	return ""
}

// findBearerTokenInHeaders looks for a Bearer token in the Authorization
// header, then in any header whose value carries one. Some deployments hand
// the session token back in a header instead of the mutation payload.
func findBearerTokenInHeaders(h http.Header) string {
	if h == nil {
		return ""
	}
	if t := parseBearerToken(h.Get("Authorization")); t != "" {
		return t
	}
	for _, vals := range h {
		for _, v := range vals {
			if t := parseBearerToken(v); t != "" {
				return t
			}
		}
	}
	return ""
}
