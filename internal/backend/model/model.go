// Copyright (c) 2025 Chatty
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package model defines the data exchanged with the identity service.
// The types are transport-agnostic: both the GraphQL and the gRPC clients
// speak in these terms.
package model

// Credentials is what the sign-in form submits. Neither field is validated
// on the client; empty values are sent as-is and judged by the service.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// User is the account record the identity service returns on sign-in,
// sign-up and profile lookups.
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	JWT      string `json:"jwt"`
}
