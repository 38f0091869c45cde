// Copyright (c) 2025 Chatty
// Licensed under the MIT License. See LICENSE file in the project root for details.

package logging

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestGRPCReason(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want GRPCErrorType
		msg  string
	}{
		{
			name: "duplicate account keeps server wording",
			err:  status.Error(codes.AlreadyExists, "Email already in use"),
			want: GRPCErrorRejected,
			msg:  "Email already in use",
		},
		{
			name: "bad password keeps server wording",
			err:  status.Error(codes.Unauthenticated, "Password incorrect"),
			want: GRPCErrorAuth,
			msg:  "Password incorrect",
		},
		{
			name: "unavailable",
			err:  status.Error(codes.Unavailable, "connection refused"),
			want: GRPCErrorUnavailable,
			msg:  "The identity service is currently unavailable",
		},
		{
			name: "deadline",
			err:  status.Error(codes.DeadlineExceeded, "context deadline exceeded"),
			want: GRPCErrorTimeout,
			msg:  "The identity service took too long to respond",
		},
		{
			name: "plain error falls back to text",
			err:  errors.New("stream error: RST_STREAM"),
			want: GRPCErrorNetwork,
			msg:  "The connection to the identity service was interrupted",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyGRPCError(tt.err))
			assert.Equal(t, tt.msg, GRPCReason(tt.err))
		})
	}
}
