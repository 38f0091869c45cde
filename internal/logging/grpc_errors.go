// Copyright (c) 2025 Chatty
// Licensed under the MIT License. See LICENSE file in the project root for details.

package logging

import (
	"strings"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// GRPCErrorType represents the category of gRPC error
type GRPCErrorType int

const (
	GRPCErrorUnknown GRPCErrorType = iota
	GRPCErrorNetwork
	GRPCErrorAuth
	GRPCErrorTimeout
	GRPCErrorInternal
	GRPCErrorUnavailable
	// GRPCErrorRejected is an application-level refusal (bad credentials,
	// duplicate account). Its status message is meant for the user.
	GRPCErrorRejected
)

// ParseGRPCError categorizes a gRPC error message
func ParseGRPCError(errMsg string) GRPCErrorType {
	lower := strings.ToLower(errMsg)

	if strings.Contains(lower, "rst_stream") || strings.Contains(lower, "connection reset") {
		return GRPCErrorNetwork
	}
	if strings.Contains(lower, "internal_error") {
		return GRPCErrorInternal
	}
	if strings.Contains(lower, "unavailable") || strings.Contains(lower, "service unavailable") {
		return GRPCErrorUnavailable
	}
	if strings.Contains(lower, "deadline") || strings.Contains(lower, "timeout") {
		return GRPCErrorTimeout
	}
	if strings.Contains(lower, "unauthenticated") || strings.Contains(lower, "unauthorized") {
		return GRPCErrorAuth
	}

	return GRPCErrorUnknown
}

// ClassifyGRPCError categorizes err by its status code, falling back to the
// message text for errors that carry no status.
func ClassifyGRPCError(err error) GRPCErrorType {
	st, ok := status.FromError(err)
	if !ok {
		return ParseGRPCError(err.Error())
	}
	switch st.Code() {
	case codes.InvalidArgument, codes.AlreadyExists, codes.NotFound, codes.PermissionDenied, codes.FailedPrecondition:
		return GRPCErrorRejected
	case codes.Unauthenticated:
		return GRPCErrorAuth
	case codes.DeadlineExceeded:
		return GRPCErrorTimeout
	case codes.Unavailable:
		return GRPCErrorUnavailable
	case codes.Internal:
		return GRPCErrorInternal
	case codes.Canceled, codes.Aborted:
		return GRPCErrorNetwork
	}
	return ParseGRPCError(st.Message())
}

// GRPCReason returns the one-line message shown to the user for a failed
// identity call. Rejections keep the server's wording; transport problems
// get a fixed description.
func GRPCReason(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	if st, ok := status.FromError(err); ok {
		msg = st.Message()
	}

	switch ClassifyGRPCError(err) {
	case GRPCErrorRejected, GRPCErrorAuth:
		if msg != "" {
			return msg
		}
		return "The identity service rejected the request"
	case GRPCErrorNetwork:
		return "The connection to the identity service was interrupted"
	case GRPCErrorTimeout:
		return "The identity service took too long to respond"
	case GRPCErrorUnavailable:
		return "The identity service is currently unavailable"
	case GRPCErrorInternal:
		return "The identity service encountered an internal error"
	}
	if msg == "" {
		return "Unknown error"
	}
	return msg
}
