// Package errors defines typed errors with categories for user-friendly reporting.
// Every error carries a machine-readable Kind and a human-friendly Message; the
// Message is what the terminal shows, the wrapped Err is kept for logs.
//
// The authentication form only ever deals with one kind, AuthenticationFailed:
// gateways fold credential rejections, server validation and transport failures
// into it so the form can show the reason and let the user retry.
package errors

import (
	stderrors "errors"
	"fmt"
)

// Kind is a machine-readable error category.
type Kind string

const (
	// AuthenticationFailed covers every rejected sign-in or sign-up attempt.
	AuthenticationFailed Kind = "authentication_failed"
	// TransportFailed indicates the identity service could not be reached.
	TransportFailed Kind = "transport_failed"
	// RequestRejected indicates the service answered with an error of its own.
	RequestRejected Kind = "request_rejected"
	// StorageFailed indicates the local keychain or cache could not be used.
	StorageFailed Kind = "storage_failed"
	// InvalidSession indicates an identity/token pair that is only half present.
	InvalidSession Kind = "invalid_session"
)

// E wraps an error with kind and human-friendly message.
type E struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *E) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *E) Unwrap() error { return e.Err }

// Is matches another *E by Kind, so errors.Is(err, errors.New(kind, "")) works.
func (e *E) Is(target error) bool {
	t, ok := target.(*E)
	return ok && t.Kind == e.Kind
}

func Wrap(kind Kind, msg string, err error) *E { return &E{Kind: kind, Message: msg, Err: err} }
func New(kind Kind, msg string) *E             { return &E{Kind: kind, Message: msg} }

// KindOf returns the kind of the outermost *E in the chain, or "" when none.
func KindOf(err error) Kind {
	var e *E
	if stderrors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// Reason returns the message meant for the user.
// For an *E it is the Message; for anything else the plain error text.
func Reason(err error) string {
	if err == nil {
		return ""
	}
	var e *E
	if stderrors.As(err, &e) && e.Message != "" {
		return e.Message
	}
	return err.Error()
}

// AsAuthFailure folds any error into an AuthenticationFailed error, keeping
// the original reason.
func AsAuthFailure(err error) *E {
	if err == nil {
		return nil
	}
	var e *E
	if stderrors.As(err, &e) && e.Kind == AuthenticationFailed {
		return e
	}
	return Wrap(AuthenticationFailed, Reason(err), err)
}
