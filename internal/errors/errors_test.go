package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReason(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "nil", err: nil, want: ""},
		{name: "plain error", err: stderrors.New("boom"), want: "boom"},
		{name: "typed error", err: New(AuthenticationFailed, "Email already in use"), want: "Email already in use"},
		{name: "wrapped typed error", err: fmt.Errorf("signup: %w", New(TransportFailed, "timed out")), want: "timed out"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Reason(tt.err))
		})
	}
}

func TestAsAuthFailure(t *testing.T) {
	assert.Nil(t, AsAuthFailure(nil))

	transport := Wrap(TransportFailed, "Connection refused", stderrors.New("dial tcp: refused"))
	got := AsAuthFailure(transport)
	assert.Equal(t, AuthenticationFailed, got.Kind)
	assert.Equal(t, "Connection refused", got.Message)
	assert.True(t, stderrors.Is(got, transport))

	already := New(AuthenticationFailed, "Invalid password")
	assert.Same(t, already, AsAuthFailure(already))
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, StorageFailed, KindOf(fmt.Errorf("save: %w", New(StorageFailed, "keychain locked"))))
	assert.Equal(t, Kind(""), KindOf(stderrors.New("plain")))
	assert.True(t, stderrors.Is(New(InvalidSession, "a"), New(InvalidSession, "b")))
}
