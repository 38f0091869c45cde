// Copyright (c) 2025 Chatty
// Licensed under the MIT License. See LICENSE file in the project root for details.

package authform

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	"chatty/cli/internal/backend/model"
)

func TestIntentToggle(t *testing.T) {
	assert.Equal(t, SignUp, SignIn.Toggle())
	assert.Equal(t, SignIn, SignUp.Toggle())
	assert.Equal(t, "sign in", SignIn.String())
	assert.Equal(t, "sign up", SignUp.String())
}

func TestReduce(t *testing.T) {
	filled := model.Credentials{Email: "a@b.c", Password: "pw"}

	tests := []struct {
		name   string
		start  Form
		action Action
		want   Form
	}{
		{
			name:   "switch to sign up keeps fields",
			start:  Form{Credentials: filled},
			action: SetIntent{Intent: SignUp},
			want:   Form{Intent: SignUp, Credentials: filled},
		},
		{
			name:   "switch back to sign in keeps fields",
			start:  Form{Intent: SignUp, Credentials: filled},
			action: SetIntent{Intent: SignIn},
			want:   Form{Intent: SignIn, Credentials: filled},
		},
		{
			name:   "email is stored as typed",
			start:  Form{},
			action: UpdateField{Field: FieldEmail, Value: "not an email"},
			want:   Form{Credentials: model.Credentials{Email: "not an email"}},
		},
		{
			name:   "password is stored as typed",
			start:  Form{Credentials: model.Credentials{Email: "a@b.c"}},
			action: UpdateField{Field: FieldPassword, Value: ""},
			want:   Form{Credentials: model.Credentials{Email: "a@b.c"}},
		},
		{
			name:   "submit from idle",
			start:  Form{Credentials: filled},
			action: Submit{},
			want:   Form{Credentials: filled, Phase: InFlight},
		},
		{
			name:   "submit from failed clears the reason",
			start:  Form{Credentials: filled, Phase: Failed, Reason: "nope"},
			action: Submit{},
			want:   Form{Credentials: filled, Phase: InFlight},
		},
		{
			name:   "submit while in flight is ignored",
			start:  Form{Phase: InFlight},
			action: Submit{},
			want:   Form{Phase: InFlight},
		},
		{
			name:   "success",
			start:  Form{Phase: InFlight},
			action: SubmitSucceeded{},
			want:   Form{Phase: Succeeded},
		},
		{
			name:   "failure records reason",
			start:  Form{Intent: SignUp, Credentials: filled, Phase: InFlight},
			action: SubmitFailed{Reason: "Email already in use"},
			want:   Form{Intent: SignUp, Credentials: filled, Phase: Failed, Reason: "Email already in use"},
		},
		{
			name:   "completion without submission is ignored",
			start:  Form{},
			action: SubmitFailed{Reason: "late"},
			want:   Form{},
		},
		{
			name:   "dismiss returns to idle",
			start:  Form{Credentials: filled, Phase: Failed, Reason: "nope"},
			action: DismissNotice{},
			want:   Form{Credentials: filled},
		},
		{
			name:   "dismiss outside failure is ignored",
			start:  Form{Phase: InFlight},
			action: DismissNotice{},
			want:   Form{Phase: InFlight},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Reduce(tt.start, tt.action))
		})
	}
}

// Any sequence of intent changes leaves exactly the last requested intent
// active and the typed values untouched.
func TestReduceIntentSequences(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	creds := model.Credentials{Email: "a@b.c", Password: "pw"}

	for run := 0; run < 100; run++ {
		f := Form{Credentials: creds}
		last := SignIn
		steps := rng.Intn(20)
		for i := 0; i < steps; i++ {
			last = Intent(rng.Intn(2))
			f = Reduce(f, SetIntent{Intent: last})
		}
		assert.Equal(t, last, f.Intent)
		assert.Equal(t, creds, f.Credentials)
		assert.Equal(t, Idle, f.Phase)
	}
}
