// Copyright (c) 2025 Chatty
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package authform implements the sign-in/sign-up form: which action the
// submit control triggers, what has been typed, and where the current
// submission stands.
//
// The state transitions live in Reduce, a pure function of the current Form
// and an Action. Controller wraps it with the effects: calling the identity
// gateway, publishing the resulting session, and telling the caller when a
// session is established or an attempt failed.
package authform

import "chatty/cli/internal/backend/model"

// Intent selects which remote operation the submit control triggers.
type Intent int

const (
	SignIn Intent = iota
	SignUp
)

func (i Intent) String() string {
	if i == SignUp {
		return "sign up"
	}
	return "sign in"
}

// Toggle returns the other intent.
func (i Intent) Toggle() Intent {
	if i == SignUp {
		return SignIn
	}
	return SignUp
}

// Field names an input of the form.
type Field int

const (
	FieldEmail Field = iota
	FieldPassword
)

// Phase is where the current submission stands.
type Phase int

const (
	Idle Phase = iota
	InFlight
	Failed
	Succeeded
)

func (p Phase) String() string {
	switch p {
	case InFlight:
		return "in flight"
	case Failed:
		return "failed"
	case Succeeded:
		return "succeeded"
	}
	return "idle"
}

// Form is the complete state of the form.
type Form struct {
	Intent      Intent
	Credentials model.Credentials
	Phase       Phase
	// Reason is the failure message while Phase is Failed, empty otherwise.
	Reason string
}

// Action is an input to Reduce.
type Action interface{ action() }

type (
	SetIntent struct{ Intent Intent }
	// UpdateField records a value as typed; nothing is validated.
	UpdateField struct {
		Field Field
		Value string
	}
	Submit          struct{}
	SubmitSucceeded struct{}
	SubmitFailed    struct{ Reason string }
	DismissNotice   struct{}
)

func (SetIntent) action()       {}
func (UpdateField) action()     {}
func (Submit) action()          {}
func (SubmitSucceeded) action() {}
func (SubmitFailed) action()    {}
func (DismissNotice) action()   {}

// Reduce returns the form that results from applying a to f.
//
// Intent changes never touch the credentials. Submit is ignored while a
// submission is in flight, and the completion actions are ignored unless one
// is.
func Reduce(f Form, a Action) Form {
	switch a := a.(type) {
	case SetIntent:
		f.Intent = a.Intent
	case UpdateField:
		switch a.Field {
		case FieldEmail:
			f.Credentials.Email = a.Value
		case FieldPassword:
			f.Credentials.Password = a.Value
		}
	case Submit:
		if f.Phase != InFlight {
			f.Phase = InFlight
			f.Reason = ""
		}
	case SubmitSucceeded:
		if f.Phase == InFlight {
			f.Phase = Succeeded
		}
	case SubmitFailed:
		if f.Phase == InFlight {
			f.Phase = Failed
			f.Reason = a.Reason
		}
	case DismissNotice:
		if f.Phase == Failed {
			f.Phase = Idle
			f.Reason = ""
		}
	}
	return f
}
