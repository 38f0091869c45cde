// Copyright (c) 2025 Chatty
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"chatty/cli/internal/authform"
	"chatty/cli/internal/profile"
	"chatty/cli/internal/session"
	"chatty/cli/internal/terminal"
)

var (
	loginEmail  string
	loginSignup bool
)

// loginCmd signs in with email and password. With --signup it creates the
// account instead; the form can also be switched after a failed attempt.
var loginCmd = &cobra.Command{
	Use:     "login",
	Aliases: []string{"signin"},
	Short:   "Sign in with email and password",
	Long: `The login command asks for your email and password and signs you in to the
chat service. The session is stored in the OS keychain so later commands can use it.

If a session already exists, the command reports it and does nothing else; run
'chatty logout' first to switch accounts. After a failed attempt you can retry,
switch between sign in and sign up, or quit. Typed values are kept.

Without a terminal, --email is required and the password is read from the
first line of stdin:

  printf '%s\n' "$PASSWORD" | chatty login --email me@example.com`,

	RunE: func(cmd *cobra.Command, args []string) error {
		intent := authform.SignIn
		if loginSignup {
			intent = authform.SignUp
		}
		return runAuthForm(cmd, intent, loginEmail)
	},
}

func init() {
	loginCmd.Flags().StringVar(&loginEmail, "email", "", "Email address to prefill")
	loginCmd.Flags().BoolVar(&loginSignup, "signup", false, "Create a new account instead of signing in")
	rootCmd.AddCommand(loginCmd)
}

const (
	choiceRetry = "Try again"
	choiceQuit  = "Quit"
)

// runAuthForm drives an authform.Controller from the terminal until a
// session is established or the user gives up.
func runAuthForm(cmd *cobra.Command, intent authform.Intent, email string) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	ctx := cmd.Context()
	established := make(chan session.Session, 1)
	failed := make(chan authform.Notice, 1)
	ctl := authform.New(a.store, a.api, authform.Hooks{
		Established: func(s session.Session) {
			select {
			case established <- s:
			default:
			}
		},
		Failed: func(n authform.Notice) { failed <- n },
	}, a.log)
	defer ctl.Close()

	select {
	case s := <-established:
		pterm.Printf("Already logged in as %s\n", displayName(a.cache, s))
		return nil
	default:
	}

	ctl.SetIntent(intent)
	ctl.UpdateField(authform.FieldEmail, email)

	interactive := terminal.Interactive()
	if !interactive && email == "" {
		return errors.New("--email is required when not running in a terminal")
	}

	for {
		form := ctl.Form()
		if err := askCredentials(ctl, form, interactive); err != nil {
			return err
		}
		form = ctl.Form()

		text := terminal.Fit(progressText(form.Intent, form.Credentials.Email), terminal.Width()-2)
		stop := startInlineSpinner(os.Stderr, text, spinnerFrames, 120*time.Millisecond)
		if !ctl.Submit(ctx) {
			stop()
			return fmt.Errorf("cannot %s right now", form.Intent)
		}

		select {
		case s := <-established:
			stop()
			ctl.Wait()
			greet(ctx, a, s)
			return nil
		case n := <-failed:
			stop()
			pterm.Error.Printfln("%s: %s", n.Title, n.Message)
			if !interactive {
				return errors.New(n.Message)
			}
		case <-ctx.Done():
			stop()
			return ctx.Err()
		}

		switchTo := "Switch to " + ctl.Form().Intent.Toggle().String()
		choice, err := promptChoice("What next?", []string{choiceRetry, switchTo, choiceQuit})
		ctl.Dismiss()
		if err != nil {
			return err
		}
		switch choice {
		case choiceQuit:
			return nil
		case switchTo:
			ctl.ToggleIntent()
		}
	}
}

// askCredentials fills the form from prompts, or reads the password from
// stdin when there is no terminal.
func askCredentials(ctl *authform.Controller, form authform.Form, interactive bool) error {
	if !interactive {
		password, err := terminal.ReadLine(os.Stdin)
		if err != nil {
			return fmt.Errorf("read password from stdin: %w", err)
		}
		ctl.UpdateField(authform.FieldPassword, password)
		return nil
	}

	pterm.DefaultSection.Println(capitalize(form.Intent.String()))
	email, err := promptText("Email", form.Credentials.Email)
	if err != nil {
		return err
	}
	ctl.UpdateField(authform.FieldEmail, email)
	password, err := promptSecret("Password")
	if err != nil {
		return err
	}
	ctl.UpdateField(authform.FieldPassword, password)
	return nil
}

// greet warms the profile cache for the new session and welcomes the user.
// A failed warm only costs the nicer name.
func greet(ctx context.Context, a *app, s session.Session) {
	ctx, cancel := context.WithTimeout(ctx, a.cfg.Timeout())
	defer cancel()
	p, err := profile.NewWarmer(a.cache, a.api, a.log).Warm(ctx, s)
	if err != nil {
		a.log.Debug("greeting without profile", "error", err)
		pterm.Success.Printf("Signed in as %s\n", s.Identity)
		return
	}
	pterm.Println(getRandomLoginGreeting(p.DisplayName()))
}

func displayName(cache *profile.Cache, s session.Session) string {
	if p, ok := cache.Cached(s.Identity); ok {
		return p.DisplayName()
	}
	return s.Identity
}

func progressText(i authform.Intent, email string) string {
	if i == authform.SignUp {
		return fmt.Sprintf("Creating account for %s", email)
	}
	return fmt.Sprintf("Signing in as %s", email)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return string(s[0]-'a'+'A') + s[1:]
}
