// Copyright (c) 2025 Chatty
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// logoutCmd ends the current session. Clearing the store is the whole
// operation; the keychain record and cached profiles follow from it.
var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out and remove the saved session",
	Long: `The logout command ends the current session. It removes the session from the
OS keychain and drops cached profile data. There is no remote call: the server
is not told about the logout.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		if !a.store.Get().Present() {
			printNotLoggedIn()
			return nil
		}
		a.store.Clear()
		pterm.Println("✅ Signed out. Your session has been removed")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(logoutCmd)
}
