// Copyright (c) 2025 Chatty
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"chatty/cli/internal/settings"
	"chatty/cli/internal/terminal"
)

var settingsLogout bool

// settingsCmd renders the settings screen from local state only. It never
// fetches the profile; 'chatty login' and 'chatty whoami' fill the cache.
var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show account settings",
	Long: `The settings command shows the account of the current session using data
already cached on this machine; it does not contact the server. From here you
can log out.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		screen := settings.NewScreen(a.store, a.cache, renderSettings)
		defer screen.Close()

		if screen.Frame().View == settings.ViewUnauthenticated {
			return nil
		}
		if !settingsLogout {
			if !terminal.Interactive() {
				return nil
			}
			choice, err := promptChoice("Account", []string{"Close", "Log out"})
			if err != nil || choice != "Log out" {
				return err
			}
		}
		screen.Logout()
		return nil
	},
}

func init() {
	settingsCmd.Flags().BoolVar(&settingsLogout, "logout", false, "Log out without asking")
	rootCmd.AddCommand(settingsCmd)
}

func renderSettings(f settings.Frame) {
	switch f.View {
	case settings.ViewUnauthenticated:
		printNotLoggedIn()
	case settings.ViewLoading:
		pterm.Info.Printf("Signed in as %s. Profile not loaded yet; run 'chatty whoami' to fetch it\n", f.Identity)
	case settings.ViewContent:
		body := pterm.Sprintf("Username: %s\nEmail:    %s\nID:       %s",
			valueOr(f.Profile.Username), valueOr(f.Profile.Email), f.Profile.ID)
		pterm.DefaultBox.
			WithTitle(pterm.NewStyle(pterm.FgCyan, pterm.Bold).Sprint("Settings")).
			Println(body)
	}
}

func valueOr(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
