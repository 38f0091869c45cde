package cmd

import (
	"context"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"chatty/cli/internal/auth"
	apperrors "chatty/cli/internal/errors"
	"chatty/cli/internal/httperrors"
	"chatty/cli/internal/logging"
	"chatty/cli/internal/profile"
)

var whoamiOffline bool

// whoamiCmd shows the account behind the current session. Unless --offline
// is given it refreshes the cached profile from the server first.
var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show current authenticated account",
	Long: `The whoami command displays the account of the current session. It refreshes
the profile from the server, which also makes it available to 'chatty settings',
and falls back to cached data when the server cannot be reached.

The session token is decoded locally to show when it expires. The signature is
not checked; only the server can do that.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		s := a.store.Get()
		if !s.Present() {
			printNotLoggedIn()
			return nil
		}

		name := displayName(a.cache, s)
		if !whoamiOffline {
			ctx, cancel := context.WithTimeout(cmd.Context(), a.cfg.Timeout())
			defer cancel()
			p, err := profile.NewWarmer(a.cache, a.api, a.log).Warm(ctx, s)
			switch {
			case err == nil:
				name = p.DisplayName()
			case apperrors.KindOf(err) == apperrors.TransportFailed:
				_ = httperrors.FormatNetworkError(err, "contacting "+httperrors.ExtractHostFromURL(a.cfg.HTTPBaseURL()))
			default:
				pterm.Warning.Println(logging.PresentError("Could not refresh profile", err))
			}
		}

		pterm.Printf("👤 Current user: %s\n", name)
		info := auth.Inspect(s.Token)
		switch {
		case info.Opaque:
			a.log.Debug("session token is opaque")
		case info.Expired(time.Now()):
			pterm.Warning.Printf("Session expired %s; run 'chatty login' again\n", info.ExpiresAt.Local().Format(time.RFC1123))
		case !info.ExpiresAt.IsZero():
			pterm.Printf("   Session valid until %s\n", info.ExpiresAt.Local().Format(time.RFC1123))
		}
		return nil
	},
}

func init() {
	whoamiCmd.Flags().BoolVar(&whoamiOffline, "offline", false, "Use cached profile data only")
	rootCmd.AddCommand(whoamiCmd)
}
