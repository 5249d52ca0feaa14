// Copyright (c) 2025 ProjectFlow
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"fmt"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"projectflow/cli/internal/auth"
	"projectflow/cli/internal/terminal"
)

var (
	importAccess  string
	importRefresh string
)

var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Manage the locally stored session",
}

// sessionImportCmd stores a token pair obtained by signing in on the web.
var sessionImportCmd = &cobra.Command{
	Use:   "import",
	Short: "Store a token pair from a web sign-in",
	Long: `The import command stores the access and refresh tokens the web app keeps
after you sign in, so the CLI can act with the same session. Tokens are read
from --access and --refresh, or prompted for without echo.

This does not sign you in; get the tokens from the web app first.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newPageSession("/")
		if err != nil {
			return err
		}
		defer s.close()

		access, refresh := importAccess, importRefresh
		if access == "" {
			if access, err = terminal.ReadSecret("Access token: "); err != nil {
				return fmt.Errorf("read access token: %w", err)
			}
		}
		if refresh == "" {
			if refresh, err = terminal.ReadSecret("Refresh token: "); err != nil {
				return fmt.Errorf("read refresh token: %w", err)
			}
		}

		if err := auth.SaveTokenPair(s.store, access, refresh); err != nil {
			return err
		}
		if ephemeral {
			pterm.Warning.Println("--ephemeral is set: the session is gone when this command exits")
		}

		pterm.Success.Println("Session stored")
		if info, err := auth.InspectToken(access); err == nil && !info.ExpiresAt.IsZero() {
			pterm.Println("   Access token expires " + describeExpiry(info, time.Now()))
		}
		return nil
	},
}

// sessionStatusCmd shows what is stored without contacting the server.
var sessionStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show which session entries are stored",
	Long: `The status command lists the session entries in the store and, when the
access token is a JWT, its user id and expiry. Nothing is verified: run
'projectflow check' to ask the server.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newPageSession("/")
		if err != nil {
			return err
		}
		defer s.close()

		st, err := auth.LoadState(s.store)
		if err != nil {
			return err
		}

		data := pterm.TableData{
			{"Entry", "Stored"},
			{auth.KeyAccessToken, yesNo(st.HasAccessToken)},
			{auth.KeyRefreshToken, yesNo(st.HasRefreshToken)},
			{auth.KeyUserKey, yesNo(st.HasUserKey)},
		}
		if err := pterm.DefaultTable.WithHasHeader().WithData(data).Render(); err != nil {
			return err
		}

		pterm.Println("Store: " + storeName(s.store) + "    Server: " + s.m.HTTPBaseURL())
		if st.Access != nil {
			if st.Access.UserID != "" {
				pterm.Println("User id: " + st.Access.UserID)
			}
			if !st.Access.ExpiresAt.IsZero() {
				pterm.Println("Access token expires " + describeExpiry(*st.Access, time.Now()))
			}
		}
		if !st.HasAccessToken {
			pterm.Println()
			pterm.Info.Println("No session. Sign in on the web, then run 'projectflow session import'.")
		}
		return nil
	},
}

func yesNo(b bool) string {
	if b {
		return pterm.Green("yes")
	}
	return pterm.Gray("no")
}

// describeExpiry renders an expiry relative to now, e.g. "in 4m0s" or "2h0m0s ago (expired)".
func describeExpiry(info auth.TokenInfo, now time.Time) string {
	if info.Expired(now) {
		return now.Sub(info.ExpiresAt).Round(time.Second).String() + " ago (expired)"
	}
	return "in " + info.ExpiresAt.Sub(now).Round(time.Second).String()
}

func init() {
	rootCmd.AddCommand(sessionCmd)
	sessionCmd.AddCommand(sessionImportCmd, sessionStatusCmd)
	sessionImportCmd.Flags().StringVar(&importAccess, "access", "", "Access token")
	sessionImportCmd.Flags().StringVar(&importRefresh, "refresh", "", "Refresh token")
}
