// Copyright (c) 2025 ProjectFlow
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// logoutCmd represents the logout command for clearing the session.
// The server is asked to revoke the refresh token (best-effort) and the local
// entries are removed whether or not that succeeds.
var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out and remove the stored session",
	Long: `The logout command signs you out. When a refresh token is stored it is sent
to the server to be revoked; failures there are ignored. The access token,
refresh token and user key are then removed from the session store.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newPageSession("/")
		if err != nil {
			return err
		}
		defer s.close()

		stop := startSpinner("Signing out")
		err = s.svc.Logout(cmd.Context())
		stop()
		if err != nil {
			return err
		}

		pterm.Success.Println("Signed out. All session entries have been removed")
		if loc := s.nav.Location(); loc != "" {
			pterm.Println("   Sign in again at " + pterm.Cyan(loc))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(logoutCmd)
}
