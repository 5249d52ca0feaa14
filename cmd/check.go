// Copyright (c) 2025 ProjectFlow
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var checkPage string

// checkCmd validates the stored token and exits non-zero without a session.
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check whether the stored session is valid",
	Long: `The check command validates the stored access token against the identity
endpoint. A missing or rejected token, or an unreachable server, ends the
session: the token pair is cleared and the command exits with status 1.
Scripts can use it to gate work that needs a signed-in user.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newPageSession(checkPage)
		if err != nil {
			return err
		}
		defer s.close()

		stop := startSpinner("Checking session")
		ok := s.svc.CheckToken(cmd.Context(), checkPage)
		stop()

		if ok {
			pterm.Success.Println("Session is valid")
			return nil
		}

		s.reportNetwork("checking your session")
		s.render()
		return errUnauthenticated
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
	checkCmd.Flags().StringVar(&checkPage, "page", "/", "Path of the page being loaded")
}
