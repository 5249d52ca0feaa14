// Copyright (c) 2025 ProjectFlow
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"github.com/spf13/cobra"

	"projectflow/cli/internal/auth"
)

var guardPage string

// guardCmd runs the page-load guard for one page and prints the result.
var guardCmd = &cobra.Command{
	Use:   "guard",
	Short: "Run the page-load session guard",
	Long: `The guard command does what every protected page does on load: it skips
sign-in and admin pages, sends visitors without a token to the login page,
clears a token the server rejects, and otherwise shows the signed-in menu.

A server that cannot be reached leaves the session untouched.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newPageSession(guardPage)
		if err != nil {
			return err
		}
		defer s.close()

		stop := startSpinner("Checking session")
		auth.NewGuard(s.svc).Run(cmd.Context(), guardPage)
		stop()

		s.reportNetwork("checking your session")
		s.render()
		return nil
	},
}

func init() {
	rootCmd.AddCommand(guardCmd)
	guardCmd.Flags().StringVar(&guardPage, "page", "/", "Path of the page being loaded")
}
