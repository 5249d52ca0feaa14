// Copyright (c) 2025 ProjectFlow
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	pferrors "projectflow/cli/internal/errors"
	"projectflow/cli/internal/logging"
	"projectflow/cli/internal/ui"
)

// meCmd represents the me command for displaying the current user.
// It refreshes the user menu from the identity endpoint the way a page does.
var meCmd = &cobra.Command{
	Use:     "me",
	Aliases: []string{"whoami"},
	Short:   "Show the signed-in user",
	Long: `The me command loads the current user from the identity endpoint and shows
the display name: the full name when one is set, otherwise the username.

Without a stored token nothing is requested. If the request fails the guest
menu is shown; stored tokens are kept.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newPageSession("/")
		if err != nil {
			return err
		}
		defer s.close()

		if !s.svc.HasAccessToken() {
			fmt.Println(ui.RenderGuestMenu())
			return nil
		}

		stop := startSpinner("Loading user")
		err = s.svc.UpdateUserInfo(cmd.Context())
		stop()

		if err != nil && !s.reportNetwork("loading your profile") {
			switch pferrors.KindOf(err) {
			case pferrors.InvalidToken:
				pterm.Warning.Println("The server did not accept your session.")
			default:
				pterm.Warning.Println(logging.PresentError("Could not load your profile", err))
			}
		}
		s.render()

		if p := s.api.Profile(); p != nil && (verbose || s.cfg.Verbose()) {
			pterm.Println(pterm.Gray(fmt.Sprintf("   id=%d username=%s email=%s", p.ID, p.Username, p.Email)))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(meCmd)
}
