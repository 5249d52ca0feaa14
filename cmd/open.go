// Copyright (c) 2025 ProjectFlow
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"projectflow/cli/internal/auth"
	"projectflow/cli/internal/logging"
)

var (
	openPage   string
	openLogout bool
)

// openCmd simulates a full page load: the guard and the page-ready handler
// run side by side, each with its own identity call.
var openCmd = &cobra.Command{
	Use:   "open",
	Short: "Load a page: run the guard and the page-ready handler together",
	Long: `The open command behaves like a page that loads both the session guard and
the session manager. Both check the stored token independently and at the
same time; the first redirect wins. With --logout the page's logout link is
clicked once loading has finished.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newPageSession(openPage)
		if err != nil {
			return err
		}
		defer s.close()

		ctx := cmd.Context()
		stop := startSpinner("Loading " + openPage)

		var g errgroup.Group
		g.Go(func() error {
			auth.NewGuard(s.svc).Run(ctx, openPage)
			return nil
		})
		g.Go(func() error {
			return s.svc.PageReady(ctx, openPage)
		})
		err = g.Wait()
		stop()

		if err != nil {
			s.log.Debug("page ready reported an error", logging.Err(err))
		}
		s.reportNetwork("loading " + openPage)

		if openLogout && s.nav.Location() == "" {
			s.page.Click(auth.ElementLogoutLink)
		}
		s.render()
		return nil
	},
}

func init() {
	rootCmd.AddCommand(openCmd)
	openCmd.Flags().StringVar(&openPage, "page", "/", "Path of the page being loaded")
	openCmd.Flags().BoolVar(&openLogout, "logout", false, "Click the logout link after the page has loaded")
}
