// Copyright (c) 2025 ProjectFlow
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package cmd provides the command-line interface for the ProjectFlow session guard.
// It implements subcommands that run the page-load guard, check and inspect the
// stored session, and sign out, using the Cobra CLI framework and pterm output.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"projectflow/cli/internal/backend"
)

var (
	showVersion bool
	verbose     bool
	apiURL      string
	ephemeral   bool
)

// errUnauthenticated makes a command exit non-zero without further output.
var errUnauthenticated = errors.New("not authenticated")

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "projectflow",
	Short: "ProjectFlow session guard for the terminal",
	Long: `projectflow checks the session you use with the ProjectFlow web app.
It reads the stored token pair, validates it against the identity endpoint,
shows who you are signed in as and signs you out again.

Client-side checks are a convenience only; the server enforces access.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		backend.UserAgent = "projectflow-cli/" + Version
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		if showVersion {
			printVersion()
			return nil
		}
		return cmd.Help()
	},
}

// Execute runs the CLI application.
// Interrupts cancel the command context so in-flight requests stop.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()

	if err != nil {
		if !errors.Is(err, errUnauthenticated) {
			pterm.Error.Println(err)
		}
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().BoolVar(&showVersion, "version", false, "Show CLI version information")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose debug output")
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "ProjectFlow server origin (overrides config)")
	rootCmd.PersistentFlags().BoolVar(&ephemeral, "ephemeral", false, "Use an in-memory session store instead of the keychain")
}

func printVersion() {
	fmt.Printf("projectflow %s\n", Version)
}
