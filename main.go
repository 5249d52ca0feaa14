// Package main is the entry point for the ProjectFlow CLI.
// It runs the session guard for ProjectFlow pages from the terminal.
package main

import (
	"projectflow/cli/cmd"
)

func main() {
	cmd.Execute()
}
