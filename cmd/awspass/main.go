package main

import (
	"fmt"
	"os"

	"github.com/awnumar/memguard"

	"github.com/systmms/awspass/cmd/awspass/commands"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	// Wipe every enclave before the process exits, regardless of path.
	defer memguard.Purge()

	app := commands.NewApp()
	rootCmd := commands.NewRootCommand(app, fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date))

	if err := rootCmd.Execute(); err != nil {
		// Resolution failures already wrote their JSON response and
		// stderr line. Anything else is a usage or wiring error.
		if err != commands.ErrFailed {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		return 1
	}
	return 0
}
