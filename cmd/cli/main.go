// Package main is the entry point for the roaming-cost CLI.
package main

import (
	"os"

	"roaming-cost/cmd/cli/cmd"
	"roaming-cost/internal/logging"
)

func main() {
	err := cmd.Execute()
	logging.Sync()
	if err != nil {
		os.Exit(1)
	}
}
