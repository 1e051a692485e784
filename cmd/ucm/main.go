// Package main is the entry point for the ucm CLI.
package main

import (
	"os"

	"github.com/thoreinstein/ucm/cmd/ucm/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
