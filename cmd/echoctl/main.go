// Package main provides the entry point for the echoctl CLI.
package main

import (
	"fmt"
	"os"

	"github.com/echoctl/echoctl/cmd/echoctl/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
