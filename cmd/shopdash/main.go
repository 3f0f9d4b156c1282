// Package main is the entry point of the shopdash CLI.
package main

import (
	"os"

	"github.com/leapstack-labs/shopdash/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
