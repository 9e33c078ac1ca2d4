// Package main provides the inklist command-line interface.
package main

import (
	"os"

	"github.com/inkstone-labs/inklist/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
