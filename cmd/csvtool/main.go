// Package main provides the csvtool command-line entry point.
package main

import (
	"os"

	"github.com/leapstack-labs/csvtool/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
