// Package main is the entry point for the saga CLI tool.
package main

import (
	"os"

	"github.com/aidanlsb/saga/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
