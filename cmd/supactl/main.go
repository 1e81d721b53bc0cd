package main

import (
	"os"

	"github.com/supago-community/supago/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
