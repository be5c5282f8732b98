package main

import (
	"os"

	"github.com/jobscout-dev/jobscout/internal/adapters/driving/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
