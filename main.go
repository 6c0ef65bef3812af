package main

import (
	"os"

	"github.com/msalah0e/tourney/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
