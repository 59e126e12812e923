package main

import (
	"os"

	"github.com/patternbook/patternbook/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
