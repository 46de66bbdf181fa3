package main

import (
	"os"

	"github.com/balanco-dev/balanco/internal/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
