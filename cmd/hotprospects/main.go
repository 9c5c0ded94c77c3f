package main

import (
	"os"

	"github.com/hotprospects/hotprospects/cmd/hotprospects/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
