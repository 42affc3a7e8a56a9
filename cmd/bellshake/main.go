package main

import (
	"os"

	"github.com/phanxgames/bellshake/cmd/bellshake/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
