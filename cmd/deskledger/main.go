package main

import (
	"os"

	"deskledger/cmd/deskledger/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
