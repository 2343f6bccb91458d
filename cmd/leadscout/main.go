package main

import (
	"os"

	"leadscout/cmd/leadscout/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
