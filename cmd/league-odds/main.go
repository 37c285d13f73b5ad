package main

import (
	"fmt"
	"os"

	"league-odds/cmd/league-odds/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
