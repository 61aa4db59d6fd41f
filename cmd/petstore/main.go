package main

import (
	"os"

	"github.com/R3E-Network/petstore/cmd/petstore/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
