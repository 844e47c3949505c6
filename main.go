package main

import (
	"os"

	"github.com/abhisek/stemcoach/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
