package main

import (
	"fmt"
	"os"

	"github.com/samuelfneumann/rlharness/cmd"
)

func main() {
	if err := cmd.RootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
