package main

import (
	"os"

	"github.com/msto63/numerik/cmd/numerik/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
