package main

import (
	"os"

	"github.com/salesline/salesline/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
