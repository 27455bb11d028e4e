package main

import (
	"os"

	"github.com/gkobilansky/shield-study/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
