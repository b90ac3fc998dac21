package main

import (
	"os"

	"github.com/rustyeddy/tradelab/cmd/tradelab/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
