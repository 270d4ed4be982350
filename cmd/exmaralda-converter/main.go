package main

import (
	"os"

	"github.com/lingmod-tue/exmaralda-converter/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
