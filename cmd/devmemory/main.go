package main

import (
	"os"

	"github.com/qoder-labs/devmemory/internal/cli"
)

func main() {
	if err := cli.RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
