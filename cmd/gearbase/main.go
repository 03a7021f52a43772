package main

import (
	"os"

	"github.com/gearbase-dev/gearbase/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
