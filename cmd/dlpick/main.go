// dlpick - pick remote files to download from a terminal list
package main

import (
	"fmt"
	"os"

	"dlpick/internal/cli"
)

// Set with -ldflags "-X main.version=... -X main.buildTime=..."
var (
	version   = ""
	buildTime = ""
)

func main() {
	if version != "" {
		cli.Version = version
	}
	if buildTime != "" {
		cli.BuildTime = buildTime
	}

	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
