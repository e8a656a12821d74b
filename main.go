package main

import (
	"fmt"
	"os"

	"github.com/idelchi/fssummary/internal/cli"
)

// version is set at build time via -ldflags.
var version = "unknown - built from source"

func main() {
	if err := cli.New(version).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
