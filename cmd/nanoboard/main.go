// Command nanoboard manages kanban boards from the terminal and serves
// them over HTTP.
//
// Build with: go build -o bin/nanoboard ./cmd/nanoboard
// Usage: nanoboard <board|list|card|comment|export|serve|config> [options]
package main

import (
	"fmt"
	"os"
)

func main() {
	cli := NewCLI(os.Stdout, os.Stderr)
	if err := cli.Execute(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
