// i18n-ally reports on the translation state of a project: coverage per
// locale, missing and stale keys, and which keys the source code uses.
//
// Usage:
//
//	i18n-ally [--config FILE] [--verbose] <command> [flags] [args]
//
// Run "i18n-ally help" for a list of commands.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
